package engine

import (
	"context"
	"math/rand"

	"github.com/notnil/chess"
)

// Mirror chases a board that mirrors itself. The X variant reflects the
// current position across the vertical axis keeping colors, the Y variant
// reflects it across the horizontal axis swapping colors (so it apes the
// opponent's setup). Each move is scored by how many squares of the mirrored
// target it reproduces.
type Mirror struct {
	rnd       *rand.Rand
	acrossY   bool
	swapColor bool
	name      string
}

type placement struct {
	ptype chess.PieceType
	color chess.Color
}

func NewMirrorX(rnd *rand.Rand) *Mirror {
	return &Mirror{rnd: rnd, name: "mirror-x"}
}

func NewMirrorY(rnd *rand.Rand) *Mirror {
	return &Mirror{rnd: rnd, acrossY: true, swapColor: true, name: "mirror-y"}
}

func (s *Mirror) Name() string { return s.name }

func (s *Mirror) Select(ctx context.Context, req Request) (*chess.Move, error) {
	pos := req.Current()
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil, nil
	}
	target := s.mirrorTarget(pos)

	best := -1
	var bestMoves []*chess.Move
	for _, move := range moves {
		next := pos.Update(move)
		score := 0
		for sq, piece := range next.Board().SquareMap() {
			if target[sq] == (placement{piece.Type(), piece.Color()}) {
				score++
			}
		}
		if score > best {
			best = score
			bestMoves = bestMoves[:0]
		}
		if score == best {
			bestMoves = append(bestMoves, move)
		}
	}
	return pickMove(s.rnd, bestMoves), nil
}

func (s *Mirror) mirrorTarget(pos *chess.Position) map[chess.Square]placement {
	target := make(map[chess.Square]placement)
	for sq, piece := range pos.Board().SquareMap() {
		file, rank := fileOf(sq), rankOf(sq)
		if s.acrossY {
			rank = 7 - rank
		} else {
			file = 7 - file
		}
		color := piece.Color()
		if s.swapColor {
			color = color.Other()
		}
		target[squareAt(file, rank)] = placement{piece.Type(), color}
	}
	return target
}
