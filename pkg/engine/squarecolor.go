package engine

import (
	"context"
	"math/rand"

	"github.com/notnil/chess"
)

// SquareColor herds its pieces onto squares of one color: its own color in
// the plain variant (White onto light squares), the opposite color in the
// mismatched one. Landing a piece on a wanted square earns a small bonus.
type SquareColor struct {
	rnd      *rand.Rand
	opposite bool
}

func NewColorSquare(rnd *rand.Rand) *SquareColor { return &SquareColor{rnd: rnd} }

func NewOppositeColorSquare(rnd *rand.Rand) *SquareColor {
	return &SquareColor{rnd: rnd, opposite: true}
}

func (s *SquareColor) Name() string {
	if s.opposite {
		return "opposite-color-square"
	}
	return "color-square"
}

func (s *SquareColor) Select(ctx context.Context, req Request) (*chess.Move, error) {
	pos := req.Current()
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil, nil
	}
	side := pos.Turn()
	wanted := func(sq chess.Square) bool {
		light := lightSquare(sq)
		if side == chess.Black {
			light = !light
		}
		if s.opposite {
			return !light
		}
		return light
	}

	best := -1 << 20
	var bestMoves []*chess.Move
	for _, move := range moves {
		next := pos.Update(move)
		score := 0
		for sq, piece := range next.Board().SquareMap() {
			if piece.Color() == side && wanted(sq) {
				score++
			}
		}
		if wanted(move.S2()) {
			score += 2
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
