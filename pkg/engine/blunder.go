package engine

import (
	"context"
	"math/rand"
	"sort"

	"github.com/notnil/chess"
)

// Blunder hunts for the move that damages its own material balance the most,
// preferring moves that leave a piece hanging for the opponent to take.
type Blunder struct {
	rnd *rand.Rand
}

func NewBlunder(rnd *rand.Rand) *Blunder { return &Blunder{rnd: rnd} }

func (s *Blunder) Name() string { return "blunder" }

func (s *Blunder) Select(ctx context.Context, req Request) (*chess.Move, error) {
	pos := req.Current()
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil, nil
	}
	side := pos.Turn()

	type scored struct {
		move *chess.Move
		next *chess.Position
		loss int
	}
	before := materialBalance(pos, side)
	candidates := make([]scored, 0, len(moves))
	for _, move := range moves {
		if ctx.Err() != nil {
			break
		}
		next := pos.Update(move)
		candidates = append(candidates, scored{
			move: move,
			next: next,
			loss: before - materialBalance(next, side),
		})
	}
	if len(candidates) == 0 {
		return pickMove(s.rnd, moves), nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].loss > candidates[j].loss
	})
	worst := candidates
	if len(worst) > 3 {
		worst = worst[:3]
	}
	for _, c := range worst {
		if hangsPiece(c.next) {
			return c.move, nil
		}
	}
	return worst[0].move, nil
}

// hangsPiece reports whether the opponent has any capture available, i.e.
// the move just played left something en prise.
func hangsPiece(pos *chess.Position) bool {
	for _, move := range pos.ValidMoves() {
		if isCapture(move) {
			return true
		}
	}
	return false
}

func materialBalance(pos *chess.Position, side chess.Color) int {
	balance := 0
	for _, piece := range pos.Board().SquareMap() {
		value := pieceValues[piece.Type()]
		if piece.Color() == side {
			balance += value
		} else {
			balance -= value
		}
	}
	return balance
}
