package engine

import (
	"context"
	"math"

	"github.com/notnil/chess"
)

// Constant maps the fractional part of a fixed irrational number to an index
// into the legal-move list sorted by UCI string. Fully deterministic: the
// same position always yields the same move.
type Constant struct {
	name     string
	fraction float64
}

// NewPi indexes moves with the fractional part of π (0.14159...). From the
// starting position this picks index ⌊0.14159×20⌋ = 2 of the sorted list.
func NewPi() *Constant {
	return &Constant{name: "pi", fraction: math.Pi - 3}
}

// NewEuler indexes moves with the fractional part of e (0.71828...).
func NewEuler() *Constant {
	return &Constant{name: "euler", fraction: math.E - 2}
}

func (s *Constant) Name() string { return s.name }

func (s *Constant) Select(ctx context.Context, req Request) (*chess.Move, error) {
	moves := sortedMoves(req.Current())
	if len(moves) == 0 {
		return nil, nil
	}
	index := int(s.fraction * float64(len(moves)))
	if index >= len(moves) {
		index = len(moves) - 1
	}
	return moves[index], nil
}
