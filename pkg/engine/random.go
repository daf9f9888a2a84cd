package engine

import (
	"context"
	"math/rand"

	"github.com/notnil/chess"
)

// Random plays a uniformly random legal move. It is the baseline every other
// strategy is measured against.
type Random struct {
	rnd *rand.Rand
}

func NewRandom(rnd *rand.Rand) *Random {
	return &Random{rnd: rnd}
}

func (s *Random) Name() string { return "random" }

func (s *Random) Select(ctx context.Context, req Request) (*chess.Move, error) {
	return pickMove(s.rnd, req.Current().ValidMoves()), nil
}
