package engine

import (
	"context"
	"math/rand"

	"github.com/notnil/chess"
)

// Mobility scores a move by the number of legal replies it leaves the
// opponent. Lawyer and Paralegal hand the opponent the widest choice,
// Criminal and Strangler the narrowest. Ties break uniformly at random.
type Mobility struct {
	rnd      *rand.Rand
	name     string
	minimize bool
}

func NewLawyer(rnd *rand.Rand) *Mobility    { return &Mobility{rnd: rnd, name: "lawyer"} }
func NewParalegal(rnd *rand.Rand) *Mobility { return &Mobility{rnd: rnd, name: "paralegal"} }

func NewCriminal(rnd *rand.Rand) *Mobility {
	return &Mobility{rnd: rnd, name: "criminal", minimize: true}
}

func NewStrangler(rnd *rand.Rand) *Mobility {
	return &Mobility{rnd: rnd, name: "strangler", minimize: true}
}

func (s *Mobility) Name() string { return s.name }

func (s *Mobility) Select(ctx context.Context, req Request) (*chess.Move, error) {
	pos := req.Current()
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil, nil
	}

	var bestMoves []*chess.Move
	best := 0
	for _, move := range moves {
		if ctx.Err() != nil {
			break
		}
		count := len(pos.Update(move).ValidMoves())
		if s.minimize {
			count = -count
		}
		if len(bestMoves) == 0 || count > best {
			best = count
			bestMoves = bestMoves[:0]
		}
		if count == best {
			bestMoves = append(bestMoves, move)
		}
	}
	if move := pickMove(s.rnd, bestMoves); move != nil {
		return move, nil
	}
	return pickMove(s.rnd, moves), nil
}
