package engine

import (
	"context"
	"math/rand"

	"github.com/notnil/chess"
)

// Shuffle likes to take moves back: it prefers reversing its own previous
// move, then revisiting squares its pieces have been on before, and only
// then something new. Everything it knows about the past comes from the
// request's move history.
type Shuffle struct {
	rnd *rand.Rand
}

func NewShuffle(rnd *rand.Rand) *Shuffle { return &Shuffle{rnd: rnd} }

func (s *Shuffle) Name() string { return "shuffle" }

func (s *Shuffle) Select(ctx context.Context, req Request) (*chess.Move, error) {
	pos := req.Current()
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil, nil
	}

	// Our own past moves sit at every second index counting back from the
	// end; the last history entry was the opponent's.
	var lastOwn *chess.Move
	familiar := make(map[chess.Square]bool)
	for i := len(req.Moves) - 2; i >= 0; i -= 2 {
		if lastOwn == nil {
			lastOwn = req.Moves[i]
		}
		familiar[req.Moves[i].S1()] = true
		familiar[req.Moves[i].S2()] = true
	}

	if lastOwn != nil {
		var reversing []*chess.Move
		for _, move := range moves {
			if move.S1() == lastOwn.S2() && move.S2() == lastOwn.S1() {
				reversing = append(reversing, move)
			}
		}
		if move := pickMove(s.rnd, reversing); move != nil {
			return move, nil
		}
	}

	var revisits []*chess.Move
	for _, move := range moves {
		if familiar[move.S2()] {
			revisits = append(revisits, move)
		}
	}
	if move := pickMove(s.rnd, revisits); move != nil {
		return move, nil
	}
	return pickMove(s.rnd, moves), nil
}
