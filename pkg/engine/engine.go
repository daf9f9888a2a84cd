package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/notnil/chess"

	"github.com/gmkornilov/chess-weak-engines/pkg/book"
)

// Request carries everything a strategy may inspect when choosing a move:
// the session's full position history, the moves that produced it and the
// time budget granted for this decision. Positions[0] is the root position
// the session was set up from, the last element is the position to move in.
// History-keeping strategies rebuild their bookkeeping from Moves on every
// call, so they stay correct even after moves they did not choose themselves.
type Request struct {
	Positions []*chess.Position
	Moves     []*chess.Move
	Budget    time.Duration
	Depth     int
}

// Current returns the position the engine has to move in.
func (r Request) Current() *chess.Position {
	return r.Positions[len(r.Positions)-1]
}

// Strategy selects a move for the side to move. A nil move is returned only
// when the position has no legal moves. Implementations must not mutate the
// positions they are given and should poll ctx at their checkpoints when the
// work is non-trivial.
type Strategy interface {
	Name() string
	Select(ctx context.Context, req Request) (*chess.Move, error)
}

// Player runs the full selection pipeline shared by the UCI shell and the
// arena: opening book first, then the strategy, then a uniform random legal
// move if the strategy failed or returned nothing. This is the single place
// where strategy errors degrade into the random fallback.
type Player struct {
	Strategy Strategy
	Book     *book.Book
	rnd      *rand.Rand
}

func NewPlayer(strategy Strategy, b *book.Book, rnd *rand.Rand) *Player {
	return &Player{
		Strategy: strategy,
		Book:     b,
		rnd:      rnd,
	}
}

// GetMove behaves identically to the protocol path's move selection for the
// same request. It returns nil (and no error) only when the side to move has
// no legal moves.
func (p *Player) GetMove(ctx context.Context, req Request) (*chess.Move, error) {
	pos := req.Current()
	legal := pos.ValidMoves()
	if len(legal) == 0 {
		return nil, nil
	}
	if p.Book != nil {
		if move, ok := p.Book.Lookup(pos); ok {
			return move, nil
		}
	}
	move, err := p.Strategy.Select(ctx, req)
	if err != nil || move == nil {
		return legal[p.rnd.Intn(len(legal))], nil
	}
	return move, nil
}

// NewRequest builds a single-position request, for callers that have no
// history to offer (the HTTP surface, one-off lookups).
func NewRequest(pos *chess.Position, budget time.Duration) Request {
	return Request{
		Positions: []*chess.Position{pos},
		Budget:    budget,
	}
}

// sortedMoves returns the legal moves of pos in ascending UCI-string order,
// the canonical order used by the constant-indexed strategies.
func sortedMoves(pos *chess.Position) []*chess.Move {
	moves := pos.ValidMoves()
	sorted := make([]*chess.Move, len(moves))
	copy(sorted, moves)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].String() < sorted[j].String()
	})
	return sorted
}

func pickMove(rnd *rand.Rand, moves []*chess.Move) *chess.Move {
	if len(moves) == 0 {
		return nil
	}
	return moves[rnd.Intn(len(moves))]
}

// ParseFEN builds a game from a FEN string, rejecting malformed input
// without any partial state.
func ParseFEN(fen string) (*chess.Game, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse fen %q: %w", fen, err)
	}
	return chess.NewGame(opt), nil
}
