package engine

import (
	"context"
	"sort"

	"github.com/notnil/chess"
)

// Alphabetical plays the move whose SAN comes first alphabetically; reversed
// it plays the last one. "Bb5" before "Nf3" before "a4" (SAN sorts uppercase
// piece letters ahead of pawn moves).
type Alphabetical struct {
	reverse bool
}

func NewAlphabetical() *Alphabetical        { return &Alphabetical{} }
func NewReverseAlphabetical() *Alphabetical { return &Alphabetical{reverse: true} }

func (s *Alphabetical) Name() string {
	if s.reverse {
		return "reverse-alphabetical"
	}
	return "alphabetical"
}

func (s *Alphabetical) Select(ctx context.Context, req Request) (*chess.Move, error) {
	pos := req.Current()
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil, nil
	}
	type sanMove struct {
		san  string
		move *chess.Move
	}
	notated := make([]sanMove, len(moves))
	for i, move := range moves {
		notated[i] = sanMove{chess.AlgebraicNotation{}.Encode(pos, move), move}
	}
	sort.Slice(notated, func(i, j int) bool { return notated[i].san < notated[j].san })
	if s.reverse {
		return notated[len(notated)-1].move, nil
	}
	return notated[0].move, nil
}
