package engine

import (
	"context"
	"math/rand"

	"github.com/notnil/chess"
)

const (
	singlePlayerDepth = 3
	singlePlayerWidth = 8
)

// SinglePlayer runs a shallow fixed-depth search that maximizes the material
// of whoever is to move at each node, which amounts to assuming the opponent
// will pass. That is the whole joke of this engine; it is a deliberate
// simplification, not a bug to fix. Node expansion is width-limited over the
// canonically sorted move list.
type SinglePlayer struct {
	rnd *rand.Rand
}

func NewSinglePlayer(rnd *rand.Rand) *SinglePlayer { return &SinglePlayer{rnd: rnd} }

func (s *SinglePlayer) Name() string { return "single-player" }

func (s *SinglePlayer) Select(ctx context.Context, req Request) (*chess.Move, error) {
	pos := req.Current()
	moves := sortedMoves(pos)
	if len(moves) == 0 {
		return nil, nil
	}
	depth := req.Depth
	if depth <= 0 || depth > 4 {
		depth = singlePlayerDepth
	}

	best := -(1 << 30)
	var bestMoves []*chess.Move
	for _, move := range moves {
		if ctx.Err() != nil {
			break
		}
		next := pos.Update(move)
		if next.Status() == chess.Checkmate {
			return move, nil
		}
		score := s.search(ctx, next, depth-1)
		if score > best {
			best = score
			bestMoves = bestMoves[:0]
		}
		if score == best {
			bestMoves = append(bestMoves, move)
		}
	}
	if move := pickMove(s.rnd, bestMoves); move != nil {
		return move, nil
	}
	return pickMove(s.rnd, moves), nil
}

func (s *SinglePlayer) search(ctx context.Context, pos *chess.Position, depth int) int {
	if depth == 0 || ctx.Err() != nil {
		return sideMaterial(pos)
	}
	moves := sortedMoves(pos)
	if len(moves) == 0 {
		return sideMaterial(pos)
	}
	if len(moves) > singlePlayerWidth {
		moves = moves[:singlePlayerWidth]
	}
	best := -(1 << 30)
	for _, move := range moves {
		if score := s.search(ctx, pos.Update(move), depth-1); score > best {
			best = score
		}
	}
	return best
}

// sideMaterial counts the material of the side to move only.
func sideMaterial(pos *chess.Position) int {
	total := 0
	for _, piece := range pos.Board().SquareMap() {
		if piece.Color() == pos.Turn() {
			total += pieceValues[piece.Type()]
		}
	}
	return total
}
