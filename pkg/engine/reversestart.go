package engine

import (
	"context"
	"math/rand"

	"github.com/notnil/chess"
)

// ReverseStart drags its army toward the squares the opposing army started
// the game on: every piece is pulled to the nearest home square of its own
// kind on the far side. A move is only accepted when it improves the total
// pull, otherwise play is random.
type ReverseStart struct {
	rnd *rand.Rand
}

func NewReverseStart(rnd *rand.Rand) *ReverseStart { return &ReverseStart{rnd: rnd} }

func (s *ReverseStart) Name() string { return "reverse-start" }

// Home files of the back-rank pieces. Pawns target the whole far pawn rank.
var homeFiles = map[chess.PieceType][]int{
	chess.Rook:   {0, 7},
	chess.Knight: {1, 6},
	chess.Bishop: {2, 5},
	chess.Queen:  {3},
	chess.King:   {4},
}

func (s *ReverseStart) Select(ctx context.Context, req Request) (*chess.Move, error) {
	pos := req.Current()
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil, nil
	}
	side := pos.Turn()
	current := reverseStartScore(pos, side)

	best := current
	var bestMoves []*chess.Move
	for _, move := range moves {
		score := reverseStartScore(pos.Update(move), side)
		if score < best {
			best = score
			bestMoves = bestMoves[:0]
		}
		if score == best {
			bestMoves = append(bestMoves, move)
		}
	}
	if best < current {
		if move := pickMove(s.rnd, bestMoves); move != nil {
			return move, nil
		}
	}
	return pickMove(s.rnd, moves), nil
}

// reverseStartScore sums, over side's pieces, the distance to the nearest
// starting square of the same piece kind on the opponent's side of the board.
func reverseStartScore(pos *chess.Position, side chess.Color) int {
	backRank, pawnRank := 7, 6
	if side == chess.Black {
		backRank, pawnRank = 0, 1
	}
	total := 0
	for sq, piece := range pos.Board().SquareMap() {
		if piece.Color() != side {
			continue
		}
		if piece.Type() == chess.Pawn {
			total += abs(rankOf(sq) - pawnRank)
			continue
		}
		min := 64
		for _, file := range homeFiles[piece.Type()] {
			if d := chebyshev(sq, squareAt(file, backRank)); d < min {
				min = d
			}
		}
		total += min
	}
	return total
}
