package engine

import (
	"context"
	"math/rand"

	"github.com/notnil/chess"
)

// SuicideKing marches its own king toward the enemy king. King moves that
// close the distance always beat non-king moves.
type SuicideKing struct {
	rnd *rand.Rand
}

func NewSuicideKing(rnd *rand.Rand) *SuicideKing { return &SuicideKing{rnd: rnd} }

func (s *SuicideKing) Name() string { return "suicide-king" }

func (s *SuicideKing) Select(ctx context.Context, req Request) (*chess.Move, error) {
	pos := req.Current()
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil, nil
	}
	side := pos.Turn()
	ourKing, ok1 := kingSquare(pos, side)
	theirKing, ok2 := kingSquare(pos, side.Other())
	if !ok1 || !ok2 {
		return pickMove(s.rnd, moves), nil
	}

	const kingMoveBonus = 100
	best := 1 << 20
	var bestMoves []*chess.Move
	for _, move := range moves {
		after, ok := kingSquare(pos.Update(move), side)
		if !ok {
			continue
		}
		priority := chebyshev(after, theirKing)
		if move.S1() == ourKing {
			priority -= kingMoveBonus
		}
		if priority < best {
			best = priority
			bestMoves = bestMoves[:0]
		}
		if priority == best {
			bestMoves = append(bestMoves, move)
		}
	}
	if move := pickMove(s.rnd, bestMoves); move != nil {
		return move, nil
	}
	return pickMove(s.rnd, moves), nil
}

// Runaway keeps its king as far from the nearest enemy piece as it can.
type Runaway struct {
	rnd *rand.Rand
}

func NewRunaway(rnd *rand.Rand) *Runaway { return &Runaway{rnd: rnd} }

func (s *Runaway) Name() string { return "runaway" }

func (s *Runaway) Select(ctx context.Context, req Request) (*chess.Move, error) {
	pos := req.Current()
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil, nil
	}
	side := pos.Turn()

	best := -1
	var bestMoves []*chess.Move
	for _, move := range moves {
		next := pos.Update(move)
		score := kingSafetyDistance(next, side)
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

// kingSafetyDistance is the distance from side's king to the nearest enemy
// piece, or 64 when the enemy has nothing left on the board.
func kingSafetyDistance(pos *chess.Position, side chess.Color) int {
	king, ok := kingSquare(pos, side)
	if !ok {
		return 0
	}
	enemies := pieceSquares(pos, side.Other())
	if len(enemies) == 0 {
		return 64
	}
	min := 64
	for _, sq := range enemies {
		if d := chebyshev(king, sq); d < min {
			min = d
		}
	}
	return min
}
