package engine

import (
	"context"
	"math/rand"

	"github.com/notnil/chess"
)

// KingDistance scores a move by the average distance between the king's
// current square and the side's pieces after the move. Swarm maximizes it
// (pieces flee the king), Huddle minimizes it (pieces crowd the king).
type KingDistance struct {
	rnd    *rand.Rand
	huddle bool
}

func NewSwarm(rnd *rand.Rand) *KingDistance  { return &KingDistance{rnd: rnd} }
func NewHuddle(rnd *rand.Rand) *KingDistance { return &KingDistance{rnd: rnd, huddle: true} }

func (s *KingDistance) Name() string {
	if s.huddle {
		return "huddle"
	}
	return "swarm"
}

func (s *KingDistance) Select(ctx context.Context, req Request) (*chess.Move, error) {
	pos := req.Current()
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil, nil
	}
	side := pos.Turn()
	king, ok := kingSquare(pos, side)
	if !ok {
		return pickMove(s.rnd, moves), nil
	}

	var bestMoves []*chess.Move
	bestScore := 0.0
	for _, move := range moves {
		next := pos.Update(move)
		score := averageDistance(next, king, side)
		if s.huddle {
			score = -score
		}
		if len(bestMoves) == 0 || score > bestScore {
			bestScore = score
			bestMoves = bestMoves[:0]
		}
		if score == bestScore {
			bestMoves = append(bestMoves, move)
		}
	}
	return pickMove(s.rnd, bestMoves), nil
}

func averageDistance(pos *chess.Position, from chess.Square, side chess.Color) float64 {
	squares := pieceSquares(pos, side)
	if len(squares) == 0 {
		return 0
	}
	total := 0
	for _, sq := range squares {
		total += chebyshev(from, sq)
	}
	return float64(total) / float64(len(squares))
}
