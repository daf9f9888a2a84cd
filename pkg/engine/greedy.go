package engine

import (
	"context"
	"math/rand"

	"github.com/notnil/chess"
)

var pieceValues = map[chess.PieceType]int{
	chess.Pawn:   10,
	chess.Knight: 30,
	chess.Bishop: 32,
	chess.Rook:   48,
	chess.Queen:  90,
}

// GreedyCapture always takes the most valuable piece on offer and otherwise
// plays randomly. It never considers whether the capture is safe.
type GreedyCapture struct {
	rnd *rand.Rand
}

func NewGreedyCapture(rnd *rand.Rand) *GreedyCapture { return &GreedyCapture{rnd: rnd} }

func (s *GreedyCapture) Name() string { return "greedy-capture" }

func (s *GreedyCapture) Select(ctx context.Context, req Request) (*chess.Move, error) {
	pos := req.Current()
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil, nil
	}
	best := -1
	var captures []*chess.Move
	for _, move := range moves {
		if !isCapture(move) {
			continue
		}
		value := victimValue(pos, move)
		if value > best {
			best = value
			captures = captures[:0]
		}
		if value == best {
			captures = append(captures, move)
		}
	}
	if move := pickMove(s.rnd, captures); move != nil {
		return move, nil
	}
	return pickMove(s.rnd, moves), nil
}

func victimValue(pos *chess.Position, move *chess.Move) int {
	if move.HasTag(chess.EnPassant) {
		return pieceValues[chess.Pawn]
	}
	return pieceValues[pos.Board().Piece(move.S2()).Type()]
}
