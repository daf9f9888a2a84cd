package engine

import (
	"context"
	"math/rand"

	"github.com/notnil/chess"
)

// CCCP walks a strict priority cascade: Checkmate, Check, Capture, Push
// (forward progress toward the enemy back rank), and only then a random
// legal move. Ties inside a rank are broken uniformly at random. Mating and
// checking underpromotions to a knight are preferred over the queen ones.
type CCCP struct {
	rnd *rand.Rand
}

func NewCCCP(rnd *rand.Rand) *CCCP { return &CCCP{rnd: rnd} }

func (s *CCCP) Name() string { return "cccp" }

func (s *CCCP) Select(ctx context.Context, req Request) (*chess.Move, error) {
	pos := req.Current()
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil, nil
	}

	var knightMates, mates []*chess.Move
	for _, move := range moves {
		if pos.Update(move).Status() != chess.Checkmate {
			continue
		}
		if move.Promo() == chess.Knight {
			knightMates = append(knightMates, move)
		} else if move.Promo() == chess.Queen || move.Promo() == chess.NoPieceType {
			mates = append(mates, move)
		}
	}
	if move := pickMove(s.rnd, knightMates); move != nil {
		return move, nil
	}
	if move := pickMove(s.rnd, mates); move != nil {
		return move, nil
	}

	var knightChecks, checks []*chess.Move
	for _, move := range moves {
		if !move.HasTag(chess.Check) {
			continue
		}
		if move.Promo() == chess.Knight {
			knightChecks = append(knightChecks, move)
		} else if move.Promo() == chess.Queen || move.Promo() == chess.NoPieceType {
			checks = append(checks, move)
		}
	}
	if move := pickMove(s.rnd, knightChecks); move != nil {
		return move, nil
	}
	if move := pickMove(s.rnd, checks); move != nil {
		return move, nil
	}

	var captures []*chess.Move
	for _, move := range moves {
		if isCapture(move) {
			captures = append(captures, move)
		}
	}
	if move := pickMove(s.rnd, captures); move != nil {
		return move, nil
	}

	var pushes []*chess.Move
	for _, move := range moves {
		if isPush(pos, move) {
			pushes = append(pushes, move)
		}
	}
	if move := pickMove(s.rnd, pushes); move != nil {
		return move, nil
	}
	return pickMove(s.rnd, moves), nil
}

// Passafist is the cascade in reverse: it wants moves that are none of
// checkmate, check, capture or push, and walks push, capture, check,
// checkmate only when forced.
type Passafist struct {
	rnd *rand.Rand
}

func NewPassafist(rnd *rand.Rand) *Passafist { return &Passafist{rnd: rnd} }

func (s *Passafist) Name() string { return "passafist" }

func (s *Passafist) Select(ctx context.Context, req Request) (*chess.Move, error) {
	pos := req.Current()
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil, nil
	}

	var quiet, pushes, captures, checks, mates []*chess.Move
	for _, move := range moves {
		switch {
		case pos.Update(move).Status() == chess.Checkmate:
			mates = append(mates, move)
		case move.HasTag(chess.Check):
			checks = append(checks, move)
		case isCapture(move):
			captures = append(captures, move)
		case isPush(pos, move):
			pushes = append(pushes, move)
		default:
			quiet = append(quiet, move)
		}
	}
	for _, bucket := range [][]*chess.Move{quiet, pushes, captures, checks, mates} {
		if move := pickMove(s.rnd, bucket); move != nil {
			return move, nil
		}
	}
	return pickMove(s.rnd, moves), nil
}

func isCapture(move *chess.Move) bool {
	return move.HasTag(chess.Capture) || move.HasTag(chess.EnPassant)
}

// isPush reports whether move advances a piece toward the enemy back rank.
func isPush(pos *chess.Position, move *chess.Move) bool {
	if pos.Turn() == chess.White {
		return rankOf(move.S2()) > rankOf(move.S1())
	}
	return rankOf(move.S2()) < rankOf(move.S1())
}
