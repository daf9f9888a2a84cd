package engine

import (
	"context"
	"math/rand"

	"github.com/notnil/chess"
)

const antiPositionalOpening = 20

// AntiPositional violates development principles on purpose: it rewards
// moving the same piece kind again in the opening, rim squares (knights
// especially), blocking its own pawns, undeveloping to a starting square,
// wrecking its pawn structure and parking pieces where they can be taken.
// The highest-scoring offence wins, ties break at random; when nothing on
// offer is offensive it plays randomly.
type AntiPositional struct {
	rnd *rand.Rand
}

func NewAntiPositional(rnd *rand.Rand) *AntiPositional { return &AntiPositional{rnd: rnd} }

func (s *AntiPositional) Name() string { return "anti-positional" }

func (s *AntiPositional) Select(ctx context.Context, req Request) (*chess.Move, error) {
	pos := req.Current()
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil, nil
	}

	best := 0
	var bestMoves []*chess.Move
	for _, move := range moves {
		if ctx.Err() != nil {
			break
		}
		score := s.score(req, pos, move)
		if score > best {
			best = score
			bestMoves = bestMoves[:0]
		}
		if score == best {
			bestMoves = append(bestMoves, move)
		}
	}
	if best > 0 {
		if move := pickMove(s.rnd, bestMoves); move != nil {
			return move, nil
		}
	}
	return pickMove(s.rnd, moves), nil
}

func (s *AntiPositional) score(req Request, pos *chess.Position, move *chess.Move) int {
	piece := pos.Board().Piece(move.S1())
	if piece.Type() == chess.NoPieceType {
		return 0
	}
	score := 0

	// Shuffling the same piece kind around while still in the opening.
	if len(req.Moves) < antiPositionalOpening {
		repeats := 0
		for i, past := range req.Moves {
			if req.Positions[i].Board().Piece(past.S1()).Type() == piece.Type() {
				repeats++
			}
		}
		score += 2 * repeats
	}

	onRim := fileOf(move.S2()) == 0 || fileOf(move.S2()) == 7 ||
		rankOf(move.S2()) == 0 || rankOf(move.S2()) == 7
	if onRim {
		score += 2
		if piece.Type() == chess.Knight {
			score += 3
		}
	}

	if piece.Type() != chess.Pawn && blocksOwnPawn(pos, piece, move.S2()) {
		score += 3
	}

	if undevelops(piece, move.S2()) {
		score += 4
	}

	next := pos.Update(move)
	if piece.Type() == chess.Pawn {
		score += pawnStructureDamage(next, piece.Color(), move.S2())
	}

	if capture, ok := captureOn(next, move.S2()); ok {
		if recapturable(next.Update(capture), move.S2()) {
			score++
		} else {
			score += 3
		}
	}
	return score
}

// blocksOwnPawn reports whether landing on sq parks a piece directly in
// front of one of its own pawns.
func blocksOwnPawn(pos *chess.Position, piece chess.Piece, sq chess.Square) bool {
	rank := rankOf(sq) - 1
	if piece.Color() == chess.Black {
		rank = rankOf(sq) + 1
	}
	if rank < 0 || rank > 7 {
		return false
	}
	behind := pos.Board().Piece(squareAt(fileOf(sq), rank))
	return behind.Type() == chess.Pawn && behind.Color() == piece.Color()
}

// undevelops reports whether sq is a starting square for this piece kind
// and color.
func undevelops(piece chess.Piece, sq chess.Square) bool {
	backRank := 0
	if piece.Color() == chess.Black {
		backRank = 7
	}
	if rankOf(sq) != backRank {
		return false
	}
	for _, file := range homeFiles[piece.Type()] {
		if fileOf(sq) == file {
			return true
		}
	}
	return false
}

// pawnStructureDamage scores doubled and isolated pawns created on the
// destination file.
func pawnStructureDamage(pos *chess.Position, side chess.Color, sq chess.Square) int {
	damage := 0
	if pawnsOnFile(pos, side, fileOf(sq)) > 1 {
		damage += 2
	}
	supported := false
	for _, file := range []int{fileOf(sq) - 1, fileOf(sq) + 1} {
		if file >= 0 && file <= 7 && pawnsOnFile(pos, side, file) > 0 {
			supported = true
		}
	}
	if !supported {
		damage += 2
	}
	return damage
}

func pawnsOnFile(pos *chess.Position, side chess.Color, file int) int {
	count := 0
	for sq, piece := range pos.Board().SquareMap() {
		if fileOf(sq) == file && piece.Type() == chess.Pawn && piece.Color() == side {
			count++
		}
	}
	return count
}

// captureOn finds a legal opponent capture landing on sq, if any.
func captureOn(pos *chess.Position, sq chess.Square) (*chess.Move, bool) {
	for _, move := range pos.ValidMoves() {
		if move.S2() == sq && isCapture(move) {
			return move, true
		}
	}
	return nil, false
}

// recapturable reports whether the side to move can take back on sq.
func recapturable(pos *chess.Position, sq chess.Square) bool {
	_, ok := captureOn(pos, sq)
	return ok
}
