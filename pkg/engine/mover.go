package engine

import (
	"context"
	"math/rand"

	"github.com/notnil/chess"
)

// Mover always moves the piece that has moved the least so far, and among
// those prefers the least-visited destination square. Its bookkeeping
// (per-piece move counts keyed by a stable piece identity) is rebuilt from
// the request's move history on every call, so it stays consistent no matter
// who actually played the earlier moves or whether the process restarted.
type Mover struct {
	rnd *rand.Rand
}

func NewMover(rnd *rand.Rand) *Mover { return &Mover{rnd: rnd} }

func (s *Mover) Name() string { return "mover" }

func (s *Mover) Select(ctx context.Context, req Request) (*chess.Move, error) {
	pos := req.Current()
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil, nil
	}

	idBySquare, moveCounts, visits := replayHistory(req)

	type stats struct {
		pieceCount int
		destCount  int
	}
	best := stats{1 << 20, 1 << 20}
	var bestMoves []*chess.Move
	for _, move := range moves {
		cur := stats{
			pieceCount: moveCounts[idBySquare[move.S1()]],
			destCount:  visits[move.S2()],
		}
		if cur.pieceCount < best.pieceCount ||
			(cur.pieceCount == best.pieceCount && cur.destCount < best.destCount) {
			best = cur
			bestMoves = bestMoves[:0]
		}
		if cur == best {
			bestMoves = append(bestMoves, move)
		}
	}
	return pickMove(s.rnd, bestMoves), nil
}

// replayHistory walks the session's moves from the root position, assigning
// a stable id to every piece and counting how often each id moved and each
// square was landed on. Castling rook hops and en-passant removals are not
// tracked separately; the counts only steer a preference, they do not need
// to be exact.
func replayHistory(req Request) (map[chess.Square]int, map[int]int, map[chess.Square]int) {
	idBySquare := make(map[chess.Square]int)
	nextID := 1
	for sq := range req.Positions[0].Board().SquareMap() {
		idBySquare[sq] = nextID
		nextID++
	}
	moveCounts := make(map[int]int)
	visits := make(map[chess.Square]int)
	for _, move := range req.Moves {
		id := idBySquare[move.S1()]
		if id == 0 {
			id = nextID
			nextID++
		}
		delete(idBySquare, move.S1())
		idBySquare[move.S2()] = id
		moveCounts[id]++
		visits[move.S2()]++
	}
	return idBySquare, moveCounts, visits
}
