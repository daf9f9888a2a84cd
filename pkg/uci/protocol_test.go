package uci

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/notnil/chess"

	"github.com/gmkornilov/chess-weak-engines/pkg/engine"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// blockingStrategy parks in Select until released or cancelled, then defers
// to the caller's random fallback by returning no move.
type blockingStrategy struct {
	release chan struct{}
}

func (s *blockingStrategy) Name() string { return "blocking" }

func (s *blockingStrategy) Select(ctx context.Context, req engine.Request) (*chess.Move, error) {
	select {
	case <-s.release:
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func newTestProtocol(strategy engine.Strategy) (*Protocol, *syncBuffer) {
	out := &syncBuffer{}
	player := engine.NewPlayer(strategy, nil, rand.New(rand.NewSource(1)))
	return New("test-engine", "test-author", player, out), out
}

func newRandomProtocol() (*Protocol, *syncBuffer) {
	return newTestProtocol(engine.NewRandom(rand.New(rand.NewSource(1))))
}

func waitThink(t *testing.T, p *Protocol) {
	t.Helper()
	select {
	case <-p.thinkDone:
	case <-time.After(3 * time.Second):
		t.Fatal("think did not finish in time")
	}
}

func countBestmoves(out *syncBuffer) int {
	return strings.Count(out.String(), "bestmove ")
}

func currentFEN(p *Protocol) string {
	return p.positions[len(p.positions)-1].String()
}

func TestHandshake(t *testing.T) {
	p, out := newRandomProtocol()
	p.Handle("uci")
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	want := []string{"id name test-engine", "id author test-author", "uciok"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i, line := range want {
		if lines[i] != line {
			t.Errorf("line %d = %q, want %q", i, lines[i], line)
		}
	}
}

func TestIsReady(t *testing.T) {
	p, out := newRandomProtocol()
	p.Handle("isready")
	if got := out.String(); got != "readyok\n" {
		t.Fatalf("got %q, want readyok", got)
	}
}

func TestUnknownCommandsAreIgnored(t *testing.T) {
	p, out := newRandomProtocol()
	if !p.Handle("frobnicate the board") {
		t.Fatal("unknown command ended the session")
	}
	if !p.Handle("") {
		t.Fatal("blank line ended the session")
	}
	if out.String() != "" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestQuitEndsSession(t *testing.T) {
	p, _ := newRandomProtocol()
	if p.Handle("quit") {
		t.Fatal("quit did not end the session")
	}
}

func TestPositionStartposWithMoves(t *testing.T) {
	p, _ := newRandomProtocol()
	p.Handle("position startpos moves e2e4 e7e5")

	want := chess.NewGame()
	for _, token := range []string{"e2e4", "e7e5"} {
		move, err := chess.UCINotation{}.Decode(want.Position(), token)
		if err != nil {
			t.Fatal(err)
		}
		if err := want.Move(move); err != nil {
			t.Fatal(err)
		}
	}
	if got := currentFEN(p); got != want.Position().String() {
		t.Fatalf("got %q, want %q", got, want.Position().String())
	}
	if len(p.positions) != 3 || len(p.moves) != 2 {
		t.Fatalf("history has %d positions and %d moves", len(p.positions), len(p.moves))
	}
}

func TestPositionIsIdempotent(t *testing.T) {
	p, _ := newRandomProtocol()
	p.Handle("position startpos moves e2e4")
	first := currentFEN(p)
	p.Handle("position startpos moves e2e4")
	if got := currentFEN(p); got != first {
		t.Fatalf("repeated position diverged: %q vs %q", got, first)
	}
}

func TestPositionFEN(t *testing.T) {
	p, _ := newRandomProtocol()
	fen := "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3"
	p.Handle("position fen " + fen)
	if got := currentFEN(p); got != fen {
		t.Fatalf("got %q, want %q", got, fen)
	}
}

func TestMalformedFENLeavesPositionUntouched(t *testing.T) {
	p, _ := newRandomProtocol()
	p.Handle("position startpos moves e2e4")
	before := currentFEN(p)
	p.Handle("position fen this is not a fen")
	if got := currentFEN(p); got != before {
		t.Fatalf("malformed fen changed the position to %q", got)
	}
}

func TestIllegalMoveTokensAreSkipped(t *testing.T) {
	p, _ := newRandomProtocol()
	// The second e2e4 is illegal; e7e5 still applies.
	p.Handle("position startpos moves e2e4 e2e4 e7e5")

	q, _ := newRandomProtocol()
	q.Handle("position startpos moves e2e4 e7e5")
	if got, want := currentFEN(p), currentFEN(q); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNewGameResets(t *testing.T) {
	p, _ := newRandomProtocol()
	p.Handle("position startpos moves e2e4 e7e5")
	p.Handle("ucinewgame")
	if got := currentFEN(p); got != chess.StartingPosition().String() {
		t.Fatalf("got %q after ucinewgame", got)
	}
	if len(p.moves) != 0 {
		t.Fatalf("move history survived ucinewgame: %v", p.moves)
	}
}

func TestGoEmitsOneLegalBestmove(t *testing.T) {
	p, out := newRandomProtocol()
	p.Handle("position fen 8/8/8/8/8/8/8/K6k w - - 0 1")
	p.Handle("go movetime 50")
	waitThink(t, p)

	if n := countBestmoves(out); n != 1 {
		t.Fatalf("got %d bestmove lines, want 1:\n%s", n, out.String())
	}
	move := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(out.String()), "bestmove"))
	switch move {
	case "a1a2", "a1b1", "a1b2":
	default:
		t.Fatalf("bestmove %q is not a legal king move", move)
	}
}

func TestNoBestmoveWithoutLegalMoves(t *testing.T) {
	p, out := newRandomProtocol()
	p.Handle("position fen rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 0 3")
	p.Handle("go movetime 50")
	waitThink(t, p)

	if n := countBestmoves(out); n != 0 {
		t.Fatalf("got a bestmove in a mated position:\n%s", out.String())
	}
}

func TestIsReadyWhileThinking(t *testing.T) {
	strategy := &blockingStrategy{release: make(chan struct{})}
	p, out := newTestProtocol(strategy)
	p.Handle("position startpos")
	p.Handle("go movetime 5000")

	p.Handle("isready")
	if got := out.String(); !strings.Contains(got, "readyok") {
		t.Fatalf("no readyok during think:\n%s", got)
	}
	if countBestmoves(out) != 0 {
		t.Fatalf("bestmove before the think finished:\n%s", out.String())
	}

	close(strategy.release)
	waitThink(t, p)
	if n := countBestmoves(out); n != 1 {
		t.Fatalf("got %d bestmove lines, want 1:\n%s", n, out.String())
	}
}

func TestGoWhileThinkingIsIgnored(t *testing.T) {
	strategy := &blockingStrategy{release: make(chan struct{})}
	p, out := newTestProtocol(strategy)
	p.Handle("position startpos")
	p.Handle("go movetime 5000")
	p.Handle("go movetime 5000")

	close(strategy.release)
	waitThink(t, p)
	if n := countBestmoves(out); n != 1 {
		t.Fatalf("got %d bestmove lines, want 1:\n%s", n, out.String())
	}
}

func TestStopInterruptsThink(t *testing.T) {
	strategy := &blockingStrategy{}
	p, out := newTestProtocol(strategy)
	p.Handle("position startpos")
	p.Handle("go wtime 600000")
	p.Handle("stop")
	waitThink(t, p)

	// The cancelled strategy falls back to a random legal move; the single
	// bestmove line still goes out.
	if n := countBestmoves(out); n != 1 {
		t.Fatalf("got %d bestmove lines, want 1:\n%s", n, out.String())
	}
}

func TestRunReadsUntilQuit(t *testing.T) {
	p, out := newRandomProtocol()
	input := "uci\nisready\nposition startpos moves e2e4\nquit\nisready\n"
	if err := p.Run(strings.NewReader(input)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	for _, want := range []string{"uciok", "readyok"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	// The isready after quit must never be reached.
	if strings.Count(got, "readyok") != 1 {
		t.Fatalf("session kept reading past quit:\n%s", got)
	}
}

func TestQuitDropsPendingBestmove(t *testing.T) {
	strategy := &blockingStrategy{}
	p, out := newTestProtocol(strategy)
	p.Handle("position startpos")
	p.Handle("go movetime 5000")
	if p.Handle("quit") {
		t.Fatal("quit did not end the session")
	}
	waitThink(t, p)

	if n := countBestmoves(out); n != 0 {
		t.Fatalf("bestmove leaked after quit:\n%s", out.String())
	}
}
