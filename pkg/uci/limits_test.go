package uci

import (
	"testing"
	"time"

	"github.com/notnil/chess"
)

func TestParseLimits(t *testing.T) {
	args := []string{"wtime", "60000", "btime", "45000", "winc", "1000", "binc", "2000", "movestogo", "30", "depth", "4", "movetime", "250"}
	got := parseLimits(args)
	want := Limits{
		WhiteTime:      60000,
		BlackTime:      45000,
		WhiteIncrement: 1000,
		BlackIncrement: 2000,
		MovesToGo:      30,
		Depth:          4,
		MoveTime:       250,
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestParseLimitsTolerantOfGarbage(t *testing.T) {
	got := parseLimits([]string{"wtime", "abc", "infinite", "movetime"})
	if got != (Limits{}) {
		t.Fatalf("got %+v, want zero limits", got)
	}
}

func TestBudget(t *testing.T) {
	cases := []struct {
		name   string
		limits Limits
		side   chess.Color
		want   time.Duration
	}{
		{"movetime wins", Limits{MoveTime: 250, WhiteTime: 60000}, chess.White, 250 * time.Millisecond},
		{"twentieth of clock", Limits{WhiteTime: 60000}, chess.White, 3 * time.Second},
		{"black clock for black", Limits{WhiteTime: 60000, BlackTime: 4000}, chess.Black, 200 * time.Millisecond},
		{"clamped below", Limits{WhiteTime: 400}, chess.White, minThink},
		{"clamped above", Limits{WhiteTime: 10000000}, chess.White, maxThink},
		{"default clock", Limits{}, chess.White, minThink},
	}
	for _, tc := range cases {
		if got := tc.limits.Budget(tc.side); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}
