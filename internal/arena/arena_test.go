package arena

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/gmkornilov/chess-weak-engines/internal/config"
)

func testConfig() *config.ArenaConfiguration {
	cfg := &config.ArenaConfiguration{}
	cfg.Arena.Workers = 2
	cfg.Arena.MoveTimeMs = 50
	cfg.Arena.MaxPlies = 60
	cfg.Arena.Seed = 7
	cfg.Arena.Strategies = "random,cccp"
	return cfg
}

func TestPairingsDoubleRoundRobin(t *testing.T) {
	a := New(testConfig(), nil, nil)
	pairings, err := a.pairings()
	if err != nil {
		t.Fatalf("pairings: %v", err)
	}
	want := []pairing{
		{white: "random", black: "cccp"},
		{white: "cccp", black: "random"},
	}
	if len(pairings) != len(want) {
		t.Fatalf("got %d pairings, want %d: %v", len(pairings), len(want), pairings)
	}
	for i, pr := range want {
		if pairings[i] != pr {
			t.Errorf("pairing %d = %v, want %v", i, pairings[i], pr)
		}
	}
}

func TestPairingsSelfPlay(t *testing.T) {
	cfg := testConfig()
	cfg.Arena.SelfPlay = true
	a := New(cfg, nil, nil)
	pairings, err := a.pairings()
	if err != nil {
		t.Fatalf("pairings: %v", err)
	}
	if len(pairings) != 4 {
		t.Fatalf("got %d pairings, want 4: %v", len(pairings), pairings)
	}
}

func TestPairingsGauntlet(t *testing.T) {
	cfg := testConfig()
	cfg.External.Path = "/usr/bin/true"
	a := New(cfg, nil, nil)
	pairings, err := a.pairings()
	if err != nil {
		t.Fatalf("pairings: %v", err)
	}
	if len(pairings) != 4 {
		t.Fatalf("got %d pairings, want 4: %v", len(pairings), pairings)
	}
	for _, pr := range pairings {
		if pr.white != externalName && pr.black != externalName {
			t.Errorf("gauntlet pairing %v does not involve the external engine", pr)
		}
	}
}

func TestPairingsRejectUnknownStrategy(t *testing.T) {
	cfg := testConfig()
	cfg.Arena.Strategies = "random,definitely-not-a-strategy"
	a := New(cfg, nil, nil)
	if _, err := a.pairings(); err == nil {
		t.Fatal("expected an error for an unknown strategy")
	}
}

func TestPlayGameCompletes(t *testing.T) {
	a := New(testConfig(), nil, nil)
	white, closeWhite, err := a.newPicker("random", 1)
	if err != nil {
		t.Fatal(err)
	}
	defer closeWhite()
	black, closeBlack, err := a.newPicker("cccp", 2)
	if err != nil {
		t.Fatal(err)
	}
	defer closeBlack()

	res, err := a.playGame(context.Background(), pairing{white: "random", black: "cccp"}, white, black)
	if err != nil {
		t.Fatalf("playGame: %v", err)
	}
	switch res.Result {
	case "1-0", "0-1", "1/2-1/2":
	default:
		t.Fatalf("unexpected result %q", res.Result)
	}
	if res.Plies == 0 || res.Plies > a.cfg.Arena.MaxPlies {
		t.Fatalf("unexpected ply count %d", res.Plies)
	}
	if res.Method == "" {
		t.Fatal("missing termination method")
	}
	if res.PGN == "" {
		t.Fatal("missing PGN")
	}
}

func TestRunCollectsStandings(t *testing.T) {
	cfg := testConfig()
	cfg.Arena.MaxPlies = 40
	a := New(cfg, nil, nil)
	standings, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(standings.Games) != 2 {
		t.Fatalf("got %d games, want 2", len(standings.Games))
	}
	for _, name := range []string{"random", "cccp"} {
		score := standings.Scores[name]
		if score == nil {
			t.Fatalf("no score for %s", name)
		}
		if score.Games() != 2 {
			t.Errorf("%s played %d games, want 2", name, score.Games())
		}
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := New(testConfig(), nil, nil)
	if _, err := a.Run(ctx); err == nil {
		t.Fatal("expected an error from a cancelled tournament")
	}
}

func TestScoreStatistics(t *testing.T) {
	score := Score{Wins: 2, Losses: 1, Draws: 1}
	if got := score.Games(); got != 4 {
		t.Errorf("Games() = %d, want 4", got)
	}
	if got := score.Points(); got != 2.5 {
		t.Errorf("Points() = %v, want 2.5", got)
	}
	if got := score.WinningFraction(); got != 0.625 {
		t.Errorf("WinningFraction() = %v, want 0.625", got)
	}
	if got := score.EloDifference(); math.Abs(got-88.7) > 0.5 {
		t.Errorf("EloDifference() = %v, want about 88.7", got)
	}
	if got := score.LikelihoodOfSuperiority(); got < 0.70 || got > 0.75 {
		t.Errorf("LikelihoodOfSuperiority() = %v, want about 0.72", got)
	}
}

func TestScoreStatisticsEdgeCases(t *testing.T) {
	if got := (Score{}).WinningFraction(); got != 0 {
		t.Errorf("empty WinningFraction() = %v, want 0", got)
	}
	if got := (Score{}).LikelihoodOfSuperiority(); got != 0.5 {
		t.Errorf("empty LikelihoodOfSuperiority() = %v, want 0.5", got)
	}
	if got := (Score{Wins: 3}).EloDifference(); !math.IsInf(got, 1) {
		t.Errorf("perfect score EloDifference() = %v, want +Inf", got)
	}
	if got := (Score{Losses: 3}).EloDifference(); !math.IsInf(got, -1) {
		t.Errorf("zero score EloDifference() = %v, want -Inf", got)
	}
}

func TestStandingsTally(t *testing.T) {
	s := NewStandings()
	s.Add(GameResult{White: "a", Black: "b", Result: "1-0"})
	s.Add(GameResult{White: "a", Black: "b", Result: "0-1"})
	s.Add(GameResult{White: "b", Black: "a", Result: "1/2-1/2"})

	a, b := s.Scores["a"], s.Scores["b"]
	if a.Wins != 1 || a.Losses != 1 || a.Draws != 1 {
		t.Errorf("a = %+v, want 1/1/1", a)
	}
	if b.Wins != 1 || b.Losses != 1 || b.Draws != 1 {
		t.Errorf("b = %+v, want 1/1/1", b)
	}

	table := s.String()
	for _, want := range []string{"engine", "wins", "a", "b"} {
		if !strings.Contains(table, want) {
			t.Errorf("table missing %q:\n%s", want, table)
		}
	}
}
