package arena

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Score is one engine's tally in the standings.
type Score struct {
	Wins   int
	Losses int
	Draws  int
}

func (s Score) Games() int {
	return s.Wins + s.Losses + s.Draws
}

func (s Score) Points() float64 {
	return float64(s.Wins) + 0.5*float64(s.Draws)
}

// WinningFraction is the score share of the played games.
func (s Score) WinningFraction() float64 {
	if s.Games() == 0 {
		return 0
	}
	return s.Points() / float64(s.Games())
}

// EloDifference estimates the Elo gap implied by the winning fraction.
// https://www.chessprogramming.org/Match_Statistics
func (s Score) EloDifference() float64 {
	f := s.WinningFraction()
	if f <= 0 || f >= 1 {
		return math.Inf(int(f*2 - 1))
	}
	return -math.Log(1/f-1) * 400 / math.Ln10
}

// LikelihoodOfSuperiority is the probability that the engine is genuinely
// stronger than its opposition given the win/loss record.
func (s Score) LikelihoodOfSuperiority() float64 {
	if s.Wins+s.Losses == 0 {
		return 0.5
	}
	return 0.5 + 0.5*math.Erf(float64(s.Wins-s.Losses)/math.Sqrt(2*float64(s.Wins+s.Losses)))
}

// Standings aggregates finished games. Only the arena's collector goroutine
// writes to it, so no locking is needed.
type Standings struct {
	Scores map[string]*Score
	Games  []GameResult
}

func NewStandings() *Standings {
	return &Standings{Scores: make(map[string]*Score)}
}

func (s *Standings) Add(res GameResult) {
	s.Games = append(s.Games, res)
	white := s.score(res.White)
	black := s.score(res.Black)
	switch res.Result {
	case "1-0":
		white.Wins++
		black.Losses++
	case "0-1":
		black.Wins++
		white.Losses++
	default:
		white.Draws++
		black.Draws++
	}
}

func (s *Standings) score(name string) *Score {
	if s.Scores[name] == nil {
		s.Scores[name] = &Score{}
	}
	return s.Scores[name]
}

// String renders the standings as a table sorted by points.
func (s *Standings) String() string {
	names := make([]string, 0, len(s.Scores))
	for name := range s.Scores {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		pi, pj := s.Scores[names[i]].Points(), s.Scores[names[j]].Points()
		if pi != pj {
			return pi > pj
		}
		return names[i] < names[j]
	})

	sb := &strings.Builder{}
	fmt.Fprintf(sb, "%-24s %5s %5s %5s %7s %8s %6s\n",
		"engine", "wins", "loss", "draw", "points", "elo", "los")
	for _, name := range names {
		score := s.Scores[name]
		fmt.Fprintf(sb, "%-24s %5d %5d %5d %7.1f %8.1f %5.1f%%\n",
			name, score.Wins, score.Losses, score.Draws,
			score.Points(), score.EloDifference(), score.LikelihoodOfSuperiority()*100)
	}
	return sb.String()
}
