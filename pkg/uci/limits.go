package uci

import (
	"strconv"
	"time"

	"github.com/notnil/chess"
)

// Limits carries the time-control arguments of a go command.
type Limits struct {
	WhiteTime      int
	BlackTime      int
	WhiteIncrement int
	BlackIncrement int
	MovesToGo      int
	Depth          int
	MoveTime       int
}

const (
	minThink = 100 * time.Millisecond
	maxThink = 5 * time.Second

	// Clock assumed when the go command carried no time information.
	defaultClockMs = 1000
)

// Budget converts limits into the thinking budget for one move. The policy
// is fixed: an explicit movetime is used as-is, otherwise a twentieth of the
// side's remaining clock clamped to [100ms, 5s].
func (l Limits) Budget(side chess.Color) time.Duration {
	if l.MoveTime > 0 {
		return time.Duration(l.MoveTime) * time.Millisecond
	}
	remaining := defaultClockMs
	if side == chess.White && l.WhiteTime > 0 {
		remaining = l.WhiteTime
	} else if side == chess.Black && l.BlackTime > 0 {
		remaining = l.BlackTime
	}
	budget := time.Duration(remaining) * time.Millisecond / 20
	if budget < minThink {
		budget = minThink
	}
	if budget > maxThink {
		budget = maxThink
	}
	return budget
}

func parseLimits(args []string) (result Limits) {
	intArg := func(i int) int {
		if i+1 >= len(args) {
			return 0
		}
		v, _ := strconv.Atoi(args[i+1])
		return v
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "wtime":
			result.WhiteTime = intArg(i)
			i++
		case "btime":
			result.BlackTime = intArg(i)
			i++
		case "winc":
			result.WhiteIncrement = intArg(i)
			i++
		case "binc":
			result.BlackIncrement = intArg(i)
			i++
		case "movestogo":
			result.MovesToGo = intArg(i)
			i++
		case "depth":
			result.Depth = intArg(i)
			i++
		case "movetime":
			result.MoveTime = intArg(i)
			i++
		}
	}
	return
}
