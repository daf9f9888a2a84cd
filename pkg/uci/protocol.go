package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/notnil/chess"

	"github.com/gmkornilov/chess-weak-engines/pkg/engine"
)

// Protocol is a UCI engine session: it reads newline-delimited commands,
// keeps the position history and runs at most one asynchronous think at a
// time. Everything written to the output stream is a well-formed UCI line;
// malformed input and internal failures are swallowed (diagnostics go to
// the logger, never to the stream).
type Protocol struct {
	name   string
	author string
	player *engine.Player
	logger *log.Logger

	mu  sync.Mutex
	out io.Writer

	positions []*chess.Position
	moves     []*chess.Move

	thinking  int32
	closed    int32
	cancel    context.CancelFunc
	thinkDone chan struct{}
}

func New(name, author string, player *engine.Player, out io.Writer) *Protocol {
	return &Protocol{
		name:      name,
		author:    author,
		player:    player,
		logger:    log.New(os.Stderr, "uci: ", log.LstdFlags),
		out:       out,
		positions: []*chess.Position{chess.StartingPosition()},
	}
}

// Run consumes commands until quit or EOF. The read loop never blocks on a
// running think, so isready and stop stay responsive mid-computation.
func (p *Protocol) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if !p.Handle(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// Handle processes one command line and reports whether the session should
// keep running. Unknown commands are ignored for forward compatibility.
func (p *Protocol) Handle(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	switch strings.ToLower(fields[0]) {
	case "uci":
		p.uciCommand()
	case "isready":
		p.printf("readyok\n")
	case "ucinewgame":
		p.newGameCommand()
	case "position":
		p.positionCommand(fields[1:])
	case "go":
		p.goCommand(fields[1:])
	case "stop":
		p.stopCommand()
	case "quit":
		// Nothing may reach the stream after quit; an in-flight think is
		// cancelled and its result dropped.
		atomic.StoreInt32(&p.closed, 1)
		p.stopCommand()
		return false
	}
	return true
}

func (p *Protocol) uciCommand() {
	p.printf("id name %s\n", p.name)
	p.printf("id author %s\n", p.author)
	p.printf("uciok\n")
}

func (p *Protocol) newGameCommand() {
	// If a think is in flight it keeps its own snapshot, so resetting here
	// is last-mutation-wins: the stale result still gets printed, the next
	// go sees the fresh position. Callers should not rely on the ordering.
	p.positions = []*chess.Position{chess.StartingPosition()}
	p.moves = nil
}

func (p *Protocol) positionCommand(args []string) {
	if len(args) == 0 {
		return
	}
	movesIndex := -1
	for i, arg := range args {
		if arg == "moves" {
			movesIndex = i
			break
		}
	}

	var root *chess.Position
	switch args[0] {
	case "startpos":
		root = chess.StartingPosition()
	case "fen":
		end := len(args)
		if movesIndex >= 0 {
			end = movesIndex
		}
		game, err := engine.ParseFEN(strings.Join(args[1:end], " "))
		if err != nil {
			// Malformed FEN leaves the session position untouched.
			p.logger.Println(err)
			return
		}
		root = game.Position()
	default:
		return
	}

	positions := []*chess.Position{root}
	var moves []*chess.Move
	if movesIndex >= 0 {
		for _, token := range args[movesIndex+1:] {
			current := positions[len(positions)-1]
			move, err := parseLegalMove(current, token)
			if err != nil {
				// Bad tokens are skipped, the rest still apply.
				p.logger.Println(err)
				continue
			}
			positions = append(positions, current.Update(move))
			moves = append(moves, move)
		}
	}
	p.positions = positions
	p.moves = moves
}

func (p *Protocol) goCommand(args []string) {
	// At most one think may be in flight; a go during a think is ignored.
	if !atomic.CompareAndSwapInt32(&p.thinking, 0, 1) {
		return
	}
	limits := parseLimits(args)

	req := engine.Request{
		Positions: append([]*chess.Position(nil), p.positions...),
		Moves:     append([]*chess.Move(nil), p.moves...),
		Depth:     limits.Depth,
	}
	req.Budget = limits.Budget(req.Current().Turn())

	ctx, cancel := context.WithTimeout(context.Background(), req.Budget)
	p.cancel = cancel
	done := make(chan struct{})
	p.thinkDone = done

	go func() {
		defer close(done)
		defer atomic.StoreInt32(&p.thinking, 0)
		defer cancel()

		move, err := p.player.GetMove(ctx, req)
		if err != nil {
			p.logger.Println("think:", err)
			return
		}
		// No legal moves means no bestmove line: the caller detects the
		// game end on its own.
		if move != nil && atomic.LoadInt32(&p.closed) == 0 {
			p.printf("bestmove %v\n", move)
		}
	}()
}

func (p *Protocol) stopCommand() {
	if p.cancel != nil {
		p.cancel()
	}
}

func (p *Protocol) printf(format string, args ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

// parseLegalMove decodes a UCI move token and checks it against the legal
// moves of pos.
func parseLegalMove(pos *chess.Position, token string) (*chess.Move, error) {
	move, err := chess.UCINotation{}.Decode(pos, token)
	if err != nil {
		return nil, fmt.Errorf("parse move %q: %w", token, err)
	}
	for _, legal := range pos.ValidMoves() {
		if legal.String() == move.String() {
			return legal, nil
		}
	}
	return nil, fmt.Errorf("illegal move %q", token)
}
