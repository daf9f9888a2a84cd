package arena

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/freeeve/uci"
	"github.com/notnil/chess"

	"github.com/gmkornilov/chess-weak-engines/pkg/engine"
)

const externalName = "external"

// ExternalPlayer drives an external UCI engine binary (a gauntlet opponent,
// typically stockfish) through the same programmatic move interface the
// internal players implement. One instance per game; the underlying process
// is not safe to share between concurrent games.
type ExternalPlayer struct {
	name   string
	engine *uci.Engine
	depth  int
}

func NewExternalPlayer(path string, depth int, args ...string) (*ExternalPlayer, error) {
	e, err := uci.NewEngine(path, args...)
	if err != nil {
		return nil, fmt.Errorf("start external engine %s: %w", path, err)
	}
	err = e.SetOptions(uci.Options{
		MultiPV: 1,
		Hash:    128,
		Ponder:  false,
		OwnBook: true,
	})
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("configure external engine %s: %w", path, err)
	}
	return &ExternalPlayer{
		name:   filepath.Base(path),
		engine: e,
		depth:  depth,
	}, nil
}

func (p *ExternalPlayer) GetMove(ctx context.Context, req engine.Request) (*chess.Move, error) {
	pos := req.Current()
	if len(pos.ValidMoves()) == 0 {
		return nil, nil
	}
	if err := p.engine.SetFEN(pos.String()); err != nil {
		return nil, fmt.Errorf("%s: set fen: %w", p.name, err)
	}
	results, err := p.engine.GoDepth(p.depth)
	if err != nil {
		return nil, fmt.Errorf("%s: search: %w", p.name, err)
	}
	if len(results.Results) == 0 || len(results.Results[0].BestMoves) == 0 {
		return nil, fmt.Errorf("%s: no move returned", p.name)
	}
	move, err := chess.UCINotation{}.Decode(pos, results.Results[0].BestMoves[0])
	if err != nil {
		return nil, fmt.Errorf("%s: parse move: %w", p.name, err)
	}
	return move, nil
}

func (p *ExternalPlayer) Close() {
	p.engine.Close()
}
