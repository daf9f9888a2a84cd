package arena

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/notnil/chess"
	"golang.org/x/sync/errgroup"

	"github.com/gmkornilov/chess-weak-engines/internal/config"
	"github.com/gmkornilov/chess-weak-engines/internal/dao"
	"github.com/gmkornilov/chess-weak-engines/pkg/book"
	"github.com/gmkornilov/chess-weak-engines/pkg/engine"
)

// MovePicker is the programmatic move-request interface the arena drives:
// the same selection pipeline the UCI shell runs behind the line protocol.
type MovePicker interface {
	GetMove(ctx context.Context, req engine.Request) (*chess.Move, error)
}

// Arena plays every configured strategy against every other (or against an
// external UCI binary), one game per worker, and aggregates results through
// a single collector goroutine. The opening book is shared read-only across
// all concurrent games; the tally is only ever touched by the collector.
type Arena struct {
	cfg    *config.ArenaConfiguration
	repo   dao.GameRepository
	book   *book.Book
	logger *log.Logger
}

func New(cfg *config.ArenaConfiguration, repo dao.GameRepository, b *book.Book) *Arena {
	return &Arena{
		cfg:    cfg,
		repo:   repo,
		book:   b,
		logger: log.New(os.Stderr, "arena: ", log.LstdFlags),
	}
}

type pairing struct {
	white string
	black string
}

func (a *Arena) Run(ctx context.Context) (*Standings, error) {
	pairings, err := a.pairings()
	if err != nil {
		return nil, err
	}
	a.logger.Printf("tournament started: %d games, %d workers", len(pairings), a.cfg.Arena.Workers)

	standings := NewStandings()
	results := make(chan GameResult)
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for res := range results {
			standings.Add(res)
			a.logger.Printf("%s vs %s: %s by %s (%d plies)",
				res.White, res.Black, res.Result, res.Method, res.Plies)
			if a.repo != nil {
				if err := a.repo.InsertGame(res.Record()); err != nil {
					a.logger.Println("insert game:", err)
				}
			}
		}
	}()

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(a.cfg.Arena.Workers)
	for i, pr := range pairings {
		i, pr := i, pr
		eg.Go(func() error {
			res, err := a.playPairing(gctx, pr, int64(i))
			if err != nil {
				return fmt.Errorf("%s vs %s: %w", pr.white, pr.black, err)
			}
			select {
			case results <- res:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}
	err = eg.Wait()
	close(results)
	<-collectorDone
	a.logger.Println("tournament finished")
	return standings, err
}

// pairings builds the schedule: a double round robin over the configured
// strategies, or every strategy against the external engine with both
// colors when a gauntlet target is configured.
func (a *Arena) pairings() ([]pairing, error) {
	names := engine.Names()
	if a.cfg.Arena.Strategies != "" {
		names = nil
		for _, name := range strings.Split(a.cfg.Arena.Strategies, ",") {
			names = append(names, strings.TrimSpace(name))
		}
	}
	for _, name := range names {
		if _, err := engine.New(name, rand.New(rand.NewSource(1))); err != nil {
			return nil, err
		}
	}

	var pairings []pairing
	if a.cfg.External.Path != "" {
		for _, name := range names {
			pairings = append(pairings,
				pairing{white: name, black: externalName},
				pairing{white: externalName, black: name})
		}
		return pairings, nil
	}
	for i, white := range names {
		for j, black := range names {
			if i == j && !a.cfg.Arena.SelfPlay {
				continue
			}
			pairings = append(pairings, pairing{white: white, black: black})
		}
	}
	return pairings, nil
}

func (a *Arena) playPairing(ctx context.Context, pr pairing, gameIndex int64) (GameResult, error) {
	seed := a.cfg.Arena.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	white, closeWhite, err := a.newPicker(pr.white, seed+2*gameIndex)
	if err != nil {
		return GameResult{}, err
	}
	defer closeWhite()
	black, closeBlack, err := a.newPicker(pr.black, seed+2*gameIndex+1)
	if err != nil {
		return GameResult{}, err
	}
	defer closeBlack()

	return a.playGame(ctx, pr, white, black)
}

func (a *Arena) newPicker(name string, seed int64) (MovePicker, func(), error) {
	if name == externalName {
		player, err := NewExternalPlayer(a.cfg.External.Path, a.cfg.External.Depth, a.cfg.External.Args...)
		if err != nil {
			return nil, nil, err
		}
		return player, player.Close, nil
	}
	rnd := rand.New(rand.NewSource(seed))
	strategy, err := engine.New(name, rnd)
	if err != nil {
		return nil, nil, err
	}
	return engine.NewPlayer(strategy, a.book, rnd), func() {}, nil
}
