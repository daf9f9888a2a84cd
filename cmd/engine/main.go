package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gmkornilov/chess-weak-engines/internal/config"
	"github.com/gmkornilov/chess-weak-engines/pkg/book"
	"github.com/gmkornilov/chess-weak-engines/pkg/engine"
	"github.com/gmkornilov/chess-weak-engines/pkg/uci"
)

func main() {
	cfg, err := config.InitEngineConfig()
	if err != nil {
		panic(err)
	}

	seed := cfg.Engine.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	strategy, err := engine.New(cfg.Engine.Strategy, rnd)
	if err != nil {
		panic(err)
	}

	var b *book.Book
	if cfg.Book.Path != "" {
		b = book.Load(cfg.Book.Path)
		defer b.Close()
	}

	player := engine.NewPlayer(strategy, b, rnd)
	name := fmt.Sprintf("%s (%s)", cfg.Engine.Name, strategy.Name())
	protocol := uci.New(name, cfg.Engine.Author, player, os.Stdout)
	if err := protocol.Run(os.Stdin); err != nil {
		panic(err)
	}
}
