package main

import (
	"context"
	"fmt"

	"github.com/gmkornilov/chess-weak-engines/internal/arena"
	"github.com/gmkornilov/chess-weak-engines/internal/config"
	"github.com/gmkornilov/chess-weak-engines/internal/dao"
	"github.com/gmkornilov/chess-weak-engines/internal/db"
	"github.com/gmkornilov/chess-weak-engines/pkg/book"
)

func main() {
	cfg, err := config.InitArenaConfig()
	if err != nil {
		panic(err)
	}

	var repo dao.GameRepository
	if cfg.Database.Address != "" {
		dbClient, err := db.NewDbClient(cfg.Database)
		if err != nil {
			panic(err)
		}
		defer dbClient.Close()
		repo = dao.NewGameRepository(dbClient)
	}

	var b *book.Book
	if cfg.Book.Path != "" {
		b = book.Load(cfg.Book.Path)
		defer b.Close()
	}

	standings, err := arena.New(cfg, repo, b).Run(context.Background())
	if err != nil {
		panic(err)
	}
	fmt.Print(standings)
}
