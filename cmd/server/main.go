package main

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gmkornilov/chess-weak-engines/internal/api"
	"github.com/gmkornilov/chess-weak-engines/internal/config"
	"github.com/gmkornilov/chess-weak-engines/internal/dao"
	"github.com/gmkornilov/chess-weak-engines/internal/db"
	"github.com/gmkornilov/chess-weak-engines/pkg/book"
)

func main() {
	cfg, err := config.InitServerConfig()
	if err != nil {
		panic(err)
	}

	b := book.Load(cfg.Book.Path)
	defer b.Close()

	seed := cfg.Engine.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	moveApi := api.NewMoveApi(b, seed)

	router := gin.Default()
	router.GET("/engines", moveApi.Engines)
	router.GET("/move", moveApi.Move)

	if cfg.Database.Address != "" {
		dbClient, err := db.NewDbClient(cfg.Database)
		if err != nil {
			panic(err)
		}
		defer dbClient.Close()
		gameApi := api.NewGameApi(dao.NewGameRepository(dbClient))
		router.GET("/games", gameApi.Games)
		router.GET("/games/last", gameApi.LastGame)
	}

	if err := router.Run(cfg.Server.Host + ":" + cfg.Server.Port); err != nil {
		panic(err)
	}
}
