package api

import (
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gmkornilov/chess-weak-engines/pkg/book"
	"github.com/gmkornilov/chess-weak-engines/pkg/engine"
)

const startposFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// MoveApi exposes the programmatic move-selection pipeline over HTTP. Each
// request gets its own strategy instance seeded from a served-request
// counter, so concurrent requests never share a generator.
type MoveApi struct {
	Book *book.Book
	Seed int64

	mu     sync.Mutex
	served int64
}

func NewMoveApi(b *book.Book, seed int64) *MoveApi {
	return &MoveApi{Book: b, Seed: seed}
}

func (m *MoveApi) Engines(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"engines": engine.Names(),
	})
}

func (m *MoveApi) Move(ctx *gin.Context) {
	name := ctx.DefaultQuery("engine", "random")
	fen := ctx.DefaultQuery("fen", startposFEN)
	movetimeStr := ctx.DefaultQuery("movetime", "100")

	movetime, err := strconv.Atoi(movetimeStr)
	if err != nil || movetime <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "movetime should be a positive integer",
		})
		return
	}
	game, err := engine.ParseFEN(fen)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	m.mu.Lock()
	m.served++
	seed := m.Seed + m.served
	m.mu.Unlock()

	rnd := rand.New(rand.NewSource(seed))
	strategy, err := engine.New(name, rnd)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}
	player := engine.NewPlayer(strategy, m.Book, rnd)

	req := engine.NewRequest(game.Position(), time.Duration(movetime)*time.Millisecond)
	move, err := player.GetMove(ctx.Request.Context(), req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}
	if move == nil {
		ctx.JSON(http.StatusOK, gin.H{
			"engine":    name,
			"game_over": true,
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"engine": name,
		"move":   move.String(),
	})
}
