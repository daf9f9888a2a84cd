package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gmkornilov/chess-weak-engines/internal/dao"
)

// GameApi serves the archived arena games.
type GameApi struct {
	GameRepository dao.GameRepository
}

func NewGameApi(repo dao.GameRepository) *GameApi {
	return &GameApi{GameRepository: repo}
}

// Games lists the games played between two RFC 3339 instants; start defaults
// to the epoch, end to now.
func (g *GameApi) Games(ctx *gin.Context) {
	start, err := parseDateQuery(ctx, "start", time.Time{})
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "start should be an RFC 3339 timestamp",
		})
		return
	}
	end, err := parseDateQuery(ctx, "end", time.Now())
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "end should be an RFC 3339 timestamp",
		})
		return
	}

	games, err := g.GameRepository.GetGamesBetweenDates(
		primitive.NewDateTimeFromTime(start), primitive.NewDateTimeFromTime(end))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"games": games,
	})
}

// LastGame returns the most recent archived game a given engine took part in.
func (g *GameApi) LastGame(ctx *gin.Context) {
	name := ctx.Query("engine")
	if name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "engine is required",
		})
		return
	}
	record, err := g.GameRepository.GetLastGameFor(name)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			ctx.AbortWithStatus(http.StatusNotFound)
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, record)
}

func parseDateQuery(ctx *gin.Context, name string, fallback time.Time) (time.Time, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return time.Parse(time.RFC3339, raw)
}
