package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gmkornilov/chess-weak-engines/internal/dao"
)

type stubGameRepository struct {
	games    []dao.GameRecord
	lastSeen struct {
		start primitive.DateTime
		end   primitive.DateTime
	}
}

func (s *stubGameRepository) InsertGame(record dao.GameRecord) error {
	s.games = append(s.games, record)
	return nil
}

func (s *stubGameRepository) GetLastGameFor(engineName string) (dao.GameRecord, error) {
	for i := len(s.games) - 1; i >= 0; i-- {
		if s.games[i].White == engineName || s.games[i].Black == engineName {
			return s.games[i], nil
		}
	}
	return dao.GameRecord{}, mongo.ErrNoDocuments
}

func (s *stubGameRepository) GetGamesBetweenDates(start, end primitive.DateTime) ([]dao.GameRecord, error) {
	s.lastSeen.start = start
	s.lastSeen.end = end
	return s.games, nil
}

func newGameRouter(repo dao.GameRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	gameApi := NewGameApi(repo)
	router := gin.New()
	router.GET("/games", gameApi.Games)
	router.GET("/games/last", gameApi.LastGame)
	return router
}

func TestGamesEndpoint(t *testing.T) {
	repo := &stubGameRepository{games: []dao.GameRecord{
		{White: "cccp", Black: "random", Result: "1-0", Method: "Checkmate"},
	}}
	code, body := get(t, newGameRouter(repo), "/games", nil)
	if code != http.StatusOK {
		t.Fatalf("status %d, want 200: %v", code, body)
	}
	games, ok := body["games"].([]interface{})
	if !ok || len(games) != 1 {
		t.Fatalf("unexpected games payload %v", body)
	}
}

func TestGamesEndpointRejectsBadDates(t *testing.T) {
	code, _ := get(t, newGameRouter(&stubGameRepository{}), "/games", url.Values{"start": {"yesterday"}})
	if code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", code)
	}
}

func TestGamesEndpointPassesDateRange(t *testing.T) {
	repo := &stubGameRepository{}
	query := url.Values{
		"start": {"2024-01-01T00:00:00Z"},
		"end":   {"2024-02-01T00:00:00Z"},
	}
	code, _ := get(t, newGameRouter(repo), "/games", query)
	if code != http.StatusOK {
		t.Fatalf("status %d, want 200", code)
	}
	if repo.lastSeen.start >= repo.lastSeen.end {
		t.Fatalf("date range not forwarded: start=%v end=%v", repo.lastSeen.start, repo.lastSeen.end)
	}
}

func TestLastGameEndpoint(t *testing.T) {
	repo := &stubGameRepository{games: []dao.GameRecord{
		{White: "cccp", Black: "random", Result: "1-0", Method: "Checkmate"},
	}}
	router := newGameRouter(repo)

	code, body := get(t, router, "/games/last", url.Values{"engine": {"random"}})
	if code != http.StatusOK {
		t.Fatalf("status %d, want 200: %v", code, body)
	}
	if body["white"] != "cccp" || body["black"] != "random" {
		t.Fatalf("unexpected record %v", body)
	}
}

func TestLastGameEndpointRequiresEngine(t *testing.T) {
	code, _ := get(t, newGameRouter(&stubGameRepository{}), "/games/last", nil)
	if code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", code)
	}
}

func TestLastGameEndpointNotFound(t *testing.T) {
	router := newGameRouter(&stubGameRepository{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/games/last?engine=ghost", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}
}
