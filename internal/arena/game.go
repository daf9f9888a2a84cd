package arena

import (
	"context"
	"time"

	"github.com/notnil/chess"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gmkornilov/chess-weak-engines/internal/dao"
	"github.com/gmkornilov/chess-weak-engines/pkg/engine"
)

// GameResult is one finished game, resolved to a PGN-style result string.
type GameResult struct {
	White  string
	Black  string
	Result string
	Method string
	Plies  int
	PGN    string
}

func (r GameResult) Record() dao.GameRecord {
	return dao.GameRecord{
		White:  r.White,
		Black:  r.Black,
		Result: r.Result,
		Method: r.Method,
		Plies:  r.Plies,
		PGN:    r.PGN,
		Date:   primitive.NewDateTimeFromTime(time.Now()),
	}
}

// playGame runs one game to completion. Eligible draws (threefold, fifty
// moves) are claimed as soon as they appear; games that exceed the ply cap
// are adjudicated as draws; a picker that fails or produces an illegal move
// forfeits.
func (a *Arena) playGame(ctx context.Context, pr pairing, white, black MovePicker) (GameResult, error) {
	game := chess.NewGame()
	positions := []*chess.Position{game.Position()}
	var moves []*chess.Move
	budget := time.Duration(a.cfg.Arena.MoveTimeMs) * time.Millisecond

	result := GameResult{White: pr.white, Black: pr.black}
	for game.Outcome() == chess.NoOutcome && result.Plies < a.cfg.Arena.MaxPlies {
		if err := ctx.Err(); err != nil {
			return GameResult{}, err
		}
		claimDraws(game)
		if game.Outcome() != chess.NoOutcome {
			break
		}

		var picker MovePicker
		var offender string
		if game.Position().Turn() == chess.White {
			picker = white
			offender = "0-1"
		} else {
			picker = black
			offender = "1-0"
		}

		req := engine.Request{
			Positions: positions,
			Moves:     moves,
			Budget:    budget,
		}
		mctx, mcancel := context.WithTimeout(ctx, budget)
		move, err := picker.GetMove(mctx, req)
		mcancel()
		if err != nil {
			result.Result = offender
			result.Method = "forfeit"
			result.PGN = game.String()
			return result, nil
		}
		if move == nil {
			// No legal moves; the game state already tells the story.
			break
		}
		if err := game.Move(move); err != nil {
			result.Result = offender
			result.Method = "forfeit"
			result.PGN = game.String()
			return result, nil
		}
		positions = append(positions, game.Position())
		moves = append(moves, move)
		result.Plies++
	}

	if game.Outcome() == chess.NoOutcome {
		result.Result = "1/2-1/2"
		result.Method = "adjudication"
	} else {
		result.Result = game.Outcome().String()
		result.Method = game.Method().String()
	}
	result.PGN = game.String()
	return result, nil
}

func claimDraws(game *chess.Game) {
	for _, method := range game.EligibleDraws() {
		if method == chess.ThreefoldRepetition || method == chess.FiftyMoveRule {
			game.Draw(method)
			return
		}
	}
}
