package service

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type botService struct {
	logger *slog.Logger
}

func NewBotService(logger *slog.Logger) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
	}
}

// MakeTurn - picks the minimax move for the bot and commits it through the
// same path as a human move.
func (that *botService) MakeTurn(game *entity.Game) error {
	log := that.logger.With("method", "MakeTurn", "gameID", game.ID)

	if !game.VsBot {
		return apperror.ErrBotDisabled
	}

	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if game.Turn != game.BotMark {
		return apperror.ErrNotBotTurn
	}

	// search on a copy so a failed commit can never leave trial marks behind
	board := game.Board

	decision, err := tictactoe.Analyze(&board, game.BotMark)
	if err != nil {
		return fmt.Errorf("bot failed to find a move: %w", err)
	}

	log.Debug("bot move chosen", "cell", decision.Cell, "score", decision.Score, "nodes", decision.Nodes)

	if err = tictactoe.MakeTurn(game, game.BotMark, decision.Cell); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}
