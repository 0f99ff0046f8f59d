package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

var ErrInvalidCell = errors.New("invalid cell index")

// MakeTurn applies a move for either a human or the bot and recomputes the phase.
func MakeTurn(game *entity.Game, player entity.Mark, cell int) error {
	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := validateMove(game, player, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	game.Board[cell] = player
	game.Moves++
	updateGameStatus(game, player)

	return nil
}

// validateMove - checks if the move is valid.
func validateMove(game *entity.Game, player entity.Mark, cell int) error {
	if cell < 0 || cell >= len(game.Board) {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if game.Turn != player {
		return apperror.ErrNotYourTurn
	}

	if game.Board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(game *entity.Game, player entity.Mark) {
	game.Phase, game.Winner, game.WinLine = DeterminePhase(&game.Board)

	if game.IsOngoing() {
		game.Turn = player.Opponent()
		return
	}

	game.Turn = entity.EmptyCell
}
