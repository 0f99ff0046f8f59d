package tictactoe

import "github.com/rocketscienceinc/tictactoe-ai/internal/entity"

const winScore = 10

// Evaluate scores a position from the computer's point of view. A win for
// computer scores 10-plies, a loss scores plies-10 and a full board scores 0.
// decided is false while the game can still go on.
func Evaluate(board *entity.Board, computer entity.Mark, plies int) (score int, decided bool) {
	if HasWon(board, computer) {
		return winScore - plies, true
	}

	if HasWon(board, computer.Opponent()) {
		return plies - winScore, true
	}

	if IsFull(board) {
		return 0, true
	}

	return 0, false
}
