package tictactoe

import "github.com/rocketscienceinc/tictactoe-ai/internal/entity"

// WinPatterns holds the rows, columns and diagonals of the board.
var WinPatterns = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// WinningPattern returns the first pattern fully occupied by mark.
func WinningPattern(board *entity.Board, mark entity.Mark) ([3]int, bool) {
	for _, pattern := range WinPatterns {
		if board[pattern[0]] == mark && board[pattern[1]] == mark && board[pattern[2]] == mark {
			return pattern, true
		}
	}

	return [3]int{}, false
}

func HasWon(board *entity.Board, mark entity.Mark) bool {
	_, ok := WinningPattern(board, mark)
	return ok
}

func IsFull(board *entity.Board) bool {
	for _, cell := range board {
		if cell == entity.EmptyCell {
			return false
		}
	}

	return true
}

// DeterminePhase derives the game phase from the board. The winning line is
// nil unless one of the players has won.
func DeterminePhase(board *entity.Board) (entity.Phase, entity.Mark, []int) {
	if pattern, ok := WinningPattern(board, entity.PlayerX); ok {
		return entity.PhaseWonByX, entity.PlayerX, pattern[:]
	}

	if pattern, ok := WinningPattern(board, entity.PlayerO); ok {
		return entity.PhaseWonByO, entity.PlayerO, pattern[:]
	}

	if IsFull(board) {
		return entity.PhaseDrawn, entity.EmptyCell, nil
	}

	return entity.PhaseInProgress, entity.EmptyCell, nil
}
