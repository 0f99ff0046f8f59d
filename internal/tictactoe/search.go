package tictactoe

import (
	"errors"
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

var (
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrTerminalPosition = errors.New("position already has a winner")
	ErrInvalidMark      = errors.New("invalid player mark")
)

// Decision is the outcome of a full search from one position.
type Decision struct {
	Cell  int
	Score int
	Nodes int
}

// BestMove returns the cell the computer should play. The board is used as
// scratch space during the search and is restored before returning.
func BestMove(board *entity.Board, computer entity.Mark) (int, error) {
	decision, err := Analyze(board, computer)
	if err != nil {
		return -1, err
	}

	return decision.Cell, nil
}

// Analyze runs an unpruned minimax over every continuation of board. Empty
// cells are tried in ascending order and only a strictly better score
// replaces the current choice, so the lowest index wins ties.
func Analyze(board *entity.Board, computer entity.Mark) (Decision, error) {
	if !computer.IsPlayer() {
		return Decision{}, fmt.Errorf("%w: %q", ErrInvalidMark, computer)
	}

	if HasWon(board, computer) || HasWon(board, computer.Opponent()) {
		return Decision{}, ErrTerminalPosition
	}

	s := &searcher{board: board, computer: computer}

	decision := Decision{Cell: -1, Score: math.MinInt}
	for i := range board {
		if board[i] != entity.EmptyCell {
			continue
		}

		board[i] = computer
		score := s.minimax(0, false)
		board[i] = entity.EmptyCell

		if score > decision.Score {
			decision.Score = score
			decision.Cell = i
		}
	}

	if decision.Cell < 0 {
		return Decision{}, ErrNoAvailableMoves
	}

	decision.Nodes = s.nodes

	return decision, nil
}

type searcher struct {
	board    *entity.Board
	computer entity.Mark
	nodes    int
}

func (that *searcher) minimax(plies int, maximizing bool) int {
	that.nodes++

	if score, decided := Evaluate(that.board, that.computer, plies); decided {
		return score
	}

	mark, best := that.computer.Opponent(), math.MaxInt
	if maximizing {
		mark, best = that.computer, math.MinInt
	}

	for i := range that.board {
		if that.board[i] != entity.EmptyCell {
			continue
		}

		that.board[i] = mark
		score := that.minimax(plies+1, !maximizing)
		that.board[i] = entity.EmptyCell

		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	return best
}
