package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	// When: a new game against the bot is created
	game := NewGame("123", true, PlayerO)

	// Then: the board is empty, X moves first and the game is in progress
	expectedGame := &Game{
		ID:      "123",
		Board:   Board{},
		Turn:    PlayerX,
		Phase:   PhaseInProgress,
		VsBot:   true,
		BotMark: PlayerO,
	}

	require.Equal(t, expectedGame, game)
}

func TestMark_Opponent(t *testing.T) {
	assert.Equal(t, PlayerO, PlayerX.Opponent())
	assert.Equal(t, PlayerX, PlayerO.Opponent())
}

func TestMark_IsPlayer(t *testing.T) {
	assert.True(t, PlayerX.IsPlayer())
	assert.True(t, PlayerO.IsPlayer())
	assert.False(t, EmptyCell.IsPlayer())
	assert.False(t, Mark("Z").IsPlayer())
}

func TestGame_Reset(t *testing.T) {
	// Given: a game that X has won
	game := &Game{
		ID:      "123",
		Board:   Board{PlayerX, PlayerX, PlayerX, PlayerO, PlayerO, EmptyCell, EmptyCell, EmptyCell, EmptyCell},
		Phase:   PhaseWonByX,
		Winner:  PlayerX,
		WinLine: []int{0, 1, 2},
		VsBot:   true,
		BotMark: PlayerO,
		Moves:   5,
	}

	// When: resetting the game
	game.Reset()

	// Then: the board is cleared but the mode is preserved
	assert.Equal(t, Board{}, game.Board)
	assert.Equal(t, PlayerX, game.Turn)
	assert.Equal(t, PhaseInProgress, game.Phase)
	assert.Equal(t, EmptyCell, game.Winner)
	assert.Nil(t, game.WinLine)
	assert.Zero(t, game.Moves)
	assert.True(t, game.VsBot)
}

func TestGame_ToggleMode(t *testing.T) {
	// Given: a two-player game with one move made
	game := NewGame("123", false, PlayerO)
	game.Board[4] = PlayerX
	game.Turn = PlayerO
	game.Moves = 1

	// When: switching the bot on
	game.ToggleMode()

	// Then: the bot is enabled and the game starts over
	assert.True(t, game.VsBot)
	assert.Equal(t, Board{}, game.Board)
	assert.Equal(t, PlayerX, game.Turn)

	// When: switching the bot off again
	game.ToggleMode()

	// Then: the bot is disabled
	assert.False(t, game.VsBot)
}

func TestGame_IsBotTurn(t *testing.T) {
	t.Run("Bot to move", func(t *testing.T) {
		game := NewGame("1", true, PlayerO)
		game.Turn = PlayerO

		assert.True(t, game.IsBotTurn())
	})

	t.Run("Human to move", func(t *testing.T) {
		game := NewGame("1", true, PlayerO)

		assert.False(t, game.IsBotTurn())
		assert.Equal(t, PlayerX, game.HumanMark())
	})

	t.Run("Bot disabled", func(t *testing.T) {
		game := NewGame("1", false, PlayerO)
		game.Turn = PlayerO

		assert.False(t, game.IsBotTurn())
	})

	t.Run("Game finished", func(t *testing.T) {
		game := NewGame("1", true, PlayerO)
		game.Turn = PlayerO
		game.Phase = PhaseDrawn

		assert.False(t, game.IsBotTurn())
		assert.True(t, game.IsFinished())
	})
}
