package entity

type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

// Opponent returns the other player's mark.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Board is the 3x3 grid stored row-major, index 0..8.
type Board [9]Mark

type Phase string

const (
	PhaseInProgress Phase = "in_progress"
	PhaseWonByX     Phase = "won_x"
	PhaseWonByO     Phase = "won_o"
	PhaseDrawn      Phase = "drawn"
)

type Game struct {
	ID      string `json:"id"`
	Board   Board  `json:"board"`
	Turn    Mark   `json:"player_turn"`
	Phase   Phase  `json:"phase"`
	Winner  Mark   `json:"winner,omitempty"`
	WinLine []int  `json:"win_line,omitempty"`
	VsBot   bool   `json:"vs_bot"`
	BotMark Mark   `json:"bot_mark,omitempty"`
	Moves   int    `json:"moves"`
}

func NewGame(id string, vsBot bool, botMark Mark) *Game {
	game := &Game{
		ID:      id,
		VsBot:   vsBot,
		BotMark: botMark,
	}
	game.Reset()

	return game
}

// Reset clears the board and gives the first move to X. The bot mode is kept.
func (that *Game) Reset() {
	that.Board = Board{}
	that.Turn = PlayerX
	that.Phase = PhaseInProgress
	that.Winner = EmptyCell
	that.WinLine = nil
	that.Moves = 0
}

// ToggleMode flips the computer opponent on or off and starts over.
func (that *Game) ToggleMode() {
	that.VsBot = !that.VsBot
	that.Reset()
}

func (that *Game) IsOngoing() bool {
	return that.Phase == PhaseInProgress
}

func (that *Game) IsFinished() bool {
	return !that.IsOngoing()
}

func (that *Game) IsBotTurn() bool {
	return that.VsBot && that.IsOngoing() && that.Turn == that.BotMark
}

// HumanMark returns the mark played by the person at the keyboard when the bot is on.
func (that *Game) HumanMark() Mark {
	return that.BotMark.Opponent()
}
