package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	MakeTurn(game *entity.Game) error
}

// GameManager drives game sessions for the presentation layer. It is the only
// place that decides when the bot is asked for a move.
type GameManager struct {
	logger     *slog.Logger
	gameRepo   gameRepo
	botService botService

	botMark      entity.Mark
	vsBotDefault bool
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, botService botService, botMark entity.Mark, vsBotDefault bool) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:   gameRepo,
		botService: botService,

		botMark:      botMark,
		vsBotDefault: vsBotDefault,
	}
}

// VsBotByDefault reports whether new games start against the bot when the
// client does not say otherwise.
func (that *GameManager) VsBotByDefault() bool {
	return that.vsBotDefault
}

func (that *GameManager) NewGame(ctx context.Context, vsBot bool) (*entity.Game, error) {
	game := entity.NewGame(uuid.NewString(), vsBot, that.botMark)

	if err := that.openingBotTurn(game); err != nil {
		return nil, err
	}

	if err := that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "vsBot", vsBot)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn - applies a human move for whichever mark is to move. It is
// rejected while the bot is to move.
func (that *GameManager) MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = that.humanTurn(game, cell); err != nil {
		return game, err
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// BotTurn - lets the bot answer. Callers only invoke it while the game is in
// progress and the bot's mark is to move.
func (that *GameManager) BotTurn(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = that.botService.MakeTurn(game); err != nil {
		return game, fmt.Errorf("failed to make bot turn: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// PlayTurn - applies a human move and, if the game goes on and the bot is
// to move, the bot's reply, storing the result once.
func (that *GameManager) PlayTurn(ctx context.Context, id string, cell int) (*entity.Game, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = that.humanTurn(game, cell); err != nil {
		return game, err
	}

	if game.IsBotTurn() {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("failed to make bot turn: %w", err)
		}
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// Reset - starts the session over, keeping the bot mode.
func (that *GameManager) Reset(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	game.Reset()

	return that.restart(ctx, game)
}

// ToggleMode - switches the bot on or off and starts the session over.
func (that *GameManager) ToggleMode(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	game.ToggleMode()

	that.logger.Info("game mode toggled", "gameID", game.ID, "vsBot", game.VsBot)

	return that.restart(ctx, game)
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}

func (that *GameManager) humanTurn(game *entity.Game, cell int) error {
	if game.IsBotTurn() {
		return apperror.ErrNotYourTurn
	}

	if err := tictactoe.MakeTurn(game, game.Turn, cell); err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsFinished() {
		that.logger.Info("game finished", "gameID", game.ID, "phase", game.Phase, "winner", game.Winner)
	}

	return nil
}

func (that *GameManager) restart(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	if err := that.openingBotTurn(game); err != nil {
		return nil, err
	}

	if err := that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// openingBotTurn - the bot moves first on a fresh board when it plays X.
func (that *GameManager) openingBotTurn(game *entity.Game) error {
	if !game.IsBotTurn() {
		return nil
	}

	if err := that.botService.MakeTurn(game); err != nil {
		return fmt.Errorf("bot failed to make first turn: %w", err)
	}

	return nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
