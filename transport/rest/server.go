package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type gameUseCase interface {
	VsBotByDefault() bool

	NewGame(ctx context.Context, vsBot bool) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error

	PlayTurn(ctx context.Context, id string, cell int) (*entity.Game, error)
	Reset(ctx context.Context, id string) (*entity.Game, error)
	ToggleMode(ctx context.Context, id string) (*entity.Game, error)
}

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
}

func New(logger *slog.Logger, gameUseCase gameUseCase) *Server {
	return &Server{
		logger:      logger.With("component", "rest"),
		gameUseCase: gameUseCase,
	}
}

// Router - builds the HTTP routes of the game API.
func (that *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Get("/ping", that.handlePing)

	router.Route("/games", func(r chi.Router) {
		r.Post("/", that.handleNewGame)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", that.handleGetGame)
			r.Delete("/", that.handleDeleteGame)
			r.Post("/turn", that.handleTurn)
			r.Post("/reset", that.handleReset)
			r.Post("/mode", that.handleToggleMode)
		})
	})

	return router
}

// Start - starts HTTP server.
func (that *Server) Start(port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
