package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"nhooyr.io/websocket"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	VsBotByDefault() bool

	NewGame(ctx context.Context, vsBot bool) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error

	MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error)
	BotTurn(ctx context.Context, id string) (*entity.Game, error)
	Reset(ctx context.Context, id string) (*entity.Game, error)
	ToggleMode(ctx context.Context, id string) (*entity.Game, error)
}

type handlerFunc func(ctx context.Context, sess *session, msg *Message, req *RequestPayload) error

// session is the state of one client connection. It owns at most one game.
type session struct {
	conn   *websocket.Conn
	gameID string
}

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	botDelay    time.Duration

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, gameUseCase gameUseCase, botDelay time.Duration) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,
		botDelay:    botDelay,
	}

	server.handlers = map[string]handlerFunc{
		actionNewGame: server.handleNewGame,
		actionGetGame: server.handleGetGame,
		actionTurn:    server.handleTurn,
		actionReset:   server.handleReset,
		actionMode:    server.handleToggleMode,
	}

	return server
}

// Start - starts WebSocket server and stops it when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", that)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// ServeHTTP - upgrades the connection and serves messages until the client leaves.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error("failed to accept websocket", "error", err)
		return
	}
	defer conn.CloseNow() //nolint: errcheck // closing an already closed connection is fine

	log.Info("WebSocket connection established")

	sess := &session{conn: conn}
	defer that.cleanup(sess)

	err = that.handleMessages(r.Context(), sess)
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		log.Info("WebSocket connection closed")
	default:
		log.Error("error handling messages", "error", err)
	}
}

// cleanup - the game lives as long as the connection that created it.
func (that *Server) cleanup(sess *session) {
	if sess.gameID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := that.gameUseCase.DeleteGame(ctx, sess.gameID); err != nil {
		that.logger.Error("failed to delete game", "gameID", sess.gameID, "error", err)
	}
}
