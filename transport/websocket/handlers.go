package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nhooyr.io/websocket/wsjson"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

var errNoGame = errors.New("no game in this session, send game:new first")

// handleMessages - processes messages from the client until the connection fails.
func (that *Server) handleMessages(ctx context.Context, sess *session) error {
	log := that.logger.With("method", "handleMessages")

	for {
		var msg Message
		if err := wsjson.Read(ctx, sess.conn, &msg); err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		handler, ok := that.handlers[msg.Action]
		if !ok {
			log.Warn("unknown action", "action", msg.Action)
			if err := that.sendError(ctx, sess, msg.Action, "unknown action"); err != nil {
				return err
			}
			continue
		}

		var req RequestPayload
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				log.Warn("failed to unmarshal payload", "action", msg.Action, "error", err)
				if err = that.sendError(ctx, sess, msg.Action, "invalid payload"); err != nil {
					return err
				}
				continue
			}
		}

		if err := handler(ctx, sess, &msg, &req); err != nil {
			return fmt.Errorf("failed to handle %s: %w", msg.Action, err)
		}
	}
}

func (that *Server) handleNewGame(ctx context.Context, sess *session, msg *Message, req *RequestPayload) error {
	that.cleanup(sess)
	sess.gameID = ""

	vsBot := that.gameUseCase.VsBotByDefault()
	if req.VsBot != nil {
		vsBot = *req.VsBot
	}

	game, err := that.gameUseCase.NewGame(ctx, vsBot)
	if err != nil {
		that.logger.Error("failed to create game", "error", err)
		return that.sendError(ctx, sess, msg.Action, "failed to create a new game")
	}

	sess.gameID = game.ID

	return that.sendGame(ctx, sess, msg.Action, game)
}

func (that *Server) handleGetGame(ctx context.Context, sess *session, msg *Message, _ *RequestPayload) error {
	if sess.gameID == "" {
		return that.sendError(ctx, sess, msg.Action, errNoGame.Error())
	}

	game, err := that.gameUseCase.GetGame(ctx, sess.gameID)
	if err != nil {
		return that.sendError(ctx, sess, msg.Action, err.Error())
	}

	return that.sendGame(ctx, sess, msg.Action, game)
}

// handleTurn - applies the human move, shows it, then lets the bot answer
// after the configured delay.
func (that *Server) handleTurn(ctx context.Context, sess *session, msg *Message, req *RequestPayload) error {
	log := that.logger.With("method", "handleTurn", "gameID", sess.gameID)

	if sess.gameID == "" {
		return that.sendError(ctx, sess, msg.Action, errNoGame.Error())
	}

	if req.Cell == nil {
		return that.sendError(ctx, sess, msg.Action, "cell is required")
	}

	game, err := that.gameUseCase.MakeTurn(ctx, sess.gameID, *req.Cell)
	if err != nil {
		log.Info("turn rejected", "cell", *req.Cell, "error", err)
		return that.sendError(ctx, sess, msg.Action, err.Error())
	}

	if err = that.sendGame(ctx, sess, msg.Action, game); err != nil {
		return err
	}

	if !game.IsBotTurn() {
		return nil
	}

	if err = sleep(ctx, that.botDelay); err != nil {
		return err
	}

	game, err = that.gameUseCase.BotTurn(ctx, sess.gameID)
	if err != nil {
		log.Error("bot failed to make turn", "error", err)
		return that.sendError(ctx, sess, actionBotTurn, "bot failed to make turn")
	}

	return that.sendGame(ctx, sess, actionBotTurn, game)
}

func (that *Server) handleReset(ctx context.Context, sess *session, msg *Message, _ *RequestPayload) error {
	if sess.gameID == "" {
		return that.sendError(ctx, sess, msg.Action, errNoGame.Error())
	}

	game, err := that.gameUseCase.Reset(ctx, sess.gameID)
	if err != nil {
		return that.sendError(ctx, sess, msg.Action, err.Error())
	}

	return that.sendGame(ctx, sess, msg.Action, game)
}

func (that *Server) handleToggleMode(ctx context.Context, sess *session, msg *Message, _ *RequestPayload) error {
	if sess.gameID == "" {
		return that.sendError(ctx, sess, msg.Action, errNoGame.Error())
	}

	game, err := that.gameUseCase.ToggleMode(ctx, sess.gameID)
	if err != nil {
		return that.sendError(ctx, sess, msg.Action, err.Error())
	}

	return that.sendGame(ctx, sess, msg.Action, game)
}

func (that *Server) sendGame(ctx context.Context, sess *session, action string, game *entity.Game) error {
	return that.sendMessage(ctx, sess, action, ResponsePayload{Game: game})
}

func (that *Server) sendError(ctx context.Context, sess *session, action, reason string) error {
	return that.sendMessage(ctx, sess, action, ResponsePayload{Error: reason})
}

func (that *Server) sendMessage(ctx context.Context, sess *session, action string, payload ResponsePayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = wsjson.Write(ctx, sess.conn, Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
