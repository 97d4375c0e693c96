package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/pebbles-backend/internal/entity"
)

func decodeRequest(msg *Message) (Request, error) {
	var req Request

	if len(msg.Payload) == 0 {
		return req, nil
	}

	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return req, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return req, nil
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleNewGame")

	req, err := decodeRequest(msg)
	if err != nil {
		log.Warn("bad payload", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "invalid payload")
	}

	game, events, err := that.games.CreateGame(ctx, req.Config)
	if err != nil {
		log.Info("failed to create game", "error", err)
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	log.Info("game created", "gameID", game.ID)

	return that.sendGame(conn, msg.Action, game, events)
}

func (that *Server) handleTurn(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	req, err := decodeRequest(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, "invalid payload")
	}

	return that.applyAction(ctx, msg.Action, conn, req.GameID, entity.TurnAction(req.Pebbles))
}

func (that *Server) handleGiveUp(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	req, err := decodeRequest(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, "invalid payload")
	}

	return that.applyAction(ctx, msg.Action, conn, req.GameID, entity.GiveUpAction())
}

func (that *Server) handleRestart(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	req, err := decodeRequest(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, "invalid payload")
	}

	return that.applyAction(ctx, msg.Action, conn, req.GameID, entity.RestartAction(req.Config))
}

func (that *Server) handleState(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	req, err := decodeRequest(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, "invalid payload")
	}

	if req.GameID == "" {
		return that.sendErrorResponse(conn, msg.Action, "game_id is required")
	}

	game, _, err := that.games.GetState(ctx, req.GameID)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	return that.sendGame(conn, msg.Action, game, nil)
}

func (that *Server) applyAction(ctx context.Context, action string, conn *websocket.Conn, gameID string, gameAction entity.Action) error {
	log := that.logger.With("method", "applyAction", "action", action, "gameID", gameID)

	if gameID == "" {
		return that.sendErrorResponse(conn, action, "game_id is required")
	}

	game, events, err := that.games.ApplyAction(ctx, gameID, gameAction)
	if err != nil {
		log.Info("action rejected", "error", err)
		return that.sendErrorResponse(conn, action, err.Error())
	}

	return that.sendGame(conn, action, game, events)
}
