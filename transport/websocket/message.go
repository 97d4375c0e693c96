package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/pebbles-backend/internal/entity"
)

const (
	actionNewGame = "game:new"
	actionTurn    = "game:turn"
	actionGiveUp  = "game:giveup"
	actionRestart = "game:restart"
	actionState   = "game:state"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Request - payload of every client message; fields are read per action.
type Request struct {
	GameID  string             `json:"game_id,omitempty"`
	Pebbles int                `json:"pebbles,omitempty"`
	Config  *entity.GameConfig `json:"config,omitempty"`
}

type Response struct {
	Game   *entity.Game   `json:"game,omitempty"`
	State  *entity.View   `json:"state,omitempty"`
	Events []entity.Event `json:"events,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload Response) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response := Message{
		Action:  action,
		Payload: payloadBytes,
	}

	if err = conn.WriteJSON(response); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(conn *websocket.Conn, action, errMsg string) error {
	return that.sendMessage(conn, action, Response{Error: errMsg})
}

func (that *Server) sendGame(conn *websocket.Conn, action string, game *entity.Game, events []entity.Event) error {
	view := game.View()

	return that.sendMessage(conn, action, Response{Game: game, State: &view, Events: events})
}
