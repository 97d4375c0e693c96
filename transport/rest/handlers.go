package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/pebbles-backend/internal/apperror"
	"github.com/rocketscienceinc/pebbles-backend/internal/entity"
)

// maxBodyBytes - configs and actions are a few dozen bytes.
const maxBodyBytes = 4 << 10

var (
	errBadRequest   = errors.New("bad request")
	errBodyTooLarge = errors.New("request body too large")
)

type GameResponse struct {
	Game   *entity.Game   `json:"game"`
	State  entity.View    `json:"state"`
	Events []entity.Event `json:"events,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type gameHandler struct {
	logger *slog.Logger
	games  gameManager
}

func newGameHandler(logger *slog.Logger, games gameManager) *gameHandler {
	return &gameHandler{
		logger: logger,
		games:  games,
	}
}

// Create - POST /games. An empty body starts a game with the configured defaults.
func (that *gameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var config *entity.GameConfig

	body, err := readBody(w, r)
	if err != nil {
		that.writeError(w, err)
		return
	}

	if len(body) > 0 {
		config = &entity.GameConfig{}
		if err = json.Unmarshal(body, config); err != nil {
			that.writeError(w, fmt.Errorf("%w: invalid config: %w", errBadRequest, err))
			return
		}
	}

	game, events, err := that.games.CreateGame(r.Context(), config)
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, GameResponse{Game: game, State: game.View(), Events: events})
}

// Get - GET /games/{id}.
func (that *gameHandler) Get(w http.ResponseWriter, r *http.Request) {
	game, view, err := that.games.GetState(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, GameResponse{Game: game, State: view})
}

// Apply - POST /games/{id}/actions.
func (that *gameHandler) Apply(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		that.writeError(w, err)
		return
	}

	var action entity.Action
	if err = json.Unmarshal(body, &action); err != nil {
		that.writeError(w, fmt.Errorf("%w: invalid action: %w", errBadRequest, err))
		return
	}

	game, events, err := that.games.ApplyAction(r.Context(), chi.URLParam(r, "id"), action)
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, GameResponse{Game: game, State: game.View(), Events: events})
}

// Delete - DELETE /games/{id}.
func (that *gameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := that.games.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *gameHandler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errBadRequest),
		errors.Is(err, apperror.ErrInvalidConfig),
		errors.Is(err, apperror.ErrInvalidAmount),
		errors.Is(err, apperror.ErrUnknownAction):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrNotInitialized):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: limit is %d bytes", errBodyTooLarge, tooLarge.Limit)
		}

		return nil, fmt.Errorf("%w: %w", errBadRequest, err)
	}

	return body, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
