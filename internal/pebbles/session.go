// Package pebbles implements the pebble-removal game played against an automated opponent.
//
// State is owned by the caller and passed into every call explicitly; nothing here keeps
// session state between calls. Every call either completes, including the opponent's reply,
// or fails before anything is changed.
package pebbles

import (
	"fmt"

	"github.com/rocketscienceinc/pebbles-backend/internal/apperror"
	"github.com/rocketscienceinc/pebbles-backend/internal/entity"
	"github.com/rocketscienceinc/pebbles-backend/internal/random"
)

// Initialize - starts a game. The first mover is drawn from src; when it is the opponent,
// its opening move is already played in the returned game.
func Initialize(config entity.GameConfig, src random.Source) (*entity.Game, []entity.Event, error) {
	return initialize("", config, src)
}

// ApplyAction - applies the user's action. Restart returns a new game with the same id;
// other actions update the given game in place and return it.
func ApplyAction(game *entity.Game, action entity.Action, src random.Source) (*entity.Game, []entity.Event, error) {
	if game == nil {
		return nil, nil, apperror.ErrNotInitialized
	}

	switch action.Kind {
	case entity.ActionTurn:
		events, err := MakeTurn(game, action.Pebbles, src)
		if err != nil {
			return game, nil, fmt.Errorf("failed to make turn: %w", err)
		}

		return game, events, nil
	case entity.ActionGiveUp:
		events, err := GiveUp(game)
		if err != nil {
			return game, nil, fmt.Errorf("failed to give up: %w", err)
		}

		return game, events, nil
	case entity.ActionRestart:
		config := game.Config
		if action.Config != nil {
			config = *action.Config
		}

		restarted, events, err := initialize(game.ID, config, src)
		if err != nil {
			return game, nil, fmt.Errorf("failed to restart: %w", err)
		}

		return restarted, events, nil
	default:
		return game, nil, fmt.Errorf("%w: %q", apperror.ErrUnknownAction, action.Kind)
	}
}

func Query(game *entity.Game) (entity.View, error) {
	if game == nil {
		return entity.View{}, apperror.ErrNotInitialized
	}

	return game.View(), nil
}

func initialize(id string, config entity.GameConfig, src random.Source) (*entity.Game, []entity.Event, error) {
	if err := config.Validate(); err != nil {
		return nil, nil, err
	}

	game := entity.NewGame(id, config, firstPlayer(src))
	if game.FirstTurn == entity.PlayerUser {
		return game, nil, nil
	}

	// pebblesTotal > maxPerTurn, so the opening move never empties the pile
	return game, counterTurn(game, src), nil
}

func firstPlayer(src random.Source) entity.Player {
	if src.Uint32()%2 == 0 {
		return entity.PlayerUser
	}

	return entity.PlayerOpponent
}
