package pebbles

import (
	"fmt"

	"github.com/rocketscienceinc/pebbles-backend/internal/apperror"
	"github.com/rocketscienceinc/pebbles-backend/internal/entity"
	"github.com/rocketscienceinc/pebbles-backend/internal/random"
)

// MakeTurn - removes the user's pebbles and, if the pile is not empty, lets the opponent
// answer in the same call. The game is left untouched when the move is rejected.
func MakeTurn(game *entity.Game, pebbles int, src random.Source) ([]entity.Event, error) {
	if err := game.ConfirmOngoingState(); err != nil {
		return nil, err
	}

	if game.CurrentTurn != entity.PlayerUser {
		return nil, apperror.ErrNotYourTurn
	}

	if err := ValidateMove(pebbles, game.PebblesRemaining, game.Config.MaxPerTurn); err != nil {
		return nil, fmt.Errorf("invalid turn: %w", err)
	}

	game.PebblesRemaining -= pebbles
	if game.PebblesRemaining == 0 {
		game.Finish(entity.PlayerUser)

		return []entity.Event{entity.WonEvent(entity.PlayerUser)}, nil
	}

	game.CurrentTurn = game.CurrentTurn.Other()

	return counterTurn(game, src), nil
}

// GiveUp - the user forfeits, whoever's turn it is.
func GiveUp(game *entity.Game) ([]entity.Event, error) {
	if err := game.ConfirmOngoingState(); err != nil {
		return nil, err
	}

	game.Finish(entity.PlayerOpponent)

	return []entity.Event{entity.WonEvent(entity.PlayerOpponent)}, nil
}

// counterTurn - the opponent's move. Called only with a non-empty pile on the opponent's turn.
func counterTurn(game *entity.Game, src random.Source) []entity.Event {
	taken := ChooseMove(game.PebblesRemaining, game.Config.MaxPerTurn, game.Config.Difficulty, src)
	events := []entity.Event{entity.CounterTurnEvent(taken)}

	game.PebblesRemaining -= taken
	if game.PebblesRemaining == 0 {
		game.Finish(entity.PlayerOpponent)

		return append(events, entity.WonEvent(entity.PlayerOpponent))
	}

	game.CurrentTurn = game.CurrentTurn.Other()

	return events
}
