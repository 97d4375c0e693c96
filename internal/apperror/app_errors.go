package apperror

import "errors"

var (
	ErrInvalidConfig  = errors.New("invalid game config")
	ErrInvalidAmount  = errors.New("invalid number of pebbles")
	ErrGameFinished   = errors.New("game is already finished")
	ErrNotInitialized = errors.New("game is not initialized")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrUnknownAction  = errors.New("unknown action")
)
