package entity

import (
	"fmt"
	"math"
	"time"

	"github.com/rocketscienceinc/pebbles-backend/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

type Difficulty string

const (
	DifficultyEasy Difficulty = "Easy"
	DifficultyHard Difficulty = "Hard"
)

func (that Difficulty) IsValid() bool {
	return that == DifficultyEasy || that == DifficultyHard
}

// GameConfig - parameters a game is started with.
type GameConfig struct {
	Difficulty   Difficulty `json:"difficulty"`
	PebblesTotal int        `json:"pebbles_total"`
	MaxPerTurn   int        `json:"max_per_turn"`
}

// Validate - checks that 1 <= MaxPerTurn < PebblesTotal <= math.MaxUint32 and the difficulty is known.
func (that GameConfig) Validate() error {
	if !that.Difficulty.IsValid() {
		return fmt.Errorf("%w: unknown difficulty %q", apperror.ErrInvalidConfig, that.Difficulty)
	}

	if that.PebblesTotal <= 0 {
		return fmt.Errorf("%w: pebbles total must be positive, got %d", apperror.ErrInvalidConfig, that.PebblesTotal)
	}

	if int64(that.PebblesTotal) > math.MaxUint32 {
		return fmt.Errorf("%w: pebbles total must not exceed %d, got %d",
			apperror.ErrInvalidConfig, uint32(math.MaxUint32), that.PebblesTotal)
	}

	if that.MaxPerTurn <= 0 || that.MaxPerTurn >= that.PebblesTotal {
		return fmt.Errorf("%w: max per turn must be in [1, %d), got %d",
			apperror.ErrInvalidConfig, that.PebblesTotal, that.MaxPerTurn)
	}

	return nil
}

type Game struct {
	ID               string     `json:"id,omitempty"`
	Config           GameConfig `json:"config"`
	PebblesRemaining int        `json:"pebbles_remaining"`
	FirstTurn        Player     `json:"first_turn"`
	CurrentTurn      Player     `json:"current_turn,omitempty"`
	Winner           Player     `json:"winner,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func NewGame(id string, config GameConfig, firstTurn Player) *Game {
	return &Game{
		ID:               id,
		Config:           config,
		PebblesRemaining: config.PebblesTotal,
		FirstTurn:        firstTurn,
		CurrentTurn:      firstTurn,
	}
}

// Status - derived from the winner: a game is finished exactly when someone has won.
func (that *Game) Status() string {
	if that.Winner != PlayerNone {
		return StatusFinished
	}

	return StatusOngoing
}

func (that *Game) IsFinished() bool {
	return that.Status() == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status() == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	if that.IsFinished() {
		return fmt.Errorf("%w: winner is %s", apperror.ErrGameFinished, that.Winner)
	}

	return nil
}

// Finish - ends the game in favour of the winner.
func (that *Game) Finish(winner Player) {
	that.Winner = winner
	that.CurrentTurn = PlayerNone
}

func (that *Game) View() View {
	return View{
		PebblesRemaining: that.PebblesRemaining,
		Difficulty:       that.Config.Difficulty,
		Winner:           that.Winner,
	}
}

// View - read-only projection returned by state queries.
type View struct {
	PebblesRemaining int        `json:"pebbles_remaining"`
	Difficulty       Difficulty `json:"difficulty"`
	Winner           Player     `json:"winner,omitempty"`
}
