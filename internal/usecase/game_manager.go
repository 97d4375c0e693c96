package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/rocketscienceinc/pebbles-backend/internal/apperror"
	"github.com/rocketscienceinc/pebbles-backend/internal/entity"
	"github.com/rocketscienceinc/pebbles-backend/internal/pebbles"
	"github.com/rocketscienceinc/pebbles-backend/internal/random"
	"github.com/rocketscienceinc/pebbles-backend/internal/repository"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager - keeps game sessions in storage between calls and runs each action through
// the game rules. Callers send at most one action per session at a time.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	random   random.Source
	clock    quartz.Clock
	defaults entity.GameConfig
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, src random.Source, clock quartz.Clock, defaults entity.GameConfig) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,
		random:   src,
		clock:    clock,
		defaults: defaults,
	}
}

// CreateGame - starts a new session. A nil config uses the configured defaults.
func (that *GameManager) CreateGame(ctx context.Context, config *entity.GameConfig) (*entity.Game, []entity.Event, error) {
	if config == nil {
		config = &that.defaults
	}

	game, events, err := pebbles.Initialize(*config, that.random)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize game: %w", err)
	}

	game.ID = uuid.NewString()
	game.CreatedAt = that.clock.Now()
	game.UpdatedAt = game.CreatedAt

	if err = that.updateGame(ctx, game); err != nil {
		return nil, nil, err
	}

	that.logger.Info("game created",
		"gameID", game.ID,
		"difficulty", game.Config.Difficulty,
		"firstTurn", game.FirstTurn,
		"pebblesRemaining", game.PebblesRemaining,
	)

	return game, events, nil
}

// ApplyAction - loads the session, applies the action and stores the result.
// Nothing is written when the action is rejected.
func (that *GameManager) ApplyAction(ctx context.Context, id string, action entity.Action) (*entity.Game, []entity.Event, error) {
	log := that.logger.With("method", "ApplyAction", "gameID", id, "action", action.Kind)

	game, err := that.getGameByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	updated, events, err := pebbles.ApplyAction(game, action, that.random)
	if err != nil {
		log.Debug("action rejected", "error", err)
		return game, nil, fmt.Errorf("failed to apply action: %w", err)
	}

	now := that.clock.Now()
	if updated.CreatedAt.IsZero() {
		updated.CreatedAt = now
	}
	updated.UpdatedAt = now

	if err = that.updateGame(ctx, updated); err != nil {
		return nil, nil, err
	}

	log.Info("action applied",
		"pebblesRemaining", updated.PebblesRemaining,
		"status", updated.Status(),
		"winner", updated.Winner,
	)

	return updated, events, nil
}

func (that *GameManager) GetState(ctx context.Context, id string) (*entity.Game, entity.View, error) {
	game, err := that.getGameByID(ctx, id)
	if err != nil {
		return nil, entity.View{}, err
	}

	view, err := pebbles.Query(game)
	if err != nil {
		return nil, entity.View{}, fmt.Errorf("failed to query game: %w", err)
	}

	return game, view, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return fmt.Errorf("%w: %s", apperror.ErrNotInitialized, id)
		}

		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrGameNotFound) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrNotInitialized, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
