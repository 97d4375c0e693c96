package pebbles

import (
	"testing"

	"github.com/rocketscienceinc/pebbles-backend/internal/apperror"
	"github.com/rocketscienceinc/pebbles-backend/internal/entity"
	"github.com/rocketscienceinc/pebbles-backend/internal/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// even draws put the user first
func userFirst() *random.Sequence {
	return random.NewSequence(0)
}

func TestInitialize(t *testing.T) {
	t.Run("User moves first", func(t *testing.T) {
		// Given: a draw that selects the user
		config := entity.GameConfig{Difficulty: entity.DifficultyHard, PebblesTotal: 15, MaxPerTurn: 2}

		// When: initializing the game
		game, events, err := Initialize(config, userFirst())
		require.NoError(t, err)

		// Then: the full pile waits for the user
		expectedGame := &entity.Game{
			Config:           config,
			PebblesRemaining: 15,
			FirstTurn:        entity.PlayerUser,
			CurrentTurn:      entity.PlayerUser,
		}

		assert.Equal(t, expectedGame, game)
		assert.Empty(t, events)
	})

	t.Run("Opponent opens the game", func(t *testing.T) {
		// Given: an odd draw that selects the opponent, hard difficulty, 10 pebbles, max 3
		config := entity.GameConfig{Difficulty: entity.DifficultyHard, PebblesTotal: 10, MaxPerTurn: 3}

		// When: initializing the game
		game, events, err := Initialize(config, random.NewSequence(1))
		require.NoError(t, err)

		// Then: the opponent already took 10 % 4 pebbles and the user is to move
		assert.Equal(t, entity.PlayerOpponent, game.FirstTurn)
		assert.Equal(t, entity.PlayerUser, game.CurrentTurn)
		assert.Equal(t, 8, game.PebblesRemaining)
		assert.Equal(t, []entity.Event{entity.CounterTurnEvent(2)}, events)
		assert.True(t, game.IsOngoing())
	})

	t.Run("Opponent opens from a losing pile with a random move", func(t *testing.T) {
		// Given: 15 pebbles with max 2 is a multiple of 3; draws 1 (opponent first) then 1 again
		config := entity.GameConfig{Difficulty: entity.DifficultyHard, PebblesTotal: 15, MaxPerTurn: 2}

		// When: initializing the game
		game, events, err := Initialize(config, random.NewSequence(1))
		require.NoError(t, err)

		// Then: the opponent took 1 % 2 + 1 pebbles
		assert.Equal(t, 13, game.PebblesRemaining)
		assert.Equal(t, []entity.Event{entity.CounterTurnEvent(2)}, events)
	})

	t.Run("Invalid config is rejected", func(t *testing.T) {
		configs := []entity.GameConfig{
			{Difficulty: entity.DifficultyEasy, PebblesTotal: 0, MaxPerTurn: 1},
			{Difficulty: entity.DifficultyEasy, PebblesTotal: 10, MaxPerTurn: 0},
			{Difficulty: entity.DifficultyEasy, PebblesTotal: 10, MaxPerTurn: 10},
		}

		for _, config := range configs {
			game, _, err := Initialize(config, userFirst())

			assert.ErrorIs(t, err, apperror.ErrInvalidConfig)
			assert.Nil(t, game)
		}
	})
}

func TestApplyAction_Turn(t *testing.T) {
	t.Run("Hard opponent restores a multiple of max+1", func(t *testing.T) {
		// Given: hard game, 10 pebbles, max 3, user first
		config := entity.GameConfig{Difficulty: entity.DifficultyHard, PebblesTotal: 10, MaxPerTurn: 3}
		src := userFirst()
		game, _, err := Initialize(config, src)
		require.NoError(t, err)

		// When: the user takes 1, leaving 9
		game, events, err := ApplyAction(game, entity.TurnAction(1), src)
		require.NoError(t, err)

		// Then: the opponent takes exactly 1, leaving 8
		assert.Equal(t, []entity.Event{entity.CounterTurnEvent(1)}, events)
		assert.Equal(t, 8, game.PebblesRemaining)
		assert.Equal(t, entity.PlayerUser, game.CurrentTurn)
		assert.True(t, game.IsOngoing())
	})

	t.Run("User takes the last pebble and wins", func(t *testing.T) {
		// Given: a game with 2 pebbles left on the user's turn
		game := entity.NewGame("", entity.GameConfig{Difficulty: entity.DifficultyEasy, PebblesTotal: 10, MaxPerTurn: 3}, entity.PlayerUser)
		game.PebblesRemaining = 2

		// When: the user takes both
		game, events, err := ApplyAction(game, entity.TurnAction(2), userFirst())
		require.NoError(t, err)

		// Then: the user wins and the opponent does not move
		assert.Equal(t, []entity.Event{entity.WonEvent(entity.PlayerUser)}, events)
		assert.Equal(t, 0, game.PebblesRemaining)
		assert.Equal(t, entity.PlayerUser, game.Winner)
		assert.True(t, game.IsFinished())
	})

	t.Run("Opponent takes the last pebble and wins", func(t *testing.T) {
		// Given: 5 pebbles left, max 3, hard opponent
		game := entity.NewGame("", entity.GameConfig{Difficulty: entity.DifficultyHard, PebblesTotal: 10, MaxPerTurn: 3}, entity.PlayerUser)
		game.PebblesRemaining = 5

		// When: the user takes 2, leaving 3
		game, events, err := ApplyAction(game, entity.TurnAction(2), userFirst())
		require.NoError(t, err)

		// Then: the opponent takes all 3 and wins
		assert.Equal(t, []entity.Event{entity.CounterTurnEvent(3), entity.WonEvent(entity.PlayerOpponent)}, events)
		assert.Equal(t, entity.PlayerOpponent, game.Winner)
		assert.Equal(t, entity.PlayerNone, game.CurrentTurn)
	})

	t.Run("Invalid amounts leave the game unchanged", func(t *testing.T) {
		for _, amount := range []int{0, -1, 4, 6} {
			// Given: 5 pebbles left, max 3
			game := entity.NewGame("", entity.GameConfig{Difficulty: entity.DifficultyHard, PebblesTotal: 10, MaxPerTurn: 3}, entity.PlayerUser)
			game.PebblesRemaining = 5
			before := *game

			// When: the user asks for an invalid amount
			after, events, err := ApplyAction(game, entity.TurnAction(amount), userFirst())

			// Then: ErrInvalidAmount is returned and nothing changed
			require.ErrorIs(t, err, apperror.ErrInvalidAmount)
			assert.Nil(t, events)
			assert.Equal(t, before, *after)
		}
	})

	t.Run("More than the remaining pile is rejected", func(t *testing.T) {
		// Given: 2 pebbles left, max 3
		game := entity.NewGame("", entity.GameConfig{Difficulty: entity.DifficultyHard, PebblesTotal: 10, MaxPerTurn: 3}, entity.PlayerUser)
		game.PebblesRemaining = 2

		// When: the user takes 3
		_, _, err := ApplyAction(game, entity.TurnAction(3), userFirst())

		// Then: the move is rejected and the pile is intact
		require.ErrorIs(t, err, apperror.ErrInvalidAmount)
		assert.Equal(t, 2, game.PebblesRemaining)
	})

	t.Run("Turn after the game is over fails", func(t *testing.T) {
		// Given: a finished game
		game := entity.NewGame("", entity.GameConfig{Difficulty: entity.DifficultyEasy, PebblesTotal: 10, MaxPerTurn: 3}, entity.PlayerUser)
		game.PebblesRemaining = 0
		game.Finish(entity.PlayerUser)
		before := *game

		// When: the user tries another turn
		_, _, err := ApplyAction(game, entity.TurnAction(1), userFirst())

		// Then: ErrGameFinished is returned and the game is unchanged
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, before, *game)
	})

	t.Run("Turn out of order fails", func(t *testing.T) {
		// Given: a game stored mid-way with the opponent to move
		game := entity.NewGame("", entity.GameConfig{Difficulty: entity.DifficultyEasy, PebblesTotal: 10, MaxPerTurn: 3}, entity.PlayerOpponent)

		// When: the user moves
		_, _, err := ApplyAction(game, entity.TurnAction(1), userFirst())

		// Then: ErrNotYourTurn is returned
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, 10, game.PebblesRemaining)
	})
}

func TestApplyAction_HardOpponentWinsFromLosingStart(t *testing.T) {
	// Given: hard game, 15 pebbles, max 2, user first; 15 is a multiple of 3
	config := entity.GameConfig{Difficulty: entity.DifficultyHard, PebblesTotal: 15, MaxPerTurn: 2}
	src := userFirst()
	game, _, err := Initialize(config, src)
	require.NoError(t, err)

	removed := 0
	moves := []int{1, 2, 2, 1, 1}

	// When: the user keeps playing, whatever the amount
	for i := 0; game.IsOngoing(); i++ {
		amount := moves[i%len(moves)]

		var events []entity.Event
		game, events, err = ApplyAction(game, entity.TurnAction(amount), src)
		require.NoError(t, err)
		removed += amount

		// Then: every reply leaves a multiple of 3 for the user
		assert.Zero(t, game.PebblesRemaining%3)

		for _, event := range events {
			if event.Kind == entity.EventCounterTurn {
				removed += event.Pebbles
			}
		}
	}

	// Then: the opponent wins and every pebble was taken exactly once
	assert.Equal(t, entity.PlayerOpponent, game.Winner)
	assert.Equal(t, config.PebblesTotal, removed)
}

func TestApplyAction_Conservation(t *testing.T) {
	difficulties := []entity.Difficulty{entity.DifficultyEasy, entity.DifficultyHard}

	for seed := int64(1); seed <= 30; seed++ {
		for _, difficulty := range difficulties {
			src := random.New(seed)
			userMoves := random.New(seed * 31)
			config := entity.GameConfig{Difficulty: difficulty, PebblesTotal: 20 + int(seed), MaxPerTurn: 1 + int(seed%5)}

			game, events, err := Initialize(config, src)
			require.NoError(t, err)

			removed := sumCounterTurns(events)
			for game.IsOngoing() {
				amount := ChooseMove(game.PebblesRemaining, config.MaxPerTurn, entity.DifficultyEasy, userMoves)

				game, events, err = ApplyAction(game, entity.TurnAction(amount), src)
				require.NoError(t, err)

				removed += amount + sumCounterTurns(events)
			}

			assert.Equal(t, config.PebblesTotal, removed)
			assert.Equal(t, 0, game.PebblesRemaining)
			assert.NotEqual(t, entity.PlayerNone, game.Winner)
		}
	}
}

func sumCounterTurns(events []entity.Event) int {
	sum := 0
	for _, event := range events {
		if event.Kind == entity.EventCounterTurn {
			sum += event.Pebbles
		}
	}

	return sum
}

func TestApplyAction_GiveUp(t *testing.T) {
	t.Run("Opponent wins from any ongoing state", func(t *testing.T) {
		for _, turn := range []entity.Player{entity.PlayerUser, entity.PlayerOpponent} {
			// Given: an ongoing game
			game := entity.NewGame("", entity.GameConfig{Difficulty: entity.DifficultyEasy, PebblesTotal: 10, MaxPerTurn: 3}, turn)

			// When: the user gives up
			game, events, err := ApplyAction(game, entity.GiveUpAction(), userFirst())
			require.NoError(t, err)

			// Then: the opponent is the winner
			assert.Equal(t, entity.PlayerOpponent, game.Winner)
			assert.Equal(t, 10, game.PebblesRemaining)
			assert.Equal(t, []entity.Event{entity.WonEvent(entity.PlayerOpponent)}, events)
		}
	})

	t.Run("Giving up a finished game fails", func(t *testing.T) {
		// Given: a game the user already won
		game := entity.NewGame("", entity.GameConfig{Difficulty: entity.DifficultyEasy, PebblesTotal: 10, MaxPerTurn: 3}, entity.PlayerUser)
		game.PebblesRemaining = 0
		game.Finish(entity.PlayerUser)

		// When: the user gives up
		_, _, err := ApplyAction(game, entity.GiveUpAction(), userFirst())

		// Then: the result stands
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, entity.PlayerUser, game.Winner)
	})
}

func TestApplyAction_Restart(t *testing.T) {
	config := entity.GameConfig{Difficulty: entity.DifficultyHard, PebblesTotal: 12, MaxPerTurn: 3}

	t.Run("Restart without config reuses the previous one", func(t *testing.T) {
		states := map[string]func(*entity.Game){
			"ongoing":      func(*entity.Game) {},
			"mid game":     func(game *entity.Game) { game.PebblesRemaining = 5 },
			"user won":     func(game *entity.Game) { game.PebblesRemaining = 0; game.Finish(entity.PlayerUser) },
			"opponent won": func(game *entity.Game) { game.Finish(entity.PlayerOpponent) },
		}

		for name, prepare := range states {
			t.Run(name, func(t *testing.T) {
				// Given: a game in some state
				game := entity.NewGame("session-1", config, entity.PlayerUser)
				prepare(game)

				// When: restarting without a new config
				restarted, events, err := ApplyAction(game, entity.RestartAction(nil), userFirst())
				require.NoError(t, err)

				// Then: a fresh game with the full pile and no winner
				view, err := Query(restarted)
				require.NoError(t, err)

				assert.Equal(t, entity.View{PebblesRemaining: 12, Difficulty: entity.DifficultyHard}, view)
				assert.Equal(t, "session-1", restarted.ID)
				assert.Equal(t, config, restarted.Config)
				assert.Empty(t, events)
			})
		}
	})

	t.Run("Restart with a new config", func(t *testing.T) {
		// Given: a finished game
		game := entity.NewGame("", config, entity.PlayerUser)
		game.Finish(entity.PlayerOpponent)
		newConfig := entity.GameConfig{Difficulty: entity.DifficultyEasy, PebblesTotal: 20, MaxPerTurn: 5}

		// When: restarting with a new config
		restarted, _, err := ApplyAction(game, entity.RestartAction(&newConfig), userFirst())
		require.NoError(t, err)

		// Then: the new parameters are in effect
		assert.Equal(t, newConfig, restarted.Config)
		assert.Equal(t, 20, restarted.PebblesRemaining)
		assert.True(t, restarted.IsOngoing())
	})

	t.Run("Restart with an invalid config keeps the old game", func(t *testing.T) {
		// Given: an ongoing game
		game := entity.NewGame("", config, entity.PlayerUser)
		game.PebblesRemaining = 7
		badConfig := entity.GameConfig{Difficulty: entity.DifficultyEasy, PebblesTotal: 3, MaxPerTurn: 3}

		// When: restarting with an invalid config
		kept, _, err := ApplyAction(game, entity.RestartAction(&badConfig), userFirst())

		// Then: ErrInvalidConfig and the old game is still there
		require.ErrorIs(t, err, apperror.ErrInvalidConfig)
		assert.Same(t, game, kept)
		assert.Equal(t, 7, kept.PebblesRemaining)
	})
}

func TestApplyAction_Errors(t *testing.T) {
	t.Run("Nil game is not initialized", func(t *testing.T) {
		_, _, err := ApplyAction(nil, entity.TurnAction(1), userFirst())
		assert.ErrorIs(t, err, apperror.ErrNotInitialized)

		_, err = Query(nil)
		assert.ErrorIs(t, err, apperror.ErrNotInitialized)
	})

	t.Run("Unknown action kind", func(t *testing.T) {
		game := entity.NewGame("", entity.GameConfig{Difficulty: entity.DifficultyEasy, PebblesTotal: 10, MaxPerTurn: 3}, entity.PlayerUser)

		_, _, err := ApplyAction(game, entity.Action{Kind: "Undo"}, userFirst())

		assert.ErrorIs(t, err, apperror.ErrUnknownAction)
	})
}

func TestInitialize_PileBeyondUint32(t *testing.T) {
	// Given: a pile and max per turn past the uint32 range, with the opponent drawn first
	config := entity.GameConfig{Difficulty: entity.DifficultyEasy, PebblesTotal: 1 << 33, MaxPerTurn: 1 << 32}

	// When: initializing the game
	var (
		game *entity.Game
		err  error
	)
	assert.NotPanics(t, func() {
		game, _, err = Initialize(config, random.NewSequence(1))
	})

	// Then: the config is rejected before the opponent moves
	require.ErrorIs(t, err, apperror.ErrInvalidConfig)
	assert.Nil(t, game)
}
