package pebbles

import (
	"github.com/rocketscienceinc/pebbles-backend/internal/entity"
	"github.com/rocketscienceinc/pebbles-backend/internal/random"
)

// ChooseMove - number of pebbles the opponent takes from a non-empty pile.
//
// On Hard the opponent plays the bounded subtraction game optimally: a pile that is a
// multiple of maxPerTurn+1 is lost for the player to move, so it takes the remainder and
// hands that position to the user. From a lost position it falls back to the Easy move.
func ChooseMove(remaining, maxPerTurn int, difficulty entity.Difficulty, src random.Source) int {
	switch difficulty {
	case entity.DifficultyHard:
		if remainder := remaining % (maxPerTurn + 1); remainder != 0 {
			return remainder
		}

		return randomMove(remaining, maxPerTurn, src)
	default:
		return randomMove(remaining, maxPerTurn, src)
	}
}

// randomMove - uniform in [1, min(maxPerTurn, remaining)].
// Validated configs keep the pile within uint32, so limit converts without loss.
func randomMove(remaining, maxPerTurn int, src random.Source) int {
	limit := min(maxPerTurn, remaining)

	return int(src.Uint32()%uint32(limit)) + 1 //nolint: gosec // 1 <= limit <= math.MaxUint32
}
