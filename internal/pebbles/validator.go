package pebbles

import (
	"fmt"

	"github.com/rocketscienceinc/pebbles-backend/internal/apperror"
)

// ValidateMove - checks that 1 <= amount <= min(maxPerTurn, remaining).
func ValidateMove(amount, remaining, maxPerTurn int) error {
	limit := min(maxPerTurn, remaining)

	if amount < 1 || amount > limit {
		return fmt.Errorf("%w: %d, allowed 1..%d", apperror.ErrInvalidAmount, amount, limit)
	}

	return nil
}
