package travel

import (
	"context"

	domain "beautrip/internal/domain/travel"
)

// Store persists one travel period per account. Saves are last-write-wins.
type Store interface {
	// Get returns the saved period; a missing row yields an empty Period and no error.
	Get(ctx context.Context, accountID string) (domain.Period, error)
	Save(ctx context.Context, p domain.Period) error
	Delete(ctx context.Context, accountID string) error
}
