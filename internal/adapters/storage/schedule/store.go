package schedule

import (
	"context"
	"time"

	domain "beautrip/internal/domain/schedule"
)

// Store persists planned procedure dates.
type Store interface {
	Save(ctx context.Context, e domain.Entry) error
	// Delete removes an entry owned by accountID; other accounts' entries are untouched.
	Delete(ctx context.Context, accountID, id string) error
	// ListByAccount returns entries ordered by date within [from, to]; zero bounds are open.
	ListByAccount(ctx context.Context, accountID string, from, to time.Time) ([]domain.Entry, error)
}
