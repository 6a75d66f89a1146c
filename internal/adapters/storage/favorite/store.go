package favorite

import (
	"context"

	domain "beautrip/internal/domain/favorite"
)

// Store persists favorites.
type Store interface {
	// Add inserts a favorite. Adding an existing kind/target for the account is a no-op.
	Add(ctx context.Context, f domain.Favorite) error
	// Remove deletes a favorite by kind/target; removing an absent one is a no-op.
	Remove(ctx context.Context, accountID, kind, targetID string) error
	// Exists reports whether the account has favorited kind/target.
	Exists(ctx context.Context, accountID, kind, targetID string) (bool, error)
	// ListByAccount returns favorites newest first, optionally filtered by kind.
	ListByAccount(ctx context.Context, accountID, kind string) ([]domain.Favorite, error)
}
