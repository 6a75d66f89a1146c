package treatment

import (
	"context"

	domain "beautrip/internal/domain/treatment"
)

// Reader serves catalog treatments. Both the local SQLite mirror and the hosted
// Postgres catalog implement it.
type Reader interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Treatment, error)
	GetByID(ctx context.Context, id int64) (domain.Treatment, error)
	ListByHospital(ctx context.Context, hospitalID int64) ([]domain.Treatment, error)
}

// Store is the writable local mirror used by the seed command.
type Store interface {
	Reader
	Upsert(ctx context.Context, list []domain.Treatment) error
	Count(ctx context.Context) (int, error)
}

// ListFilter limits a List call. Zero Limit means no limit.
type ListFilter struct {
	Limit         int
	CategoryLarge string
}
