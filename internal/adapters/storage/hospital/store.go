package hospital

import (
	"context"

	domain "beautrip/internal/domain/hospital"
)

// Reader serves catalog hospitals.
type Reader interface {
	List(ctx context.Context, limit int) ([]domain.Hospital, error)
	GetByID(ctx context.Context, id int64) (domain.Hospital, error)
}

// Store is the writable local mirror used by the seed command.
type Store interface {
	Reader
	Upsert(ctx context.Context, list []domain.Hospital) error
	Count(ctx context.Context) (int, error)
}
