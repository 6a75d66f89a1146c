package inquiry

import (
	"context"

	domain "beautrip/internal/domain/inquiry"
)

// Store persists consultation inquiries.
type Store interface {
	Save(ctx context.Context, q domain.Inquiry) error
	UpdateStatus(ctx context.Context, id, status string) error
	ListByAccount(ctx context.Context, accountID string, limit int) ([]domain.Inquiry, error)
}
