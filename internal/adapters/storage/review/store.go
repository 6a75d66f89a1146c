package review

import (
	"context"

	domain "beautrip/internal/domain/review"
)

// Store persists procedure and hospital reviews.
type Store interface {
	SaveProcedure(ctx context.Context, r domain.ProcedureReview) error
	SaveHospital(ctx context.Context, r domain.HospitalReview) error
	ListProcedure(ctx context.Context, filter ProcedureFilter) ([]domain.ProcedureReview, error)
	ListHospital(ctx context.Context, filter HospitalFilter) ([]domain.HospitalReview, error)
	// Delete removes the account's own review of either type.
	Delete(ctx context.Context, accountID, id string) error
}

// ProcedureFilter narrows procedure reviews. Empty fields do not filter.
type ProcedureFilter struct {
	AccountID     string
	Category      string
	ProcedureName string
	Limit         int
}

// HospitalFilter narrows hospital reviews. Empty fields do not filter.
type HospitalFilter struct {
	AccountID    string
	HospitalName string
	Limit        int
}
