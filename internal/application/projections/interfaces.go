package projections

import (
	"context"
	"time"

	"beautrip/internal/adapters/storage/review"
	"beautrip/internal/adapters/storage/treatment"
	domainFavorite "beautrip/internal/domain/favorite"
	domainHospital "beautrip/internal/domain/hospital"
	domainInquiry "beautrip/internal/domain/inquiry"
	domainReview "beautrip/internal/domain/review"
	domainSchedule "beautrip/internal/domain/schedule"
	domainTravel "beautrip/internal/domain/travel"
	domainTreatment "beautrip/internal/domain/treatment"
)

// CatalogLimit is how many catalog rows a list page loads before filtering in memory.
const CatalogLimit = 1000

// TreatmentReader interface for catalog treatment queries.
type TreatmentReader interface {
	List(ctx context.Context, filter treatment.ListFilter) ([]domainTreatment.Treatment, error)
	GetByID(ctx context.Context, id int64) (domainTreatment.Treatment, error)
	ListByHospital(ctx context.Context, hospitalID int64) ([]domainTreatment.Treatment, error)
}

// HospitalReader interface for catalog hospital queries.
type HospitalReader interface {
	List(ctx context.Context, limit int) ([]domainHospital.Hospital, error)
	GetByID(ctx context.Context, id int64) (domainHospital.Hospital, error)
}

// FavoriteStore interface for favorite queries.
type FavoriteStore interface {
	ListByAccount(ctx context.Context, accountID, kind string) ([]domainFavorite.Favorite, error)
}

// ReviewStore interface for review queries.
type ReviewStore interface {
	ListProcedure(ctx context.Context, filter review.ProcedureFilter) ([]domainReview.ProcedureReview, error)
	ListHospital(ctx context.Context, filter review.HospitalFilter) ([]domainReview.HospitalReview, error)
}

// TravelStore interface for travel period queries.
type TravelStore interface {
	Get(ctx context.Context, accountID string) (domainTravel.Period, error)
}

// ScheduleStore interface for schedule queries.
type ScheduleStore interface {
	ListByAccount(ctx context.Context, accountID string, from, to time.Time) ([]domainSchedule.Entry, error)
}

// InquiryStore interface for inquiry queries.
type InquiryStore interface {
	ListByAccount(ctx context.Context, accountID string, limit int) ([]domainInquiry.Inquiry, error)
}

// favoriteSet loads the account's favorites as a Set. Anonymous visitors get an empty set.
func favoriteSet(ctx context.Context, store FavoriteStore, accountID string) (domainFavorite.Set, error) {
	if accountID == "" || store == nil {
		return nil, nil
	}
	list, err := store.ListByAccount(ctx, accountID, "")
	if err != nil {
		return nil, err
	}
	return domainFavorite.NewSet(list), nil
}
