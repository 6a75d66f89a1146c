package projections

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
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

var errCatalogDown = errors.New("catalog down")

type mockTreatmentReader struct {
	list  []domainTreatment.Treatment
	err   error
	calls int
}

// List returns seeded treatments honouring the category and limit filters.
func (m *mockTreatmentReader) List(_ context.Context, filter treatment.ListFilter) ([]domainTreatment.Treatment, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	var out []domainTreatment.Treatment
	for _, t := range m.list {
		if filter.CategoryLarge != "" && t.CategoryLarge != filter.CategoryLarge {
			continue
		}
		out = append(out, t)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

// GetByID returns a seeded treatment or a wrapped sql.ErrNoRows.
func (m *mockTreatmentReader) GetByID(_ context.Context, id int64) (domainTreatment.Treatment, error) {
	for _, t := range m.list {
		if t.ID == id {
			return t, nil
		}
	}
	return domainTreatment.Treatment{}, fmt.Errorf("treatment %d: %w", id, sql.ErrNoRows)
}

// ListByHospital returns seeded treatments for the hospital.
func (m *mockTreatmentReader) ListByHospital(_ context.Context, hospitalID int64) ([]domainTreatment.Treatment, error) {
	var out []domainTreatment.Treatment
	for _, t := range m.list {
		if t.HospitalID == hospitalID {
			out = append(out, t)
		}
	}
	return out, nil
}

type mockHospitalReader struct {
	list []domainHospital.Hospital
}

// List returns seeded hospitals.
func (m *mockHospitalReader) List(_ context.Context, _ int) ([]domainHospital.Hospital, error) {
	return m.list, nil
}

// GetByID returns a seeded hospital or a wrapped sql.ErrNoRows.
func (m *mockHospitalReader) GetByID(_ context.Context, id int64) (domainHospital.Hospital, error) {
	for _, h := range m.list {
		if h.ID == id {
			return h, nil
		}
	}
	return domainHospital.Hospital{}, fmt.Errorf("hospital %d: %w", id, sql.ErrNoRows)
}

type mockFavoriteStore struct {
	list []domainFavorite.Favorite
}

// ListByAccount returns the account's seeded favorites.
func (m *mockFavoriteStore) ListByAccount(_ context.Context, accountID, kind string) ([]domainFavorite.Favorite, error) {
	var out []domainFavorite.Favorite
	for _, f := range m.list {
		if f.AccountID == accountID && (kind == "" || f.Kind == kind) {
			out = append(out, f)
		}
	}
	return out, nil
}

type mockReviewStore struct {
	procedures []domainReview.ProcedureReview
	hospitals  []domainReview.HospitalReview
}

// ListProcedure filters seeded procedure reviews.
func (m *mockReviewStore) ListProcedure(_ context.Context, f review.ProcedureFilter) ([]domainReview.ProcedureReview, error) {
	var out []domainReview.ProcedureReview
	for _, r := range m.procedures {
		if (f.AccountID == "" || r.AccountID == f.AccountID) && (f.Category == "" || r.Category == f.Category) {
			out = append(out, r)
		}
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

// ListHospital filters seeded hospital reviews.
func (m *mockReviewStore) ListHospital(_ context.Context, f review.HospitalFilter) ([]domainReview.HospitalReview, error) {
	var out []domainReview.HospitalReview
	for _, r := range m.hospitals {
		if (f.AccountID == "" || r.AccountID == f.AccountID) && (f.HospitalName == "" || r.HospitalName == f.HospitalName) {
			out = append(out, r)
		}
	}
	return out, nil
}

type mockTravelStore struct {
	period domainTravel.Period
}

// Get returns the seeded period.
func (m *mockTravelStore) Get(_ context.Context, accountID string) (domainTravel.Period, error) {
	p := m.period
	p.AccountID = accountID
	return p, nil
}

type mockScheduleStore struct {
	entries []domainSchedule.Entry
}

// ListByAccount returns seeded entries inside [from, to].
func (m *mockScheduleStore) ListByAccount(_ context.Context, accountID string, from, to time.Time) ([]domainSchedule.Entry, error) {
	var out []domainSchedule.Entry
	for _, e := range m.entries {
		if e.AccountID == accountID && !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

type mockInquiryStore struct{}

// ListByAccount returns no inquiries.
func (m *mockInquiryStore) ListByAccount(_ context.Context, _ string, _ int) ([]domainInquiry.Inquiry, error) {
	return nil, nil
}

// catalog builds n treatments with ids 1..n; odd ids are eyes, even ids nose.
func catalog(n int) []domainTreatment.Treatment {
	out := make([]domainTreatment.Treatment, n)
	for i := range out {
		id := int64(i + 1)
		t := domainTreatment.Treatment{
			ID:              id,
			Name:            fmt.Sprintf("시술 %d", id),
			HospitalID:      100 + id%3,
			HospitalName:    fmt.Sprintf("병원 %d", id%3),
			CategoryLarge:   domainTreatment.CategoryNose,
			CategoryMid:     "코끝",
			SellingPrice:    id * 10000,
			Rating:          float64(id%5) + 0.5,
			ReviewCount:     int(id) * 3,
			PopularityCount: int(id) * 7,
		}
		if id%2 == 1 {
			t.CategoryLarge = domainTreatment.CategoryEyes
			t.CategoryMid = "쌍꺼풀"
			t.Hashtags = "#자연유착, #매몰"
		}
		out[i] = t
	}
	return out
}
