package projections

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"beautrip/internal/adapters/storage/review"
	domainFavorite "beautrip/internal/domain/favorite"
	domainInquiry "beautrip/internal/domain/inquiry"
	domainReview "beautrip/internal/domain/review"
	domainSchedule "beautrip/internal/domain/schedule"
	domainTravel "beautrip/internal/domain/travel"
)

// MyPageListLimit bounds the review and inquiry lists on the my page.
const MyPageListLimit = 10

// GetMyPageQuery carries query parameters.
type GetMyPageQuery struct {
	AccountID string
	Year      int
	Month     time.Month
	Today     time.Time
}

// ScheduledDay is a calendar cell with the entries planned on it.
type ScheduledDay struct {
	*domainSchedule.Day
	Entries  []domainSchedule.Entry
	InPeriod bool
}

// GetMyPageResult carries the query result.
type GetMyPageResult struct {
	Travel           domainTravel.Period
	Month            domainSchedule.Month
	Weeks            [][]*ScheduledDay // nil cells are blanks
	Entries          []domainSchedule.Entry
	ProcedureCount   int
	ClinicCount      int
	ProcedureReviews []domainReview.ProcedureReview
	HospitalReviews  []domainReview.HospitalReview
	Inquiries        []domainInquiry.Inquiry
}

// GetMyPageDeps holds dependencies for GetMyPage.
type GetMyPageDeps struct {
	Favorites FavoriteStore
	Travel    TravelStore
	Schedule  ScheduleStore
	Reviews   ReviewStore
	Inquiries InquiryStore
}

// QueryGetMyPage assembles the account dashboard: travel period, a schedule month and
// the account's favorites, reviews and inquiries. Independent loads run concurrently.
// PRE: AccountID is non-empty; 1 <= Month <= 12
// POST: every entry dated inside the month appears on exactly one grid cell
func QueryGetMyPage(ctx context.Context, query GetMyPageQuery, deps GetMyPageDeps) (GetMyPageResult, error) {
	month := domainSchedule.MonthGrid(query.Year, query.Month, query.Today)
	first := time.Date(query.Year, query.Month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	var result GetMyPageResult
	var favorites []domainFavorite.Favorite
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		result.Travel, err = deps.Travel.Get(gctx, query.AccountID)
		return wrap("load travel period", err)
	})
	g.Go(func() (err error) {
		result.Entries, err = deps.Schedule.ListByAccount(gctx, query.AccountID, first, last)
		return wrap("load schedule", err)
	})
	g.Go(func() (err error) {
		favorites, err = deps.Favorites.ListByAccount(gctx, query.AccountID, "")
		return wrap("load favorites", err)
	})
	g.Go(func() (err error) {
		result.ProcedureReviews, err = deps.Reviews.ListProcedure(gctx,
			review.ProcedureFilter{AccountID: query.AccountID, Limit: MyPageListLimit})
		return wrap("load procedure reviews", err)
	})
	g.Go(func() (err error) {
		result.HospitalReviews, err = deps.Reviews.ListHospital(gctx,
			review.HospitalFilter{AccountID: query.AccountID, Limit: MyPageListLimit})
		return wrap("load hospital reviews", err)
	})
	g.Go(func() (err error) {
		result.Inquiries, err = deps.Inquiries.ListByAccount(gctx, query.AccountID, MyPageListLimit)
		return wrap("load inquiries", err)
	})
	if err := g.Wait(); err != nil {
		return GetMyPageResult{}, err
	}

	for _, f := range favorites {
		if f.Kind == domainFavorite.KindClinic {
			result.ClinicCount++
		} else {
			result.ProcedureCount++
		}
	}
	result.Month = month
	result.Weeks = scheduleWeeks(month, result.Entries, result.Travel)
	return result, nil
}

func scheduleWeeks(month domainSchedule.Month, entries []domainSchedule.Entry, period domainTravel.Period) [][]*ScheduledDay {
	byDate := make(map[string][]domainSchedule.Entry)
	for _, e := range entries {
		byDate[e.DateKey()] = append(byDate[e.DateKey()], e)
	}
	var weeks [][]*ScheduledDay
	for _, week := range month.Weeks() {
		row := make([]*ScheduledDay, len(week))
		for i, d := range week {
			if d == nil {
				continue
			}
			row[i] = &ScheduledDay{Day: d, Entries: byDate[d.Key()], InPeriod: period.Contains(d.Date)}
		}
		weeks = append(weeks, row)
	}
	return weeks
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}
