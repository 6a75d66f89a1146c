package projections

import (
	"context"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"beautrip/internal/adapters/storage/review"
	"beautrip/internal/domain/community"
	domainReview "beautrip/internal/domain/review"
	domainTravel "beautrip/internal/domain/travel"
)

// HomeReviewLimit bounds the recent reviews strip on the home page.
const HomeReviewLimit = 6

// GetHomeQuery carries query parameters.
type GetHomeQuery struct {
	AccountID string
}

// GetHomeResult carries the query result.
type GetHomeResult struct {
	Categories    []community.Category
	KBeauty       []TreatmentCard
	HotConcerns   []TreatmentCard
	RecentReviews []domainReview.ProcedureReview
	Travel        domainTravel.Period
}

// GetHomeDeps holds dependencies for GetHome.
type GetHomeDeps struct {
	Treatments TreatmentReader
	Favorites  FavoriteStore
	Reviews    ReviewStore
	Travel     TravelStore
	Rand       *rand.Rand
}

// QueryGetHome loads the home page sections concurrently.
// POST: any failing section fails the whole page
func QueryGetHome(ctx context.Context, query GetHomeQuery, deps GetHomeDeps) (GetHomeResult, error) {
	result := GetHomeResult{Categories: community.Categories}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r, err := QueryGetKBeautyRanking(gctx, GetKBeautyRankingQuery{AccountID: query.AccountID},
			GetKBeautyRankingDeps{Treatments: deps.Treatments, Favorites: deps.Favorites})
		result.KBeauty = r.Treatments
		return wrap("k-beauty ranking", err)
	})
	g.Go(func() error {
		r, err := QueryGetHotConcerns(gctx, GetHotConcernsQuery{AccountID: query.AccountID},
			GetHotConcernsDeps{Treatments: deps.Treatments, Favorites: deps.Favorites, Rand: deps.Rand})
		result.HotConcerns = r.Treatments
		return wrap("hot concerns", err)
	})
	g.Go(func() (err error) {
		result.RecentReviews, err = deps.Reviews.ListProcedure(gctx, review.ProcedureFilter{Limit: HomeReviewLimit})
		return wrap("recent reviews", err)
	})
	if query.AccountID != "" {
		g.Go(func() (err error) {
			result.Travel, err = deps.Travel.Get(gctx, query.AccountID)
			return wrap("travel period", err)
		})
	}

	if err := g.Wait(); err != nil {
		return GetHomeResult{}, err
	}
	return result, nil
}
