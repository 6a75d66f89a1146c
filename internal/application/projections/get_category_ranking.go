package projections

import (
	"context"
	"fmt"

	"beautrip/internal/adapters/storage/treatment"
	"beautrip/internal/application/listutil"
	domainTreatment "beautrip/internal/domain/treatment"
)

// HashtagLimit is the number of hashtag chips offered on the ranking page.
const HashtagLimit = 20

// Mid-category groups shown on the first render and added per "더보기".
const (
	RankingGroupsInitial = 5
	RankingGroupsStep    = 5
)

// GetCategoryRankingQuery carries query parameters.
type GetCategoryRankingQuery struct {
	AccountID string
	Category  string // empty means all categories
	Hashtag   string
	Loads     int // "더보기" clicks over the groups
}

// RankingGroup is one mid category with its ranked cards.
type RankingGroup struct {
	Mid          string
	Description  string
	AvgRating    float64
	TotalReviews int
	Treatments   []TreatmentCard
}

// GetCategoryRankingResult carries the query result.
type GetCategoryRankingResult struct {
	Categories []string
	Category   string
	Hashtag    string
	Hashtags   []string // chips for the selected category, before the hashtag filter
	Groups     []RankingGroup
	Window     listutil.Window // over groups, not treatments
	Total      int
}

// GetCategoryRankingDeps holds dependencies for GetCategoryRanking.
type GetCategoryRankingDeps struct {
	Treatments TreatmentReader
	Favorites  FavoriteStore
}

// QueryGetCategoryRanking groups the selected category by mid category and ranks it.
// PRE: none
// POST: every treatment matching category and hashtag belongs to exactly one group;
// the first min(groups, 5 + 5*Loads) groups are returned
// INVARIANT: ranking uses RecommendationWeights
func QueryGetCategoryRanking(ctx context.Context, query GetCategoryRankingQuery, deps GetCategoryRankingDeps) (GetCategoryRankingResult, error) {
	all, err := deps.Treatments.List(ctx, treatment.ListFilter{Limit: CatalogLimit})
	if err != nil {
		return GetCategoryRankingResult{}, fmt.Errorf("load treatments: %w", err)
	}
	favorites, err := favoriteSet(ctx, deps.Favorites, query.AccountID)
	if err != nil {
		return GetCategoryRankingResult{}, fmt.Errorf("load favorites: %w", err)
	}

	var inCategory []domainTreatment.Treatment
	for _, t := range all {
		if t.MatchesCategory(query.Category) {
			inCategory = append(inCategory, t)
		}
	}
	var matched []domainTreatment.Treatment
	for _, t := range inCategory {
		if t.MatchesHashtag(query.Hashtag) {
			matched = append(matched, t)
		}
	}

	groups := domainTreatment.GroupByMid(matched, domainTreatment.RecommendationWeights)
	window := listutil.NewSizedWindow(query.Loads, len(groups), RankingGroupsInitial, RankingGroupsStep)
	visible := listutil.Apply(window, groups)
	out := make([]RankingGroup, len(visible))
	for i, g := range visible {
		out[i] = RankingGroup{
			Mid:          g.Mid,
			Description:  g.Description,
			AvgRating:    g.AvgRating,
			TotalReviews: g.TotalReviews,
			Treatments:   cards(g.Treatments, favorites),
		}
	}

	return GetCategoryRankingResult{
		Categories: domainTreatment.MainCategories,
		Category:   query.Category,
		Hashtag:    query.Hashtag,
		Hashtags:   domainTreatment.CollectHashtags(inCategory, HashtagLimit),
		Groups:     out,
		Window:     window,
		Total:      len(matched),
	}, nil
}
