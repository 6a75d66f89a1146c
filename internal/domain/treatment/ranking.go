package treatment

import (
	"math"
	"sort"
)

// Weights scales the three score components.
type Weights struct {
	Rating     float64
	Reviews    float64
	Popularity float64
}

// Weight presets. Review and popularity counts are log-scaled so a handful of
// heavily reviewed listings cannot bury well-rated ones.
var (
	RecommendationWeights = Weights{Rating: 2, Reviews: 1.5, Popularity: 1}
	KBeautyWeights        = Weights{Rating: 1, Reviews: 2, Popularity: 2.5}
)

// Score computes the multi-factor ranking score.
// PRE: none; negative counts are treated as zero
// POST: monotone non-decreasing in rating, review count and popularity count
func (t *Treatment) Score(w Weights) float64 {
	return t.Rating*w.Rating +
		logCount(t.ReviewCount)*w.Reviews +
		logCount(t.PopularityCount)*w.Popularity
}

// Rank returns a copy of list ordered by score, highest first.
// INVARIANT: equal scores keep their input order
func Rank(list []Treatment, w Weights) []Treatment {
	out := make([]Treatment, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score(w) > out[j].Score(w)
	})
	return out
}

// Top returns at most n items of the ranked list.
func Top(list []Treatment, w Weights, n int) []Treatment {
	ranked := Rank(list, w)
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Group is one mid-category row on the category ranking page.
type Group struct {
	Mid          string
	Description  string
	Treatments   []Treatment // ranked
	AvgRating    float64
	TotalReviews int
}

// Score orders groups: average rating plus log-scaled review volume.
func (g *Group) Score(w Weights) float64 {
	return g.AvgRating*w.Rating + logCount(g.TotalReviews)*w.Reviews
}

// GroupByMid groups treatments by mid category and ranks both groups and members.
// Treatments without a mid category land in OtherMidCategory.
// POST: every input treatment appears in exactly one group
// POST: groups ordered by Group.Score desc, ties broken by mid name
func GroupByMid(list []Treatment, w Weights) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, t := range list {
		mid := t.CategoryMid
		if mid == "" {
			mid = OtherMidCategory
		}
		i, ok := index[mid]
		if !ok {
			i = len(groups)
			index[mid] = i
			groups = append(groups, Group{Mid: mid, Description: CategoryDescription(mid)})
		}
		groups[i].Treatments = append(groups[i].Treatments, t)
	}

	for i := range groups {
		g := &groups[i]
		var ratingSum float64
		for _, t := range g.Treatments {
			ratingSum += t.Rating
			g.TotalReviews += t.ReviewCount
		}
		g.AvgRating = ratingSum / float64(len(g.Treatments))
		g.Treatments = Rank(g.Treatments, w)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		si, sj := groups[i].Score(w), groups[j].Score(w)
		if si != sj {
			return si > sj
		}
		return groups[i].Mid < groups[j].Mid
	})
	return groups
}

func logCount(n int) float64 {
	if n <= 0 {
		return 0
	}
	return math.Log10(1 + float64(n))
}
