package projections

import (
	"context"
	"fmt"

	"beautrip/internal/adapters/storage/review"
	"beautrip/internal/application/listutil"
	"beautrip/internal/domain/community"
	domainReview "beautrip/internal/domain/review"
)

// GetCommunityBoardQuery carries query parameters.
type GetCommunityBoardQuery struct {
	Slug  string
	Loads int
}

// GetCommunityBoardResult carries the query result.
type GetCommunityBoardResult struct {
	Category   community.Category
	Categories []community.Category
	Reviews    []domainReview.ProcedureReview
	Window     listutil.Window
}

// GetCommunityBoardDeps holds dependencies for GetCommunityBoard.
type GetCommunityBoardDeps struct {
	Reviews ReviewStore
}

// QueryGetCommunityBoard lists procedure reviews posted under a category board.
// PRE: Slug names a community category
// POST: returns ErrNotFound for unknown slugs
func QueryGetCommunityBoard(ctx context.Context, query GetCommunityBoardQuery, deps GetCommunityBoardDeps) (GetCommunityBoardResult, error) {
	cat, ok := community.CategoryBySlug(query.Slug)
	if !ok {
		return GetCommunityBoardResult{}, ErrNotFound
	}
	// one row past the window tells us whether to offer "load more"
	limit := listutil.InitialCount + listutil.Step*query.Loads + 1
	reviews, err := deps.Reviews.ListProcedure(ctx, review.ProcedureFilter{Category: cat.Name, Limit: limit})
	if err != nil {
		return GetCommunityBoardResult{}, fmt.Errorf("load board reviews: %w", err)
	}
	window := listutil.NewWindow(query.Loads, len(reviews))
	return GetCommunityBoardResult{
		Category:   cat,
		Categories: community.Categories,
		Reviews:    listutil.Apply(window, reviews),
		Window:     window,
	}, nil
}

// GetRecoveryGuidesResult carries the recovery guide index or a single group.
type GetRecoveryGuidesResult struct {
	Groups []community.Group
	Group  *community.Group
	Guides []community.Guide
}

// QueryGetRecoveryGuides returns all groups, or one group's guides when key is set.
// POST: unknown keys return ErrNotFound
func QueryGetRecoveryGuides(lib *community.Library, key string) (GetRecoveryGuidesResult, error) {
	result := GetRecoveryGuidesResult{Groups: lib.Groups}
	if key == "" {
		return result, nil
	}
	g, ok := lib.FindGroup(key)
	if !ok {
		return GetRecoveryGuidesResult{}, ErrNotFound
	}
	result.Group = &g
	result.Guides = lib.GuidesInGroup(key)
	return result, nil
}

// QueryGetRecoveryGuide returns one guide post and its group.
func QueryGetRecoveryGuide(lib *community.Library, id string) (community.Guide, community.Group, error) {
	guide, ok := lib.FindGuide(id)
	if !ok {
		return community.Guide{}, community.Group{}, ErrNotFound
	}
	group, _ := lib.FindGroup(guide.Group)
	return guide, group, nil
}
