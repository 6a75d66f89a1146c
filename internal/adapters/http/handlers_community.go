package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"beautrip/internal/application/listutil"
	"beautrip/internal/application/projections"
	"beautrip/internal/domain/community"
)

// communitySlug maps a main category to its board slug, defaulting to the first board.
func communitySlug(category string) string {
	for _, c := range community.Categories {
		if c.Name == category {
			return c.Slug
		}
	}
	return community.Categories[0].Slug
}

// handleCommunityIndex handles GET /community
func (s *Server) handleCommunityIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "community.html", map[string]any{
		"Title":      "커뮤니티",
		"Categories": community.Categories,
		"Sections":   community.ConsultationSections,
	})
}

// handleCommunityBoard handles GET /community/{slug}
// Query: more
func (s *Server) handleCommunityBoard(w http.ResponseWriter, r *http.Request) {
	window := listutil.ParseWindowParams(r.URL.Query())
	result, err := projections.QueryGetCommunityBoard(r.Context(),
		projections.GetCommunityBoardQuery{Slug: chi.URLParam(r, "slug"), Loads: window.Loads},
		projections.GetCommunityBoardDeps{Reviews: s.stores.Reviews})
	if errors.Is(err, projections.ErrNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		s.loadError(w, r, err)
		return
	}
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, result)
		return
	}
	s.renderPage(w, r, "community_board.html", map[string]any{
		"Title":  result.Category.Name + " 후기",
		"Result": &result,
	})
}

// handleGuides handles GET /guides
// Query: group
func (s *Server) handleGuides(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetRecoveryGuides(s.guides, r.URL.Query().Get("group"))
	if errors.Is(err, projections.ErrNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		s.loadError(w, r, err)
		return
	}
	s.renderPage(w, r, "guides.html", map[string]any{
		"Title":  "회복 가이드",
		"Result": &result,
	})
}

// handleGuide handles GET /guides/{id}
func (s *Server) handleGuide(w http.ResponseWriter, r *http.Request) {
	guide, group, err := projections.QueryGetRecoveryGuide(s.guides, chi.URLParam(r, "id"))
	if errors.Is(err, projections.ErrNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		s.loadError(w, r, err)
		return
	}
	s.renderPage(w, r, "guide.html", map[string]any{
		"Title": guide.Title,
		"Guide": guide,
		"Group": group,
	})
}
