package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"beautrip/internal/adapters/http/middleware"
	"beautrip/internal/application/listutil"
	"beautrip/internal/application/projections"
	domainTreatment "beautrip/internal/domain/treatment"
)

// handleHome handles GET /
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetHome(r.Context(),
		projections.GetHomeQuery{AccountID: middleware.AccountID(r.Context())},
		projections.GetHomeDeps{
			Treatments: s.stores.Treatments,
			Favorites:  s.stores.Favorites,
			Reviews:    s.stores.Reviews,
			Travel:     s.stores.Travel,
		})
	if err != nil {
		s.loadError(w, r, err)
		return
	}
	s.renderPage(w, r, "home.html", map[string]any{
		"Title":  "BeauTrip",
		"Result": &result,
	})
}

// handleTreatments handles GET /treatments
// Query: q, category, mid, sort, more
func (s *Server) handleTreatments(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query(),
		domainTreatment.ValidSorts, domainTreatment.SortDefault, projections.TreatmentFilterKeys)
	result, err := projections.QueryGetTreatmentList(r.Context(),
		projections.GetTreatmentListQuery{AccountID: middleware.AccountID(r.Context()), Params: params},
		projections.GetTreatmentListDeps{Treatments: s.stores.Treatments, Favorites: s.stores.Favorites})
	if err != nil {
		s.loadError(w, r, err)
		return
	}
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, result)
		return
	}
	s.renderPage(w, r, "treatments.html", map[string]any{
		"Title":       "시술 둘러보기",
		"Result":      &result,
		"Sorts":       sortOptions,
		"NextQuery":   "?" + params.Query(result.Window.NextLoads()),
		"MainOptions": domainTreatment.MainCategories,
	})
}

// sortOption labels a treatment sort key.
type sortOption struct {
	Key   string
	Label string
}

var sortOptions = []sortOption{
	{domainTreatment.SortDefault, "추천순"},
	{domainTreatment.SortPriceLow, "낮은 가격순"},
	{domainTreatment.SortPriceHigh, "높은 가격순"},
	{domainTreatment.SortRating, "평점순"},
	{domainTreatment.SortReview, "리뷰 많은순"},
}

// handleTreatmentDetail handles GET /treatments/{id}
func (s *Server) handleTreatmentDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}
	result, err := projections.QueryGetTreatmentDetail(r.Context(),
		projections.GetTreatmentDetailQuery{AccountID: middleware.AccountID(r.Context()), TreatmentID: id},
		projections.GetTreatmentDetailDeps{
			Treatments: s.stores.Treatments,
			Hospitals:  s.stores.Hospitals,
			Reviews:    s.stores.Reviews,
			Favorites:  s.stores.Favorites,
		})
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
	today := s.now()
	month := r.URL.Query().Get("month")
	s.renderPage(w, r, "treatment_detail.html", map[string]any{
		"Title":    result.Treatment.DisplayName(),
		"Result":   &result,
		"Calendar": scheduleCalendar(month, today),
		"Error":    r.URL.Query().Get("error"),
	})
}

// handleHospitals handles GET /hospitals
// Query: q, department, more
func (s *Server) handleHospitals(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query(), nil, "", projections.HospitalFilterKeys)
	result, err := projections.QueryGetHospitalList(r.Context(),
		projections.GetHospitalListQuery{AccountID: middleware.AccountID(r.Context()), Params: params},
		projections.GetHospitalListDeps{Hospitals: s.stores.Hospitals, Favorites: s.stores.Favorites})
	if err != nil {
		s.loadError(w, r, err)
		return
	}
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, result)
		return
	}
	s.renderPage(w, r, "hospitals.html", map[string]any{
		"Title":     "병원 찾기",
		"Result":    &result,
		"NextQuery": "?" + params.Query(result.Window.NextLoads()),
	})
}

// handleHospitalDetail handles GET /hospitals/{id}
// Query: category (procedure tab)
func (s *Server) handleHospitalDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}
	result, err := projections.QueryGetHospitalDetail(r.Context(),
		projections.GetHospitalDetailQuery{
			AccountID:  middleware.AccountID(r.Context()),
			HospitalID: id,
			Category:   r.URL.Query().Get("category"),
		},
		projections.GetHospitalDetailDeps{
			Hospitals:  s.stores.Hospitals,
			Treatments: s.stores.Treatments,
			Reviews:    s.stores.Reviews,
			Favorites:  s.stores.Favorites,
		})
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
	s.renderPage(w, r, "hospital_detail.html", map[string]any{
		"Title":  result.Hospital.DisplayName(),
		"Result": &result,
	})
}

// handleCategoryRanking handles GET /ranking/category
// Query: category, hashtag, more
func (s *Server) handleCategoryRanking(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := projections.QueryGetCategoryRanking(r.Context(),
		projections.GetCategoryRankingQuery{
			AccountID: middleware.AccountID(r.Context()),
			Category:  strings.TrimSpace(q.Get("category")),
			Hashtag:   strings.TrimSpace(q.Get("hashtag")),
			Loads:     listutil.ParseWindowParams(q).Loads,
		},
		projections.GetCategoryRankingDeps{Treatments: s.stores.Treatments, Favorites: s.stores.Favorites})
	if err != nil {
		s.loadError(w, r, err)
		return
	}
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, result)
		return
	}
	s.renderPage(w, r, "ranking_category.html", map[string]any{
		"Title":  "카테고리 랭킹",
		"Result": &result,
	})
}

// handleKBeautyRanking handles GET /ranking/kbeauty
func (s *Server) handleKBeautyRanking(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetKBeautyRanking(r.Context(),
		projections.GetKBeautyRankingQuery{AccountID: middleware.AccountID(r.Context())},
		projections.GetKBeautyRankingDeps{Treatments: s.stores.Treatments, Favorites: s.stores.Favorites})
	if err != nil {
		s.loadError(w, r, err)
		return
	}
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, result)
		return
	}
	s.renderPage(w, r, "ranking_kbeauty.html", map[string]any{
		"Title":  "K-뷰티 랭킹",
		"Result": &result,
	})
}

// handleSuggestions handles GET /api/suggestions
// Query: category, q. Always answers JSON.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := projections.QueryGetSuggestions(r.Context(),
		projections.GetSuggestionsQuery{
			Category: strings.TrimSpace(q.Get("category")),
			Term:     strings.TrimSpace(q.Get("q")),
		},
		projections.GetSuggestionsDeps{Treatments: s.stores.Treatments})
	if err != nil {
		logErr(r, "suggestions_failed", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": LoadErrorMessage})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// pathID parses the {id} URL parameter as a positive integer.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}
