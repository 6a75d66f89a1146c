package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"beautrip/internal/adapters/http/middleware"
	"beautrip/internal/application/orchestrators"
	domainReview "beautrip/internal/domain/review"
	domainTreatment "beautrip/internal/domain/treatment"
)

// Review form kinds selected by ?type=.
const (
	reviewKindProcedure = "procedure"
	reviewKindHospital  = "hospital"
)

// handleReviewForm handles GET /reviews/new
// Query: type (procedure | hospital), hospital, category
func (s *Server) handleReviewForm(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.renderReviewForm(w, r, http.StatusOK, q.Get("type"), map[string]string{
		"hospital_name": q.Get("hospital"),
		"category":      q.Get("category"),
	}, "")
}

func (s *Server) renderReviewForm(w http.ResponseWriter, r *http.Request, status int, kind string, form map[string]string, errMsg string) {
	if kind != reviewKindHospital {
		kind = reviewKindProcedure
	}
	s.renderTemplate(w, r, status, "review_form.html", map[string]any{
		"Title":      "후기 작성",
		"Kind":       kind,
		"Form":       form,
		"Error":      errMsg,
		"Categories": domainTreatment.MainCategories,
		"AgeGroups":  domainReview.ValidAgeGroups,
		"Genders":    []string{domainReview.GenderFemale, domainReview.GenderMale},
		"Ratings":    []int{5, 4, 3, 2, 1},
	})
}

func (s *Server) reviewDeps() orchestrators.SubmitReviewDeps {
	return orchestrators.SubmitReviewDeps{Reviews: s.stores.Reviews, GenerateID: s.generateID, Now: s.now}
}

// formImages collects non-empty image URLs, keeping order.
func formImages(r *http.Request) []string {
	var out []string
	for _, v := range r.Form["images"] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func formInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(r.FormValue(key)))
	return n
}

// formSnapshot keeps the submitted text fields so a rejected form can be re-rendered.
func formSnapshot(r *http.Request, keys ...string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		out[k] = r.FormValue(k)
	}
	return out
}

// handleSubmitProcedureReview handles POST /reviews/procedure
func (s *Server) handleSubmitProcedureReview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	review := domainReview.ProcedureReview{
		AccountID:       middleware.AccountID(r.Context()),
		Category:        r.FormValue("category"),
		ProcedureName:   r.FormValue("procedure_name"),
		HospitalName:    r.FormValue("hospital_name"),
		Cost:            formInt(r, "cost"),
		ProcedureRating: formInt(r, "procedure_rating"),
		HospitalRating:  formInt(r, "hospital_rating"),
		Gender:          r.FormValue("gender"),
		AgeGroup:        r.FormValue("age_group"),
		SurgeryDate:     r.FormValue("surgery_date"),
		Content:         r.FormValue("content"),
		Images:          formImages(r),
	}
	saved, err := orchestrators.ExecuteSubmitProcedureReview(r.Context(), review, s.reviewDeps())
	if err != nil {
		commandError(w, r, err, func(msg string) {
			s.renderReviewForm(w, r, http.StatusUnprocessableEntity, reviewKindProcedure,
				formSnapshot(r, "category", "procedure_name", "hospital_name", "cost", "procedure_rating",
					"hospital_rating", "gender", "age_group", "surgery_date", "content"), msg)
		})
		return
	}
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusCreated, map[string]string{"id": saved.ID})
		return
	}
	http.Redirect(w, r, "/community/"+communitySlug(saved.Category), http.StatusSeeOther)
}

// handleSubmitHospitalReview handles POST /reviews/hospital
func (s *Server) handleSubmitHospitalReview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	review := domainReview.HospitalReview{
		AccountID:               middleware.AccountID(r.Context()),
		HospitalName:            r.FormValue("hospital_name"),
		CategoryLarge:           r.FormValue("category"),
		Procedure:               r.FormValue("procedure"),
		VisitDate:               r.FormValue("visit_date"),
		OverallSatisfaction:     formInt(r, "overall"),
		HospitalKindness:        formInt(r, "kindness"),
		HasTranslation:          r.FormValue("has_translation") == "yes",
		TranslationSatisfaction: formInt(r, "translation"),
		Content:                 r.FormValue("content"),
		Images:                  formImages(r),
	}
	_, err := orchestrators.ExecuteSubmitHospitalReview(r.Context(), review, s.reviewDeps())
	if err != nil {
		commandError(w, r, err, func(msg string) {
			s.renderReviewForm(w, r, http.StatusUnprocessableEntity, reviewKindHospital,
				formSnapshot(r, "hospital_name", "category", "procedure", "visit_date", "overall",
					"kindness", "has_translation", "translation", "content"), msg)
		})
		return
	}
	if !isHTMLRequest(r) {
		w.WriteHeader(http.StatusCreated)
		return
	}
	http.Redirect(w, r, "/mypage", http.StatusSeeOther)
}

// handleDeleteReview handles POST /reviews/{id}/delete
func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteReview(r.Context(),
		middleware.AccountID(r.Context()), chi.URLParam(r, "id"), s.reviewDeps())
	if err != nil {
		internalError(w, r, err)
		return
	}
	redirectBack(w, r, "/mypage")
}
