package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"beautrip/internal/adapters/http/middleware"
	domainAccount "beautrip/internal/domain/account"
)

// Routes builds the chi router. Session, CSRF and rate limiting are applied
// around it by Handler.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Timing(s.collector, s.opts.SlowRequest))

	r.NotFound(s.notFound)

	if s.opts.StaticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(s.opts.StaticDir))))
	}
	r.Get("/healthz", s.handleHealth)

	r.Get("/", s.handleHome)
	r.Get("/treatments", s.handleTreatments)
	r.Get("/treatments/{id}", s.handleTreatmentDetail)
	r.Get("/hospitals", s.handleHospitals)
	r.Get("/hospitals/{id}", s.handleHospitalDetail)
	r.Get("/ranking/category", s.handleCategoryRanking)
	r.Get("/ranking/kbeauty", s.handleKBeautyRanking)
	r.Get("/api/suggestions", s.handleSuggestions)

	r.Get("/community", s.handleCommunityIndex)
	r.Get("/community/{slug}", s.handleCommunityBoard)
	r.Get("/guides", s.handleGuides)
	r.Get("/guides/{id}", s.handleGuide)

	r.Get("/signup", s.handleSignupForm)
	r.Post("/signup", s.handleSignup)
	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)
	r.Get("/auth/callback", s.handleAuthCallback)
	r.Get("/auth/{provider}", s.handleAuthStart)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/favorites", s.handleFavorites)
		r.Post("/favorites/toggle", s.handleToggleFavorite)
		r.Get("/mypage", s.handleMyPage)
		r.Post("/mypage/language", s.handleSetLanguage)
		r.Post("/travel", s.handleSetTravel)
		r.Post("/travel/clear", s.handleClearTravel)
		r.Post("/schedule", s.handleAddSchedule)
		r.Post("/schedule/{id}/delete", s.handleRemoveSchedule)
		r.Get("/reviews/new", s.handleReviewForm)
		r.Post("/reviews/procedure", s.handleSubmitProcedureReview)
		r.Post("/reviews/hospital", s.handleSubmitHospitalReview)
		r.Post("/reviews/{id}/delete", s.handleDeleteReview)
		r.Get("/hospitals/{id}/inquiry", s.handleInquiryForm)
		r.Post("/hospitals/{id}/inquiry", s.handleSendInquiry)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireRole(domainAccount.RoleAdmin))
		r.Get("/outbox", s.handleAdminOutbox)
		r.Post("/outbox/{id}/retry", s.handleAdminOutboxRetry)
		r.Post("/outbox/{id}/abandon", s.handleAdminOutboxAbandon)
		r.Get("/perf", s.handleAdminPerf)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.opts.Ping != nil {
		if err := s.opts.Ping(r.Context()); err != nil {
			internalError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
