package web

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"beautrip/internal/adapters/http/middleware"
	"beautrip/internal/application/orchestrators"
	"beautrip/internal/application/projections"
	domainAccount "beautrip/internal/domain/account"
	domainFavorite "beautrip/internal/domain/favorite"
	domainInquiry "beautrip/internal/domain/inquiry"
	domainSchedule "beautrip/internal/domain/schedule"
)

// handleFavorites handles GET /favorites
// Query: kind (procedure | clinic)
func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetFavorites(r.Context(),
		projections.GetFavoritesQuery{AccountID: middleware.AccountID(r.Context()), Kind: r.URL.Query().Get("kind")},
		projections.GetFavoritesDeps{Favorites: s.stores.Favorites})
	if err != nil {
		s.loadError(w, r, err)
		return
	}
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, result)
		return
	}
	s.renderPage(w, r, "favorites.html", map[string]any{
		"Title":         "찜 목록",
		"Result":        &result,
		"KindProcedure": domainFavorite.KindProcedure,
		"KindClinic":    domainFavorite.KindClinic,
	})
}

type toggleFavoriteRequest struct {
	Kind string `json:"kind"`
	ID   int64  `json:"id"`
}

// handleToggleFavorite handles POST /favorites/toggle
// Accepts a form (kind, id, next) or JSON {"kind", "id"}.
func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req toggleFavoriteRequest
	if isJSONBody(r) {
		if err := strictDecode(r, &req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		req.Kind = r.FormValue("kind")
		req.ID, _ = strconv.ParseInt(r.FormValue("id"), 10, 64)
	}

	result, err := orchestrators.ExecuteToggleFavorite(r.Context(),
		orchestrators.ToggleFavoriteInput{AccountID: middleware.AccountID(r.Context()), Kind: req.Kind, ID: req.ID},
		orchestrators.ToggleFavoriteDeps{
			Favorites:  s.stores.Favorites,
			Treatments: s.stores.Treatments,
			Hospitals:  s.stores.Hospitals,
			GenerateID: s.generateID,
			Now:        s.now,
		})
	if err != nil {
		commandError(w, r, err, func(msg string) {
			http.Error(w, msg, http.StatusBadRequest)
		})
		return
	}
	if isJSONBody(r) || !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, result)
		return
	}
	redirectBack(w, r, "/favorites")
}

// monthParam parses ?month=YYYY-MM, falling back to today's month.
func monthParam(raw string, today time.Time) (int, time.Month) {
	if raw != "" {
		if t, err := time.Parse("2006-01", raw); err == nil {
			return t.Year(), t.Month()
		}
	}
	return today.Year(), today.Month()
}

// calendarView is the add-to-schedule month grid with navigation links.
type calendarView struct {
	domainSchedule.Month
	PrevMonth string
	NextMonth string
	Labels    []string
}

func scheduleCalendar(raw string, today time.Time) calendarView {
	year, month := monthParam(raw, today)
	grid := domainSchedule.MonthGrid(year, month, today)
	py, pm := grid.Prev()
	ny, nm := grid.Next()
	return calendarView{
		Month:     grid,
		PrevMonth: monthKey(py, pm),
		NextMonth: monthKey(ny, nm),
		Labels:    domainSchedule.WeekdayLabels,
	}
}

func monthKey(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// handleMyPage handles GET /mypage
// Query: month (YYYY-MM)
func (s *Server) handleMyPage(w http.ResponseWriter, r *http.Request) {
	today := s.now()
	year, month := monthParam(r.URL.Query().Get("month"), today)
	result, err := projections.QueryGetMyPage(r.Context(),
		projections.GetMyPageQuery{
			AccountID: middleware.AccountID(r.Context()),
			Year:      year,
			Month:     month,
			Today:     today,
		},
		projections.GetMyPageDeps{
			Favorites: s.stores.Favorites,
			Travel:    s.stores.Travel,
			Schedule:  s.stores.Schedule,
			Reviews:   s.stores.Reviews,
			Inquiries: s.stores.Inquiries,
		})
	if err != nil {
		s.loadError(w, r, err)
		return
	}
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, result)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())
	py, pm := result.Month.Prev()
	ny, nm := result.Month.Next()
	s.renderPage(w, r, "mypage.html", map[string]any{
		"Title":     "마이페이지",
		"Result":    &result,
		"Session":   sess,
		"PrevMonth": monthKey(py, pm),
		"NextMonth": monthKey(ny, nm),
		"Labels":    domainSchedule.WeekdayLabels,
		"Languages": domainAccount.ValidLanguages,
		"Error":     r.URL.Query().Get("error"),
	})
}

// myPageError sends form posts from the my page back with a message.
func myPageError(w http.ResponseWriter, r *http.Request) func(msg string) {
	return func(msg string) {
		http.Redirect(w, r, "/mypage?error="+urlEscape(msg), http.StatusSeeOther)
	}
}

// handleSetLanguage handles POST /mypage/language
func (s *Server) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	lang := strings.ToUpper(r.FormValue("language"))
	if !slices.Contains(domainAccount.ValidLanguages, lang) {
		http.Error(w, "Invalid language", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)
	acct, err := s.stores.Accounts.GetByID(ctx, sess.AccountID)
	if err != nil {
		internalError(w, r, err)
		return
	}
	acct.PreferredLanguage = lang
	if err := s.stores.Accounts.Save(ctx, acct); err != nil {
		internalError(w, r, err)
		return
	}
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		sess.Language = lang
		s.sessions.Update(cookie.Value, sess)
	}
	redirectBack(w, r, "/mypage")
}

// handleSetTravel handles POST /travel
// Form: start, end (YYYY-MM-DD)
func (s *Server) handleSetTravel(w http.ResponseWriter, r *http.Request) {
	input := orchestrators.SetTravelPeriodInput{AccountID: middleware.AccountID(r.Context())}
	if isJSONBody(r) {
		var body struct {
			Start string `json:"start"`
			End   string `json:"end"`
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input.Start, input.End = body.Start, body.End
	} else {
		input.Start, input.End = r.FormValue("start"), r.FormValue("end")
	}

	period, err := orchestrators.ExecuteSetTravelPeriod(r.Context(), input,
		orchestrators.TravelDeps{Travel: s.stores.Travel, Now: s.now})
	if err != nil {
		commandError(w, r, err, myPageError(w, r))
		return
	}
	if isJSONBody(r) {
		writeJSON(w, http.StatusOK, map[string]any{"display": period.DisplayText(), "nights": period.Nights()})
		return
	}
	redirectBack(w, r, "/mypage")
}

// handleClearTravel handles POST /travel/clear
func (s *Server) handleClearTravel(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteClearTravelPeriod(r.Context(), middleware.AccountID(r.Context()),
		orchestrators.TravelDeps{Travel: s.stores.Travel, Now: s.now})
	if err != nil {
		internalError(w, r, err)
		return
	}
	redirectBack(w, r, "/mypage")
}

func (s *Server) scheduleDeps() orchestrators.ScheduleDeps {
	return orchestrators.ScheduleDeps{
		Schedule:   s.stores.Schedule,
		Treatments: s.stores.Treatments,
		GenerateID: s.generateID,
		Now:        s.now,
	}
}

// handleAddSchedule handles POST /schedule
// Form: treatment_id, date (YYYY-MM-DD), note
func (s *Server) handleAddSchedule(w http.ResponseWriter, r *http.Request) {
	treatmentID, _ := strconv.ParseInt(r.FormValue("treatment_id"), 10, 64)
	entry, err := orchestrators.ExecuteAddScheduleEntry(r.Context(), orchestrators.AddScheduleEntryInput{
		AccountID:   middleware.AccountID(r.Context()),
		TreatmentID: treatmentID,
		Date:        r.FormValue("date"),
		Note:        r.FormValue("note"),
	}, s.scheduleDeps())
	if err != nil {
		commandError(w, r, err, func(msg string) {
			target := "/treatments/" + strconv.FormatInt(treatmentID, 10) + "?error=" + urlEscape(msg)
			http.Redirect(w, r, target, http.StatusSeeOther)
		})
		return
	}
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusCreated, map[string]string{"id": entry.ID, "date": entry.DateKey()})
		return
	}
	http.Redirect(w, r, "/mypage?month="+entry.Date.Format("2006-01"), http.StatusSeeOther)
}

// handleRemoveSchedule handles POST /schedule/{id}/delete
func (s *Server) handleRemoveSchedule(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteRemoveScheduleEntry(r.Context(),
		middleware.AccountID(r.Context()), chi.URLParam(r, "id"), s.scheduleDeps())
	if err != nil {
		internalError(w, r, err)
		return
	}
	redirectBack(w, r, "/mypage")
}

// handleInquiryForm handles GET /hospitals/{id}/inquiry
func (s *Server) handleInquiryForm(w http.ResponseWriter, r *http.Request) {
	s.renderInquiryForm(w, r, http.StatusOK, "", nil)
}

func (s *Server) renderInquiryForm(w http.ResponseWriter, r *http.Request, status int, errMsg string, form map[string]string) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}
	hosp, err := s.stores.Hospitals.GetByID(r.Context(), id)
	if err != nil {
		if isNoRows(err) {
			s.notFound(w, r)
			return
		}
		s.loadError(w, r, err)
		return
	}
	s.renderTemplate(w, r, status, "inquiry.html", map[string]any{
		"Title":       hosp.DisplayName() + " 상담 문의",
		"Hospital":    &hosp,
		"TreatmentID": r.FormValue("treatment_id"),
		"Channels":    domainInquiry.ValidChannels,
		"Error":       errMsg,
		"Form":        form,
	})
}

// handleSendInquiry handles POST /hospitals/{id}/inquiry
// Form: treatment_id, channel, contact, message
func (s *Server) handleSendInquiry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}
	treatmentID, _ := strconv.ParseInt(r.FormValue("treatment_id"), 10, 64)
	_, err := orchestrators.ExecuteSendInquiry(r.Context(), orchestrators.SendInquiryInput{
		AccountID:   middleware.AccountID(r.Context()),
		HospitalID:  id,
		TreatmentID: treatmentID,
		Channel:     r.FormValue("channel"),
		Contact:     r.FormValue("contact"),
		Message:     r.FormValue("message"),
	}, orchestrators.SendInquiryDeps{
		Hospitals:  s.stores.Hospitals,
		Treatments: s.stores.Treatments,
		Inquiries:  s.stores.Inquiries,
		Outbox:     s.stores.Outbox,
		GenerateID: s.generateID,
		Now:        s.now,
	})
	if err != nil {
		commandError(w, r, err, func(msg string) {
			s.renderInquiryForm(w, r, http.StatusUnprocessableEntity, msg, map[string]string{
				"channel": r.FormValue("channel"),
				"contact": r.FormValue("contact"),
				"message": r.FormValue("message"),
			})
		})
		return
	}
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusAccepted, map[string]string{"status": domainInquiry.StatusQueued})
		return
	}
	http.Redirect(w, r, "/mypage", http.StatusSeeOther)
}
