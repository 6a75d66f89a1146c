package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	domainOutbox "beautrip/internal/domain/outbox"
)

const (
	adminOutboxLimit = 50
	adminPerfWindow  = time.Hour
	adminPerfTopN    = 10
)

// handleAdminOutbox handles GET /admin/outbox
func (s *Server) handleAdminOutbox(w http.ResponseWriter, r *http.Request) {
	if s.stores.Outbox == nil {
		http.Error(w, "Outbox is not configured", http.StatusServiceUnavailable)
		return
	}
	ctx := r.Context()
	failed, err := s.stores.Outbox.ListFailed(ctx, adminOutboxLimit)
	if err != nil {
		s.loadError(w, r, err)
		return
	}
	pending, err := s.stores.Outbox.ListPending(ctx, adminOutboxLimit)
	if err != nil {
		s.loadError(w, r, err)
		return
	}
	counts, err := s.stores.Outbox.CountByStatus(ctx)
	if err != nil {
		s.loadError(w, r, err)
		return
	}
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, map[string]any{"failed": failed, "pending": pending, "counts": counts})
		return
	}
	s.renderPage(w, r, "admin_outbox.html", map[string]any{
		"Title":    "발송 대기열",
		"Failed":   failed,
		"Pending":  pending,
		"Counts":   counts,
		"Statuses": []string{domainOutbox.StatusPending, domainOutbox.StatusRetrying, domainOutbox.StatusFailed, domainOutbox.StatusDone, domainOutbox.StatusAbandoned},
		"CanRetry": s.outbox != nil,
	})
}

// handleAdminOutboxRetry handles POST /admin/outbox/{id}/retry
func (s *Server) handleAdminOutboxRetry(w http.ResponseWriter, r *http.Request) {
	if s.outbox == nil {
		http.Error(w, "Outbox processor is not running", http.StatusServiceUnavailable)
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.outbox.ProcessSingle(r.Context(), id); err != nil {
		if errors.Is(err, domainOutbox.ErrTerminal) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if isNoRows(err) {
			http.NotFound(w, r)
			return
		}
		// a failed delivery is recorded on the entry; the list shows the new state
		logErr(r, "outbox_retry_failed", err)
	}
	http.Redirect(w, r, "/admin/outbox", http.StatusSeeOther)
}

// handleAdminOutboxAbandon handles POST /admin/outbox/{id}/abandon
func (s *Server) handleAdminOutboxAbandon(w http.ResponseWriter, r *http.Request) {
	if s.outbox == nil {
		http.Error(w, "Outbox processor is not running", http.StatusServiceUnavailable)
		return
	}
	if err := s.outbox.AbandonEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		if isNoRows(err) {
			http.NotFound(w, r)
			return
		}
		internalError(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/outbox", http.StatusSeeOther)
}

// handleAdminPerf handles GET /admin/perf
func (s *Server) handleAdminPerf(w http.ResponseWriter, r *http.Request) {
	snap := s.collector.Snapshot(s.now().Add(-adminPerfWindow), adminPerfTopN)
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, snap)
		return
	}
	s.renderPage(w, r, "admin_perf.html", map[string]any{
		"Title":    "성능",
		"Snapshot": snap,
		"Window":   "1시간",
	})
}
