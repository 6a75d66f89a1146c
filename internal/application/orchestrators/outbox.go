package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"beautrip/internal/adapters/email"
	"beautrip/internal/adapters/storage"
	outboxStore "beautrip/internal/adapters/storage/outbox"
	domainInquiry "beautrip/internal/domain/inquiry"
	domain "beautrip/internal/domain/outbox"
)

// OutboxProcessor delivers queued external actions, retrying failures with backoff.
type OutboxProcessor struct {
	store     outboxStore.Store
	executors map[string]ActionExecutor
	baseDelay time.Duration
	maxDelay  time.Duration
	batchSize int
	retention time.Duration
	now       func() time.Time
}

// ActionExecutor executes a specific type of external action.
type ActionExecutor interface {
	// Execute runs the external action with the given entry.
	// Returns the external ID (e.g., provider message id) and any error.
	Execute(ctx context.Context, entry domain.Entry) (string, error)
}

// OutboxOption customises an OutboxProcessor.
type OutboxOption func(*OutboxProcessor)

// WithBackoff sets the base and maximum retry delay.
func WithBackoff(base, max time.Duration) OutboxOption {
	return func(p *OutboxProcessor) { p.baseDelay, p.maxDelay = base, max }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) OutboxOption {
	return func(p *OutboxProcessor) { p.now = now }
}

// WithRetention sets how long delivered and abandoned entries are kept.
func WithRetention(d time.Duration) OutboxOption {
	return func(p *OutboxProcessor) { p.retention = d }
}

// NewOutboxProcessor creates a new outbox processor.
func NewOutboxProcessor(store outboxStore.Store, executors map[string]ActionExecutor, opts ...OutboxOption) *OutboxProcessor {
	p := &OutboxProcessor{
		store:     store,
		executors: executors,
		baseDelay: 30 * time.Second,
		maxDelay:  1 * time.Hour,
		batchSize: 10,
		retention: 30 * 24 * time.Hour,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessPending processes pending outbox entries whose backoff has elapsed.
// PRE: Context is valid
// POST: Due entries are attempted once; failures stay retrying until attempts run out
func (p *OutboxProcessor) ProcessPending(ctx context.Context) error {
	entries, err := p.store.ListPending(ctx, p.batchSize)
	if err != nil {
		return fmt.Errorf("list pending outbox entries: %w", err)
	}

	now := p.now()
	for _, entry := range entries {
		if entry.DueAt(p.baseDelay, p.maxDelay).After(now) {
			continue
		}
		if err := p.processEntry(ctx, entry); err != nil {
			slog.Error("outbox_process_failed", "entry_id", entry.ID, "action_type", entry.ActionType, "error", err.Error())
		}
	}
	return nil
}

func (p *OutboxProcessor) processEntry(ctx context.Context, entry domain.Entry) error {
	executor, ok := p.executors[entry.ActionType]
	if !ok {
		entry.MarkAttempt(p.now())
		entry.Attempts = entry.MaxAttempts
		entry.MarkFailed(fmt.Errorf("no executor registered for action type: %s", entry.ActionType))
		return p.store.Save(ctx, entry)
	}

	entry.MarkAttempt(p.now())
	externalID, err := executor.Execute(ctx, entry)
	if err != nil {
		entry.MarkFailed(err)
		slog.Warn("outbox_action_failed", "entry_id", entry.ID, "attempt", entry.Attempts, "error", err.Error())
	} else {
		entry.MarkSuccess(externalID)
		slog.Info("outbox_action_succeeded", "entry_id", entry.ID, "action_type", entry.ActionType, "external_id", externalID)
	}
	return p.store.Save(ctx, entry)
}

// ProcessSingle manually processes a single outbox entry, ignoring backoff.
// PRE: entryID is non-empty
// POST: Entry is attempted once and its status updated
func (p *OutboxProcessor) ProcessSingle(ctx context.Context, entryID string) error {
	entry, err := p.store.GetByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("get outbox entry: %w", err)
	}
	if entry.IsTerminal() {
		return fmt.Errorf("entry %s: %w", entryID, domain.ErrTerminal)
	}
	if _, ok := p.executors[entry.ActionType]; !ok {
		return fmt.Errorf("no executor registered for action type: %s", entry.ActionType)
	}
	return p.processEntry(ctx, entry)
}

// AbandonEntry stops further attempts for an entry.
// PRE: entryID is non-empty
// POST: Entry status set to abandoned
func (p *OutboxProcessor) AbandonEntry(ctx context.Context, entryID string) error {
	entry, err := p.store.GetByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("get outbox entry: %w", err)
	}
	entry.MarkAbandoned()
	return p.store.Save(ctx, entry)
}

// Prune removes delivered and abandoned entries older than the retention window.
func (p *OutboxProcessor) Prune(ctx context.Context) (int64, error) {
	cutoff := storage.FormatTime(p.now().Add(-p.retention))
	n, err := p.store.DeleteTerminalBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune outbox: %w", err)
	}
	if n > 0 {
		slog.Info("outbox_pruned", "removed", n)
	}
	return n, nil
}

// --- Email Executor ---

// EmailExecutor sends an entry's EmailPayload through an email.Sender.
type EmailExecutor struct {
	Sender email.Sender
}

// Execute sends the email described by the entry.
// PRE: entry payload is a JSON EmailPayload
// POST: email sent via the configured sender, returns the provider message ID
// INVARIANT: outbox entry status managed by caller
func (e *EmailExecutor) Execute(ctx context.Context, entry domain.Entry) (string, error) {
	p, err := entry.DecodeEmail()
	if err != nil {
		return "", err
	}
	res, err := e.Sender.Send(ctx, email.Message{
		To:      []string{p.To},
		Subject: p.Subject,
		HTML:    p.HTML,
		Text:    p.Text,
		ReplyTo: p.ReplyTo,
		Tags:    map[string]string{"action": entry.ActionType},
	})
	if err != nil {
		return "", err
	}
	return res.MessageID, nil
}

// InquiryStatusUpdater marks an inquiry delivered.
type InquiryStatusUpdater interface {
	UpdateStatus(ctx context.Context, id, status string) error
}

// InquiryEmailExecutor sends the inquiry email, then marks the inquiry sent.
type InquiryEmailExecutor struct {
	EmailExecutor
	Inquiries InquiryStatusUpdater
}

// Execute sends the email and records delivery on the referenced inquiry.
// POST: a failed status update is logged; the email is not resent
func (e *InquiryEmailExecutor) Execute(ctx context.Context, entry domain.Entry) (string, error) {
	id, err := e.EmailExecutor.Execute(ctx, entry)
	if err != nil {
		return "", err
	}
	if p, err := entry.DecodeEmail(); err == nil && p.RefID != "" {
		if err := e.Inquiries.UpdateStatus(ctx, p.RefID, domainInquiry.StatusSent); err != nil {
			slog.Error("inquiry_status_update_failed", "inquiry_id", p.RefID, "error", err)
		}
	}
	return id, nil
}

// --- Background Worker ---

// Worker periodically drains the outbox until stopped.
type Worker struct {
	processor *OutboxProcessor
	interval  time.Duration
	stop      chan struct{}
	done      chan struct{}
	once      sync.Once
}

// StartBackgroundWorker starts a goroutine that periodically processes pending entries
// and prunes old ones.
// PRE: interval > 0
// POST: Worker runs until Stop is called or ctx is cancelled
func StartBackgroundWorker(ctx context.Context, processor *OutboxProcessor, interval time.Duration) *Worker {
	w := &Worker{
		processor: processor,
		interval:  interval,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go w.run(ctx)
	return w
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
			if err := w.processor.ProcessPending(runCtx); err != nil {
				slog.Error("outbox_background_process_failed", "error", err.Error())
			}
			if _, err := w.processor.Prune(runCtx); err != nil {
				slog.Error("outbox_background_prune_failed", "error", err.Error())
			}
			cancel()
		case <-w.stop:
			slog.Info("outbox_background_worker_stopped")
			return
		case <-ctx.Done():
			slog.Info("outbox_background_worker_stopped")
			return
		}
	}
}

// Stop signals the worker and waits for it to exit. Safe to call more than once.
func (w *Worker) Stop() {
	w.once.Do(func() { close(w.stop) })
	<-w.done
}
