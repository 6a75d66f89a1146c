package orchestrators

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"beautrip/internal/adapters/email"
	domainInquiry "beautrip/internal/domain/inquiry"
	domainOutbox "beautrip/internal/domain/outbox"
)

type stubExecutor struct {
	mu    sync.Mutex
	err   error
	calls int
}

// Execute counts calls and returns the configured error.
func (s *stubExecutor) Execute(_ context.Context, entry domainOutbox.Entry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "msg-" + entry.ID, nil
}

func (s *stubExecutor) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func pendingEntry(t *testing.T, id, action string) domainOutbox.Entry {
	t.Helper()
	e, err := domainOutbox.NewEntry(id, action, domainOutbox.EmailPayload{To: "a@example.com", Subject: "s", HTML: "<p>h</p>"}, fixedNow.Add(-time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	return e
}

// TestOutboxProcessor_Success verifies a due entry is delivered.
func TestOutboxProcessor_Success(t *testing.T) {
	store := newMockOutboxStore(pendingEntry(t, "e1", domainOutbox.ActionWelcomeEmail))
	exec := &stubExecutor{}
	p := NewOutboxProcessor(store, map[string]ActionExecutor{domainOutbox.ActionWelcomeEmail: exec}, WithClock(clock))

	if err := p.ProcessPending(context.Background()); err != nil {
		t.Fatal(err)
	}
	got := store.get("e1")
	if got.Status != domainOutbox.StatusDone || got.ExternalID != "msg-e1" || got.Attempts != 1 {
		t.Errorf("entry = %+v", got)
	}
}

// TestOutboxProcessor_Backoff verifies failed entries wait and then give up.
func TestOutboxProcessor_Backoff(t *testing.T) {
	store := newMockOutboxStore(pendingEntry(t, "e1", domainOutbox.ActionWelcomeEmail))
	exec := &stubExecutor{err: errors.New("provider down")}
	now := fixedNow
	p := NewOutboxProcessor(store, map[string]ActionExecutor{domainOutbox.ActionWelcomeEmail: exec},
		WithClock(func() time.Time { return now }), WithBackoff(time.Minute, 10*time.Minute))

	_ = p.ProcessPending(context.Background())
	if got := store.get("e1"); got.Status != domainOutbox.StatusRetrying || got.ErrorMessage != "provider down" {
		t.Fatalf("after first failure: %+v", got)
	}

	// 2^1 minutes have not elapsed yet
	now = now.Add(time.Minute)
	_ = p.ProcessPending(context.Background())
	if exec.count() != 1 {
		t.Fatalf("retried before backoff: %d calls", exec.count())
	}

	for i := 0; i < domainOutbox.DefaultMaxAttempts; i++ {
		now = now.Add(10 * time.Minute)
		_ = p.ProcessPending(context.Background())
	}
	got := store.get("e1")
	if got.Status != domainOutbox.StatusFailed || got.Attempts != domainOutbox.DefaultMaxAttempts {
		t.Errorf("final = %+v", got)
	}
	if exec.count() != domainOutbox.DefaultMaxAttempts {
		t.Errorf("calls = %d", exec.count())
	}
}

// TestOutboxProcessor_UnknownAction verifies entries without an executor fail immediately.
func TestOutboxProcessor_UnknownAction(t *testing.T) {
	store := newMockOutboxStore(pendingEntry(t, "e1", "sms"))
	p := NewOutboxProcessor(store, nil, WithClock(clock))
	_ = p.ProcessPending(context.Background())
	if got := store.get("e1"); got.Status != domainOutbox.StatusFailed {
		t.Errorf("entry = %+v", got)
	}
	if err := p.ProcessSingle(context.Background(), "e1"); !errors.Is(err, domainOutbox.ErrTerminal) {
		t.Errorf("ProcessSingle on failed entry err = %v", err)
	}
}

// TestOutboxProcessor_SingleAndAbandon verifies manual retry and abandon.
func TestOutboxProcessor_SingleAndAbandon(t *testing.T) {
	store := newMockOutboxStore(
		pendingEntry(t, "e1", domainOutbox.ActionWelcomeEmail),
		pendingEntry(t, "e2", domainOutbox.ActionWelcomeEmail),
	)
	exec := &stubExecutor{}
	p := NewOutboxProcessor(store, map[string]ActionExecutor{domainOutbox.ActionWelcomeEmail: exec}, WithClock(clock))

	if err := p.ProcessSingle(context.Background(), "e1"); err != nil {
		t.Fatal(err)
	}
	if err := p.AbandonEntry(context.Background(), "e2"); err != nil {
		t.Fatal(err)
	}
	if store.get("e1").Status != domainOutbox.StatusDone || store.get("e2").Status != domainOutbox.StatusAbandoned {
		t.Errorf("statuses = %s, %s", store.get("e1").Status, store.get("e2").Status)
	}
	n, err := p.Prune(context.Background())
	if err != nil || n != 2 {
		t.Errorf("Prune = %d, %v", n, err)
	}
	if err := p.ProcessSingle(context.Background(), "missing"); err == nil {
		t.Error("expected error for missing entry")
	}
}

// TestInquiryEmailExecutor verifies delivery marks the inquiry sent.
func TestInquiryEmailExecutor(t *testing.T) {
	sender := email.NewNoopSender()
	inq := &mockInquiryStore{}
	_ = inq.Save(context.Background(), domainInquiry.Inquiry{ID: "q1", Status: domainInquiry.StatusQueued})

	entry, err := domainOutbox.NewEntry("e1", domainOutbox.ActionInquiryEmail, domainOutbox.EmailPayload{
		To: "contact@line-ps.kr", Subject: "[BeauTrip] 상담 문의", HTML: "<p>hi</p>", ReplyTo: "mina@example.com", RefID: "q1",
	}, fixedNow)
	if err != nil {
		t.Fatal(err)
	}
	exec := &InquiryEmailExecutor{EmailExecutor: EmailExecutor{Sender: sender}, Inquiries: inq}
	if _, err := exec.Execute(context.Background(), entry); err != nil {
		t.Fatal(err)
	}

	sent := sender.Sent()
	if len(sent) != 1 || sent[0].To[0] != "contact@line-ps.kr" || sent[0].ReplyTo != "mina@example.com" {
		t.Errorf("sent = %+v", sent)
	}
	if sent[0].Tags["action"] != domainOutbox.ActionInquiryEmail {
		t.Errorf("tags = %v", sent[0].Tags)
	}
	if inq.inquiries["q1"].Status != domainInquiry.StatusSent {
		t.Errorf("inquiry status = %s", inq.inquiries["q1"].Status)
	}
}

// TestStartBackgroundWorker verifies the worker drains the outbox and stops cleanly.
func TestStartBackgroundWorker(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := newMockOutboxStore(pendingEntry(t, "e1", domainOutbox.ActionWelcomeEmail))
	exec := &stubExecutor{}
	p := NewOutboxProcessor(store, map[string]ActionExecutor{domainOutbox.ActionWelcomeEmail: exec})
	w := StartBackgroundWorker(context.Background(), p, 5*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for exec.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	w.Stop()
	w.Stop()

	if exec.count() == 0 {
		t.Fatal("worker never processed the entry")
	}
}

// TestStartBackgroundWorker_ContextCancel verifies cancellation also stops the worker.
func TestStartBackgroundWorker_ContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	w := StartBackgroundWorker(ctx, NewOutboxProcessor(newMockOutboxStore(), nil), time.Hour)
	cancel()
	w.Stop()
}
