package orchestrators

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"beautrip/internal/domain/account"
	domainFavorite "beautrip/internal/domain/favorite"
	domainHospital "beautrip/internal/domain/hospital"
	domainInquiry "beautrip/internal/domain/inquiry"
	domainOutbox "beautrip/internal/domain/outbox"
	domainSchedule "beautrip/internal/domain/schedule"
	domainTreatment "beautrip/internal/domain/treatment"
)

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// sequence returns an id generator yielding id-1, id-2, ...
func sequence() func() string {
	var n int
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// --- Mock account store ---

type mockAccountStore struct {
	accounts map[string]account.Account
	saves    int
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{accounts: make(map[string]account.Account)}
}

// GetByLoginID finds an account by login id, ignoring case.
func (m *mockAccountStore) GetByLoginID(_ context.Context, loginID string) (account.Account, error) {
	for _, a := range m.accounts {
		if strings.EqualFold(a.LoginID, loginID) {
			return a, nil
		}
	}
	return account.Account{}, fmt.Errorf("account not found: %w", sql.ErrNoRows)
}

// GetByProvider finds an account linked to a provider user.
func (m *mockAccountStore) GetByProvider(_ context.Context, provider, userID string) (account.Account, error) {
	for _, a := range m.accounts {
		if a.Provider == provider && a.ProviderUserID == userID {
			return a, nil
		}
	}
	return account.Account{}, fmt.Errorf("account not found: %w", sql.ErrNoRows)
}

// Save stores the account by id.
func (m *mockAccountStore) Save(_ context.Context, a account.Account) error {
	m.saves++
	m.accounts[a.ID] = a
	return nil
}

// Count returns the number of stored accounts.
func (m *mockAccountStore) Count(_ context.Context) (int, error) {
	return len(m.accounts), nil
}

// --- Mock outbox store ---

type mockOutboxStore struct {
	mu      sync.Mutex
	entries map[string]domainOutbox.Entry
	pruned  []string
}

func newMockOutboxStore(entries ...domainOutbox.Entry) *mockOutboxStore {
	m := &mockOutboxStore{entries: make(map[string]domainOutbox.Entry)}
	for _, e := range entries {
		m.entries[e.ID] = e
	}
	return m
}

// GetByID returns a stored entry or a wrapped sql.ErrNoRows.
func (m *mockOutboxStore) GetByID(_ context.Context, id string) (domainOutbox.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return domainOutbox.Entry{}, fmt.Errorf("outbox entry not found: %w", sql.ErrNoRows)
	}
	return e, nil
}

// Save stores the entry by id.
func (m *mockOutboxStore) Save(_ context.Context, e domainOutbox.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.ID] = e
	return nil
}

// ListPending returns pending and retrying entries in creation order.
func (m *mockOutboxStore) ListPending(_ context.Context, limit int) ([]domainOutbox.Entry, error) {
	return m.list(limit, func(e domainOutbox.Entry) bool {
		return e.Status == domainOutbox.StatusPending || e.Status == domainOutbox.StatusRetrying
	}), nil
}

// ListFailed returns entries that ran out of attempts.
func (m *mockOutboxStore) ListFailed(_ context.Context, limit int) ([]domainOutbox.Entry, error) {
	return m.list(limit, func(e domainOutbox.Entry) bool { return e.Status == domainOutbox.StatusFailed }), nil
}

func (m *mockOutboxStore) list(limit int, keep func(domainOutbox.Entry) bool) []domainOutbox.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domainOutbox.Entry
	for _, e := range m.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CountByStatus tallies entries per status.
func (m *mockOutboxStore) CountByStatus(_ context.Context) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[string]int)
	for _, e := range m.entries {
		counts[e.Status]++
	}
	return counts, nil
}

// DeleteTerminalBefore records the cutoff and removes done entries.
func (m *mockOutboxStore) DeleteTerminalBefore(_ context.Context, cutoff string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruned = append(m.pruned, cutoff)
	var n int64
	for id, e := range m.entries {
		if e.Status == domainOutbox.StatusDone || e.Status == domainOutbox.StatusAbandoned {
			delete(m.entries, id)
			n++
		}
	}
	return n, nil
}

func (m *mockOutboxStore) get(id string) domainOutbox.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[id]
}

func (m *mockOutboxStore) all() []domainOutbox.Entry {
	return m.list(1000, func(domainOutbox.Entry) bool { return true })
}

// --- Mock catalog ---

type mockCatalog struct {
	treatments map[int64]domainTreatment.Treatment
	hospitals  map[int64]domainHospital.Hospital
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{
		treatments: map[int64]domainTreatment.Treatment{
			1: {ID: 1, Name: "자연유착 쌍꺼풀", HospitalID: 10, HospitalName: "강남 라인성형외과",
				CategoryLarge: domainTreatment.CategoryEyes, SellingPrice: 1290000, Rating: 4.7, ReviewCount: 120},
		},
		hospitals: map[int64]domainHospital.Hospital{
			10: {ID: 10, Name: "강남 라인성형외과", Address: "서울 강남구", Email: "contact@line-ps.kr",
				Departments: []string{"성형외과"}, Rating: 4.5},
			11: {ID: 11, Name: "명동 글로우의원", Address: "서울 중구"},
		},
	}
}

type treatmentLookup struct{ *mockCatalog }

// GetByID returns a seeded treatment.
func (l treatmentLookup) GetByID(_ context.Context, id int64) (domainTreatment.Treatment, error) {
	t, ok := l.treatments[id]
	if !ok {
		return domainTreatment.Treatment{}, fmt.Errorf("treatment not found: %w", sql.ErrNoRows)
	}
	return t, nil
}

// Upsert replaces seeded treatments.
func (l treatmentLookup) Upsert(_ context.Context, list []domainTreatment.Treatment) error {
	for _, t := range list {
		l.treatments[t.ID] = t
	}
	return nil
}

type hospitalLookup struct{ *mockCatalog }

// GetByID returns a seeded hospital.
func (l hospitalLookup) GetByID(_ context.Context, id int64) (domainHospital.Hospital, error) {
	h, ok := l.hospitals[id]
	if !ok {
		return domainHospital.Hospital{}, fmt.Errorf("hospital not found: %w", sql.ErrNoRows)
	}
	return h, nil
}

// Upsert replaces seeded hospitals.
func (l hospitalLookup) Upsert(_ context.Context, list []domainHospital.Hospital) error {
	for _, h := range list {
		l.hospitals[h.ID] = h
	}
	return nil
}

// --- Mock favorite store ---

type mockFavoriteStore struct {
	items map[domainFavorite.Key]domainFavorite.Favorite
}

func newMockFavoriteStore() *mockFavoriteStore {
	return &mockFavoriteStore{items: make(map[domainFavorite.Key]domainFavorite.Favorite)}
}

func favKey(accountID, kind, target string) domainFavorite.Key {
	return domainFavorite.Key{Kind: kind, TargetID: accountID + "/" + target}
}

// Add stores the favorite once per account, kind and target.
func (m *mockFavoriteStore) Add(_ context.Context, f domainFavorite.Favorite) error {
	m.items[favKey(f.AccountID, f.Kind, f.TargetID)] = f
	return nil
}

// Remove deletes the favorite if present.
func (m *mockFavoriteStore) Remove(_ context.Context, accountID, kind, target string) error {
	delete(m.items, favKey(accountID, kind, target))
	return nil
}

// Exists reports whether the favorite is stored.
func (m *mockFavoriteStore) Exists(_ context.Context, accountID, kind, target string) (bool, error) {
	_, ok := m.items[favKey(accountID, kind, target)]
	return ok, nil
}

// --- Mock schedule and inquiry stores ---

type mockScheduleStore struct {
	entries map[string]domainSchedule.Entry
}

// Save stores the entry by id.
func (m *mockScheduleStore) Save(_ context.Context, e domainSchedule.Entry) error {
	if m.entries == nil {
		m.entries = make(map[string]domainSchedule.Entry)
	}
	m.entries[e.ID] = e
	return nil
}

// Delete removes the entry when it belongs to the account.
func (m *mockScheduleStore) Delete(_ context.Context, accountID, id string) error {
	if e, ok := m.entries[id]; ok && e.AccountID == accountID {
		delete(m.entries, id)
	}
	return nil
}

type mockInquiryStore struct {
	mu        sync.Mutex
	inquiries map[string]domainInquiry.Inquiry
}

// Save stores the inquiry by id.
func (m *mockInquiryStore) Save(_ context.Context, q domainInquiry.Inquiry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inquiries == nil {
		m.inquiries = make(map[string]domainInquiry.Inquiry)
	}
	m.inquiries[q.ID] = q
	return nil
}

// UpdateStatus changes a stored inquiry's status.
func (m *mockInquiryStore) UpdateStatus(_ context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.inquiries[id]
	if !ok {
		return fmt.Errorf("inquiry not found: %w", sql.ErrNoRows)
	}
	q.Status = status
	m.inquiries[id] = q
	return nil
}
