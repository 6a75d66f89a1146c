package schedule

import (
	"context"
	"time"

	"beautrip/internal/adapters/storage"
	domain "beautrip/internal/domain/schedule"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new schedule store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists an Entry.
// PRE: e has been validated
// POST: Entry is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, e domain.Entry) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO schedule_entry
		(id, account_id, treatment_id, treatment_name, hospital_name, entry_date, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			entry_date=excluded.entry_date, note=excluded.note`,
		e.ID, e.AccountID, e.TreatmentID, e.TreatmentName, e.HospitalName,
		e.Date.Format(storage.DateLayout), e.Note, storage.FormatTime(e.CreatedAt))
	return err
}

// Delete removes an Entry.
func (s *SQLiteStore) Delete(ctx context.Context, accountID, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM schedule_entry WHERE id = ? AND account_id = ?", id, accountID)
	return err
}

// ListByAccount returns the account's entries by date.
func (s *SQLiteStore) ListByAccount(ctx context.Context, accountID string, from, to time.Time) ([]domain.Entry, error) {
	query := `SELECT id, account_id, treatment_id, treatment_name, hospital_name, entry_date, note, created_at
		FROM schedule_entry WHERE account_id = ?`
	args := []any{accountID}
	if !from.IsZero() {
		query += " AND entry_date >= ?"
		args = append(args, from.Format(storage.DateLayout))
	}
	if !to.IsZero() {
		query += " AND entry_date <= ?"
		args = append(args, to.Format(storage.DateLayout))
	}
	query += " ORDER BY entry_date, created_at"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Entry
	for rows.Next() {
		var e domain.Entry
		var date, createdAt string
		if err := rows.Scan(&e.ID, &e.AccountID, &e.TreatmentID, &e.TreatmentName, &e.HospitalName,
			&date, &e.Note, &createdAt); err != nil {
			return nil, err
		}
		e.Date = storage.ParseDate(date, "schedule_entry.entry_date")
		e.CreatedAt = storage.ParseTime(createdAt, "schedule_entry.created_at")
		list = append(list, e)
	}
	return list, rows.Err()
}
