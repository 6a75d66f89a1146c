package travel

import (
	"context"
	"database/sql"
	"errors"

	"beautrip/internal/adapters/storage"
	domain "beautrip/internal/domain/travel"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new travel period store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get returns the account's period.
// POST: no row returns a zero Period with AccountID set
func (s *SQLiteStore) Get(ctx context.Context, accountID string) (domain.Period, error) {
	var start, end, updated string
	err := s.db.QueryRowContext(ctx,
		"SELECT start_date, end_date, updated_at FROM travel_period WHERE account_id = ?", accountID).
		Scan(&start, &end, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Period{AccountID: accountID}, nil
	}
	if err != nil {
		return domain.Period{}, err
	}
	return domain.Period{
		AccountID: accountID,
		Start:     storage.ParseDate(start, "travel_period.start_date"),
		End:       storage.ParseDate(end, "travel_period.end_date"),
		UpdatedAt: storage.ParseTime(updated, "travel_period.updated_at"),
	}, nil
}

// Save replaces the account's period.
// PRE: p has been validated
func (s *SQLiteStore) Save(ctx context.Context, p domain.Period) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO travel_period (account_id, start_date, end_date, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(account_id) DO UPDATE SET
			start_date=excluded.start_date, end_date=excluded.end_date, updated_at=excluded.updated_at`,
		p.AccountID, p.Start.Format(storage.DateLayout), p.End.Format(storage.DateLayout), storage.FormatTime(p.UpdatedAt))
	return err
}

// Delete clears the account's period.
func (s *SQLiteStore) Delete(ctx context.Context, accountID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM travel_period WHERE account_id = ?", accountID)
	return err
}
