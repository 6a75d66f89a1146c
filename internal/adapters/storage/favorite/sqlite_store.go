package favorite

import (
	"context"
	"database/sql"

	"beautrip/internal/adapters/storage"
	domain "beautrip/internal/domain/favorite"
)

const favoriteColumns = "id, account_id, kind, target_id, title, clinic, price, rating, review_count, address, departments, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new favorite store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Add inserts a favorite.
// PRE: f has been validated
// POST: exactly one row exists for (account, kind, target)
func (s *SQLiteStore) Add(ctx context.Context, f domain.Favorite) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO favorite (`+favoriteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(account_id, kind, target_id) DO NOTHING`,
		f.ID, f.AccountID, f.Kind, f.TargetID, f.Title, f.Clinic, f.Price, f.Rating,
		f.ReviewCount, f.Address, storage.EncodeList(f.Departments), storage.FormatTime(f.CreatedAt))
	return err
}

// Remove deletes a favorite.
func (s *SQLiteStore) Remove(ctx context.Context, accountID, kind, targetID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM favorite WHERE account_id = ? AND kind = ? AND target_id = ?",
		accountID, kind, targetID)
	return err
}

// Exists reports whether the favorite is stored.
func (s *SQLiteStore) Exists(ctx context.Context, accountID, kind, targetID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM favorite WHERE account_id = ? AND kind = ? AND target_id = ?",
		accountID, kind, targetID).Scan(&n)
	return n > 0, err
}

// ListByAccount returns favorites newest first. An empty kind returns both kinds.
func (s *SQLiteStore) ListByAccount(ctx context.Context, accountID, kind string) ([]domain.Favorite, error) {
	var rows *sql.Rows
	var err error
	if kind != "" {
		rows, err = s.db.QueryContext(ctx, "SELECT "+favoriteColumns+
			" FROM favorite WHERE account_id = ? AND kind = ? ORDER BY created_at DESC, id", accountID, kind)
	} else {
		rows, err = s.db.QueryContext(ctx, "SELECT "+favoriteColumns+
			" FROM favorite WHERE account_id = ? ORDER BY created_at DESC, id", accountID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Favorite
	for rows.Next() {
		var f domain.Favorite
		var departments, createdAt string
		if err := rows.Scan(&f.ID, &f.AccountID, &f.Kind, &f.TargetID, &f.Title, &f.Clinic, &f.Price,
			&f.Rating, &f.ReviewCount, &f.Address, &departments, &createdAt); err != nil {
			return nil, err
		}
		f.Departments = storage.DecodeList(departments)
		f.CreatedAt = storage.ParseTime(createdAt, "favorite.created_at")
		list = append(list, f)
	}
	return list, rows.Err()
}
