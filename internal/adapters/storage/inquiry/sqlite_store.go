package inquiry

import (
	"context"

	"beautrip/internal/adapters/storage"
	domain "beautrip/internal/domain/inquiry"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new inquiry store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save inserts an inquiry.
func (s *SQLiteStore) Save(ctx context.Context, q domain.Inquiry) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO inquiry
		(id, account_id, hospital_id, hospital_name, treatment_id, channel, contact, message, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.AccountID, q.HospitalID, q.HospitalName, q.TreatmentID, q.Channel, q.Contact, q.Message,
		q.Status, storage.FormatTime(q.CreatedAt))
	return err
}

// UpdateStatus sets the delivery status.
func (s *SQLiteStore) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := s.db.ExecContext(ctx, "UPDATE inquiry SET status = ? WHERE id = ?", status, id)
	return err
}

// ListByAccount returns the account's inquiries newest first.
func (s *SQLiteStore) ListByAccount(ctx context.Context, accountID string, limit int) ([]domain.Inquiry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, account_id, hospital_id, hospital_name, treatment_id,
		channel, contact, message, status, created_at
		FROM inquiry WHERE account_id = ? ORDER BY created_at DESC LIMIT ?`, accountID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Inquiry
	for rows.Next() {
		var q domain.Inquiry
		var createdAt string
		if err := rows.Scan(&q.ID, &q.AccountID, &q.HospitalID, &q.HospitalName, &q.TreatmentID,
			&q.Channel, &q.Contact, &q.Message, &q.Status, &createdAt); err != nil {
			return nil, err
		}
		q.CreatedAt = storage.ParseTime(createdAt, "inquiry.created_at")
		list = append(list, q)
	}
	return list, rows.Err()
}
