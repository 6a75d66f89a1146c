package hospital

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"beautrip/internal/adapters/storage"
	domain "beautrip/internal/domain/hospital"
)

// Columns lists hospital columns in Scan order.
const Columns = "id, name, address, intro, departments, rating, review_count, phone, email, website, opening_hours, image_url"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new hospital store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List returns hospitals in catalog order; limit <= 0 returns all.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]domain.Hospital, error) {
	query := "SELECT " + Columns + " FROM hospital ORDER BY id"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Hospital
	for rows.Next() {
		h, err := Scan(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

// GetByID retrieves one hospital.
// POST: Returns an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Hospital, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+Columns+" FROM hospital WHERE id = ?", id)
	h, err := Scan(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Hospital{}, fmt.Errorf("hospital %d not found: %w", id, err)
	}
	return h, err
}

// Upsert writes the list in a single transaction. Departments are stored as comma separated text.
func (s *SQLiteStore) Upsert(ctx context.Context, list []domain.Hospital) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin hospital upsert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO hospital (`+Columns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, address=excluded.address, intro=excluded.intro,
			departments=excluded.departments, rating=excluded.rating, review_count=excluded.review_count,
			phone=excluded.phone, email=excluded.email, website=excluded.website,
			opening_hours=excluded.opening_hours, image_url=excluded.image_url`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, h := range list {
		if _, err := stmt.ExecContext(ctx, h.ID, h.Name, h.Address, h.Intro,
			strings.Join(h.Departments, ", "), h.Rating, h.ReviewCount, h.Phone, h.Email,
			h.Website, h.OpeningHours, h.ImageURL); err != nil {
			return fmt.Errorf("upsert hospital %d: %w", h.ID, err)
		}
	}
	return tx.Commit()
}

// Count returns the number of mirrored hospitals.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM hospital").Scan(&n)
	return n, err
}

// Scan extracts a Hospital from a row scanner function whose columns follow Columns.
func Scan(scan func(dest ...any) error) (domain.Hospital, error) {
	var h domain.Hospital
	var name, address, intro, departments, phone, email, website, hours, image sql.NullString
	var rating sql.NullFloat64
	var reviews sql.NullInt64
	err := scan(&h.ID, &name, &address, &intro, &departments, &rating, &reviews,
		&phone, &email, &website, &hours, &image)
	if err != nil {
		return domain.Hospital{}, err
	}
	h.Name = name.String
	h.Address = address.String
	h.Intro = intro.String
	h.Departments = domain.ParseDepartments(departments.String)
	h.Rating = rating.Float64
	h.ReviewCount = int(reviews.Int64)
	h.Phone = phone.String
	h.Email = email.String
	h.Website = website.String
	h.OpeningHours = hours.String
	h.ImageURL = image.String
	return h, nil
}
