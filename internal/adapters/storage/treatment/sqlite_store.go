package treatment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"beautrip/internal/adapters/storage"
	domain "beautrip/internal/domain/treatment"
)

// Columns is the treatment column list shared with the hosted catalog, whose
// treatment_master table uses the same names.
const Columns = "id, name, hospital_id, hospital_name, category_large, category_mid, category_small, hashtags, " +
	"selling_price, original_price, dis_rate, rating, review_count, popularity_count, thumbnail_url, platform"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new treatment store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List returns treatments in catalog (id) order.
// PRE: filter.Limit >= 0
// POST: at most filter.Limit rows when Limit > 0
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Treatment, error) {
	query := "SELECT " + Columns + " FROM treatment"
	var args []any
	if filter.CategoryLarge != "" {
		query += " WHERE category_large = ?"
		args = append(args, filter.CategoryLarge)
	}
	query += " ORDER BY id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	return s.query(ctx, query, args...)
}

// GetByID retrieves one treatment.
// POST: Returns an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Treatment, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+Columns+" FROM treatment WHERE id = ?", id)
	t, err := Scan(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Treatment{}, fmt.Errorf("treatment %d not found: %w", id, err)
	}
	return t, err
}

// ListByHospital returns every treatment offered by one hospital.
func (s *SQLiteStore) ListByHospital(ctx context.Context, hospitalID int64) ([]domain.Treatment, error) {
	return s.query(ctx, "SELECT "+Columns+" FROM treatment WHERE hospital_id = ? ORDER BY id", hospitalID)
}

// Upsert writes the list in a single transaction.
// POST: every row is inserted or replaced by id; on error nothing is written
func (s *SQLiteStore) Upsert(ctx context.Context, list []domain.Treatment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin treatment upsert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO treatment (`+Columns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, hospital_id=excluded.hospital_id, hospital_name=excluded.hospital_name,
			category_large=excluded.category_large, category_mid=excluded.category_mid,
			category_small=excluded.category_small, hashtags=excluded.hashtags,
			selling_price=excluded.selling_price, original_price=excluded.original_price,
			dis_rate=excluded.dis_rate, rating=excluded.rating, review_count=excluded.review_count,
			popularity_count=excluded.popularity_count, thumbnail_url=excluded.thumbnail_url,
			platform=excluded.platform`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range list {
		if _, err := stmt.ExecContext(ctx, t.ID, t.Name, t.HospitalID, t.HospitalName,
			t.CategoryLarge, t.CategoryMid, t.CategorySmall, t.Hashtags,
			t.SellingPrice, t.OriginalPrice, t.DiscountRate, t.Rating, t.ReviewCount,
			t.PopularityCount, t.ThumbnailURL, t.Platform); err != nil {
			return fmt.Errorf("upsert treatment %d: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

// Count returns the number of mirrored treatments.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM treatment").Scan(&n)
	return n, err
}

func (s *SQLiteStore) query(ctx context.Context, query string, args ...any) ([]domain.Treatment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Treatment
	for rows.Next() {
		t, err := Scan(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Scan extracts a Treatment from a row scanner function whose columns follow Columns.
// Nullable catalog columns are tolerated.
func Scan(scan func(dest ...any) error) (domain.Treatment, error) {
	var t domain.Treatment
	var name, hospitalName, large, mid, small, hashtags, thumbnail, platform sql.NullString
	var hospitalID, selling, original, discount, reviews, popularity sql.NullInt64
	var rating sql.NullFloat64
	err := scan(&t.ID, &name, &hospitalID, &hospitalName, &large, &mid, &small, &hashtags,
		&selling, &original, &discount, &rating, &reviews, &popularity, &thumbnail, &platform)
	if err != nil {
		return domain.Treatment{}, err
	}
	t.Name = name.String
	t.HospitalID = hospitalID.Int64
	t.HospitalName = hospitalName.String
	t.CategoryLarge = large.String
	t.CategoryMid = mid.String
	t.CategorySmall = small.String
	t.Hashtags = hashtags.String
	t.SellingPrice = selling.Int64
	t.OriginalPrice = original.Int64
	t.DiscountRate = int(discount.Int64)
	t.Rating = rating.Float64
	t.ReviewCount = int(reviews.Int64)
	t.PopularityCount = int(popularity.Int64)
	t.ThumbnailURL = thumbnail.String
	t.Platform = platform.String
	return t, nil
}
