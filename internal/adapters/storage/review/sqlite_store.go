package review

import (
	"context"
	"strings"

	"beautrip/internal/adapters/storage"
	domain "beautrip/internal/domain/review"
)

const (
	procedureColumns = "id, account_id, category, procedure_name, hospital_name, cost, procedure_rating, " +
		"hospital_rating, gender, age_group, surgery_date, content, images, created_at"
	hospitalColumns = "id, account_id, hospital_name, category_large, procedure_name, visit_date, " +
		"overall_satisfaction, hospital_kindness, has_translation, translation_satisfaction, content, images, created_at"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new review store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// SaveProcedure inserts a procedure review.
// PRE: r has been validated
func (s *SQLiteStore) SaveProcedure(ctx context.Context, r domain.ProcedureReview) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO procedure_review (`+procedureColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.AccountID, r.Category, r.ProcedureName, r.HospitalName, r.Cost, r.ProcedureRating,
		r.HospitalRating, r.Gender, r.AgeGroup, r.SurgeryDate, r.Content,
		storage.EncodeList(r.Images), storage.FormatTime(r.CreatedAt))
	return err
}

// SaveHospital inserts a hospital review.
// PRE: r has been validated
func (s *SQLiteStore) SaveHospital(ctx context.Context, r domain.HospitalReview) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO hospital_review (`+hospitalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.AccountID, r.HospitalName, r.CategoryLarge, r.Procedure, r.VisitDate,
		r.OverallSatisfaction, r.HospitalKindness, storage.BoolToInt(r.HasTranslation),
		r.TranslationSatisfaction, r.Content, storage.EncodeList(r.Images), storage.FormatTime(r.CreatedAt))
	return err
}

// ListProcedure returns procedure reviews newest first.
func (s *SQLiteStore) ListProcedure(ctx context.Context, filter ProcedureFilter) ([]domain.ProcedureReview, error) {
	var where []string
	var args []any
	if filter.AccountID != "" {
		where = append(where, "account_id = ?")
		args = append(args, filter.AccountID)
	}
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.ProcedureName != "" {
		where = append(where, "procedure_name = ?")
		args = append(args, filter.ProcedureName)
	}
	query, args := buildList("SELECT "+procedureColumns+" FROM procedure_review", where, args, filter.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.ProcedureReview
	for rows.Next() {
		var r domain.ProcedureReview
		var images, createdAt string
		if err := rows.Scan(&r.ID, &r.AccountID, &r.Category, &r.ProcedureName, &r.HospitalName, &r.Cost,
			&r.ProcedureRating, &r.HospitalRating, &r.Gender, &r.AgeGroup, &r.SurgeryDate, &r.Content,
			&images, &createdAt); err != nil {
			return nil, err
		}
		r.Images = storage.DecodeList(images)
		r.CreatedAt = storage.ParseTime(createdAt, "procedure_review.created_at")
		list = append(list, r)
	}
	return list, rows.Err()
}

// ListHospital returns hospital reviews newest first.
func (s *SQLiteStore) ListHospital(ctx context.Context, filter HospitalFilter) ([]domain.HospitalReview, error) {
	var where []string
	var args []any
	if filter.AccountID != "" {
		where = append(where, "account_id = ?")
		args = append(args, filter.AccountID)
	}
	if filter.HospitalName != "" {
		where = append(where, "hospital_name = ?")
		args = append(args, filter.HospitalName)
	}
	query, args := buildList("SELECT "+hospitalColumns+" FROM hospital_review", where, args, filter.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.HospitalReview
	for rows.Next() {
		var r domain.HospitalReview
		var translation int
		var images, createdAt string
		if err := rows.Scan(&r.ID, &r.AccountID, &r.HospitalName, &r.CategoryLarge, &r.Procedure, &r.VisitDate,
			&r.OverallSatisfaction, &r.HospitalKindness, &translation, &r.TranslationSatisfaction,
			&r.Content, &images, &createdAt); err != nil {
			return nil, err
		}
		r.HasTranslation = translation == 1
		r.Images = storage.DecodeList(images)
		r.CreatedAt = storage.ParseTime(createdAt, "hospital_review.created_at")
		list = append(list, r)
	}
	return list, rows.Err()
}

// Delete removes a review owned by accountID from whichever table holds it.
func (s *SQLiteStore) Delete(ctx context.Context, accountID, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM procedure_review WHERE id = ? AND account_id = ?", id, accountID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM hospital_review WHERE id = ? AND account_id = ?", id, accountID)
	return err
}

func buildList(base string, where []string, args []any, limit int) (string, []any) {
	if len(where) > 0 {
		base += " WHERE " + strings.Join(where, " AND ")
	}
	base += " ORDER BY created_at DESC, id"
	if limit > 0 {
		base += " LIMIT ?"
		args = append(args, limit)
	}
	return base, args
}
