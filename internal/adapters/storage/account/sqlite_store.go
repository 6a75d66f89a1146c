package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"beautrip/internal/adapters/storage"
	domain "beautrip/internal/domain/account"
)

// ErrLoginIDTaken is returned by Save when another account already uses the login id.
var ErrLoginIDTaken = errors.New("이미 사용 중인 아이디입니다.")

const accountColumns = "id, login_id, email, password_hash, role, provider, provider_user_id, preferred_language, created_at, failed_logins, locked_until"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new AccountStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Account by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Account, error) {
	return s.getOne(ctx, "id = ?", id)
}

// GetByLoginID retrieves an Account by login id, ignoring case.
// PRE: loginID is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetByLoginID(ctx context.Context, loginID string) (domain.Account, error) {
	return s.getOne(ctx, "login_id = ? COLLATE NOCASE", loginID)
}

// GetByProvider retrieves the Account linked to a hosted auth user.
// PRE: provider and providerUserID are non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetByProvider(ctx context.Context, provider, providerUserID string) (domain.Account, error) {
	return s.getOne(ctx, "provider = ? AND provider_user_id = ?", provider, providerUserID)
}

func (s *SQLiteStore) getOne(ctx context.Context, where string, args ...any) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM account WHERE "+where, args...)
	entity, err := scanAccount(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Account{}, fmt.Errorf("account not found: %w", err)
	}
	return entity, err
}

// Save persists an Account to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update); a duplicate login id returns ErrLoginIDTaken
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Account) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO account (`+accountColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			login_id=excluded.login_id, email=excluded.email, password_hash=excluded.password_hash,
			role=excluded.role, provider=excluded.provider, provider_user_id=excluded.provider_user_id,
			preferred_language=excluded.preferred_language, failed_logins=excluded.failed_logins,
			locked_until=excluded.locked_until`,
		entity.ID,
		entity.LoginID,
		entity.Email,
		entity.PasswordHash,
		entity.Role,
		entity.Provider,
		entity.ProviderUserID,
		entity.PreferredLanguage,
		storage.FormatTime(entity.CreatedAt),
		entity.FailedLogins,
		storage.NullableTime(entity.LockedUntil),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: account.login_id") {
		return ErrLoginIDTaken
	}
	return err
}

// Delete removes an Account and, through cascades, everything it owns.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM account WHERE id = ?", id)
	return err
}

// List retrieves Accounts based on the filter, newest first.
// PRE: filter.Limit > 0
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Account, error) {
	var q strings.Builder
	var args []any
	q.WriteString("SELECT " + accountColumns + " FROM account")
	if filter.Role != "" {
		q.WriteString(" WHERE role = ?")
		args = append(args, filter.Role)
	}
	q.WriteString(" ORDER BY created_at DESC LIMIT ? OFFSET ?")
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, q.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Account
	for rows.Next() {
		entity, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the total number of accounts.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM account").Scan(&count)
	return count, err
}

// scanAccount extracts an Account from a row scanner function.
func scanAccount(scan func(dest ...any) error) (domain.Account, error) {
	var entity domain.Account
	var createdAt string
	var lockedUntil sql.NullString
	err := scan(
		&entity.ID,
		&entity.LoginID,
		&entity.Email,
		&entity.PasswordHash,
		&entity.Role,
		&entity.Provider,
		&entity.ProviderUserID,
		&entity.PreferredLanguage,
		&createdAt,
		&entity.FailedLogins,
		&lockedUntil,
	)
	if err != nil {
		return domain.Account{}, err
	}
	entity.CreatedAt = storage.ParseTime(createdAt, "account.created_at")
	entity.LockedUntil = storage.ParseNullableTime(lockedUntil, "account.locked_until")
	return entity, nil
}
