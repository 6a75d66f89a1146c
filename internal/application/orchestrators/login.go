package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"beautrip/internal/domain/account"
)

// AccountStoreForLogin defines the store interface needed by Login.
type AccountStoreForLogin interface {
	GetByLoginID(ctx context.Context, loginID string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	LoginID  string
	Password string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	AccountID   string
	LoginID     string
	Role        string
	DisplayName string
	Language    string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	AccountStore AccountStoreForLogin
}

var (
	ErrInvalidCredentials = errors.New("아이디 또는 비밀번호가 올바르지 않습니다.")
	ErrAccountLocked      = errors.New("로그인 시도가 너무 많습니다. 잠시 후 다시 시도해주세요.")
)

// ExecuteLogin validates credentials and returns account info for session creation.
// PRE: Valid login id and password provided
// POST: Returns account info on success, records failed login on failure
// INVARIANT: Account must not be locked; provider accounts cannot use a password
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	loginID := strings.TrimSpace(input.LoginID)
	if loginID == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	acct, err := deps.AccountStore.GetByLoginID(ctx, loginID)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "login_id", loginID, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}

	if acct.IsLocked() {
		slog.Info("auth_event", "event", "login_blocked", "login_id", loginID, "reason", "locked")
		return LoginResult{}, ErrAccountLocked
	}

	if !acct.IsLocal() {
		slog.Info("auth_event", "event", "login_failed", "login_id", loginID, "reason", "provider_account")
		return LoginResult{}, ErrInvalidCredentials
	}

	if err := acct.CheckPassword(input.Password); err != nil {
		acct.RecordFailedLogin()
		if saveErr := deps.AccountStore.Save(ctx, acct); saveErr != nil {
			slog.Error("auth_event", "event", "login_counter_save_failed", "login_id", loginID, "error", saveErr)
		}
		slog.Info("auth_event", "event", "login_failed", "login_id", loginID, "reason", "wrong_password", "failed_logins", acct.FailedLogins)
		return LoginResult{}, ErrInvalidCredentials
	}

	if acct.FailedLogins > 0 || !acct.LockedUntil.IsZero() {
		acct.ResetFailedLogins()
		if err := deps.AccountStore.Save(ctx, acct); err != nil {
			return LoginResult{}, err
		}
	}

	slog.Info("auth_event", "event", "login_success", "login_id", loginID, "role", acct.Role)

	return LoginResult{
		AccountID:   acct.ID,
		LoginID:     acct.LoginID,
		Role:        acct.Role,
		DisplayName: acct.DisplayName(),
		Language:    acct.PreferredLanguage,
	}, nil
}
