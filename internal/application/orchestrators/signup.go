package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"beautrip/internal/domain/account"
	domainOutbox "beautrip/internal/domain/outbox"
)

// AccountStoreForSignup defines the store interface needed by Signup.
type AccountStoreForSignup interface {
	GetByLoginID(ctx context.Context, loginID string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
	Count(ctx context.Context) (int, error)
}

// OutboxEnqueuer queues an external side effect for the outbox processor.
type OutboxEnqueuer interface {
	Save(ctx context.Context, e domainOutbox.Entry) error
}

// SignupInput carries input for the signup orchestrator.
type SignupInput struct {
	LoginID         string
	Password        string
	PasswordConfirm string
	Email           string // optional; enables the welcome email
	Language        string
}

// SignupDeps holds dependencies for Signup.
type SignupDeps struct {
	AccountStore AccountStoreForSignup
	Outbox       OutboxEnqueuer // nil skips the welcome email
	GenerateID   func() string
	Now          func() time.Time
}

// ErrLoginIDExists is returned when the chosen login id is already registered.
var ErrLoginIDExists = errors.New("이미 사용 중인 아이디입니다.")

// ExecuteSignup creates a local account.
// PRE: LoginID has >= 4 allowed characters; password >= 6 characters and confirmed
// POST: Account persisted with a bcrypt hash; a welcome email is queued when Email is set
// INVARIANT: Login ids are unique ignoring case
func ExecuteSignup(ctx context.Context, input SignupInput, deps SignupDeps) (account.Account, error) {
	loginID := strings.TrimSpace(input.LoginID)
	if err := account.ValidateLoginID(loginID); err != nil {
		return account.Account{}, err
	}
	if err := account.ValidatePasswordPair(input.Password, input.PasswordConfirm); err != nil {
		return account.Account{}, err
	}

	_, err := deps.AccountStore.GetByLoginID(ctx, loginID)
	if err == nil {
		return account.Account{}, ErrLoginIDExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return account.Account{}, fmt.Errorf("check login id: %w", err)
	}

	lang := input.Language
	if lang == "" {
		lang = account.LanguageKR
	}
	acct := account.Account{
		ID:                deps.GenerateID(),
		LoginID:           loginID,
		Email:             strings.TrimSpace(input.Email),
		Role:              account.RoleMember,
		Provider:          account.ProviderLocal,
		PreferredLanguage: lang,
		CreatedAt:         deps.Now(),
	}
	if err := acct.Validate(); err != nil {
		return account.Account{}, err
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return account.Account{}, err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return account.Account{}, err
	}

	slog.Info("auth_event", "event", "account_created", "login_id", loginID, "provider", acct.Provider)

	if acct.Email != "" && deps.Outbox != nil {
		if err := enqueueWelcome(ctx, acct, deps.Outbox, deps.GenerateID, deps.Now); err != nil {
			// signup still succeeds without the welcome email
			slog.Error("outbox_enqueue_failed", "action_type", domainOutbox.ActionWelcomeEmail, "account_id", acct.ID, "error", err)
		}
	}
	return acct, nil
}

func enqueueWelcome(ctx context.Context, acct account.Account, outbox OutboxEnqueuer, id func() string, now func() time.Time) error {
	msg, err := renderWelcome(acct)
	if err != nil {
		return err
	}
	entry, err := domainOutbox.NewEntry(id(), domainOutbox.ActionWelcomeEmail, msg, now())
	if err != nil {
		return err
	}
	return outbox.Save(ctx, entry)
}

// ExecuteSeedAdmin creates an admin account if no accounts exist.
// PRE: Database is initialized
// POST: Admin account created if count == 0
func ExecuteSeedAdmin(ctx context.Context, deps SignupDeps, loginID, password string) error {
	count, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	acct := account.Account{
		ID:                deps.GenerateID(),
		LoginID:           loginID,
		Role:              account.RoleAdmin,
		Provider:          account.ProviderLocal,
		PreferredLanguage: account.LanguageKR,
		CreatedAt:         deps.Now(),
	}
	if err := acct.Validate(); err != nil {
		return err
	}
	if err := acct.SetPassword(password); err != nil {
		return err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}
	slog.Info("auth_event", "event", "admin_seeded", "login_id", loginID)
	return nil
}
