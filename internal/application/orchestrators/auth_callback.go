package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"beautrip/internal/adapters/authprovider"
	"beautrip/internal/domain/account"
)

// CodeExchanger trades an authorization code for a verified provider session.
type CodeExchanger interface {
	ExchangeCode(ctx context.Context, code, verifier string) (authprovider.Session, error)
}

// AccountStoreForAuthCallback defines the store interface needed by AuthCallback.
type AccountStoreForAuthCallback interface {
	GetByProvider(ctx context.Context, provider, providerUserID string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// AuthCallbackInput carries the query parameters of the provider redirect.
type AuthCallbackInput struct {
	Code     string
	Verifier string // PKCE verifier stored when the flow started
	Language string
}

// AuthCallbackDeps holds dependencies for AuthCallback.
type AuthCallbackDeps struct {
	Provider     CodeExchanger
	AccountStore AccountStoreForAuthCallback
	GenerateID   func() string
	Now          func() time.Time
}

// ErrMissingCode is returned when the provider redirect carries no code.
var ErrMissingCode = errors.New("authorization code is missing")

// ExecuteAuthCallback completes a hosted sign-in and returns the linked local account,
// creating it on first sign-in.
// PRE: Code and Verifier come from the same authorization flow
// POST: Exactly one account is linked to the provider user id
func ExecuteAuthCallback(ctx context.Context, input AuthCallbackInput, deps AuthCallbackDeps) (account.Account, error) {
	if input.Code == "" {
		return account.Account{}, ErrMissingCode
	}
	session, err := deps.Provider.ExchangeCode(ctx, input.Code, input.Verifier)
	if err != nil {
		slog.Info("auth_event", "event", "callback_failed", "reason", "exchange", "error", err)
		return account.Account{}, err
	}

	acct, err := deps.AccountStore.GetByProvider(ctx, account.ProviderSupabase, session.User.ID)
	if err == nil {
		if session.User.Email != "" && acct.Email != session.User.Email {
			acct.Email = session.User.Email
			if err := deps.AccountStore.Save(ctx, acct); err != nil {
				return account.Account{}, err
			}
		}
		slog.Info("auth_event", "event", "login_success", "account_id", acct.ID, "provider", acct.Provider)
		return acct, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return account.Account{}, fmt.Errorf("find provider account: %w", err)
	}

	lang := input.Language
	if lang == "" {
		lang = account.LanguageKR
	}
	acct = account.Account{
		ID:                deps.GenerateID(),
		LoginID:           providerLoginID(session.User.ID),
		Email:             session.User.Email,
		Role:              account.RoleMember,
		Provider:          account.ProviderSupabase,
		ProviderUserID:    session.User.ID,
		PreferredLanguage: lang,
		CreatedAt:         deps.Now(),
	}
	if err := acct.Validate(); err != nil {
		return account.Account{}, err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return account.Account{}, err
	}
	slog.Info("auth_event", "event", "account_created", "account_id", acct.ID, "provider", acct.Provider)
	return acct, nil
}

// providerLoginID derives a stable login id for provider accounts, e.g. "sb_1f0c2a9b4e7d".
func providerLoginID(userID string) string {
	compact := strings.ReplaceAll(userID, "-", "")
	if len(compact) > 12 {
		compact = compact[:12]
	}
	return account.ProviderLoginPrefix + compact
}
