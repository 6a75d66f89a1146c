package account

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// Field limits.
const (
	MinLoginIDLength  = 4
	MaxLoginIDLength  = 64
	MinPasswordLength = 6
	MaxEmailLength    = 254
	LocalEmailDomain  = "beautrip.local"
)

// Role constants
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Provider constants. Local accounts sign in with login id and password; provider
// accounts arrive through the hosted auth callback.
const (
	ProviderLocal    = "local"
	ProviderSupabase = "supabase"
)

// ProviderLoginPrefix starts every generated provider login id; local accounts may not use it.
const ProviderLoginPrefix = "sb_"

// Preferred language codes stored on the profile.
const (
	LanguageKR = "KR"
	LanguageEN = "EN"
	LanguageJP = "JP"
	LanguageCN = "CN"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleAdmin, RoleMember}

// ValidLanguages contains all valid preferred language values.
var ValidLanguages = []string{LanguageKR, LanguageEN, LanguageJP, LanguageCN}

// Domain errors
var (
	ErrLoginIDTooShort   = errors.New("아이디는 4자 이상이어야 합니다.")
	ErrLoginIDTooLong    = errors.New("login ID cannot exceed 64 characters")
	ErrLoginIDInvalid    = errors.New("login ID may contain letters, digits, '.', '_' and '-' only")
	ErrInvalidEmail      = errors.New("email must contain '@'")
	ErrInvalidRole       = errors.New("role must be one of: admin, member")
	ErrInvalidProvider   = errors.New("provider must be one of: local, supabase")
	ErrInvalidLanguage   = errors.New("preferred language must be one of: KR, EN, JP, CN")
	ErrEmptyPassword     = errors.New("password cannot be empty")
	ErrPasswordTooShort  = errors.New("비밀번호는 6자 이상이어야 합니다.")
	ErrPasswordMismatch  = errors.New("비밀번호가 일치하지 않습니다.")
	ErrWrongPassword     = errors.New("incorrect password")
	ErrEmptyProviderUser = errors.New("provider user ID is required for provider accounts")
	ErrLoginIDReserved   = errors.New("login ID prefix \"sb_\" is reserved for social login accounts")
)

// Account is a signed-up user with their profile preferences.
type Account struct {
	ID                string
	LoginID           string
	Email             string
	PasswordHash      string
	Role              string
	Provider          string
	ProviderUserID    string
	PreferredLanguage string
	CreatedAt         time.Time
	FailedLogins      int
	LockedUntil       time.Time
}

// Validate checks if the Account has valid data.
// PRE: Account struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Account) Validate() error {
	if err := ValidateLoginID(a.LoginID); err != nil {
		return err
	}
	if a.Email != "" {
		if len(a.Email) > MaxEmailLength {
			return errors.New("email cannot exceed 254 characters")
		}
		if !strings.Contains(a.Email, "@") {
			return ErrInvalidEmail
		}
	}
	if !contains(ValidRoles, a.Role) {
		return ErrInvalidRole
	}
	switch a.Provider {
	case ProviderLocal:
		if strings.HasPrefix(strings.ToLower(a.LoginID), ProviderLoginPrefix) {
			return ErrLoginIDReserved
		}
	case ProviderSupabase:
		if strings.TrimSpace(a.ProviderUserID) == "" {
			return ErrEmptyProviderUser
		}
	default:
		return ErrInvalidProvider
	}
	if !contains(ValidLanguages, a.PreferredLanguage) {
		return ErrInvalidLanguage
	}
	return nil
}

// ValidateLoginID checks the login id chosen at signup.
func ValidateLoginID(id string) error {
	n := utf8.RuneCountInString(id)
	if n < MinLoginIDLength {
		return ErrLoginIDTooShort
	}
	if n > MaxLoginIDLength {
		return ErrLoginIDTooLong
	}
	for _, r := range id {
		ok := r == '.' || r == '_' || r == '-' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			return ErrLoginIDInvalid
		}
	}
	return nil
}

// ValidatePasswordPair checks a signup password and its confirmation.
// PRE: none
// POST: Returns nil if password is long enough and confirmation matches
func ValidatePasswordPair(password, confirm string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

// LocalEmail derives the synthetic email used for local accounts at the auth provider.
func LocalEmail(loginID string) string {
	return strings.ToLower(loginID) + "@" + LocalEmailDomain
}

// SetPassword hashes and stores a password using bcrypt with cost 12.
// PRE: plaintext is at least MinPasswordLength characters
// POST: PasswordHash is set to bcrypt hash
func (a *Account) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	if utf8.RuneCountInString(plaintext) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// PRE: PasswordHash is set
// INVARIANT: Account fields are not mutated
func (a *Account) CheckPassword(plaintext string) error {
	if a.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// IsLocked returns true if the account is currently locked out.
// INVARIANT: Account fields are not mutated
func (a *Account) IsLocked() bool {
	if a.LockedUntil.IsZero() {
		return false
	}
	return time.Now().Before(a.LockedUntil)
}

// RecordFailedLogin increments the failed login counter and locks the account after 5 failures.
// PRE: Account exists
// POST: FailedLogins incremented; LockedUntil set if >= 5 failures
func (a *Account) RecordFailedLogin() {
	a.FailedLogins++
	if a.FailedLogins >= 5 {
		a.LockedUntil = time.Now().Add(15 * time.Minute)
	}
}

// ResetFailedLogins clears the failed login counter and lock.
func (a *Account) ResetFailedLogins() {
	a.FailedLogins = 0
	a.LockedUntil = time.Time{}
}

// IsAdmin returns true if the account has admin role.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsLocal reports whether the account signs in with a password.
func (a *Account) IsLocal() bool {
	return a.Provider == ProviderLocal
}

// DisplayName is the name shown in the header.
func (a *Account) DisplayName() string {
	if a.LoginID != "" {
		return a.LoginID
	}
	if i := strings.IndexByte(a.Email, '@'); i > 0 {
		return a.Email[:i]
	}
	return "회원"
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
