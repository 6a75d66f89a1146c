package account_test

import (
	"strings"
	"testing"
	"time"

	"beautrip/internal/domain/account"
)

// TestAccount_Validate tests validation of Account.
func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		account account.Account
		wantErr error
	}{
		{
			name:    "valid local member",
			account: account.Account{LoginID: "mina", Role: account.RoleMember, Provider: account.ProviderLocal, PreferredLanguage: account.LanguageKR},
		},
		{
			name: "valid provider admin",
			account: account.Account{LoginID: "ops-admin", Email: "ops@beautrip.kr", Role: account.RoleAdmin,
				Provider: account.ProviderSupabase, ProviderUserID: "b1c2", PreferredLanguage: account.LanguageEN},
		},
		{
			name:    "local account with provider prefix",
			account: account.Account{LoginID: "SB_1f0c2a9b4e7d", Role: account.RoleMember, Provider: account.ProviderLocal, PreferredLanguage: account.LanguageKR},
			wantErr: account.ErrLoginIDReserved,
		},
		{
			name: "provider account with provider prefix",
			account: account.Account{LoginID: "sb_1f0c2a9b4e7d", Role: account.RoleMember,
				Provider: account.ProviderSupabase, ProviderUserID: "1f0c2a9b-4e7d", PreferredLanguage: account.LanguageKR},
		},
		{
			name:    "short login id",
			account: account.Account{LoginID: "abc", Role: account.RoleMember, Provider: account.ProviderLocal, PreferredLanguage: account.LanguageKR},
			wantErr: account.ErrLoginIDTooShort,
		},
		{
			name:    "login id with space",
			account: account.Account{LoginID: "mi na", Role: account.RoleMember, Provider: account.ProviderLocal, PreferredLanguage: account.LanguageKR},
			wantErr: account.ErrLoginIDInvalid,
		},
		{
			name:    "bad email",
			account: account.Account{LoginID: "mina", Email: "mina.example", Role: account.RoleMember, Provider: account.ProviderLocal, PreferredLanguage: account.LanguageKR},
			wantErr: account.ErrInvalidEmail,
		},
		{
			name:    "unknown role",
			account: account.Account{LoginID: "mina", Role: "coach", Provider: account.ProviderLocal, PreferredLanguage: account.LanguageKR},
			wantErr: account.ErrInvalidRole,
		},
		{
			name:    "unknown provider",
			account: account.Account{LoginID: "mina", Role: account.RoleMember, Provider: "kakao", PreferredLanguage: account.LanguageKR},
			wantErr: account.ErrInvalidProvider,
		},
		{
			name:    "provider without user id",
			account: account.Account{LoginID: "mina", Role: account.RoleMember, Provider: account.ProviderSupabase, PreferredLanguage: account.LanguageKR},
			wantErr: account.ErrEmptyProviderUser,
		},
		{
			name:    "unknown language",
			account: account.Account{LoginID: "mina", Role: account.RoleMember, Provider: account.ProviderLocal, PreferredLanguage: "FR"},
			wantErr: account.ErrInvalidLanguage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.account.Validate(); err != tt.wantErr {
				t.Errorf("Account.Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestValidateLoginID tests login id bounds.
func TestValidateLoginID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr error
	}{
		{"abcd", nil},
		{"user_01.x-y", nil},
		{"abc", account.ErrLoginIDTooShort},
		{strings.Repeat("a", 65), account.ErrLoginIDTooLong},
		{"회원아이디", account.ErrLoginIDInvalid},
	}
	for _, tt := range tests {
		if err := account.ValidateLoginID(tt.id); err != tt.wantErr {
			t.Errorf("ValidateLoginID(%q) = %v, want %v", tt.id, err, tt.wantErr)
		}
	}
}

// TestValidatePasswordPair tests the signup password rules.
func TestValidatePasswordPair(t *testing.T) {
	tests := []struct {
		name     string
		password string
		confirm  string
		wantErr  error
	}{
		{"valid", "secret1", "secret1", nil},
		{"exactly 6", "123456", "123456", nil},
		{"empty", "", "", account.ErrEmptyPassword},
		{"5 chars", "12345", "12345", account.ErrPasswordTooShort},
		{"mismatch", "secret1", "secret2", account.ErrPasswordMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := account.ValidatePasswordPair(tt.password, tt.confirm); err != tt.wantErr {
				t.Errorf("ValidatePasswordPair() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestLocalEmail tests the synthetic provider email.
func TestLocalEmail(t *testing.T) {
	if got := account.LocalEmail("Mina"); got != "mina@beautrip.local" {
		t.Errorf("LocalEmail() = %q", got)
	}
}

// TestAccount_SetPassword tests the SetPassword method.
func TestAccount_SetPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid password", "secret1", false},
		{"empty password", "", true},
		{"too short", "short", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &account.Account{}
			err := a.SetPassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("SetPassword() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && (a.PasswordHash == "" || a.PasswordHash == tt.password) {
				t.Error("SetPassword() should store a hash")
			}
		})
	}
}

// TestAccount_CheckPassword tests the CheckPassword method.
func TestAccount_CheckPassword(t *testing.T) {
	a := &account.Account{}
	if err := a.SetPassword("secret1"); err != nil {
		t.Fatalf("SetPassword() failed: %v", err)
	}
	if err := a.CheckPassword("secret1"); err != nil {
		t.Errorf("CheckPassword(correct) = %v", err)
	}
	if err := a.CheckPassword("secret2"); err != account.ErrWrongPassword {
		t.Errorf("CheckPassword(wrong) = %v, want ErrWrongPassword", err)
	}
	empty := &account.Account{}
	if err := empty.CheckPassword("secret1"); err == nil {
		t.Error("CheckPassword() should fail when no hash is set")
	}
}

// TestAccount_Lockout tests failed-login lockout and reset.
func TestAccount_Lockout(t *testing.T) {
	a := &account.Account{}
	for i := 0; i < 4; i++ {
		a.RecordFailedLogin()
		if a.IsLocked() {
			t.Fatalf("account should not be locked after %d failures", i+1)
		}
	}
	a.RecordFailedLogin()
	if !a.IsLocked() {
		t.Error("account should be locked after 5 failures")
	}
	a.ResetFailedLogins()
	if a.IsLocked() || a.FailedLogins != 0 {
		t.Error("account should be unlocked after reset")
	}

	expired := &account.Account{LockedUntil: time.Now().Add(-time.Minute)}
	if expired.IsLocked() {
		t.Error("account with past LockedUntil should not be locked")
	}
}

// TestAccount_DisplayName tests header name fallbacks.
func TestAccount_DisplayName(t *testing.T) {
	tests := []struct {
		a    account.Account
		want string
	}{
		{account.Account{LoginID: "mina"}, "mina"},
		{account.Account{Email: "jo@example.com"}, "jo"},
		{account.Account{}, "회원"},
	}
	for _, tt := range tests {
		if got := tt.a.DisplayName(); got != tt.want {
			t.Errorf("DisplayName() = %q, want %q", got, tt.want)
		}
	}
}
