package authprovider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-with-enough-bytes-123456"

func signToken(t *testing.T, secret, subject string, exp time.Time) string {
	t.Helper()
	claims := Claims{
		Email: "user@example.com",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestVerifyToken(t *testing.T) {
	c := New(Config{URL: "http://auth", AnonKey: "anon", JWTSecret: testSecret}, nil)
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid", signToken(t, testSecret, "uid-1", future), false},
		{"wrong secret", signToken(t, "another-secret-another-secret-0000", "uid-1", future), true},
		{"expired", signToken(t, testSecret, "uid-1", time.Now().Add(-time.Hour)), true},
		{"no subject", signToken(t, testSecret, "", future), true},
		{"garbage", "not.a.token", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := c.VerifyToken(tt.token)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidToken) {
					t.Errorf("err = %v, want ErrInvalidToken", err)
				}
				return
			}
			if err != nil || claims.Subject != "uid-1" || claims.Email != "user@example.com" {
				t.Errorf("claims = %+v, err = %v", claims, err)
			}
		})
	}
}

func TestExchangeCode(t *testing.T) {
	token := signToken(t, testSecret, "uid-1", time.Now().Add(time.Hour))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/token" || r.URL.Query().Get("grant_type") != "pkce" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("apikey") != "anon" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["auth_code"] != "good" || body["code_verifier"] != "v" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		json.NewEncoder(w).Encode(Session{AccessToken: token, User: User{ID: "uid-1"}})
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL + "/", AnonKey: "anon", JWTSecret: testSecret}, srv.Client())

	s, err := c.ExchangeCode(context.Background(), "good", "v")
	if err != nil {
		t.Fatalf("ExchangeCode: %v", err)
	}
	if s.User.ID != "uid-1" || s.User.Email != "user@example.com" {
		t.Errorf("session user = %+v", s.User)
	}

	_, err = c.ExchangeCode(context.Background(), "bad", "v")
	if !errors.Is(err, ErrExchange) || !strings.Contains(err.Error(), "invalid_grant") {
		t.Errorf("bad code err = %v", err)
	}
}

func TestNotConfigured(t *testing.T) {
	c := New(Config{}, nil)
	if c.Enabled() {
		t.Fatal("empty config reported enabled")
	}
	if _, err := c.ExchangeCode(context.Background(), "x", "y"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v", err)
	}
}

func TestChallenge(t *testing.T) {
	// RFC 7636 appendix B
	got := Challenge("dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gXk6HDQJWk")
	if got != "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM" {
		t.Errorf("Challenge = %q", got)
	}
	v, c, err := NewVerifier()
	if err != nil || Challenge(v) != c {
		t.Errorf("NewVerifier mismatch: %q %q %v", v, c, err)
	}
}
