// Package authprovider talks to the hosted auth service (Supabase GoTrue): it exchanges
// OAuth authorization codes for sessions and verifies the HS256 access tokens it issues.
package authprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Errors returned to the auth callback orchestrator.
var (
	ErrNotConfigured = errors.New("auth provider is not configured")
	ErrInvalidToken  = errors.New("invalid access token")
	ErrExchange      = errors.New("authorization code exchange failed")
)

// Config holds the project URL, public API key and JWT secret.
type Config struct {
	URL       string
	AnonKey   string
	JWTSecret string
	Timeout   time.Duration
}

// User is the provider's view of the signed-in user.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the result of a successful code exchange.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

// Claims are the access token claims we rely on.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Client is a minimal GoTrue client.
type Client struct {
	cfg  Config
	http *http.Client
	now  func() time.Time
}

// New creates a Client. A nil httpClient uses a client with cfg.Timeout.
func New(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	return &Client{cfg: cfg, http: httpClient, now: time.Now}
}

// Enabled reports whether the provider can be used.
func (c *Client) Enabled() bool {
	return c != nil && c.cfg.URL != "" && c.cfg.AnonKey != "" && c.cfg.JWTSecret != ""
}

// AuthorizeURL is where the login page sends the browser for an OAuth provider.
func (c *Client) AuthorizeURL(provider, redirectTo, codeChallenge string) string {
	return fmt.Sprintf("%s/auth/v1/authorize?provider=%s&redirect_to=%s&code_challenge=%s&code_challenge_method=s256",
		c.cfg.URL, provider, url.QueryEscape(redirectTo), codeChallenge)
}

// ExchangeCode trades an authorization code and PKCE verifier for a session, then
// verifies the returned access token.
// PRE: code and verifier are non-empty
// POST: returns a session whose User.ID matches the token subject
func (c *Client) ExchangeCode(ctx context.Context, code, verifier string) (Session, error) {
	if !c.Enabled() {
		return Session{}, ErrNotConfigured
	}
	body, _ := json.Marshal(map[string]string{"auth_code": code, "code_verifier": verifier})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.URL+"/auth/v1/token?grant_type=pkce", bytes.NewReader(body))
	if err != nil {
		return Session{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.cfg.AnonKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrExchange, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode != http.StatusOK {
		return Session{}, fmt.Errorf("%w: status %d: %s", ErrExchange, resp.StatusCode, truncate(string(raw), 200))
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return Session{}, fmt.Errorf("%w: decode session: %v", ErrExchange, err)
	}
	claims, err := c.VerifyToken(s.AccessToken)
	if err != nil {
		return Session{}, err
	}
	if claims.Subject != s.User.ID {
		return Session{}, fmt.Errorf("%w: subject %q does not match user %q", ErrInvalidToken, claims.Subject, s.User.ID)
	}
	if s.User.Email == "" {
		s.User.Email = claims.Email
	}
	return s, nil
}

// VerifyToken checks an access token's HS256 signature and expiry.
func (c *Client) VerifyToken(token string) (Claims, error) {
	if !c.Enabled() {
		return Claims{}, ErrNotConfigured
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return []byte(c.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
