// Package web is the HTTP adapter: a chi router, the middleware chain, handlers and
// embedded html/template views.
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"beautrip/internal/adapters/authprovider"
	"beautrip/internal/adapters/http/middleware"
	"beautrip/internal/adapters/http/perf"
	accountStore "beautrip/internal/adapters/storage/account"
	favoriteStore "beautrip/internal/adapters/storage/favorite"
	hospitalStore "beautrip/internal/adapters/storage/hospital"
	inquiryStore "beautrip/internal/adapters/storage/inquiry"
	outboxStore "beautrip/internal/adapters/storage/outbox"
	reviewStore "beautrip/internal/adapters/storage/review"
	scheduleStore "beautrip/internal/adapters/storage/schedule"
	travelStore "beautrip/internal/adapters/storage/travel"
	treatmentStore "beautrip/internal/adapters/storage/treatment"
	"beautrip/internal/application/orchestrators"
	"beautrip/internal/domain/community"
)

// Stores holds all storage dependencies.
type Stores struct {
	Accounts   accountStore.Store
	Favorites  favoriteStore.Store
	Reviews    reviewStore.Store
	Travel     travelStore.Store
	Schedule   scheduleStore.Store
	Inquiries  inquiryStore.Store
	Outbox     outboxStore.Store
	Treatments treatmentStore.Reader
	Hospitals  hospitalStore.Reader
}

// AuthProvider is the hosted social login used by /auth routes.
type AuthProvider interface {
	Enabled() bool
	AuthorizeURL(provider, redirectTo, codeChallenge string) string
	ExchangeCode(ctx context.Context, code, verifier string) (authprovider.Session, error)
}

// Options configures a Server.
type Options struct {
	Stores    Stores
	Guides    *community.Library
	Auth      AuthProvider                   // nil hides social login
	Outbox    *orchestrators.OutboxProcessor // admin retry; nil disables it
	Collector *perf.Collector

	CSRFKey       []byte
	SecureCookies bool
	RateLimit     int // requests per second per IP
	SlowRequest   time.Duration
	StaticDir     string
	PublicURL     string // base for the auth callback redirect, e.g. https://beautrip.kr
	Ping          func(ctx context.Context) error

	Now        func() time.Time
	GenerateID func() string
}

// Server owns the stores, sessions and limiter behind the HTTP handlers.
type Server struct {
	stores     Stores
	guides     *community.Library
	auth       AuthProvider
	outbox     *orchestrators.OutboxProcessor
	collector  *perf.Collector
	sessions   *middleware.SessionStore
	limiter    *middleware.RateLimiter
	opts       Options
	now        func() time.Time
	generateID func() string
}

// NewServer wires the stores and starts the rate limiter's cleanup goroutine;
// call Close to stop it.
// POST: a nil Guides library is replaced by the embedded default
func NewServer(opts Options) (*Server, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.GenerateID == nil {
		opts.GenerateID = uuid.NewString
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 10
	}
	if opts.Guides == nil {
		lib, err := community.DefaultLibrary()
		if err != nil {
			return nil, fmt.Errorf("load recovery guides: %w", err)
		}
		opts.Guides = lib
	}
	middleware.SecureCookies = opts.SecureCookies
	return &Server{
		stores:     opts.Stores,
		guides:     opts.Guides,
		auth:       opts.Auth,
		outbox:     opts.Outbox,
		collector:  opts.Collector,
		sessions:   middleware.NewSessionStore(),
		limiter:    middleware.NewRateLimiter(opts.RateLimit, time.Second, time.Minute),
		opts:       opts,
		now:        opts.Now,
		generateID: opts.GenerateID,
	}, nil
}

// Handler returns the routes wrapped in the full middleware chain:
// RateLimit -> Auth -> CSRF -> SecurityHeaders -> router.
func (s *Server) Handler() http.Handler {
	return middleware.Chain(s.Routes(),
		middleware.SecurityHeaders,
		middleware.CSRF(s.opts.CSRFKey, s.opts.SecureCookies),
		middleware.Auth(s.sessions),
		middleware.RateLimit(s.limiter),
	)
}

// Close stops background goroutines owned by the server.
func (s *Server) Close() {
	s.limiter.Close()
}

func (s *Server) socialLoginEnabled() bool {
	return s.auth != nil && s.auth.Enabled()
}
