package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"beautrip/internal/adapters/authprovider"
	emailPkg "beautrip/internal/adapters/email"
	web "beautrip/internal/adapters/http"
	"beautrip/internal/adapters/http/perf"
	"beautrip/internal/adapters/storage"
	accountStore "beautrip/internal/adapters/storage/account"
	favoriteStore "beautrip/internal/adapters/storage/favorite"
	hospitalStore "beautrip/internal/adapters/storage/hospital"
	inquiryStore "beautrip/internal/adapters/storage/inquiry"
	outboxStore "beautrip/internal/adapters/storage/outbox"
	"beautrip/internal/adapters/storage/pgcatalog"
	reviewStore "beautrip/internal/adapters/storage/review"
	scheduleStore "beautrip/internal/adapters/storage/schedule"
	travelStore "beautrip/internal/adapters/storage/travel"
	treatmentStore "beautrip/internal/adapters/storage/treatment"
	"beautrip/internal/application/orchestrators"
	"beautrip/internal/config"
	domainOutbox "beautrip/internal/domain/outbox"
)

func newServeCmd(load func() (config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server and the outbox worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	collector := perf.NewCollector(cfg.PerfRingSize)
	timedDB := storage.NewTimedDB(db, collector, cfg.SlowQuery)

	accounts := accountStore.NewSQLiteStore(timedDB)
	inquiries := inquiryStore.NewSQLiteStore(timedDB)
	outbox := outboxStore.NewSQLiteStore(timedDB)
	stores := web.Stores{
		Accounts:  accounts,
		Favorites: favoriteStore.NewSQLiteStore(timedDB),
		Reviews:   reviewStore.NewSQLiteStore(timedDB),
		Travel:    travelStore.NewSQLiteStore(timedDB),
		Schedule:  scheduleStore.NewSQLiteStore(timedDB),
		Inquiries: inquiries,
		Outbox:    outbox,
	}

	if cfg.Catalog.URL != "" {
		catalog, err := pgcatalog.Open(ctx, pgcatalog.Config{
			URL:             cfg.Catalog.URL,
			MaxConns:        cfg.Catalog.MaxConns,
			MaxConnLifetime: cfg.Catalog.MaxConnLifetime,
		}, collector)
		if err != nil {
			return err
		}
		defer catalog.Close()
		stores.Treatments = catalog.Treatments()
		stores.Hospitals = catalog.Hospitals()
	} else {
		treatments := treatmentStore.NewSQLiteStore(timedDB)
		hospitals := hospitalStore.NewSQLiteStore(timedDB)
		if err := seedDemoCatalog(ctx, cfg, hospitals, treatments); err != nil {
			return err
		}
		stores.Treatments = treatments
		stores.Hospitals = hospitals
	}

	if cfg.AdminPassword != "" {
		seedDeps := orchestrators.SignupDeps{AccountStore: accounts, GenerateID: uuid.NewString, Now: time.Now}
		if err := orchestrators.ExecuteSeedAdmin(ctx, seedDeps, cfg.AdminLoginID, cfg.AdminPassword); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	}

	var sender emailPkg.Sender
	if cfg.Email.ResendAPIKey != "" {
		sender = emailPkg.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.From)
		slog.Info("email_sender_configured", "provider", "resend")
	} else {
		sender = emailPkg.NewNoopSender()
		if cfg.IsProduction() {
			slog.Warn("email_sender_disabled", "reason", "BEAUTRIP_EMAIL_RESEND_API_KEY is not set")
		}
	}
	emailExec := orchestrators.EmailExecutor{Sender: sender}
	processor := orchestrators.NewOutboxProcessor(outbox, map[string]orchestrators.ActionExecutor{
		domainOutbox.ActionWelcomeEmail: &emailExec,
		domainOutbox.ActionInquiryEmail: &orchestrators.InquiryEmailExecutor{EmailExecutor: emailExec, Inquiries: inquiries},
	})
	worker := orchestrators.StartBackgroundWorker(ctx, processor, cfg.OutboxInterval)
	defer worker.Stop()

	csrfKey, generated, err := cfg.CSRFKey()
	if err != nil {
		return err
	}
	if generated {
		slog.Warn("csrf_key_generated", "reason", "BEAUTRIP_CSRF_KEY is not set; sessions will not survive a restart")
	}

	var auth web.AuthProvider
	if cfg.Supabase.URL != "" {
		auth = authprovider.New(authprovider.Config{
			URL:       cfg.Supabase.URL,
			AnonKey:   cfg.Supabase.AnonKey,
			JWTSecret: cfg.Supabase.JWTSecret,
		}, nil)
	}

	srv, err := web.NewServer(web.Options{
		Stores:        stores,
		Auth:          auth,
		Outbox:        processor,
		Collector:     collector,
		CSRFKey:       csrfKey,
		SecureCookies: cfg.IsProduction(),
		RateLimit:     cfg.RateLimit,
		SlowRequest:   cfg.SlowRequest,
		StaticDir:     cfg.StaticDir,
		PublicURL:     cfg.Supabase.RedirectURL,
		Ping:          db.PingContext,
	})
	if err != nil {
		return err
	}
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server_starting", "version", version, "addr", cfg.Addr, "env", cfg.Env,
			"schema", storage.LatestSchemaVersion(), "pg_catalog", cfg.Catalog.URL != "")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		slog.Info("server_stopping")
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// seedDemoCatalog loads the bundled catalog into an empty local database outside production.
func seedDemoCatalog(ctx context.Context, cfg config.Config, hospitals *hospitalStore.SQLiteStore, treatments *treatmentStore.SQLiteStore) error {
	if cfg.IsProduction() {
		return nil
	}
	existing, err := hospitals.List(ctx, 1)
	if err != nil {
		return fmt.Errorf("check catalog: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	res, err := orchestrators.ExecuteSeedCatalog(ctx, orchestrators.DefaultCatalogSeed(), orchestrators.SeedCatalogDeps{
		Hospitals:  hospitals,
		Treatments: treatments,
	})
	if err != nil {
		return fmt.Errorf("seed demo catalog: %w", err)
	}
	slog.Info("catalog_seeded", "hospitals", res.Hospitals, "treatments", res.Treatments, "file", "bundled")
	return nil
}
