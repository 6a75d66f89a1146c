// Package pgcatalog reads the treatment and hospital catalog from the hosted Postgres
// tables (treatment_master, hospital_master). It is read-only; the local SQLite mirror
// is used when no catalog URL is configured.
package pgcatalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"beautrip/internal/adapters/http/perf"
	"beautrip/internal/adapters/storage/hospital"
	"beautrip/internal/adapters/storage/treatment"
	hospitalDomain "beautrip/internal/domain/hospital"
	treatmentDomain "beautrip/internal/domain/treatment"
)

// Table names in the hosted catalog.
const (
	TreatmentTable = "treatment_master"
	HospitalTable  = "hospital_master"
)

// Config holds pool settings.
type Config struct {
	URL             string
	MaxConns        int32
	MaxConnLifetime time.Duration
}

// Catalog is a pgx pool over the hosted catalog tables.
type Catalog struct {
	pool      *pgxpool.Pool
	collector *perf.Collector
}

// Open parses cfg, connects and pings.
// PRE: cfg.URL is a postgres connection string
// POST: returns a ready Catalog or an error; the caller must Close it
func Open(ctx context.Context, cfg Config, collector *perf.Collector) (*Catalog, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect catalog: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping catalog: %w", err)
	}
	slog.Info("catalog_connected", "host", poolConfig.ConnConfig.Host, "database", poolConfig.ConnConfig.Database)
	return &Catalog{pool: pool, collector: collector}, nil
}

// Close releases the pool.
func (c *Catalog) Close() {
	c.pool.Close()
}

// Treatments returns a treatment.Reader over TreatmentTable.
func (c *Catalog) Treatments() *Treatments {
	return &Treatments{c: c}
}

// Hospitals returns a hospital.Reader over HospitalTable.
func (c *Catalog) Hospitals() *Hospitals {
	return &Hospitals{c: c}
}

// observe records a catalog load in the perf collector and logs failures.
func (c *Catalog) observe(ctx context.Context, name string, start time.Time, err error) {
	elapsed := time.Since(start)
	failed := err != nil && !errors.Is(err, sql.ErrNoRows)
	if failed {
		slog.ErrorContext(ctx, "catalog_load_failed", "load", name, "error", err)
	}
	c.collector.Record(perf.Entry{
		Kind:       perf.KindCatalogLoad,
		Name:       name,
		Failed:     failed,
		DurationMs: float64(elapsed.Microseconds()) / 1000.0,
		Timestamp:  start,
	})
}

// Treatments reads TreatmentTable.
type Treatments struct {
	c *Catalog
}

var _ treatment.Reader = (*Treatments)(nil)

// List returns treatments in id order, optionally restricted to one large category.
func (t *Treatments) List(ctx context.Context, filter treatment.ListFilter) (list []treatmentDomain.Treatment, err error) {
	start := time.Now()
	defer func() { t.c.observe(ctx, "treatments", start, err) }()
	query := "SELECT " + treatment.Columns + " FROM " + TreatmentTable
	args := pgx.NamedArgs{}
	if filter.CategoryLarge != "" {
		query += " WHERE category_large = @large"
		args["large"] = filter.CategoryLarge
	}
	query += " ORDER BY id"
	if filter.Limit > 0 {
		query += " LIMIT @limit"
		args["limit"] = filter.Limit
	}
	rows, err := t.c.pool.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	list, err = collect(rows, treatment.Scan)
	return list, err
}

// GetByID returns one treatment; a missing row wraps sql.ErrNoRows like the SQLite store.
func (t *Treatments) GetByID(ctx context.Context, id int64) (tr treatmentDomain.Treatment, err error) {
	start := time.Now()
	defer func() { t.c.observe(ctx, "treatment", start, err) }()
	row := t.c.pool.QueryRow(ctx, "SELECT "+treatment.Columns+" FROM "+TreatmentTable+" WHERE id = $1", id)
	tr, err = treatment.Scan(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("treatment %d not found: %w", id, sql.ErrNoRows)
	}
	return tr, err
}

// ListByHospital returns a hospital's treatments.
func (t *Treatments) ListByHospital(ctx context.Context, hospitalID int64) (list []treatmentDomain.Treatment, err error) {
	start := time.Now()
	defer func() { t.c.observe(ctx, "hospital_treatments", start, err) }()
	rows, err := t.c.pool.Query(ctx,
		"SELECT "+treatment.Columns+" FROM "+TreatmentTable+" WHERE hospital_id = $1 ORDER BY id", hospitalID)
	if err != nil {
		return nil, err
	}
	list, err = collect(rows, treatment.Scan)
	return list, err
}

// Hospitals reads HospitalTable.
type Hospitals struct {
	c *Catalog
}

var _ hospital.Reader = (*Hospitals)(nil)

// List returns hospitals in id order; limit <= 0 returns all.
func (h *Hospitals) List(ctx context.Context, limit int) (list []hospitalDomain.Hospital, err error) {
	start := time.Now()
	defer func() { h.c.observe(ctx, "hospitals", start, err) }()
	query := "SELECT " + hospital.Columns + " FROM " + HospitalTable + " ORDER BY id"
	var args []any
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}
	rows, err := h.c.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	list, err = collect(rows, hospital.Scan)
	return list, err
}

// GetByID returns one hospital; a missing row wraps sql.ErrNoRows.
func (h *Hospitals) GetByID(ctx context.Context, id int64) (hosp hospitalDomain.Hospital, err error) {
	start := time.Now()
	defer func() { h.c.observe(ctx, "hospital", start, err) }()
	row := h.c.pool.QueryRow(ctx, "SELECT "+hospital.Columns+" FROM "+HospitalTable+" WHERE id = $1", id)
	hosp, err = hospital.Scan(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("hospital %d not found: %w", id, sql.ErrNoRows)
	}
	return hosp, err
}

func collect[T any](rows pgx.Rows, scan func(func(dest ...any) error) (T, error)) ([]T, error) {
	defer rows.Close()
	var list []T
	for rows.Next() {
		v, err := scan(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}
