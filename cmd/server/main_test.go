package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"beautrip/internal/adapters/storage"
	hospitalStore "beautrip/internal/adapters/storage/hospital"
)

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	return cmd.ExecuteContext(context.Background())
}

func TestMigrateCreatesSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "beautrip.db")
	t.Setenv("BEAUTRIP_DB", dbPath)

	if err := runCLI(t, "migrate"); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	db, err := storage.OpenSQLite(context.Background(), dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	v, err := storage.SchemaVersion(context.Background(), db)
	if err != nil {
		t.Fatal(err)
	}
	if v != storage.LatestSchemaVersion() {
		t.Errorf("schema version = %d, want %d", v, storage.LatestSchemaVersion())
	}
}

func TestSeedLoadsFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "beautrip.db")
	t.Setenv("BEAUTRIP_DB", dbPath)

	seed := filepath.Join(dir, "catalog.yaml")
	doc := `hospitals:
  - id: 7
    name: 라온성형외과
treatments:
  - id: 70
    hospital_id: 7
    name: 쌍꺼풀 매몰
    category_large: 눈성형
    selling_price: 990000
    rating: 4.6
`
	if err := os.WriteFile(seed, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := runCLI(t, "seed", "--file", seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	db, err := storage.OpenSQLite(context.Background(), dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	hosp, err := hospitalStore.NewSQLiteStore(db).GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if hosp.Name != "라온성형외과" {
		t.Errorf("hospital name = %q", hosp.Name)
	}
}

func TestSeedRejectsMissingFile(t *testing.T) {
	t.Setenv("BEAUTRIP_DB", filepath.Join(t.TempDir(), "beautrip.db"))
	if err := runCLI(t, "seed", "--file", filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing seed file")
	}
}

func TestServeRejectsInvalidConfig(t *testing.T) {
	t.Setenv("BEAUTRIP_DB", filepath.Join(t.TempDir(), "beautrip.db"))
	t.Setenv("BEAUTRIP_ENV", "production")
	t.Setenv("BEAUTRIP_CSRF_KEY", "")
	if err := runCLI(t, "serve"); err == nil {
		t.Fatal("expected production without a CSRF key to fail")
	}
}
