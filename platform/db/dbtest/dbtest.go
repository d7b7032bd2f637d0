// Package dbtest gives repository tests a migrated Postgres schema of their
// own. Tests that use it are skipped unless TEST_DATABASE_URL is set.
package dbtest

import (
	"context"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"sales_portal_backend/migrations"
	"sales_portal_backend/platform/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnvDatabaseURL names the variable holding the test database URL.
const EnvDatabaseURL = "TEST_DATABASE_URL"

type schemaConfig struct {
	url string
}

func (c schemaConfig) GetDatabaseURL() string     { return c.url }
func (c schemaConfig) GetMigrationsEnabled() bool { return true }

// NewPool creates a fresh schema, applies the embedded migrations to it and
// returns a pool whose search_path points at it. The schema is dropped when
// the test ends.
func NewPool(t testing.TB) *pgxpool.Pool {
	t.Helper()

	baseURL := os.Getenv(EnvDatabaseURL)
	if baseURL == "" {
		t.Skipf("%s not set; skipping database test", EnvDatabaseURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := pgx.Connect(ctx, baseURL)
	if err != nil {
		t.Fatalf("connect to test database: %v", err)
	}

	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if _, err := admin.Exec(ctx, "CREATE SCHEMA "+schema); err != nil {
		_ = admin.Close(ctx)
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := admin.Exec(ctx, "DROP SCHEMA "+schema+" CASCADE"); err != nil {
			t.Logf("drop schema %s: %v", schema, err)
		}
		_ = admin.Close(ctx)
	})

	schemaURL, err := withSearchPath(baseURL, schema)
	if err != nil {
		t.Fatalf("build schema url: %v", err)
	}
	cfg := schemaConfig{url: schemaURL}

	if err := db.RunMigrations(ctx, cfg, migrations.FS); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

// withSearchPath adds a search_path runtime parameter to a URL or
// keyword/value connection string.
func withSearchPath(connString, schema string) (string, error) {
	if !strings.Contains(connString, "://") {
		return connString + " search_path=" + schema, nil
	}
	u, err := url.Parse(connString)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
