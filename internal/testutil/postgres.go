package testutil

import (
	"context"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"explorer/internal/infrastructure/persistence/migration"
)

// PostgresDSNEnv names the variable holding the DSN of a disposable PostgreSQL database.
const PostgresDSNEnv = "POSTGRES_DSN_TEST"

// OpenPostgresDB connects to the database named by POSTGRES_DSN_TEST inside a fresh schema
// that is dropped on cleanup. The test is skipped when the variable is unset.
func OpenPostgresDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv(PostgresDSNEnv))
	if dsn == "" {
		t.Skip(PostgresDSNEnv + " not set")
	}

	admin, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	adminDB, err := admin.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}

	schema := "explorer_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := admin.Exec(`CREATE SCHEMA "` + schema + `"`).Error; err != nil {
		_ = adminDB.Close()
		t.Fatalf("create schema %s: %v", schema, err)
	}

	db, err := gorm.Open(postgres.Open(withSearchPath(dsn, schema)), &gorm.Config{TranslateError: true})
	if err != nil {
		_ = adminDB.Close()
		t.Fatalf("open postgres schema %s: %v", schema, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
		_ = admin.Exec(`DROP SCHEMA IF EXISTS "` + schema + `" CASCADE`).Error
		_ = adminDB.Close()
	})
	return db
}

// OpenMigratedPostgresDB is OpenPostgresDB with every migration unit applied.
func OpenMigratedPostgresDB(t testing.TB) *gorm.DB {
	t.Helper()

	db := OpenPostgresDB(t)
	m, err := migration.NewDefault(db)
	if err != nil {
		t.Fatalf("migration.NewDefault() error = %v", err)
	}
	if err := m.Up(context.Background(), ""); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	return db
}

// withSearchPath pins every pooled connection to schema. Both URL and keyword/value DSNs
// accept search_path as a runtime parameter.
func withSearchPath(dsn string, schema string) string {
	if strings.Contains(dsn, "://") {
		if u, err := url.Parse(dsn); err == nil {
			q := u.Query()
			q.Set("search_path", schema)
			u.RawQuery = q.Encode()
			return u.String()
		}
	}
	return dsn + " search_path=" + schema
}
