// Package testutil holds helpers shared by tests that need a migrated store.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"explorer/internal/domain/explorer"
	"explorer/internal/infrastructure/persistence/migration"
)

// OpenMigratedDB opens a file-backed SQLite database in a temp dir with every migration
// unit applied.
func OpenMigratedDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "explorer.sqlite") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	m, err := migration.NewDefault(db)
	if err != nil {
		t.Fatalf("migration.NewDefault() error = %v", err)
	}
	if err := m.Up(context.Background(), ""); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	return db
}

// CheckEntity asserts that the row stored for data on network exists under the id derived
// from the natural key, and that every column equals the payload field.
func CheckEntity(t testing.TB, db *gorm.DB, network string, data explorer.PushData) {
	t.Helper()

	table, id, want := expectedRow(t, network, data)

	row := map[string]any{}
	result := db.Table(table).Where("id = ?", id).Take(&row)
	if result.Error != nil {
		t.Fatalf("load %s %q: %v", table, id, result.Error)
	}

	var count int64
	if err := db.Table(table).Where("id = ?", id).Count(&count).Error; err != nil {
		t.Fatalf("count %s %q: %v", table, id, err)
	}
	if count != 1 {
		t.Fatalf("%s %q rows = %d, want 1", table, id, count)
	}

	for column, expected := range want {
		got, ok := row[column]
		if !ok {
			t.Fatalf("%s %q: column %s missing", table, id, column)
		}
		if s := columnString(got); s != expected {
			t.Fatalf("%s %q: %s = %q, want %q", table, id, column, s, expected)
		}
	}
}

func expectedRow(t testing.TB, network string, data explorer.PushData) (string, string, map[string]string) {
	t.Helper()

	switch p := deref(data).(type) {
	case explorer.AddressPayload:
		category := mustStorage(t, explorer.CategoryDomain, string(p.Category))
		return "address", fmt.Sprintf("%s.%s", network, p.Address), map[string]string{
			"network":       network,
			"address":       p.Address,
			"case_id":       p.CaseID.String(),
			"reporter_id":   p.ReporterID.String(),
			"risk":          fmt.Sprint(p.Risk),
			"category":      category,
			"confirmations": p.Confirmations.String(),
		}
	case explorer.AssetPayload:
		category := mustStorage(t, explorer.CategoryDomain, string(p.Category))
		return "asset", fmt.Sprintf("%s.%s.%s", network, p.Address, p.AssetID.String()), map[string]string{
			"network":       network,
			"address":       p.Address,
			"asset_id":      p.AssetID.String(),
			"case_id":       p.CaseID.String(),
			"reporter_id":   p.ReporterID.String(),
			"risk":          fmt.Sprint(p.Risk),
			"category":      category,
			"confirmations": p.Confirmations.String(),
		}
	case explorer.CasePayload:
		return "case", fmt.Sprintf("%s.%s", network, p.ID), map[string]string{
			"network":     network,
			"case_id":     p.ID.String(),
			"name":        p.Name,
			"url":         p.URL,
			"status":      mustStorage(t, explorer.CaseStatusDomain, string(p.Status)),
			"reporter_id": p.ReporterID.String(),
		}
	case explorer.ReporterPayload:
		return "reporter", fmt.Sprintf("%s.%s", network, p.ID), map[string]string{
			"network":          network,
			"reporter_id":      p.ID.String(),
			"account":          p.Account,
			"role":             mustStorage(t, explorer.ReporterRoleDomain, string(p.Role)),
			"status":           mustStorage(t, explorer.ReporterStatusDomain, string(p.Status)),
			"name":             p.Name,
			"url":              p.URL,
			"stake":            p.Stake.String(),
			"unlock_timestamp": p.UnlockTimestamp.String(),
		}
	default:
		t.Fatalf("unsupported payload %T", data)
		return "", "", nil
	}
}

func deref(data explorer.PushData) explorer.PushData {
	switch p := data.(type) {
	case *explorer.AddressPayload:
		return *p
	case *explorer.AssetPayload:
		return *p
	case *explorer.CasePayload:
		return *p
	case *explorer.ReporterPayload:
		return *p
	default:
		return data
	}
}

func mustStorage(t testing.TB, domain *explorer.EnumDomain, external string) string {
	t.Helper()

	externals := domain.ExternalValues()
	storage := domain.StorageValues()
	for i, name := range externals {
		if name == external || fmt.Sprint(i) == external {
			return storage[i]
		}
	}
	t.Fatalf("%s has no value %q", domain.TypeName(), external)
	return ""
}

func columnString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
