package migration_test

import (
	"context"
	"testing"

	"explorer/internal/domain/explorer"
	"explorer/internal/infrastructure/persistence/migration"
	"explorer/internal/testutil"
)

func TestPostgresMigratorUpDown(t *testing.T) {
	db := testutil.OpenPostgresDB(t)
	ctx := context.Background()

	m, err := migration.NewDefault(db)
	if err != nil {
		t.Fatalf("NewDefault() error = %v", err)
	}
	if err := m.Up(ctx, ""); err != nil {
		t.Fatalf("Up() error = %v", err)
	}
	if err := m.Up(ctx, ""); err != nil {
		t.Fatalf("Up(second) error = %v", err)
	}

	for _, table := range []string{"network", "reporter", "case", "address", "asset", "kv_store"} {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("table %q missing after Up()", table)
		}
	}

	domains := []*explorer.EnumDomain{
		explorer.CategoryDomain,
		explorer.ReporterRoleDomain,
		explorer.ReporterStatusDomain,
		explorer.CaseStatusDomain,
		explorer.NetworkBackendDomain,
	}
	for _, d := range domains {
		var values []string
		query := `SELECT unnest(enum_range(NULL::"` + d.TypeName() + `"))::text`
		if err := db.Raw(query).Scan(&values).Error; err != nil {
			t.Fatalf("read enum %s: %v", d.TypeName(), err)
		}
		want := d.StorageValues()
		if len(values) != len(want) {
			t.Fatalf("enum %s = %v, want %v", d.TypeName(), values, want)
		}
		for i := range want {
			if values[i] != want[i] {
				t.Fatalf("enum %s[%d] = %q, want %q", d.TypeName(), i, values[i], want[i])
			}
		}
	}

	err = db.Exec(`INSERT INTO "case" (id, network, case_id, name, url, status, reporter_id, created_at, updated_at)
VALUES ('n.x', 'n', '8f2b7a43-5c55-4a5a-9c3c-0d7f0f8d1a11', 'n', 'u', 'pending', '1d6c1c2e-3b7e-4c4a-8b7e-2f3e0a9b5c22', now(), now())`).Error
	if err == nil {
		t.Fatalf("insert with unknown case_status expected error")
	}

	if err := m.Down(ctx, ""); err != nil {
		t.Fatalf("Down() error = %v", err)
	}
	for _, table := range []string{"network", "reporter", "case", "address", "asset", "kv_store"} {
		if db.Migrator().HasTable(table) {
			t.Fatalf("table %q still present after Down()", table)
		}
	}
	var types int64
	if err := db.Raw(`SELECT count(*) FROM pg_type t JOIN pg_namespace n ON n.oid = t.typnamespace
WHERE n.nspname = current_schema() AND t.typtype = 'e'`).Scan(&types).Error; err != nil {
		t.Fatalf("count enum types: %v", err)
	}
	if types != 0 {
		t.Fatalf("enum types after Down() = %d, want 0", types)
	}
}
