package migration

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"explorer/internal/domain/explorer"
	"explorer/internal/infrastructure/persistence/model"
)

var unitTables = []string{
	"network_backend",
	"network",
	"category",
	"reporter_role",
	"reporter_status",
	"reporter",
	"case_status",
	"case",
	"address",
	"asset",
	"kv_store",
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "explorer.sqlite") + "?_pragma=foreign_keys(1)"
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestUnitsOrderSatisfiesDependencies(t *testing.T) {
	provided := map[string]string{}
	for _, unit := range Units() {
		for _, req := range unit.Requires {
			if _, ok := provided[req]; !ok {
				t.Fatalf("unit %s requires %s before it is provided", unit.ID(), req)
			}
		}
		for _, p := range unit.Provides {
			if prev, dup := provided[p]; dup {
				t.Fatalf("%s provided by both %s and %s", p, prev, unit.ID())
			}
			provided[p] = unit.ID()
		}
	}
	if len(provided) != len(unitTables) {
		t.Fatalf("provided objects = %d, want %d", len(provided), len(unitTables))
	}
}

func TestUnitsKeepDeclaredOrder(t *testing.T) {
	want := []string{
		"m20231211_164133",
		"m20231205_131413",
		"m20231127_162603",
		"m20231127_165849",
		"m20231127_170357",
		"m20231127_161317",
		"m20231127_170630",
		"m20231127_162130",
		"m20231127_140636",
		"m20231127_160838",
		"m20231214_093012",
	}
	units := Units()
	if len(units) != len(want) {
		t.Fatalf("Units() len = %d, want %d", len(units), len(want))
	}
	for i, unit := range units {
		if unit.Version != want[i] {
			t.Fatalf("Units()[%d] = %s, want %s", i, unit.Version, want[i])
		}
	}
}

func TestMigratorUpCreatesSchemaAndIsIdempotent(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	m, err := NewDefault(db)
	if err != nil {
		t.Fatalf("NewDefault() error = %v", err)
	}
	if err := m.Up(ctx, ""); err != nil {
		t.Fatalf("Up() error = %v", err)
	}
	for _, table := range unitTables {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("table %q missing after Up()", table)
		}
	}

	if err := m.Up(ctx, ""); err != nil {
		t.Fatalf("Up(second) error = %v", err)
	}

	var count int64
	if err := db.Model(&model.SchemaMigration{}).Count(&count).Error; err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if count != int64(len(Units())) {
		t.Fatalf("schema_migrations rows = %d, want %d", count, len(Units()))
	}

	statuses, err := m.Status(ctx)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	for _, s := range statuses {
		if !s.Applied || s.AppliedAt == nil {
			t.Fatalf("Status() unit %s not applied", s.Version)
		}
	}
}

func TestMigratorDownRemovesEverything(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	m, err := NewDefault(db)
	if err != nil {
		t.Fatalf("NewDefault() error = %v", err)
	}
	if err := m.Up(ctx, ""); err != nil {
		t.Fatalf("Up() error = %v", err)
	}
	if err := m.Down(ctx, ""); err != nil {
		t.Fatalf("Down() error = %v", err)
	}
	for _, table := range unitTables {
		if db.Migrator().HasTable(table) {
			t.Fatalf("table %q still present after Down()", table)
		}
	}

	if err := m.Up(ctx, ""); err != nil {
		t.Fatalf("Up(after down) error = %v", err)
	}
}

func TestMigratorThrough(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	m, err := NewDefault(db)
	if err != nil {
		t.Fatalf("NewDefault() error = %v", err)
	}
	if err := m.Up(ctx, "m20231127_161317"); err != nil {
		t.Fatalf("Up(reporter) error = %v", err)
	}
	if !db.Migrator().HasTable("reporter") {
		t.Fatalf("reporter table missing")
	}
	if db.Migrator().HasTable("case") {
		t.Fatalf("case table created past through")
	}

	if err := m.Down(ctx, "m20231127_162603_create_category_type"); err != nil {
		t.Fatalf("Down(category) error = %v", err)
	}
	if db.Migrator().HasTable("category") || db.Migrator().HasTable("reporter") {
		t.Fatalf("Down() left units at or after through")
	}
	if !db.Migrator().HasTable("network") {
		t.Fatalf("Down() reverted units before through")
	}

	if err := m.Up(ctx, "m99999999_000000"); err == nil {
		t.Fatalf("Up() expected error for unknown unit")
	}
}

func TestMigratorFailedUnitIsAtomic(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	boom := errors.New("boom")
	units := []Unit{
		{
			Version: "m1",
			Name:    "create_first",
			Up: func(tx *gorm.DB, _ Dialect) error {
				return execAll(tx, "CREATE TABLE alpha (id TEXT PRIMARY KEY)")
			},
			Down: dropTable("alpha"),
		},
		{
			Version: "m2",
			Name:    "create_broken",
			Up: func(tx *gorm.DB, _ Dialect) error {
				if err := execAll(tx, "CREATE TABLE beta (id TEXT PRIMARY KEY)"); err != nil {
					return err
				}
				return boom
			},
			Down: dropTable("beta"),
		},
		{
			Version: "m3",
			Name:    "create_third",
			Up: func(tx *gorm.DB, _ Dialect) error {
				return execAll(tx, "CREATE TABLE gamma (id TEXT PRIMARY KEY)")
			},
			Down: dropTable("gamma"),
		},
	}

	m, err := New(db, units)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	err = m.Up(ctx, "")
	if !errors.Is(err, explorer.ErrMigrationUnitFailed) {
		t.Fatalf("Up() error = %v, want ErrMigrationUnitFailed", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("Up() error = %v, want cause preserved", err)
	}

	if !db.Migrator().HasTable("alpha") {
		t.Fatalf("first unit should stay applied")
	}
	if db.Migrator().HasTable("beta") {
		t.Fatalf("failed unit left its table behind")
	}
	if db.Migrator().HasTable("gamma") {
		t.Fatalf("unit after the failure ran")
	}

	statuses, err := m.Status(ctx)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if !statuses[0].Applied || statuses[1].Applied || statuses[2].Applied {
		t.Fatalf("Status() = %+v", statuses)
	}
}

func TestNewRejectsDuplicateVersions(t *testing.T) {
	db := openSQLite(t)
	step := func(*gorm.DB, Dialect) error { return nil }
	_, err := New(db, []Unit{
		{Version: "m1", Name: "a", Up: step, Down: step},
		{Version: "m1", Name: "b", Up: step, Down: step},
	})
	if err == nil {
		t.Fatalf("New() expected error for duplicate version")
	}
}

func TestEnumTablesMatchDomains(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	m, err := NewDefault(db)
	if err != nil {
		t.Fatalf("NewDefault() error = %v", err)
	}
	if err := m.Up(ctx, ""); err != nil {
		t.Fatalf("Up() error = %v", err)
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
		if err := db.Table(d.TypeName()).Order("rowid").Pluck("value", &values).Error; err != nil {
			t.Fatalf("read %s values: %v", d.TypeName(), err)
		}
		want := d.StorageValues()
		if len(values) != len(want) {
			t.Fatalf("%s values = %v, want %v", d.TypeName(), values, want)
		}
		for i := range want {
			if values[i] != want[i] {
				t.Fatalf("%s[%d] = %q, want %q", d.TypeName(), i, values[i], want[i])
			}
		}
	}
}

func TestEnumColumnsRejectUnknownValues(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	m, err := NewDefault(db)
	if err != nil {
		t.Fatalf("NewDefault() error = %v", err)
	}
	if err := m.Up(ctx, ""); err != nil {
		t.Fatalf("Up() error = %v", err)
	}

	err = db.Exec(`INSERT INTO "case" (id, network, case_id, name, url, status, reporter_id, created_at, updated_at)
VALUES ('n.x', 'n', 'x', 'n', 'u', 'pending', 'r', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`).Error
	if err == nil {
		t.Fatalf("insert with unknown case_status expected error")
	}
}
