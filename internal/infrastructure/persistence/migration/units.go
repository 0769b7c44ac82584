package migration

import (
	"fmt"

	"gorm.io/gorm"

	"explorer/internal/domain/explorer"
)

// Step changes the schema inside the transaction of its unit.
type Step func(tx *gorm.DB, d Dialect) error

// Unit is one reversible schema change. Provides and Requires name schema objects
// ("type:<name>", "table:<name>"); the declared order must satisfy them.
type Unit struct {
	Version  string
	Name     string
	Provides []string
	Requires []string
	Up       Step
	Down     Step
}

func (u Unit) ID() string {
	return u.Version + "_" + u.Name
}

// Units returns the schema in its authoritative order. The order is the declaration order,
// not the version order: enumerated types precede the columns typed with them and tables
// precede the tables that reference them.
func Units() []Unit {
	return []Unit{
		enumUnit("m20231211_164133", explorer.NetworkBackendDomain),
		{
			Version:  "m20231205_131413",
			Name:     "create_network",
			Provides: []string{"table:network"},
			Requires: []string{"type:network_backend"},
			Up:       createNetwork,
			Down:     dropTable("network"),
		},
		enumUnit("m20231127_162603", explorer.CategoryDomain),
		enumUnit("m20231127_165849", explorer.ReporterRoleDomain),
		enumUnit("m20231127_170357", explorer.ReporterStatusDomain),
		{
			Version:  "m20231127_161317",
			Name:     "create_reporter",
			Provides: []string{"table:reporter"},
			Requires: []string{"type:reporter_role", "type:reporter_status"},
			Up:       createReporter,
			Down:     dropTable("reporter"),
		},
		enumUnit("m20231127_170630", explorer.CaseStatusDomain),
		{
			Version:  "m20231127_162130",
			Name:     "create_case",
			Provides: []string{"table:case"},
			Requires: []string{"type:case_status", "table:reporter"},
			Up:       createCase,
			Down:     dropTable("case"),
		},
		{
			Version:  "m20231127_140636",
			Name:     "create_address",
			Provides: []string{"table:address"},
			Requires: []string{"type:category", "table:case", "table:reporter"},
			Up:       createAddress,
			Down:     dropTable("address"),
		},
		{
			Version:  "m20231127_160838",
			Name:     "create_asset",
			Provides: []string{"table:asset"},
			Requires: []string{"type:category", "table:case", "table:reporter"},
			Up:       createAsset,
			Down:     dropTable("asset"),
		},
		{
			Version:  "m20231214_093012",
			Name:     "create_kv_store",
			Provides: []string{"table:kv_store"},
			Up:       createKVStore,
			Down:     dropTable("kv_store"),
		},
	}
}

func enumUnit(version string, domain *explorer.EnumDomain) Unit {
	typeName := domain.TypeName()
	values := domain.StorageValues()
	return Unit{
		Version:  version,
		Name:     fmt.Sprintf("create_%s_type", typeName),
		Provides: []string{"type:" + typeName},
		Up: func(tx *gorm.DB, d Dialect) error {
			return execAll(tx, d.createEnum(typeName, values)...)
		},
		Down: func(tx *gorm.DB, d Dialect) error {
			return execAll(tx, d.dropEnum(typeName)...)
		},
	}
}

func dropTable(name string) Step {
	return func(tx *gorm.DB, _ Dialect) error {
		return execAll(tx, "DROP TABLE "+quoteIdent(name))
	}
}

func createNetwork(tx *gorm.DB, d Dialect) error {
	return execAll(tx, `CREATE TABLE network (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	backend `+d.enumType("network_backend")+` NOT NULL,
	chain_id TEXT,
	authority TEXT NOT NULL,
	stake_token TEXT NOT NULL,
	created_at `+d.timestampType()+` NOT NULL,
	updated_at `+d.timestampType()+` NOT NULL
)`)
}

func createReporter(tx *gorm.DB, d Dialect) error {
	return execAll(tx,
		`CREATE TABLE reporter (
	id TEXT PRIMARY KEY,
	network TEXT NOT NULL,
	reporter_id `+d.uuidType()+` NOT NULL,
	account TEXT NOT NULL,
	role `+d.enumType("reporter_role")+` NOT NULL,
	status `+d.enumType("reporter_status")+` NOT NULL,
	name TEXT NOT NULL,
	url TEXT NOT NULL,
	stake TEXT NOT NULL,
	unlock_timestamp TEXT NOT NULL,
	created_at `+d.timestampType()+` NOT NULL,
	updated_at `+d.timestampType()+` NOT NULL
)`,
		`CREATE INDEX idx_reporter_network ON reporter (network)`,
	)
}

func createCase(tx *gorm.DB, d Dialect) error {
	return execAll(tx,
		`CREATE TABLE "case" (
	id TEXT PRIMARY KEY,
	network TEXT NOT NULL,
	case_id `+d.uuidType()+` NOT NULL,
	name TEXT NOT NULL,
	url TEXT NOT NULL,
	status `+d.enumType("case_status")+` NOT NULL,
	reporter_id `+d.uuidType()+` NOT NULL,
	created_at `+d.timestampType()+` NOT NULL,
	updated_at `+d.timestampType()+` NOT NULL
)`,
		`CREATE INDEX idx_case_network ON "case" (network)`,
	)
}

func createAddress(tx *gorm.DB, d Dialect) error {
	return execAll(tx,
		`CREATE TABLE address (
	id TEXT PRIMARY KEY,
	network TEXT NOT NULL,
	address TEXT NOT NULL,
	case_id `+d.uuidType()+` NOT NULL,
	reporter_id `+d.uuidType()+` NOT NULL,
	risk SMALLINT NOT NULL,
	category `+d.enumType("category")+` NOT NULL,
	confirmations TEXT NOT NULL,
	created_at `+d.timestampType()+` NOT NULL,
	updated_at `+d.timestampType()+` NOT NULL
)`,
		`CREATE INDEX idx_address_network ON address (network)`,
		`CREATE INDEX idx_address_category ON address (category)`,
	)
}

func createAsset(tx *gorm.DB, d Dialect) error {
	return execAll(tx,
		`CREATE TABLE asset (
	id TEXT PRIMARY KEY,
	network TEXT NOT NULL,
	address TEXT NOT NULL,
	asset_id TEXT NOT NULL,
	case_id `+d.uuidType()+` NOT NULL,
	reporter_id `+d.uuidType()+` NOT NULL,
	risk SMALLINT NOT NULL,
	category `+d.enumType("category")+` NOT NULL,
	confirmations TEXT NOT NULL,
	created_at `+d.timestampType()+` NOT NULL,
	updated_at `+d.timestampType()+` NOT NULL
)`,
		`CREATE INDEX idx_asset_network ON asset (network)`,
		`CREATE INDEX idx_asset_category ON asset (category)`,
	)
}

func createKVStore(tx *gorm.DB, d Dialect) error {
	return execAll(tx, `CREATE TABLE kv_store (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	expires_at `+d.timestampType()+`,
	updated_at `+d.timestampType()+` NOT NULL
)`)
}
