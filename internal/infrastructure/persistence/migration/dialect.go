package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Dialect selects the DDL flavour of a migration step.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

func DialectOf(db *gorm.DB) (Dialect, error) {
	if db == nil || db.Dialector == nil {
		return "", fmt.Errorf("database is required")
	}
	switch name := db.Dialector.Name(); name {
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres":
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("unsupported dialect %q", name)
	}
}

func (d Dialect) uuidType() string {
	if d == DialectPostgres {
		return "UUID"
	}
	return "TEXT"
}

func (d Dialect) timestampType() string {
	if d == DialectPostgres {
		return "TIMESTAMPTZ"
	}
	return "DATETIME"
}

// enumType is the column type of a value drawn from an enumerated domain. SQLite has no
// enumerated types, so the domain is a value table and columns reference it.
func (d Dialect) enumType(typeName string) string {
	if d == DialectPostgres {
		return quoteIdent(typeName)
	}
	return fmt.Sprintf("TEXT REFERENCES %s (value)", quoteIdent(typeName))
}

func (d Dialect) createEnum(typeName string, values []string) []string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, quoteLiteral(v))
	}

	if d == DialectPostgres {
		return []string{
			fmt.Sprintf("CREATE TYPE %s AS ENUM (%s)", quoteIdent(typeName), strings.Join(quoted, ", ")),
		}
	}

	rows := make([]string, 0, len(quoted))
	for _, q := range quoted {
		rows = append(rows, "("+q+")")
	}
	return []string{
		fmt.Sprintf("CREATE TABLE %s (value TEXT PRIMARY KEY)", quoteIdent(typeName)),
		fmt.Sprintf("INSERT INTO %s (value) VALUES %s", quoteIdent(typeName), strings.Join(rows, ", ")),
	}
}

func (d Dialect) dropEnum(typeName string) []string {
	if d == DialectPostgres {
		return []string{fmt.Sprintf("DROP TYPE %s", quoteIdent(typeName))}
	}
	return []string{fmt.Sprintf("DROP TABLE %s", quoteIdent(typeName))}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// execAll runs statements one at a time; the postgres driver rejects several statements in
// one prepared call.
func execAll(tx *gorm.DB, statements ...string) error {
	for _, stmt := range statements {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if err := tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(stmt string) string {
	stmt = strings.TrimSpace(stmt)
	if idx := strings.IndexByte(stmt, '\n'); idx >= 0 {
		return stmt[:idx]
	}
	return stmt
}
