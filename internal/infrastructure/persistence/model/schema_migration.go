package model

import "time"

// SchemaMigration is the bookkeeping row of one applied migration unit.
type SchemaMigration struct {
	Version   string    `gorm:"column:version;type:text;primaryKey"`
	Name      string    `gorm:"column:name;type:text;not null"`
	AppliedAt time.Time `gorm:"column:applied_at;not null"`
}

func (SchemaMigration) TableName() string {
	return "schema_migrations"
}
