package model

import (
	"time"

	"github.com/google/uuid"

	"explorer/internal/domain/explorer"
)

type Case struct {
	ID         string              `gorm:"column:id;type:text;primaryKey"`
	Network    string              `gorm:"column:network;type:text;not null;index"`
	CaseID     uuid.UUID           `gorm:"column:case_id;type:uuid;not null"`
	Name       string              `gorm:"column:name;type:text;not null"`
	URL        string              `gorm:"column:url;type:text;not null"`
	Status     explorer.CaseStatus `gorm:"column:status;type:case_status;not null"`
	ReporterID uuid.UUID           `gorm:"column:reporter_id;type:uuid;not null"`
	CreatedAt  time.Time           `gorm:"column:created_at;not null"`
	UpdatedAt  time.Time           `gorm:"column:updated_at;not null"`
}

// TableName is a reserved word in SQL; gorm quotes it in every statement it builds.
func (Case) TableName() string {
	return "case"
}
