package model

import (
	"time"

	"github.com/google/uuid"

	"explorer/internal/domain/explorer"
)

type Reporter struct {
	ID              string                  `gorm:"column:id;type:text;primaryKey"`
	Network         string                  `gorm:"column:network;type:text;not null;index"`
	ReporterID      uuid.UUID               `gorm:"column:reporter_id;type:uuid;not null"`
	Account         string                  `gorm:"column:account;type:text;not null"`
	Role            explorer.ReporterRole   `gorm:"column:role;type:reporter_role;not null"`
	Status          explorer.ReporterStatus `gorm:"column:status;type:reporter_status;not null"`
	Name            string                  `gorm:"column:name;type:text;not null"`
	URL             string                  `gorm:"column:url;type:text;not null"`
	Stake           string                  `gorm:"column:stake;type:text;not null"`
	UnlockTimestamp string                  `gorm:"column:unlock_timestamp;type:text;not null"`
	CreatedAt       time.Time               `gorm:"column:created_at;not null"`
	UpdatedAt       time.Time               `gorm:"column:updated_at;not null"`
}

func (Reporter) TableName() string {
	return "reporter"
}
