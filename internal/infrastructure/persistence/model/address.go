package model

import (
	"time"

	"github.com/google/uuid"

	"explorer/internal/domain/explorer"
)

type Address struct {
	ID            string            `gorm:"column:id;type:text;primaryKey"`
	Network       string            `gorm:"column:network;type:text;not null;index"`
	Address       string            `gorm:"column:address;type:text;not null"`
	CaseID        uuid.UUID         `gorm:"column:case_id;type:uuid;not null"`
	ReporterID    uuid.UUID         `gorm:"column:reporter_id;type:uuid;not null"`
	Risk          int16             `gorm:"column:risk;not null"`
	Category      explorer.Category `gorm:"column:category;type:category;not null"`
	Confirmations string            `gorm:"column:confirmations;type:text;not null"`
	CreatedAt     time.Time         `gorm:"column:created_at;not null"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;not null"`
}

func (Address) TableName() string {
	return "address"
}
