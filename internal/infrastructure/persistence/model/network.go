package model

import (
	"time"

	"explorer/internal/domain/explorer"
)

type Network struct {
	ID         string                  `gorm:"column:id;type:text;primaryKey"`
	Name       string                  `gorm:"column:name;type:text;not null"`
	Backend    explorer.NetworkBackend `gorm:"column:backend;type:network_backend;not null"`
	ChainID    *string                 `gorm:"column:chain_id;type:text"`
	Authority  string                  `gorm:"column:authority;type:text;not null"`
	StakeToken string                  `gorm:"column:stake_token;type:text;not null"`
	CreatedAt  time.Time               `gorm:"column:created_at;not null"`
	UpdatedAt  time.Time               `gorm:"column:updated_at;not null"`
}

func (Network) TableName() string {
	return "network"
}
