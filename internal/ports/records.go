package ports

import (
	"time"

	"github.com/google/uuid"

	"explorer/internal/domain/explorer"
)

// EntityRecord is a mapped payload ready for upsert, keyed by its composed id.
type EntityRecord interface {
	EntityID() string
	EntityKind() explorer.Kind
}

type AddressRecord struct {
	ID            string            `json:"id"`
	Network       string            `json:"network"`
	Address       string            `json:"address"`
	CaseID        uuid.UUID         `json:"case_id"`
	ReporterID    uuid.UUID         `json:"reporter_id"`
	Risk          int16             `json:"risk"`
	Category      explorer.Category `json:"category"`
	Confirmations string            `json:"confirmations"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type AssetRecord struct {
	ID            string            `json:"id"`
	Network       string            `json:"network"`
	Address       string            `json:"address"`
	AssetID       string            `json:"asset_id"`
	CaseID        uuid.UUID         `json:"case_id"`
	ReporterID    uuid.UUID         `json:"reporter_id"`
	Risk          int16             `json:"risk"`
	Category      explorer.Category `json:"category"`
	Confirmations string            `json:"confirmations"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type CaseRecord struct {
	ID         string              `json:"id"`
	Network    string              `json:"network"`
	CaseID     uuid.UUID           `json:"case_id"`
	Name       string              `json:"name"`
	URL        string              `json:"url"`
	Status     explorer.CaseStatus `json:"status"`
	ReporterID uuid.UUID           `json:"reporter_id"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

type ReporterRecord struct {
	ID              string                  `json:"id"`
	Network         string                  `json:"network"`
	ReporterID      uuid.UUID               `json:"reporter_id"`
	Account         string                  `json:"account"`
	Role            explorer.ReporterRole   `json:"role"`
	Status          explorer.ReporterStatus `json:"status"`
	Name            string                  `json:"name"`
	URL             string                  `json:"url"`
	Stake           string                  `json:"stake"`
	UnlockTimestamp string                  `json:"unlock_timestamp"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// NetworkRecord is a registered network. Its id is the network name used as the first part of
// every composed entity id.
type NetworkRecord struct {
	ID         string                  `json:"id"`
	Name       string                  `json:"name"`
	Backend    explorer.NetworkBackend `json:"backend"`
	ChainID    *string                 `json:"chain_id,omitempty"`
	Authority  string                  `json:"authority"`
	StakeToken string                  `json:"stake_token"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

func (r AddressRecord) EntityID() string  { return r.ID }
func (r AssetRecord) EntityID() string    { return r.ID }
func (r CaseRecord) EntityID() string     { return r.ID }
func (r ReporterRecord) EntityID() string { return r.ID }

func (AddressRecord) EntityKind() explorer.Kind  { return explorer.KindAddress }
func (AssetRecord) EntityKind() explorer.Kind    { return explorer.KindAsset }
func (CaseRecord) EntityKind() explorer.Kind     { return explorer.KindCase }
func (ReporterRecord) EntityKind() explorer.Kind { return explorer.KindReporter }
