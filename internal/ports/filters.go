package ports

import (
	"github.com/google/uuid"

	"explorer/internal/domain/explorer"
)

// Filters narrow a listing; nil fields do not constrain it. Conditions name the sortable
// fields of each kind. The empty condition sorts by id.

type AddressFilter struct {
	Network    *string
	CaseID     *uuid.UUID
	ReporterID *uuid.UUID
	Category   *explorer.Category
	Risk       *int16
	MinRisk    *int16
	MaxRisk    *int16
}

type AddressCondition string

const (
	AddressByID         AddressCondition = "id"
	AddressByAddress    AddressCondition = "address"
	AddressByCaseID     AddressCondition = "case_id"
	AddressByReporterID AddressCondition = "reporter_id"
	AddressByRisk       AddressCondition = "risk"
	AddressByCategory   AddressCondition = "category"
	AddressByCreatedAt  AddressCondition = "created_at"
	AddressByUpdatedAt  AddressCondition = "updated_at"
)

type AssetFilter struct {
	AddressFilter
	Address *string
	AssetID *string
}

type AssetCondition string

const (
	AssetByID         AssetCondition = "id"
	AssetByAddress    AssetCondition = "address"
	AssetByAssetID    AssetCondition = "asset_id"
	AssetByCaseID     AssetCondition = "case_id"
	AssetByReporterID AssetCondition = "reporter_id"
	AssetByRisk       AssetCondition = "risk"
	AssetByCategory   AssetCondition = "category"
	AssetByCreatedAt  AssetCondition = "created_at"
	AssetByUpdatedAt  AssetCondition = "updated_at"
)

type CaseFilter struct {
	Network    *string
	ReporterID *uuid.UUID
	Status     *explorer.CaseStatus
	Name       *string
}

type CaseCondition string

const (
	CaseByID         CaseCondition = "id"
	CaseByCaseID     CaseCondition = "case_id"
	CaseByName       CaseCondition = "name"
	CaseByStatus     CaseCondition = "status"
	CaseByReporterID CaseCondition = "reporter_id"
	CaseByCreatedAt  CaseCondition = "created_at"
	CaseByUpdatedAt  CaseCondition = "updated_at"
)

type ReporterFilter struct {
	Network *string
	Account *string
	Role    *explorer.ReporterRole
	Status  *explorer.ReporterStatus
}

type ReporterCondition string

const (
	ReporterByID         ReporterCondition = "id"
	ReporterByReporterID ReporterCondition = "reporter_id"
	ReporterByAccount    ReporterCondition = "account"
	ReporterByName       ReporterCondition = "name"
	ReporterByRole       ReporterCondition = "role"
	ReporterByStatus     ReporterCondition = "status"
	ReporterByCreatedAt  ReporterCondition = "created_at"
	ReporterByUpdatedAt  ReporterCondition = "updated_at"
)

type NetworkFilter struct {
	Backend *explorer.NetworkBackend
}

type NetworkCondition string

const (
	NetworkByID        NetworkCondition = "id"
	NetworkByName      NetworkCondition = "name"
	NetworkByBackend   NetworkCondition = "backend"
	NetworkByCreatedAt NetworkCondition = "created_at"
	NetworkByUpdatedAt NetworkCondition = "updated_at"
)

type (
	AddressInput  = explorer.EntityInput[AddressFilter, AddressCondition]
	AssetInput    = explorer.EntityInput[AssetFilter, AssetCondition]
	CaseInput     = explorer.EntityInput[CaseFilter, CaseCondition]
	ReporterInput = explorer.EntityInput[ReporterFilter, ReporterCondition]
	NetworkInput  = explorer.EntityInput[NetworkFilter, NetworkCondition]
)
