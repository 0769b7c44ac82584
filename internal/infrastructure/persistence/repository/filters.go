package repository

import (
	"gorm.io/gorm"

	"explorer/internal/domain/explorer"
	"explorer/internal/infrastructure/persistence/model"
	"explorer/internal/ports"
)

var addressListing = listing[ports.AddressFilter, ports.AddressCondition, model.Address, ports.AddressRecord]{
	kind:   "address",
	filter: filterAddress,
	columns: map[ports.AddressCondition]string{
		ports.AddressByID:         "id",
		ports.AddressByAddress:    "address",
		ports.AddressByCaseID:     "case_id",
		ports.AddressByReporterID: "reporter_id",
		ports.AddressByRisk:       "risk",
		ports.AddressByCategory:   "category",
		ports.AddressByCreatedAt:  "created_at",
		ports.AddressByUpdatedAt:  "updated_at",
	},
	enums:  map[ports.AddressCondition]*explorer.EnumDomain{ports.AddressByCategory: explorer.CategoryDomain},
	decode: mapAddress,
}

var assetListing = listing[ports.AssetFilter, ports.AssetCondition, model.Asset, ports.AssetRecord]{
	kind:   "asset",
	filter: filterAsset,
	columns: map[ports.AssetCondition]string{
		ports.AssetByID:         "id",
		ports.AssetByAddress:    "address",
		ports.AssetByAssetID:    "asset_id",
		ports.AssetByCaseID:     "case_id",
		ports.AssetByReporterID: "reporter_id",
		ports.AssetByRisk:       "risk",
		ports.AssetByCategory:   "category",
		ports.AssetByCreatedAt:  "created_at",
		ports.AssetByUpdatedAt:  "updated_at",
	},
	enums:  map[ports.AssetCondition]*explorer.EnumDomain{ports.AssetByCategory: explorer.CategoryDomain},
	decode: mapAsset,
}

var caseListing = listing[ports.CaseFilter, ports.CaseCondition, model.Case, ports.CaseRecord]{
	kind:   "case",
	filter: filterCase,
	columns: map[ports.CaseCondition]string{
		ports.CaseByID:         "id",
		ports.CaseByCaseID:     "case_id",
		ports.CaseByName:       "name",
		ports.CaseByStatus:     "status",
		ports.CaseByReporterID: "reporter_id",
		ports.CaseByCreatedAt:  "created_at",
		ports.CaseByUpdatedAt:  "updated_at",
	},
	enums:  map[ports.CaseCondition]*explorer.EnumDomain{ports.CaseByStatus: explorer.CaseStatusDomain},
	decode: mapCase,
}

var reporterListing = listing[ports.ReporterFilter, ports.ReporterCondition, model.Reporter, ports.ReporterRecord]{
	kind:   "reporter",
	filter: filterReporter,
	columns: map[ports.ReporterCondition]string{
		ports.ReporterByID:         "id",
		ports.ReporterByReporterID: "reporter_id",
		ports.ReporterByAccount:    "account",
		ports.ReporterByName:       "name",
		ports.ReporterByRole:       "role",
		ports.ReporterByStatus:     "status",
		ports.ReporterByCreatedAt:  "created_at",
		ports.ReporterByUpdatedAt:  "updated_at",
	},
	enums: map[ports.ReporterCondition]*explorer.EnumDomain{
		ports.ReporterByRole:   explorer.ReporterRoleDomain,
		ports.ReporterByStatus: explorer.ReporterStatusDomain,
	},
	decode: mapReporter,
}

var networkListing = listing[ports.NetworkFilter, ports.NetworkCondition, model.Network, ports.NetworkRecord]{
	kind:   "network",
	filter: filterNetwork,
	columns: map[ports.NetworkCondition]string{
		ports.NetworkByID:        "id",
		ports.NetworkByName:      "name",
		ports.NetworkByBackend:   "backend",
		ports.NetworkByCreatedAt: "created_at",
		ports.NetworkByUpdatedAt: "updated_at",
	},
	enums:  map[ports.NetworkCondition]*explorer.EnumDomain{ports.NetworkByBackend: explorer.NetworkBackendDomain},
	decode: mapNetwork,
}

func filterAddress(q *gorm.DB, f *ports.AddressFilter) *gorm.DB {
	if f.Network != nil {
		q = q.Where("network = ?", *f.Network)
	}
	if f.CaseID != nil {
		q = q.Where("case_id = ?", *f.CaseID)
	}
	if f.ReporterID != nil {
		q = q.Where("reporter_id = ?", *f.ReporterID)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.Risk != nil {
		q = q.Where("risk = ?", *f.Risk)
	}
	if f.MinRisk != nil {
		q = q.Where("risk >= ?", *f.MinRisk)
	}
	if f.MaxRisk != nil {
		q = q.Where("risk <= ?", *f.MaxRisk)
	}
	return q
}

func filterAsset(q *gorm.DB, f *ports.AssetFilter) *gorm.DB {
	q = filterAddress(q, &f.AddressFilter)
	if f.Address != nil {
		q = q.Where("address = ?", *f.Address)
	}
	if f.AssetID != nil {
		q = q.Where("asset_id = ?", *f.AssetID)
	}
	return q
}

func filterCase(q *gorm.DB, f *ports.CaseFilter) *gorm.DB {
	if f.Network != nil {
		q = q.Where("network = ?", *f.Network)
	}
	if f.ReporterID != nil {
		q = q.Where("reporter_id = ?", *f.ReporterID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Name != nil {
		q = q.Where("name = ?", *f.Name)
	}
	return q
}

func filterReporter(q *gorm.DB, f *ports.ReporterFilter) *gorm.DB {
	if f.Network != nil {
		q = q.Where("network = ?", *f.Network)
	}
	if f.Account != nil {
		q = q.Where("account = ?", *f.Account)
	}
	if f.Role != nil {
		q = q.Where("role = ?", *f.Role)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	return q
}

func filterNetwork(q *gorm.DB, f *ports.NetworkFilter) *gorm.DB {
	if f.Backend != nil {
		q = q.Where("backend = ?", *f.Backend)
	}
	return q
}
