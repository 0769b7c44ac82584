package ports

import (
	"context"

	"explorer/internal/domain/explorer"
)

// EntityWriter upserts mapped records. Each call is a single insert-or-update statement keyed
// on the record id, so concurrent deliveries of one event converge on the same row.
type EntityWriter interface {
	UpsertAddress(ctx context.Context, record AddressRecord) error
	UpsertAsset(ctx context.Context, record AssetRecord) error
	UpsertCase(ctx context.Context, record CaseRecord) error
	UpsertReporter(ctx context.Context, record ReporterRecord) error
	UpsertNetwork(ctx context.Context, record NetworkRecord) error
}

// EntityReader returns explorer.ErrNotFound from the Get methods when no row has the id.
type EntityReader interface {
	GetAddress(ctx context.Context, id string) (AddressRecord, error)
	GetAsset(ctx context.Context, id string) (AssetRecord, error)
	GetCase(ctx context.Context, id string) (CaseRecord, error)
	GetReporter(ctx context.Context, id string) (ReporterRecord, error)
	GetNetwork(ctx context.Context, id string) (NetworkRecord, error)

	ListAddresses(ctx context.Context, input AddressInput) (explorer.EntityPage[AddressRecord], error)
	ListAssets(ctx context.Context, input AssetInput) (explorer.EntityPage[AssetRecord], error)
	ListCases(ctx context.Context, input CaseInput) (explorer.EntityPage[CaseRecord], error)
	ListReporters(ctx context.Context, input ReporterInput) (explorer.EntityPage[ReporterRecord], error)
	ListNetworks(ctx context.Context, input NetworkInput) (explorer.EntityPage[NetworkRecord], error)
}

type ExplorerRepository interface {
	EntityReader
	EntityWriter
}
