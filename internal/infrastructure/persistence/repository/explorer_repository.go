package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"explorer/internal/domain/explorer"
	"explorer/internal/infrastructure/persistence/model"
	"explorer/internal/ports"
)

type ExplorerRepository struct {
	db  *gorm.DB
	now func() time.Time
}

var _ ports.ExplorerRepository = (*ExplorerRepository)(nil)

func NewExplorerRepository(db *gorm.DB) *ExplorerRepository {
	return &ExplorerRepository{db: db, now: time.Now}
}

func (r *ExplorerRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return r.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

func (r *ExplorerRepository) UpsertAddress(ctx context.Context, record ports.AddressRecord) error {
	now := r.now().UTC()
	row := model.Address{
		ID:            record.ID,
		Network:       record.Network,
		Address:       record.Address,
		CaseID:        record.CaseID,
		ReporterID:    record.ReporterID,
		Risk:          record.Risk,
		Category:      record.Category,
		Confirmations: record.Confirmations,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return r.upsert(ctx, explorer.KindAddress, row.ID, &row,
		"address", "case_id", "reporter_id", "risk", "category", "confirmations")
}

func (r *ExplorerRepository) UpsertAsset(ctx context.Context, record ports.AssetRecord) error {
	now := r.now().UTC()
	row := model.Asset{
		ID:            record.ID,
		Network:       record.Network,
		Address:       record.Address,
		AssetID:       record.AssetID,
		CaseID:        record.CaseID,
		ReporterID:    record.ReporterID,
		Risk:          record.Risk,
		Category:      record.Category,
		Confirmations: record.Confirmations,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return r.upsert(ctx, explorer.KindAsset, row.ID, &row,
		"address", "asset_id", "case_id", "reporter_id", "risk", "category", "confirmations")
}

func (r *ExplorerRepository) UpsertCase(ctx context.Context, record ports.CaseRecord) error {
	now := r.now().UTC()
	row := model.Case{
		ID:         record.ID,
		Network:    record.Network,
		CaseID:     record.CaseID,
		Name:       record.Name,
		URL:        record.URL,
		Status:     record.Status,
		ReporterID: record.ReporterID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return r.upsert(ctx, explorer.KindCase, row.ID, &row,
		"case_id", "name", "url", "status", "reporter_id")
}

func (r *ExplorerRepository) UpsertReporter(ctx context.Context, record ports.ReporterRecord) error {
	now := r.now().UTC()
	row := model.Reporter{
		ID:              record.ID,
		Network:         record.Network,
		ReporterID:      record.ReporterID,
		Account:         record.Account,
		Role:            record.Role,
		Status:          record.Status,
		Name:            record.Name,
		URL:             record.URL,
		Stake:           record.Stake,
		UnlockTimestamp: record.UnlockTimestamp,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return r.upsert(ctx, explorer.KindReporter, row.ID, &row,
		"reporter_id", "account", "role", "status", "name", "url", "stake", "unlock_timestamp")
}

func (r *ExplorerRepository) UpsertNetwork(ctx context.Context, record ports.NetworkRecord) error {
	if err := explorer.ValidateNetworkName(record.ID); err != nil {
		return err
	}
	now := r.now().UTC()
	row := model.Network{
		ID:         record.ID,
		Name:       record.Name,
		Backend:    record.Backend,
		ChainID:    record.ChainID,
		Authority:  record.Authority,
		StakeToken: record.StakeToken,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return r.upsert(ctx, "network", row.ID, &row,
		"name", "backend", "chain_id", "authority", "stake_token")
}

// upsert writes row with one INSERT ... ON CONFLICT (id) DO UPDATE statement. created_at is
// left out of the update set so the first insert time survives.
func (r *ExplorerRepository) upsert(ctx context.Context, kind explorer.Kind, id string, row any, columns ...string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s id is required", explorer.ErrInvalidNaturalKey, kind)
	}
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	updates := append(append([]string(nil), columns...), "updated_at")
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(updates),
	}).Create(row).Error; err != nil {
		return classify(err, fmt.Sprintf("upsert %s %q", kind, id))
	}
	return nil
}

func (r *ExplorerRepository) GetAddress(ctx context.Context, id string) (ports.AddressRecord, error) {
	var row model.Address
	if err := r.take(ctx, explorer.KindAddress, id, &row); err != nil {
		return ports.AddressRecord{}, err
	}
	return mapAddress(row), nil
}

func (r *ExplorerRepository) GetAsset(ctx context.Context, id string) (ports.AssetRecord, error) {
	var row model.Asset
	if err := r.take(ctx, explorer.KindAsset, id, &row); err != nil {
		return ports.AssetRecord{}, err
	}
	return mapAsset(row), nil
}

func (r *ExplorerRepository) GetCase(ctx context.Context, id string) (ports.CaseRecord, error) {
	var row model.Case
	if err := r.take(ctx, explorer.KindCase, id, &row); err != nil {
		return ports.CaseRecord{}, err
	}
	return mapCase(row), nil
}

func (r *ExplorerRepository) GetReporter(ctx context.Context, id string) (ports.ReporterRecord, error) {
	var row model.Reporter
	if err := r.take(ctx, explorer.KindReporter, id, &row); err != nil {
		return ports.ReporterRecord{}, err
	}
	return mapReporter(row), nil
}

func (r *ExplorerRepository) GetNetwork(ctx context.Context, id string) (ports.NetworkRecord, error) {
	var row model.Network
	if err := r.take(ctx, "network", id, &row); err != nil {
		return ports.NetworkRecord{}, err
	}
	return mapNetwork(row), nil
}

func (r *ExplorerRepository) take(ctx context.Context, kind explorer.Kind, id string, dst any) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}
	if err := db.Where("id = ?", id).Take(dst).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s %q", explorer.ErrNotFound, kind, id)
		}
		return classify(err, fmt.Sprintf("get %s %q", kind, id))
	}
	return nil
}

func (r *ExplorerRepository) ListAddresses(ctx context.Context, input ports.AddressInput) (explorer.EntityPage[ports.AddressRecord], error) {
	return paginate(ctx, r, addressListing, input)
}

func (r *ExplorerRepository) ListAssets(ctx context.Context, input ports.AssetInput) (explorer.EntityPage[ports.AssetRecord], error) {
	return paginate(ctx, r, assetListing, input)
}

func (r *ExplorerRepository) ListCases(ctx context.Context, input ports.CaseInput) (explorer.EntityPage[ports.CaseRecord], error) {
	return paginate(ctx, r, caseListing, input)
}

func (r *ExplorerRepository) ListReporters(ctx context.Context, input ports.ReporterInput) (explorer.EntityPage[ports.ReporterRecord], error) {
	return paginate(ctx, r, reporterListing, input)
}

func (r *ExplorerRepository) ListNetworks(ctx context.Context, input ports.NetworkInput) (explorer.EntityPage[ports.NetworkRecord], error) {
	return paginate(ctx, r, networkListing, input)
}

func mapAddress(row model.Address) ports.AddressRecord {
	return ports.AddressRecord{
		ID:            row.ID,
		Network:       row.Network,
		Address:       row.Address,
		CaseID:        row.CaseID,
		ReporterID:    row.ReporterID,
		Risk:          row.Risk,
		Category:      row.Category,
		Confirmations: row.Confirmations,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func mapAsset(row model.Asset) ports.AssetRecord {
	return ports.AssetRecord{
		ID:            row.ID,
		Network:       row.Network,
		Address:       row.Address,
		AssetID:       row.AssetID,
		CaseID:        row.CaseID,
		ReporterID:    row.ReporterID,
		Risk:          row.Risk,
		Category:      row.Category,
		Confirmations: row.Confirmations,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func mapCase(row model.Case) ports.CaseRecord {
	return ports.CaseRecord{
		ID:         row.ID,
		Network:    row.Network,
		CaseID:     row.CaseID,
		Name:       row.Name,
		URL:        row.URL,
		Status:     row.Status,
		ReporterID: row.ReporterID,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func mapReporter(row model.Reporter) ports.ReporterRecord {
	return ports.ReporterRecord{
		ID:              row.ID,
		Network:         row.Network,
		ReporterID:      row.ReporterID,
		Account:         row.Account,
		Role:            row.Role,
		Status:          row.Status,
		Name:            row.Name,
		URL:             row.URL,
		Stake:           row.Stake,
		UnlockTimestamp: row.UnlockTimestamp,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func mapNetwork(row model.Network) ports.NetworkRecord {
	return ports.NetworkRecord{
		ID:         row.ID,
		Name:       row.Name,
		Backend:    row.Backend,
		ChainID:    row.ChainID,
		Authority:  row.Authority,
		StakeToken: row.StakeToken,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
