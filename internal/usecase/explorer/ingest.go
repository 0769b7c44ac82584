package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"explorer/internal/bootstrap/logging"
	domainexplorer "explorer/internal/domain/explorer"
	"explorer/internal/errs"
	"explorer/internal/ports"
)

const pushStatusKeyPrefix = "push_status:"

type IngestResult struct {
	Network string              `json:"network"`
	Kind    domainexplorer.Kind `json:"kind"`
	ID      string              `json:"id"`
}

// NetworkStatus describes the last push accepted for a network.
type NetworkStatus struct {
	Network  string              `json:"network"`
	LastKind domainexplorer.Kind `json:"last_kind"`
	LastID   string              `json:"last_id"`
	PushedAt time.Time           `json:"pushed_at"`
}

// Ingest maps one push event and upserts the record. Repeated delivery converges on the same row.
func (s *Service) Ingest(ctx context.Context, event domainexplorer.PushEvent) (IngestResult, error) {
	if err := s.checkReady(ctx); err != nil {
		return IngestResult{}, err
	}

	result, err := s.ingest(ctx, event)
	s.observer.ObserveIngest(event.Network, kindLabel(event.Data), outcomeOf(err))
	if err != nil {
		return IngestResult{}, err
	}

	s.recordPush(ctx, result)
	return result, nil
}

// IngestBatch maps every event before writing any, then upserts them in one transaction.
// The first invalid event rejects the whole batch.
func (s *Service) IngestBatch(ctx context.Context, events []domainexplorer.PushEvent) ([]IngestResult, error) {
	if err := s.checkReady(ctx); err != nil {
		return nil, err
	}
	if s.uow == nil {
		return nil, errors.New("explorer unit of work is required")
	}

	records := make([]ports.EntityRecord, 0, len(events))
	for i, event := range events {
		record, err := MapPayload(event.Network, event.Data)
		if err != nil {
			s.observer.ObserveIngest(event.Network, kindLabel(event.Data), outcomeOf(err))
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		records = append(records, record)
	}

	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		for _, record := range records {
			if err := s.write(txCtx, record); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		for _, event := range events {
			s.observer.ObserveIngest(event.Network, kindLabel(event.Data), ports.OutcomeFailed)
		}
		return nil, err
	}

	results := make([]IngestResult, 0, len(records))
	for i, record := range records {
		s.observer.ObserveIngest(events[i].Network, string(record.EntityKind()), ports.OutcomeOK)
		result := IngestResult{Network: events[i].Network, Kind: record.EntityKind(), ID: record.EntityID()}
		s.recordPush(ctx, result)
		results = append(results, result)
	}
	return results, nil
}

func (s *Service) ingest(ctx context.Context, event domainexplorer.PushEvent) (IngestResult, error) {
	record, err := MapPayload(event.Network, event.Data)
	if err != nil {
		return IngestResult{}, err
	}
	if err := s.write(ctx, record); err != nil {
		return IngestResult{}, err
	}

	logging.Info(
		logging.WithAttrs(ctx, slog.String("component", "usecase.explorer")),
		"push event ingested",
		slog.String("network", event.Network),
		slog.String("kind", string(record.EntityKind())),
		slog.String("id", record.EntityID()),
	)
	return IngestResult{Network: event.Network, Kind: record.EntityKind(), ID: record.EntityID()}, nil
}

func (s *Service) write(ctx context.Context, record ports.EntityRecord) error {
	switch r := record.(type) {
	case ports.AddressRecord:
		return s.repo.UpsertAddress(ctx, r)
	case ports.AssetRecord:
		return s.repo.UpsertAsset(ctx, r)
	case ports.CaseRecord:
		return s.repo.UpsertCase(ctx, r)
	case ports.ReporterRecord:
		return s.repo.UpsertReporter(ctx, r)
	default:
		return fmt.Errorf("%w: record %T", domainexplorer.ErrUnknownPayloadKind, record)
	}
}

// recordPush remembers the last push per network. The entity is already stored, so a cache
// failure is logged and does not fail the ingest.
func (s *Service) recordPush(ctx context.Context, result IngestResult) {
	if s.cache == nil {
		return
	}

	status := NetworkStatus{
		Network:  result.Network,
		LastKind: result.Kind,
		LastID:   result.ID,
		PushedAt: s.now().UTC(),
	}
	raw, err := json.Marshal(status)
	if err == nil {
		err = s.cache.Set(ctx, pushStatusKeyPrefix+result.Network, string(raw), 0)
	}
	if err != nil {
		logging.Warn(
			logging.WithAttrs(ctx, slog.String("component", "usecase.explorer")),
			"record push status failed",
			slog.String("network", result.Network),
			slog.Any("err", errs.Loggable(err)),
		)
	}
}

// NetworkStatus returns the last push recorded for network, or ErrNotFound.
func (s *Service) NetworkStatus(ctx context.Context, network string) (NetworkStatus, error) {
	if ctx == nil {
		return NetworkStatus{}, errors.New("context is required")
	}
	if err := domainexplorer.ValidateNetworkName(network); err != nil {
		return NetworkStatus{}, err
	}
	if s.cache == nil {
		return NetworkStatus{}, errors.New("explorer cache is required")
	}

	raw, found, err := s.cache.Get(ctx, pushStatusKeyPrefix+network)
	if err != nil {
		return NetworkStatus{}, errs.Wrap(err, "read push status")
	}
	if !found {
		return NetworkStatus{}, fmt.Errorf("%w: no push recorded for network %q", domainexplorer.ErrNotFound, network)
	}

	var status NetworkStatus
	if err := json.Unmarshal([]byte(raw), &status); err != nil {
		return NetworkStatus{}, errs.Wrap(err, "decode push status")
	}
	return status, nil
}

func kindLabel(data domainexplorer.PushData) string {
	if data == nil {
		return "unknown"
	}
	if v := reflect.ValueOf(data); v.Kind() == reflect.Pointer && v.IsNil() {
		return "unknown"
	}
	return string(data.Kind())
}
