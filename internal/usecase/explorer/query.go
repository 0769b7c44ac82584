package explorer

import (
	"context"
	"time"

	domainexplorer "explorer/internal/domain/explorer"
	"explorer/internal/ports"
)

func (s *Service) ListAddresses(ctx context.Context, input ports.AddressInput) (domainexplorer.EntityPage[ports.AddressRecord], error) {
	return observeList(ctx, s, domainexplorer.KindAddress, input, s.repo.ListAddresses)
}

func (s *Service) ListAssets(ctx context.Context, input ports.AssetInput) (domainexplorer.EntityPage[ports.AssetRecord], error) {
	return observeList(ctx, s, domainexplorer.KindAsset, input, s.repo.ListAssets)
}

func (s *Service) ListCases(ctx context.Context, input ports.CaseInput) (domainexplorer.EntityPage[ports.CaseRecord], error) {
	return observeList(ctx, s, domainexplorer.KindCase, input, s.repo.ListCases)
}

func (s *Service) ListReporters(ctx context.Context, input ports.ReporterInput) (domainexplorer.EntityPage[ports.ReporterRecord], error) {
	return observeList(ctx, s, domainexplorer.KindReporter, input, s.repo.ListReporters)
}

func (s *Service) GetAddress(ctx context.Context, id string) (ports.AddressRecord, error) {
	return observeGet(ctx, s, domainexplorer.KindAddress, id, s.repo.GetAddress)
}

func (s *Service) GetAsset(ctx context.Context, id string) (ports.AssetRecord, error) {
	return observeGet(ctx, s, domainexplorer.KindAsset, id, s.repo.GetAsset)
}

func (s *Service) GetCase(ctx context.Context, id string) (ports.CaseRecord, error) {
	return observeGet(ctx, s, domainexplorer.KindCase, id, s.repo.GetCase)
}

func (s *Service) GetReporter(ctx context.Context, id string) (ports.ReporterRecord, error) {
	return observeGet(ctx, s, domainexplorer.KindReporter, id, s.repo.GetReporter)
}

func observeList[F any, C ~string, R any](
	ctx context.Context,
	s *Service,
	kind domainexplorer.Kind,
	input domainexplorer.EntityInput[F, C],
	list func(context.Context, domainexplorer.EntityInput[F, C]) (domainexplorer.EntityPage[R], error),
) (domainexplorer.EntityPage[R], error) {
	if err := s.checkReady(ctx); err != nil {
		return domainexplorer.EntityPage[R]{}, err
	}

	started := time.Now()
	page, err := list(ctx, input)
	s.observer.ObserveQuery(string(kind), outcomeOf(err), time.Since(started))
	return page, err
}

// observeGet rejects ids that cannot come from the codec before touching the store.
func observeGet[R any](
	ctx context.Context,
	s *Service,
	kind domainexplorer.Kind,
	id string,
	get func(context.Context, string) (R, error),
) (R, error) {
	var zero R
	if err := s.checkReady(ctx); err != nil {
		return zero, err
	}

	started := time.Now()
	if _, err := domainexplorer.ParseKey(kind, id); err != nil {
		s.observer.ObserveQuery(string(kind), outcomeOf(err), time.Since(started))
		return zero, err
	}
	record, err := get(ctx, id)
	s.observer.ObserveQuery(string(kind), outcomeOf(err), time.Since(started))
	return record, err
}
