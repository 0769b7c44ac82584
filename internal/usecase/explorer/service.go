package explorer

import (
	"context"
	"errors"
	"time"

	domainexplorer "explorer/internal/domain/explorer"
	"explorer/internal/errs"
	"explorer/internal/ports"
)

type Service struct {
	repo     ports.ExplorerRepository
	uow      ports.UnitOfWork
	cache    ports.Cache
	observer ports.Observer
	now      func() time.Time
}

// NewService wires explorer usecases. cache and observer are optional.
func NewService(repo ports.ExplorerRepository, uow ports.UnitOfWork, cache ports.Cache, observer ports.Observer) *Service {
	if observer == nil {
		observer = ports.NopObserver{}
	}
	return &Service{
		repo:     repo,
		uow:      uow,
		cache:    cache,
		observer: observer,
		now:      time.Now,
	}
}

func (s *Service) checkReady(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return errors.New("explorer repository is required")
	}
	return nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return ports.OutcomeOK
	case domainexplorer.IsInvalidInput(err):
		return ports.OutcomeRejected
	default:
		return ports.OutcomeFailed
	}
}
