package explorer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"explorer/internal/bootstrap/logging"
	domainexplorer "explorer/internal/domain/explorer"
	"explorer/internal/ports"
)

// RegisterNetworks upserts the given networks in one transaction.
func (s *Service) RegisterNetworks(ctx context.Context, networks []ports.NetworkRecord) error {
	if err := s.checkReady(ctx); err != nil {
		return err
	}
	if s.uow == nil {
		return errors.New("explorer unit of work is required")
	}

	seen := make(map[string]struct{}, len(networks))
	for i := range networks {
		n := &networks[i]
		n.ID = strings.TrimSpace(n.ID)
		if err := domainexplorer.ValidateNetworkName(n.ID); err != nil {
			return fmt.Errorf("network %d: %w", i, err)
		}
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("%w: network %q listed twice", domainexplorer.ErrInvalidNaturalKey, n.ID)
		}
		seen[n.ID] = struct{}{}
		if n.Name == "" {
			n.Name = n.ID
		}
		if !n.Backend.Valid() {
			return fmt.Errorf("%w: network %q backend %d", domainexplorer.ErrUnknownEnumValue, n.ID, n.Backend)
		}
	}

	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		for _, n := range networks {
			if err := s.repo.UpsertNetwork(txCtx, n); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}

	logging.Info(
		logging.WithAttrs(ctx, slog.String("component", "usecase.explorer")),
		"networks registered",
		slog.Int("count", len(networks)),
	)
	return nil
}

func (s *Service) ListNetworks(ctx context.Context, input ports.NetworkInput) (domainexplorer.EntityPage[ports.NetworkRecord], error) {
	return observeList(ctx, s, "network", input, s.repo.ListNetworks)
}

func (s *Service) GetNetwork(ctx context.Context, id string) (ports.NetworkRecord, error) {
	if err := s.checkReady(ctx); err != nil {
		return ports.NetworkRecord{}, err
	}
	if err := domainexplorer.ValidateNetworkName(id); err != nil {
		return ports.NetworkRecord{}, err
	}
	return s.repo.GetNetwork(ctx, id)
}
