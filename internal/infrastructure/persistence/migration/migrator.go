package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"explorer/internal/bootstrap/logging"
	"explorer/internal/domain/explorer"
	"explorer/internal/errs"
	"explorer/internal/infrastructure/persistence/model"
)

// Migrator applies and reverts units against one database. Every unit runs in its own
// transaction together with its bookkeeping row, so a failed unit leaves no trace.
type Migrator struct {
	db    *gorm.DB
	units []Unit
	now   func() time.Time
}

// UnitStatus reports whether one unit is applied.
type UnitStatus struct {
	Version   string     `json:"version"`
	Name      string     `json:"name"`
	Applied   bool       `json:"applied"`
	AppliedAt *time.Time `json:"applied_at,omitempty"`
}

func New(db *gorm.DB, units []Unit) (*Migrator, error) {
	if db == nil {
		return nil, errors.New("database is required")
	}
	seen := make(map[string]struct{}, len(units))
	for _, u := range units {
		if u.Version == "" || u.Up == nil || u.Down == nil {
			return nil, fmt.Errorf("migration unit %q is incomplete", u.ID())
		}
		if _, dup := seen[u.Version]; dup {
			return nil, fmt.Errorf("duplicate migration version %q", u.Version)
		}
		seen[u.Version] = struct{}{}
	}
	return &Migrator{db: db, units: units, now: time.Now}, nil
}

// NewDefault returns a migrator over Units().
func NewDefault(db *gorm.DB) (*Migrator, error) {
	return New(db, Units())
}

func (m *Migrator) Units() []Unit {
	return append([]Unit(nil), m.units...)
}

// Up applies pending units in order. A non-empty through stops after that unit (matched by
// version or by id). Already applied units are skipped.
func (m *Migrator) Up(ctx context.Context, through string) error {
	last, err := m.indexOf(through, len(m.units)-1)
	if err != nil {
		return err
	}
	dialect, err := DialectOf(m.db)
	if err != nil {
		return err
	}
	if err := m.ensureBookkeeping(ctx); err != nil {
		return err
	}
	applied, err := m.applied(ctx)
	if err != nil {
		return err
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "persistence.migration"), slog.String("dialect", string(dialect)))
	count := 0
	for _, unit := range m.units[:last+1] {
		if _, ok := applied[unit.Version]; ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return errs.Wrap(err, "check context")
		}

		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := unit.Up(tx, dialect); err != nil {
				return err
			}
			return tx.Create(&model.SchemaMigration{
				Version:   unit.Version,
				Name:      unit.Name,
				AppliedAt: m.now().UTC(),
			}).Error
		})
		if err != nil {
			logging.Error(logCtx, "migration unit failed", slog.String("unit", unit.ID()), slog.Any("err", errs.Loggable(err)))
			return fmt.Errorf("%w: up %s: %w", explorer.ErrMigrationUnitFailed, unit.ID(), err)
		}
		logging.Info(logCtx, "migration unit applied", slog.String("unit", unit.ID()))
		count++
	}

	logging.Info(logCtx, "migrate up completed", slog.Int("applied", count))
	return nil
}

// Down reverts applied units in reverse order. A non-empty through is the last unit to
// revert; an empty one reverts everything.
func (m *Migrator) Down(ctx context.Context, through string) error {
	first, err := m.indexOf(through, 0)
	if err != nil {
		return err
	}
	dialect, err := DialectOf(m.db)
	if err != nil {
		return err
	}
	if err := m.ensureBookkeeping(ctx); err != nil {
		return err
	}
	applied, err := m.applied(ctx)
	if err != nil {
		return err
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "persistence.migration"), slog.String("dialect", string(dialect)))
	count := 0
	for i := len(m.units) - 1; i >= first; i-- {
		unit := m.units[i]
		if _, ok := applied[unit.Version]; !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return errs.Wrap(err, "check context")
		}

		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := unit.Down(tx, dialect); err != nil {
				return err
			}
			return tx.Where("version = ?", unit.Version).Delete(&model.SchemaMigration{}).Error
		})
		if err != nil {
			logging.Error(logCtx, "migration unit revert failed", slog.String("unit", unit.ID()), slog.Any("err", errs.Loggable(err)))
			return fmt.Errorf("%w: down %s: %w", explorer.ErrMigrationUnitFailed, unit.ID(), err)
		}
		logging.Info(logCtx, "migration unit reverted", slog.String("unit", unit.ID()))
		count++
	}

	logging.Info(logCtx, "migrate down completed", slog.Int("reverted", count))
	return nil
}

// Status lists every unit in order with its applied state.
func (m *Migrator) Status(ctx context.Context) ([]UnitStatus, error) {
	if err := m.ensureBookkeeping(ctx); err != nil {
		return nil, err
	}
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]UnitStatus, 0, len(m.units))
	for _, unit := range m.units {
		status := UnitStatus{Version: unit.Version, Name: unit.Name}
		if row, ok := applied[unit.Version]; ok {
			at := row.AppliedAt
			status.Applied = true
			status.AppliedAt = &at
		}
		out = append(out, status)
	}
	return out, nil
}

func (m *Migrator) indexOf(through string, fallback int) (int, error) {
	if through == "" {
		return fallback, nil
	}
	for i, u := range m.units {
		if u.Version == through || u.ID() == through {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown migration unit %q", through)
}

func (m *Migrator) ensureBookkeeping(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	if err := m.db.WithContext(ctx).AutoMigrate(&model.SchemaMigration{}); err != nil {
		return errs.Wrap(err, "ensure schema_migrations")
	}
	return nil
}

func (m *Migrator) applied(ctx context.Context) (map[string]model.SchemaMigration, error) {
	var rows []model.SchemaMigration
	if err := m.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "load applied migrations")
	}
	out := make(map[string]model.SchemaMigration, len(rows))
	for _, row := range rows {
		out[row.Version] = row
	}
	return out, nil
}
