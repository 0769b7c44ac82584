package repository

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"gorm.io/gorm"

	"explorer/internal/domain/explorer"
	"explorer/internal/errs"
)

// classify maps store errors onto the explorer error kinds. Anything unrecognised keeps its
// chain and only gains context.
func classify(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s: %w", explorer.ErrIdentityCollision, msg, err)
	case unavailable(err):
		return fmt.Errorf("%w: %s: %w", explorer.ErrStoreUnavailable, msg, err)
	default:
		return errs.Wrap(errs.WithStack(err), msg)
	}
}

func unavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
