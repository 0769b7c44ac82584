package explorer

import "errors"

var (
	ErrUnknownEnumValue       = errors.New("unknown enum value")
	ErrUnknownPayloadKind     = errors.New("unknown payload kind")
	ErrInvalidNaturalKey      = errors.New("invalid natural key")
	ErrInvalidQuantity        = errors.New("invalid quantity")
	ErrInvalidPaginationInput = errors.New("invalid pagination input")
	ErrInvalidOrdering        = errors.New("invalid ordering")
	ErrNotFound               = errors.New("entity not found")

	// ErrIdentityCollision means the store rejected a write on a duplicate key that the
	// upsert should have absorbed. It is a programming error, never retried.
	ErrIdentityCollision = errors.New("identity collision violates invariant")

	ErrMigrationUnitFailed = errors.New("migration unit failed")
	ErrStoreUnavailable    = errors.New("store unavailable")
)

// IsInvalidInput reports whether err was caused by the caller's input rather than the store.
func IsInvalidInput(err error) bool {
	for _, target := range []error{
		ErrUnknownEnumValue,
		ErrUnknownPayloadKind,
		ErrInvalidNaturalKey,
		ErrInvalidQuantity,
		ErrInvalidPaginationInput,
		ErrInvalidOrdering,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
