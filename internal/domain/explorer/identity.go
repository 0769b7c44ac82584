package explorer

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// KeySeparator joins the network and natural key parts of a composed id.
const KeySeparator = "."

// Kind names an entity kind stored under a composed id.
type Kind string

const (
	KindAddress  Kind = "address"
	KindAsset    Kind = "asset"
	KindCase     Kind = "case"
	KindReporter Kind = "reporter"
)

// Kinds lists every kind with a composed identity, in schema order.
var Kinds = []Kind{KindReporter, KindCase, KindAddress, KindAsset}

// Arity is the number of natural key parts following the network.
func (k Kind) Arity() int {
	switch k {
	case KindAddress, KindCase, KindReporter:
		return 1
	case KindAsset:
		return 2
	default:
		return 0
	}
}

func (k Kind) Valid() bool { return k.Arity() > 0 }

// Key is the structured form of a composed id. String() is its projection at the storage and
// API boundary; the parts never contain KeySeparator.
type Key struct {
	Network string
	Kind    Kind
	Parts   []string
}

// NewKey validates arity and separator-safety before building a key.
func NewKey(network string, kind Kind, parts ...string) (Key, error) {
	if !kind.Valid() {
		return Key{}, fmt.Errorf("%w: unsupported kind %q", ErrInvalidNaturalKey, kind)
	}
	if len(parts) != kind.Arity() {
		return Key{}, fmt.Errorf("%w: %s key needs %d parts, got %d", ErrInvalidNaturalKey, kind, kind.Arity(), len(parts))
	}
	if err := ValidateNetworkName(network); err != nil {
		return Key{}, err
	}
	for i, part := range parts {
		if err := validateKeyPart(part); err != nil {
			return Key{}, fmt.Errorf("%s key part %d: %w", kind, i, err)
		}
	}

	cloned := make([]string, len(parts))
	copy(cloned, parts)
	return Key{Network: network, Kind: kind, Parts: cloned}, nil
}

func (k Key) String() string {
	return Compose(k.Network, k.Kind, k.Parts...)
}

// Compose joins network and natural key parts with KeySeparator. The kind does not appear in
// the output: every kind lives in its own table, so uniqueness only has to hold per kind.
func Compose(network string, _ Kind, parts ...string) string {
	var b strings.Builder
	b.WriteString(network)
	for _, part := range parts {
		b.WriteString(KeySeparator)
		b.WriteString(part)
	}
	return b.String()
}

// ParseKey is the inverse of Compose for a known kind.
func ParseKey(kind Kind, id string) (Key, error) {
	if !kind.Valid() {
		return Key{}, fmt.Errorf("%w: unsupported kind %q", ErrInvalidNaturalKey, kind)
	}

	pieces := strings.Split(id, KeySeparator)
	if len(pieces) != kind.Arity()+1 {
		return Key{}, fmt.Errorf("%w: %q is not a %s id", ErrInvalidNaturalKey, id, kind)
	}
	return NewKey(pieces[0], kind, pieces[1:]...)
}

func AddressKey(network string, address string) (Key, error) {
	return NewKey(network, KindAddress, address)
}

func AssetKey(network string, address string, assetID string) (Key, error) {
	return NewKey(network, KindAsset, address, assetID)
}

func CaseKey(network string, caseID uuid.UUID) (Key, error) {
	return NewKey(network, KindCase, caseID.String())
}

func ReporterKey(network string, reporterID uuid.UUID) (Key, error) {
	return NewKey(network, KindReporter, reporterID.String())
}

// ValidateNetworkName checks a network tag can lead a composed id.
func ValidateNetworkName(network string) error {
	if err := validateKeyPart(network); err != nil {
		return fmt.Errorf("network: %w", err)
	}
	return nil
}

func validateKeyPart(part string) error {
	if strings.TrimSpace(part) == "" {
		return fmt.Errorf("%w: empty part", ErrInvalidNaturalKey)
	}
	if part != strings.TrimSpace(part) {
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidNaturalKey, part)
	}
	if strings.Contains(part, KeySeparator) {
		return fmt.Errorf("%w: %q contains %q", ErrInvalidNaturalKey, part, KeySeparator)
	}
	return nil
}
