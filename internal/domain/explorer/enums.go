package explorer

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// EnumDomain is a closed set of values with two stable spellings: the external name carried
// by payloads and the storage value of the database enumerated type. Index i of both slices
// is the same value.
type EnumDomain struct {
	typeName string
	external []string
	storage  []string
}

func newEnumDomain(typeName string, external []string, storage []string) *EnumDomain {
	if len(external) != len(storage) {
		panic(fmt.Sprintf("enum %s: %d external names for %d storage values", typeName, len(external), len(storage)))
	}
	return &EnumDomain{typeName: typeName, external: external, storage: storage}
}

// TypeName is the name of the database enumerated type.
func (d *EnumDomain) TypeName() string { return d.typeName }

func (d *EnumDomain) ExternalValues() []string { return append([]string(nil), d.external...) }

func (d *EnumDomain) StorageValues() []string { return append([]string(nil), d.storage...) }

func (d *EnumDomain) Len() int { return len(d.external) }

// parseExternal accepts the external name or its decimal discriminant.
func (d *EnumDomain) parseExternal(raw string) (int, error) {
	for i, name := range d.external {
		if name == raw {
			return i, nil
		}
	}
	if n, ok := parseDiscriminant(raw); ok && n < len(d.external) {
		return n, nil
	}
	return 0, fmt.Errorf("%w: %s %q", ErrUnknownEnumValue, d.typeName, raw)
}

// parseDiscriminant accepts canonical decimal only: ASCII digits with no sign, padding or
// leading zero.
func parseDiscriminant(raw string) (int, bool) {
	if raw == "" || len(raw) > 3 || (len(raw) > 1 && raw[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}

func (d *EnumDomain) parseStorage(raw string) (int, error) {
	for i, value := range d.storage {
		if value == raw {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: stored %s %q", ErrUnknownEnumValue, d.typeName, raw)
}

func (d *EnumDomain) externalName(i int) string {
	if i < 0 || i >= len(d.external) {
		return fmt.Sprintf("%s(%d)", d.typeName, i)
	}
	return d.external[i]
}

func (d *EnumDomain) storageValue(i int) (string, error) {
	if i < 0 || i >= len(d.storage) {
		return "", fmt.Errorf("%w: %s(%d)", ErrUnknownEnumValue, d.typeName, i)
	}
	return d.storage[i], nil
}

func parseEnum[T ~uint8](d *EnumDomain, raw string) (T, error) {
	i, err := d.parseExternal(raw)
	if err != nil {
		return 0, err
	}
	return T(i), nil
}

func enumFromStorage[T ~uint8](d *EnumDomain, raw string) (T, error) {
	i, err := d.parseStorage(raw)
	if err != nil {
		return 0, err
	}
	return T(i), nil
}

func enumValues[T ~uint8](d *EnumDomain) []T {
	out := make([]T, 0, d.Len())
	for i := 0; i < d.Len(); i++ {
		out = append(out, T(i))
	}
	return out
}

func scanEnum[T ~uint8](d *EnumDomain, dst *T, src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("scan %s: unsupported source %T", d.typeName, src)
	}
	parsed, err := enumFromStorage[T](d, raw)
	if err != nil {
		return err
	}
	*dst = parsed
	return nil
}

func unmarshalEnum[T ~uint8](d *EnumDomain, dst *T, data []byte) error {
	var raw EnumValue
	if err := raw.UnmarshalJSON(data); err != nil {
		return err
	}
	parsed, err := parseEnum[T](d, string(raw))
	if err != nil {
		return err
	}
	*dst = parsed
	return nil
}

func marshalEnum(d *EnumDomain, i int) ([]byte, error) {
	if i < 0 || i >= d.Len() {
		return nil, fmt.Errorf("%w: %s(%d)", ErrUnknownEnumValue, d.typeName, i)
	}
	return json.Marshal(d.external[i])
}

func enumValue(d *EnumDomain, i int) (driver.Value, error) {
	return d.storageValue(i)
}

// EnumValue is an enumerated field exactly as the payload carried it: the external name, or
// the small-integer discriminant rendered in decimal. Mapping resolves it against a domain.
type EnumValue string

func (v *EnumValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = EnumValue(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownEnumValue, string(trimmed))
	}
	*v = EnumValue(n.String())
	return nil
}
