package explorer

import (
	"fmt"

	"github.com/shopspring/decimal"

	domainexplorer "explorer/internal/domain/explorer"
	"explorer/internal/ports"
)

// MapPayload turns one payload observed on network into the record to upsert. It does no I/O:
// the id comes from the natural key, enumerated fields are resolved against their domains and
// big quantities become decimal strings.
func MapPayload(network string, data domainexplorer.PushData) (ports.EntityRecord, error) {
	switch p := data.(type) {
	case domainexplorer.AddressPayload:
		return asRecord(mapAddress(network, p))
	case *domainexplorer.AddressPayload:
		if p == nil {
			return nil, nilPayload(data)
		}
		return asRecord(mapAddress(network, *p))
	case domainexplorer.AssetPayload:
		return asRecord(mapAsset(network, p))
	case *domainexplorer.AssetPayload:
		if p == nil {
			return nil, nilPayload(data)
		}
		return asRecord(mapAsset(network, *p))
	case domainexplorer.CasePayload:
		return asRecord(mapCase(network, p))
	case *domainexplorer.CasePayload:
		if p == nil {
			return nil, nilPayload(data)
		}
		return asRecord(mapCase(network, *p))
	case domainexplorer.ReporterPayload:
		return asRecord(mapReporter(network, p))
	case *domainexplorer.ReporterPayload:
		if p == nil {
			return nil, nilPayload(data)
		}
		return asRecord(mapReporter(network, *p))
	default:
		return nil, fmt.Errorf("%w: %T", domainexplorer.ErrUnknownPayloadKind, data)
	}
}

func asRecord[R ports.EntityRecord](record R, err error) (ports.EntityRecord, error) {
	if err != nil {
		return nil, err
	}
	return record, nil
}

func nilPayload(data domainexplorer.PushData) error {
	return fmt.Errorf("%w: nil %T", domainexplorer.ErrUnknownPayloadKind, data)
}

func mapAddress(network string, p domainexplorer.AddressPayload) (ports.AddressRecord, error) {
	key, err := domainexplorer.AddressKey(network, p.Address)
	if err != nil {
		return ports.AddressRecord{}, err
	}
	category, err := domainexplorer.ParseCategory(string(p.Category))
	if err != nil {
		return ports.AddressRecord{}, err
	}
	confirmations, err := quantity("confirmations", p.Confirmations)
	if err != nil {
		return ports.AddressRecord{}, err
	}

	return ports.AddressRecord{
		ID:            key.String(),
		Network:       network,
		Address:       p.Address,
		CaseID:        p.CaseID,
		ReporterID:    p.ReporterID,
		Risk:          int16(p.Risk),
		Category:      category,
		Confirmations: confirmations,
	}, nil
}

func mapAsset(network string, p domainexplorer.AssetPayload) (ports.AssetRecord, error) {
	assetID, err := quantity("asset_id", p.AssetID)
	if err != nil {
		return ports.AssetRecord{}, err
	}
	key, err := domainexplorer.AssetKey(network, p.Address, assetID)
	if err != nil {
		return ports.AssetRecord{}, err
	}
	category, err := domainexplorer.ParseCategory(string(p.Category))
	if err != nil {
		return ports.AssetRecord{}, err
	}
	confirmations, err := quantity("confirmations", p.Confirmations)
	if err != nil {
		return ports.AssetRecord{}, err
	}

	return ports.AssetRecord{
		ID:            key.String(),
		Network:       network,
		Address:       p.Address,
		AssetID:       assetID,
		CaseID:        p.CaseID,
		ReporterID:    p.ReporterID,
		Risk:          int16(p.Risk),
		Category:      category,
		Confirmations: confirmations,
	}, nil
}

func mapCase(network string, p domainexplorer.CasePayload) (ports.CaseRecord, error) {
	key, err := domainexplorer.CaseKey(network, p.ID)
	if err != nil {
		return ports.CaseRecord{}, err
	}
	status, err := domainexplorer.ParseCaseStatus(string(p.Status))
	if err != nil {
		return ports.CaseRecord{}, err
	}

	return ports.CaseRecord{
		ID:         key.String(),
		Network:    network,
		CaseID:     p.ID,
		Name:       p.Name,
		URL:        p.URL,
		Status:     status,
		ReporterID: p.ReporterID,
	}, nil
}

func mapReporter(network string, p domainexplorer.ReporterPayload) (ports.ReporterRecord, error) {
	key, err := domainexplorer.ReporterKey(network, p.ID)
	if err != nil {
		return ports.ReporterRecord{}, err
	}
	role, err := domainexplorer.ParseReporterRole(string(p.Role))
	if err != nil {
		return ports.ReporterRecord{}, err
	}
	status, err := domainexplorer.ParseReporterStatus(string(p.Status))
	if err != nil {
		return ports.ReporterRecord{}, err
	}
	stake, err := quantity("stake", p.Stake)
	if err != nil {
		return ports.ReporterRecord{}, err
	}
	unlock, err := quantity("unlock_timestamp", p.UnlockTimestamp)
	if err != nil {
		return ports.ReporterRecord{}, err
	}

	return ports.ReporterRecord{
		ID:              key.String(),
		Network:         network,
		ReporterID:      p.ID,
		Account:         p.Account,
		Role:            role,
		Status:          status,
		Name:            p.Name,
		URL:             p.URL,
		Stake:           stake,
		UnlockTimestamp: unlock,
	}, nil
}

// quantity renders an unsigned integer amount in decimal without exponent or fraction.
func quantity(field string, d decimal.Decimal) (string, error) {
	if d.IsNegative() {
		return "", fmt.Errorf("%w: %s %s is negative", domainexplorer.ErrInvalidQuantity, field, d.String())
	}
	if !d.Equal(d.Truncate(0)) {
		return "", fmt.Errorf("%w: %s %s is not an integer", domainexplorer.ErrInvalidQuantity, field, d.String())
	}
	return d.Truncate(0).String(), nil
}
