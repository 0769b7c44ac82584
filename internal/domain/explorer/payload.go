package explorer

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PushData is one entity snapshot emitted by an indexer. The concrete types are
// AddressPayload, AssetPayload, CasePayload and ReporterPayload.
type PushData interface {
	Kind() Kind
	isPushData()
}

type AddressPayload struct {
	Address       string          `json:"address"`
	CaseID        uuid.UUID       `json:"case_id"`
	ReporterID    uuid.UUID       `json:"reporter_id"`
	Risk          uint8           `json:"risk"`
	Category      EnumValue       `json:"category"`
	Confirmations decimal.Decimal `json:"confirmations"`
}

type AssetPayload struct {
	Address       string          `json:"address"`
	AssetID       decimal.Decimal `json:"asset_id"`
	CaseID        uuid.UUID       `json:"case_id"`
	ReporterID    uuid.UUID       `json:"reporter_id"`
	Risk          uint8           `json:"risk"`
	Category      EnumValue       `json:"category"`
	Confirmations decimal.Decimal `json:"confirmations"`
}

type CasePayload struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Status     EnumValue `json:"status"`
	ReporterID uuid.UUID `json:"reporter_id"`
}

type ReporterPayload struct {
	ID              uuid.UUID       `json:"id"`
	Account         string          `json:"account"`
	Role            EnumValue       `json:"role"`
	Status          EnumValue       `json:"status"`
	Name            string          `json:"name"`
	URL             string          `json:"url"`
	Stake           decimal.Decimal `json:"stake"`
	UnlockTimestamp decimal.Decimal `json:"unlock_timestamp"`
}

func (AddressPayload) Kind() Kind  { return KindAddress }
func (AssetPayload) Kind() Kind    { return KindAsset }
func (CasePayload) Kind() Kind     { return KindCase }
func (ReporterPayload) Kind() Kind { return KindReporter }

func (AddressPayload) isPushData()  {}
func (AssetPayload) isPushData()    {}
func (CasePayload) isPushData()     {}
func (ReporterPayload) isPushData() {}

// PushEvent carries one payload together with the network it was observed on. The network
// travels next to the payload, never inside it.
type PushEvent struct {
	Network string
	Data    PushData
}

const (
	tagAddress  = "Address"
	tagAsset    = "Asset"
	tagCase     = "Case"
	tagReporter = "Reporter"
)

type pushEventJSON struct {
	Network string                     `json:"network"`
	Data    map[string]json.RawMessage `json:"data"`
}

// MarshalJSON renders the externally tagged form: {"network":"...","data":{"Address":{...}}}.
func (e PushEvent) MarshalJSON() ([]byte, error) {
	if e.Data == nil {
		return nil, fmt.Errorf("%w: empty push data", ErrUnknownPayloadKind)
	}

	tag, err := payloadTag(e.Data)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(e.Data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(pushEventJSON{
		Network: e.Network,
		Data:    map[string]json.RawMessage{tag: body},
	})
}

func (e *PushEvent) UnmarshalJSON(data []byte) error {
	var raw pushEventJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Data) != 1 {
		return fmt.Errorf("%w: push data must carry exactly one variant, got %d", ErrUnknownPayloadKind, len(raw.Data))
	}

	var tag string
	var body json.RawMessage
	for k, v := range raw.Data {
		tag, body = k, v
	}

	payload, err := decodePayload(tag, body)
	if err != nil {
		return err
	}

	e.Network = raw.Network
	e.Data = payload
	return nil
}

func payloadTag(data PushData) (string, error) {
	switch data.(type) {
	case AddressPayload, *AddressPayload:
		return tagAddress, nil
	case AssetPayload, *AssetPayload:
		return tagAsset, nil
	case CasePayload, *CasePayload:
		return tagCase, nil
	case ReporterPayload, *ReporterPayload:
		return tagReporter, nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnknownPayloadKind, data)
	}
}

func decodePayload(tag string, body json.RawMessage) (PushData, error) {
	switch tag {
	case tagAddress:
		var p AddressPayload
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", tag, err)
		}
		return p, nil
	case tagAsset:
		var p AssetPayload
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", tag, err)
		}
		return p, nil
	case tagCase:
		var p CasePayload
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", tag, err)
		}
		return p, nil
	case tagReporter:
		var p ReporterPayload
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", tag, err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPayloadKind, tag)
	}
}
