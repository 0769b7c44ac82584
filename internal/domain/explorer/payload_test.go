package explorer

import (
	"encoding/json"
	"errors"
	"testing"
)

const addressEventJSON = `{
	"network": "Ethereum",
	"data": {
		"Address": {
			"address": "0xabc",
			"case_id": "8f2b7a43-5c55-4a5a-9c3c-0d7f0f8d1a11",
			"reporter_id": "1d6c1c2e-3b7e-4c4a-8b7e-2f3e0a9b5c22",
			"risk": 3,
			"category": "Scam",
			"confirmations": "5"
		}
	}
}`

func TestPushEventDecodesTaggedVariant(t *testing.T) {
	var event PushEvent
	if err := json.Unmarshal([]byte(addressEventJSON), &event); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if event.Network != "Ethereum" {
		t.Fatalf("network = %q", event.Network)
	}
	p, ok := event.Data.(AddressPayload)
	if !ok {
		t.Fatalf("data = %T, want AddressPayload", event.Data)
	}
	if p.Address != "0xabc" || p.Risk != 3 || p.Category != "Scam" || p.Confirmations.String() != "5" {
		t.Fatalf("payload = %+v", p)
	}

	raw, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var again PushEvent
	if err := json.Unmarshal(raw, &again); err != nil {
		t.Fatalf("json.Unmarshal(again) error = %v", err)
	}
	if again.Data.Kind() != KindAddress {
		t.Fatalf("re-decoded kind = %s", again.Data.Kind())
	}
}

func TestPushEventAcceptsNumericEnumAndQuantity(t *testing.T) {
	raw := `{"network":"Near","data":{"Reporter":{"id":"1d6c1c2e-3b7e-4c4a-8b7e-2f3e0a9b5c22","account":"r.near","role":1,"status":"Active","name":"r","url":"u","stake":1000000000000000000000000,"unlock_timestamp":0}}}`
	var event PushEvent
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	p := event.Data.(ReporterPayload)
	if p.Role != "1" || p.Stake.String() != "1000000000000000000000000" {
		t.Fatalf("payload = %+v", p)
	}
}

func TestPushEventRejectsUnknownShapes(t *testing.T) {
	cases := []string{
		`{"network":"Ethereum","data":{"Wallet":{}}}`,
		`{"network":"Ethereum","data":{}}`,
		`{"network":"Ethereum","data":{"Address":{},"Case":{}}}`,
	}
	for _, raw := range cases {
		var event PushEvent
		if err := json.Unmarshal([]byte(raw), &event); !errors.Is(err, ErrUnknownPayloadKind) {
			t.Fatalf("json.Unmarshal(%s) error = %v, want ErrUnknownPayloadKind", raw, err)
		}
	}

	if _, err := json.Marshal(PushEvent{Network: "Ethereum"}); err == nil {
		t.Fatalf("json.Marshal(empty data) expected error")
	}
}
