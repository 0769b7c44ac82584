package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	domainexplorer "explorer/internal/domain/explorer"
	"explorer/internal/ports"
)

const eventLines = `{"network":"Ethereum","data":{"Address":{"address":"0xabc","case_id":"8f2b7a43-5c55-4a5a-9c3c-0d7f0f8d1a11","reporter_id":"1d6c1c2e-3b7e-4c4a-8b7e-2f3e0a9b5c22","risk":3,"category":"Scam","confirmations":"5"}}}
{"network":"Near","data":{"Case":{"id":"8f2b7a43-5c55-4a5a-9c3c-0d7f0f8d1a11","name":"Drainer","url":"https://case.example","status":"Open","reporter_id":"1d6c1c2e-3b7e-4c4a-8b7e-2f3e0a9b5c22"}}}
`

func TestReadEventsFromStdin(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader(eventLines))

	events, err := readEvents(cmd, "-")
	if err != nil {
		t.Fatalf("readEvents() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("readEvents() = %d events, want 2", len(events))
	}
	if events[0].Data.Kind() != domainexplorer.KindAddress || events[1].Data.Kind() != domainexplorer.KindCase {
		t.Fatalf("readEvents() kinds = %s %s", events[0].Data.Kind(), events[1].Data.Kind())
	}
}

func TestReadEventsRejectsBadInput(t *testing.T) {
	cmd := &cobra.Command{}
	if _, err := readEvents(cmd, ""); err == nil {
		t.Fatalf("readEvents(no path) error = nil")
	}

	cmd.SetIn(strings.NewReader(`{"network":"Ethereum","data":{"Token":{}}}`))
	if _, err := readEvents(cmd, "-"); err == nil {
		t.Fatalf("readEvents(unknown variant) error = nil")
	}

	cmd.SetIn(strings.NewReader("\n"))
	if _, err := readEvents(cmd, "-"); err == nil {
		t.Fatalf("readEvents(empty) error = nil")
	}
}

func TestQueryValues(t *testing.T) {
	cmd := &cobra.Command{}
	addQueryFlags(cmd)
	if err := cmd.ParseFlags([]string{"--where", "network=Ethereum", "--where", "category=Scam", "--order-by", "risk", "--ordering", "desc", "--page", "2"}); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	q, err := queryValues(cmd)
	if err != nil {
		t.Fatalf("queryValues() error = %v", err)
	}
	if q.Get("network") != "Ethereum" || q.Get("category") != "Scam" || q.Get("order_by") != "risk" {
		t.Fatalf("queryValues() = %v", q)
	}
	if q.Get("ordering") != "desc" || q.Get("page_num") != "2" || q.Get("page_size") != "25" {
		t.Fatalf("queryValues() paging = %v", q)
	}

	bad := &cobra.Command{}
	addQueryFlags(bad)
	_ = bad.ParseFlags([]string{"--where", "network"})
	if _, err := queryValues(bad); err == nil {
		t.Fatalf("queryValues(no '=') error = nil")
	}
}

func TestRenderNetworkTable(t *testing.T) {
	chainID := "1"
	headers, rows := networkTable([]ports.NetworkRecord{{
		ID:      "Ethereum",
		Name:    "Ethereum Mainnet",
		Backend: domainexplorer.BackendEvm,
		ChainID: &chainID,
	}})

	var buf bytes.Buffer
	if err := renderTable(&buf, headers, rows); err != nil {
		t.Fatalf("renderTable() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"BACKEND", "Ethereum Mainnet", "Evm"} {
		if !strings.Contains(out, want) {
			t.Fatalf("renderTable() output missing %q:\n%s", want, out)
		}
	}
}
