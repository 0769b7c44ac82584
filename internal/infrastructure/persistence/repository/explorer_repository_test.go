package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"explorer/internal/domain/explorer"
	"explorer/internal/infrastructure/persistence/model"
	"explorer/internal/infrastructure/persistence/uow"
	"explorer/internal/ports"
	"explorer/internal/testutil"
)

func setupExplorerRepository(t *testing.T) (*ExplorerRepository, *gorm.DB) {
	t.Helper()

	db := testutil.OpenMigratedDB(t)
	return NewExplorerRepository(db), db
}

func addressRecord(network string, address string, risk int16, category explorer.Category) ports.AddressRecord {
	return ports.AddressRecord{
		ID:            network + "." + address,
		Network:       network,
		Address:       address,
		CaseID:        uuid.MustParse("8f2b7a43-5c55-4a5a-9c3c-0d7f0f8d1a11"),
		ReporterID:    uuid.MustParse("1d6c1c2e-3b7e-4c4a-8b7e-2f3e0a9b5c22"),
		Risk:          risk,
		Category:      category,
		Confirmations: "5",
	}
}

func ptr[T any](v T) *T { return &v }

func TestUpsertAddressInsertsThenUpdatesInPlace(t *testing.T) {
	repo, db := setupExplorerRepository(t)
	ctx := context.Background()

	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return first }

	record := addressRecord("Ethereum", "0xabc", 3, explorer.CategoryScam)
	if err := repo.UpsertAddress(ctx, record); err != nil {
		t.Fatalf("UpsertAddress() error = %v", err)
	}
	if err := repo.UpsertAddress(ctx, record); err != nil {
		t.Fatalf("UpsertAddress(repeat) error = %v", err)
	}

	second := first.Add(time.Hour)
	repo.now = func() time.Time { return second }
	record.Risk = 7
	record.Confirmations = "12"
	if err := repo.UpsertAddress(ctx, record); err != nil {
		t.Fatalf("UpsertAddress(update) error = %v", err)
	}

	var count int64
	if err := db.Model(&model.Address{}).Count(&count).Error; err != nil {
		t.Fatalf("count address: %v", err)
	}
	if count != 1 {
		t.Fatalf("address rows = %d, want 1", count)
	}

	got, err := repo.GetAddress(ctx, "Ethereum.0xabc")
	if err != nil {
		t.Fatalf("GetAddress() error = %v", err)
	}
	if got.Risk != 7 || got.Confirmations != "12" || got.Category != explorer.CategoryScam {
		t.Fatalf("GetAddress() = %+v", got)
	}
	if !got.CreatedAt.Equal(first) {
		t.Fatalf("GetAddress() created_at = %v, want %v", got.CreatedAt, first)
	}
	if !got.UpdatedAt.Equal(second) {
		t.Fatalf("GetAddress() updated_at = %v, want %v", got.UpdatedAt, second)
	}
}

func TestUpsertKeepsNetworksApart(t *testing.T) {
	repo, _ := setupExplorerRepository(t)
	ctx := context.Background()

	for _, network := range []string{"Ethereum", "Polygon"} {
		if err := repo.UpsertAddress(ctx, addressRecord(network, "0xabc", 1, explorer.CategoryNone)); err != nil {
			t.Fatalf("UpsertAddress(%s) error = %v", network, err)
		}
	}

	page, err := repo.ListAddresses(ctx, ports.AddressInput{})
	if err != nil {
		t.Fatalf("ListAddresses() error = %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("ListAddresses() total = %d, want 2", page.Total)
	}
}

func TestUpsertRejectsEmptyID(t *testing.T) {
	repo, _ := setupExplorerRepository(t)

	err := repo.UpsertCase(context.Background(), ports.CaseRecord{Network: "Ethereum"})
	if !errors.Is(err, explorer.ErrInvalidNaturalKey) {
		t.Fatalf("UpsertCase() error = %v, want ErrInvalidNaturalKey", err)
	}
}

func TestGetReturnsNotFound(t *testing.T) {
	repo, _ := setupExplorerRepository(t)
	ctx := context.Background()

	if _, err := repo.GetCase(ctx, "Ethereum.missing"); !errors.Is(err, explorer.ErrNotFound) {
		t.Fatalf("GetCase() error = %v, want ErrNotFound", err)
	}
	if _, err := repo.GetNetwork(ctx, "Ethereum"); !errors.Is(err, explorer.ErrNotFound) {
		t.Fatalf("GetNetwork() error = %v, want ErrNotFound", err)
	}
}

func TestCaseAndReporterRoundTrip(t *testing.T) {
	repo, _ := setupExplorerRepository(t)
	ctx := context.Background()

	reporterID := uuid.MustParse("1d6c1c2e-3b7e-4c4a-8b7e-2f3e0a9b5c22")
	caseID := uuid.MustParse("8f2b7a43-5c55-4a5a-9c3c-0d7f0f8d1a11")

	reporter := ports.ReporterRecord{
		ID:              "Near." + reporterID.String(),
		Network:         "Near",
		ReporterID:      reporterID,
		Account:         "reporter.near",
		Role:            explorer.RoleTracer,
		Status:          explorer.ReporterStatusActive,
		Name:            "Tracer",
		URL:             "https://tracer.example",
		Stake:           "340282366920938463463374607431768211455",
		UnlockTimestamp: "0",
	}
	if err := repo.UpsertReporter(ctx, reporter); err != nil {
		t.Fatalf("UpsertReporter() error = %v", err)
	}

	c := ports.CaseRecord{
		ID:         "Near." + caseID.String(),
		Network:    "Near",
		CaseID:     caseID,
		Name:       "Drainer",
		URL:        "https://case.example",
		Status:     explorer.CaseStatusOpen,
		ReporterID: reporterID,
	}
	if err := repo.UpsertCase(ctx, c); err != nil {
		t.Fatalf("UpsertCase() error = %v", err)
	}

	gotReporter, err := repo.GetReporter(ctx, reporter.ID)
	if err != nil {
		t.Fatalf("GetReporter() error = %v", err)
	}
	if gotReporter.Stake != reporter.Stake || gotReporter.Role != explorer.RoleTracer || gotReporter.ReporterID != reporterID {
		t.Fatalf("GetReporter() = %+v", gotReporter)
	}

	gotCase, err := repo.GetCase(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCase() error = %v", err)
	}
	if gotCase.Status != explorer.CaseStatusOpen || gotCase.Name != "Drainer" || gotCase.ReporterID != reporterID {
		t.Fatalf("GetCase() = %+v", gotCase)
	}

	cases, err := repo.ListCases(ctx, ports.CaseInput{
		Filtering: &ports.CaseFilter{ReporterID: &reporterID, Status: ptr(explorer.CaseStatusOpen)},
	})
	if err != nil {
		t.Fatalf("ListCases() error = %v", err)
	}
	if cases.Total != 1 || len(cases.Data) != 1 || cases.Data[0].ID != c.ID {
		t.Fatalf("ListCases() = %+v", cases)
	}
}

func seedAddresses(t *testing.T, repo *ExplorerRepository, n int) {
	t.Helper()

	ctx := context.Background()
	for i := 0; i < n; i++ {
		category := explorer.CategoryScam
		if i%3 == 0 {
			category = explorer.CategoryMixer
		}
		record := addressRecord("Ethereum", fmt.Sprintf("0x%04d", i), int16(i%10), category)
		if err := repo.UpsertAddress(ctx, record); err != nil {
			t.Fatalf("UpsertAddress(%d) error = %v", i, err)
		}
	}
}

func TestListAddressesPaginates(t *testing.T) {
	repo, _ := setupExplorerRepository(t)
	ctx := context.Background()
	seedAddresses(t, repo, 30)

	seen := map[string]struct{}{}
	for pageNum := 1; pageNum <= 3; pageNum++ {
		page, err := repo.ListAddresses(ctx, ports.AddressInput{
			Pagination: &explorer.Paginator{PageNum: pageNum, PageSize: 10},
		})
		if err != nil {
			t.Fatalf("ListAddresses(page %d) error = %v", pageNum, err)
		}
		if len(page.Data) != 10 || page.Total != 30 || page.PageCount != 3 {
			t.Fatalf("ListAddresses(page %d) len=%d total=%d pages=%d", pageNum, len(page.Data), page.Total, page.PageCount)
		}
		for _, record := range page.Data {
			if _, dup := seen[record.ID]; dup {
				t.Fatalf("ListAddresses(page %d) repeated %s", pageNum, record.ID)
			}
			seen[record.ID] = struct{}{}
		}
	}
	if len(seen) != 30 {
		t.Fatalf("pages covered %d records, want 30", len(seen))
	}

	past, err := repo.ListAddresses(ctx, ports.AddressInput{
		Pagination: &explorer.Paginator{PageNum: 4, PageSize: 10},
	})
	if err != nil {
		t.Fatalf("ListAddresses(page 4) error = %v", err)
	}
	if len(past.Data) != 0 || past.Total != 30 || past.PageCount != 3 {
		t.Fatalf("ListAddresses(page 4) = %+v", past)
	}
	if past.Data == nil {
		t.Fatalf("ListAddresses(page 4) data should be an empty slice")
	}
}

func TestListAddressesWithExtremePages(t *testing.T) {
	repo, _ := setupExplorerRepository(t)
	ctx := context.Background()
	seedAddresses(t, repo, 30)

	far, err := repo.ListAddresses(ctx, ports.AddressInput{
		Pagination: &explorer.Paginator{PageNum: 1 << 62, PageSize: 4},
	})
	if err != nil {
		t.Fatalf("ListAddresses(far page) error = %v", err)
	}
	if len(far.Data) != 0 || far.Total != 30 || far.PageCount != 8 {
		t.Fatalf("ListAddresses(far page) len=%d total=%d pages=%d", len(far.Data), far.Total, far.PageCount)
	}

	whole, err := repo.ListAddresses(ctx, ports.AddressInput{
		Pagination: &explorer.Paginator{PageNum: 1, PageSize: math.MaxInt},
	})
	if err != nil {
		t.Fatalf("ListAddresses(huge page) error = %v", err)
	}
	if len(whole.Data) != 30 || whole.Total != 30 || whole.PageCount != 1 {
		t.Fatalf("ListAddresses(huge page) len=%d total=%d pages=%d", len(whole.Data), whole.Total, whole.PageCount)
	}
}

func TestListAddressesFiltersInStore(t *testing.T) {
	repo, _ := setupExplorerRepository(t)
	ctx := context.Background()
	seedAddresses(t, repo, 30)

	page, err := repo.ListAddresses(ctx, ports.AddressInput{
		Filtering:  &ports.AddressFilter{Category: ptr(explorer.CategoryMixer)},
		Pagination: &explorer.Paginator{PageNum: 1, PageSize: 3},
	})
	if err != nil {
		t.Fatalf("ListAddresses() error = %v", err)
	}
	if page.Total != 10 || page.PageCount != 4 || len(page.Data) != 3 {
		t.Fatalf("ListAddresses() total=%d pages=%d len=%d", page.Total, page.PageCount, len(page.Data))
	}
	for _, record := range page.Data {
		if record.Category != explorer.CategoryMixer {
			t.Fatalf("ListAddresses() returned category %s", record.Category)
		}
	}

	ranged, err := repo.ListAddresses(ctx, ports.AddressInput{
		Filtering: &ports.AddressFilter{MinRisk: ptr(int16(8)), Network: ptr("Ethereum")},
	})
	if err != nil {
		t.Fatalf("ListAddresses(min risk) error = %v", err)
	}
	if ranged.Total != 6 {
		t.Fatalf("ListAddresses(min risk) total = %d, want 6", ranged.Total)
	}
}

func TestListAddressesOrdersWithTieBreak(t *testing.T) {
	repo, _ := setupExplorerRepository(t)
	ctx := context.Background()
	seedAddresses(t, repo, 20)

	page, err := repo.ListAddresses(ctx, ports.AddressInput{
		Ordering:          explorer.OrderingDesc,
		OrderingCondition: ports.AddressByRisk,
		Pagination:        &explorer.Paginator{PageNum: 1, PageSize: 20},
	})
	if err != nil {
		t.Fatalf("ListAddresses() error = %v", err)
	}
	for i := 1; i < len(page.Data); i++ {
		prev, cur := page.Data[i-1], page.Data[i]
		if prev.Risk < cur.Risk {
			t.Fatalf("ListAddresses() not descending by risk at %d", i)
		}
		if prev.Risk == cur.Risk && prev.ID < cur.ID {
			t.Fatalf("ListAddresses() tie not broken by id at %d", i)
		}
	}
}

func TestListOrdersEnumColumnsByDiscriminant(t *testing.T) {
	repo, _ := setupExplorerRepository(t)
	ctx := context.Background()

	// Storage values sort counterfeit < theft; the domain declares Theft first.
	for i, category := range []explorer.Category{explorer.CategoryCounterfeit, explorer.CategoryTheft, explorer.CategoryBridge} {
		if err := repo.UpsertAddress(ctx, addressRecord("Ethereum", fmt.Sprintf("0x%04d", i), 1, category)); err != nil {
			t.Fatalf("UpsertAddress(%s) error = %v", category, err)
		}
	}

	want := []explorer.Category{explorer.CategoryBridge, explorer.CategoryTheft, explorer.CategoryCounterfeit}
	for _, ordering := range []explorer.Ordering{explorer.OrderingAsc, explorer.OrderingDesc} {
		page, err := repo.ListAddresses(ctx, ports.AddressInput{Ordering: ordering, OrderingCondition: ports.AddressByCategory})
		if err != nil {
			t.Fatalf("ListAddresses(%s) error = %v", ordering, err)
		}
		if len(page.Data) != len(want) {
			t.Fatalf("ListAddresses(%s) len = %d, want %d", ordering, len(page.Data), len(want))
		}
		for i, record := range page.Data {
			expected := want[i]
			if ordering.Desc() {
				expected = want[len(want)-1-i]
			}
			if record.Category != expected {
				t.Fatalf("ListAddresses(%s)[%d] = %s, want %s", ordering, i, record.Category, expected)
			}
		}
	}
}

func TestListRejectsInvalidInputBeforeQuerying(t *testing.T) {
	repo, _ := setupExplorerRepository(t)
	ctx := context.Background()

	for _, p := range []explorer.Paginator{{PageNum: 0, PageSize: 10}, {PageNum: 1, PageSize: 0}, {PageNum: -1, PageSize: -1}} {
		p := p
		if _, err := repo.ListAssets(ctx, ports.AssetInput{Pagination: &p}); !errors.Is(err, explorer.ErrInvalidPaginationInput) {
			t.Fatalf("ListAssets(%+v) error = %v, want ErrInvalidPaginationInput", p, err)
		}
	}

	if _, err := repo.ListReporters(ctx, ports.ReporterInput{OrderingCondition: "stake; DROP TABLE reporter"}); !errors.Is(err, explorer.ErrInvalidOrdering) {
		t.Fatalf("ListReporters() error = %v, want ErrInvalidOrdering", err)
	}
	if _, err := repo.ListNetworks(ctx, ports.NetworkInput{Ordering: "sideways"}); !errors.Is(err, explorer.ErrInvalidOrdering) {
		t.Fatalf("ListNetworks() error = %v, want ErrInvalidOrdering", err)
	}
}

func TestNetworkUpsertAndList(t *testing.T) {
	repo, _ := setupExplorerRepository(t)
	ctx := context.Background()

	networks := []ports.NetworkRecord{
		{ID: "Ethereum", Name: "Ethereum", Backend: explorer.BackendEvm, ChainID: ptr("1"), Authority: "0xauth", StakeToken: "0xtoken"},
		{ID: "Near", Name: "Near", Backend: explorer.BackendNear, Authority: "hapi.near", StakeToken: "token.near"},
	}
	for _, n := range networks {
		if err := repo.UpsertNetwork(ctx, n); err != nil {
			t.Fatalf("UpsertNetwork(%s) error = %v", n.ID, err)
		}
	}
	if err := repo.UpsertNetwork(ctx, ports.NetworkRecord{ID: "bad.name"}); !errors.Is(err, explorer.ErrInvalidNaturalKey) {
		t.Fatalf("UpsertNetwork(bad) error = %v, want ErrInvalidNaturalKey", err)
	}

	page, err := repo.ListNetworks(ctx, ports.NetworkInput{
		Filtering: &ports.NetworkFilter{Backend: ptr(explorer.BackendEvm)},
	})
	if err != nil {
		t.Fatalf("ListNetworks() error = %v", err)
	}
	if page.Total != 1 || page.Data[0].ID != "Ethereum" || page.Data[0].ChainID == nil || *page.Data[0].ChainID != "1" {
		t.Fatalf("ListNetworks() = %+v", page)
	}
}

func TestUpsertInsideRolledBackTransaction(t *testing.T) {
	repo, db := setupExplorerRepository(t)
	ctx := context.Background()
	unit := uow.NewUnitOfWork(db)

	boom := errors.New("boom")
	err := unit.WithTx(ctx, func(txCtx context.Context) error {
		if err := repo.UpsertAddress(txCtx, addressRecord("Ethereum", "0xabc", 1, explorer.CategoryNone)); err != nil {
			return err
		}
		page, err := repo.ListAddresses(txCtx, ports.AddressInput{})
		if err != nil {
			return err
		}
		if page.Total != 1 {
			t.Errorf("ListAddresses() inside tx total = %d, want 1", page.Total)
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx() error = %v, want boom", err)
	}

	if _, err := repo.GetAddress(ctx, "Ethereum.0xabc"); !errors.Is(err, explorer.ErrNotFound) {
		t.Fatalf("GetAddress() after rollback error = %v, want ErrNotFound", err)
	}
}

func TestClassify(t *testing.T) {
	if err := classify(gorm.ErrDuplicatedKey, "upsert"); !errors.Is(err, explorer.ErrIdentityCollision) {
		t.Fatalf("classify(duplicate) = %v", err)
	}
	opErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	if err := classify(opErr, "list"); !errors.Is(err, explorer.ErrStoreUnavailable) {
		t.Fatalf("classify(net) = %v", err)
	}
	other := errors.New("syntax error")
	err := classify(other, "list")
	if errors.Is(err, explorer.ErrStoreUnavailable) || errors.Is(err, explorer.ErrIdentityCollision) || !errors.Is(err, other) {
		t.Fatalf("classify(other) = %v", err)
	}
}
