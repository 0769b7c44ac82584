package httpapi

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	domainexplorer "explorer/internal/domain/explorer"
	"explorer/internal/ports"
)

var errInvalidParam = errors.New("invalid query parameter")

// parseInput reads the shared paging and ordering parameters. Missing page parameters fall back
// to the defaults; present ones are passed through so the query layer can reject them.
func parseInput[F any, C ~string](q url.Values, filter *F) (domainexplorer.EntityInput[F, C], error) {
	var input domainexplorer.EntityInput[F, C]
	input.Filtering = filter

	ordering, err := domainexplorer.ParseOrdering(q.Get("ordering"))
	if err != nil {
		return input, err
	}
	input.Ordering = ordering
	input.OrderingCondition = C(strings.TrimSpace(q.Get("order_by")))

	if !q.Has("page_num") && !q.Has("page_size") {
		return input, nil
	}
	page := domainexplorer.DefaultPaginator()
	if q.Has("page_num") {
		if page.PageNum, err = strconv.Atoi(q.Get("page_num")); err != nil {
			return input, fmt.Errorf("%w: page_num %q", domainexplorer.ErrInvalidPaginationInput, q.Get("page_num"))
		}
	}
	if q.Has("page_size") {
		if page.PageSize, err = strconv.Atoi(q.Get("page_size")); err != nil {
			return input, fmt.Errorf("%w: page_size %q", domainexplorer.ErrInvalidPaginationInput, q.Get("page_size"))
		}
	}
	input.Pagination = &page
	return input, nil
}

// The Parse*Input functions read a listing request from query parameters: the kind's filter
// fields plus order_by, ordering, page_num and page_size.

func ParseAddressInput(q url.Values) (ports.AddressInput, error) {
	return listInput[ports.AddressFilter, ports.AddressCondition](q, parseAddressFilter)
}

func ParseAssetInput(q url.Values) (ports.AssetInput, error) {
	return listInput[ports.AssetFilter, ports.AssetCondition](q, parseAssetFilter)
}

func ParseCaseInput(q url.Values) (ports.CaseInput, error) {
	return listInput[ports.CaseFilter, ports.CaseCondition](q, parseCaseFilter)
}

func ParseReporterInput(q url.Values) (ports.ReporterInput, error) {
	return listInput[ports.ReporterFilter, ports.ReporterCondition](q, parseReporterFilter)
}

func ParseNetworkInput(q url.Values) (ports.NetworkInput, error) {
	return listInput[ports.NetworkFilter, ports.NetworkCondition](q, parseNetworkFilter)
}

func listInput[F any, C ~string](q url.Values, parse func(url.Values) (*F, error)) (domainexplorer.EntityInput[F, C], error) {
	filter, err := parse(q)
	if err != nil {
		return domainexplorer.EntityInput[F, C]{}, err
	}
	return parseInput[F, C](q, filter)
}

func parseAddressFilter(q url.Values) (*ports.AddressFilter, error) {
	var f ports.AddressFilter
	var err error
	f.Network = optString(q, "network")
	if f.CaseID, err = optUUID(q, "case_id"); err != nil {
		return nil, err
	}
	if f.ReporterID, err = optUUID(q, "reporter_id"); err != nil {
		return nil, err
	}
	if f.Category, err = optEnum(q, "category", domainexplorer.ParseCategory); err != nil {
		return nil, err
	}
	if f.Risk, err = optInt16(q, "risk"); err != nil {
		return nil, err
	}
	if f.MinRisk, err = optInt16(q, "min_risk"); err != nil {
		return nil, err
	}
	if f.MaxRisk, err = optInt16(q, "max_risk"); err != nil {
		return nil, err
	}
	return &f, nil
}

func parseAssetFilter(q url.Values) (*ports.AssetFilter, error) {
	base, err := parseAddressFilter(q)
	if err != nil {
		return nil, err
	}
	return &ports.AssetFilter{
		AddressFilter: *base,
		Address:       optString(q, "address"),
		AssetID:       optString(q, "asset_id"),
	}, nil
}

func parseCaseFilter(q url.Values) (*ports.CaseFilter, error) {
	var f ports.CaseFilter
	var err error
	f.Network = optString(q, "network")
	f.Name = optString(q, "name")
	if f.ReporterID, err = optUUID(q, "reporter_id"); err != nil {
		return nil, err
	}
	if f.Status, err = optEnum(q, "status", domainexplorer.ParseCaseStatus); err != nil {
		return nil, err
	}
	return &f, nil
}

func parseReporterFilter(q url.Values) (*ports.ReporterFilter, error) {
	var f ports.ReporterFilter
	var err error
	f.Network = optString(q, "network")
	f.Account = optString(q, "account")
	if f.Role, err = optEnum(q, "role", domainexplorer.ParseReporterRole); err != nil {
		return nil, err
	}
	if f.Status, err = optEnum(q, "status", domainexplorer.ParseReporterStatus); err != nil {
		return nil, err
	}
	return &f, nil
}

func parseNetworkFilter(q url.Values) (*ports.NetworkFilter, error) {
	backend, err := optEnum(q, "backend", domainexplorer.ParseNetworkBackend)
	if err != nil {
		return nil, err
	}
	return &ports.NetworkFilter{Backend: backend}, nil
}

func optString(q url.Values, key string) *string {
	if !q.Has(key) {
		return nil
	}
	v := q.Get(key)
	return &v
}

func optUUID(q url.Values, key string) (*uuid.UUID, error) {
	if !q.Has(key) {
		return nil, nil
	}
	id, err := uuid.Parse(q.Get(key))
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q", errInvalidParam, key, q.Get(key))
	}
	return &id, nil
}

func optInt16(q url.Values, key string) (*int16, error) {
	if !q.Has(key) {
		return nil, nil
	}
	n, err := strconv.ParseInt(q.Get(key), 10, 16)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q", errInvalidParam, key, q.Get(key))
	}
	v := int16(n)
	return &v, nil
}

func optEnum[T any](q url.Values, key string, parse func(string) (T, error)) (*T, error) {
	if !q.Has(key) {
		return nil, nil
	}
	v, err := parse(q.Get(key))
	if err != nil {
		return nil, err
	}
	return &v, nil
}
