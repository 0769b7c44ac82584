package explorer

import (
	"fmt"
	"math"
	"strings"
)

const (
	DefaultPageNum  = 1
	DefaultPageSize = 25
)

// Paginator selects one 1-based page.
type Paginator struct {
	PageNum  int `json:"page_num"`
	PageSize int `json:"page_size"`
}

func DefaultPaginator() Paginator {
	return Paginator{PageNum: DefaultPageNum, PageSize: DefaultPageSize}
}

// Validate rejects non-positive values instead of clamping them.
func (p Paginator) Validate() error {
	if p.PageNum <= 0 {
		return fmt.Errorf("%w: page_num must be >= 1, got %d", ErrInvalidPaginationInput, p.PageNum)
	}
	if p.PageSize <= 0 {
		return fmt.Errorf("%w: page_size must be >= 1, got %d", ErrInvalidPaginationInput, p.PageSize)
	}
	return nil
}

// Offset is the number of rows before the page. ok is false when the page starts past
// math.MaxInt rows, which no store can hold.
func (p Paginator) Offset() (offset int, ok bool) {
	if p.PageNum <= 0 || p.PageSize <= 0 {
		return 0, false
	}
	skipped := p.PageNum - 1
	if skipped > math.MaxInt/p.PageSize {
		return 0, false
	}
	return skipped * p.PageSize, true
}

func (p Paginator) Limit() int { return p.PageSize }

// PageCount is ceil(total / pageSize).
func PageCount(total int64, pageSize int) int64 {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	size := int64(pageSize)
	count := total / size
	if total%size != 0 {
		count++
	}
	return count
}

type Ordering string

const (
	OrderingAsc  Ordering = "asc"
	OrderingDesc Ordering = "desc"
)

// ParseOrdering maps "" to OrderingAsc.
func ParseOrdering(raw string) (Ordering, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(OrderingAsc):
		return OrderingAsc, nil
	case string(OrderingDesc):
		return OrderingDesc, nil
	default:
		return "", fmt.Errorf("%w: ordering %q", ErrInvalidOrdering, raw)
	}
}

func (o Ordering) Desc() bool { return o == OrderingDesc }

// EntityInput is the query shape shared by every entity kind. F is the kind's filter and C its
// sortable-field enumeration.
type EntityInput[F any, C ~string] struct {
	Filtering         *F
	Ordering          Ordering
	OrderingCondition C
	Pagination        *Paginator
}

// Page returns the requested paginator, or the default one when none was given.
func (in EntityInput[F, C]) Page() (Paginator, error) {
	p := DefaultPaginator()
	if in.Pagination != nil {
		p = *in.Pagination
	}
	if err := p.Validate(); err != nil {
		return Paginator{}, err
	}
	return p, nil
}

// EntityPage is one page of entities plus totals across all pages.
type EntityPage[T any] struct {
	Data      []T   `json:"data"`
	Total     int64 `json:"total"`
	PageCount int64 `json:"page_count"`
}

func NewEntityPage[T any](data []T, total int64, p Paginator) EntityPage[T] {
	if data == nil {
		data = []T{}
	}
	return EntityPage[T]{
		Data:      data,
		Total:     total,
		PageCount: PageCount(total, p.PageSize),
	}
}
