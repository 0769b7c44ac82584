package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"explorer/internal/domain/explorer"
	"explorer/internal/ports"
)

// listing is what one entity kind contributes to a paged query: its filter predicates, the
// columns its ordering conditions sort by, and the decoder from row to record. Everything
// else is shared by paginate. Conditions listed in enums hold an enumerated type and sort by
// discriminant in every dialect.
type listing[F any, C ~string, M any, R any] struct {
	kind    string
	filter  func(q *gorm.DB, f *F) *gorm.DB
	columns map[C]string
	enums   map[C]*explorer.EnumDomain
	decode  func(M) R
}

func (l listing[F, C, M, R]) orderColumn(cond C) (string, error) {
	if cond == "" {
		return "id", nil
	}
	column, ok := l.columns[cond]
	if !ok {
		return "", fmt.Errorf("%w: %s cannot be ordered by %q", explorer.ErrInvalidOrdering, l.kind, string(cond))
	}
	return column, nil
}

// orderBy sorts by the condition's column with id as the tie-break.
func (l listing[F, C, M, R]) orderBy(cond C, column string, desc bool) clause.OrderBy {
	domain, ok := l.enums[cond]
	if !ok {
		columns := []clause.OrderByColumn{{Column: clause.Column{Name: column}, Desc: desc}}
		if column != "id" {
			columns = append(columns, clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc})
		}
		return clause.OrderBy{Columns: columns}
	}

	direction := " ASC"
	if desc {
		direction = " DESC"
	}
	storage := domain.StorageValues()
	var expr strings.Builder
	vars := make([]any, 0, len(storage)+2)
	expr.WriteString("CASE ?")
	vars = append(vars, clause.Column{Name: column})
	for i, value := range storage {
		fmt.Fprintf(&expr, " WHEN ? THEN %d", i)
		vars = append(vars, value)
	}
	expr.WriteString(" END" + direction + ", ?" + direction)
	vars = append(vars, clause.Column{Name: "id"})
	return clause.OrderBy{Expression: clause.Expr{SQL: expr.String(), Vars: vars}}
}

// paginate filters, counts and pages one kind inside the store. Count and page are read in
// one read-only transaction so total and data describe the same snapshot.
func paginate[F any, C ~string, M any, R any](
	ctx context.Context,
	r *ExplorerRepository,
	l listing[F, C, M, R],
	input explorer.EntityInput[F, C],
) (explorer.EntityPage[R], error) {
	var empty explorer.EntityPage[R]

	page, err := input.Page()
	if err != nil {
		return empty, err
	}
	ordering, err := explorer.ParseOrdering(string(input.Ordering))
	if err != nil {
		return empty, err
	}
	column, err := l.orderColumn(input.OrderingCondition)
	if err != nil {
		return empty, err
	}

	var (
		total int64
		rows  []M
	)
	err = r.readTx(ctx, func(db *gorm.DB) error {
		var m M
		query := db.Model(&m)
		if input.Filtering != nil {
			query = l.filter(query, input.Filtering)
		}
		query = query.Session(&gorm.Session{})

		if err := query.Count(&total).Error; err != nil {
			return classify(err, "count "+l.kind)
		}

		order := query.Clauses(l.orderBy(input.OrderingCondition, column, ordering.Desc()))
		offset, ok := page.Offset()
		if !ok || int64(offset) >= total {
			return nil
		}
		if err := order.Offset(offset).Limit(page.Limit()).Find(&rows).Error; err != nil {
			return classify(err, "list "+l.kind)
		}
		return nil
	})
	if err != nil {
		return empty, err
	}

	data := make([]R, 0, len(rows))
	for _, row := range rows {
		data = append(data, l.decode(row))
	}
	return explorer.NewEntityPage(data, total, page), nil
}

// readTx runs fn in a read-only snapshot. Inside a caller's transaction it reuses that one.
func (r *ExplorerRepository) readTx(ctx context.Context, fn func(db *gorm.DB) error) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}
	if ports.TxFromContext(ctx) != nil {
		return fn(db)
	}

	if db.Dialector != nil && db.Dialector.Name() == "postgres" {
		return db.Transaction(fn, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	}
	return db.Transaction(fn)
}
