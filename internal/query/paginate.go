package query

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const (
	DefaultPage     int64 = 1
	DefaultPageSize int64 = 10
)

// Params are the runtime-optional listing parameters. Zero or negative
// page/page_size fall back to the defaults instead of faulting.
type Params struct {
	Page     int64
	PageSize int64
	SortBy   string
}

func (p Params) normalize() (page, size int64) {
	page, size = p.Page, p.PageSize
	if page <= 0 {
		page = DefaultPage
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return page, size
}

type Page[T any] struct {
	Items      []T
	TotalPages int64
}

// Querier is the slice of pgxpool.Pool the engine needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Paginate applies filters, sort and pagination to the base query and
// runs it. Filters are applied before the rows are counted, so the
// reported page count always describes the filtered set. A page beyond
// the last yields an empty page, not an error.
func Paginate[T any](
	ctx context.Context,
	db Querier,
	base string,
	filters []Filter,
	sortable SortKeys,
	params Params,
	scan func(pgx.Rows) (T, error),
) (Page[T], error) {
	page, size := params.normalize()

	filtered, args := Build(base, nil, filters)

	var total int64
	countSQL := fmt.Sprintf("SELECT count(*) FROM (%s) AS filtered", filtered)
	if err := db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return Page[T]{}, fmt.Errorf("count rows: %w", err)
	}

	pageSQL := filtered
	if orderBy, ok := sortable.Resolve(params.SortBy); ok {
		pageSQL += " ORDER BY " + orderBy
	}
	args = append(args, size, (page-1)*size)
	pageSQL += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := db.Query(ctx, pageSQL, args...)
	if err != nil {
		return Page[T]{}, fmt.Errorf("query page: %w", err)
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return Page[T]{}, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return Page[T]{}, err
	}

	return Page[T]{
		Items:      items,
		TotalPages: totalPages(total, size),
	}, nil
}

// totalPages is ceil(total/size); zero matching rows means zero pages.
func totalPages(total, size int64) int64 {
	return (total + size - 1) / size
}
