// Package query builds filtered, sorted, paginated SQL queries from
// runtime-optional parameters. Filter columns and sort keys come from
// per-resource whitelists declared in code; user input never reaches
// the generated SQL text.
package query

import (
	"fmt"
	"strings"
)

type Op int

const (
	OpEq Op = iota
	OpLike
	OpGte
	OpLte
)

func (o Op) String() string {
	switch o {
	case OpEq:
		return "="
	case OpLike:
		return "LIKE"
	case OpGte:
		return ">="
	case OpLte:
		return "<="
	default:
		return "="
	}
}

// Filter is one optional predicate. An inactive filter (built from a
// nil pointer) is a no-op when the query is assembled.
type Filter struct {
	column string
	op     Op
	value  any
	active bool
}

// Where builds a filter that is active only when value is non-nil.
func Where[T any](column string, op Op, value *T) Filter {
	f := Filter{column: column, op: op}
	if value != nil {
		f.value = *value
		f.active = true
	}
	return f
}

// Build appends the active filters to base as a conjunctive WHERE
// clause, in the order given. Placeholders continue from any args the
// base query already carries.
func Build(base string, args []any, filters []Filter) (string, []any) {
	var conds []string
	for _, f := range filters {
		if !f.active {
			continue
		}
		args = append(args, f.value)
		conds = append(conds, fmt.Sprintf("%s %s $%d", f.column, f.op, len(args)))
	}
	if len(conds) == 0 {
		return base, args
	}
	return base + " WHERE " + strings.Join(conds, " AND "), args
}
