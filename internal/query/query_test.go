package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestBuildNoActiveFilters(t *testing.T) {
	base := "SELECT id FROM users"

	sql, args := Build(base, nil, []Filter{
		Where[string]("email", OpLike, nil),
		Where[time.Time]("created_at", OpGte, nil),
	})

	assert.Equal(t, base, sql)
	assert.Empty(t, args)
}

func TestBuildSingleFilter(t *testing.T) {
	sql, args := Build("SELECT id FROM users", nil, []Filter{
		Where("email", OpLike, strPtr("%@x.com")),
	})

	assert.Equal(t, "SELECT id FROM users WHERE email LIKE $1", sql)
	assert.Equal(t, []any{"%@x.com"}, args)
}

func TestBuildComposesConjunctivelyInOrder(t *testing.T) {
	lower := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	upper := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	sql, args := Build("SELECT id FROM users", nil, []Filter{
		Where("email", OpEq, strPtr("a@x.com")),
		Where[string]("email", OpLike, nil),
		Where("created_at", OpGte, &lower),
		Where("created_at", OpLte, &upper),
	})

	assert.Equal(t,
		"SELECT id FROM users WHERE email = $1 AND created_at >= $2 AND created_at <= $3",
		sql)
	assert.Equal(t, []any{"a@x.com", lower, upper}, args)
}

func TestBuildContinuesPlaceholderNumbering(t *testing.T) {
	sql, args := Build("SELECT id FROM users", []any{"seed"}, []Filter{
		Where("email", OpEq, strPtr("a@x.com")),
	})

	assert.Equal(t, "SELECT id FROM users WHERE email = $2", sql)
	assert.Equal(t, []any{"seed", "a@x.com"}, args)
}
