package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name    string
		sortBy  string
		sortDir string
		want    string
	}{
		{"allowed column ascending", "name", "", "name ASC"},
		{"allowed column descending", "name", "desc", "name DESC"},
		{"empty sort uses fallback", "", "", "created_at DESC"},
		{"unknown column uses fallback", "secret_column", "desc", "created_at DESC"},
		{"injection attempt uses fallback", "name; DROP TABLE users--", "", "created_at DESC"},
		{"injection in direction is ignored", "email", "desc; DROP TABLE users--", "email ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewListQuery()
			q.SortBy = tt.sortBy
			q.SortDir = tt.sortDir
			assert.Equal(t, tt.want, q.OrderClause("created_at DESC", "name", "email", "created_at"))
		})
	}
}
