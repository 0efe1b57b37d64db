package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromValues_Defaults(t *testing.T) {
	p := FromValues(url.Values{})

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestFromValues_Permissive(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{"valid", "3", "24", 3, 24},
		{"non-numeric page", "abc", "24", 1, 24},
		{"non-numeric limit", "3", "lots", 3, DefaultLimit},
		{"negative page", "-2", "24", 1, 24},
		{"negative limit", "2", "-5", 2, DefaultLimit},
		{"zero values", "0", "0", 1, DefaultLimit},
		{"float page", "1.5", "", 1, DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := url.Values{}
			if tt.page != "" {
				v.Set("page", tt.page)
			}
			if tt.limit != "" {
				v.Set("limit", tt.limit)
			}

			p := FromValues(v)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, (tt.wantPage-1)*tt.wantLimit, p.Offset)
		})
	}
}

func TestNewMeta_TotalPagesIsCeil(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{0, 12, 0},
		{1, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{90, 12, 8},
		{24, 12, 2},
	}

	for _, tt := range tests {
		m := NewMeta(tt.total, Params{Page: 1, Limit: tt.limit})
		assert.Equal(t, tt.want, m.TotalPages, "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestNewMeta_ZeroLimitClampsToDefault(t *testing.T) {
	for _, limit := range []int{0, -1} {
		m := NewMeta(25, Params{Page: 1, Limit: limit})

		assert.Equal(t, 3, m.TotalPages, "limit=%d", limit)
		assert.Equal(t, 25, m.TotalProducts)
		assert.True(t, m.HasNextPage)
	}
}

func TestNewMeta_HasNextHasPrevInvariants(t *testing.T) {
	// hasNextPage iff currentPage < totalPages; hasPrevPage iff currentPage > 1.
	for total := 0; total <= 40; total += 7 {
		for page := 1; page <= 5; page++ {
			m := NewMeta(total, Params{Page: page, Limit: 12})

			assert.Equal(t, m.CurrentPage < m.TotalPages, m.HasNextPage,
				"total=%d page=%d", total, page)
			assert.Equal(t, m.CurrentPage > 1, m.HasPrevPage,
				"total=%d page=%d", total, page)
			assert.Equal(t, total, m.TotalProducts)
		}
	}
}
