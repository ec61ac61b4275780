package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{"defaults when empty", "", "", 1, 10},
		{"valid values", "3", "5", 3, 5},
		{"garbage falls back", "abc", "x1", 1, 10},
		{"non-positive falls back", "0", "-4", 1, 10},
		{"limit is capped", "2", "1000", 2, MaxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParseParams(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}

func TestOffset(t *testing.T) {
	p := &Params{Page: 3, Limit: 5}
	assert.Equal(t, 10, p.Offset())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 10))
	assert.Equal(t, 3, TotalPages(12, 5))
	assert.Equal(t, 2, TotalPages(10, 5))
	assert.Equal(t, 1, TotalPages(1, 10))
}

func TestNewPageNeverNilData(t *testing.T) {
	page := NewPage[int](nil, DefaultParams(), 0)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Equal(t, 1, page.TotalPages)
}
