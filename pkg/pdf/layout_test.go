package pdf

import (
	"strings"
	"testing"

	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginator_FitsOnOnePage(t *testing.T) {
	p := newPaginator(100)
	for i := 0; i < 10; i++ {
		p.add(10, row.New(10))
	}
	pages := p.result()
	require.Len(t, pages, 1)
	assert.Len(t, pages[0], 10)
	assert.Equal(t, 0, p.currentPage)
	assert.Equal(t, 100.0, p.cursorY)
}

func TestPaginator_BreaksPage(t *testing.T) {
	p := newPaginator(100)
	for i := 0; i < 11; i++ {
		p.add(10, row.New(10))
	}
	pages := p.result()
	require.Len(t, pages, 2)
	assert.Len(t, pages[0], 10)
	assert.Len(t, pages[1], 1)
	assert.Equal(t, 10.0, p.cursorY)
}

func TestPaginator_RepeatsTableHeader(t *testing.T) {
	headers := 0
	header := func() core.Row {
		headers++
		return row.New(10)
	}

	p := newPaginator(100)
	p.add(30, row.New(30))
	p.beginTable(10, 10, header)
	// page 1 holds 6 rows after the 30mm block and the header,
	// later pages hold 9 rows below the repeated header
	for i := 0; i < 20; i++ {
		p.add(10, row.New(10))
	}
	p.endTable()
	p.add(10, row.New(10))

	pages := p.result()
	require.Len(t, pages, 3)
	assert.Equal(t, 3, headers)
	assert.Len(t, pages[0], 1+1+6)
	assert.Len(t, pages[1], 1+9)
	assert.Len(t, pages[2], 1+5+1)
}

func TestPaginator_HeaderKeptWithFirstRow(t *testing.T) {
	headers := 0
	header := func() core.Row {
		headers++
		return row.New(10)
	}

	p := newPaginator(100)
	p.add(85, row.New(85))
	p.beginTable(10, 10, header)
	p.add(10, row.New(10))
	p.endTable()

	pages := p.result()
	require.Len(t, pages, 2)
	assert.Len(t, pages[0], 1)
	assert.Len(t, pages[1], 2)
	assert.Equal(t, 1, headers)
}

func TestPaginator_OversizedRowOnEmptyPage(t *testing.T) {
	p := newPaginator(100)
	p.add(150, row.New(150))
	p.add(10, row.New(10))

	pages := p.result()
	require.Len(t, pages, 2)
	assert.Len(t, pages[0], 1)
}

func TestTextLines(t *testing.T) {
	// 9pt in 30mm fits about 17 glyphs per line
	assert.Equal(t, 1, textLines("short", 30, 9))
	assert.Equal(t, 1, textLines("", 30, 9))
	assert.Equal(t, 2, textLines("first\nsecond", 30, 9))
	assert.Greater(t, textLines(strings.Repeat("word ", 40), 30, 9), 5)
	assert.Greater(t, textLines(strings.Repeat("x", 100), 30, 9), 4)
}

func TestItemRowHeightGrowsWithDescription(t *testing.T) {
	short := itemRowHeight("Widget")
	long := itemRowHeight(strings.Repeat("A detailed description of the work ", 10))
	assert.GreaterOrEqual(t, short, tableMinRow)
	assert.Greater(t, long, 2*short)
}
