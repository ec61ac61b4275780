package pdf

import (
	"strings"
	"unicode/utf8"

	"github.com/johnfercher/maroto/v2/pkg/core"
)

const (
	ptToMM      = 0.3528
	avgCharEm   = 0.55 // Helvetica runs ~0.5em per glyph; rounded up
	lineSpacing = 1.3
)

// paginator distributes measured rows over pages. When a row would cross
// pageBottom the current page is closed, the cursor returns to the top and,
// inside a table, the table header is placed again before the row.
type paginator struct {
	pageBottom  float64
	cursorY     float64
	currentPage int
	pages       [][]core.Row

	header       func() core.Row
	headerHeight float64
}

func newPaginator(pageBottom float64) *paginator {
	return &paginator{pageBottom: pageBottom, pages: make([][]core.Row, 1)}
}

// add places a row of the given height, breaking the page first if needed
func (p *paginator) add(height float64, r core.Row) {
	p.reserve(height)
	p.place(height, r)
}

// reserve breaks the page unless height still fits below the cursor.
// An empty page always accepts the row, however tall.
func (p *paginator) reserve(height float64) {
	if p.cursorY > 0 && p.cursorY+height > p.pageBottom {
		p.newPage()
	}
}

func (p *paginator) place(height float64, r core.Row) {
	p.pages[p.currentPage] = append(p.pages[p.currentPage], r)
	p.cursorY += height
}

func (p *paginator) newPage() {
	p.currentPage++
	p.cursorY = 0
	p.pages = append(p.pages, nil)
	if p.header != nil {
		p.place(p.headerHeight, p.header())
	}
}

// beginTable places the header row and keeps it with at least firstRow of
// content. Until endTable, every page break repeats the header.
func (p *paginator) beginTable(height, firstRow float64, header func() core.Row) {
	p.reserve(height + firstRow)
	p.place(height, header())
	p.header = header
	p.headerHeight = height
}

func (p *paginator) endTable() {
	p.header = nil
	p.headerHeight = 0
}

// result returns the rows of each page in order
func (p *paginator) result() [][]core.Row {
	return p.pages
}

// textHeight estimates the height in mm of s wrapped into widthMM at size pt
func textHeight(s string, widthMM, size float64) float64 {
	return float64(textLines(s, widthMM, size)) * size * ptToMM * lineSpacing
}

// textLines estimates how many lines s needs when word-wrapped into widthMM
func textLines(s string, widthMM, size float64) int {
	perLine := int(widthMM / (size * ptToMM * avgCharEm))
	if perLine < 1 {
		perLine = 1
	}

	lines := 0
	for _, para := range strings.Split(s, "\n") {
		lines += wrapCount(para, perLine)
	}
	return lines
}

func wrapCount(para string, perLine int) int {
	words := strings.Fields(para)
	if len(words) == 0 {
		return 1
	}

	lines, cur := 1, 0
	for _, w := range words {
		n := utf8.RuneCountInString(w)
		switch {
		case cur == 0:
			cur = n
		case cur+1+n <= perLine:
			cur += 1 + n
		default:
			lines++
			cur = n
		}
		// words longer than a line are hard-broken
		for cur > perLine {
			lines++
			cur -= perLine
		}
	}
	return lines
}
