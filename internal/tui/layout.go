package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"hackevents/internal/reorder"
)

const (
	headerLines = 3
	footerLines = 2

	// cardHeight is 4 content lines plus the border.
	cardHeight       = 6
	cardGutter       = 1
	defaultCardWidth = 36
	minCardWidth     = 20
)

// gridLayout places cards left-to-right, top-to-bottom below the header. Rows scroll as a unit.
type gridLayout struct {
	width  int
	height int
	cardW  int
	cols   int
	scroll int
}

func newGridLayout(width, height, cardW int) gridLayout {
	if cardW <= 0 {
		cardW = defaultCardWidth
	}
	if cardW < minCardWidth {
		cardW = minCardWidth
	}
	if width > 0 && cardW > width {
		cardW = width
	}
	cols := 1
	if width > 0 {
		cols = (width + cardGutter) / (cardW + cardGutter)
	}
	if cols < 1 {
		cols = 1
	}
	return gridLayout{width: width, height: height, cardW: cardW, cols: cols}
}

func (g gridLayout) bodyHeight() int {
	h := g.height - headerLines - footerLines
	if h < 0 {
		return 0
	}
	return h
}

// visibleRows is how many card rows fit on screen (at least one).
func (g gridLayout) visibleRows() int {
	n := g.bodyHeight() / cardHeight
	if n < 1 {
		return 1
	}
	return n
}

func (g gridLayout) totalRows(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + g.cols - 1) / g.cols
}

func (g gridLayout) rowOf(i int) int { return i / g.cols }

func (g gridLayout) maxScroll(n int) int {
	m := g.totalRows(n) - g.visibleRows()
	if m < 0 {
		return 0
	}
	return m
}

func (g *gridLayout) clampScroll(n int) {
	if g.scroll > g.maxScroll(n) {
		g.scroll = g.maxScroll(n)
	}
	if g.scroll < 0 {
		g.scroll = 0
	}
}

// ensureVisible scrolls the minimum amount so card i is on screen.
func (g *gridLayout) ensureVisible(i, n int) {
	if i < 0 {
		g.clampScroll(n)
		return
	}
	r := g.rowOf(i)
	if r < g.scroll {
		g.scroll = r
	}
	if r >= g.scroll+g.visibleRows() {
		g.scroll = r - g.visibleRows() + 1
	}
	g.clampScroll(n)
}

// rect is the screen rectangle of slot i, or an empty Rect when the slot is scrolled away.
func (g gridLayout) rect(i int) reorder.Rect {
	r := g.rowOf(i) - g.scroll
	if i < 0 || r < 0 || r >= g.visibleRows() {
		return reorder.Rect{}
	}
	return reorder.Rect{
		X: (i % g.cols) * (g.cardW + cardGutter),
		Y: headerLines + r*cardHeight,
		W: g.cardW,
		H: cardHeight,
	}
}

func (g gridLayout) rects(n int) []reorder.Rect {
	out := make([]reorder.Rect, n)
	for i := range out {
		out[i] = g.rect(i)
	}
	return out
}

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and height lines tall.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")

	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i := range lines {
		lines[i] = fitWidth(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// fitWidth pads or truncates one line to exactly width cells.
func fitWidth(ln string, width int) string {
	if width <= 0 {
		return ""
	}
	// Bound very long raw strings before measuring them.
	if len(ln) > 8192 {
		ln = xansi.Cut(ln, 0, width)
	}
	w := xansi.StringWidth(ln)
	if w > width {
		if width == 1 {
			ln = xansi.Cut(ln, 0, 1)
		} else {
			ln = xansi.Cut(ln, 0, width-1) + "…"
		}
		w = xansi.StringWidth(ln)
	}
	if w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

// truncateToWidth collapses s to one line no wider than w, marking truncation with "…".
func truncateToWidth(s string, w int) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	if w <= 1 {
		return "…"
	}
	return xansi.Cut(s, 0, w-1) + "…"
}
