package tui

import (
	"testing"

	"hackevents/internal/reorder"
)

func TestGridLayout_Rects(t *testing.T) {
	t.Parallel()

	g := newGridLayout(80, 30, 36)
	if g.cols != 2 {
		t.Fatalf("cols = %d; want 2", g.cols)
	}
	if g.visibleRows() != 4 {
		t.Fatalf("visibleRows = %d; want 4", g.visibleRows())
	}
	cases := map[int]reorder.Rect{
		0: {X: 0, Y: 3, W: 36, H: 6},
		1: {X: 37, Y: 3, W: 36, H: 6},
		2: {X: 0, Y: 9, W: 36, H: 6},
		8: {},
	}
	for i, want := range cases {
		if got := g.rect(i); got != want {
			t.Fatalf("rect(%d) = %+v; want %+v", i, got, want)
		}
	}
}

func TestGridLayout_EnsureVisibleScrolls(t *testing.T) {
	t.Parallel()

	g := newGridLayout(80, 30, 36)
	g.ensureVisible(8, 10)
	if g.scroll != 1 {
		t.Fatalf("scroll = %d; want 1", g.scroll)
	}
	if got := g.rect(8); got != (reorder.Rect{X: 0, Y: 21, W: 36, H: 6}) {
		t.Fatalf("rect(8) = %+v", got)
	}
	if !g.rect(0).Empty() {
		t.Fatalf("row 0 should be scrolled away")
	}

	g.ensureVisible(0, 10)
	if g.scroll != 0 {
		t.Fatalf("scroll = %d; want 0", g.scroll)
	}

	g.scroll = 99
	g.clampScroll(10)
	if g.scroll != 1 {
		t.Fatalf("clamped scroll = %d; want 1", g.scroll)
	}
}

func TestGridLayout_NarrowTerminal(t *testing.T) {
	t.Parallel()

	g := newGridLayout(10, 20, 0)
	if g.cols != 1 || g.cardW != 10 {
		t.Fatalf("cols=%d cardW=%d", g.cols, g.cardW)
	}
	if g.visibleRows() != 2 {
		t.Fatalf("visibleRows = %d; want 2", g.visibleRows())
	}
}

func TestNormalizePane(t *testing.T) {
	t.Parallel()

	if got, want := normalizePane("abcdef\nab", 4, 3), "abc…\nab  \n    "; got != want {
		t.Fatalf("got %q; want %q", got, want)
	}
	if got := truncateToWidth("  hello\nworld ", 8); got != "hello w…" {
		t.Fatalf("truncateToWidth = %q", got)
	}
}
