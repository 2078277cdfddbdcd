package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// placeBlock draws block over base with its top-left corner at (x, y). Lines of the block that
// fall outside base are dropped; base lines shorter than x are padded.
func placeBlock(base, block string, x, y int) string {
	if block == "" {
		return base
	}
	lines := strings.Split(base, "\n")
	for j, bl := range strings.Split(block, "\n") {
		row := y + j
		if row < 0 || row >= len(lines) {
			continue
		}
		bx := x
		if bx < 0 {
			bl = xansi.Cut(bl, -bx, xansi.StringWidth(bl))
			bx = 0
		}
		bw := xansi.StringWidth(bl)
		ln := lines[row]
		lw := xansi.StringWidth(ln)

		left := xansi.Cut(ln, 0, bx)
		if w := xansi.StringWidth(left); w < bx {
			left += strings.Repeat(" ", bx-w)
		}
		right := ""
		if bx+bw < lw {
			right = xansi.Cut(ln, bx+bw, lw)
		}
		lines[row] = left + "\x1b[0m" + bl + "\x1b[0m" + right
	}
	return strings.Join(lines, "\n")
}
