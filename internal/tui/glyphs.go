package tui

import (
	"os"
	"strings"
	"sync/atomic"
)

// glyphSet holds every symbol the TUI draws outside plain text. Fonts without emoji or
// braille coverage can switch to the ASCII set with HACKEVENTS_TUI_GLYPHS=ascii.
type glyphSet struct {
	name   string
	bullet string
	arrow  string
	lock   string
	grip   string
	hrule  string
}

var (
	unicodeGlyphs = &glyphSet{name: "unicode", bullet: "•", arrow: "→", lock: "🔒", grip: "⠿", hrule: "─"}
	asciiGlyphs   = &glyphSet{name: "ascii", bullet: "*", arrow: "->", lock: "[private]", grip: "::", hrule: "-"}
)

var activeGlyphs atomic.Pointer[glyphSet]

func glyphs() *glyphSet {
	if gs := activeGlyphs.Load(); gs != nil {
		return gs
	}
	return unicodeGlyphs
}

func setGlyphs(gs *glyphSet) { activeGlyphs.Store(gs) }

// applyGlyphPreference reads HACKEVENTS_TUI_GLYPHS. Unrecognized values leave the current set.
func applyGlyphPreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("HACKEVENTS_TUI_GLYPHS"))) {
	case "", "unicode", "utf8":
		setGlyphs(unicodeGlyphs)
	case "ascii":
		setGlyphs(asciiGlyphs)
	}
}

func glyphBullet() string { return glyphs().bullet }

func glyphArrow() string { return glyphs().arrow }

func glyphLock() string { return glyphs().lock }

// glyphGrip is the drag handle shown on cards in reorder mode.
func glyphGrip() string { return glyphs().grip }

func glyphHRule() string { return glyphs().hrule }
