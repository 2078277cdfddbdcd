package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

type mdKey struct {
	dark  bool
	width int
}

// Renderers are built once per background and wrap width. WithAutoStyle would query the
// terminal on every build, so the style is picked from lipgloss instead.
var mdCache = struct {
	sync.Mutex
	byKey map[mdKey]*glamour.TermRenderer
}{byKey: map[mdKey]*glamour.TermRenderer{}}

func markdownRenderer(k mdKey) (*glamour.TermRenderer, error) {
	mdCache.Lock()
	defer mdCache.Unlock()
	if r, ok := mdCache.byKey[k]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(descriptionStyle(k.dark)),
		glamour.WithWordWrap(k.width),
	)
	if err != nil {
		return nil, err
	}
	mdCache.byKey[k] = r
	return r, nil
}

// renderMarkdown renders an event description for the detail view. Rendering errors fall back
// to the raw text.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	r, err := markdownRenderer(mdKey{dark: lipgloss.HasDarkBackground(), width: max(width, 10)})
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

// descriptionStyle is glamour's stock light/dark style recolored with the TUI palette and
// with outer margins removed so descriptions line up with the rest of the detail pane.
func descriptionStyle(dark bool) ansi.StyleConfig {
	cfg := styles.LightStyleConfig
	if dark {
		cfg = styles.DarkStyleConfig
	}
	pick := func(c lipgloss.AdaptiveColor) *string {
		v := c.Light
		if dark {
			v = c.Dark
		}
		return &v
	}
	underline := true
	noMargin := uint(0)

	cfg.Document.Margin = &noMargin
	cfg.Paragraph.Margin = &noMargin

	body := pick(colorSurfaceFg)
	for _, blk := range []*ansi.StyleBlock{&cfg.Heading, &cfg.H1, &cfg.H2, &cfg.H3} {
		blk.Color = body
	}
	cfg.Text.Color = body
	cfg.Code.Color = body
	cfg.CodeBlock.Color = body
	if cfg.CodeBlock.BackgroundColor == nil {
		cfg.CodeBlock.BackgroundColor = pick(colorControlBg)
	}

	accent := pick(colorAccent)
	cfg.Link.Color, cfg.Link.Underline = accent, &underline
	cfg.LinkText.Color, cfg.LinkText.Underline = accent, &underline
	return cfg
}
