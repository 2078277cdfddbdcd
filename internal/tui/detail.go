package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hackevents/internal/model"
	"hackevents/internal/selection"
)

const detailIndent = 2

func (m appModel) updateDetail(msg tea.KeyMsg, e model.Event) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.browser.Close()
		m.detailScroll = 0
		m.saveState()
		m.focusCursor()
	case key.Matches(msg, m.keys.Up):
		m.scrollDetail(-1)
	case key.Matches(msg, m.keys.Down):
		m.scrollDetail(1)
	default:
		// 1-9 jump to a related event.
		s := msg.String()
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			related := m.browser.Related(e)
			if i := int(s[0] - '1'); i < len(related) {
				m.browser.Open(related[i].ID)
				m.detailScroll = 0
				m.saveState()
			}
		}
	}
	return m, nil
}

func (m *appModel) scrollDetail(delta int) {
	m.detailScroll += delta
	if e, ok := m.browser.Current(); ok {
		if limit := len(m.detailLines(e, m.width)) - m.grid.bodyHeight(); m.detailScroll > limit {
			m.detailScroll = limit
		}
	}
	if m.detailScroll < 0 {
		m.detailScroll = 0
	}
}

// detailLines renders the open event as a flat list of lines, width cells wide at most.
func (m appModel) detailLines(e model.Event, width int) []string {
	w := width - 2*detailIndent
	if w < 10 {
		w = 10
	}
	heading := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)

	title := e.Name
	if e.IsPrivate() {
		title += " " + glyphLock()
	}
	var lines []string
	lines = append(lines, heading.Render(truncateToWidth(title, w)))
	lines = append(lines, typeBadge(e.EventType)+"  "+styleMuted().Render(model.FormatTimeRange(e.StartTime, e.EndTime, m.loc)))
	if sp := speakerLine(e); sp != "" {
		lines = append(lines, "Speakers: "+sp)
	}

	if desc := renderMarkdown(e.Description, w); desc != "" {
		lines = append(lines, "")
		lines = append(lines, strings.Split(desc, "\n")...)
	}

	links := selection.LinksFor(e, m.browser.Authed())
	if links.Public != "" || links.Private != "" {
		lines = append(lines, "", heading.Render("Links"))
		link := lipgloss.NewStyle().Foreground(colorAccent).Underline(true)
		if links.Public != "" {
			lines = append(lines, "Watch: "+link.Render(links.Public))
		}
		if links.Private != "" {
			lines = append(lines, "Hacker link: "+link.Render(links.Private))
		}
	}
	if !m.browser.Authed() && strings.TrimSpace(e.PrivateURL) != "" {
		lines = append(lines, styleMuted().Render("Sign in (L) for the hacker link."))
	}

	if related := m.browser.Related(e); len(related) > 0 {
		lines = append(lines, "", heading.Render("Related events"))
		for i, r := range related {
			label := r.Name + "  " + styleMuted().Render(model.FormatEventType(r.EventType))
			if i < 9 {
				label = strconv.Itoa(i+1) + " " + glyphArrow() + " " + label
			} else {
				label = "  " + glyphBullet() + " " + label
			}
			lines = append(lines, truncateToWidth(label, w))
		}
	}
	return lines
}

func (m appModel) viewDetail(e model.Event) string {
	lines := m.detailLines(e, m.width)
	h := m.grid.bodyHeight()

	start := m.detailScroll
	if maxStart := len(lines) - h; start > maxStart {
		start = maxStart
	}
	if start < 0 {
		start = 0
	}
	end := start + h
	if end > len(lines) {
		end = len(lines)
	}

	pad := strings.Repeat(" ", detailIndent)
	out := make([]string, 0, end-start)
	for _, ln := range lines[start:end] {
		out = append(out, pad+ln)
	}
	return strings.Join(out, "\n")
}
