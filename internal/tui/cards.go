package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"hackevents/internal/model"
)

type cardState int

const (
	cardNormal cardState = iota
	cardFocused
	cardProxy
)

func cardInnerWidth(w int) int {
	// border + horizontal padding
	if w-4 < 1 {
		return 1
	}
	return w - 4
}

func cardStyle(state cardState) lipgloss.Style {
	st := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Padding(0, 1)
	switch state {
	case cardFocused:
		st = st.BorderForeground(colorSelectedBorder)
	case cardProxy:
		st = st.Border(lipgloss.ThickBorder()).BorderForeground(colorAccent)
	}
	return st
}

func speakerLine(e model.Event) string {
	if len(e.Speakers) == 0 {
		return ""
	}
	names := make([]string, 0, len(e.Speakers))
	for _, s := range e.Speakers {
		if n := strings.TrimSpace(s.Name); n != "" {
			names = append(names, n)
		}
	}
	return strings.Join(names, ", ")
}

// renderCard draws one event card exactly w cells wide and cardHeight lines tall.
func renderCard(e model.Event, w int, state cardState, grip bool, loc *time.Location) string {
	inner := cardInnerWidth(w)

	title := e.Name
	if e.IsPrivate() {
		title = glyphLock() + " " + title
	}
	titleLine := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Render(truncateToWidth(title, inner))

	badge := typeBadge(e.EventType)
	if grip {
		g := styleMuted().Render(glyphGrip())
		gap := inner - lipgloss.Width(badge) - lipgloss.Width(g)
		if gap >= 1 {
			badge += strings.Repeat(" ", gap) + g
		}
	}

	meta := lipgloss.NewStyle().Foreground(colorCardMetaFg)
	when := meta.Render(truncateToWidth(model.FormatTimeRange(e.StartTime, e.EndTime, loc), inner))
	who := styleMuted().Render(truncateToWidth(speakerLine(e), inner))

	body := normalizePane(strings.Join([]string{titleLine, badge, when, who}, "\n"), inner, cardHeight-2)
	return cardStyle(state).Render(body)
}

// renderPlaceholder marks the slot a dragged card will drop into.
func renderPlaceholder(w int) string {
	inner := cardInnerWidth(w)
	label := styleMuted().Render(truncateToWidth("drop here", inner))
	body := normalizePane("\n"+lipgloss.PlaceHorizontal(inner, lipgloss.Center, label), inner, cardHeight-2)
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(colorPlaceholder).
		Padding(0, 1).
		Render(body)
}
