package publish

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"hackevents/internal/model"
	"hackevents/internal/selection"
)

type RenderOptions struct {
	// Authed includes the private watch link.
	Authed bool
	// Location for rendered times (local time when nil).
	Location *time.Location
}

func eventFile(id int) string { return strconv.Itoa(id) + ".md" }

// RenderEventMarkdown renders one event page. related links to sibling pages.
func RenderEventMarkdown(e model.Event, related []model.Event, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + strings.TrimSpace(e.Name))
	writeLn("")
	writeLn("- ID: " + strconv.Itoa(e.ID))
	writeLn("- Type: " + model.FormatEventType(e.EventType))
	writeLn("- When: " + model.FormatTimeRange(e.StartTime, e.EndTime, opt.Location))
	if e.IsPrivate() {
		writeLn("- Access: hackers only")
	}
	var speakers []string
	for _, s := range e.Speakers {
		if n := strings.TrimSpace(s.Name); n != "" {
			speakers = append(speakers, n)
		}
	}
	if len(speakers) > 0 {
		writeLn("- Speakers: " + strings.Join(speakers, ", "))
	}
	links := selection.LinksFor(e, opt.Authed)
	if links.Public != "" {
		writeLn("- Watch: <" + links.Public + ">")
	}
	if links.Private != "" {
		writeLn("- Hacker link: <" + links.Private + ">")
	}

	if d := strings.TrimSpace(e.Description); d != "" {
		writeLn("")
		writeLn("## Description")
		writeLn("")
		writeLn(d)
	}

	if len(related) > 0 {
		writeLn("")
		writeLn("## Related")
		writeLn("")
		for _, r := range related {
			writeLn("- [" + strings.TrimSpace(r.Name) + "](" + eventFile(r.ID) + ")")
		}
	}
	return buf.String()
}

// RenderIndexMarkdown lists events in the given (display) order.
func RenderIndexMarkdown(title string, events []model.Event, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + title)
	writeLn("")
	if len(events) == 0 {
		writeLn("_No events._")
		return buf.String()
	}
	for i, e := range events {
		line := strconv.Itoa(i+1) + ". [" + strings.TrimSpace(e.Name) + "](events/" + eventFile(e.ID) + ")"
		line += " · " + model.FormatEventType(e.EventType)
		line += " · " + model.FormatTimeRange(e.StartTime, e.EndTime, opt.Location)
		writeLn(line)
	}
	return buf.String()
}
