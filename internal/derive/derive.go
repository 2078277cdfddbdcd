package derive

import (
	"sort"
	"strings"

	"hackevents/internal/model"
)

// Input is the complete dependency set of the events view. Derive reads nothing else.
type Input struct {
	Events []model.Event
	Order  []int
	Authed bool
	Filter model.ViewFilter
}

// Result holds every intermediate stage callers need: Ordered feeds the reorder baseline,
// Gated feeds the type chips and swap baseline, Visible is what gets rendered.
type Result struct {
	Ordered        []model.Event
	Gated          []model.Event
	Visible        []model.Event
	AvailableTypes []model.EventType
	// Filter is the input filter after normalization (SelectedType reset to all when the
	// type is not present in Gated).
	Filter model.ViewFilter
}

// Derive runs the pipeline: sort, custom order, auth gate, type filter, search.
// The stage order is significant.
func Derive(in Input) Result {
	sorted := SortEvents(in.Events, in.Filter.SortMode)
	ordered := ApplyCustomOrder(sorted, in.Order)
	gated := Gate(ordered, in.Authed)
	avail := AvailableTypes(gated)
	f := NormalizeFilter(in.Filter, avail)

	visible := FilterByType(gated, f.SelectedType)
	visible = Search(visible, f.SearchText)

	return Result{
		Ordered:        ordered,
		Gated:          gated,
		Visible:        visible,
		AvailableTypes: avail,
		Filter:         f,
	}
}

// SortEvents returns a stably sorted copy. Unknown modes sort by start time.
func SortEvents(events []model.Event, mode model.SortMode) []model.Event {
	out := append([]model.Event{}, events...)
	if mode == model.SortDuration {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Duration() < out[j].Duration()
		})
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// ApplyCustomOrder moves events named in order to the front (in order), skipping ids that
// match nothing, then appends the rest in their incoming relative order.
func ApplyCustomOrder(events []model.Event, order []int) []model.Event {
	if len(order) == 0 {
		return events
	}
	byID := make(map[int]int, len(events))
	for i, e := range events {
		if _, dup := byID[e.ID]; !dup {
			byID[e.ID] = i
		}
	}

	out := make([]model.Event, 0, len(events))
	seen := map[int]bool{}
	for _, id := range order {
		i, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		out = append(out, events[i])
		seen[id] = true
	}
	for _, e := range events {
		if !seen[e.ID] {
			out = append(out, e)
		}
	}
	return out
}

// Gate drops private events for unauthenticated viewers.
func Gate(events []model.Event, authed bool) []model.Event {
	if authed {
		return events
	}
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if e.IsPrivate() {
			continue
		}
		out = append(out, e)
	}
	return out
}

func FilterByType(events []model.Event, t model.TypeFilter) []model.Event {
	if t == "" || t == model.TypeAll {
		return events
	}
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if string(e.EventType) == string(t) {
			out = append(out, e)
		}
	}
	return out
}

// Search keeps events whose name, description, or any speaker name contains the query
// (case-insensitive). A blank query keeps everything.
func Search(events []model.Event, text string) []model.Event {
	if strings.TrimSpace(text) == "" {
		return events
	}
	q := strings.ToLower(text)
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if Matches(e, q) {
			out = append(out, e)
		}
	}
	return out
}

// Matches expects q already lowercased.
func Matches(e model.Event, q string) bool {
	if strings.Contains(strings.ToLower(e.Name), q) {
		return true
	}
	if e.Description != "" && strings.Contains(strings.ToLower(e.Description), q) {
		return true
	}
	for _, s := range e.Speakers {
		if strings.Contains(strings.ToLower(s.Name), q) {
			return true
		}
	}
	return false
}

// AvailableTypes lists the event types present in events, in EventTypePriority order.
func AvailableTypes(events []model.Event) []model.EventType {
	present := map[model.EventType]bool{}
	for _, e := range events {
		present[e.EventType] = true
	}
	out := make([]model.EventType, 0, len(model.EventTypePriority))
	for _, t := range model.EventTypePriority {
		if present[t] {
			out = append(out, t)
		}
	}
	return out
}

// NormalizeFilter resets SelectedType to all when it is unknown or not available, and fills
// in a default sort mode.
func NormalizeFilter(f model.ViewFilter, available []model.EventType) model.ViewFilter {
	if f.SortMode == "" {
		f.SortMode = model.SortStartTime
	}
	if f.SelectedType == "" || f.SelectedType == model.TypeAll {
		f.SelectedType = model.TypeAll
		return f
	}
	for _, t := range available {
		if string(t) == string(f.SelectedType) {
			return f
		}
	}
	f.SelectedType = model.TypeAll
	return f
}

// IDs returns the event ids in order.
func IDs(events []model.Event) []int {
	out := make([]int, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

// Find returns the first event with id.
func Find(events []model.Event, id int) (model.Event, bool) {
	for _, e := range events {
		if e.ID == id {
			return e, true
		}
	}
	return model.Event{}, false
}

// Related resolves e.RelatedEvents against all, in order. Dangling ids are dropped and
// private events are dropped for unauthenticated viewers.
func Related(e model.Event, all []model.Event, authed bool) []model.Event {
	out := make([]model.Event, 0, len(e.RelatedEvents))
	for _, id := range e.RelatedEvents {
		r, ok := Find(all, id)
		if !ok {
			continue
		}
		if r.IsPrivate() && !authed {
			continue
		}
		out = append(out, r)
	}
	return out
}
