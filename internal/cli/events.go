package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"hackevents/internal/api"
	"hackevents/internal/derive"
	"hackevents/internal/log"
	"hackevents/internal/model"
	"hackevents/internal/selection"
)

func newListCmd(app *App) *cobra.Command {
	var search, typ, sortMode string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events as the events view shows them (sorted, custom-ordered, gated, filtered)",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := model.ParseTypeFilter(typ)
			if err != nil {
				return writeErr(cmd, err)
			}
			sm, err := model.ParseSortMode(sortMode)
			if err != nil {
				return writeErr(cmd, err)
			}

			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()
			if err := e.load(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}

			b := e.browser
			b.SetSearch(search)
			b.SetType(t)
			b.SetSort(sm)
			v := b.View()

			meta := map[string]any{
				"count":          len(v.Visible),
				"total":          len(v.Gated),
				"authed":         b.Authed(),
				"filter":         v.Filter,
				"availableTypes": v.AvailableTypes,
				"customOrder":    b.HasCustomOrder(),
			}
			hints := []string{
				"hackevents show <id>",
				"hackevents order move <id> --to <index>",
			}
			return writeOut(cmd, app, map[string]any{
				"data":   redact(v.Visible, b.Authed()),
				"meta":   meta,
				"_hints": hints,
			})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive match on name, description or speaker")
	cmd.Flags().StringVar(&typ, "type", "all", "Event type (all|workshop|activity|tech_talk)")
	cmd.Flags().StringVar(&sortMode, "sort", "start_time", "Sort mode (start_time|duration)")
	return cmd
}

type eventDetail struct {
	Event     model.Event     `json:"event"`
	Type      string          `json:"type"`
	TimeRange string          `json:"timeRange"`
	Links     selection.Links `json:"links"`
	Related   []model.Event   `json:"related"`
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <event-id>",
		Short: "Show one event with its links and related events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return writeErr(cmd, errNotFound("event", args[0]))
			}

			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()

			ev, err := e.source.FetchEventByID(cmd.Context(), id)
			if api.IsNotFound(err) {
				return writeErr(cmd, errNotFound("event", args[0]))
			}
			if err != nil {
				return writeErr(cmd, err)
			}

			authed := e.browser.Authed()
			open, ok := selection.Resolve(args[0], []model.Event{ev}, authed)
			if !ok {
				return writeErr(cmd, errNotFound("event", args[0]))
			}

			related := []model.Event{}
			if len(open.RelatedEvents) > 0 {
				if err := e.load(cmd.Context()); err != nil {
					log.Error("load related events", err, "id", id)
				} else {
					related = derive.Related(open, e.browser.Events(), authed)
				}
			}

			return writeOut(cmd, app, map[string]any{
				"data": eventDetail{
					Event:     redactOne(open, authed),
					Type:      model.FormatEventType(open.EventType),
					TimeRange: model.FormatTimeRange(open.StartTime, open.EndTime, nil),
					Links:     selection.LinksFor(open, authed),
					Related:   redact(related, authed),
				},
			})
		},
	}
}

// redact blanks private links for signed-out viewers.
func redact(events []model.Event, authed bool) []model.Event {
	if authed {
		return events
	}
	out := make([]model.Event, len(events))
	for i, e := range events {
		out[i] = redactOne(e, false)
	}
	return out
}

func redactOne(e model.Event, authed bool) model.Event {
	if !authed {
		e.PrivateURL = ""
	}
	return e
}
