package selection

import (
	"strconv"
	"strings"

	"hackevents/internal/model"
)

// Resolve returns the event that should be open for requested. Unknown, unparsable, and
// (for signed-out viewers) private events resolve to none.
func Resolve(requested string, events []model.Event, authed bool) (model.Event, bool) {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return model.Event{}, false
	}
	id, err := strconv.Atoi(requested)
	if err != nil {
		return model.Event{}, false
	}
	for _, e := range events {
		if e.ID != id {
			continue
		}
		if e.IsPrivate() && !authed {
			return model.Event{}, false
		}
		return e, true
	}
	return model.Event{}, false
}

// Controller holds the navigable selection (the requested id). The open event is never
// cached; Current re-resolves against whatever events and auth state it is handed.
type Controller struct {
	requested string
}

func (c *Controller) Open(id int) { c.requested = strconv.Itoa(id) }

// Request sets the raw requested value, e.g. from a command-line argument or saved state.
func (c *Controller) Request(raw string) { c.requested = strings.TrimSpace(raw) }

func (c *Controller) Close() { c.requested = "" }

func (c *Controller) Requested() string { return c.requested }

func (c *Controller) Current(events []model.Event, authed bool) (model.Event, bool) {
	return Resolve(c.requested, events, authed)
}

// Links are the event's watch links the viewer may see. The private link needs sign-in.
type Links struct {
	Public  string `json:"public,omitempty"`
	Private string `json:"private,omitempty"`
}

func LinksFor(e model.Event, authed bool) Links {
	l := Links{Public: strings.TrimSpace(e.PublicURL)}
	if authed {
		l.Private = strings.TrimSpace(e.PrivateURL)
	}
	return l
}
