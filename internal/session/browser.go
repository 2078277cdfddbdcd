package session

import (
	"hackevents/internal/auth"
	"hackevents/internal/derive"
	"hackevents/internal/model"
	"hackevents/internal/order"
	"hackevents/internal/reorder"
	"hackevents/internal/selection"
	"hackevents/internal/store"
)

// viewKey is every input the derived view depends on.
type viewKey struct {
	events uint64
	order  uint64
	authed bool
	filter model.ViewFilter
}

// Browser ties the event collection, custom order, sign-in flag, view filter, selection and
// reorder engine together. The derived view is recomputed lazily whenever its key changes.
type Browser struct {
	events    EventStore
	order     *order.Store
	auth      *auth.Provider
	engine    *reorder.Engine
	selection selection.Controller
	filter    model.ViewFilter

	orderRev uint64
	key      viewKey
	view     derive.Result
	computed bool
}

// New builds a Browser whose order and sign-in flag persist in kv.
func New(kv store.KV) *Browser {
	o := order.New(kv)
	return &Browser{
		order:  o,
		auth:   auth.New(kv),
		engine: reorder.New(o),
		filter: model.DefaultViewFilter(),
	}
}

func (b *Browser) currentKey() viewKey {
	return viewKey{
		events: b.events.Version(),
		order:  b.orderRev,
		authed: b.auth.IsAuthed(),
		filter: b.filter,
	}
}

// View returns the derived view for the current inputs.
func (b *Browser) View() derive.Result {
	k := b.currentKey()
	if b.computed && k == b.key {
		return b.view
	}
	b.view = derive.Derive(derive.Input{
		Events: b.events.Events(),
		Order:  b.order.Order(),
		Authed: k.authed,
		Filter: k.filter,
	})
	// Keep the selected type consistent with what is available.
	b.filter = b.view.Filter
	k.filter = b.filter
	b.key = k
	b.computed = true
	return b.view
}

func (b *Browser) VisibleIDs() []int { return derive.IDs(b.View().Visible) }

func (b *Browser) GatedIDs() []int { return derive.IDs(b.View().Gated) }

// Fetch lifecycle.

func (b *Browser) BeginFetch() uint64 { return b.events.BeginFetch() }

func (b *Browser) CompleteFetch(seq uint64, events []model.Event, err error) bool {
	return b.events.Complete(seq, events, err)
}

func (b *Browser) Status() Status { return b.events.Status() }

func (b *Browser) FetchErr() error { return b.events.Err() }

func (b *Browser) Events() []model.Event { return b.events.Events() }

// Filter.

func (b *Browser) Filter() model.ViewFilter {
	b.View()
	return b.filter
}

func (b *Browser) SetSearch(text string) { b.filter.SearchText = text }

func (b *Browser) SetType(t model.TypeFilter) { b.filter.SelectedType = t }

func (b *Browser) SetSort(m model.SortMode) { b.filter.SortMode = m }

// CycleType steps the type filter through all, then each available type.
func (b *Browser) CycleType() model.TypeFilter {
	v := b.View()
	opts := []model.TypeFilter{model.TypeAll}
	for _, t := range v.AvailableTypes {
		opts = append(opts, model.TypeFilter(t))
	}
	next := opts[0]
	for i, o := range opts {
		if o == b.filter.SelectedType {
			next = opts[(i+1)%len(opts)]
			break
		}
	}
	b.filter.SelectedType = next
	return next
}

func (b *Browser) ToggleSort() model.SortMode {
	if b.filter.SortMode == model.SortDuration {
		b.filter.SortMode = model.SortStartTime
	} else {
		b.filter.SortMode = model.SortDuration
	}
	return b.filter.SortMode
}

// Auth.

func (b *Browser) Authed() bool { return b.auth.IsAuthed() }

func (b *Browser) Login(user, pass string) error { return b.auth.Login(user, pass) }

func (b *Browser) Logout() error { return b.auth.Logout() }

// Selection.

func (b *Browser) Open(id int) { b.selection.Open(id) }

func (b *Browser) Request(raw string) { b.selection.Request(raw) }

func (b *Browser) Close() { b.selection.Close() }

func (b *Browser) Requested() string { return b.selection.Requested() }

// Current is the open event, re-resolved against the current collection and sign-in state.
func (b *Browser) Current() (model.Event, bool) {
	return b.selection.Current(b.events.Events(), b.auth.IsAuthed())
}

func (b *Browser) Related(e model.Event) []model.Event {
	return derive.Related(e, b.events.Events(), b.auth.IsAuthed())
}

// Order.

func (b *Browser) Order() []int { return b.order.Order() }

// HasCustomOrder reports whether a saved custom order is in effect.
func (b *Browser) HasCustomOrder() bool { return !b.order.IsEmpty() }

func (b *Browser) touchOrder(changed bool) {
	if changed {
		b.orderRev++
	}
}

// Swap exchanges the cards at visible indices i and j.
func (b *Browser) Swap(i, j int) (bool, error) {
	ok, err := b.order.Swap(i, j, b.VisibleIDs(), b.GatedIDs())
	b.touchOrder(ok)
	return ok, err
}

// MoveTo drags id to index of the visible list without pointer geometry.
func (b *Browser) MoveTo(id, index int) (bool, error) {
	visible := b.VisibleIDs()
	origin := -1
	for i, v := range visible {
		if v == id {
			origin = i
			break
		}
	}
	if origin < 0 {
		return false, nil
	}
	ok, err := b.order.CommitDrag(id, index, origin, visible)
	b.touchOrder(ok)
	return ok, err
}

func (b *Browser) ClearOrder() error {
	err := b.order.Clear()
	b.orderRev++
	return err
}

// Reorder mode.

func (b *Browser) ReorderMode() bool { return b.engine.Enabled() }

func (b *Browser) SetReorderMode(on bool) { b.engine.SetEnabled(on) }

func (b *Browser) Drag() (reorder.Session, bool) { return b.engine.Session() }

func (b *Browser) DragState() reorder.State { return b.engine.State() }

// PointerDown starts a drag. rects[i] must be the box of the i-th visible card.
func (b *Browser) PointerDown(p reorder.Point, rects []reorder.Rect) bool {
	return b.engine.PointerDown(p, rects, b.VisibleIDs())
}

func (b *Browser) PointerMove(p reorder.Point) bool { return b.engine.PointerMove(p) }

func (b *Browser) UpdateLayout(rects []reorder.Rect) { b.engine.UpdateLayout(rects) }

func (b *Browser) PointerUp() (bool, error) {
	ok, err := b.engine.PointerUp()
	b.touchOrder(ok)
	return ok, err
}

func (b *Browser) PointerCancel() { b.engine.PointerCancel() }

func (b *Browser) MoveUp(index int) (bool, error) {
	ok, err := b.engine.MoveUp(index, b.VisibleIDs(), b.GatedIDs())
	b.touchOrder(ok)
	return ok, err
}

func (b *Browser) MoveDown(index int) (bool, error) {
	ok, err := b.engine.MoveDown(index, b.VisibleIDs(), b.GatedIDs())
	b.touchOrder(ok)
	return ok, err
}
