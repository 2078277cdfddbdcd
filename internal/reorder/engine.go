package reorder

type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Committer applies reorder results to the custom order. *order.Store satisfies it.
type Committer interface {
	CommitDrag(draggedID, targetIndex, originIndex int, visible []int) (bool, error)
	Swap(a, b int, visible, gated []int) (bool, error)
}

// Session is one pointer-down-to-pointer-up drag gesture.
type Session struct {
	DraggedID   int
	OriginIndex int
	TargetIndex int
	// Offset is the pointer position relative to the dragged card's top-left corner.
	Offset  Point
	W       int
	H       int
	Pointer Point

	visible []int
	rects   []Rect
}

// ProxyOrigin is where the floating copy of the dragged card is drawn.
func (s Session) ProxyOrigin() Point { return s.Pointer.Sub(s.Offset) }

// Engine drives drag and button reordering. Drags only start while reorder mode is enabled.
type Engine struct {
	c       Committer
	enabled bool
	session *Session
}

func New(c Committer) *Engine {
	return &Engine{c: c}
}

func (e *Engine) Enabled() bool { return e.enabled }

// SetEnabled toggles reorder mode. Leaving reorder mode abandons any active drag.
func (e *Engine) SetEnabled(on bool) {
	e.enabled = on
	if !on {
		e.session = nil
	}
}

func (e *Engine) State() State {
	if e.session != nil {
		return Dragging
	}
	return Idle
}

// Session returns a copy of the active drag, if any.
func (e *Engine) Session() (Session, bool) {
	if e.session == nil {
		return Session{}, false
	}
	return *e.session, true
}

// PointerDown starts a drag on the card under p. rects[i] is the box of visible[i].
// It reports whether a drag started.
func (e *Engine) PointerDown(p Point, rects []Rect, visible []int) bool {
	if !e.enabled || e.session != nil {
		return false
	}
	i := HitTest(rects, p)
	if i < 0 || i >= len(visible) {
		return false
	}
	r := rects[i]
	e.session = &Session{
		DraggedID:   visible[i],
		OriginIndex: i,
		TargetIndex: i,
		Offset:      p.Sub(r.Min()),
		W:           r.W,
		H:           r.H,
		Pointer:     p,
		visible:     append([]int{}, visible...),
		rects:       append([]Rect{}, rects...),
	}
	return true
}

// PointerMove updates the live target to the nearest slot. The rects describe the grid with
// the dragged card lifted out, so slot i is drop index i and the origin slot is a valid target.
// It reports whether the target changed.
func (e *Engine) PointerMove(p Point) bool {
	s := e.session
	if s == nil {
		return false
	}
	s.Pointer = p
	i := Nearest(s.rects, p, -1)
	if i < 0 || i == s.TargetIndex {
		return false
	}
	s.TargetIndex = i
	return true
}

// UpdateLayout replaces the card boxes used for hit testing (after a resize or scroll).
func (e *Engine) UpdateLayout(rects []Rect) {
	if e.session == nil {
		return
	}
	e.session.rects = append([]Rect{}, rects...)
}

// PointerUp ends the drag and commits it when the target moved. The session is cleared
// either way.
func (e *Engine) PointerUp() (bool, error) {
	s := e.session
	e.session = nil
	if s == nil || s.TargetIndex == s.OriginIndex || e.c == nil {
		return false, nil
	}
	return e.c.CommitDrag(s.DraggedID, s.TargetIndex, s.OriginIndex, s.visible)
}

func (e *Engine) PointerCancel() {
	e.session = nil
}

func CanMoveUp(index, count int) bool { return index > 0 && index < count }

func CanMoveDown(index, count int) bool { return index >= 0 && index < count-1 }

// MoveUp swaps visible[index] with its predecessor.
func (e *Engine) MoveUp(index int, visible, gated []int) (bool, error) {
	if !e.enabled || e.c == nil || !CanMoveUp(index, len(visible)) {
		return false, nil
	}
	return e.c.Swap(index, index-1, visible, gated)
}

// MoveDown swaps visible[index] with its successor.
func (e *Engine) MoveDown(index int, visible, gated []int) (bool, error) {
	if !e.enabled || e.c == nil || !CanMoveDown(index, len(visible)) {
		return false, nil
	}
	return e.c.Swap(index, index+1, visible, gated)
}
