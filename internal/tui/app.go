package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hackevents/internal/api"
	"hackevents/internal/auth"
	"hackevents/internal/log"
	"hackevents/internal/model"
	"hackevents/internal/reorder"
	"hackevents/internal/session"
	"hackevents/internal/store"
)

const fetchTimeout = 20 * time.Second

type eventsLoadedMsg struct {
	seq    uint64
	events []model.Event
	err    error
}

func fetchEventsCmd(src api.Source, seq uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		evs, err := src.FetchAllEvents(ctx)
		return eventsLoadedMsg{seq: seq, events: evs, err: err}
	}
}

type appModel struct {
	store   store.Store
	source  api.Source
	browser *session.Browser
	keys    keyMap
	loc     *time.Location

	width     int
	height    int
	cardWidth int
	grid      gridLayout

	// cursor is the focused visible index.
	cursor int

	search    textinput.Model
	searching bool

	login *loginModal

	detailScroll int

	minibuffer string
}

func newAppModel(opts Options) appModel {
	kv := opts.KV
	if kv == nil {
		kv = store.NewMemKV()
	}
	m := appModel{
		store:   opts.Store,
		source:  opts.Source,
		browser: session.New(kv),
		keys:    defaultKeyMap(),
		loc:     time.Local,
	}
	if opts.Config != nil && opts.Config.TUI != nil {
		m.cardWidth = opts.Config.TUI.CardWidth
	}

	m.search = textinput.New()
	m.search.Prompt = "/ "
	m.search.Placeholder = "Search events"
	m.search.CharLimit = 200
	m.search.Width = 40

	if st, err := opts.Store.LoadTUIState(); err != nil {
		log.Error("load tui state", err)
	} else {
		if st.OpenEventID != "" {
			m.browser.Request(st.OpenEventID)
		}
		m.browser.SetReorderMode(st.ReorderMode)
	}

	m.grid = newGridLayout(0, 0, m.cardWidth)
	return m
}

func (m appModel) Init() tea.Cmd {
	return m.reload()
}

func (m appModel) reload() tea.Cmd {
	if m.source == nil {
		return nil
	}
	seq := m.browser.BeginFetch()
	log.Debug("fetching events", "seq", seq)
	return fetchEventsCmd(m.source, seq)
}

func (m appModel) visible() []model.Event {
	return m.browser.View().Visible
}

func (m *appModel) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// relayout recomputes the grid for the current size and hands the card boxes to the drag engine.
func (m *appModel) relayout() {
	scroll := m.grid.scroll
	m.grid = newGridLayout(m.width, m.height, m.cardWidth)
	m.grid.scroll = scroll
	n := len(m.visible())
	m.grid.clampScroll(n)
	m.browser.UpdateLayout(m.grid.rects(n))
}

// focusCursor clamps the cursor and scrolls it into view.
func (m *appModel) focusCursor() {
	m.clampCursor()
	m.relayout()
	n := len(m.visible())
	m.grid.ensureVisible(m.cursor, n)
	m.browser.UpdateLayout(m.grid.rects(n))
}

func (m appModel) saveState() {
	st := &store.TUIState{
		Version:     1,
		OpenEventID: m.browser.Requested(),
		ReorderMode: m.browser.ReorderMode(),
	}
	if err := m.store.SaveTUIState(st); err != nil {
		log.Error("save tui state", err)
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.focusCursor()
		return m, nil

	case eventsLoadedMsg:
		if !m.browser.CompleteFetch(msg.seq, msg.events, msg.err) {
			log.Debug("dropped stale event fetch", "seq", msg.seq)
			return m, nil
		}
		if msg.err != nil {
			log.Error("fetch events", msg.err)
		} else {
			log.Info("events loaded", "count", len(msg.events))
		}
		m.focusCursor()
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	// Cursor blink and friends.
	var cmd tea.Cmd
	switch {
	case m.login != nil:
		_, cmd = m.login.update(msg)
	case m.searching:
		m.search, cmd = m.search.Update(msg)
	}
	return m, cmd
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.login != nil {
		return m.updateLogin(msg)
	}
	if m.searching {
		return m.updateSearch(msg)
	}
	if _, dragging := m.browser.Drag(); dragging {
		if key.Matches(msg, m.keys.Back) {
			m.browser.PointerCancel()
			m.minibuffer = "Drag cancelled"
		}
		return m, nil
	}
	m.minibuffer = ""

	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	switch {
	case key.Matches(msg, m.keys.Login):
		return m.openLogin()
	case key.Matches(msg, m.keys.Logout):
		m.logout()
		return m, nil
	case key.Matches(msg, m.keys.Retry):
		m.minibuffer = "Reloading…"
		return m, m.reload()
	}

	if e, ok := m.browser.Current(); ok {
		return m.updateDetail(msg, e)
	}
	return m.updateGrid(msg)
}

func (m appModel) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.visible())
	switch {
	case key.Matches(msg, m.keys.Left):
		m.cursor--
	case key.Matches(msg, m.keys.Right):
		m.cursor++
	case key.Matches(msg, m.keys.Up):
		if m.cursor-m.grid.cols >= 0 {
			m.cursor -= m.grid.cols
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor+m.grid.cols < n {
			m.cursor += m.grid.cols
		}
	case key.Matches(msg, m.keys.Open):
		if m.cursor >= 0 && m.cursor < n {
			m.browser.Open(m.visible()[m.cursor].ID)
			m.detailScroll = 0
			m.saveState()
		}
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.browser.Filter().SearchText != "" {
			m.search.SetValue("")
			m.browser.SetSearch("")
		}
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Type):
		m.minibuffer = "Type: " + typeLabel(m.browser.CycleType())
	case key.Matches(msg, m.keys.Sort):
		m.minibuffer = "Sort: " + sortLabel(m.browser.ToggleSort())
	case key.Matches(msg, m.keys.Reorder):
		on := !m.browser.ReorderMode()
		m.browser.SetReorderMode(on)
		m.saveState()
		if on {
			m.minibuffer = "Reorder mode on: drag cards or use K/J"
		} else {
			m.minibuffer = "Reorder mode off"
		}
	case key.Matches(msg, m.keys.MoveUp):
		m.move(-1)
	case key.Matches(msg, m.keys.MoveDown):
		m.move(1)
	case key.Matches(msg, m.keys.Reset):
		if err := m.browser.ClearOrder(); err != nil {
			log.Error("clear order", err)
		}
		m.minibuffer = "Custom order cleared"
	}
	m.focusCursor()
	return m, nil
}

// move shifts the focused card one slot and keeps it focused.
func (m *appModel) move(delta int) {
	if !m.browser.ReorderMode() {
		m.minibuffer = "Press o to enable reorder mode"
		return
	}
	var (
		ok  bool
		err error
	)
	if delta < 0 {
		ok, err = m.browser.MoveUp(m.cursor)
	} else {
		ok, err = m.browser.MoveDown(m.cursor)
	}
	if err != nil {
		log.Error("save order", err)
	}
	if ok {
		m.cursor += delta
	}
}

func (m appModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.browser.SetSearch("")
		m.focusCursor()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.browser.SetSearch(m.search.Value())
	m.cursor = 0
	m.focusCursor()
	return m, cmd
}

func (m appModel) openLogin() (tea.Model, tea.Cmd) {
	if m.browser.Authed() {
		m.minibuffer = "Already signed in"
		return m, nil
	}
	m.login = newLoginModal()
	return m, m.login.setFocus(loginFocusUser)
}

func (m appModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, cmd := m.login.update(msg)
	switch action {
	case loginCancel:
		m.login = nil
	case loginSubmit:
		user, pass := m.login.credentials()
		err := m.browser.Login(user, pass)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			m.login.err = "Invalid username or password"
			break
		}
		if err != nil {
			// Signed in for this session; only the write failed.
			log.Error("persist sign-in", err)
		}
		log.Info("signed in", "user", user)
		m.login = nil
		m.minibuffer = "Signed in as " + user
		m.focusCursor()
	}
	return m, cmd
}

func (m *appModel) logout() {
	if !m.browser.Authed() {
		m.minibuffer = "Not signed in"
		return
	}
	if err := m.browser.Logout(); err != nil {
		log.Error("sign out", err)
	}
	log.Info("signed out")
	m.minibuffer = "Signed out"
	m.focusCursor()
}

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.login != nil || m.searching {
		return m, nil
	}
	_, detailOpen := m.browser.Current()

	if msg.Action == tea.MouseActionPress {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if detailOpen {
				m.scrollDetail(-3)
			} else {
				m.scrollGrid(-1)
			}
			return m, nil
		case tea.MouseButtonWheelDown:
			if detailOpen {
				m.scrollDetail(3)
			} else {
				m.scrollGrid(1)
			}
			return m, nil
		}
	}
	if detailOpen {
		return m, nil
	}

	p := reorder.Point{X: msg.X, Y: msg.Y}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		rects := m.grid.rects(len(m.visible()))
		if m.browser.ReorderMode() {
			if m.browser.PointerDown(p, rects) {
				s, _ := m.browser.Drag()
				m.cursor = s.OriginIndex
				m.minibuffer = ""
			}
			return m, nil
		}
		if i := reorder.HitTest(rects, p); i >= 0 {
			m.cursor = i
			m.browser.Open(m.visible()[i].ID)
			m.detailScroll = 0
			m.saveState()
		}

	case tea.MouseActionMotion:
		m.browser.PointerMove(p)

	case tea.MouseActionRelease:
		s, dragging := m.browser.Drag()
		if !dragging {
			return m, nil
		}
		changed, err := m.browser.PointerUp()
		if err != nil {
			log.Error("save order", err)
		}
		if changed {
			for i, e := range m.visible() {
				if e.ID == s.DraggedID {
					m.cursor = i
					break
				}
			}
			m.minibuffer = "Order saved"
		}
		m.focusCursor()
	}
	return m, nil
}

func (m *appModel) scrollGrid(delta int) {
	m.grid.scroll += delta
	n := len(m.visible())
	m.grid.clampScroll(n)
	m.browser.UpdateLayout(m.grid.rects(n))
}

func typeLabel(t model.TypeFilter) string {
	if t == model.TypeAll || t == "" {
		return "All"
	}
	return model.FormatEventType(model.EventType(t))
}

func sortLabel(s model.SortMode) string {
	if s == model.SortDuration {
		return "Duration"
	}
	return "Start time"
}

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	var body string
	if e, ok := m.browser.Current(); ok {
		body = m.viewDetail(e)
	} else {
		body = m.viewGrid()
	}
	screen := strings.Join([]string{
		normalizePane(m.viewHeader(), m.width, headerLines),
		normalizePane(body, m.width, m.grid.bodyHeight()),
		normalizePane(m.viewFooter(), m.width, footerLines),
	}, "\n")

	if s, ok := m.browser.Drag(); ok {
		for _, e := range m.visible() {
			if e.ID == s.DraggedID {
				o := s.ProxyOrigin()
				screen = placeBlock(screen, renderCard(e, s.W, cardProxy, true, m.loc), o.X, o.Y)
				break
			}
		}
	}
	if m.login != nil {
		box := m.login.view(m.width)
		x := (m.width - lipgloss.Width(box)) / 2
		y := (m.height - lipgloss.Height(box)) / 2
		screen = placeBlock(screen, box, x, y)
	}
	// Overlays may run past the right edge.
	return normalizePane(screen, m.width, m.height)
}

func (m appModel) viewHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Render("Hack the North events")
	who := styleMuted().Render("guest")
	if m.browser.Authed() {
		who = lipgloss.NewStyle().Foreground(colorAccent).Render("signed in")
	}
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(who)
	if gap < 1 {
		gap = 1
	}
	line1 := title + strings.Repeat(" ", gap) + who

	f := m.browser.Filter()
	search := m.search.View()
	if !m.searching {
		if f.SearchText == "" {
			search = styleMuted().Render("/ search")
		} else {
			search = "/ " + f.SearchText
		}
	}
	chips := []string{
		search,
		"type: " + typeLabel(f.SelectedType),
		"sort: " + sortLabel(f.SortMode),
	}
	if m.browser.ReorderMode() {
		chips = append(chips, lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent).Padding(0, 1).Render("reorder"))
	}
	if m.browser.HasCustomOrder() {
		chips = append(chips, styleMuted().Render("custom order"))
	}
	line2 := strings.Join(chips, "   ")

	return line1 + "\n" + line2 + "\n" + styleMuted().Render(strings.Repeat(glyphHRule(), m.width))
}

func (m appModel) viewFooter() string {
	status := m.minibuffer
	if status == "" {
		status = m.statusLine()
	}
	var help []string
	switch {
	case m.login != nil:
		help = []string{"tab next", "enter sign in", "esc cancel"}
	case m.searching:
		help = []string{"enter done", "esc clear"}
	default:
		if _, ok := m.browser.Drag(); ok {
			help = []string{"release to drop", "esc cancel"}
		} else if _, ok := m.browser.Current(); ok {
			help = helpFor(m.keys.Back, m.keys.Up, m.keys.Down)
			help = append(help, "1-9 related")
		} else {
			help = helpFor(m.keys.Open, m.keys.Search, m.keys.Type, m.keys.Sort, m.keys.Reorder)
			if m.browser.ReorderMode() {
				help = append(help, helpFor(m.keys.MoveUp, m.keys.MoveDown, m.keys.Reset)...)
			}
		}
		if m.browser.Authed() {
			help = append(help, helpFor(m.keys.Logout)...)
		} else {
			help = append(help, helpFor(m.keys.Login)...)
		}
		help = append(help, helpFor(m.keys.Quit)...)
	}
	return status + "\n" + styleMuted().Render(strings.Join(help, "  "))
}

func (m appModel) statusLine() string {
	if m.browser.DragState() == reorder.Dragging {
		s, _ := m.browser.Drag()
		return fmt.Sprintf("Moving to position %d", s.TargetIndex+1)
	}
	switch m.browser.Status() {
	case session.StatusLoading:
		return "Loading events…"
	case session.StatusFailed:
		return lipgloss.NewStyle().Foreground(colorError).Render("Failed to load events (r to retry)")
	}
	return ""
}

// slot is one position in the rendered grid: an event card or the drop placeholder.
type slot struct {
	event       model.Event
	placeholder bool
}

// previewSlots is the grid as it would look if the drag were dropped now: the dragged card is
// lifted out and a placeholder sits at the target index.
func previewSlots(visible []model.Event, s reorder.Session, dragging bool) []slot {
	out := make([]slot, 0, len(visible))
	if !dragging {
		for _, e := range visible {
			out = append(out, slot{event: e})
		}
		return out
	}
	for _, e := range visible {
		if e.ID != s.DraggedID {
			out = append(out, slot{event: e})
		}
	}
	at := s.TargetIndex
	if at > len(out) {
		at = len(out)
	}
	if at < 0 {
		at = 0
	}
	out = append(out, slot{})
	copy(out[at+1:], out[at:])
	out[at] = slot{placeholder: true}
	return out
}

func (m appModel) viewGrid() string {
	visible := m.visible()
	if len(visible) == 0 {
		switch m.browser.Status() {
		case session.StatusIdle, session.StatusLoading:
			return styleMuted().Render("Loading events…")
		case session.StatusFailed:
			msg := "Failed to load events."
			if err := m.browser.FetchErr(); err != nil {
				msg += " " + err.Error()
			}
			return lipgloss.NewStyle().Foreground(colorError).Render(msg) + "\n" + styleMuted().Render("Press r to retry.")
		}
		return styleMuted().Render("No events match.")
	}

	s, dragging := m.browser.Drag()
	slots := previewSlots(visible, s, dragging)
	grip := m.browser.ReorderMode()

	g := m.grid
	gutter := strings.Repeat(" ", cardGutter)
	var rows []string
	for r := g.scroll; r < g.scroll+g.visibleRows() && r*g.cols < len(slots); r++ {
		lines := make([]string, cardHeight)
		for c := 0; c < g.cols; c++ {
			i := r*g.cols + c
			if i >= len(slots) {
				break
			}
			var card string
			if slots[i].placeholder {
				card = renderPlaceholder(g.cardW)
			} else {
				state := cardNormal
				if !dragging && i == m.cursor {
					state = cardFocused
				}
				card = renderCard(slots[i].event, g.cardW, state, grip, m.loc)
			}
			for j, ln := range strings.Split(normalizePane(card, g.cardW, cardHeight), "\n") {
				if c > 0 {
					lines[j] += gutter
				}
				lines[j] += ln
			}
		}
		rows = append(rows, strings.Join(lines, "\n"))
	}
	return strings.Join(rows, "\n")
}
