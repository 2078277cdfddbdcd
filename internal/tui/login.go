package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type loginFocus int

const (
	loginFocusUser loginFocus = iota
	loginFocusPass
)

type loginModal struct {
	user  textinput.Model
	pass  textinput.Model
	focus loginFocus
	err   string
}

func newLoginModal() *loginModal {
	l := &loginModal{}
	l.user = textinput.New()
	l.user.Prompt = "Username: "
	l.user.CharLimit = 64
	l.user.Width = 24
	l.pass = textinput.New()
	l.pass.Prompt = "Password: "
	l.pass.CharLimit = 64
	l.pass.Width = 24
	l.pass.EchoMode = textinput.EchoPassword
	l.pass.EchoCharacter = '•'
	return l
}

func (l *loginModal) setFocus(f loginFocus) tea.Cmd {
	l.focus = f
	if f == loginFocusPass {
		l.user.Blur()
		return l.pass.Focus()
	}
	l.pass.Blur()
	return l.user.Focus()
}

func (l *loginModal) credentials() (string, string) {
	return strings.TrimSpace(l.user.Value()), l.pass.Value()
}

type loginAction int

const (
	loginNone loginAction = iota
	loginSubmit
	loginCancel
)

func (l *loginModal) update(msg tea.Msg) (loginAction, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc", "ctrl+g":
			return loginCancel, nil
		case "tab", "shift+tab", "up", "down":
			if l.focus == loginFocusUser {
				return loginNone, l.setFocus(loginFocusPass)
			}
			return loginNone, l.setFocus(loginFocusUser)
		case "enter":
			if l.focus == loginFocusUser && l.pass.Value() == "" {
				return loginNone, l.setFocus(loginFocusPass)
			}
			return loginSubmit, nil
		}
		l.err = ""
	}

	var cmd tea.Cmd
	if l.focus == loginFocusPass {
		l.pass, cmd = l.pass.Update(msg)
	} else {
		l.user, cmd = l.user.Update(msg)
	}
	return loginNone, cmd
}

func (l *loginModal) view(width int) string {
	boxW := 44
	if width > 0 && boxW > width-2 {
		boxW = width - 2
	}
	if boxW < 20 {
		boxW = 20
	}
	innerW := boxW - 4

	title := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Render("Sign in")
	lines := []string{title, "", l.user.View(), l.pass.View(), ""}
	if l.err != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(colorError).Render(l.err))
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, styleMuted().Render("tab: next   enter: sign in   esc: cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1).
		Render(normalizePane(strings.Join(lines, "\n"), innerW, len(lines)))
}
