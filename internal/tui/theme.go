package tui

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"hackevents/internal/model"
)

// The TUI must stay readable on light and dark backgrounds, so every color is adaptive and
// "faint" is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted          = ac("240", "243")
	colorSurfaceFg      = ac("235", "252")
	colorControlBg      = ac("252", "235")
	colorAccent         = ac("27", "62")
	colorAccentFg       = ac("255", "235")
	colorCardBorder     = ac("250", "243")
	colorSelectedBorder = ac("232", "255")
	colorCardMetaFg     = ac("238", "250")
	colorPlaceholder    = ac("248", "239")
	colorError          = ac("160", "203")

	colorWorkshop = ac("28", "78")
	colorTechTalk = ac("90", "177")
	colorActivity = ac("166", "215")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func typeColor(t model.EventType) lipgloss.AdaptiveColor {
	switch t {
	case model.EventTypeWorkshop:
		return colorWorkshop
	case model.EventTypeTechTalk:
		return colorTechTalk
	case model.EventTypeActivity:
		return colorActivity
	default:
		return colorMuted
	}
}

func typeBadge(t model.EventType) string {
	return lipgloss.NewStyle().Bold(true).Foreground(typeColor(t)).Render(model.FormatEventType(t))
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
//
// termenv.EnvColorProfile honors CLICOLOR/CLICOLOR_FORCE, which can disable colors in a TUI;
// only NO_COLOR is honored here.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// Trust TERM/COLORTERM when they claim more than the detector reports.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
}

// themePreference resolves light|dark|"" (auto).
//
// Priority:
// 1) HACKEVENTS_TUI_THEME=light|dark|auto
// 2) tui.theme in config.json
// 3) COLORFGBG heuristic ("15;0" = fg;bg)
// 4) macOS appearance
func themePreference(configTheme string) string {
	for _, v := range []string{os.Getenv("HACKEVENTS_TUI_THEME"), configTheme} {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "light":
			return "light"
		case "dark":
			return "dark"
		}
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			// xterm palette: 0-6 dark, 7-15 light.
			if bg < 7 {
				return "dark"
			}
			return "light"
		}
	}

	if runtime.GOOS == "darwin" {
		if dark, ok := macOSHasDarkAppearance(); ok {
			if dark {
				return "dark"
			}
			return "light"
		}
	}
	return ""
}

func applyThemePreference(configTheme string) {
	switch themePreference(configTheme) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}
}

func macOSHasDarkAppearance() (dark bool, ok bool) {
	// `defaults read -g AppleInterfaceStyle` prints "Dark" in dark mode and exits 1 in light mode.
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").CombinedOutput()
	if ctx.Err() != nil {
		return false, false
	}
	if err == nil {
		return strings.Contains(strings.ToLower(string(out)), "dark"), true
	}
	if ee, ok := err.(*exec.ExitError); ok && ee.ExitCode() == 1 {
		return false, true
	}
	return false, false
}
