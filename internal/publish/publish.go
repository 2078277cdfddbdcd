package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"hackevents/internal/derive"
	"hackevents/internal/model"
)

type WriteOptions struct {
	Title     string
	Overwrite bool
	RenderOptions
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteSchedule writes <toDir>/index.md listing events in order and one page per event under
// <toDir>/events. all is the full collection, used to resolve related events; private related
// events are only linked when opt.Authed.
func WriteSchedule(events, all []model.Event, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)
	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = "Events"
	}

	eventsDir := filepath.Join(toDir, "events")
	if err := os.MkdirAll(eventsDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	indexPath := filepath.Join(toDir, "index.md")
	if err := writeFile(indexPath, []byte(RenderIndexMarkdown(title, events, opt.RenderOptions)), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}

	// Stop on first error.
	written := []string{indexPath}
	for _, e := range events {
		related := derive.Related(e, all, opt.Authed)
		p := filepath.Join(eventsDir, eventFile(e.ID))
		if err := writeFile(p, []byte(RenderEventMarkdown(e, related, opt.RenderOptions)), opt.Overwrite); err != nil {
			return WriteResult{}, err
		}
		written = append(written, p)
	}
	return WriteResult{Written: written}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
