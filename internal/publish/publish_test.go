package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hackevents/internal/model"
)

func fixture() []model.Event {
	base := time.Date(2026, 1, 16, 17, 0, 0, 0, time.UTC).UnixMilli()
	hour := int64(time.Hour / time.Millisecond)
	return []model.Event{
		{ID: 1, Name: "Opening", EventType: model.EventTypeActivity, StartTime: base, EndTime: base + hour, PublicURL: "https://youtu.be/open", PrivateURL: "https://hopin.com/open", RelatedEvents: []int{2, 3}},
		{ID: 2, Name: "Intro to Go", EventType: model.EventTypeWorkshop, Permission: model.PermissionPrivate, StartTime: base + hour, EndTime: base + 2*hour, Description: "Bring a **laptop**.", Speakers: []model.Speaker{{Name: "Ada"}}},
		{ID: 3, Name: "Scaling APIs", EventType: model.EventTypeTechTalk, StartTime: base + 2*hour, EndTime: base + 3*hour},
	}
}

func TestRenderEventMarkdown(t *testing.T) {
	t.Parallel()

	evs := fixture()
	opt := RenderOptions{Location: time.UTC}

	md := RenderEventMarkdown(evs[0], []model.Event{evs[2]}, opt)
	for _, want := range []string{
		"# Opening\n",
		"- Type: Activity\n",
		"- When: Jan 16, 5:00 PM - 6:00 PM\n",
		"- Watch: <https://youtu.be/open>\n",
		"## Related\n\n- [Scaling APIs](3.md)\n",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("missing %q in:\n%s", want, md)
		}
	}
	if strings.Contains(md, "hopin.com") {
		t.Fatalf("private link rendered for signed-out export:\n%s", md)
	}

	opt.Authed = true
	md = RenderEventMarkdown(evs[1], nil, opt)
	for _, want := range []string{"- Access: hackers only\n", "- Speakers: Ada\n", "## Description\n\nBring a **laptop**.\n"} {
		if !strings.Contains(md, want) {
			t.Fatalf("missing %q in:\n%s", want, md)
		}
	}
	if md := RenderEventMarkdown(evs[0], nil, opt); !strings.Contains(md, "- Hacker link: <https://hopin.com/open>\n") {
		t.Fatalf("expected private link when signed in:\n%s", md)
	}
}

func TestWriteSchedule(t *testing.T) {
	t.Parallel()

	all := fixture()
	visible := []model.Event{all[2], all[0]}
	dir := t.TempDir()

	res, err := WriteSchedule(visible, all, dir, WriteOptions{Title: "Hack the North", RenderOptions: RenderOptions{Location: time.UTC}})
	if err != nil {
		t.Fatalf("WriteSchedule: %v", err)
	}
	want := []string{
		filepath.Join(dir, "index.md"),
		filepath.Join(dir, "events", "3.md"),
		filepath.Join(dir, "events", "1.md"),
	}
	if len(res.Written) != len(want) {
		t.Fatalf("written = %v", res.Written)
	}
	for i := range want {
		if res.Written[i] != want[i] {
			t.Fatalf("written[%d] = %s; want %s", i, res.Written[i], want[i])
		}
	}

	index, _ := os.ReadFile(want[0])
	if !strings.HasPrefix(string(index), "# Hack the North\n\n1. [Scaling APIs](events/3.md)") {
		t.Fatalf("index:\n%s", index)
	}
	page, _ := os.ReadFile(want[2])
	// Event 2 is private and the export is signed out: only 3 is linked.
	if strings.Contains(string(page), "Intro to Go") || !strings.Contains(string(page), "[Scaling APIs](3.md)") {
		t.Fatalf("page:\n%s", page)
	}

	if _, err := WriteSchedule(visible, all, dir, WriteOptions{}); err == nil || !strings.Contains(err.Error(), "file exists") {
		t.Fatalf("expected overwrite guard; got %v", err)
	}
	if _, err := WriteSchedule(visible, all, dir, WriteOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if _, err := WriteSchedule(visible, all, " ", WriteOptions{}); err == nil {
		t.Fatalf("expected error for missing dir")
	}
}
