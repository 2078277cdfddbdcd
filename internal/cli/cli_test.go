package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

const fixtureEvents = `[
 {"id":1,"name":"Opening ceremony","event_type":"activity","permission":"public","start_time":1000,"end_time":5000,"speakers":[],"public_url":"https://youtu.be/open","private_url":"https://hopin.com/open","related_events":[2,3,99]},
 {"id":2,"name":"Intro to Go","event_type":"workshop","permission":"private","start_time":2000,"end_time":3000,"description":"Bring a laptop","speakers":[{"name":"Ada"}],"private_url":"https://hopin.com/go","related_events":[]},
 {"id":3,"name":"Scaling APIs","event_type":"tech_talk","start_time":3000,"end_time":9000,"speakers":[{"name":"Grace"}],"private_url":"https://hopin.com/api","related_events":[1]},
 {"id":4,"name":"Midnight snack","event_type":"activity","permission":"public","start_time":4000,"end_time":4100,"speakers":[],"private_url":"https://hopin.com/snack","related_events":[]}
]`

// upstream is a GraphQL server answering sampleEvents and sampleEvent(id).
func upstream(t *testing.T) *httptest.Server {
	t.Helper()
	var events []map[string]any
	if err := json.Unmarshal([]byte(fixtureEvents), &events); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(req.Query, "sampleEvents") {
			_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"sampleEvents": events}})
			return
		}
		var found any
		for _, e := range events {
			if e["id"] == req.Variables["id"] {
				found = e
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"sampleEvent": found}})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

type harness struct {
	t        *testing.T
	dir      string
	endpoint string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("HACKEVENTS_CONFIG_DIR", t.TempDir())
	t.Setenv("HACKEVENTS_API", "")
	t.Setenv("HACKEVENTS_FORMAT", "")
	return &harness{t: t, dir: t.TempDir(), endpoint: upstream(t).URL}
}

func (h *harness) run(args ...string) map[string]any {
	h.t.Helper()
	full := append([]string{"--dir", h.dir, "--endpoint", h.endpoint}, args...)
	stdout, stderr, err := runCLI(h.t, full)
	if err != nil {
		h.t.Fatalf("hackevents %v failed: %v\nstderr:\n%s", args, err, stderr)
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		h.t.Fatalf("unmarshal stdout: %v\n%s", err, stdout)
	}
	if _, ok := env["data"]; !ok {
		h.t.Fatalf("expected data envelope; got %s", stdout)
	}
	return env
}

func (h *harness) fail(args ...string) string {
	h.t.Helper()
	full := append([]string{"--dir", h.dir, "--endpoint", h.endpoint}, args...)
	_, stderr, err := runCLI(h.t, full)
	if err == nil {
		h.t.Fatalf("expected hackevents %v to fail", args)
	}
	return string(stderr)
}

func ids(v any) []int {
	out := []int{}
	for _, it := range v.([]any) {
		switch x := it.(type) {
		case map[string]any:
			out = append(out, int(x["id"].(float64)))
		case float64:
			out = append(out, int(x))
		}
	}
	return out
}

func TestList_GatingFilterAndSort(t *testing.T) {
	h := newHarness(t)

	env := h.run("list")
	if got := ids(env["data"]); !reflect.DeepEqual(got, []int{1, 3, 4}) {
		t.Fatalf("signed-out list = %v", got)
	}
	for _, it := range env["data"].([]any) {
		if u, _ := it.(map[string]any)["private_url"].(string); u != "" {
			t.Fatalf("private link leaked to signed-out listing: %v", it)
		}
	}
	meta := env["meta"].(map[string]any)
	if got := meta["availableTypes"]; !reflect.DeepEqual(got, []any{"tech_talk", "activity"}) {
		t.Fatalf("availableTypes = %v", got)
	}

	h.run("login", "--username", "hacker", "--password", "htn2026")
	if got := ids(h.run("list")["data"]); !reflect.DeepEqual(got, []int{1, 2, 3, 4}) {
		t.Fatalf("signed-in list = %v", got)
	}
	if got := ids(h.run("list", "--type", "workshop")["data"]); !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("workshop list = %v", got)
	}
	if got := ids(h.run("list", "--sort", "duration")["data"]); !reflect.DeepEqual(got, []int{4, 2, 1, 3}) {
		t.Fatalf("duration list = %v", got)
	}
	if got := ids(h.run("list", "--search", "GRACE")["data"]); !reflect.DeepEqual(got, []int{3}) {
		t.Fatalf("search list = %v", got)
	}

	h.run("logout")
	env = h.run("list", "--type", "workshop")
	if got := ids(env["data"]); !reflect.DeepEqual(got, []int{1, 3, 4}) {
		t.Fatalf("workshop filter should reset after logout; got %v", got)
	}
	if f := env["meta"].(map[string]any)["filter"].(map[string]any); f["selectedType"] != "all" {
		t.Fatalf("filter = %v", f)
	}
}

func TestList_BadFlags(t *testing.T) {
	h := newHarness(t)
	if msg := h.fail("list", "--type", "keynote"); !strings.Contains(msg, "unknown event type") {
		t.Fatalf("stderr = %q", msg)
	}
	if msg := h.fail("--format", "xml", "list"); !strings.Contains(msg, "unknown format") {
		t.Fatalf("stderr = %q", msg)
	}
}

func TestOrder_MoveSwapClear(t *testing.T) {
	h := newHarness(t)

	env := h.run("order", "move", "1", "--to", "2")
	if got := ids(env["data"]); !reflect.DeepEqual(got, []int{3, 4, 1}) {
		t.Fatalf("order after move = %v", got)
	}
	if got := ids(h.run("list")["data"]); !reflect.DeepEqual(got, []int{3, 4, 1}) {
		t.Fatalf("list after move = %v", got)
	}

	env = h.run("order", "swap", "0", "0")
	if env["meta"].(map[string]any)["changed"] != false {
		t.Fatalf("same-index swap should be a no-op: %v", env)
	}
	h.run("order", "swap", "0", "1")
	if got := ids(h.run("order", "show")["data"]); !reflect.DeepEqual(got, []int{4, 3, 1}) {
		t.Fatalf("order after swap = %v", got)
	}

	if msg := h.fail("order", "move", "2", "--to", "0"); !strings.Contains(msg, "event not found: 2") {
		t.Fatalf("moving a hidden event should fail; stderr = %q", msg)
	}

	h.run("order", "clear")
	if got := ids(h.run("order", "show")["data"]); len(got) != 0 {
		t.Fatalf("order after clear = %v", got)
	}
}

func TestShow(t *testing.T) {
	h := newHarness(t)

	env := h.run("show", "1")
	data := env["data"].(map[string]any)
	if got := ids(data["related"]); !reflect.DeepEqual(got, []int{3}) {
		t.Fatalf("signed-out related = %v", got)
	}
	links := data["links"].(map[string]any)
	if links["public"] != "https://youtu.be/open" || links["private"] != nil {
		t.Fatalf("signed-out links = %v", links)
	}
	if data["type"] != "Activity" {
		t.Fatalf("type = %v", data["type"])
	}

	if msg := h.fail("show", "2"); !strings.Contains(msg, "event not found: 2") {
		t.Fatalf("private event should be hidden; stderr = %q", msg)
	}
	if msg := h.fail("show", "42"); !strings.Contains(msg, "event not found: 42") {
		t.Fatalf("stderr = %q", msg)
	}

	h.run("login", "--username", "hacker", "--password", "htn2026")
	data = h.run("show", "1")["data"].(map[string]any)
	if got := ids(data["related"]); !reflect.DeepEqual(got, []int{2, 3}) {
		t.Fatalf("signed-in related = %v", got)
	}
	if data["links"].(map[string]any)["private"] != "https://hopin.com/open" {
		t.Fatalf("signed-in links = %v", data["links"])
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h := newHarness(t)
	if msg := h.fail("login", "--username", "hacker", "--password", "nope"); !strings.Contains(msg, "invalid username or password") {
		t.Fatalf("stderr = %q", msg)
	}
	if h.run("whoami")["data"].(map[string]any)["authed"] != false {
		t.Fatalf("expected signed out")
	}
}

func TestConfigSetShow(t *testing.T) {
	h := newHarness(t)
	h.run("config", "set", "tui.theme", "dark")
	cfg := h.run("config", "show")["data"].(map[string]any)
	if cfg["tui"].(map[string]any)["theme"] != "dark" {
		t.Fatalf("config = %v", cfg)
	}
	if msg := h.fail("config", "set", "colour", "red"); !strings.Contains(msg, "unknown config key") {
		t.Fatalf("stderr = %q", msg)
	}
}

func TestDocs(t *testing.T) {
	h := newHarness(t)
	topics := h.run("docs")["data"].(map[string]any)["topics"]
	if !reflect.DeepEqual(topics, []any{"auth", "config", "order", "proxy", "tui"}) {
		t.Fatalf("topics = %v", topics)
	}
	data := h.run("docs", "order")["data"].(map[string]any)
	if md, _ := data["markdown"].(string); !strings.Contains(md, "eventOrderV1") {
		t.Fatalf("order docs = %v", data)
	}

	stdout, _, err := runCLI(t, []string{"docs", "auth", "--raw"})
	if err != nil || !strings.HasPrefix(string(stdout), "# Signing in") {
		t.Fatalf("raw docs err=%v out=%q", err, stdout)
	}
	if msg := h.fail("docs", "nope"); !strings.Contains(msg, "unknown docs topic") {
		t.Fatalf("stderr = %q", msg)
	}
}

func TestPublish(t *testing.T) {
	h := newHarness(t)
	out := t.TempDir()

	env := h.run("publish", "--to", out, "--type", "tech_talk")
	written := env["data"].(map[string]any)["written"].([]any)
	if len(written) != 2 {
		t.Fatalf("written = %v", written)
	}
	if !strings.HasSuffix(written[1].(string), "3.md") {
		t.Fatalf("expected the tech talk page; got %v", written)
	}
	if msg := h.fail("publish", "--to", out, "--type", "tech_talk"); !strings.Contains(msg, "file exists") {
		t.Fatalf("stderr = %q", msg)
	}
}
