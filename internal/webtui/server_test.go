package webtui

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

func TestNewServer_RequiresAddr(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(ServerConfig{Addr: "  "}); err == nil {
		t.Fatalf("expected error for missing addr")
	}
}

func TestHandler_TerminalPage(t *testing.T) {
	t.Parallel()

	s, err := NewServer(ServerConfig{Addr: "127.0.0.1:0", API: "http://127.0.0.1:3000"})
	if err != nil {
		t.Fatal(err)
	}
	h := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/terminal" {
		t.Fatalf("GET / = %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/terminal", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /terminal = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "xterm@"+xtermVersion) || !strings.Contains(body, "http://127.0.0.1:3000") {
		t.Fatalf("unexpected page:\n%s", body)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/javascript") {
		t.Fatalf("GET /static/app.js = %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
}

func TestTUIArgs(t *testing.T) {
	t.Parallel()

	s := &Server{cfg: ServerConfig{Dir: "/tmp/state", Endpoint: " https://example.com/graphql "}}
	want := []string{"--dir", "/tmp/state", "--endpoint", "https://example.com/graphql"}
	if got := s.tuiArgs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("args = %v; want %v", got, want)
	}
	if got := (&Server{}).tuiArgs(); len(got) != 0 {
		t.Fatalf("expected no args; got %v", got)
	}
}

func TestSameOrigin(t *testing.T) {
	t.Parallel()

	cases := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"http://127.0.0.1:3334", true},
		{"http://evil.example:3334", false},
		{"http://127.0.0.1:3334.evil.example", false},
	}
	for _, c := range cases {
		r := httptest.NewRequest(http.MethodGet, "http://127.0.0.1:3334/ws", nil)
		r.Host = "127.0.0.1:3334"
		if c.origin != "" {
			r.Header.Set("Origin", c.origin)
		}
		if got := sameOrigin(r); got != c.want {
			t.Fatalf("origin %q: got %v want %v", c.origin, got, c.want)
		}
	}
}

func TestParseControl(t *testing.T) {
	t.Parallel()

	m, ok := parseControl(websocket.TextMessage, []byte(`{"type":"Resize","cols":100,"rows":30}`))
	if !ok || m.Type != "resize" || m.Cols != 100 || m.Rows != 30 {
		t.Fatalf("got %+v ok=%v", m, ok)
	}
	for _, c := range []struct {
		mt   int
		data string
	}{
		{websocket.TextMessage, "q"},
		{websocket.BinaryMessage, `{"type":"resize"}`},
		{websocket.TextMessage, `{not json`},
	} {
		if _, ok := parseControl(c.mt, []byte(c.data)); ok {
			t.Fatalf("%q should be terminal input", c.data)
		}
	}
}
