package webtui

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates/*.html static/*.css static/*.js
var assetsFS embed.FS

// xterm.js is loaded from a CDN so the binary does not carry it.
const xtermVersion = "5.3.0"

type ServerConfig struct {
	Addr string
	// Dir, Endpoint and API are passed to each spawned TUI.
	Dir      string
	Endpoint string
	API      string
}

// Server runs the TUI in a browser: every websocket connection gets its own TUI subprocess on a
// server-side PTY.
type Server struct {
	cfg  ServerConfig
	tmpl *template.Template
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, errors.New("webtui: missing addr")
	}
	tmpl, err := template.ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, tmpl: tmpl}, nil
}

func (s *Server) Addr() string {
	return strings.TrimSpace(s.cfg.Addr)
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/terminal", http.StatusFound)
	})
	r.Get("/terminal", s.handleTerminal)
	r.Get("/ws", s.handleWS)
	r.Get("/static/app.css", handleStatic("static/app.css", "text/css; charset=utf-8"))
	r.Get("/static/app.js", handleStatic("static/app.js", "text/javascript; charset=utf-8"))
	return r
}

func handleStatic(path, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := assetsFS.ReadFile(path)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(b)
	}
}

type terminalVM struct {
	XtermVersion string
	Source       string
}

func (s *Server) handleTerminal(w http.ResponseWriter, r *http.Request) {
	vm := terminalVM{XtermVersion: xtermVersion, Source: s.sourceLabel()}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "terminal.html", vm); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) sourceLabel() string {
	if v := strings.TrimSpace(s.cfg.API); v != "" {
		return v
	}
	if v := strings.TrimSpace(s.cfg.Endpoint); v != "" {
		return v
	}
	return "default endpoint"
}

// tuiArgs are the flags handed to each spawned TUI. No subcommand means interactive TUI.
func (s *Server) tuiArgs() []string {
	var args []string
	if v := strings.TrimSpace(s.cfg.Dir); v != "" {
		args = append(args, "--dir", v)
	}
	if v := strings.TrimSpace(s.cfg.Endpoint); v != "" {
		args = append(args, "--endpoint", v)
	}
	if v := strings.TrimSpace(s.cfg.API); v != "" {
		args = append(args, "--api", v)
	}
	return args
}
