package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ulule/limiter/v3"
	stdlimiter "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"hackevents/internal/api"
	"hackevents/internal/log"
)

// DefaultRate is the per-client request budget, in limiter's "<limit>-<period>" notation.
const DefaultRate = "120-M"

// Handler exposes an api.Source as the JSON routes the web frontend consumes.
type Handler struct {
	Source api.Source
	Rate   limiter.Rate
}

// NewHandler parses rate ("" means DefaultRate).
func NewHandler(src api.Source, rate string) (*Handler, error) {
	if strings.TrimSpace(rate) == "" {
		rate = DefaultRate
	}
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}
	return &Handler{Source: src, Rate: r}, nil
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(apiR chi.Router) {
		lim := limiter.New(memory.NewStore(), h.Rate)
		apiR.Use(stdlimiter.NewMiddleware(lim).Handler)
		apiR.Get("/api/events", h.handleEvents)
		apiR.Get("/api/events/{id}", h.handleEvent)
	})
	return r
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Source.FetchAllEvents(r.Context())
	if err != nil {
		log.Error("fetch events", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *Handler) handleEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}
	e, err := h.Source.FetchEventByID(r.Context(), id)
	if errors.Is(err, api.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		log.Error("fetch event", err, "id", id)
		writeError(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug("http", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "dur", time.Since(start))
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
