package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hackevents/internal/model"
)

// HTTPSource reads from a running `hackevents serve` proxy.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPSource(baseURL string, hc *http.Client) *HTTPSource {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPSource{BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"), Client: hc}
}

func (s *HTTPSource) FetchAllEvents(ctx context.Context) ([]model.Event, error) {
	var out []model.Event
	if err := s.get(ctx, "events", "/api/events", &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Event{}
	}
	return out, nil
}

func (s *HTTPSource) FetchEventByID(ctx context.Context, id int) (model.Event, error) {
	var out model.Event
	if err := s.get(ctx, "event", fmt.Sprintf("/api/events/%d", id), &out); err != nil {
		return model.Event{}, err
	}
	return out, nil
}

func (s *HTTPSource) get(ctx context.Context, op, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+path, nil)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	res, err := s.Client.Do(req)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound && op == "event" {
		return ErrNotFound
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &FetchError{Op: op, Status: res.StatusCode, Err: errorBody(res.Body)}
	}
	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		return &FetchError{Op: op, Status: res.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

// errorBody extracts the proxy's {"error": "..."} message, if any.
func errorBody(r io.Reader) error {
	var body struct {
		Error string `json:"error"`
	}
	b, _ := io.ReadAll(io.LimitReader(r, 4096))
	if json.Unmarshal(b, &body) == nil && strings.TrimSpace(body.Error) != "" {
		return errors.New(body.Error)
	}
	return nil
}
