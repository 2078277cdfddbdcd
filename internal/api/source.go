package api

import (
	"context"
	"errors"
	"fmt"

	"hackevents/internal/model"
)

// DefaultEndpoint is the public GraphQL endpoint serving the sample event catalogue.
const DefaultEndpoint = "https://api.hackthenorth.com/v3/frontend-challenge"

var ErrNotFound = errors.New("event not found")

// Source fetches events from an upstream.
type Source interface {
	FetchAllEvents(ctx context.Context) ([]model.Event, error)
	FetchEventByID(ctx context.Context, id int) (model.Event, error)
}

// FetchError is a network or server failure. Status is the HTTP status when one was received.
type FetchError struct {
	Op     string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e == nil {
		return ""
	}
	msg := "failed to fetch events"
	if e.Op == "event" {
		msg = "failed to fetch event"
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
