package session

import "hackevents/internal/model"

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// EventStore owns the fetched event collection and its load status.
//
// Each fetch is tagged with the sequence number BeginFetch returns. Only the completion
// carrying the latest sequence is applied; an older fetch that finishes late is dropped.
type EventStore struct {
	status  Status
	events  []model.Event
	err     error
	seq     uint64
	version uint64
}

func (s *EventStore) BeginFetch() uint64 {
	s.seq++
	s.status = StatusLoading
	s.err = nil
	return s.seq
}

// Complete applies a fetch result. It reports false when seq has been superseded.
// A failed fetch keeps the previously loaded events.
func (s *EventStore) Complete(seq uint64, events []model.Event, err error) bool {
	if seq != s.seq {
		return false
	}
	if err != nil {
		s.status = StatusFailed
		s.err = err
		return true
	}
	s.events = append([]model.Event{}, events...)
	s.status = StatusReady
	s.err = nil
	s.version++
	return true
}

func (s *EventStore) Status() Status { return s.status }

func (s *EventStore) Err() error { return s.err }

// Events returns the canonical collection. Callers must not modify it.
func (s *EventStore) Events() []model.Event { return s.events }

// Version changes whenever the collection is replaced.
func (s *EventStore) Version() uint64 { return s.version }
