package model

import (
	"fmt"
	"strings"
	"time"
)

type EventType string

const (
	EventTypeWorkshop EventType = "workshop"
	EventTypeActivity EventType = "activity"
	EventTypeTechTalk EventType = "tech_talk"
)

// EventTypePriority is the fixed display order for type filter chips.
var EventTypePriority = []EventType{EventTypeWorkshop, EventTypeTechTalk, EventTypeActivity}

func (t EventType) Valid() bool {
	switch t {
	case EventTypeWorkshop, EventTypeActivity, EventTypeTechTalk:
		return true
	default:
		return false
	}
}

type Permission string

const (
	PermissionPublic  Permission = "public"
	PermissionPrivate Permission = "private"
)

type Speaker struct {
	Name string `json:"name"`
}

// Event is one scheduled session as served by the upstream GraphQL API.
// Times are milliseconds since the Unix epoch.
type Event struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	EventType     EventType  `json:"event_type"`
	Permission    Permission `json:"permission,omitempty"`
	StartTime     int64      `json:"start_time"`
	EndTime       int64      `json:"end_time"`
	Description   string     `json:"description,omitempty"`
	Speakers      []Speaker  `json:"speakers"`
	PublicURL     string     `json:"public_url,omitempty"`
	PrivateURL    string     `json:"private_url"`
	RelatedEvents []int      `json:"related_events"`
}

// IsPrivate reports whether the event is restricted. A missing permission is public.
func (e Event) IsPrivate() bool {
	return e.Permission == PermissionPrivate
}

func (e Event) Duration() int64 {
	return e.EndTime - e.StartTime
}

func (e Event) Start() time.Time { return time.UnixMilli(e.StartTime) }
func (e Event) End() time.Time { return time.UnixMilli(e.EndTime) }

// TypeFilter is either TypeAll or one of the event types.
type TypeFilter string

const TypeAll TypeFilter = "all"

func ParseTypeFilter(s string) (TypeFilter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == string(TypeAll) {
		return TypeAll, nil
	}
	if !EventType(s).Valid() {
		return TypeAll, fmt.Errorf("unknown event type: %s (expected all|workshop|activity|tech_talk)", s)
	}
	return TypeFilter(s), nil
}

type SortMode string

const (
	SortStartTime SortMode = "start_time"
	SortDuration  SortMode = "duration"
)

func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(SortStartTime):
		return SortStartTime, nil
	case string(SortDuration):
		return SortDuration, nil
	default:
		return SortStartTime, fmt.Errorf("unknown sort mode: %s (expected start_time|duration)", s)
	}
}

// ViewFilter is the transient search/filter/sort state of an events view.
type ViewFilter struct {
	SearchText   string     `json:"searchText"`
	SelectedType TypeFilter `json:"selectedType"`
	SortMode     SortMode   `json:"sortMode"`
}

func DefaultViewFilter() ViewFilter {
	return ViewFilter{SelectedType: TypeAll, SortMode: SortStartTime}
}
