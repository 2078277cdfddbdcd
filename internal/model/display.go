package model

import "time"

func FormatEventType(t EventType) string {
	switch t {
	case EventTypeWorkshop:
		return "Workshop"
	case EventTypeTechTalk:
		return "Tech Talk"
	case EventTypeActivity:
		return "Activity"
	default:
		return string(t)
	}
}

// FormatTimeRange renders "Jan 2, 3:04 PM - 4:04 PM" in loc (local time when nil).
func FormatTimeRange(startMs, endMs int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	start := time.UnixMilli(startMs).In(loc)
	end := time.UnixMilli(endMs).In(loc)
	return start.Format("Jan 2, 3:04 PM") + " - " + end.Format("3:04 PM")
}

func FormatDateTime(ms int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(ms).In(loc).Format("Jan 2, 2006, 3:04 PM")
}
