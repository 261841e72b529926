package models

// Event represents a single osquery process event. Events are kept as an
// open mapping so upstream schema additions pass through untouched; typed
// accessors cover the fields the pipeline actually inspects.
type Event map[string]any

// Cmdline returns the event's command line, or "" when the field is absent
// or not a string.
func (e Event) Cmdline() string {
	s, _ := e["cmdline"].(string)
	return s
}

// PID returns the event's process ID, or 0 when absent. JSON numbers decode
// as float64, so both numeric shapes are accepted.
func (e Event) PID() int {
	switch v := e["pid"].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// PageResult represents one decoded page of the process_events feed.
type PageResult struct {
	Events     []Event `json:"events"`
	NextCursor string  `json:"next_cursor,omitempty"`

	// Synthetic marks pages fabricated locally after a transport failure.
	// Wire-decoded pages never set it.
	Synthetic bool `json:"synthetic,omitempty"`
}

// HasMore reports whether another page should be requested.
func (p PageResult) HasMore() bool {
	return p.NextCursor != ""
}

// EventPage is the wire shape of a process_events response. next_cursor may
// be null, absent, or "" on the final page; all three decode to "".
type EventPage struct {
	Events     []Event `json:"events"`
	NextCursor *string `json:"next_cursor"`
}

// ToPageResult normalizes the wire shape into a PageResult.
func (w EventPage) ToPageResult() PageResult {
	cursor := ""
	if w.NextCursor != nil {
		cursor = *w.NextCursor
	}
	events := w.Events
	if events == nil {
		events = []Event{}
	}
	return PageResult{Events: events, NextCursor: cursor}
}
