package cards

import (
	"fmt"
	"strings"
	"sync"
)

// EventKind classifies a validation event.
type EventKind int

const (
	// UnknownType means no registered or resolvable factory exists for a type name.
	UnknownType EventKind = iota + 1
	// DisallowedType means the type name is denied in the current container.
	DisallowedType
	// BelowFloor means a numeric value was clamped to its configured minimum.
	BelowFloor
	// UnsupportedProperty means a property is newer than the document version.
	UnsupportedProperty
	// InvalidPropertyValue means a member had the wrong JSON shape.
	InvalidPropertyValue
	// NotStandalone means an element that cannot be a document root was used as one.
	NotStandalone
)

var eventKindNames = map[EventKind]string{
	UnknownType:          "unknown_type",
	DisallowedType:       "disallowed_type",
	BelowFloor:           "below_floor",
	UnsupportedProperty:  "unsupported_property",
	InvalidPropertyValue: "invalid_property_value",
	NotStandalone:        "not_standalone",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("event_kind(%d)", int(k))
}

// MarshalText renders the kind by name.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ValidationEvent is a non-fatal diagnostic. Path is the JSON pointer of the
// offending node when known.
type ValidationEvent struct {
	Kind      EventKind `json:"kind"`
	Path      string    `json:"path,omitempty"`
	ElementID string    `json:"elementId,omitempty"`
	TypeName  string    `json:"type,omitempty"`
	Message   string    `json:"message"`
}

func (e ValidationEvent) String() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// Events is an ordered list of validation events usable as an error.
type Events []ValidationEvent

func (e Events) Error() string {
	if len(e) == 0 {
		return "no validation events"
	}
	const limit = 3
	parts := make([]string, 0, limit)
	for i, ev := range e {
		if i == limit {
			break
		}
		parts = append(parts, ev.String())
	}
	msg := strings.Join(parts, "; ")
	if len(e) > limit {
		msg += fmt.Sprintf(" (+%d more)", len(e)-limit)
	}
	return msg
}

// OfKind returns the events of kind in arrival order.
func (e Events) OfKind(kind EventKind) Events {
	var out Events
	for _, ev := range e {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

// EventLog is an append-only record of validation events.
type EventLog struct {
	mu     sync.Mutex
	events []ValidationEvent
}

// NewEventLog returns an empty log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Record appends ev. A nil log discards it.
func (l *EventLog) Record(ev ValidationEvent) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

// Events returns a copy of the recorded events in arrival order.
func (l *EventLog) Events() Events {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return append(Events(nil), l.events...)
}

// Len reports how many events were recorded.
func (l *EventLog) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// Count reports how many events of kind were recorded.
func (l *EventLog) Count(kind EventKind) int {
	return len(l.OfKind(kind))
}

// OfKind filters the log by kind.
func (l *EventLog) OfKind(kind EventKind) Events {
	return l.Events().OfKind(kind)
}

// Err returns the recorded events as an error, or nil when the log is empty.
func (l *EventLog) Err() error {
	events := l.Events()
	if len(events) == 0 {
		return nil
	}
	return events
}
