// Package types holds the data model shared by the scanner, the library
// facade and the user interfaces.
package types

// EventType classifies progress events.
type EventType string

const (
	EventInfo    EventType = "INFO"
	EventSuccess EventType = "SUCCESS"
	EventWarning EventType = "WARN"
	EventError   EventType = "ERROR"
)

// Event is a progress notification emitted during scans and imports.
type Event struct {
	Type    EventType
	Message string
}

// EventHandler receives events. The scanner serializes calls, so a handler
// never runs concurrently with itself.
type EventHandler func(Event)

// Emit calls h if it is set.
func (h EventHandler) Emit(t EventType, msg string) {
	if h != nil {
		h(Event{Type: t, Message: msg})
	}
}
