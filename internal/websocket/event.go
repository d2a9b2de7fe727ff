package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to the entity
type EventType string

const (
	EventTypeUpdated     EventType = "updated"
	EventTypeInvalidated EventType = "invalidated"
)

// EntityType represents the entity the event is about
type EntityType string

const (
	EntityTypeSession  EntityType = "session"
	EntityTypeTimeline EntityType = "timeline"
)

// Event is one WebSocket message sent to clients. Dashboards listen for
// timeline.invalidated and recompute from the session snapshot.
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"` // Combined type e.g. "session.updated"
	Entity    EntityType  `json:"entity"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// SessionUpdated creates a session.updated event
func SessionUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeSession, payload)
}

// TimelineInvalidated creates a timeline.invalidated event
func TimelineInvalidated(payload interface{}) Event {
	return NewEvent(EventTypeInvalidated, EntityTypeTimeline, payload)
}
