package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventUserCreated    EventType = "user_created"
	EventUserUpdated    EventType = "user_updated"
	EventUserDeleted    EventType = "user_deleted"
	EventUsersPurged    EventType = "users_purged"
)

// AllEventTypes lists every event the services publish.
func AllEventTypes() []EventType {
	return []EventType{EventUserRegistered, EventUserCreated, EventUserUpdated, EventUserDeleted, EventUsersPurged}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id,omitempty"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email     string `json:"email"`
	HasAvatar bool   `json:"has_avatar"`
}

// UserUpdatedPayload payload.
type UserUpdatedPayload struct {
	Fields []string `json:"fields"`
}

// UsersPurgedPayload payload.
type UsersPurgedPayload struct {
	Count int64 `json:"count"`
}
