package models

import "time"

// Notification types emitted by the live feed itself. Domain mutations use
// their own lower-cased action tag (e.g. "pilot_create") as the type.
const (
	NotificationEvent     = "event"
	NotificationServer    = "server"
	NotificationHeartbeat = "heartbeat"
	NotificationConnected = "connected"
)

// Notification is the transient envelope delivered over the live feed, both
// the SSE stream and the websocket broadcast. Type and Timestamp are always
// populated before a message leaves the bus.
type Notification struct {
	Type         string         `json:"type"`
	Message      string         `json:"message,omitempty"`
	ResourceType string         `json:"resource_type,omitempty"`
	ResourceID   string         `json:"resource_id,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
	Result       string         `json:"result,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
}
