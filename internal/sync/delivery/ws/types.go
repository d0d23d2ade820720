package ws

import "encoding/json"

// Message types exchanged with clients. Join/leave manage room
// membership; the update types fan out to everyone else in the room.
const (
	TypeJoinTimeline          = "join-timeline"
	TypeLeaveTimeline         = "leave-timeline"
	TypeTimelineUpdated       = "timeline-updated"
	TypeTaskCompletionUpdated = "task-completion-updated"
)

// Message is the wire envelope. UpdatedBy carries the originating
// connection id so clients can drop echoes of their own updates.
type Message struct {
	Type      string          `json:"type"`
	EventID   string          `json:"event_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	UpdatedBy string          `json:"updated_by,omitempty"`
}
