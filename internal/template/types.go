package template

import (
	"fmt"
	"strings"
	"time"
)

// Origin says whether a cached template is confirmed by the remote
// authority or still pending an offline sync.
type Origin string

const (
	OriginConfirmed Origin = "confirmed"
	OriginPending   Origin = "pending"
)

// TempIDPrefix marks locally-assigned template ids that have not been
// confirmed by the remote authority yet.
const TempIDPrefix = "offline-"

// RelTask is a timeline task stored relative to its event. Preparation
// tasks use MinutesBefore (from the event start); follow-up tasks use
// HoursAfter (from the event end).
type RelTask struct {
	ID            string  `json:"id"`
	Activity      string  `json:"activity"`
	MinutesBefore int     `json:"minutes_before,omitempty"`
	HoursAfter    float64 `json:"hours_after,omitempty"`
	Type          string  `json:"type"`
	DurationMin   int     `json:"duration_min,omitempty"`
	Note          string  `json:"note,omitempty"`
	Assignee      string  `json:"assignee,omitempty"`
	Priority      int     `json:"priority,omitempty"`
	SkipCount     int     `json:"skip_count,omitempty"`
}

// Template is a persisted, reusable timeline shape learned from prior
// use of a given (eventType, pattern) pair.
type Template struct {
	ID                  string    `json:"id"`
	EventType           string    `json:"event_type"`
	EventPattern        string    `json:"event_pattern"`
	PreparationTimeline []RelTask `json:"preparation_timeline"`
	PostEventTimeline   []RelTask `json:"post_event_timeline,omitempty"`
	Confidence          int       `json:"confidence"`
	UsageCount          int       `json:"usage_count"`
	LastUsedAt          time.Time `json:"last_used_at"`
	CompletionRate      float64   `json:"completion_rate"`
	Version             int       `json:"version"`
}

// Confirmed reports whether the template carries a durable id assigned
// by the remote authority.
func (t Template) Confirmed() bool {
	return t.ID != "" && !strings.HasPrefix(t.ID, TempIDPrefix)
}

// CacheEntry wraps a Template with local bookkeeping. At most one entry
// exists per (eventType, pattern) key.
type CacheEntry struct {
	Template Template  `json:"template"`
	StoredAt time.Time `json:"stored_at"`
	Origin   Origin    `json:"origin"`
}

// Key builds the composite cache key.
func Key(eventType, patternName string) string {
	return fmt.Sprintf("%s-%s", eventType, patternName)
}

// SaveInput is the payload for Cache.Save.
type SaveInput struct {
	EventType           string
	EventPattern        string
	PreparationTimeline []RelTask
	PostEventTimeline   []RelTask
	Confidence          int     // 0 means 100 (fresh user customization)
	CompletionRate      float64 // 0.0-1.0
}
