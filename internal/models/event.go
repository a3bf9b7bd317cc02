package models

import "time"

// Journal event type constants
const (
	EventPositionAdded    = "POSITION_ADDED"
	EventPositionUpdated  = "POSITION_UPDATED"
	EventPositionDeleted  = "POSITION_DELETED"
	EventNoteAdded        = "NOTE_ADDED"
	EventNoteUpdated      = "NOTE_UPDATED"
	EventNoteDeleted      = "NOTE_DELETED"
	EventNotesCleared     = "NOTES_CLEARED"
	EventDailyNoteAdded   = "DAILY_NOTE_ADDED"
	EventDailyNoteUpdated = "DAILY_NOTE_UPDATED"
	EventDailyNoteDeleted = "DAILY_NOTE_DELETED"
)

// JournalEvent is published to Kafka after every confirmed mutation
type JournalEvent struct {
	EventType string    `json:"event_type"`
	UserID    string    `json:"user_id"`
	EntityID  string    `json:"entity_id"`
	Symbol    string    `json:"symbol,omitempty"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}
