package models

import "time"

// DailyNote is a free-text journal entry keyed by date
type DailyNote struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDailyNote is the payload for creating a daily note
type NewDailyNote struct {
	Date    string `json:"date"`
	Content string `json:"content"`
}

// DailyNoteUpdate is a partial update; nil fields are left untouched
type DailyNoteUpdate struct {
	Date    *string `json:"date,omitempty"`
	Content *string `json:"content,omitempty"`
}

// IsEmpty reports whether the update carries no fields
func (u DailyNoteUpdate) IsEmpty() bool {
	return u.Date == nil && u.Content == nil
}
