package validation

import (
	"strings"

	"github.com/trogers1052/stock-journal/internal/models"
)

// ValidateDailyNote checks a new daily journal entry
func ValidateDailyNote(n models.NewDailyNote) error {
	if err := validateDate(n.Date); err != nil {
		return err
	}
	if strings.TrimSpace(n.Content) == "" {
		return invalid("content", "Content is required")
	}
	return nil
}

// ValidateDailyNoteUpdate applies the daily note rules to the fields present in u
func ValidateDailyNoteUpdate(u models.DailyNoteUpdate) error {
	if u.Date != nil {
		if err := validateDate(*u.Date); err != nil {
			return err
		}
	}
	if u.Content != nil && strings.TrimSpace(*u.Content) == "" {
		return invalid("content", "Content is required")
	}
	return nil
}
