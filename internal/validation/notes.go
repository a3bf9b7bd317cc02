package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/trogers1052/stock-journal/internal/models"
)

// ValidateNoteForm applies the add/edit form rules. It does not reject a
// sentiment on research notes; ValidateNote does.
func ValidateNoteForm(n models.NewAnalysisNote) error {
	if err := validateTitle(n.Title); err != nil {
		return err
	}
	if err := validateDescription(n.Description); err != nil {
		return err
	}
	if n.Category != models.CategoryResearch && n.Sentiment == "" {
		return invalid("sentiment", "Sentiment is required for catalyst and block notes")
	}
	if n.Sentiment != "" && !models.IsSentiment(n.Sentiment) {
		return invalid("sentiment", "Sentiment must be bullish or bearish")
	}
	if err := validateDate(n.Date); err != nil {
		return err
	}
	return ValidateTags(ParseTags(n.Tags))
}

// ValidateNote is the stricter check run before a note is persisted
func ValidateNote(n models.NewAnalysisNote, stockID, symbol string) error {
	if stockID == "" {
		return invalid("stock_id", "Stock ID is required")
	}
	if strings.TrimSpace(symbol) == "" {
		return invalid("symbol", "Stock symbol is required")
	}
	if err := validateTitle(n.Title); err != nil {
		return err
	}
	if err := validateDescription(n.Description); err != nil {
		return err
	}
	if err := ValidateClassification(models.Classification{
		Category:       n.Category,
		ParentCategory: n.ParentCategory,
		Sentiment:      n.Sentiment,
	}); err != nil {
		return err
	}
	if err := validateDate(n.Date); err != nil {
		return err
	}
	return ValidateTags(ParseTags(n.Tags))
}

// ValidateClassification enforces the category/sentiment/parent invariant
func ValidateClassification(c models.Classification) error {
	if !models.IsNoteCategory(c.Category) {
		return invalid("category", "Invalid category")
	}
	if c.Category == models.CategoryResearch {
		if c.Sentiment != "" {
			return invalid("sentiment", "Research notes should not have sentiment")
		}
		if c.ParentCategory != models.ParentGeneral {
			return invalid("parent_category", "Research notes must use the general parent category")
		}
		return nil
	}
	if c.Sentiment == "" {
		return invalid("sentiment", "Sentiment is required for catalyst and block notes")
	}
	if !models.IsSentiment(c.Sentiment) {
		return invalid("sentiment", "Sentiment must be bullish or bearish")
	}
	if !models.IsParentCategory(c.ParentCategory) {
		return invalid("parent_category", "Invalid parent category")
	}
	return nil
}

// ValidateNoteUpdate applies field rules to the fields present in u. The
// classification triple is checked by the caller after merging with the stored note.
func ValidateNoteUpdate(u models.NoteUpdate) error {
	if u.Title != nil {
		if err := validateTitle(*u.Title); err != nil {
			return err
		}
	}
	if u.Description != nil {
		if err := validateDescription(*u.Description); err != nil {
			return err
		}
	}
	if u.Category != nil && !models.IsNoteCategory(*u.Category) {
		return invalid("category", "Invalid category")
	}
	if u.Sentiment != nil && *u.Sentiment != "" && !models.IsSentiment(*u.Sentiment) {
		return invalid("sentiment", "Sentiment must be bullish or bearish")
	}
	if u.Date != nil {
		if err := validateDate(*u.Date); err != nil {
			return err
		}
	}
	if u.Tags != nil {
		return ValidateTags(compactTags(*u.Tags))
	}
	return nil
}

// ValidateTags checks the tag count and per-tag length
func ValidateTags(tags []string) error {
	if len(tags) > models.MaxTags {
		return invalid("tags", fmt.Sprintf("Maximum %d tags allowed", models.MaxTags))
	}
	for _, tag := range tags {
		if utf8.RuneCountInString(strings.TrimSpace(tag)) > models.MaxTagLength {
			return invalid("tags", fmt.Sprintf("Each tag must be %d characters or less", models.MaxTagLength))
		}
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return invalid("title", "Title is required")
	}
	if utf8.RuneCountInString(title) > models.MaxTitleLength {
		return invalid("title", fmt.Sprintf("Title cannot exceed %d characters", models.MaxTitleLength))
	}
	return nil
}

func validateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return invalid("description", "Description is required")
	}
	if utf8.RuneCountInString(description) > models.MaxDescriptionLength {
		return invalid("description", fmt.Sprintf("Description cannot exceed %d characters", models.MaxDescriptionLength))
	}
	return nil
}

// ParseTags splits a comma separated list, trimming and dropping empty entries
func ParseTags(raw string) []string {
	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// JoinTags is the inverse of ParseTags for already-parsed tags
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// CapTags keeps at most MaxTags entries
func CapTags(tags []string) []string {
	if len(tags) > models.MaxTags {
		return tags[:models.MaxTags]
	}
	return tags
}

// NormalizeNote trims text fields and enforces the research invariant, so a
// research note submitted with a sentiment loses it before persistence.
func NormalizeNote(n models.NewAnalysisNote) models.NewAnalysisNote {
	n.Title = strings.TrimSpace(n.Title)
	n.Description = strings.TrimSpace(n.Description)
	n.Date = strings.TrimSpace(n.Date)
	c := models.Classification{
		Category:       n.Category,
		ParentCategory: n.ParentCategory,
		Sentiment:      n.Sentiment,
	}.Normalized()
	n.Category, n.ParentCategory, n.Sentiment = c.Category, c.ParentCategory, c.Sentiment
	n.Tags = JoinTags(CapTags(ParseTags(n.Tags)))
	return n
}

// NormalizeNoteUpdate trims the text fields present in u
func NormalizeNoteUpdate(u models.NoteUpdate) models.NoteUpdate {
	if u.Title != nil {
		t := strings.TrimSpace(*u.Title)
		u.Title = &t
	}
	if u.Description != nil {
		d := strings.TrimSpace(*u.Description)
		u.Description = &d
	}
	if u.Date != nil {
		d := strings.TrimSpace(*u.Date)
		u.Date = &d
	}
	if u.Tags != nil {
		tags := CapTags(compactTags(*u.Tags))
		u.Tags = &tags
	}
	return u
}

// compactTags trims tags and drops the blank ones
func compactTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
