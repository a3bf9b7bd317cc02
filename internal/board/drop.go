// Package board turns analysis notes into categorized columns and moves notes
// between columns by rewriting their classification.
package board

import (
	"context"
	"errors"
	"strings"

	"github.com/trogers1052/stock-journal/internal/models"
)

// ErrInvalidTarget is returned for a drop target id that names no column
var ErrInvalidTarget = errors.New("invalid drop target")

// TargetID builds the drop target id of a board column, e.g. "catalyst-financial"
func TargetID(category, parentCategory string) string {
	return category + "-" + parentCategory
}

// ParseDropTarget splits "<category>-<parentCategory>" and checks it names a
// real column: catalyst and block take a taxonomy parent, research only "general".
func ParseDropTarget(id string) (models.Classification, error) {
	category, parent, ok := strings.Cut(id, "-")
	if !ok {
		return models.Classification{}, ErrInvalidTarget
	}

	switch category {
	case models.CategoryResearch:
		if parent != models.ParentGeneral {
			return models.Classification{}, ErrInvalidTarget
		}
	case models.CategoryCatalyst, models.CategoryBlock:
		if !models.IsParentCategory(parent) {
			return models.Classification{}, ErrInvalidTarget
		}
	default:
		return models.Classification{}, ErrInvalidTarget
	}

	return models.Classification{Category: category, ParentCategory: parent}, nil
}

// Reclassify returns the classification a note takes when dropped on target.
// Sentiment is always the category default: bullish for catalysts, bearish for
// blocks, none for research.
func Reclassify(target models.Classification) models.Classification {
	return models.Classification{
		Category:       target.Category,
		ParentCategory: target.ParentCategory,
		Sentiment:      models.DefaultSentiment(target.Category),
	}.Normalized()
}

// NoteUpdater is the part of the note store a Mover needs
type NoteUpdater interface {
	Get(id string) (models.AnalysisNote, bool)
	Update(ctx context.Context, id string, u models.NoteUpdate) (models.AnalysisNote, error)
}

// Mover applies drag-and-drop moves through a note store
type Mover struct {
	notes NoteUpdater
}

// NewMover creates a Mover over notes
func NewMover(notes NoteUpdater) *Mover {
	return &Mover{notes: notes}
}

// Drop moves noteID onto the column overID. It reports whether an update was
// issued. Dropping a note on itself, dropping an unknown note, dropping on
// anything that is not a column, and dropping into the note's current column
// are all no-ops.
func (m *Mover) Drop(ctx context.Context, noteID, overID string) (bool, error) {
	if noteID == "" || noteID == overID {
		return false, nil
	}

	note, ok := m.notes.Get(noteID)
	if !ok {
		return false, nil
	}

	target, err := ParseDropTarget(overID)
	if err != nil {
		return false, nil
	}
	if note.Category == target.Category && note.ParentCategory == target.ParentCategory {
		return false, nil
	}

	if _, err := m.notes.Update(ctx, noteID, Reclassify(target).Update()); err != nil {
		return false, err
	}
	return true, nil
}
