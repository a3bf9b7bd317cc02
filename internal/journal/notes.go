package journal

import (
	"context"
	"fmt"
	"strings"

	"github.com/trogers1052/stock-journal/internal/database"
	"github.com/trogers1052/stock-journal/internal/models"
	"github.com/trogers1052/stock-journal/internal/validation"
	"go.uber.org/zap"
)

// NoteStore caches one user's analysis notes, newest first
type NoteStore struct {
	userID string
	repo   NoteRepository
	events emitter
	logger *zap.Logger
	state  *state[models.AnalysisNote]
}

// NewNoteStore creates a store for userID
func NewNoteStore(userID string, repo NoteRepository, events EventPublisher, logger *zap.Logger) *NoteStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoteStore{
		userID: userID,
		repo:   repo,
		events: emitter{userID: userID, events: events, logger: logger},
		logger: logger.With(zap.String("store", "notes"), zap.String("user_id", userID)),
		state: newState(
			func(n models.AnalysisNote) string { return n.ID },
			models.AnalysisNote.Clone,
		),
	}
}

// Snapshot returns a copy of the current state
func (s *NoteStore) Snapshot() Snapshot[models.AnalysisNote] {
	return s.state.snapshot()
}

// Get returns the cached note with the given id
func (s *NoteStore) Get(id string) (models.AnalysisNote, bool) {
	return s.state.find(id)
}

// Load replaces the cache with a full fetch. Without a user it does nothing.
func (s *NoteStore) Load(ctx context.Context) error {
	if s.userID == "" {
		return nil
	}

	rows, err := s.repo.GetAllNotes(ctx, s.userID)
	if err != nil {
		return s.fail(err, true)
	}

	s.state.replaceAll(deref(rows))
	return nil
}

// Refresh re-fetches the full list
func (s *NoteStore) Refresh(ctx context.Context) error {
	return s.Load(ctx)
}

// Add attaches a new note to the position stockID. Research notes lose any
// submitted sentiment and take the general parent category before persisting.
func (s *NoteStore) Add(ctx context.Context, stockID, symbol string, in models.NewAnalysisNote) (models.AnalysisNote, error) {
	if s.userID == "" {
		return models.AnalysisNote{}, ErrNotReady
	}

	if err := validation.ValidateNoteForm(in); err != nil {
		return models.AnalysisNote{}, s.fail(err, false)
	}
	in = validation.NormalizeNote(in)
	stockID = strings.TrimSpace(stockID)
	symbol = validation.NormalizeSymbol(symbol)
	if err := validation.ValidateNote(in, stockID, symbol); err != nil {
		return models.AnalysisNote{}, s.fail(err, false)
	}

	created, err := s.repo.CreateNote(ctx, &models.AnalysisNote{
		UserID:         s.userID,
		StockID:        stockID,
		Symbol:         symbol,
		Sentiment:      in.Sentiment,
		Category:       in.Category,
		ParentCategory: in.ParentCategory,
		Title:          in.Title,
		Description:    in.Description,
		Date:           in.Date,
		Tags:           validation.ParseTags(in.Tags),
	})
	if err != nil {
		return models.AnalysisNote{}, s.fail(err, false)
	}

	s.state.prepend(*created)
	s.events.emit(ctx, models.EventNoteAdded, created.ID, created.Symbol)
	return created.Clone(), nil
}

// Update persists the provided fields. When the patch touches the
// classification it is merged with the cached note and re-derived, so a
// category change always leaves a consistent sentiment and parent category.
func (s *NoteStore) Update(ctx context.Context, id string, u models.NoteUpdate) (models.AnalysisNote, error) {
	if s.userID == "" {
		return models.AnalysisNote{}, ErrNotReady
	}

	if u.IsEmpty() {
		return models.AnalysisNote{}, s.fail(&validation.Error{Message: "No fields to update"}, false)
	}
	if err := validation.ValidateNoteUpdate(u); err != nil {
		return models.AnalysisNote{}, s.fail(err, false)
	}
	u = validation.NormalizeNoteUpdate(u)

	if u.Category != nil || u.ParentCategory != nil || u.Sentiment != nil {
		current, ok := s.state.find(id)
		if !ok {
			return models.AnalysisNote{}, s.fail(fmt.Errorf("%w: note %s", database.ErrNotFound, id), false)
		}
		merged := mergeClassification(current.Classification(), u)
		if err := validation.ValidateClassification(merged); err != nil {
			return models.AnalysisNote{}, s.fail(err, false)
		}
		c := merged.Update()
		u.Category, u.ParentCategory, u.Sentiment = c.Category, c.ParentCategory, c.Sentiment
	}

	updated, err := s.repo.UpdateNote(ctx, s.userID, id, u)
	if err != nil {
		return models.AnalysisNote{}, s.fail(err, false)
	}

	s.state.replace(*updated)
	s.events.emit(ctx, models.EventNoteUpdated, updated.ID, updated.Symbol)
	return updated.Clone(), nil
}

// Delete removes a single note
func (s *NoteStore) Delete(ctx context.Context, id string) error {
	if s.userID == "" {
		return ErrNotReady
	}

	existing, _ := s.state.find(id)
	if err := s.repo.DeleteNote(ctx, s.userID, id); err != nil {
		return s.fail(err, false)
	}

	s.state.remove(func(n models.AnalysisNote) bool { return n.ID == id })
	s.events.emit(ctx, models.EventNoteDeleted, id, existing.Symbol)
	return nil
}

// DeleteAllForPosition removes every note attached to stockID
func (s *NoteStore) DeleteAllForPosition(ctx context.Context, stockID string) error {
	if s.userID == "" {
		return ErrNotReady
	}

	deleted, err := s.repo.DeleteNotesByPosition(ctx, s.userID, stockID)
	if err != nil {
		return s.fail(err, false)
	}

	s.state.remove(func(n models.AnalysisNote) bool { return n.StockID == stockID })
	s.logger.Debug("deleted notes for position", zap.String("stock_id", stockID), zap.Int64("count", deleted))
	s.events.emit(ctx, models.EventNotesCleared, stockID, "")
	return nil
}

// ForPosition returns the cached notes attached to stockID, newest first
func (s *NoteStore) ForPosition(stockID string) []models.AnalysisNote {
	notes := []models.AnalysisNote{}
	for _, n := range s.state.snapshot().Rows {
		if n.StockID == stockID {
			notes = append(notes, n)
		}
	}
	return notes
}

func (s *NoteStore) fail(err error, load bool) *Error {
	jerr := classify(err, KindDatabase)
	s.state.fail(jerr, load)
	if jerr.Kind != KindValidation {
		s.logger.Error("note operation failed", zap.String("kind", string(jerr.Kind)), zap.Error(err))
	}
	return jerr
}

// mergeClassification overlays the classification fields of u on current. A
// category change without an explicit sentiment takes the category default.
func mergeClassification(current models.Classification, u models.NoteUpdate) models.Classification {
	merged := current
	if u.Category != nil {
		if *u.Category != current.Category && u.Sentiment == nil {
			merged.Sentiment = models.DefaultSentiment(*u.Category)
		}
		merged.Category = *u.Category
	}
	if u.ParentCategory != nil {
		merged.ParentCategory = *u.ParentCategory
	}
	if u.Sentiment != nil {
		merged.Sentiment = *u.Sentiment
	}
	return merged.Normalized()
}
