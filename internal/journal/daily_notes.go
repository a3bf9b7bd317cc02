package journal

import (
	"context"
	"strings"

	"github.com/trogers1052/stock-journal/internal/models"
	"github.com/trogers1052/stock-journal/internal/validation"
	"go.uber.org/zap"
)

// DailyNoteStore caches one user's daily notes, latest date first
type DailyNoteStore struct {
	userID string
	repo   DailyNoteRepository
	events emitter
	logger *zap.Logger
	state  *state[models.DailyNote]
}

// NewDailyNoteStore creates a store for userID
func NewDailyNoteStore(userID string, repo DailyNoteRepository, events EventPublisher, logger *zap.Logger) *DailyNoteStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DailyNoteStore{
		userID: userID,
		repo:   repo,
		events: emitter{userID: userID, events: events, logger: logger},
		logger: logger.With(zap.String("store", "daily_notes"), zap.String("user_id", userID)),
		state:  newState(func(n models.DailyNote) string { return n.ID }, nil),
	}
}

// Snapshot returns a copy of the current state
func (s *DailyNoteStore) Snapshot() Snapshot[models.DailyNote] {
	return s.state.snapshot()
}

// Load replaces the cache with a full fetch
func (s *DailyNoteStore) Load(ctx context.Context) error {
	if s.userID == "" {
		return nil
	}

	rows, err := s.repo.GetAllDailyNotes(ctx, s.userID)
	if err != nil {
		return s.fail(err, true)
	}

	s.state.replaceAll(deref(rows))
	return nil
}

// Refresh re-fetches the full list
func (s *DailyNoteStore) Refresh(ctx context.Context) error {
	return s.Load(ctx)
}

// Add persists a daily note and prepends it
func (s *DailyNoteStore) Add(ctx context.Context, in models.NewDailyNote) (models.DailyNote, error) {
	if s.userID == "" {
		return models.DailyNote{}, ErrNotReady
	}

	if err := validation.ValidateDailyNote(in); err != nil {
		return models.DailyNote{}, s.fail(err, false)
	}

	created, err := s.repo.CreateDailyNote(ctx, &models.DailyNote{
		UserID:  s.userID,
		Date:    strings.TrimSpace(in.Date),
		Content: strings.TrimSpace(in.Content),
	})
	if err != nil {
		return models.DailyNote{}, s.fail(err, false)
	}

	s.state.prepend(*created)
	s.events.emit(ctx, models.EventDailyNoteAdded, created.ID, "")
	return *created, nil
}

// Update persists the provided fields and swaps in the stored row
func (s *DailyNoteStore) Update(ctx context.Context, id string, u models.DailyNoteUpdate) (models.DailyNote, error) {
	if s.userID == "" {
		return models.DailyNote{}, ErrNotReady
	}

	if u.IsEmpty() {
		return models.DailyNote{}, s.fail(&validation.Error{Message: "No fields to update"}, false)
	}
	if err := validation.ValidateDailyNoteUpdate(u); err != nil {
		return models.DailyNote{}, s.fail(err, false)
	}
	if u.Date != nil {
		d := strings.TrimSpace(*u.Date)
		u.Date = &d
	}
	if u.Content != nil {
		c := strings.TrimSpace(*u.Content)
		u.Content = &c
	}

	updated, err := s.repo.UpdateDailyNote(ctx, s.userID, id, u)
	if err != nil {
		return models.DailyNote{}, s.fail(err, false)
	}

	s.state.replace(*updated)
	s.events.emit(ctx, models.EventDailyNoteUpdated, updated.ID, "")
	return *updated, nil
}

// Delete removes a daily note
func (s *DailyNoteStore) Delete(ctx context.Context, id string) error {
	if s.userID == "" {
		return ErrNotReady
	}

	if err := s.repo.DeleteDailyNote(ctx, s.userID, id); err != nil {
		return s.fail(err, false)
	}

	s.state.remove(func(n models.DailyNote) bool { return n.ID == id })
	s.events.emit(ctx, models.EventDailyNoteDeleted, id, "")
	return nil
}

func (s *DailyNoteStore) fail(err error, load bool) *Error {
	jerr := classify(err, KindDatabase)
	s.state.fail(jerr, load)
	if jerr.Kind != KindValidation {
		s.logger.Error("daily note operation failed", zap.String("kind", string(jerr.Kind)), zap.Error(err))
	}
	return jerr
}
