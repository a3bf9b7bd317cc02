package journal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Session bundles the three stores of one user
type Session struct {
	UserID     string
	Positions  *PositionStore
	Notes      *NoteStore
	DailyNotes *DailyNoteStore
}

// NewSession creates unloaded stores for userID
func NewSession(userID string, repo Repository, events EventPublisher, logger *zap.Logger) *Session {
	return &Session{
		UserID:     userID,
		Positions:  NewPositionStore(userID, repo, events, logger),
		Notes:      NewNoteStore(userID, repo, events, logger),
		DailyNotes: NewDailyNoteStore(userID, repo, events, logger),
	}
}

// Load fetches all three lists. Each store records its own failure.
func (s *Session) Load(ctx context.Context) error {
	return errors.Join(
		s.Positions.Load(ctx),
		s.Notes.Load(ctx),
		s.DailyNotes.Load(ctx),
	)
}

// DeletePosition removes every note of the position and then the position.
// If the notes step fails the position is left untouched.
func (s *Session) DeletePosition(ctx context.Context, id string) error {
	if err := s.Notes.DeleteAllForPosition(ctx, id); err != nil {
		return err
	}
	return s.Positions.Delete(ctx, id)
}

// Registry holds one loaded session per user
type Registry struct {
	repo   Repository
	events EventPublisher
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry
func NewRegistry(repo Repository, events EventPublisher, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		repo:     repo,
		events:   events,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Session returns the user's session, creating and loading it on first use.
// A session whose initial load fails is not kept.
func (r *Registry) Session(ctx context.Context, userID string) (*Session, error) {
	if userID == "" {
		return nil, ErrNotReady
	}

	r.mu.Lock()
	s, ok := r.sessions[userID]
	r.mu.Unlock()
	if ok {
		return s, nil
	}

	s = NewSession(userID, r.repo, r.events, r.logger)
	if err := s.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sessions[userID]; ok {
		return existing, nil
	}
	r.sessions[userID] = s
	r.logger.Debug("session created", zap.String("user_id", userID))
	return s, nil
}

// Refresh re-fetches a cached session. Users without a session are skipped.
func (r *Registry) Refresh(ctx context.Context, userID string) error {
	r.mu.Lock()
	s, ok := r.sessions[userID]
	r.mu.Unlock()
	if !ok {
		return nil
	}
	return s.Load(ctx)
}

// Remove drops the user's session, used on sign-out
func (r *Registry) Remove(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
}

// Len returns the number of cached sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
