// Package journal keeps a per-user, in-memory view of positions, analysis
// notes and daily notes in sync with the database. Every mutation validates,
// persists, and only then updates the cached list.
package journal

import (
	"context"
	"time"

	"github.com/trogers1052/stock-journal/internal/models"
	"go.uber.org/zap"
)

// PositionRepository persists stock positions
type PositionRepository interface {
	GetAllPositions(ctx context.Context, userID string) ([]*models.StockPosition, error)
	CreatePosition(ctx context.Context, p *models.StockPosition) (*models.StockPosition, error)
	UpdatePosition(ctx context.Context, userID, id string, u models.PositionUpdate) (*models.StockPosition, error)
	DeletePosition(ctx context.Context, userID, id string) error
}

// NoteRepository persists analysis notes
type NoteRepository interface {
	GetAllNotes(ctx context.Context, userID string) ([]*models.AnalysisNote, error)
	CreateNote(ctx context.Context, n *models.AnalysisNote) (*models.AnalysisNote, error)
	UpdateNote(ctx context.Context, userID, id string, u models.NoteUpdate) (*models.AnalysisNote, error)
	DeleteNote(ctx context.Context, userID, id string) error
	DeleteNotesByPosition(ctx context.Context, userID, stockID string) (int64, error)
}

// DailyNoteRepository persists daily notes
type DailyNoteRepository interface {
	GetAllDailyNotes(ctx context.Context, userID string) ([]*models.DailyNote, error)
	CreateDailyNote(ctx context.Context, n *models.DailyNote) (*models.DailyNote, error)
	UpdateDailyNote(ctx context.Context, userID, id string, u models.DailyNoteUpdate) (*models.DailyNote, error)
	DeleteDailyNote(ctx context.Context, userID, id string) error
}

// Repository is the full persistence surface a Session needs
type Repository interface {
	PositionRepository
	NoteRepository
	DailyNoteRepository
}

// EventPublisher receives an event after every confirmed mutation
type EventPublisher interface {
	Publish(ctx context.Context, event models.JournalEvent) error
}

// emitter publishes journal events. Publish failures are logged, never returned.
type emitter struct {
	userID string
	events EventPublisher
	logger *zap.Logger
}

func (e emitter) emit(ctx context.Context, eventType, entityID, symbol string) {
	if e.events == nil {
		return
	}

	event := models.JournalEvent{
		EventType: eventType,
		UserID:    e.userID,
		EntityID:  entityID,
		Symbol:    symbol,
		Timestamp: time.Now().UTC(),
	}
	if err := e.events.Publish(ctx, event); err != nil {
		e.logger.Warn("failed to publish journal event",
			zap.String("event_type", eventType),
			zap.String("entity_id", entityID),
			zap.Error(err),
		)
	}
}

func deref[T any](rows []*T) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}
