package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/trogers1052/stock-journal/internal/database"
	"github.com/trogers1052/stock-journal/internal/models"
)

// MockRepository implements journal.Repository in memory for testing
type MockRepository struct {
	mu         sync.Mutex
	positions  []*models.StockPosition
	notes      []*models.AnalysisNote
	dailyNotes []*models.DailyNote

	// Inject failures per method name
	Errors map[string]error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{Errors: make(map[string]error)}
}

func (m *MockRepository) fail(method string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Errors[method]
}

func (m *MockRepository) GetAllPositions(ctx context.Context, userID string) ([]*models.StockPosition, error) {
	if err := m.fail("GetAllPositions"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.StockPosition{}
	for _, p := range m.positions {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockRepository) CreatePosition(ctx context.Context, p *models.StockPosition) (*models.StockPosition, error) {
	if err := m.fail("CreatePosition"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	cp.ID = uuid.NewString()
	cp.Timestamp = time.Now().UTC()
	cp.UpdatedAt = cp.Timestamp
	m.positions = append(m.positions, &cp)
	out := cp
	return &out, nil
}

func (m *MockRepository) UpdatePosition(ctx context.Context, userID, id string, u models.PositionUpdate) (*models.StockPosition, error) {
	if err := m.fail("UpdatePosition"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.positions {
		if p.ID != id || p.UserID != userID {
			continue
		}
		if u.Symbol != nil {
			p.Symbol = *u.Symbol
		}
		if u.Price != nil {
			p.Price = *u.Price
		}
		if u.Position != nil {
			p.Position = *u.Position
		}
		if u.Strategy != nil {
			p.Strategy = *u.Strategy
		}
		if u.RiskLevel != nil {
			p.RiskLevel = *u.RiskLevel
		}
		out := *p
		return &out, nil
	}
	return nil, fmt.Errorf("%w: position %s", database.ErrNotFound, id)
}

func (m *MockRepository) DeletePosition(ctx context.Context, userID, id string) error {
	if err := m.fail("DeletePosition"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.positions {
		if p.ID == id && p.UserID == userID {
			m.positions = append(m.positions[:i], m.positions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: position %s", database.ErrNotFound, id)
}

func (m *MockRepository) GetAllNotes(ctx context.Context, userID string) ([]*models.AnalysisNote, error) {
	if err := m.fail("GetAllNotes"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.AnalysisNote{}
	for _, n := range m.notes {
		if n.UserID == userID {
			cp := n.Clone()
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockRepository) CreateNote(ctx context.Context, n *models.AnalysisNote) (*models.AnalysisNote, error) {
	if err := m.fail("CreateNote"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := n.Clone()
	cp.ID = uuid.NewString()
	cp.Timestamp = time.Now().UTC()
	m.notes = append(m.notes, &cp)
	out := cp.Clone()
	return &out, nil
}

func (m *MockRepository) UpdateNote(ctx context.Context, userID, id string, u models.NoteUpdate) (*models.AnalysisNote, error) {
	if err := m.fail("UpdateNote"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.notes {
		if n.ID != id || n.UserID != userID {
			continue
		}
		if u.Sentiment != nil {
			n.Sentiment = *u.Sentiment
		}
		if u.Category != nil {
			n.Category = *u.Category
		}
		if u.ParentCategory != nil {
			n.ParentCategory = *u.ParentCategory
		}
		if u.Title != nil {
			n.Title = *u.Title
		}
		if u.Description != nil {
			n.Description = *u.Description
		}
		out := n.Clone()
		return &out, nil
	}
	return nil, fmt.Errorf("%w: note %s", database.ErrNotFound, id)
}

func (m *MockRepository) DeleteNote(ctx context.Context, userID, id string) error {
	if err := m.fail("DeleteNote"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.notes {
		if n.ID == id && n.UserID == userID {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: note %s", database.ErrNotFound, id)
}

func (m *MockRepository) DeleteNotesByPosition(ctx context.Context, userID, stockID string) (int64, error) {
	if err := m.fail("DeleteNotesByPosition"); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.notes[:0]
	var deleted int64
	for _, n := range m.notes {
		if n.StockID == stockID && n.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	m.notes = kept
	return deleted, nil
}

func (m *MockRepository) GetAllDailyNotes(ctx context.Context, userID string) ([]*models.DailyNote, error) {
	if err := m.fail("GetAllDailyNotes"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.DailyNote{}
	for _, n := range m.dailyNotes {
		if n.UserID == userID {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockRepository) CreateDailyNote(ctx context.Context, n *models.DailyNote) (*models.DailyNote, error) {
	if err := m.fail("CreateDailyNote"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *n
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	m.dailyNotes = append(m.dailyNotes, &cp)
	out := cp
	return &out, nil
}

func (m *MockRepository) UpdateDailyNote(ctx context.Context, userID, id string, u models.DailyNoteUpdate) (*models.DailyNote, error) {
	if err := m.fail("UpdateDailyNote"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.dailyNotes {
		if n.ID != id || n.UserID != userID {
			continue
		}
		if u.Date != nil {
			n.Date = *u.Date
		}
		if u.Content != nil {
			n.Content = *u.Content
		}
		out := *n
		return &out, nil
	}
	return nil, fmt.Errorf("%w: daily note %s", database.ErrNotFound, id)
}

func (m *MockRepository) DeleteDailyNote(ctx context.Context, userID, id string) error {
	if err := m.fail("DeleteDailyNote"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.dailyNotes {
		if n.ID == id && n.UserID == userID {
			m.dailyNotes = append(m.dailyNotes[:i], m.dailyNotes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: daily note %s", database.ErrNotFound, id)
}

// MockPinger reports a fixed health result
type MockPinger struct {
	Err error
}

func (p MockPinger) Ping(ctx context.Context) error {
	return p.Err
}
