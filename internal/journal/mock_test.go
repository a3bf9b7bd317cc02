package journal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/trogers1052/stock-journal/internal/database"
	"github.com/trogers1052/stock-journal/internal/models"
)

// MockRepository implements Repository in memory for testing
type MockRepository struct {
	mu         sync.Mutex
	positions  []*models.StockPosition
	notes      []*models.AnalysisNote
	dailyNotes []*models.DailyNote
	nextID     int

	lastNoteUpdate models.NoteUpdate

	// Inject failures per method name
	Errors map[string]error

	// Track method calls for verification
	Calls map[string]int
	// Order of mutating calls
	Log []string
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		Errors: make(map[string]error),
		Calls:  make(map[string]int),
	}
}

func (m *MockRepository) record(method string) error {
	m.Calls[method]++
	m.Log = append(m.Log, method)
	return m.Errors[method]
}

func (m *MockRepository) id(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

func (m *MockRepository) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.Calls {
		total += n
	}
	return total
}

func (m *MockRepository) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls[method]
}

func (m *MockRepository) GetAllPositions(ctx context.Context, userID string) ([]*models.StockPosition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("GetAllPositions"); err != nil {
		return nil, err
	}
	out := []*models.StockPosition{}
	for i := len(m.positions) - 1; i >= 0; i-- {
		if p := m.positions[i]; p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockRepository) CreatePosition(ctx context.Context, p *models.StockPosition) (*models.StockPosition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("CreatePosition"); err != nil {
		return nil, err
	}
	stored := *p
	stored.ID = m.id("pos")
	stored.Timestamp = time.Now().UTC()
	stored.UpdatedAt = stored.Timestamp
	m.positions = append(m.positions, &stored)
	cp := stored
	return &cp, nil
}

func (m *MockRepository) UpdatePosition(ctx context.Context, userID, id string, u models.PositionUpdate) (*models.StockPosition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("UpdatePosition"); err != nil {
		return nil, err
	}
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
		if u.Category != nil {
			p.Category = *u.Category
		}
		if u.RiskLevel != nil {
			p.RiskLevel = *u.RiskLevel
		}
		if u.PositionSize != nil {
			p.PositionSize = *u.PositionSize
		}
		if u.Date != nil {
			p.Date = *u.Date
		}
		p.UpdatedAt = time.Now().UTC()
		cp := *p
		return &cp, nil
	}
	return nil, fmt.Errorf("%w: position %s", database.ErrNotFound, id)
}

func (m *MockRepository) DeletePosition(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("DeletePosition"); err != nil {
		return err
	}
	for i, p := range m.positions {
		if p.ID == id && p.UserID == userID {
			m.positions = append(m.positions[:i], m.positions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: position %s", database.ErrNotFound, id)
}

func (m *MockRepository) GetAllNotes(ctx context.Context, userID string) ([]*models.AnalysisNote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("GetAllNotes"); err != nil {
		return nil, err
	}
	out := []*models.AnalysisNote{}
	for i := len(m.notes) - 1; i >= 0; i-- {
		if n := m.notes[i]; n.UserID == userID {
			cp := n.Clone()
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockRepository) CreateNote(ctx context.Context, n *models.AnalysisNote) (*models.AnalysisNote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("CreateNote"); err != nil {
		return nil, err
	}
	stored := n.Clone()
	stored.ID = m.id("note")
	stored.Timestamp = time.Now().UTC()
	stored.UpdatedAt = stored.Timestamp
	m.notes = append(m.notes, &stored)
	cp := stored.Clone()
	return &cp, nil
}

// LastCreatedNote returns the payload of the most recent CreateNote call
func (m *MockRepository) LastCreatedNote() *models.AnalysisNote {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.notes) == 0 {
		return nil
	}
	cp := m.notes[len(m.notes)-1].Clone()
	return &cp
}

// LastNoteUpdate returns the patch received by the most recent UpdateNote call
func (m *MockRepository) LastNoteUpdate() models.NoteUpdate {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastNoteUpdate
}

func (m *MockRepository) UpdateNote(ctx context.Context, userID, id string, u models.NoteUpdate) (*models.AnalysisNote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("UpdateNote"); err != nil {
		return nil, err
	}
	m.lastNoteUpdate = u
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
		if u.Date != nil {
			n.Date = *u.Date
		}
		if u.Tags != nil {
			n.Tags = append([]string{}, *u.Tags...)
		}
		n.UpdatedAt = time.Now().UTC()
		cp := n.Clone()
		return &cp, nil
	}
	return nil, fmt.Errorf("%w: note %s", database.ErrNotFound, id)
}

func (m *MockRepository) DeleteNote(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("DeleteNote"); err != nil {
		return err
	}
	for i, n := range m.notes {
		if n.ID == id && n.UserID == userID {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: note %s", database.ErrNotFound, id)
}

func (m *MockRepository) DeleteNotesByPosition(ctx context.Context, userID, stockID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("DeleteNotesByPosition"); err != nil {
		return 0, err
	}
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
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("GetAllDailyNotes"); err != nil {
		return nil, err
	}
	out := []*models.DailyNote{}
	for i := len(m.dailyNotes) - 1; i >= 0; i-- {
		if n := m.dailyNotes[i]; n.UserID == userID {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockRepository) CreateDailyNote(ctx context.Context, n *models.DailyNote) (*models.DailyNote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("CreateDailyNote"); err != nil {
		return nil, err
	}
	stored := *n
	stored.ID = m.id("daily")
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	m.dailyNotes = append(m.dailyNotes, &stored)
	cp := stored
	return &cp, nil
}

func (m *MockRepository) UpdateDailyNote(ctx context.Context, userID, id string, u models.DailyNoteUpdate) (*models.DailyNote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("UpdateDailyNote"); err != nil {
		return nil, err
	}
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
		n.UpdatedAt = time.Now().UTC()
		cp := *n
		return &cp, nil
	}
	return nil, fmt.Errorf("%w: daily note %s", database.ErrNotFound, id)
}

func (m *MockRepository) DeleteDailyNote(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("DeleteDailyNote"); err != nil {
		return err
	}
	for i, n := range m.dailyNotes {
		if n.ID == id && n.UserID == userID {
			m.dailyNotes = append(m.dailyNotes[:i], m.dailyNotes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: daily note %s", database.ErrNotFound, id)
}

// MockPublisher records published events
type MockPublisher struct {
	mu     sync.Mutex
	Events []models.JournalEvent
	Err    error
}

func (p *MockPublisher) Publish(ctx context.Context, event models.JournalEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
	return p.Err
}

func (p *MockPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.Events))
	for i, e := range p.Events {
		types[i] = e.EventType
	}
	return types
}
