package journal

import (
	"context"
	"fmt"

	"github.com/trogers1052/stock-journal/internal/models"
	"github.com/trogers1052/stock-journal/internal/validation"
	"go.uber.org/zap"
)

// PositionStore caches one user's stock positions, newest first
type PositionStore struct {
	userID string
	repo   PositionRepository
	events emitter
	logger *zap.Logger
	state  *state[models.StockPosition]
}

// NewPositionStore creates a store for userID. An empty userID leaves the
// store loading and every mutation fails with ErrNotReady.
func NewPositionStore(userID string, repo PositionRepository, events EventPublisher, logger *zap.Logger) *PositionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PositionStore{
		userID: userID,
		repo:   repo,
		events: emitter{userID: userID, events: events, logger: logger},
		logger: logger.With(zap.String("store", "positions"), zap.String("user_id", userID)),
		state:  newState(func(p models.StockPosition) string { return p.ID }, nil),
	}
}

// Snapshot returns a copy of the current state
func (s *PositionStore) Snapshot() Snapshot[models.StockPosition] {
	return s.state.snapshot()
}

// Get returns the cached position with the given id
func (s *PositionStore) Get(id string) (models.StockPosition, bool) {
	return s.state.find(id)
}

// Load replaces the cache with a full fetch. Without a user it does nothing.
func (s *PositionStore) Load(ctx context.Context) error {
	if s.userID == "" {
		return nil
	}

	rows, err := s.repo.GetAllPositions(ctx, s.userID)
	if err != nil {
		return s.fail(err, true)
	}

	s.state.replaceAll(deref(rows))
	return nil
}

// Refresh re-fetches the full list, used when another instance changed it
func (s *PositionStore) Refresh(ctx context.Context) error {
	return s.Load(ctx)
}

// Add validates, normalizes and persists a new position, then prepends it
func (s *PositionStore) Add(ctx context.Context, in models.NewStockPosition) (models.StockPosition, error) {
	if s.userID == "" {
		return models.StockPosition{}, ErrNotReady
	}

	if err := validation.ValidatePosition(in); err != nil {
		return models.StockPosition{}, s.fail(err, false)
	}
	in = validation.NormalizePosition(in)

	if s.hasSymbol(in.Symbol, "") {
		return models.StockPosition{}, s.fail(duplicateSymbol(in.Symbol), false)
	}

	created, err := s.repo.CreatePosition(ctx, &models.StockPosition{
		UserID:       s.userID,
		Symbol:       in.Symbol,
		Price:        in.Price,
		Position:     in.Position,
		Strategy:     in.Strategy,
		Category:     in.Category,
		RiskLevel:    in.RiskLevel,
		PositionSize: in.PositionSize,
		Date:         in.Date,
	})
	if err != nil {
		return models.StockPosition{}, s.fail(err, false)
	}

	s.state.prepend(*created)
	s.events.emit(ctx, models.EventPositionAdded, created.ID, created.Symbol)
	return *created, nil
}

// Update persists the provided fields and swaps in the stored row
func (s *PositionStore) Update(ctx context.Context, id string, u models.PositionUpdate) (models.StockPosition, error) {
	if s.userID == "" {
		return models.StockPosition{}, ErrNotReady
	}

	if u.IsEmpty() {
		return models.StockPosition{}, s.fail(&validation.Error{Message: "No fields to update"}, false)
	}
	if err := validation.ValidatePositionUpdate(u); err != nil {
		return models.StockPosition{}, s.fail(err, false)
	}
	u = validation.NormalizePositionUpdate(u)

	if u.Symbol != nil && s.hasSymbol(*u.Symbol, id) {
		return models.StockPosition{}, s.fail(duplicateSymbol(*u.Symbol), false)
	}

	updated, err := s.repo.UpdatePosition(ctx, s.userID, id, u)
	if err != nil {
		return models.StockPosition{}, s.fail(err, false)
	}

	s.state.replace(*updated)
	s.events.emit(ctx, models.EventPositionUpdated, updated.ID, updated.Symbol)
	return *updated, nil
}

// Delete removes a position. Callers delete its notes first; see Session.DeletePosition.
func (s *PositionStore) Delete(ctx context.Context, id string) error {
	if s.userID == "" {
		return ErrNotReady
	}

	existing, _ := s.state.find(id)
	if err := s.repo.DeletePosition(ctx, s.userID, id); err != nil {
		return s.fail(err, false)
	}

	s.state.remove(func(p models.StockPosition) bool { return p.ID == id })
	s.events.emit(ctx, models.EventPositionDeleted, id, existing.Symbol)
	return nil
}

func (s *PositionStore) hasSymbol(symbol, exceptID string) bool {
	return s.state.any(func(p models.StockPosition) bool {
		return p.Symbol == symbol && p.ID != exceptID
	})
}

func (s *PositionStore) fail(err error, load bool) *Error {
	jerr := classify(err, KindDatabase)
	s.state.fail(jerr, load)
	if jerr.Kind != KindValidation {
		s.logger.Error("position operation failed", zap.String("kind", string(jerr.Kind)), zap.Error(err))
	}
	return jerr
}

func duplicateSymbol(symbol string) error {
	return &validation.Error{Field: "symbol", Message: fmt.Sprintf("Position for %s already exists", symbol)}
}
