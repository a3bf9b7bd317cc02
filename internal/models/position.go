package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position status constants
const (
	PositionHolding  = "holding"
	PositionSold     = "sold"
	PositionWatching = "watching"
)

// Defaults applied to new positions
const (
	DefaultStrategy  = "General"
	DefaultCategory  = "General"
	DefaultRiskLevel = 50
)

// DateLayout is the wire and storage format of calendar dates
const DateLayout = "2006-01-02"

// StockPosition represents a tracked ticker that analysis notes attach to
type StockPosition struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Symbol       string          `json:"symbol"`
	Price        string          `json:"price"`
	Position     string          `json:"position"`
	Strategy     string          `json:"strategy"`
	Category     string          `json:"category"`
	RiskLevel    int             `json:"risk_level"`
	PositionSize decimal.Decimal `json:"position_size"`
	Date         string          `json:"date"`
	Timestamp    time.Time       `json:"timestamp"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewStockPosition is the user-supplied payload for creating a position.
// A zero RiskLevel means "use the default".
type NewStockPosition struct {
	Symbol       string          `json:"symbol"`
	Price        string          `json:"price"`
	Position     string          `json:"position"`
	Strategy     string          `json:"strategy"`
	Category     string          `json:"category"`
	Date         string          `json:"date"`
	RiskLevel    int             `json:"risk_level"`
	PositionSize decimal.Decimal `json:"position_size"`
}

// PositionUpdate is a partial update; nil fields are left untouched
type PositionUpdate struct {
	Symbol       *string          `json:"symbol,omitempty"`
	Price        *string          `json:"price,omitempty"`
	Position     *string          `json:"position,omitempty"`
	Strategy     *string          `json:"strategy,omitempty"`
	Category     *string          `json:"category,omitempty"`
	Date         *string          `json:"date,omitempty"`
	RiskLevel    *int             `json:"risk_level,omitempty"`
	PositionSize *decimal.Decimal `json:"position_size,omitempty"`
}

// IsEmpty reports whether the update carries no fields
func (u PositionUpdate) IsEmpty() bool {
	return u.Symbol == nil && u.Price == nil && u.Position == nil && u.Strategy == nil &&
		u.Category == nil && u.Date == nil && u.RiskLevel == nil && u.PositionSize == nil
}

// IsPositionStatus reports whether s is a known position status
func IsPositionStatus(s string) bool {
	switch s {
	case PositionHolding, PositionSold, PositionWatching:
		return true
	}
	return false
}
