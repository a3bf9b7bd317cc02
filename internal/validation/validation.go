// Package validation holds the pure field rules and normalizers for positions
// and analysis notes. Nothing here touches the database.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/stock-journal/internal/models"
)

// Position limits
const (
	MaxStrategyLength = 50
	MinRiskLevel      = 1
	MaxRiskLevel      = 100
)

var (
	symbolPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)
	maxPrice      = decimal.NewFromInt(999999)
)

// Error is a client-side rule failure. Message is meant for the end user.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &Error{Field: field, Message: message}
}

// ValidatePosition checks a new position before it is persisted
func ValidatePosition(p models.NewStockPosition) error {
	if err := validateSymbol(p.Symbol); err != nil {
		return err
	}
	if err := validatePrice(p.Price); err != nil {
		return err
	}
	if err := validateStrategy(p.Strategy); err != nil {
		return err
	}
	if err := validateDate(p.Date); err != nil {
		return err
	}
	if p.Position != "" && !models.IsPositionStatus(p.Position) {
		return invalid("position", "Position must be holding, sold, or watching")
	}
	if p.RiskLevel != 0 {
		if err := validateRiskLevel(p.RiskLevel); err != nil {
			return err
		}
	}
	if p.PositionSize.IsNegative() {
		return invalid("position_size", "Position size cannot be negative")
	}
	return nil
}

// ValidatePositionUpdate applies the position rules to the fields present in u
func ValidatePositionUpdate(u models.PositionUpdate) error {
	if u.Symbol != nil {
		if err := validateSymbol(*u.Symbol); err != nil {
			return err
		}
	}
	if u.Price != nil {
		if err := validatePrice(*u.Price); err != nil {
			return err
		}
	}
	if u.Strategy != nil {
		if err := validateStrategy(*u.Strategy); err != nil {
			return err
		}
	}
	if u.Date != nil {
		if err := validateDate(*u.Date); err != nil {
			return err
		}
	}
	if u.Position != nil && !models.IsPositionStatus(*u.Position) {
		return invalid("position", "Position must be holding, sold, or watching")
	}
	if u.RiskLevel != nil {
		if err := validateRiskLevel(*u.RiskLevel); err != nil {
			return err
		}
	}
	if u.PositionSize != nil && u.PositionSize.IsNegative() {
		return invalid("position_size", "Position size cannot be negative")
	}
	return nil
}

func validateSymbol(symbol string) error {
	if strings.TrimSpace(symbol) == "" {
		return invalid("symbol", "Stock symbol is required")
	}
	if !symbolPattern.MatchString(NormalizeSymbol(symbol)) {
		return invalid("symbol", "Stock symbol must be 1-5 uppercase letters")
	}
	return nil
}

func validatePrice(price string) error {
	price = strings.TrimSpace(price)
	if price == "" {
		return invalid("price", "Price is required")
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return invalid("price", "Price must be a positive number")
	}
	// checked as stored, after rounding to cents
	d = d.Round(2)
	if !d.IsPositive() {
		return invalid("price", "Price must be a positive number")
	}
	if d.GreaterThan(maxPrice) {
		return invalid("price", "Price cannot exceed $999,999")
	}
	return nil
}

func validateStrategy(strategy string) error {
	strategy = strings.TrimSpace(strategy)
	if strategy == "" {
		return invalid("strategy", "Strategy is required")
	}
	if utf8.RuneCountInString(strategy) > MaxStrategyLength {
		return invalid("strategy", fmt.Sprintf("Strategy cannot exceed %d characters", MaxStrategyLength))
	}
	return nil
}

func validateRiskLevel(level int) error {
	if level < MinRiskLevel || level > MaxRiskLevel {
		return invalid("risk_level", fmt.Sprintf("Risk level must be between %d and %d", MinRiskLevel, MaxRiskLevel))
	}
	return nil
}

func validateDate(date string) error {
	if strings.TrimSpace(date) == "" {
		return invalid("date", "Date is required")
	}
	if _, err := time.Parse(models.DateLayout, strings.TrimSpace(date)); err != nil {
		return invalid("date", "Date must be in YYYY-MM-DD format")
	}
	return nil
}

// NormalizeSymbol trims and upper-cases a ticker symbol
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// NormalizePrice renders a price with exactly two decimal places
func NormalizePrice(price string) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return "", fmt.Errorf("invalid price %q: %w", price, err)
	}
	return d.StringFixed(2), nil
}

// NormalizePosition trims text fields and fills defaults. It expects a payload
// that already passed ValidatePosition.
func NormalizePosition(p models.NewStockPosition) models.NewStockPosition {
	p.Symbol = NormalizeSymbol(p.Symbol)
	if price, err := NormalizePrice(p.Price); err == nil {
		p.Price = price
	}
	p.Strategy = strings.TrimSpace(p.Strategy)
	if p.Strategy == "" {
		p.Strategy = models.DefaultStrategy
	}
	p.Category = strings.TrimSpace(p.Category)
	if p.Category == "" {
		p.Category = models.DefaultCategory
	}
	if p.Position == "" {
		p.Position = models.PositionHolding
	}
	if p.RiskLevel == 0 {
		p.RiskLevel = models.DefaultRiskLevel
	}
	p.Date = strings.TrimSpace(p.Date)
	return p
}

// NormalizePositionUpdate trims and formats the fields present in u
func NormalizePositionUpdate(u models.PositionUpdate) models.PositionUpdate {
	if u.Symbol != nil {
		s := NormalizeSymbol(*u.Symbol)
		u.Symbol = &s
	}
	if u.Price != nil {
		if price, err := NormalizePrice(*u.Price); err == nil {
			u.Price = &price
		}
	}
	if u.Strategy != nil {
		s := strings.TrimSpace(*u.Strategy)
		u.Strategy = &s
	}
	if u.Category != nil {
		c := strings.TrimSpace(*u.Category)
		if c == "" {
			c = models.DefaultCategory
		}
		u.Category = &c
	}
	if u.Date != nil {
		d := strings.TrimSpace(*u.Date)
		u.Date = &d
	}
	return u
}
