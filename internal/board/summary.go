package board

import (
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/stock-journal/internal/models"
)

var (
	// ErrInvalidSortField is returned for a sort field Sort does not know
	ErrInvalidSortField = errors.New("invalid sort field")
	// ErrInvalidGroupField is returned for a grouping GroupBy does not know
	ErrInvalidGroupField = errors.New("invalid group field")
)

// Sort fields
const (
	SortSymbol = "symbol"
	SortPrice  = "price"
	SortDate   = "date"
	SortRisk   = "risk"
	SortNotes  = "notes"
)

// Group fields
const (
	GroupPosition = "position"
	GroupStrategy = "strategy"
	GroupCategory = "category"
)

// PositionSummary is a position with its note counts
type PositionSummary struct {
	models.StockPosition
	NotesCount     int `json:"notes_count"`
	CatalystsCount int `json:"catalysts_count"`
	BlockersCount  int `json:"blockers_count"`
	ResearchCount  int `json:"research_count"`
}

// SummaryGroup is a set of summary rows sharing a grouping key
type SummaryGroup struct {
	Key  string            `json:"key"`
	Rows []PositionSummary `json:"rows"`
}

// Summarize counts the notes attached to each position, keeping position order
func Summarize(positions []models.StockPosition, notes []models.AnalysisNote) []PositionSummary {
	byStock := make(map[string]*PositionSummary, len(positions))
	rows := make([]PositionSummary, len(positions))
	for i, p := range positions {
		rows[i] = PositionSummary{StockPosition: p}
		byStock[p.ID] = &rows[i]
	}

	for _, n := range notes {
		row, ok := byStock[n.StockID]
		if !ok {
			continue
		}
		row.NotesCount++
		switch n.Category {
		case models.CategoryCatalyst:
			row.CatalystsCount++
		case models.CategoryBlock:
			row.BlockersCount++
		case models.CategoryResearch:
			row.ResearchCount++
		}
	}
	return rows
}

// Filter keeps rows whose symbol or strategy contains term, ignoring case.
// A blank term keeps everything.
func Filter(rows []PositionSummary, term string) []PositionSummary {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return rows
	}

	out := []PositionSummary{}
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Symbol), term) ||
			strings.Contains(strings.ToLower(r.Strategy), term) {
			out = append(out, r)
		}
	}
	return out
}

// Sort orders a copy of rows by field. Ties keep their input order.
func Sort(rows []PositionSummary, field string, desc bool) ([]PositionSummary, error) {
	less, ok := sortFuncs[field]
	if !ok {
		return nil, ErrInvalidSortField
	}

	out := append([]PositionSummary(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out, nil
}

var sortFuncs = map[string]func(a, b PositionSummary) bool{
	SortSymbol: func(a, b PositionSummary) bool { return a.Symbol < b.Symbol },
	SortPrice:  func(a, b PositionSummary) bool { return parsePrice(a.Price).LessThan(parsePrice(b.Price)) },
	SortDate:   func(a, b PositionSummary) bool { return a.Date < b.Date },
	SortRisk:   func(a, b PositionSummary) bool { return a.RiskLevel < b.RiskLevel },
	SortNotes:  func(a, b PositionSummary) bool { return a.NotesCount < b.NotesCount },
}

func parsePrice(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// GroupBy buckets rows by position status, strategy or category. Groups
// appear in order of first occurrence.
func GroupBy(rows []PositionSummary, field string) ([]SummaryGroup, error) {
	var key func(PositionSummary) string
	switch field {
	case GroupPosition:
		key = func(r PositionSummary) string { return r.Position }
	case GroupStrategy:
		key = func(r PositionSummary) string { return r.Strategy }
	case GroupCategory:
		key = func(r PositionSummary) string { return r.Category }
	default:
		return nil, ErrInvalidGroupField
	}

	groups := []SummaryGroup{}
	index := map[string]int{}
	for _, r := range rows {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, SummaryGroup{Key: k})
		}
		groups[i].Rows = append(groups[i].Rows, r)
	}
	return groups, nil
}
