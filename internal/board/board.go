package board

import (
	"sort"

	"github.com/trogers1052/stock-journal/internal/models"
)

// Group is one drop zone of the board
type Group struct {
	ID             string                `json:"id"`
	ParentCategory string                `json:"parent_category"`
	Count          int                   `json:"count"`
	Notes          []models.AnalysisNote `json:"notes"`
}

// Column is one category of the board
type Column struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Groups   []Group `json:"groups"`
}

// Board is the analysis board of a single symbol
type Board struct {
	Symbol  string   `json:"symbol"`
	Total   int      `json:"total"`
	Columns []Column `json:"columns"`
}

// BuildBoard lays out the notes of symbol in catalyst, block and research
// columns. Catalyst and block columns have one group per parent category;
// research has a single general group. Notes within a group are newest date first.
func BuildBoard(symbol string, notes []models.AnalysisNote) Board {
	b := Board{
		Symbol: symbol,
		Columns: []Column{
			newColumn(models.CategoryCatalyst, models.ParentCategories),
			newColumn(models.CategoryBlock, models.ParentCategories),
			newColumn(models.CategoryResearch, []string{models.ParentGeneral}),
		},
	}

	for _, n := range notes {
		if n.Symbol != symbol {
			continue
		}
		for ci := range b.Columns {
			col := &b.Columns[ci]
			if col.Category != n.Category {
				continue
			}
			for gi := range col.Groups {
				g := &col.Groups[gi]
				if g.ParentCategory == n.ParentCategory {
					g.Notes = append(g.Notes, n)
					g.Count++
					col.Count++
					b.Total++
				}
			}
		}
	}

	for ci := range b.Columns {
		for gi := range b.Columns[ci].Groups {
			sortByDateDesc(b.Columns[ci].Groups[gi].Notes)
		}
	}
	return b
}

func newColumn(category string, parents []string) Column {
	col := Column{Category: category, Groups: make([]Group, 0, len(parents))}
	for _, p := range parents {
		col.Groups = append(col.Groups, Group{
			ID:             TargetID(category, p),
			ParentCategory: p,
			Notes:          []models.AnalysisNote{},
		})
	}
	return col
}

// Dates are YYYY-MM-DD so string order is date order
func sortByDateDesc(notes []models.AnalysisNote) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Date > notes[j].Date
	})
}
