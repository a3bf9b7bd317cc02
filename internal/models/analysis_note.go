package models

import "time"

// Note category constants
const (
	CategoryCatalyst = "catalyst"
	CategoryBlock    = "block"
	CategoryResearch = "research"
)

// Sentiment constants
const (
	SentimentBullish = "bullish"
	SentimentBearish = "bearish"
)

// Parent category constants. ParentGeneral is reserved for research notes.
const (
	ParentFinancial   = "financial"
	ParentManagement  = "management"
	ParentMarket      = "market"
	ParentRegulatory  = "regulatory"
	ParentOperational = "operational"
	ParentCompetitive = "competitive"
	ParentGeneral     = "general"
)

// Note limits
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 2000
	MaxTags              = 10
	MaxTagLength         = 20
)

// ParentCategories lists the taxonomy used by catalyst and block notes, in board order
var ParentCategories = []string{
	ParentFinancial,
	ParentManagement,
	ParentMarket,
	ParentRegulatory,
	ParentOperational,
	ParentCompetitive,
}

// AnalysisNote is a categorized analysis entry attached to a stock position.
// Sentiment is empty exactly when Category is research.
type AnalysisNote struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	StockID        string    `json:"stock_id"`
	Symbol         string    `json:"symbol"`
	Sentiment      string    `json:"sentiment,omitempty"`
	Category       string    `json:"category"`
	ParentCategory string    `json:"parent_category"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Date           string    `json:"date"`
	Timestamp      time.Time `json:"timestamp"`
	Tags           []string  `json:"tags"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Clone returns a copy that shares no slices with n
func (n AnalysisNote) Clone() AnalysisNote {
	if n.Tags != nil {
		n.Tags = append([]string(nil), n.Tags...)
	}
	return n
}

// NewAnalysisNote is the form payload for creating a note; Tags is comma separated
type NewAnalysisNote struct {
	Sentiment      string `json:"sentiment,omitempty"`
	Category       string `json:"category"`
	ParentCategory string `json:"parent_category"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Date           string `json:"date"`
	Tags           string `json:"tags"`
}

// NoteUpdate is a partial update. A non-nil Sentiment pointing at "" clears the sentiment.
type NoteUpdate struct {
	Sentiment      *string   `json:"sentiment,omitempty"`
	Category       *string   `json:"category,omitempty"`
	ParentCategory *string   `json:"parent_category,omitempty"`
	Title          *string   `json:"title,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Date           *string   `json:"date,omitempty"`
	Tags           *[]string `json:"tags,omitempty"`
}

// IsEmpty reports whether the update carries no fields
func (u NoteUpdate) IsEmpty() bool {
	return u.Sentiment == nil && u.Category == nil && u.ParentCategory == nil && u.Title == nil &&
		u.Description == nil && u.Date == nil && u.Tags == nil
}

// IsNoteCategory reports whether c is a known note category
func IsNoteCategory(c string) bool {
	switch c {
	case CategoryCatalyst, CategoryBlock, CategoryResearch:
		return true
	}
	return false
}

// IsSentiment reports whether s is a known sentiment
func IsSentiment(s string) bool {
	return s == SentimentBullish || s == SentimentBearish
}

// IsParentCategory reports whether p belongs to the catalyst/block taxonomy
func IsParentCategory(p string) bool {
	for _, c := range ParentCategories {
		if c == p {
			return true
		}
	}
	return false
}

// DefaultSentiment returns the sentiment a note takes when moved into category
func DefaultSentiment(category string) string {
	switch category {
	case CategoryCatalyst:
		return SentimentBullish
	case CategoryBlock:
		return SentimentBearish
	}
	return ""
}

// Classification is the category triple that drives a note's board placement
type Classification struct {
	Category       string `json:"category"`
	ParentCategory string `json:"parent_category"`
	Sentiment      string `json:"sentiment,omitempty"`
}

// Classification returns the note's current classification
func (n AnalysisNote) Classification() Classification {
	return Classification{Category: n.Category, ParentCategory: n.ParentCategory, Sentiment: n.Sentiment}
}

// Normalized enforces the research invariant: no sentiment, parent "general"
func (c Classification) Normalized() Classification {
	if c.Category == CategoryResearch {
		c.ParentCategory = ParentGeneral
		c.Sentiment = ""
	}
	return c
}

// Update converts the classification into a patch that writes all three fields
func (c Classification) Update() NoteUpdate {
	category, parent, sentiment := c.Category, c.ParentCategory, c.Sentiment
	return NoteUpdate{
		Category:       &category,
		ParentCategory: &parent,
		Sentiment:      &sentiment,
	}
}
