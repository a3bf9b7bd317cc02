package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/trogers1052/stock-journal/internal/models"
)

const noteColumns = `id, user_id, stock_position_id, symbol, sentiment, category, parent_category,
		title, description, "date", "timestamp", tags, updated_at`

// CreateNote inserts an analysis note and returns the stored row
func (db *DB) CreateNote(ctx context.Context, n *models.AnalysisNote) (*models.AnalysisNote, error) {
	query := `
		INSERT INTO analysis_notes (
			user_id, stock_position_id, symbol, sentiment, category, parent_category,
			title, description, "date", "timestamp", tags, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + noteColumns
	now := time.Now().UTC()
	timestamp := n.Timestamp
	if timestamp.IsZero() {
		timestamp = now
	}

	created, err := scanNote(db.conn.QueryRowContext(ctx, query,
		n.UserID, n.StockID, n.Symbol, nullString(n.Sentiment), n.Category, n.ParentCategory,
		n.Title, n.Description, n.Date, timestamp, pq.Array(nonNilTags(n.Tags)), now,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return created, nil
}

// GetAllNotes returns the user's analysis notes, newest first
func (db *DB) GetAllNotes(ctx context.Context, userID string) ([]*models.AnalysisNote, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM analysis_notes
		WHERE user_id = $1
		ORDER BY "timestamp" DESC
	`
	rows, err := db.conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	notes := []*models.AnalysisNote{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}

	return notes, nil
}

// UpdateNote writes only the fields present in u and returns the stored row.
// A sentiment pointing at "" is stored as NULL.
func (db *DB) UpdateNote(ctx context.Context, userID, id string, u models.NoteUpdate) (*models.AnalysisNote, error) {
	var b setBuilder
	if u.Sentiment != nil {
		b.add("sentiment", nullString(*u.Sentiment))
	}
	if u.Category != nil {
		b.add("category", *u.Category)
	}
	if u.ParentCategory != nil {
		b.add("parent_category", *u.ParentCategory)
	}
	if u.Title != nil {
		b.add("title", *u.Title)
	}
	if u.Description != nil {
		b.add("description", *u.Description)
	}
	if u.Date != nil {
		b.add(`"date"`, *u.Date)
	}
	if u.Tags != nil {
		b.add("tags", pq.Array(nonNilTags(*u.Tags)))
	}
	b.add("updated_at", time.Now().UTC())

	query := `UPDATE analysis_notes SET ` + strings.Join(b.sets, ", ") +
		` WHERE id = ` + b.placeholder(id) +
		` AND user_id = ` + b.placeholder(userID) +
		` RETURNING ` + noteColumns

	updated, err := scanNote(db.conn.QueryRowContext(ctx, query, b.args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: note %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return updated, nil
}

// DeleteNote removes a single analysis note
func (db *DB) DeleteNote(ctx context.Context, userID, id string) error {
	query := `DELETE FROM analysis_notes WHERE id = $1 AND user_id = $2`
	result, err := db.conn.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("%w: note %s", ErrNotFound, id)
	}
	return nil
}

// DeleteNotesByPosition removes every note attached to a position and
// returns how many were deleted. Zero is not an error.
func (db *DB) DeleteNotesByPosition(ctx context.Context, userID, stockID string) (int64, error) {
	query := `DELETE FROM analysis_notes WHERE stock_position_id = $1 AND user_id = $2`
	result, err := db.conn.ExecContext(ctx, query, stockID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete notes: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected, nil
}

func scanNote(row rowScanner) (*models.AnalysisNote, error) {
	var n models.AnalysisNote
	var sentiment sql.NullString
	var date time.Time

	err := row.Scan(
		&n.ID, &n.UserID, &n.StockID, &n.Symbol, &sentiment, &n.Category, &n.ParentCategory,
		&n.Title, &n.Description, &date, &n.Timestamp, pq.Array(&n.Tags), &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if sentiment.Valid {
		n.Sentiment = sentiment.String
	}
	n.Date = date.Format(models.DateLayout)
	n.Tags = nonNilTags(n.Tags)
	return &n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
