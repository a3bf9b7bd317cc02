package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/trogers1052/stock-journal/internal/models"
)

const dailyNoteColumns = `id, user_id, "date", content, created_at, updated_at`

// CreateDailyNote inserts a daily journal entry and returns the stored row
func (db *DB) CreateDailyNote(ctx context.Context, n *models.DailyNote) (*models.DailyNote, error) {
	query := `
		INSERT INTO daily_notes (user_id, "date", content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + dailyNoteColumns
	now := time.Now().UTC()

	created, err := scanDailyNote(db.conn.QueryRowContext(ctx, query, n.UserID, n.Date, n.Content, now, now))
	if err != nil {
		return nil, fmt.Errorf("failed to create daily note: %w", err)
	}
	return created, nil
}

// GetAllDailyNotes returns the user's daily notes, latest date first
func (db *DB) GetAllDailyNotes(ctx context.Context, userID string) ([]*models.DailyNote, error) {
	query := `
		SELECT ` + dailyNoteColumns + `
		FROM daily_notes
		WHERE user_id = $1
		ORDER BY "date" DESC, created_at DESC
	`
	rows, err := db.conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily notes: %w", err)
	}
	defer rows.Close()

	notes := []*models.DailyNote{}
	for rows.Next() {
		n, err := scanDailyNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily notes: %w", err)
	}

	return notes, nil
}

// UpdateDailyNote writes only the fields present in u and returns the stored row
func (db *DB) UpdateDailyNote(ctx context.Context, userID, id string, u models.DailyNoteUpdate) (*models.DailyNote, error) {
	var b setBuilder
	if u.Date != nil {
		b.add(`"date"`, *u.Date)
	}
	if u.Content != nil {
		b.add("content", *u.Content)
	}
	b.add("updated_at", time.Now().UTC())

	query := `UPDATE daily_notes SET ` + strings.Join(b.sets, ", ") +
		` WHERE id = ` + b.placeholder(id) +
		` AND user_id = ` + b.placeholder(userID) +
		` RETURNING ` + dailyNoteColumns

	updated, err := scanDailyNote(db.conn.QueryRowContext(ctx, query, b.args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: daily note %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update daily note: %w", err)
	}
	return updated, nil
}

// DeleteDailyNote removes a daily note
func (db *DB) DeleteDailyNote(ctx context.Context, userID, id string) error {
	query := `DELETE FROM daily_notes WHERE id = $1 AND user_id = $2`
	result, err := db.conn.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete daily note: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("%w: daily note %s", ErrNotFound, id)
	}
	return nil
}

func scanDailyNote(row rowScanner) (*models.DailyNote, error) {
	var n models.DailyNote
	var date time.Time

	if err := row.Scan(&n.ID, &n.UserID, &date, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}

	n.Date = date.Format(models.DateLayout)
	return &n, nil
}
