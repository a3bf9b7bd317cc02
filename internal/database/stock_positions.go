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

const positionColumns = `id, user_id, symbol, price, "position", strategy, category,
		risk_level, position_size, "date", "timestamp", updated_at`

// CreatePosition inserts a position and returns the stored row
func (db *DB) CreatePosition(ctx context.Context, p *models.StockPosition) (*models.StockPosition, error) {
	query := `
		INSERT INTO stock_positions (
			user_id, symbol, price, "position", strategy, category,
			risk_level, position_size, "date", "timestamp", updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + positionColumns
	now := time.Now().UTC()
	timestamp := p.Timestamp
	if timestamp.IsZero() {
		timestamp = now
	}

	created, err := scanPosition(db.conn.QueryRowContext(ctx, query,
		p.UserID, p.Symbol, p.Price, p.Position, p.Strategy, p.Category,
		p.RiskLevel, p.PositionSize, p.Date, timestamp, now,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create position: %w", err)
	}
	return created, nil
}

// GetAllPositions returns the user's positions, newest first
func (db *DB) GetAllPositions(ctx context.Context, userID string) ([]*models.StockPosition, error) {
	query := `
		SELECT ` + positionColumns + `
		FROM stock_positions
		WHERE user_id = $1
		ORDER BY "timestamp" DESC
	`
	rows, err := db.conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	positions := []*models.StockPosition{}
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate positions: %w", err)
	}

	return positions, nil
}

// UpdatePosition writes only the fields present in u and returns the stored row
func (db *DB) UpdatePosition(ctx context.Context, userID, id string, u models.PositionUpdate) (*models.StockPosition, error) {
	var b setBuilder
	if u.Symbol != nil {
		b.add("symbol", *u.Symbol)
	}
	if u.Price != nil {
		b.add("price", *u.Price)
	}
	if u.Position != nil {
		b.add(`"position"`, *u.Position)
	}
	if u.Strategy != nil {
		b.add("strategy", *u.Strategy)
	}
	if u.Category != nil {
		b.add("category", *u.Category)
	}
	if u.RiskLevel != nil {
		b.add("risk_level", *u.RiskLevel)
	}
	if u.PositionSize != nil {
		b.add("position_size", *u.PositionSize)
	}
	if u.Date != nil {
		b.add(`"date"`, *u.Date)
	}
	b.add("updated_at", time.Now().UTC())

	query := `UPDATE stock_positions SET ` + strings.Join(b.sets, ", ") +
		` WHERE id = ` + b.placeholder(id) +
		` AND user_id = ` + b.placeholder(userID) +
		` RETURNING ` + positionColumns

	updated, err := scanPosition(db.conn.QueryRowContext(ctx, query, b.args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: position %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update position: %w", err)
	}
	return updated, nil
}

// DeletePosition removes a position. Notes must be removed first.
func (db *DB) DeletePosition(ctx context.Context, userID, id string) error {
	query := `DELETE FROM stock_positions WHERE id = $1 AND user_id = $2`
	result, err := db.conn.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("%w: position %s", ErrNotFound, id)
	}
	return nil
}

func scanPosition(row rowScanner) (*models.StockPosition, error) {
	var p models.StockPosition
	var date time.Time

	err := row.Scan(
		&p.ID, &p.UserID, &p.Symbol, &p.Price, &p.Position, &p.Strategy, &p.Category,
		&p.RiskLevel, &p.PositionSize, &date, &p.Timestamp, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Date = date.Format(models.DateLayout)
	return &p, nil
}
