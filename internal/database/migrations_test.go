package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	t.Run("all tables exist", func(t *testing.T) {
		expectedTables := []string{
			"stock_positions",
			"analysis_notes",
			"daily_notes",
		}

		for _, tableName := range expectedTables {
			var exists bool
			err := testDB.GetRawConn().QueryRow(`
				SELECT EXISTS (
					SELECT FROM information_schema.tables
					WHERE table_schema = 'public'
					AND table_name = $1
				)
			`, tableName).Scan(&exists)

			require.NoError(t, err, "failed to check table existence for %s", tableName)
			assert.True(t, exists, "table %s should exist", tableName)
		}
	})

	t.Run("stock_positions table has correct columns", func(t *testing.T) {
		expectedColumns := map[string]string{
			"id":            "uuid",
			"user_id":       "text",
			"symbol":        "character varying",
			"price":         "numeric",
			"position":      "character varying",
			"strategy":      "character varying",
			"category":      "text",
			"risk_level":    "integer",
			"position_size": "numeric",
			"date":          "date",
			"timestamp":     "timestamp with time zone",
			"updated_at":    "timestamp with time zone",
		}

		for colName, expectedType := range expectedColumns {
			var actualType string
			err := testDB.GetRawConn().QueryRow(`
				SELECT data_type
				FROM information_schema.columns
				WHERE table_name = 'stock_positions' AND column_name = $1
			`, colName).Scan(&actualType)

			require.NoError(t, err, "column %s should exist in stock_positions table", colName)
			assert.Equal(t, expectedType, actualType, "column %s should have type %s", colName, expectedType)
		}
	})

	t.Run("analysis_notes table has correct columns", func(t *testing.T) {
		expectedColumns := []string{
			"id", "user_id", "stock_position_id", "symbol", "sentiment",
			"category", "parent_category", "title", "description",
			"date", "timestamp", "tags", "updated_at",
		}

		for _, colName := range expectedColumns {
			var exists bool
			err := testDB.GetRawConn().QueryRow(`
				SELECT EXISTS (
					SELECT FROM information_schema.columns
					WHERE table_name = 'analysis_notes' AND column_name = $1
				)
			`, colName).Scan(&exists)

			require.NoError(t, err)
			assert.True(t, exists, "column %s should exist in analysis_notes table", colName)
		}
	})

	t.Run("daily_notes table has correct columns", func(t *testing.T) {
		expectedColumns := []string{"id", "user_id", "date", "content", "created_at", "updated_at"}

		for _, colName := range expectedColumns {
			var exists bool
			err := testDB.GetRawConn().QueryRow(`
				SELECT EXISTS (
					SELECT FROM information_schema.columns
					WHERE table_name = 'daily_notes' AND column_name = $1
				)
			`, colName).Scan(&exists)

			require.NoError(t, err)
			assert.True(t, exists, "column %s should exist in daily_notes table", colName)
		}
	})

	t.Run("indexes exist", func(t *testing.T) {
		expectedIndexes := []struct {
			table string
			index string
		}{
			{"stock_positions", "idx_stock_positions_user_timestamp"},
			{"analysis_notes", "idx_analysis_notes_user_timestamp"},
			{"analysis_notes", "idx_analysis_notes_stock_position"},
			{"daily_notes", "idx_daily_notes_user_date"},
		}

		for _, idx := range expectedIndexes {
			var exists bool
			err := testDB.GetRawConn().QueryRow(`
				SELECT EXISTS (
					SELECT FROM pg_indexes
					WHERE tablename = $1 AND indexname = $2
				)
			`, idx.table, idx.index).Scan(&exists)

			require.NoError(t, err)
			assert.True(t, exists, "index %s should exist on table %s", idx.index, idx.table)
		}
	})

	t.Run("symbol is unique per user", func(t *testing.T) {
		var unique bool
		err := testDB.GetRawConn().QueryRow(`
			SELECT EXISTS (
				SELECT FROM pg_constraint c
				JOIN pg_class t ON c.conrelid = t.oid
				WHERE t.relname = 'stock_positions'
				AND c.contype = 'u'
				AND c.conname = 'stock_positions_user_symbol_key'
			)
		`).Scan(&unique)
		require.NoError(t, err)
		assert.True(t, unique, "stock_positions should be unique on (user_id, symbol)")
	})

	t.Run("notes reference positions", func(t *testing.T) {
		var fk bool
		err := testDB.GetRawConn().QueryRow(`
			SELECT EXISTS (
				SELECT FROM pg_constraint c
				JOIN pg_class t ON c.conrelid = t.oid
				WHERE t.relname = 'analysis_notes'
				AND c.contype = 'f'
			)
		`).Scan(&fk)
		require.NoError(t, err)
		assert.True(t, fk, "analysis_notes should have foreign key to stock_positions")
	})

	t.Run("migrate is idempotent", func(t *testing.T) {
		assert.NoError(t, testDB.Migrate())
	})
}
