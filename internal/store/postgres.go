package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresStore is an alternate Tabular backend for deployments that keep
// the monitoring dataset in a database instead of a spreadsheet. Each
// worksheet name maps to one table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects and verifies the database.
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Close releases the connection pool.
func (p *PostgresStore) Close() error {
	return p.db.Close()
}

func tableName(worksheet string) string {
	// Worksheet names come from config, not user input, but quote anyway.
	return fmt.Sprintf("%q", "mediawatch_"+worksheet)
}

// EnsureWorksheet creates the backing table when absent. The position column
// preserves sheet row order.
func (p *PostgresStore) EnsureWorksheet(ctx context.Context, name string) error {
	schema := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		position SERIAL PRIMARY KEY,
		platform TEXT NOT NULL,
		content TEXT NOT NULL,
		link TEXT NOT NULL,
		published TEXT NOT NULL,
		all_themes TEXT NOT NULL,
		sentiment TEXT NOT NULL,
		media_sector_impact TEXT NOT NULL,
		collected_at TEXT NOT NULL
	)`, tableName(name))

	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create table for worksheet %s: %w", name, err)
	}
	return nil
}

// ReadRows returns every persisted row in insertion order.
func (p *PostgresStore) ReadRows(ctx context.Context, name string) ([][]string, error) {
	query := fmt.Sprintf(`
		SELECT platform, content, link, published, all_themes, sentiment, media_sector_impact, collected_at
		FROM %s ORDER BY position`, tableName(name))

	result, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read worksheet %s: %w", name, err)
	}
	defer result.Close()

	var rows [][]string
	for result.Next() {
		row := make([]string, len(Header))
		dest := make([]interface{}, len(row))
		for i := range row {
			dest[i] = &row[i]
		}
		if err := result.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan worksheet %s row: %w", name, err)
		}
		rows = append(rows, row)
	}
	return rows, result.Err()
}

// Replace rewrites the table inside one transaction, so a partial failure
// rolls back instead of leaving the dataset inconsistent.
func (p *PostgresStore) Replace(ctx context.Context, name string, rows [][]string) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace of worksheet %s: %w", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", tableName(name))); err != nil {
		return fmt.Errorf("clear worksheet %s: %w", name, err)
	}

	insert := fmt.Sprintf(`
		INSERT INTO %s (platform, content, link, published, all_themes, sentiment, media_sector_impact, collected_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, tableName(name))

	for _, row := range rows {
		if len(row) != len(Header) {
			return fmt.Errorf("worksheet %s row has %d cells, want %d", name, len(row), len(Header))
		}
		args := make([]interface{}, len(row))
		for i, cell := range row {
			args[i] = cell
		}
		if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
			return fmt.Errorf("insert into worksheet %s: %w", name, err)
		}
	}

	return tx.Commit()
}
