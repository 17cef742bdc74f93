package catalog

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Repository handles symbol directory database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new catalog repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "catalog").Logger(),
	}
}

// Seed loads the built-in directory. Existing rows are refreshed so name
// and theme fixes in the seed reach old databases.
func (r *Repository) Seed() error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	stmt := `INSERT INTO catalog_symbols (symbol, name, theme) VALUES (?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET name = excluded.name, theme = excluded.theme`

	for _, entry := range seedEntries {
		if _, err := tx.Exec(stmt, entry.Symbol, entry.Name, entry.Theme); err != nil {
			return fmt.Errorf("failed to seed symbol %s: %w", entry.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}

	r.log.Info().Int("count", len(seedEntries)).Msg("Catalog seeded")
	return nil
}

// Get returns a directory entry by symbol, nil when absent
func (r *Repository) Get(symbol string) (*Entry, error) {
	query := "SELECT symbol, name, theme FROM catalog_symbols WHERE symbol = ?"

	var entry Entry
	err := r.db.QueryRow(query, strings.ToUpper(strings.TrimSpace(symbol))).
		Scan(&entry.Symbol, &entry.Name, &entry.Theme)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog symbol: %w", err)
	}

	return &entry, nil
}

// Search returns entries whose symbol or name contains the query,
// case-insensitive, ordered by symbol
func (r *Repository) Search(q string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 25
	}

	pattern := "%" + strings.ToUpper(strings.TrimSpace(q)) + "%"
	query := `SELECT symbol, name, theme FROM catalog_symbols
		WHERE symbol LIKE ? OR UPPER(name) LIKE ?
		ORDER BY symbol LIMIT ?`

	rows, err := r.db.Query(query, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search catalog: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// List returns the whole directory ordered by symbol
func (r *Repository) List() ([]Entry, error) {
	query := "SELECT symbol, name, theme FROM catalog_symbols ORDER BY symbol"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.Symbol, &entry.Name, &entry.Theme); err != nil {
			return nil, fmt.Errorf("failed to scan catalog entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating catalog entries: %w", err)
	}

	return entries, nil
}
