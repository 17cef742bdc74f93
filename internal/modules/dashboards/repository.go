package dashboards

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Repository persists the dashboard registry. Registration survives
// restarts even though the trading session itself does not; a returning
// user keeps the dashboards their past trades created.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new dashboard registry repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "dashboards").Logger(),
	}
}

// Register adds a symbol to the registry. Registering an already present
// symbol is a no-op.
func (r *Repository) Register(symbol string, at time.Time) error {
	query := "INSERT OR IGNORE INTO dashboard_assets (symbol, registered_at) VALUES (?, ?)"

	if _, err := r.db.Exec(query, symbol, at.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to register dashboard asset: %w", err)
	}

	return nil
}

// IsRegistered reports whether a symbol has a dashboard
func (r *Repository) IsRegistered(symbol string) (bool, error) {
	query := "SELECT 1 FROM dashboard_assets WHERE symbol = ?"

	var one int
	err := r.db.QueryRow(query, symbol).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query dashboard asset: %w", err)
	}

	return true, nil
}

// List returns all registered assets, oldest first
func (r *Repository) List() ([]RegisteredAsset, error) {
	query := "SELECT symbol, registered_at FROM dashboard_assets ORDER BY registered_at, symbol"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query dashboard assets: %w", err)
	}
	defer rows.Close()

	var assets []RegisteredAsset
	for rows.Next() {
		var symbol, registeredAt string
		if err := rows.Scan(&symbol, &registeredAt); err != nil {
			return nil, fmt.Errorf("failed to scan dashboard asset: %w", err)
		}

		at, err := time.Parse(time.RFC3339, registeredAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse registration time: %w", err)
		}

		assets = append(assets, RegisteredAsset{Symbol: symbol, RegisteredAt: at})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dashboard assets: %w", err)
	}

	return assets, nil
}
