package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

// queryTableExists is an exact-name lookup; SHOW TABLES LIKE would treat the
// underscore in wp_ prefixes as a wildcard.
const queryTableExists = `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?`

// RowQuerier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type RowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Prober checks table existence in the connected database.
// Results are cached, so each table is looked up at most once per Prober.
// Not safe for concurrent use.
type Prober struct {
	db    RowQuerier
	known map[string]bool
}

// NewProber creates a Prober over db.
func NewProber(db RowQuerier) *Prober {
	return &Prober{db: db, known: make(map[string]bool)}
}

// TableExists reports whether a table named name exists in the current database.
func (p *Prober) TableExists(ctx context.Context, name string) (bool, error) {
	if exists, ok := p.known[name]; ok {
		return exists, nil
	}

	var count int
	if err := p.db.QueryRowContext(ctx, queryTableExists, name).Scan(&count); err != nil {
		return false, fmt.Errorf("probe table %s: %w: %w", name, wp2csv.ErrQueryFailed, err)
	}

	exists := count > 0
	p.known[name] = exists
	return exists, nil
}

// Missing returns the subset of names that do not exist, in input order.
func (p *Prober) Missing(ctx context.Context, names ...string) ([]string, error) {
	var missing []string
	for _, name := range names {
		exists, err := p.TableExists(ctx, name)
		if err != nil {
			return nil, err
		}
		if !exists {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

// Exists is a snapshot lookup of already-probed tables; unprobed tables report false.
func (p *Prober) Exists(name string) bool {
	return p.known[name]
}
