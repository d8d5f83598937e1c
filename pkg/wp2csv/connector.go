package wp2csv

import (
	"context"
	"database/sql"
)

// Connector establishes the database handle for one export run.
// Implementations holding extra resources (cloud dialers) also implement
// io.Closer; callers close the connector after closing the *sql.DB.
type Connector interface {
	Connect(ctx context.Context) (*sql.DB, error)
}
