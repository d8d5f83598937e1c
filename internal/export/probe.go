package export

import (
	"context"
	"time"

	"github.com/wp2csv/wp2csv/internal/catalog"
	"github.com/wp2csv/wp2csv/internal/db"
	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

// Probe connects and reports which datasets of cat could be exported,
// without running any dataset query.
// Close failures are reported to logger.
func Probe(ctx context.Context, connector wp2csv.Connector, cat *catalog.Catalog, logger wp2csv.Logger) ([]DatasetResult, error) {
	e := &Exporter{connector: connector, logger: logger}
	conn, err := connector.Connect(ctx)
	if err != nil {
		e.closeConnector()
		return nil, err
	}
	defer e.release(conn)

	prober := db.NewProber(conn)
	var results []DatasetResult
	for _, d := range cat.Datasets() {
		started := time.Now()
		dr := DatasetResult{Name: d.Name, Status: StatusAvailable}

		missing, err := prober.Missing(ctx, d.Required()...)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			dr.Status = StatusSkipped
			dr.MissingTables = missing
		} else {
			if _, err := prober.Missing(ctx, d.Optional()...); err != nil {
				return nil, err
			}
			dr.DegradedJoins = d.InactiveJoins(prober.Exists)
		}
		dr.Duration = time.Since(started)
		results = append(results, dr)
	}
	return results, nil
}
