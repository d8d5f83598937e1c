package export

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/wp2csv/wp2csv/internal/catalog"
	"github.com/wp2csv/wp2csv/internal/db"
	"github.com/wp2csv/wp2csv/internal/sanitize"
	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

// DatasetStatus is the outcome of one dataset within a run.
type DatasetStatus int

const (
	// StatusExported means the dataset's rows are in the output.
	StatusExported DatasetStatus = iota
	// StatusSkipped means a required table is missing.
	StatusSkipped
	// StatusAvailable means all required tables exist (probe only).
	StatusAvailable
)

func (s DatasetStatus) String() string {
	switch s {
	case StatusExported:
		return "exported"
	case StatusSkipped:
		return "skipped"
	case StatusAvailable:
		return "available"
	default:
		return fmt.Sprintf("DatasetStatus(%d)", int(s))
	}
}

// DatasetResult describes what happened to one dataset.
type DatasetResult struct {
	Name          string
	Status        DatasetStatus
	Rows          int
	MissingTables []string
	// DegradedJoins are optional joins whose columns were exported empty.
	DegradedJoins []string
	Duration      time.Duration
}

// Result summarizes an export run.
type Result struct {
	RunID   string
	Output  string
	Written bool
	// SHA256 is the hex digest of the written file.
	SHA256   string
	Rows     int
	Columns  []string
	Datasets []DatasetResult
	State    State
	Duration time.Duration
}

// Config holds the non-connection inputs of an Exporter.
type Config struct {
	// Output is the CSV path. Defaults to wordpress_data.csv.
	Output string
	// Catalog lists the datasets to export. Defaults to catalog.Default().
	Catalog *catalog.Catalog
	// Cleaner sanitizes content columns. Defaults to text cleaning.
	Cleaner *sanitize.Cleaner
}

// Exporter performs a single export run.
// Thread-Safety: NOT safe for concurrent use. An Exporter runs once.
type Exporter struct {
	connector wp2csv.Connector
	logger    wp2csv.Logger
	catalog   *catalog.Catalog
	cleaner   *sanitize.Cleaner
	output    string
	state     State
	newRunID  func() string
}

// NewExporter creates an Exporter. It panics on a nil connector or logger.
func NewExporter(connector wp2csv.Connector, logger wp2csv.Logger, cfg Config) *Exporter {
	if connector == nil {
		panic("connector cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	e := &Exporter{
		connector: connector,
		logger:    logger,
		catalog:   cfg.Catalog,
		cleaner:   cfg.Cleaner,
		output:    cfg.Output,
		state:     StateDisconnected,
		newRunID:  uuid.NewString,
	}
	if e.catalog == nil {
		e.catalog = catalog.Default()
	}
	if e.cleaner == nil {
		e.cleaner = sanitize.New(sanitize.FormatText)
	}
	if e.output == "" {
		e.output = wp2csv.DefaultOutputFile
	}
	return e
}

// State returns the current state.
func (e *Exporter) State() State {
	return e.state
}

func (e *Exporter) transition(to State) {
	if !canTransition(e.state, to) {
		panic(fmt.Sprintf("invalid export state transition %s -> %s", e.state, to))
	}
	if e.state != to {
		e.logger.Verbose("State: %s -> %s", e.state, to)
	}
	e.state = to
}

type fetched struct {
	dataset *catalog.Dataset
	rows    []catalog.Row
}

// Run connects, exports every applicable dataset and writes the CSV.
// The database handle is closed before Run returns, whatever the outcome.
// When no selected dataset has its required tables, nothing is written and
// Result.Written is false.
func (e *Exporter) Run(ctx context.Context) (result *Result, err error) {
	if e.state != StateDisconnected {
		return nil, fmt.Errorf("exporter already used (state %s)", e.state)
	}

	started := time.Now()
	result = &Result{RunID: e.newRunID(), Output: e.output}
	e.logger.Verbose("Export run %s started", result.RunID)

	defer func() {
		if err != nil {
			e.logger.Verbose("Export failed in state %s: %v", e.state, err)
			e.transition(StateFailed)
		} else {
			e.transition(StateClosed)
		}
		result.State = e.state
		result.Duration = time.Since(started)
	}()

	conn, err := e.connector.Connect(ctx)
	if err != nil {
		e.closeConnector()
		return result, err
	}
	defer e.release(conn)
	e.transition(StateConnected)

	prober := db.NewProber(conn)
	var batches []fetched
	for _, d := range e.catalog.Datasets() {
		dr, rows, err := e.exportDataset(ctx, conn, prober, d)
		if err != nil {
			return result, err
		}
		result.Datasets = append(result.Datasets, dr)
		if dr.Status == StatusExported {
			batches = append(batches, fetched{dataset: d, rows: rows})
		}
	}

	if len(batches) == 0 {
		e.logger.Info("No data: none of the selected datasets have their required tables; %s not written", e.output)
		return result, nil
	}

	e.transition(StateMerging)
	table := NewTable()
	for _, b := range batches {
		table.AddColumns(b.dataset.Columns()...)
		table.Append(b.rows...)
	}
	result.Rows = table.Len()
	result.Columns = table.Columns()
	e.logger.Verbose("Merged %d row(s) into %d column(s)", result.Rows, len(result.Columns))

	e.transition(StateWriting)
	digest, err := WriteCSV(e.output, table)
	if err != nil {
		return result, err
	}
	result.Written = true
	result.SHA256 = digest
	e.logger.Verbose("Wrote %s (sha256 %s)", e.output, digest)
	return result, nil
}

func (e *Exporter) exportDataset(ctx context.Context, conn *sql.DB, prober *db.Prober, d *catalog.Dataset) (DatasetResult, []catalog.Row, error) {
	started := time.Now()
	dr := DatasetResult{Name: d.Name}

	e.transition(StateProbing)
	missing, err := prober.Missing(ctx, d.Required()...)
	if err != nil {
		return dr, nil, err
	}
	if len(missing) > 0 {
		e.logger.Verbose("Skipping %s: missing table(s) %v", d.Name, missing)
		dr.Status = StatusSkipped
		dr.MissingTables = missing
		dr.Duration = time.Since(started)
		return dr, nil, nil
	}
	if _, err := prober.Missing(ctx, d.Optional()...); err != nil {
		return dr, nil, err
	}
	dr.DegradedJoins = d.InactiveJoins(prober.Exists)
	if len(dr.DegradedJoins) > 0 {
		e.logger.Verbose("%s: optional join(s) %v unavailable, exporting those columns empty", d.Name, dr.DegradedJoins)
	}

	e.transition(StateFetching)
	rows, err := d.Fetch(ctx, conn, prober.Exists)
	if err != nil {
		return dr, nil, err
	}
	for i := range rows {
		rows[i] = catalog.Sanitize(rows[i], e.cleaner.Clean)
	}

	dr.Status = StatusExported
	dr.Rows = len(rows)
	dr.Duration = time.Since(started)
	e.logger.Verbose("Fetched %d %s row(s) in %s", dr.Rows, d.Name, dr.Duration.Round(time.Millisecond))
	return dr, rows, nil
}

func (e *Exporter) release(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		e.logger.Error("Failed to close database connection: %v", err)
	}
	e.closeConnector()
}

func (e *Exporter) closeConnector() {
	if closer, ok := e.connector.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			e.logger.Error("Failed to release connector: %v", err)
		}
	}
}
