package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// TableSet reports whether a table exists. Prober.Exists satisfies it after probing.
type TableSet func(table string) bool

// column is one output column. A column gated on a join is selected as NULL
// when that join is inactive.
type column struct {
	name string
	expr string
	join string
}

// join is an optional LEFT JOIN chain, active only when all its tables exist.
type join struct {
	tables  []string
	clauses []string
}

// Dataset is one logical category of exported content.
type Dataset struct {
	Name        string
	Description string

	required []string
	from     string
	clauses  []string
	joins    map[string]join
	joinSeq  []string
	columns  []column
	where    string
	groupBy  string
	orderBy  string
	scan     func(*sql.Rows) (Row, error)
}

// Required returns the tables that must exist for the dataset to be exported.
func (d *Dataset) Required() []string {
	return append([]string(nil), d.required...)
}

// Optional returns the tables used by optional joins, in declaration order.
func (d *Dataset) Optional() []string {
	var tables []string
	for _, name := range d.joinSeq {
		tables = append(tables, d.joins[name].tables...)
	}
	return tables
}

// Columns returns the output column names. They do not depend on which optional joins are active.
func (d *Dataset) Columns() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.name
	}
	return names
}

// Joins returns the names of the optional joins in declaration order.
func (d *Dataset) Joins() []string {
	return append([]string(nil), d.joinSeq...)
}

// InactiveJoins returns the names of the optional joins missing at least one table.
func (d *Dataset) InactiveJoins(has TableSet) []string {
	var inactive []string
	for _, name := range d.joinSeq {
		if !allExist(has, d.joins[name].tables) {
			inactive = append(inactive, name)
		}
	}
	return inactive
}

// ActiveJoins returns the names of the optional joins whose tables all exist.
func (d *Dataset) ActiveJoins(has TableSet) []string {
	var active []string
	for _, name := range d.joinSeq {
		if allExist(has, d.joins[name].tables) {
			active = append(active, name)
		}
	}
	return active
}

// SQL resolves the dataset query against the tables present in has.
func (d *Dataset) SQL(has TableSet) string {
	active := make(map[string]bool)
	for _, name := range d.ActiveJoins(has) {
		active[name] = true
	}

	selects := make([]string, len(d.columns))
	for i, c := range d.columns {
		if c.join == "" || active[c.join] {
			selects[i] = c.expr + " AS " + c.name
		} else {
			selects[i] = "NULL AS " + c.name
		}
	}

	var b strings.Builder
	b.WriteString("SELECT\n    ")
	b.WriteString(strings.Join(selects, ",\n    "))
	b.WriteString("\nFROM\n    ")
	b.WriteString(d.from)
	for _, clause := range d.clauses {
		b.WriteString("\n" + clause)
	}
	for _, name := range d.joinSeq {
		if !active[name] {
			continue
		}
		for _, clause := range d.joins[name].clauses {
			b.WriteString("\n" + clause)
		}
	}
	if d.where != "" {
		b.WriteString("\nWHERE\n    " + d.where)
	}
	if d.groupBy != "" {
		b.WriteString("\nGROUP BY\n    " + d.groupBy)
	}
	if d.orderBy != "" {
		b.WriteString("\nORDER BY\n    " + d.orderBy)
	}
	return b.String()
}

// Fetch runs the resolved query and scans every result row.
func (d *Dataset) Fetch(ctx context.Context, q Querier, has TableSet) ([]Row, error) {
	rows, err := q.QueryContext(ctx, d.SQL(has))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w: %w", d.Name, wp2csv.ErrQueryFailed, err)
	}
	defer func() { _ = rows.Close() }()

	var result []Row
	for rows.Next() {
		row, err := d.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s row: %w: %w", d.Name, wp2csv.ErrQueryFailed, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s rows: %w: %w", d.Name, wp2csv.ErrQueryFailed, err)
	}
	return result, nil
}

func allExist(has TableSet, tables []string) bool {
	for _, t := range tables {
		if !has(t) {
			return false
		}
	}
	return true
}

// Catalog is an ordered set of datasets.
type Catalog struct {
	datasets []*Dataset
}

// Default returns the catalog of all built-in datasets: posts, pages, products, contacts.
func Default() *Catalog {
	return &Catalog{datasets: []*Dataset{postsDataset(), pagesDataset(), productsDataset(), contactsDataset()}}
}

// Datasets returns the datasets in export order.
func (c *Catalog) Datasets() []*Dataset {
	return append([]*Dataset(nil), c.datasets...)
}

// Names returns the dataset names in export order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.datasets))
	for i, d := range c.datasets {
		names[i] = d.Name
	}
	return names
}

// Lookup finds a dataset by name.
func (c *Catalog) Lookup(name string) (*Dataset, bool) {
	for _, d := range c.datasets {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// Select returns a catalog restricted to names, keeping catalog order.
// An empty selection returns the whole catalog.
func (c *Catalog) Select(names []string) (*Catalog, error) {
	if len(names) == 0 {
		return c, nil
	}

	want := make(map[string]bool, len(names))
	var unknown []string
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if _, ok := c.Lookup(name); !ok {
			unknown = append(unknown, raw)
			continue
		}
		want[name] = true
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown dataset(s) %s (available: %s): %w",
			strings.Join(unknown, ", "), strings.Join(c.Names(), ", "), wp2csv.ErrInvalidConfig)
	}

	selected := &Catalog{}
	for _, d := range c.datasets {
		if want[d.Name] {
			selected.datasets = append(selected.datasets, d)
		}
	}
	return selected, nil
}
