// Package report renders the per-dataset summary of an export or probe run.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/wp2csv/wp2csv/internal/export"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Renderer writes summaries to w.
type Renderer struct {
	w    io.Writer
	mode Mode
}

// New creates a Renderer.
func New(w io.Writer, mode Mode) *Renderer {
	return &Renderer{w: w, mode: mode}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if r.mode != ModeStyled {
		return text
	}
	return s.Render(text)
}

func (r *Renderer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	if r.mode == ModeStyled {
		t.SetStyle(table.StyleLight)
	} else {
		t.SetStyle(table.StyleDefault)
	}
	return t
}

func (r *Renderer) status(s export.DatasetStatus) string {
	switch s {
	case export.StatusExported, export.StatusAvailable:
		return r.style(okStyle, s.String())
	default:
		return r.style(skippedStyle, s.String())
	}
}

func notes(dr export.DatasetResult) string {
	var parts []string
	if len(dr.MissingTables) > 0 {
		parts = append(parts, "missing "+strings.Join(dr.MissingTables, ", "))
	}
	if len(dr.DegradedJoins) > 0 {
		parts = append(parts, "empty "+strings.Join(dr.DegradedJoins, ", "))
	}
	return strings.Join(parts, "; ")
}

// Export renders the summary of an export run.
func (r *Renderer) Export(res *export.Result) {
	if res == nil {
		return
	}
	_, _ = fmt.Fprintln(r.w, r.style(titleStyle, "Export "+res.RunID))

	t := r.newTable()
	t.AppendHeader(table.Row{"Dataset", "Status", "Rows", "Time", "Notes"})
	for _, dr := range res.Datasets {
		t.AppendRow(table.Row{dr.Name, r.status(dr.Status), dr.Rows, dr.Duration.Round(time.Millisecond), notes(dr)})
	}
	t.AppendFooter(table.Row{"Total", "", res.Rows, res.Duration.Round(time.Millisecond), ""})
	t.Render()

	if res.Written {
		_, _ = fmt.Fprintln(r.w, r.style(mutedStyle, fmt.Sprintf("%d row(s), %d column(s) -> %s", res.Rows, len(res.Columns), res.Output)))
		if res.SHA256 != "" {
			_, _ = fmt.Fprintln(r.w, r.style(mutedStyle, "sha256 "+res.SHA256))
		}
	} else {
		_, _ = fmt.Fprintln(r.w, r.style(mutedStyle, "No data exported"))
	}
}

// Probe renders dataset availability.
func (r *Renderer) Probe(results []export.DatasetResult) {
	t := r.newTable()
	t.AppendHeader(table.Row{"Dataset", "Status", "Notes"})
	for _, dr := range results {
		t.AppendRow(table.Row{dr.Name, r.status(dr.Status), notes(dr)})
	}
	t.Render()
}

// DatasetInfo describes one catalog entry for listing.
type DatasetInfo struct {
	Name        string
	Description string
	Required    []string
	Optional    []string
	Columns     []string
}

// Datasets renders the catalog.
func (r *Renderer) Datasets(infos []DatasetInfo) {
	t := r.newTable()
	t.AppendHeader(table.Row{"Dataset", "Description", "Required tables", "Optional tables", "Columns"})
	for _, d := range infos {
		t.AppendRow(table.Row{
			d.Name,
			d.Description,
			strings.Join(d.Required, ", "),
			strings.Join(d.Optional, ", "),
			strings.Join(d.Columns, ", "),
		})
	}
	t.Render()
}
