// Package utils renders run results to the console and to CSV files
package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/myusername/cbb-statistic-scraper/internal/pipeline"
	"github.com/myusername/cbb-statistic-scraper/pkg/models"
	"github.com/myusername/cbb-statistic-scraper/pkg/parser"
)

// DisplaySummary prints the run summary and, if any, the failed items
func DisplaySummary(w io.Writer, s *pipeline.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(strings.ToUpper(s.Page) + " RUN SUMMARY")
	t.AppendHeader(table.Row{"Parsed", "Inserted", "Replaced", "Failed"})
	t.AppendRow(table.Row{s.Parsed, s.Inserted, s.Replaced, len(s.Failed)})
	t.SetStyle(table.StyleRounded)
	t.Render()

	if len(s.Failed) == 0 {
		return
	}

	f := table.NewWriter()
	f.SetOutputMirror(w)
	f.AppendHeader(table.Row{"Failed", "Reason"})
	for _, failure := range s.Failed {
		f.AppendRow(table.Row{failure.Item, failure.Reason})
	}
	f.SetColumnConfigs([]table.ColumnConfig{{Number: 2, WidthMax: 80, WidthMaxEnforcer: text.WrapSoft}})
	f.SetStyle(table.StyleRounded)
	f.Render()
}

// DisplayRecords prints up to limit records, one row each, in the given columns.
// A limit of zero prints everything.
func DisplayRecords(w io.Writer, columns []string, records []models.Record, limit int) {
	if len(records) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := make(table.Row, 0, len(columns))
	for _, c := range columns {
		header = append(header, c)
	}
	t.AppendHeader(header)

	for i, rec := range records {
		if limit > 0 && i >= limit {
			t.AppendFooter(table.Row{fmt.Sprintf("... %d more", len(records)-limit)})
			break
		}
		row := make(table.Row, 0, len(columns))
		for _, c := range columns {
			row = append(row, rec[c].String())
		}
		t.AppendRow(row)
	}

	t.SetStyle(table.StyleLight)
	t.Render()
}

// PrintTeamSlugs prints slugs in the SCRAPE_TEAMS format so a ratings run can
// seed the team list of later runs
func PrintTeamSlugs(w io.Writer, slugs []string) {
	fmt.Fprintf(w, "SCRAPE_TEAMS=%s\n", strings.Join(slugs, ","))
}

// SaveRecordsToCSV writes records to filename with a header row of columns.
// Null values become empty cells.
func SaveRecordsToCSV(filename string, columns []string, records []models.Record) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(columns); err != nil {
		return errors.Wrap(err, "failed to write header")
	}

	line := make([]string, len(columns))
	for _, rec := range records {
		for i, c := range columns {
			line[i] = rec[c].String()
		}
		if err := cw.Write(line); err != nil {
			return errors.Wrap(err, "failed to write record")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, "failed to flush csv")
	}
	return f.Close()
}

// CSVExporter writes one CSV file per page into Dir
type CSVExporter struct {
	Dir string
}

// Export writes <page>-<item>.csv, or <page>.csv when item is the page name.
// Columns follow the page's expected schema, then any extra fields.
func (e CSVExporter) Export(page parser.Page, item string, records []models.Record) error {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return errors.Wrapf(err, "create csv dir %s", e.Dir)
	}

	name := page.Name
	if item != "" && item != page.Name {
		name += "-" + item
	}
	path := filepath.Join(e.Dir, name+".csv")

	return SaveRecordsToCSV(path, page.Record.Expected.Columns(records), records)
}
