package model

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/m-mizutani/goerr/v2"
)

// fixedColumns is the stable prefix of every output row, in output order.
var fixedColumns = []string{
	"id",
	"title",
	"description",
	"license",
	"organization",
	"created",
	"modified",
	"format",
}

// Table is the tabular form of one harvest batch. Every row has exactly
// len(Header) cells; short URL lists are padded with empty cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// BuildTable aggregates records into a fixed-schema table. The number of
// download_url_N columns equals the largest URL count in the batch, so
// the width is computed in a first pass before any row is emitted. With
// no records the table is header-only, and with no URLs anywhere the
// header carries no URL columns at all.
func BuildTable(records []*DatasetRecord) *Table {
	maxURLs := 0
	for _, r := range records {
		if len(r.DownloadURLs) > maxURLs {
			maxURLs = len(r.DownloadURLs)
		}
	}

	header := make([]string, 0, len(fixedColumns)+maxURLs)
	header = append(header, fixedColumns...)
	for i := 1; i <= maxURLs; i++ {
		header = append(header, fmt.Sprintf("download_url_%d", i))
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := make([]string, 0, len(header))
		row = append(row,
			string(r.ID),
			r.Title,
			r.Description,
			r.License,
			r.Organization,
			r.Created,
			r.Modified,
			r.Format,
		)
		for i := 0; i < maxURLs; i++ {
			if i < len(r.DownloadURLs) {
				row = append(row, r.DownloadURLs[i])
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}

	return &Table{Header: header, Rows: rows}
}

// WriteCSV renders the table as RFC 4180 CSV. Titles and descriptions
// are free text and may contain delimiters, quotes and line breaks;
// encoding/csv applies the standard quote-and-double escaping.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return goerr.Wrap(err, "failed to write CSV header")
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return goerr.Wrap(err, "failed to write CSV row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return goerr.Wrap(err, "failed to flush CSV output")
	}
	return nil
}
