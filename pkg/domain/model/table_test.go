package model_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/m-mizutani/gleaner/pkg/domain/model"
)

func TestBuildTable_DownloadColumns(t *testing.T) {
	tests := []struct {
		name       string
		records    []*model.DatasetRecord
		wantHeader []string
		wantRows   [][]string
	}{
		{
			name: "width follows the widest record",
			records: []*model.DatasetRecord{
				{ID: "a", DownloadURLs: []string{"u1", "u2", "u3"}},
				{ID: "b", DownloadURLs: []string{"u1"}},
			},
			wantHeader: []string{
				"id", "title", "description", "license", "organization",
				"created", "modified", "format",
				"download_url_1", "download_url_2", "download_url_3",
			},
			wantRows: [][]string{
				{"a", "", "", "", "", "", "", "", "u1", "u2", "u3"},
				{"b", "", "", "", "", "", "", "", "u1", "", ""},
			},
		},
		{
			name: "no URLs anywhere keeps the fixed columns only",
			records: []*model.DatasetRecord{
				{ID: "a", Title: "T"},
			},
			wantHeader: []string{
				"id", "title", "description", "license", "organization",
				"created", "modified", "format",
			},
			wantRows: [][]string{
				{"a", "T", "", "", "", "", "", ""},
			},
		},
		{
			name:    "empty batch yields a header-only table",
			records: nil,
			wantHeader: []string{
				"id", "title", "description", "license", "organization",
				"created", "modified", "format",
			},
			wantRows: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := model.BuildTable(tt.records)

			if len(table.Header) != len(tt.wantHeader) {
				t.Fatalf("header length = %d, want %d", len(table.Header), len(tt.wantHeader))
			}
			for i, col := range tt.wantHeader {
				if table.Header[i] != col {
					t.Errorf("header[%d] = %q, want %q", i, table.Header[i], col)
				}
			}

			if len(table.Rows) != len(tt.wantRows) {
				t.Fatalf("row count = %d, want %d", len(table.Rows), len(tt.wantRows))
			}
			for i, wantRow := range tt.wantRows {
				if len(table.Rows[i]) != len(tt.wantHeader) {
					t.Errorf("row %d length = %d, want %d", i, len(table.Rows[i]), len(tt.wantHeader))
				}
				for j, cell := range wantRow {
					if table.Rows[i][j] != cell {
						t.Errorf("row %d cell %d = %q, want %q", i, j, table.Rows[i][j], cell)
					}
				}
			}
		})
	}
}

func TestBuildTable_FieldOrder(t *testing.T) {
	rec := &model.DatasetRecord{
		ID:           "dataset-1",
		Title:        "Road Counts",
		Description:  "Annual traffic counts",
		License:      "OGL",
		Organization: "Dept of Transport",
		Created:      "2020-01-01T00:00:00",
		Modified:     "2021-06-01T12:30:00",
		Format:       "CSV, XLS",
		DownloadURLs: []string{"https://example.com/counts.csv"},
	}

	table := model.BuildTable([]*model.DatasetRecord{rec})
	if len(table.Rows) != 1 {
		t.Fatalf("row count = %d, want 1", len(table.Rows))
	}

	want := []string{
		"dataset-1", "Road Counts", "Annual traffic counts", "OGL",
		"Dept of Transport", "2020-01-01T00:00:00", "2021-06-01T12:30:00",
		"CSV, XLS", "https://example.com/counts.csv",
	}
	for i, cell := range want {
		if table.Rows[0][i] != cell {
			t.Errorf("cell %d = %q, want %q", i, table.Rows[0][i], cell)
		}
	}
}

func TestTable_WriteCSV(t *testing.T) {
	records := []*model.DatasetRecord{
		{
			ID:          "a",
			Title:       `say "hello", world`,
			Description: "line1\nline2",
		},
		{ID: "b"},
	}

	var buf bytes.Buffer
	table := model.BuildTable(records)
	if err := table.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "id,title,description,") {
		t.Errorf("output does not start with the header: %q", out)
	}
	if !strings.Contains(out, `"say ""hello"", world"`) {
		t.Errorf("embedded quotes and comma not escaped: %q", out)
	}
	if !strings.Contains(out, "\"line1\nline2\"") {
		t.Errorf("embedded newline not quoted: %q", out)
	}
}
