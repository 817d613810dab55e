package model

import "github.com/m-mizutani/gleaner/pkg/domain/types"

// DatasetRecord is the flattened metadata of one catalog dataset.
// Description arrives already sanitized by the catalog client.
// Timestamps are kept exactly as the source emits them; CKAN publishes
// zone-less local timestamps.
type DatasetRecord struct {
	ID           types.DatasetID
	Title        string
	Description  string
	License      string
	Organization string
	Created      string
	Modified     string
	Format       string   // comma-joined resource formats, e.g. "CSV, JSON"
	DownloadURLs []string // resource URLs in catalog order
}
