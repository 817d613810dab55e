package interfaces

import (
	"context"

	"github.com/m-mizutani/gleaner/pkg/domain/model"
	"github.com/m-mizutani/gleaner/pkg/domain/types"
)

// CatalogClient defines operations for reading a dataset catalog
type CatalogClient interface {
	// ListDatasets returns the identifiers of every dataset in the catalog,
	// in the order the catalog reports them. A positive limit truncates the
	// result to the leading entries; zero or negative means no cap.
	ListDatasets(ctx context.Context, limit int) ([]types.DatasetID, error)

	// GetDataset fetches the detail record of a single dataset. It returns
	// types.ErrDatasetNotFound when the catalog no longer knows the ID.
	GetDataset(ctx context.Context, id types.DatasetID) (*model.DatasetRecord, error)
}
