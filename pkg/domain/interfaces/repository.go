package interfaces

import (
	"context"

	"github.com/m-mizutani/gleaner/pkg/domain/model"
	"github.com/m-mizutani/gleaner/pkg/domain/types"
)

// Repository defines operations for persisting harvest run records
type Repository interface {
	// PutRun stores or overwrites a run record
	PutRun(ctx context.Context, run *model.HarvestRun) error

	// GetRun retrieves a run record by ID. It returns types.ErrRunNotFound
	// when no record exists.
	GetRun(ctx context.Context, id types.RunID) (*model.HarvestRun, error)
}
