package interfaces

//go:generate moq -out mocks/usecase_mock.go -pkg mocks . HarvestUseCase

import (
	"context"

	"github.com/m-mizutani/gleaner/pkg/domain/model"
	"github.com/m-mizutani/gleaner/pkg/domain/types"
)

// HarvestUseCase defines the interface for harvest execution
type HarvestUseCase interface {
	// Execute runs one harvest and returns the finished run record
	Execute(ctx context.Context, req *model.HarvestRequest) (*model.HarvestRun, error)

	// LookupRun retrieves a past run record. It returns types.ErrRunNotFound
	// when the run is unknown or no repository is configured.
	LookupRun(ctx context.Context, id types.RunID) (*model.HarvestRun, error)
}
