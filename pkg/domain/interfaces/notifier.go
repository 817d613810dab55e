package interfaces

import (
	"context"

	"github.com/m-mizutani/gleaner/pkg/domain/model"
)

// Notifier defines operations for announcing finished harvest runs
type Notifier interface {
	// Notify sends a summary of the run to the configured channel
	Notify(ctx context.Context, run *model.HarvestRun) error
}
