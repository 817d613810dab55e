package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/gleaner/pkg/domain/interfaces"
	"github.com/m-mizutani/gleaner/pkg/domain/model"
	"github.com/m-mizutani/gleaner/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type client struct {
	mutex sync.RWMutex
	runs  map[types.RunID]model.HarvestRun
}

// New creates an in-memory run repository. Records vanish with the process,
// which is fine for one-shot runs and tests.
func New() interfaces.Repository {
	return &client{
		runs: make(map[types.RunID]model.HarvestRun),
	}
}

// PutRun stores a snapshot of the run, so later mutation of the caller's
// copy does not leak into the repository.
func (c *client) PutRun(ctx context.Context, run *model.HarvestRun) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.runs[run.ID] = *run
	return nil
}

func (c *client) GetRun(ctx context.Context, id types.RunID) (*model.HarvestRun, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	run, ok := c.runs[id]
	if !ok {
		return nil, goerr.Wrap(types.ErrRunNotFound, "run record does not exist", goerr.V("id", id))
	}
	return &run, nil
}
