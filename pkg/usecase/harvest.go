package usecase

import (
	"bytes"
	"context"
	"errors"
	"runtime/debug"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gleaner/pkg/domain/interfaces"
	"github.com/m-mizutani/gleaner/pkg/domain/model"
	"github.com/m-mizutani/gleaner/pkg/domain/types"
	"github.com/m-mizutani/gleaner/pkg/utils/async"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// DefaultConcurrency caps how many detail fetches run at once
	DefaultConcurrency = 10
	// DefaultSampleLimit caps the index in test mode
	DefaultSampleLimit = 20
	// DefaultObjectName is the object key of the published CSV
	DefaultObjectName = "DataGovUK_Datasets.csv"
)

type harvestUseCase struct {
	catalog    interfaces.CatalogClient
	publisher  interfaces.Publisher
	repository interfaces.Repository
	notifier   interfaces.Notifier

	concurrency int
	sampleLimit int
	objectName  string
}

// Option configures the harvest use case
type Option func(*harvestUseCase)

// WithConcurrency sets how many detail fetches may be in flight at once.
// Values below 1 are clamped to 1.
func WithConcurrency(n int) Option {
	return func(uc *harvestUseCase) {
		uc.concurrency = n
	}
}

// WithSampleLimit sets how many datasets a test mode run covers
func WithSampleLimit(n int) Option {
	return func(uc *harvestUseCase) {
		uc.sampleLimit = n
	}
}

// WithObjectName sets the object key of the published CSV
func WithObjectName(name string) Option {
	return func(uc *harvestUseCase) {
		uc.objectName = name
	}
}

// WithRepository stores run records in the given repository. Repository
// failures are logged but never fail a harvest.
func WithRepository(repo interfaces.Repository) Option {
	return func(uc *harvestUseCase) {
		uc.repository = repo
	}
}

// WithNotifier announces finished runs through the given notifier
func WithNotifier(notifier interfaces.Notifier) Option {
	return func(uc *harvestUseCase) {
		uc.notifier = notifier
	}
}

// NewHarvest creates a new instance of HarvestUseCase
func NewHarvest(catalog interfaces.CatalogClient, publisher interfaces.Publisher, options ...Option) interfaces.HarvestUseCase {
	uc := &harvestUseCase{
		catalog:     catalog,
		publisher:   publisher,
		concurrency: DefaultConcurrency,
		sampleLimit: DefaultSampleLimit,
		objectName:  DefaultObjectName,
	}

	for _, opt := range options {
		opt(uc)
	}

	return uc
}

// Execute runs one harvest: list the catalog index, fetch every dataset
// detail under the concurrency cap, aggregate the successes into a CSV and
// publish it. Individual dataset failures reduce the row count but never
// abort the run; an index fetch or publish failure fails the whole run.
func (uc *harvestUseCase) Execute(ctx context.Context, req *model.HarvestRequest) (*model.HarvestRun, error) {
	logger := ctxlog.From(ctx)

	if req == nil {
		req = &model.HarvestRequest{}
	}

	run := model.NewHarvestRun(req)
	uc.saveRun(ctx, run)

	logger.Info("Starting harvest",
		"run_id", run.ID,
		"test_mode", req.TestMode,
		"concurrency", uc.concurrency,
	)

	limit := 0
	if req.TestMode {
		limit = uc.sampleLimit
	}

	ids, err := uc.catalog.ListDatasets(ctx, limit)
	if err != nil {
		return uc.fail(ctx, run, goerr.Wrap(err, "failed to fetch dataset index"))
	}
	run.Attempted = len(ids)
	logger.Info("Fetched dataset index", "run_id", run.ID, "count", len(ids))

	records := uc.collect(ctx, run, uc.harvest(ctx, ids))
	run.Succeeded = len(records)

	table := model.BuildTable(records)
	var buf bytes.Buffer
	if err := table.WriteCSV(&buf); err != nil {
		return uc.fail(ctx, run, goerr.Wrap(err, "failed to encode output table"))
	}

	if err := uc.publisher.Publish(ctx, uc.objectName, buf.Bytes()); err != nil {
		return uc.fail(ctx, run, goerr.Wrap(err, "failed to publish output", goerr.V("key", uc.objectName)))
	}

	run.Destination = uc.publisher.Location(uc.objectName)
	run.Status = model.RunStatusSucceeded
	run.FinishedAt = time.Now()
	uc.saveRun(ctx, run)
	uc.notify(ctx, run)

	logger.Info("Harvest finished",
		"run_id", run.ID,
		"attempted", run.Attempted,
		"succeeded", run.Succeeded,
		"failed", run.Failed,
		"stale", run.Stale,
		"destination", run.Destination,
	)

	return run, nil
}

// LookupRun retrieves a past run record from the repository
func (uc *harvestUseCase) LookupRun(ctx context.Context, id types.RunID) (*model.HarvestRun, error) {
	if uc.repository == nil {
		return nil, goerr.Wrap(types.ErrRunNotFound, "no run repository is configured", goerr.V("id", id))
	}
	return uc.repository.GetRun(ctx, id)
}

// fetchOutcome is the result of one dataset fetch. Exactly one of record
// and err is set.
type fetchOutcome struct {
	id     types.DatasetID
	record *model.DatasetRecord
	err    error
}

// harvest fans the identifiers out to a bounded worker pool. Every worker
// writes only its own slots of the outcome slice, so completions arriving
// in any order never contend, and the slice keeps the index order.
func (uc *harvestUseCase) harvest(ctx context.Context, ids []types.DatasetID) []fetchOutcome {
	if len(ids) == 0 {
		return nil
	}

	workers := uc.concurrency
	if workers < 1 {
		workers = 1
	}
	if workers > len(ids) {
		workers = len(ids)
	}

	outcomes := make([]fetchOutcome, len(ids))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				outcomes[idx] = uc.fetchOne(ctx, ids[idx])
			}
		}()
	}

	for idx := range ids {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	return outcomes
}

// fetchOne fetches a single dataset detail. A panic inside the fetch is
// converted into a per-item failure so sibling fetches keep running.
func (uc *harvestUseCase) fetchOne(ctx context.Context, id types.DatasetID) (outcome fetchOutcome) {
	outcome.id = id

	defer func() {
		if r := recover(); r != nil {
			outcome.record = nil
			outcome.err = goerr.New("panic during dataset fetch",
				goerr.V("id", id),
				goerr.V("recover", r),
				goerr.V("stack", string(debug.Stack())),
			)
		}
	}()

	logger := ctxlog.From(ctx)
	logger.Debug("Fetching dataset detail", "id", id)

	record, err := uc.catalog.GetDataset(ctx, id)
	if err != nil {
		outcome.err = err
		return outcome
	}

	outcome.record = record
	return outcome
}

// collect splits the outcomes into successful records and failure counts,
// logging one entry per dropped dataset.
func (uc *harvestUseCase) collect(ctx context.Context, run *model.HarvestRun, outcomes []fetchOutcome) []*model.DatasetRecord {
	logger := ctxlog.From(ctx)

	records := make([]*model.DatasetRecord, 0, len(outcomes))
	for _, outcome := range outcomes {
		switch {
		case outcome.err == nil:
			records = append(records, outcome.record)
		case errors.Is(outcome.err, types.ErrDatasetNotFound):
			run.Stale++
			logger.Warn("Dataset vanished between index and detail fetch",
				"id", outcome.id,
				"error", outcome.err,
			)
		default:
			run.Failed++
			logger.Warn("Failed to fetch dataset detail",
				"id", outcome.id,
				"error", outcome.err,
			)
		}
	}
	return records
}

// fail finalizes the run as failed. The error is returned as-is so callers
// can inspect the failing stage. CaptureException is a no-op unless Sentry
// is configured.
func (uc *harvestUseCase) fail(ctx context.Context, run *model.HarvestRun, err error) (*model.HarvestRun, error) {
	logger := ctxlog.From(ctx)

	run.Status = model.RunStatusFailed
	run.Error = err.Error()
	run.FinishedAt = time.Now()
	uc.saveRun(ctx, run)
	uc.notify(ctx, run)
	sentry.CaptureException(err)

	logger.Error("Harvest failed", "run_id", run.ID, "error", err)
	return run, err
}

// saveRun stores the current run state, best-effort
func (uc *harvestUseCase) saveRun(ctx context.Context, run *model.HarvestRun) {
	if uc.repository == nil {
		return
	}
	if err := uc.repository.PutRun(ctx, run); err != nil {
		ctxlog.From(ctx).Warn("Failed to store run record", "run_id", run.ID, "error", err)
	}
}

// notify announces the finished run without blocking the harvest result.
// A snapshot is handed to the background task so the caller may keep using
// the returned run.
func (uc *harvestUseCase) notify(ctx context.Context, run *model.HarvestRun) {
	if uc.notifier == nil {
		return
	}

	snapshot := *run
	async.Dispatch(ctx, "notify", func(ctx context.Context) error {
		return uc.notifier.Notify(ctx, &snapshot)
	})
}
