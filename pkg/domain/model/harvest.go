package model

import (
	"time"

	"github.com/m-mizutani/gleaner/pkg/domain/types"
)

// HarvestRequest is the invocation payload. TestMode caps the index at a
// small sample so an end-to-end verification run stays cheap.
type HarvestRequest struct {
	TestMode bool `json:"test_mode"`
}

// RunStatus represents the lifecycle state of a harvest run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// HarvestRun is the record of one harvest invocation: its lifecycle
// state and the counts reported to the caller. Failed counts transport
// and decode failures; Stale counts datasets that vanished between the
// index fetch and the detail fetch.
type HarvestRun struct {
	ID          types.RunID `json:"id" firestore:"id"`
	Status      RunStatus   `json:"status" firestore:"status"`
	TestMode    bool        `json:"test_mode" firestore:"test_mode"`
	Attempted   int         `json:"attempted" firestore:"attempted"`
	Succeeded   int         `json:"succeeded" firestore:"succeeded"`
	Failed      int         `json:"failed" firestore:"failed"`
	Stale       int         `json:"stale" firestore:"stale"`
	Destination string      `json:"destination,omitempty" firestore:"destination"`
	Error       string      `json:"error,omitempty" firestore:"error"`
	StartedAt   time.Time   `json:"started_at" firestore:"started_at"`
	FinishedAt  time.Time   `json:"finished_at" firestore:"finished_at"`
}

// NewHarvestRun creates a run record in the running state.
func NewHarvestRun(req *HarvestRequest) *HarvestRun {
	return &HarvestRun{
		ID:        types.NewRunID(),
		Status:    RunStatusRunning,
		TestMode:  req.TestMode,
		StartedAt: time.Now(),
	}
}

// Duration returns the wall-clock time of the run, or the elapsed time
// so far when the run has not finished.
func (r *HarvestRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
