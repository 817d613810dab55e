package firestore_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/gleaner/pkg/domain/model"
	"github.com/m-mizutani/gleaner/pkg/domain/types"
	"github.com/m-mizutani/gleaner/pkg/infra/firestore"
)

func TestClient_RunLifecycle(t *testing.T) {
	// Integration test, requires a reachable Firestore database or emulator.
	// Set FIRESTORE_EMULATOR_HOST to run against the local emulator.
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID is not provided")
	}
	if databaseID == "" {
		databaseID = "(default)"
	}

	ctx := context.Background()
	repo, err := firestore.New(ctx, projectID, databaseID)
	gt.NoError(t, err)

	run := model.NewHarvestRun(&model.HarvestRequest{TestMode: true})
	run.Status = model.RunStatusSucceeded
	run.Attempted = 20
	run.Succeeded = 18
	run.Failed = 1
	run.Stale = 1
	run.Destination = "gs://bucket/datasets.csv"

	gt.NoError(t, repo.PutRun(ctx, run))

	got, err := repo.GetRun(ctx, run.ID)
	gt.NoError(t, err)
	gt.Value(t, got.ID).Equal(run.ID)
	gt.Value(t, got.Status).Equal(model.RunStatusSucceeded)
	gt.Equal(t, got.Attempted, 20)
	gt.Equal(t, got.Succeeded, 18)
	gt.Equal(t, got.Failed, 1)
	gt.Equal(t, got.Stale, 1)
	gt.Value(t, got.Destination).Equal("gs://bucket/datasets.csv")

	_, err = repo.GetRun(ctx, types.NewRunID())
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrRunNotFound))
}
