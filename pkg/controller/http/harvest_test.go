package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	controller "github.com/m-mizutani/gleaner/pkg/controller/http"
	"github.com/m-mizutani/gleaner/pkg/domain/model"
	"github.com/m-mizutani/gleaner/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// MockHarvestUseCase is a mock implementation of HarvestUseCase
type MockHarvestUseCase struct {
	executeFunc func(ctx context.Context, req *model.HarvestRequest) (*model.HarvestRun, error)
	lookupFunc  func(ctx context.Context, id types.RunID) (*model.HarvestRun, error)

	executeCalls []model.HarvestRequest
}

func (m *MockHarvestUseCase) Execute(ctx context.Context, req *model.HarvestRequest) (*model.HarvestRun, error) {
	m.executeCalls = append(m.executeCalls, *req)
	if m.executeFunc != nil {
		return m.executeFunc(ctx, req)
	}
	return nil, errors.New("mock not configured")
}

func (m *MockHarvestUseCase) LookupRun(ctx context.Context, id types.RunID) (*model.HarvestRun, error) {
	if m.lookupFunc != nil {
		return m.lookupFunc(ctx, id)
	}
	return nil, errors.New("mock not configured")
}

func newTestServer(t *testing.T, uc *MockHarvestUseCase, opts ...controller.Option) *controller.Server {
	t.Helper()
	server, err := controller.NewServer(context.Background(), uc, opts...)
	gt.NoError(t, err)
	return server
}

func finishedRun(status model.RunStatus) *model.HarvestRun {
	run := model.NewHarvestRun(&model.HarvestRequest{})
	run.Status = status
	run.Attempted = 3
	run.Succeeded = 2
	run.Failed = 1
	run.Destination = "mock://datasets.csv"
	return run
}

func TestHarvestEndpoint(t *testing.T) {
	t.Run("test mode flag reaches the use case", func(t *testing.T) {
		uc := &MockHarvestUseCase{
			executeFunc: func(ctx context.Context, req *model.HarvestRequest) (*model.HarvestRun, error) {
				return finishedRun(model.RunStatusSucceeded), nil
			},
		}
		server := newTestServer(t, uc)

		req := httptest.NewRequest(http.MethodPost, "/harvest", bytes.NewReader([]byte(`{"test_mode": true}`)))
		w := httptest.NewRecorder()
		server.Handler.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, len(uc.executeCalls), 1)
		gt.True(t, uc.executeCalls[0].TestMode)

		var run model.HarvestRun
		gt.NoError(t, json.NewDecoder(w.Body).Decode(&run))
		gt.Value(t, run.Status).Equal(model.RunStatusSucceeded)
		gt.Equal(t, run.Succeeded, 2)
		gt.Value(t, run.Destination).Equal("mock://datasets.csv")
	})

	t.Run("empty body runs a full harvest", func(t *testing.T) {
		uc := &MockHarvestUseCase{
			executeFunc: func(ctx context.Context, req *model.HarvestRequest) (*model.HarvestRun, error) {
				return finishedRun(model.RunStatusSucceeded), nil
			},
		}
		server := newTestServer(t, uc)

		req := httptest.NewRequest(http.MethodPost, "/harvest", nil)
		w := httptest.NewRecorder()
		server.Handler.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, len(uc.executeCalls), 1)
		gt.True(t, !uc.executeCalls[0].TestMode)
	})

	t.Run("malformed payload is rejected", func(t *testing.T) {
		uc := &MockHarvestUseCase{}
		server := newTestServer(t, uc)

		req := httptest.NewRequest(http.MethodPost, "/harvest", bytes.NewReader([]byte(`{"test_mode": `)))
		w := httptest.NewRecorder()
		server.Handler.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusBadRequest)
		gt.Equal(t, len(uc.executeCalls), 0)
	})

	t.Run("harvest failure returns the reason", func(t *testing.T) {
		uc := &MockHarvestUseCase{
			executeFunc: func(ctx context.Context, req *model.HarvestRequest) (*model.HarvestRun, error) {
				run := finishedRun(model.RunStatusFailed)
				return run, goerr.New("failed to fetch dataset index")
			},
		}
		server := newTestServer(t, uc)

		req := httptest.NewRequest(http.MethodPost, "/harvest", nil)
		w := httptest.NewRecorder()
		server.Handler.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusInternalServerError)

		var body map[string]string
		gt.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		gt.String(t, body["error"]).Contains("failed to fetch dataset index")
	})
}

func TestRunLookupEndpoint(t *testing.T) {
	stored := finishedRun(model.RunStatusSucceeded)

	t.Run("known run", func(t *testing.T) {
		uc := &MockHarvestUseCase{
			lookupFunc: func(ctx context.Context, id types.RunID) (*model.HarvestRun, error) {
				gt.Value(t, id).Equal(stored.ID)
				return stored, nil
			},
		}
		server := newTestServer(t, uc)

		req := httptest.NewRequest(http.MethodGet, "/harvest/runs/"+stored.ID.String(), nil)
		w := httptest.NewRecorder()
		server.Handler.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusOK)

		var run model.HarvestRun
		gt.NoError(t, json.NewDecoder(w.Body).Decode(&run))
		gt.Value(t, run.ID).Equal(stored.ID)
	})

	t.Run("unknown run", func(t *testing.T) {
		uc := &MockHarvestUseCase{
			lookupFunc: func(ctx context.Context, id types.RunID) (*model.HarvestRun, error) {
				return nil, goerr.Wrap(types.ErrRunNotFound, "run record does not exist")
			},
		}
		server := newTestServer(t, uc)

		req := httptest.NewRequest(http.MethodGet, "/harvest/runs/"+types.NewRunID().String(), nil)
		w := httptest.NewRecorder()
		server.Handler.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		uc := &MockHarvestUseCase{
			lookupFunc: func(ctx context.Context, id types.RunID) (*model.HarvestRun, error) {
				return nil, goerr.New("ledger offline")
			},
		}
		server := newTestServer(t, uc)

		req := httptest.NewRequest(http.MethodGet, "/harvest/runs/"+types.NewRunID().String(), nil)
		w := httptest.NewRecorder()
		server.Handler.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusInternalServerError)
	})
}
