package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gleaner/pkg/domain/interfaces"
	"github.com/m-mizutani/gleaner/pkg/domain/model"
	"github.com/m-mizutani/gleaner/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// HarvestHandler handles harvest trigger and run lookup requests
type HarvestHandler struct {
	harvestUC interfaces.HarvestUseCase
}

// NewHarvestHandler creates a new HarvestHandler
func NewHarvestHandler(harvestUC interfaces.HarvestUseCase) *HarvestHandler {
	return &HarvestHandler{
		harvestUC: harvestUC,
	}
}

// Handle triggers one harvest run and answers with the finished run record.
// The harvest runs synchronously, so the response arrives only after the
// output has been published.
func (h *HarvestHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	// Read payload. An empty body means a normal full harvest.
	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("Failed to read request body", "error", err)
		writeError(w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req model.HarvestRequest
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			logger.Error("Failed to parse harvest request", "error", err)
			writeError(w, goerr.Wrap(err, "invalid JSON payload"), http.StatusBadRequest)
			return
		}
	}

	run, err := h.harvestUC.Execute(ctx, &req)
	if err != nil {
		logger.Error("Failed to execute harvest", "error", err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, http.StatusOK, run)
}

// GetRun answers with the record of a past harvest run
func (h *HarvestHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	runID := types.RunID(chi.URLParam(r, "runID"))

	run, err := h.harvestUC.LookupRun(ctx, runID)
	if err != nil {
		if errors.Is(err, types.ErrRunNotFound) {
			writeError(w, err, http.StatusNotFound)
			return
		}
		logger.Error("Failed to look up run", "run_id", runID, "error", err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, http.StatusOK, run)
}
