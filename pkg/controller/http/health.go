package http

import (
	"net/http"

	"github.com/m-mizutani/gleaner/pkg/domain/model"
)

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, model.NewHealthStatus())
}
