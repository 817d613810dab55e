package model

import "github.com/m-mizutani/gleaner/pkg/domain/types"

// HealthStatus is the response body of the health check endpoint.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// NewHealthStatus reports the service as healthy.
func NewHealthStatus() *HealthStatus {
	return &HealthStatus{
		Status:  "healthy",
		Service: types.AppName,
		Version: types.Version,
	}
}
