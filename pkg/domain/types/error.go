package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrDatasetNotFound means the catalog answered but no longer has the
	// dataset. The index and detail endpoints are eventually consistent,
	// so this happens during normal operation and is not fatal.
	ErrDatasetNotFound = goerr.New("dataset not found in catalog")

	// ErrInvalidResponse means the catalog answered with a body that does
	// not match the expected envelope.
	ErrInvalidResponse = goerr.New("invalid catalog response")

	// ErrRunNotFound means no harvest run is recorded under the given ID.
	ErrRunNotFound = goerr.New("harvest run not found")
)
