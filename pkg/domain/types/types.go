package types

import "github.com/google/uuid"

// AppName is the service name used in logs, health responses and
// published metadata.
const AppName = "gleaner"

// Version is overwritten at build time via -ldflags.
var Version = "dev"

// DatasetID identifies one dataset in the source catalog. The catalog
// treats it as an opaque string.
type DatasetID string

// RunID identifies one harvest invocation.
type RunID string

// NewRunID issues a fresh run identifier.
func NewRunID() RunID {
	return RunID(uuid.New().String())
}

func (x RunID) String() string {
	return string(x)
}
