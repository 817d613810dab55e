package config

import (
	"context"

	"github.com/m-mizutani/gleaner/pkg/domain/interfaces"
	"github.com/m-mizutani/gleaner/pkg/infra/gcs"
	"github.com/m-mizutani/gleaner/pkg/infra/localfs"
	"github.com/urfave/cli/v3"
)

// Storage holds output storage configuration
type Storage struct {
	Bucket    string
	OutputDir string
}

// Flags returns CLI flags for storage configuration
func (c *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bucket",
			Usage:       "Cloud Storage bucket for the published CSV (local directory output when empty)",
			Destination: &c.Bucket,
			Sources:     cli.EnvVars("GLEANER_BUCKET_NAME"),
		},
		&cli.StringFlag{
			Name:        "output-dir",
			Usage:       "Local directory for the published CSV when no bucket is set",
			Value:       ".",
			Destination: &c.OutputDir,
			Sources:     cli.EnvVars("GLEANER_OUTPUT_DIR"),
		},
	}
}

// Configure builds a publisher from the configuration. A bucket name selects
// Cloud Storage, otherwise the CSV lands in the local output directory.
func (c *Storage) Configure(ctx context.Context) (interfaces.Publisher, error) {
	if c.Bucket != "" {
		return gcs.New(ctx, c.Bucket)
	}
	return localfs.New(c.OutputDir), nil
}
