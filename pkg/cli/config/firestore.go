package config

import (
	"context"

	"github.com/m-mizutani/gleaner/pkg/domain/interfaces"
	firestoreinfra "github.com/m-mizutani/gleaner/pkg/infra/firestore"
	"github.com/m-mizutani/gleaner/pkg/infra/memory"
	"github.com/urfave/cli/v3"
)

// Firestore holds run repository configuration
type Firestore struct {
	ProjectID  string
	DatabaseID string
}

// Flags returns CLI flags for Firestore configuration
func (c *Firestore) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Google Cloud project ID for run records (in-memory store when empty)",
			Destination: &c.ProjectID,
			Sources:     cli.EnvVars("GLEANER_FIRESTORE_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore database ID for run records",
			Value:       "(default)",
			Destination: &c.DatabaseID,
			Sources:     cli.EnvVars("GLEANER_FIRESTORE_DATABASE_ID"),
		},
	}
}

// Configure builds a run repository from the configuration. A project ID
// selects Firestore, otherwise run records live in process memory.
func (c *Firestore) Configure(ctx context.Context) (interfaces.Repository, error) {
	if c.ProjectID != "" {
		return firestoreinfra.New(ctx, c.ProjectID, c.DatabaseID)
	}
	return memory.New(), nil
}
