package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/gleaner/pkg/domain/interfaces"
	"github.com/m-mizutani/gleaner/pkg/domain/model"
	"github.com/m-mizutani/gleaner/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const defaultCollection = "harvest_runs"

type client struct {
	firestoreClient *firestore.Client
	collection      string
}

// Option configures the Firestore repository
type Option func(*client)

// WithCollection changes the collection that holds run records
func WithCollection(name string) Option {
	return func(c *client) {
		c.collection = name
	}
}

// New creates a run repository backed by Firestore
func New(ctx context.Context, projectID, databaseID string, options ...Option) (interfaces.Repository, error) {
	return newWithClientOptions(ctx, projectID, databaseID, options, nil)
}

// NewWithClientOptions is New with extra Google API client options, mainly
// for pointing tests at an emulator endpoint.
func NewWithClientOptions(ctx context.Context, projectID, databaseID string, clientOptions []option.ClientOption, options ...Option) (interfaces.Repository, error) {
	return newWithClientOptions(ctx, projectID, databaseID, options, clientOptions)
}

func newWithClientOptions(ctx context.Context, projectID, databaseID string, options []Option, clientOptions []option.ClientOption) (interfaces.Repository, error) {
	firestoreClient, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID, clientOptions...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project", projectID),
			goerr.V("database", databaseID),
		)
	}

	c := &client{
		firestoreClient: firestoreClient,
		collection:      defaultCollection,
	}
	for _, opt := range options {
		opt(c)
	}

	return c, nil
}

func (c *client) PutRun(ctx context.Context, run *model.HarvestRun) error {
	doc := c.firestoreClient.Collection(c.collection).Doc(run.ID.String())
	if _, err := doc.Set(ctx, run); err != nil {
		return goerr.Wrap(err, "failed to store run record", goerr.V("id", run.ID))
	}
	return nil
}

func (c *client) GetRun(ctx context.Context, id types.RunID) (*model.HarvestRun, error) {
	doc, err := c.firestoreClient.Collection(c.collection).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrRunNotFound, "run record does not exist", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to fetch run record", goerr.V("id", id))
	}

	var run model.HarvestRun
	if err := doc.DataTo(&run); err != nil {
		return nil, goerr.Wrap(err, "failed to decode run record", goerr.V("id", id))
	}
	return &run, nil
}
