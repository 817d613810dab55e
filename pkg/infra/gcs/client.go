package gcs

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gleaner/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
)

type client struct {
	bucket    string
	gcsClient *storage.Client
}

// New creates a publisher that writes objects into a Cloud Storage bucket.
// Credentials come from the ambient environment unless overridden by options.
func New(ctx context.Context, bucket string, options ...option.ClientOption) (interfaces.Publisher, error) {
	gcsClient, err := storage.NewClient(ctx, options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	return &client{
		bucket:    bucket,
		gcsClient: gcsClient,
	}, nil
}

// Publish uploads data as one object. The object only becomes visible once
// the final Close succeeds, so a failed upload never leaves a partial file.
func (c *client) Publish(ctx context.Context, key string, data []byte) error {
	logger := ctxlog.From(ctx)
	logger.Info("uploading object",
		"bucket", c.bucket,
		"key", key,
		"size", len(data))

	w := c.gcsClient.Bucket(c.bucket).Object(key).NewWriter(ctx)
	w.ContentType = "text/csv"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write object",
			goerr.V("bucket", c.bucket),
			goerr.V("key", key),
		)
	}

	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize object",
			goerr.V("bucket", c.bucket),
			goerr.V("key", key),
		)
	}

	logger.Info("uploaded object", "bucket", c.bucket, "key", key)
	return nil
}

func (c *client) Location(key string) string {
	return "gs://" + c.bucket + "/" + key
}
