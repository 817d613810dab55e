package interfaces

import "context"

// Publisher defines operations for writing the aggregated output object
type Publisher interface {
	// Publish stores data under the given object key, replacing any
	// previous object with the same key
	Publish(ctx context.Context, key string, data []byte) error

	// Location describes where an object key ends up, for logs and reports
	Location(key string) string
}
