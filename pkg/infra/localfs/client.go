package localfs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/gleaner/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

type client struct {
	dir string
}

// New creates a publisher that writes objects into a local directory.
// Intended for one-shot runs and development, where no bucket is at hand.
func New(dir string) interfaces.Publisher {
	return &client{dir: dir}
}

// Publish writes data to a temporary file in the target directory and
// renames it into place, so readers never observe a half-written file.
func (c *client) Publish(ctx context.Context, key string, data []byte) error {
	path := filepath.Join(c.dir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return goerr.Wrap(err, "failed to create output directory", goerr.V("path", path))
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary file", goerr.V("path", path))
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return goerr.Wrap(err, "failed to write temporary file", goerr.V("path", tmpName))
	}
	if err := tmp.Chmod(0o644); err != nil {
		return goerr.Wrap(err, "failed to set file mode", goerr.V("path", tmpName))
	}
	if err := tmp.Close(); err != nil {
		return goerr.Wrap(err, "failed to close temporary file", goerr.V("path", tmpName))
	}

	if err := os.Rename(tmpName, path); err != nil {
		return goerr.Wrap(err, "failed to move output into place", goerr.V("path", path))
	}
	return nil
}

func (c *client) Location(key string) string {
	return filepath.Join(c.dir, key)
}
