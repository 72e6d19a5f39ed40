package climate

import (
	"context"
	"io"
)

// Source abstracts where the climate CSV comes from (local file, remote URL).
type Source interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Cache memoizes derived annual series. Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(key string) ([]AnnualPoint, bool)
	Put(key string, points []AnnualPoint)
	Purge()
}
