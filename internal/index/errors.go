// ABOUTME: Typed errors for index rebuilds and queries
// ABOUTME: EmbeddingError carries the failing batch; ErrEmptyIndex is a sentinel
package index

import (
	"errors"
	"fmt"
)

// ErrEmptyIndex is returned on queries against a never-built index.
var ErrEmptyIndex = errors.New("no document index has been built")

// EmbeddingError reports a rebuild whose embedding calls exhausted their
// retries. The previous index stays intact; Batch identifies which group of
// chunks failed so the rebuild can be retried manually.
type EmbeddingError struct {
	Batch int
	Err   error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding batch %d failed: %v", e.Batch, e.Err)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Err
}
