// Package docstore provides key-addressed persistence for a single
// serialized document, with interchangeable backends. The store always
// reads and writes the document as a whole; backends never interpret
// its contents.
package docstore

import (
	"context"
	"errors"
)

// ErrNoDocument is returned by Load when no document has been saved yet.
var ErrNoDocument = errors.New("docstore: no document")

// Backend persists one opaque document blob.
type Backend interface {
	// Load returns the stored document, or ErrNoDocument when absent.
	Load(ctx context.Context) ([]byte, error)
	// Save replaces the stored document wholesale.
	Save(ctx context.Context, data []byte) error
	// Delete removes the stored document. Absence is not an error.
	Delete(ctx context.Context) error
}
