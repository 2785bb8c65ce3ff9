package blobstore

import (
	"context"
	"errors"

	"github.com/signadot/docval/doc"
)

var (
	ErrNotFound       = errors.New("blob not found")
	ErrDigestMismatch = errors.New("blob digest mismatch")
	ErrNoContent      = errors.New("blob has no content")
)

// Store holds blob content keyed by digest.
type Store interface {
	// Put stores the content of b under b.Digest(). b must carry its
	// content.
	Put(ctx context.Context, b *doc.Blob) error

	// Get returns the content stored under digest.
	Get(ctx context.Context, digest string) ([]byte, error)

	// Has reports whether content is stored under digest.
	Has(ctx context.Context, digest string) (bool, error)

	// Delete removes the content stored under digest. Deleting an
	// absent digest is not an error.
	Delete(ctx context.Context, digest string) error
}
