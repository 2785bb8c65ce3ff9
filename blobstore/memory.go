package blobstore

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/signadot/docval/debug"
	"github.com/signadot/docval/doc"
)

// zstdEncoder and zstdDecoder are shared by every Memory store; both are
// safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("blobstore: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("blobstore: zstd decoder initialization failed: " + err.Error())
	}
}

// Memory is an in-memory Store holding zstd compressed content.
// It is safe for concurrent use.
type Memory struct {
	log *slog.Logger

	mu    sync.RWMutex
	blobs map[string]entry
}

type entry struct {
	compressed []byte
	size       int
}

type MemoryOption func(*Memory)

// WithLogger sets the logger of a Memory store. The default is
// slog.Default().
func WithLogger(l *slog.Logger) MemoryOption {
	return func(m *Memory) { m.log = l }
}

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		log:   slog.Default(),
		blobs: map[string]entry{},
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Memory) Put(ctx context.Context, b *doc.Blob) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !b.HasContent() {
		return fmt.Errorf("%w: %s", ErrNoContent, b.Digest())
	}
	content := b.Content()
	if got := doc.ComputeDigest(content); got != b.Digest() {
		return fmt.Errorf("%w: have %s, content hashes to %s", ErrDigestMismatch, b.Digest(), got)
	}
	compressed := zstdEncoder.EncodeAll(content, nil)

	m.mu.Lock()
	_, existed := m.blobs[b.Digest()]
	m.blobs[b.Digest()] = entry{compressed: compressed, size: len(content)}
	m.mu.Unlock()

	if debug.Blob() {
		debug.Logf("blob put %s %d -> %d bytes\n", b.Digest(), len(content), len(compressed))
	}
	if !existed {
		m.log.DebugContext(ctx, "installed blob", "digest", b.Digest(), "type", b.ContentType(), "size", len(content), "stored", len(compressed))
	}
	return nil
}

func (m *Memory) Get(ctx context.Context, digest string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	e, ok := m.blobs[digest]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, digest)
	}
	content, err := zstdDecoder.DecodeAll(e.compressed, make([]byte, 0, e.size))
	if err != nil {
		return nil, fmt.Errorf("zstd decompress %s: %w", digest, err)
	}
	if len(content) != e.size {
		return nil, fmt.Errorf("zstd decompress %s: got %d bytes, expected %d", digest, len(content), e.size)
	}
	return content, nil
}

func (m *Memory) Has(ctx context.Context, digest string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.RLock()
	_, ok := m.blobs[digest]
	m.mu.RUnlock()
	return ok, nil
}

func (m *Memory) Delete(ctx context.Context, digest string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.blobs, digest)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored blobs.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blobs)
}
