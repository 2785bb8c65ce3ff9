package blobstore

import (
	"context"
	"fmt"

	"github.com/signadot/docval/doc"
)

// InstallAll stores the content of every blob in the tree below d that
// carries content. It returns the number of blobs stored.
func InstallAll(ctx context.Context, s Store, d *doc.MutableDictionary) (int, error) {
	n := 0
	err := walkBlobs(d.AsValue(), func(b *doc.Blob, _ func(*doc.Blob) error) error {
		if !b.HasContent() {
			return nil
		}
		if err := s.Put(ctx, b); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

// LoadAll replaces every blob reference in the tree below d with a blob
// carrying the content held by s. It returns the number of blobs loaded.
func LoadAll(ctx context.Context, s Store, d *doc.MutableDictionary) (int, error) {
	n := 0
	err := walkBlobs(d.AsValue(), func(b *doc.Blob, replace func(*doc.Blob) error) error {
		if b.HasContent() {
			return nil
		}
		content, err := s.Get(ctx, b.Digest())
		if err != nil {
			return err
		}
		if err := replace(b.WithContent(content)); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

type blobFunc func(b *doc.Blob, replace func(*doc.Blob) error) error

func walkBlobs(v doc.Value, f blobFunc) error {
	switch x := v.Native().(type) {
	case *doc.MutableDictionary:
		for k, elt := range x.All() {
			if b := elt.Blob(); b != nil {
				replace := func(nb *doc.Blob) error { return x.SetBlob(k, nb) }
				if err := f(b, replace); err != nil {
					return fmt.Errorf("%s: %w", k, err)
				}
				continue
			}
			if err := walkBlobs(elt, f); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
		}
	case *doc.MutableArray:
		for i, elt := range x.All() {
			if b := elt.Blob(); b != nil {
				replace := func(nb *doc.Blob) error { return x.SetBlob(i, nb) }
				if err := f(b, replace); err != nil {
					return fmt.Errorf("[%d]: %w", i, err)
				}
				continue
			}
			if err := walkBlobs(elt, f); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
	}
	return nil
}

// Blobs returns every blob in the tree below v in document order.
func Blobs(v doc.Value) []*doc.Blob {
	var res []*doc.Blob
	if b := v.Blob(); b != nil {
		return append(res, b)
	}
	_ = walkBlobs(v, func(b *doc.Blob, _ func(*doc.Blob) error) error {
		res = append(res, b)
		return nil
	})
	return res
}
