package main

import (
	"context"
	"fmt"
	"io"

	"github.com/signadot/docval/blobstore"
	"github.com/signadot/docval/doc"

	"github.com/scott-cotton/cli"
)

func blobs(cfg *BlobsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Blobs.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	store := blobstore.NewMemory(blobstore.WithLogger(theLog))
	for _, file := range args {
		v, err := getObjFile(cc, file, cfg.parseOpts(file)...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		if err := listBlobs(context.Background(), cc.Out, store, v); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
	}
	theLog.Debug("blob store", "blobs", store.Len())
	return nil
}

// listBlobs prints one line per blob in v. Blobs carrying content are
// stored in s so that repeated content is reported once as stored.
func listBlobs(ctx context.Context, w io.Writer, s blobstore.Store, v doc.Value) error {
	for _, b := range blobstore.Blobs(v) {
		state := "ref"
		if b.HasContent() {
			have, err := s.Has(ctx, b.Digest())
			if err != nil {
				return err
			}
			state = "dup"
			if !have {
				if err := s.Put(ctx, b); err != nil {
					return err
				}
				state = "new"
			}
		}
		ct := b.ContentType()
		if ct == "" {
			ct = "-"
		}
		if _, err := fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", b.Digest(), b.Length(), ct, state); err != nil {
			return err
		}
	}
	return nil
}
