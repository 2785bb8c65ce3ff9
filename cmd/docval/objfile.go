package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/signadot/docval/doc"
	"github.com/signadot/docval/encode"
	"github.com/signadot/docval/parse"

	"github.com/scott-cotton/cli"
)

func getObjFile(cc *cli.Context, path string, opts ...parse.ParseOption) (doc.Value, error) {
	var (
		r io.Reader
	)
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return doc.Value{}, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}

	d, err := io.ReadAll(r)
	if err != nil {
		return doc.Value{}, fmt.Errorf("error reading %q: %w", path, err)
	}
	return parse.Parse(d, opts...)
}

// getDictFile reads a document whose top level must be a dictionary.
func getDictFile(cc *cli.Context, path string, opts ...parse.ParseOption) (*doc.MutableDictionary, error) {
	v, err := getObjFile(cc, path, opts...)
	if err != nil {
		return nil, err
	}
	d, ok := v.Native().(*doc.MutableDictionary)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", parse.ErrTopLevel, v.Type())
	}
	return d, nil
}

// putObj writes v to path when inPlace is set and path names a file, and
// to cc.Out otherwise.
func putObj(cfg *MainConfig, cc *cli.Context, v doc.Value, path string, inPlace bool) error {
	if !inPlace || path == "-" {
		if err := encode.Encode(v, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
		return nil
	}
	buf := bytes.NewBuffer(nil)
	opts := []encode.EncodeOption{
		encode.EncodeFormat(cfg.inFormat(path)),
		encode.EncodeWire(cfg.WireOut),
		encode.EncodeIndent(cfg.file().Indent),
	}
	if err := encode.Encode(v, buf, opts...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// fileArg returns the single optional file argument, defaulting to stdin.
func fileArg(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "-", nil
	case 1:
		return args[0], nil
	}
	return "", fmt.Errorf("%w: expected at most one file, got %v", cli.ErrUsage, args)
}
