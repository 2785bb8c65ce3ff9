package main

import (
	"errors"
	"fmt"

	"github.com/signadot/docval/doc"
	"github.com/signadot/docval/encode"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a path argument", cli.ErrUsage)
	}
	path := args[0]
	args = args[1:]
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, file := range args {
		v, err := getObjFile(cc, file, cfg.parseOpts(file)...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		res, err := lookup(v, path)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		if cfg.Type {
			fmt.Fprintln(cc.Out, res.Type())
			continue
		}
		if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
	}
	return nil
}

var errNotFound = errors.New("not found")

// fragment binds a kinded path such as a.b[0] to a container document.
func fragment(v doc.Value, path string) (*doc.Fragment, error) {
	switch x := v.Native().(type) {
	case *doc.MutableDictionary:
		return x.Path(path), nil
	case *doc.MutableArray:
		return x.Path(path), nil
	}
	return nil, fmt.Errorf("%w: %s has no paths", doc.ErrNotContainer, v.Type())
}

// lookup resolves path against v. The paths "" and "." name v itself.
func lookup(v doc.Value, path string) (doc.Value, error) {
	if path == "" || path == "." {
		return v, nil
	}
	f, err := fragment(v, path)
	if err != nil {
		return doc.Value{}, err
	}
	if !f.Exists() {
		return doc.Value{}, fmt.Errorf("%w: %s", errNotFound, path)
	}
	return f.Value(), nil
}
