package main

import (
	"fmt"
	"io"

	"github.com/signadot/docval/diff"
	"github.com/signadot/docval/doc"

	"github.com/scott-cotton/cli"
)

func diffDocs(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	v1, err := getObjFile(cc, args[0], cfg.parseOpts(args[0])...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	v2, err := getObjFile(cc, args[1], cfg.parseOpts(args[1])...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	if cfg.Reverse {
		v1, v2 = v2, v1
	}
	differs, err := writeDiff(cc.Out, v1, v2, cfg.Patch)
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// writeDiff prints the changes from v1 to v2, one per line or as a JSON
// patch, and reports whether there were any.
func writeDiff(w io.Writer, v1, v2 doc.Value, asPatch bool) (bool, error) {
	changes := diff.Values(v1, v2)
	if asPatch {
		_, err := fmt.Fprintln(w, diff.JSONPatch(changes))
		return len(changes) > 0, err
	}
	for _, c := range changes {
		if _, err := fmt.Fprintln(w, c); err != nil {
			return true, err
		}
	}
	return len(changes) > 0, nil
}
