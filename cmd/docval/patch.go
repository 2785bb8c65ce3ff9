package main

import (
	"fmt"
	"os"

	"github.com/signadot/docval/patch"

	"github.com/scott-cotton/cli"
)

func patchDoc(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 1 {
		return fmt.Errorf("%w: patch requires a patch and optionally a file to which to apply it", cli.ErrUsage)
	}
	var p []byte
	if cfg.String {
		p = []byte(args[0])
	} else {
		p, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("error reading patch: %w", err)
		}
	}
	file, err := fileArg(args[1:])
	if err != nil {
		return err
	}
	target, err := getDictFile(cc, file, cfg.parseOpts(file)...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", file, err)
	}
	apply := patch.Apply
	if cfg.Merge {
		apply = patch.Merge
	}
	if err := apply(target, p); err != nil {
		return fmt.Errorf("error patching %s: %w", file, err)
	}
	return putObj(cfg.MainConfig, cc, target.AsValue(), file, cfg.InPlace)
}
