package main

import (
	"fmt"

	"github.com/signadot/docval/encode"

	"github.com/scott-cotton/cli"
)

func fmtDocs(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	opts := cfg.encOpts(cc.Out)
	for _, file := range args {
		v, err := getObjFile(cc, file, cfg.parseOpts(file)...)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		if err := encode.Encode(v, cc.Out, opts...); err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
	}
	return nil
}
