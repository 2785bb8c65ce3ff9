package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func hash(cfg *HashConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Hash.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, file := range args {
		v, err := getObjFile(cc, file, cfg.parseOpts(file)...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		sum := v.Digest()
		if cfg.Short {
			sum = fmt.Sprintf("%016x", v.Hash())
		}
		fmt.Fprintf(cc.Out, "%s  %s\n", sum, file)
	}
	return nil
}
