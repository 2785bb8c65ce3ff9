package main

import (
	"fmt"

	"github.com/signadot/docval/config"
	"gopkg.in/yaml.v3"

	"github.com/scott-cotton/cli"
)

func showConfig(cfg *ConfigConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Config.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: config takes no arguments", cli.ErrUsage)
	}
	path := cfg.ConfigPath
	if path == "" {
		path, err = config.Path()
		if err != nil {
			return err
		}
	}
	fmt.Fprintf(cc.Out, "# %s\n", path)
	d, err := yaml.Marshal(cfg.file())
	if err != nil {
		return err
	}
	_, err = cc.Out.Write(d)
	return err
}
