package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/signadot/docval/config"
	"github.com/signadot/docval/debug"
)

func docvalMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if count(cfg.J, cfg.Y, cfg.C) > 1 {
		return fmt.Errorf("%w: must specify at most one of -j[son] -y[aml] -c[bor]", cli.ErrUsage)
	}
	if err := cfg.loadFile(); err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// loadFile reads the config file named by -config, $DOCVAL_CONFIG or the
// user config directory.
func (cfg *MainConfig) loadFile() error {
	path := cfg.ConfigPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			theLog.Debug("no config directory", "error", err)
			cfg.File = config.Default()
			return nil
		}
		path = p
	}
	f, err := config.Load(path)
	if err != nil {
		return err
	}
	for _, name := range f.Debug {
		if err := debug.Enable(name); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	cfg.File = f
	return nil
}

func count(vs ...bool) int {
	ttl := 0
	for _, v := range vs {
		if v {
			ttl++
		}
	}
	return ttl
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}
