package main

import (
	"fmt"

	"github.com/signadot/docval/doc"

	"github.com/scott-cotton/cli"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: set requires a path and a value", cli.ErrUsage)
	}
	path, text := args[0], args[1]
	file, err := fileArg(args[2:])
	if err != nil {
		return err
	}
	v, err := getObjFile(cc, file, cfg.parseOpts(file)...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", file, err)
	}
	if err := setPath(v, path, text, cfg.String); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	return putObj(cfg.MainConfig, cc, v, file, cfg.InPlace)
}

// setPath stores text at path in v. Unless asString is set, text is read
// as JSON, and text that is not valid JSON is stored as a string.
func setPath(v doc.Value, path, text string, asString bool) error {
	f, err := fragment(v, path)
	if err != nil {
		return err
	}
	if asString {
		return f.SetString(text)
	}
	val, err := doc.ParseJSON([]byte(text))
	if err != nil {
		return f.SetString(text)
	}
	return f.SetValue(val)
}

func rm(cfg *RmConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Rm.Parse(cc, args)
	if err != nil {
		cfg.Rm.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 1 {
		return fmt.Errorf("%w: rm requires a path", cli.ErrUsage)
	}
	file, err := fileArg(args[1:])
	if err != nil {
		return err
	}
	v, err := getObjFile(cc, file, cfg.parseOpts(file)...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", file, err)
	}
	if err := rmPath(v, args[0]); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	return putObj(cfg.MainConfig, cc, v, file, cfg.InPlace)
}

func rmPath(v doc.Value, path string) error {
	f, err := fragment(v, path)
	if err != nil {
		return err
	}
	return f.Remove()
}
