package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y, cbor/c",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y, cbor/c",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "docval").
		WithSynopsis("docval [opts] command [opts]").
		WithDescription("docval reads, edits, compares and converts documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return docvalMain(cfg, cc, args)
		}).
		WithSubs(
			FmtCommand(cfg),
			GetCommand(cfg),
			SetCommand(cfg),
			RmCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg),
			HashCommand(cfg),
			BlobsCommand(cfg),
			ConfigCommand(cfg))
}

func FmtCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FmtConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Fmt, "fmt").
		WithAliases("f", "view").
		WithSynopsis("fmt [files]").
		WithDescription("reformat documents, converting between formats with -O").
		WithRun(func(cc *cli.Context, args []string) error {
			return fmtDocs(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("get").
		WithAliases("g").
		WithOpts(opts...).
		WithSynopsis("get [-t] <path> [files]").
		WithDescription("get the value at a path such as a.b[0]").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("set").
		WithAliases("s").
		WithOpts(opts...).
		WithSynopsis("set [-w] [-s] <path> <value> [file]").
		WithDescription("set the value at a path; the value is json unless -s is given").
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
	cfg.Set = cmd
	return cmd
}

func RmCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RmConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("rm").
		WithOpts(opts...).
		WithSynopsis("rm [-w] <path> [file]").
		WithDescription("remove the entry at a path").
		WithRun(func(cc *cli.Context, args []string) error {
			return rm(cfg, cc, args)
		})
	cfg.Rm = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithOpts(opts...).
		WithSynopsis("diff [-r] [-p] a b").
		WithDescription("diff documents, exiting 1 when they differ").
		WithRun(func(cc *cli.Context, args []string) error {
			return diffDocs(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("patch").
		WithAliases("p", "pa").
		WithSynopsis("patch [-m] [-s] [-w] <patch> [file]").
		WithDescription("apply a json patch, or a json merge patch with -m").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patchDoc(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}

func HashCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &HashConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Hash, "hash").
		WithSynopsis("hash [-short] [files]").
		WithDescription("print the structural digest of documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return hash(cfg, cc, args)
		})
}

func BlobsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &BlobsConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Blobs, "blobs").
		WithSynopsis("blobs [files]").
		WithDescription("list the blobs in documents: digest, length, content type and state").
		WithRun(func(cc *cli.Context, args []string) error {
			return blobs(cfg, cc, args)
		})
}

func ConfigCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ConfigConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Config, "config").
		WithSynopsis("config").
		WithDescription("show the effective config file settings").
		WithRun(func(cc *cli.Context, args []string) error {
			return showConfig(cfg, cc, args)
		})
}
