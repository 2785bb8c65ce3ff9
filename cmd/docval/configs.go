package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/docval/config"
	"github.com/signadot/docval/encode"
	"github.com/signadot/docval/format"
	"github.com/signadot/docval/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color      bool   `cli:"name=color desc='encode with color'"`
	WireOut    bool   `cli:"name=wire desc='output compact json'"`
	Comments   bool   `cli:"name=comments desc='allow comments in json input'"`
	ConfigPath string `cli:"name=config desc='config file (default $DOCVAL_CONFIG or user config dir)'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`
	C bool `cli:"name=c aliases=cbor desc='do i/o in cbor'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	File *config.Config

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) file() *config.Config {
	if cfg.File == nil {
		return config.Default()
	}
	return cfg.File
}

// flagFormat returns the format selected by -j, -y or -c.
func (cfg *MainConfig) flagFormat() (format.Format, bool) {
	switch {
	case cfg.Y:
		return format.YAMLFormat, true
	case cfg.C:
		return format.CBORFormat, true
	case cfg.J:
		return format.JSONFormat, true
	}
	return 0, false
}

// inFormat picks the input format for path: -I, then -j/-y/-c, then the
// file extension, then the config file.
func (cfg *MainConfig) inFormat(path string) format.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	if f, ok := cfg.flagFormat(); ok {
		return f
	}
	if f, ok := format.FromPath(path); ok {
		return f
	}
	return cfg.file().Format
}

func (cfg *MainConfig) parseOpts(path string) []parse.ParseOption {
	return []parse.ParseOption{
		parse.ParseFormat(cfg.inFormat(path)),
		parse.ParseComments(cfg.Comments || cfg.file().Comments),
	}
}

func (cfg *MainConfig) outFormat() format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	if f, ok := cfg.flagFormat(); ok {
		return f
	}
	return cfg.file().Format
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.EncodeWire(cfg.WireOut),
		encode.EncodeIndent(cfg.file().Indent),
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	if c := cfg.file().Color; c != nil {
		if *c {
			res = append(res, encode.EncodeColors(encode.NewColors()))
		}
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type FmtConfig struct {
	*MainConfig
	Fmt *cli.Command
}

type GetConfig struct {
	*MainConfig
	Type bool `cli:"name=t desc='print the value type instead of the value'"`
	Get  *cli.Command
}

type SetConfig struct {
	*MainConfig
	InPlace bool `cli:"name=w desc='write the result back to the file'"`
	String  bool `cli:"name=s desc='set the argument as a string instead of json'"`
	Set     *cli.Command
}

type RmConfig struct {
	*MainConfig
	InPlace bool `cli:"name=w desc='write the result back to the file'"`
	Rm      *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	Patch   bool `cli:"name=p desc='print the diff as a json patch'"`
	Diff    *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge   bool `cli:"name=m desc='patch is a json merge patch'"`
	String  bool `cli:"name=s desc='patch arg as string'"`
	InPlace bool `cli:"name=w desc='write the result back to the file'"`
	Patch   *cli.Command
}

type HashConfig struct {
	*MainConfig
	Short bool `cli:"name=short desc='print the 64 bit hash instead of the digest'"`
	Hash  *cli.Command
}

type BlobsConfig struct {
	*MainConfig
	Blobs *cli.Command
}

type ConfigConfig struct {
	*MainConfig
	Config *cli.Command
}
