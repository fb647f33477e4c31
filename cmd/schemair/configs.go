package main

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/schemair/encode"
	"github.com/signadot/schemair/gomap"
)

type MainConfig struct {
	J       bool `cli:"name=j aliases=json desc='output json'"`
	Color   bool `cli:"name=color desc='encode with color'"`
	Verbose bool `cli:"name=v desc='log debug records to stderr'"`
	Lax     bool `cli:"name=lax desc='ignore unknown fields in schema records'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) decOpts() []gomap.DecodeOption {
	return []gomap.DecodeOption{
		gomap.DecodeStrict(!cfg.Lax),
		gomap.DecodeLogger(theLog),
	}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{encode.EncodeJSON(cfg.J)}
	if cfg.J {
		return res
	}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
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
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type CheckConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q desc='print nothing on success'"`

	Check *cli.Command
}

type GatherConfig struct {
	*MainConfig
	Keys   string `cli:"name=keys desc='comma separated metadata keys to select'"`
	Where  string `cli:"name=where desc='expression a node must satisfy'"`
	NoDefs bool   `cli:"name=nodefs desc='skip definitions not reachable from a root'"`
	Refs   bool   `cli:"name=refs desc='print reference counts'"`

	Gather *cli.Command
}

type CleanConfig struct {
	*MainConfig
	Keys  string `cli:"name=keys desc='comma separated metadata keys to remove, all when empty'"`
	Patch bool   `cli:"name=patch desc='print the json merge patch cleaning applies'"`

	Clean *cli.Command
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

func splitKeys(s string) []string {
	var res []string
	for _, k := range strings.Split(s, ",") {
		k = strings.TrimSpace(k)
		if k != "" {
			res = append(res, k)
		}
	}
	return res
}
