package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/schemair/encode"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	ins, err := readInputs(cfg.MainConfig, cc.In, args)
	if err != nil {
		return err
	}
	opts := cfg.encOpts(cc.Out)
	for i, in := range ins {
		if len(in.doc.Definitions) == 0 {
			err = encode.Encode(in.doc.Schema, cc.Out, opts...)
		} else {
			err = encode.EncodeDocument(in.doc.Schema, in.doc.Definitions, cc.Out, opts...)
		}
		if err != nil {
			return fmt.Errorf("error encoding %s: %w", in, err)
		}
		if err := writeSep(cc.Out, i, len(ins)); err != nil {
			return err
		}
	}
	return nil
}
