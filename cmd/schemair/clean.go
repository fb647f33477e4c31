package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/schemair"
	"github.com/signadot/schemair/encode"
	"github.com/signadot/schemair/gomap"
	"github.com/signadot/schemair/ir"
	"github.com/signadot/schemair/mergeop"
	"github.com/signadot/schemair/schema"
)

func clean(cfg *CleanConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Clean.Parse(cc, args)
	if err != nil {
		return err
	}
	ins, err := readInputs(cfg.MainConfig, cc.In, args)
	if err != nil {
		return err
	}
	keys := splitKeys(cfg.Keys)
	for i, in := range ins {
		cleaned, err := cleanDoc(in.doc, keys)
		if err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}
		if err := cfg.write(cc.Out, in.doc, cleaned); err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}
		if err := writeSep(cc.Out, i, len(ins)); err != nil {
			return err
		}
	}
	return nil
}

func cleanDoc(doc *gomap.Document, keys []string) (*gomap.Document, error) {
	reg, err := doc.Registry(schema.RegistryLogger(theLog))
	if err != nil {
		return nil, err
	}
	root, cleanReg, err := schemair.StripAll(doc.Schema, reg, keys...)
	if err != nil {
		return nil, err
	}
	res := &gomap.Document{Schema: root}
	for _, d := range doc.Definitions {
		s, _ := cleanReg.Lookup(d.Name)
		res.Definitions = append(res.Definitions, ir.Definition{Name: d.Name, Schema: s})
	}
	return res, nil
}

func (cfg *CleanConfig) write(w io.Writer, before, after *gomap.Document) error {
	if cfg.Patch {
		patch, err := mergeop.DocumentMergePatch(before, after)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", patch)
		return err
	}
	opts := cfg.encOpts(w)
	if len(after.Definitions) == 0 {
		return encode.Encode(after.Schema, w, opts...)
	}
	return encode.EncodeDocument(after.Schema, after.Definitions, w, opts...)
}
