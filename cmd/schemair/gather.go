package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/signadot/schemair"
	"github.com/signadot/schemair/eval"
	"github.com/signadot/schemair/ir"
	"github.com/signadot/schemair/schema"
)

func gather(cfg *GatherConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Gather.Parse(cc, args)
	if err != nil {
		return err
	}
	opts := []schemair.GatherOption{
		schemair.WithMetadataKeys(splitKeys(cfg.Keys)...),
		schemair.WithDefinitions(!cfg.NoDefs),
		schemair.WithLogger(theLog),
	}
	if cfg.Where != "" {
		pred, err := eval.Compile(cfg.Where)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		opts = append(opts, schemair.WithPredicate(pred.Match))
	}
	ins, err := readInputs(cfg.MainConfig, cc.In, args)
	if err != nil {
		return err
	}
	reg := schema.NewRegistry(schema.RegistryLogger(theLog))
	roots := make([]ir.Schema, len(ins))
	for i, in := range ins {
		if err := reg.Collect(in.doc.Schema, in.doc.Definitions); err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}
		roots[i] = in.doc.Schema
	}
	reg.Seal()
	results, err := schemair.GatherAll(context.Background(), roots, reg, opts...)
	if err != nil {
		return err
	}
	printed := map[ir.Schema]bool{}
	for i, res := range results {
		for _, s := range res.Schemas {
			if printed[s] {
				continue
			}
			printed[s] = true
			if err := writeNode(cc.Out, ins[i].name, s); err != nil {
				return err
			}
		}
	}
	if cfg.Refs {
		return writeRefs(cc.Out, results)
	}
	return nil
}

func writeNode(w io.Writer, src string, s ir.Schema) error {
	kind := s.Kind().String()
	if name := ir.Name(s); name != "" {
		kind += " " + name
	}
	_, err := fmt.Fprintf(w, "%s\t%s\t%s\n", src, kind, strings.Join(ir.MetaKeys(s), ","))
	return err
}

func writeRefs(w io.Writer, results []*schemair.Result) error {
	total := map[string]*schemair.RefInfo{}
	for _, res := range results {
		for name, info := range res.Refs {
			t := total[name]
			if t == nil {
				t = &schemair.RefInfo{}
				total[name] = t
			}
			t.Count += info.Count
			t.Recursive = t.Recursive || info.Recursive
		}
	}
	for _, name := range slices.Sorted(maps.Keys(total)) {
		t := total[name]
		if _, err := fmt.Fprintf(w, "ref\t%s\tcount=%d\trecursive=%t\n", name, t.Count, t.Recursive); err != nil {
			return err
		}
	}
	return nil
}
