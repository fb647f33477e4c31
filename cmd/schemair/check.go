package main

import (
	"errors"
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/schemair"
	"github.com/signadot/schemair/schema"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	ins, err := readInputs(cfg.MainConfig, cc.In, args)
	if err != nil {
		return err
	}
	var errs []error
	for _, in := range ins {
		if err := checkInput(in); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", in, err))
			continue
		}
		if !cfg.Quiet {
			fmt.Fprintf(cc.Out, "%s: ok\n", in)
		}
	}
	return errors.Join(errs...)
}

// checkInput reports every unbound reference of a document, then walks it
// as a cleaning pass would.
func checkInput(in *input) error {
	reg, err := in.doc.Registry(schema.RegistryLogger(theLog))
	if err != nil {
		return err
	}
	var errs []error
	for _, m := range reg.Missing(in.doc.Schema) {
		errs = append(errs, &schema.UnknownReferenceError{Name: m.Name, Path: m.Path})
	}
	if len(errs) != 0 {
		return errors.Join(errs...)
	}
	_, err = schemair.Gather(in.doc.Schema, reg, schemair.WithLogger(theLog))
	return err
}
