package schema

import (
	"fmt"

	"github.com/signadot/schemair/ir"
)

// Build validates root and defs and returns a sealed registry holding
// defs, in order, followed by every named definition embedded in root or
// in defs: the entries of definitions nodes and the schemas bound by
// recursive containers.
//
// Nothing is resolved while building, so references to names bound later
// in defs or deeper in root are legal.
func Build(root ir.Schema, defs []ir.Definition, opts ...RegistryOption) (*Registry, error) {
	r := NewRegistry(opts...)
	if err := r.Collect(root, defs); err != nil {
		return nil, err
	}
	r.Seal()
	return r, nil
}

// Collect is the unsealed form of Build: it adds defs and the definitions
// embedded in root and defs to r.
func (r *Registry) Collect(root ir.Schema, defs []ir.Definition) error {
	defsPath := ir.Path{}.Field("definitions")
	if root != nil {
		if err := ir.Validate(root); err != nil {
			return err
		}
	}
	for _, d := range defs {
		if d.Schema == nil {
			return &ir.WellFormednessError{Path: defsPath.Field(d.Name), Reason: "missing schema"}
		}
		if err := ir.Validate(d.Schema); err != nil {
			if wfe, ok := err.(*ir.WellFormednessError); ok {
				return wfe.Within(defsPath.Field(d.Name))
			}
			return err
		}
		if err := r.RegisterAt(defsPath.Field(d.Name), d.Name, d.Schema); err != nil {
			return err
		}
	}
	seen := map[ir.Schema]bool{}
	if root != nil {
		if err := r.collect(root, nil, seen); err != nil {
			return err
		}
	}
	for _, d := range defs {
		if err := r.collect(d.Schema, defsPath.Field(d.Name), seen); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) collect(s ir.Schema, p ir.Path, seen map[ir.Schema]bool) error {
	if seen[s] {
		return nil
	}
	seen[s] = true
	switch x := s.(type) {
	case *ir.DefinitionsSchema:
		for _, d := range x.Definitions {
			if err := r.RegisterAt(p.Field("definitions").Field(d.Name), d.Name, d.Schema); err != nil {
				return fmt.Errorf("could not register embedded definition: %w", err)
			}
		}
	case *ir.RecursiveContainer:
		if err := r.RegisterAt(p, x.Name, x.Schema); err != nil {
			return fmt.Errorf("could not register recursive container: %w", err)
		}
	}
	for _, c := range ir.Children(s) {
		if err := r.collect(c.Schema, p.Join(c.Path), seen); err != nil {
			return err
		}
	}
	return nil
}

// Extend returns a sealed registry holding the bindings of r followed by
// the definitions embedded in root. r itself is left untouched, so a
// sealed registry shared between goroutines may be extended per root.
func (r *Registry) Extend(root ir.Schema, opts ...RegistryOption) (*Registry, error) {
	res := NewRegistry(opts...)
	for _, d := range r.Definitions() {
		res.defs[d.Name] = d.Schema
		res.names = append(res.names, d.Name)
	}
	if err := res.Collect(root, nil); err != nil {
		return nil, err
	}
	res.Seal()
	return res, nil
}
