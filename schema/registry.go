package schema

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/signadot/schemair/debug"
	"github.com/signadot/schemair/encode"
	"github.com/signadot/schemair/ir"
	"github.com/signadot/schemair/libdiff"
)

// Registry binds definition names to schemas.
//
// A registry is written first and read afterwards. Registration is not
// safe for concurrent use; once Seal has been called the registry is
// read-only and any number of goroutines may resolve names concurrently.
type Registry struct {
	defs   map[string]ir.Schema
	names  []string
	sealed bool
	log    *slog.Logger
}

type RegistryOption func(*Registry)

// RegistryLogger sets the logger receiving debug records for each
// registration.
func RegistryLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) { r.log = l }
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{defs: map[string]ir.Schema{}}
	for _, f := range opts {
		f(r)
	}
	return r
}

// Register binds name to s. Binding a name again to a structurally equal
// schema is a no-op, so shared subgraphs may be registered more than once.
func (r *Registry) Register(name string, s ir.Schema) error {
	return r.RegisterAt(nil, name, s)
}

// RegisterAt is like Register; p locates the binding in its source for
// error reporting.
func (r *Registry) RegisterAt(p ir.Path, name string, s ir.Schema) error {
	if r.sealed {
		return fmt.Errorf("%w: cannot register %q", ErrSealed, name)
	}
	if err := checkName(name); err != nil {
		return &ir.WellFormednessError{Path: p, Reason: err.Error()}
	}
	if s == nil {
		return &ir.WellFormednessError{Path: p, Reason: fmt.Sprintf("definition %q has no schema", name)}
	}
	if old, present := r.defs[name]; present {
		if ir.Equal(old, s) {
			return nil
		}
		return &DuplicateDefinitionError{
			Name: name,
			Path: p,
			Diff: libdiff.Lines(encode.Text(old), encode.Text(s)),
		}
	}
	r.defs[name] = s
	r.names = append(r.names, name)
	if debug.Registry() {
		debug.Logf("registry: %s -> %s at %s\n", name, s.Kind(), p)
	}
	if r.log != nil {
		r.log.LogAttrs(context.Background(), slog.LevelDebug, "registered definition",
			slog.String("name", name),
			slog.String("kind", s.Kind().String()),
			slog.String("path", p.String()))
	}
	return nil
}

// Resolve returns the schema bound to name.
func (r *Registry) Resolve(name string) (ir.Schema, error) {
	return r.ResolveAt(nil, name)
}

// ResolveAt is like Resolve; p locates the reference being resolved and is
// reported in an *UnknownReferenceError.
func (r *Registry) ResolveAt(p ir.Path, name string) (ir.Schema, error) {
	if r != nil {
		if s, ok := r.defs[name]; ok {
			return s, nil
		}
	}
	return nil, &UnknownReferenceError{Name: name, Path: p}
}

// Lookup returns the schema bound to name, if any.
func (r *Registry) Lookup(name string) (ir.Schema, bool) {
	if r == nil {
		return nil, false
	}
	s, ok := r.defs[name]
	return s, ok
}

// Names returns the bound names in registration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.names)
}

// Definitions returns the bindings in registration order.
func (r *Registry) Definitions() []ir.Definition {
	if r == nil {
		return nil
	}
	res := make([]ir.Definition, len(r.names))
	for i, name := range r.names {
		res[i] = ir.Definition{Name: name, Schema: r.defs[name]}
	}
	return res
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Seal ends the write phase. Registering afterwards fails with ErrSealed.
func (r *Registry) Seal() {
	r.sealed = true
}

func (r *Registry) Sealed() bool {
	return r != nil && r.sealed
}

// DefinitionsFromMap orders the entries of m by name.
func DefinitionsFromMap(m map[string]ir.Schema) []ir.Definition {
	res := make([]ir.Definition, 0, len(m))
	for _, name := range slices.Sorted(maps.Keys(m)) {
		res = append(res, ir.Definition{Name: name, Schema: m[name]})
	}
	return res
}
