package schemair

import (
	"context"
	"log/slog"
	"maps"

	"github.com/signadot/schemair/debug"
	"github.com/signadot/schemair/ir"
	"github.com/signadot/schemair/schema"
)

type gatherOpts struct {
	keys map[string]struct{}
	pred func(ir.Schema) (bool, error)
	log  *slog.Logger
	defs bool
}

type GatherOption func(*gatherOpts)

// WithMetadataKeys restricts the result to nodes carrying at least one of
// keys. With no keys every visited node is kept.
func WithMetadataKeys(keys ...string) GatherOption {
	return func(o *gatherOpts) {
		if len(keys) == 0 {
			o.keys = nil
			return
		}
		o.keys = make(map[string]struct{}, len(keys))
		for _, k := range keys {
			o.keys[k] = struct{}{}
		}
	}
}

// WithMetadataFilter is WithMetadataKeys taking the key set itself. A nil
// set disables the filter; an empty non-nil set keeps no node.
func WithMetadataFilter(keys map[string]struct{}) GatherOption {
	return func(o *gatherOpts) { o.keys = maps.Clone(keys) }
}

// WithPredicate adds a filter applied after the metadata key filter. An
// error from pred aborts the traversal. GatherAll calls pred from several
// goroutines.
func WithPredicate(pred func(ir.Schema) (bool, error)) GatherOption {
	return func(o *gatherOpts) { o.pred = pred }
}

func WithLogger(l *slog.Logger) GatherOption {
	return func(o *gatherOpts) { o.log = l }
}

// WithDefinitions controls whether every definition of the registry is
// walked after the root, reachable or not. It is on by default.
func WithDefinitions(v bool) GatherOption {
	return func(o *gatherOpts) { o.defs = v }
}

// RefInfo describes how a definition name was referenced during a walk.
type RefInfo struct {
	// Count is the number of reference nodes naming the definition that
	// the walk reached.
	Count int
	// Recursive is set when a reference was reached while its target was
	// still being walked.
	Recursive bool
}

type Result struct {
	// Schemas holds the kept nodes in depth-first pre-order, each at most
	// once.
	Schemas []ir.Schema
	Refs    map[string]*RefInfo
}

// GatherSchemasForCleaning returns the distinct nodes reachable from root,
// followed by those of every definition in defs, filtered to nodes
// carrying one of metadataKeys when any are given.
//
// The definitions embedded in root are bound on top of defs for the
// duration of the call; defs may be nil.
func GatherSchemasForCleaning(root ir.Schema, defs *schema.Registry, metadataKeys ...string) ([]ir.Schema, error) {
	res, err := Gather(root, defs, WithMetadataKeys(metadataKeys...))
	if err != nil {
		return nil, err
	}
	return res.Schemas, nil
}

// Gather walks root and then the definitions of defs depth first, entering
// each distinct node once. References are transparent: the walk continues
// at the resolved definition and the reference node is never kept.
//
// A reference without a binding aborts with a
// *schema.UnknownReferenceError and a malformed node with an
// *ir.WellFormednessError; no partial result is returned.
func Gather(root ir.Schema, defs *schema.Registry, opts ...GatherOption) (*Result, error) {
	o := &gatherOpts{defs: true}
	for _, f := range opts {
		f(o)
	}
	defs, err := withEmbedded(root, defs, o.log)
	if err != nil {
		return nil, err
	}
	g := &gatherer{
		opts:    o,
		defs:    defs,
		visited: map[ir.Schema]bool{},
		active:  map[ir.Schema]bool{},
		res:     &Result{Refs: map[string]*RefInfo{}},
	}
	if err := g.visit(root, nil); err != nil {
		return nil, err
	}
	if o.defs {
		for _, d := range defs.Definitions() {
			if err := g.visit(d.Schema, ir.Path{}.Field("definitions").Field(d.Name)); err != nil {
				return nil, err
			}
		}
	}
	if o.log != nil {
		o.log.LogAttrs(context.Background(), slog.LevelDebug, "gathered schemas",
			slog.Int("visited", len(g.visited)),
			slog.Int("kept", len(g.res.Schemas)),
			slog.Int("refs", len(g.res.Refs)))
	}
	return g.res, nil
}

// withEmbedded binds the definitions embedded in root on top of defs. A
// nil defs yields a registry of root's definitions alone.
func withEmbedded(root ir.Schema, defs *schema.Registry, log *slog.Logger) (*schema.Registry, error) {
	var ropts []schema.RegistryOption
	if log != nil {
		ropts = append(ropts, schema.RegistryLogger(log))
	}
	if defs == nil {
		return schema.Build(root, nil, ropts...)
	}
	return defs.Extend(root, ropts...)
}

type gatherer struct {
	opts    *gatherOpts
	defs    *schema.Registry
	visited map[ir.Schema]bool
	// nodes on the current walk stack
	active map[ir.Schema]bool
	res    *Result
}

func (g *gatherer) visit(s ir.Schema, p ir.Path) error {
	if err := ir.Check(s); err != nil {
		return err.(*ir.WellFormednessError).Within(p)
	}
	if ref, ok := s.(*ir.RecursiveRef); ok {
		return g.follow(ref, p)
	}
	if g.visited[s] {
		return nil
	}
	g.visited[s] = true
	keep, err := g.keep(s)
	if err != nil {
		return err
	}
	if debug.Gather() {
		debug.Logf("gather %s at %s keep=%t\n", s.Kind(), p, keep)
	}
	if keep {
		g.res.Schemas = append(g.res.Schemas, s)
	}
	g.active[s] = true
	for _, c := range ir.Children(s) {
		if err := g.visit(c.Schema, p.Join(c.Path)); err != nil {
			return err
		}
	}
	delete(g.active, s)
	return nil
}

func (g *gatherer) follow(ref *ir.RecursiveRef, p ir.Path) error {
	info := g.res.Refs[ref.Name]
	if info == nil {
		info = &RefInfo{}
		g.res.Refs[ref.Name] = info
	}
	info.Count++
	target, err := g.defs.ResolveAt(p, ref.Name)
	if err != nil {
		return err
	}
	if g.active[target] {
		info.Recursive = true
	}
	// a reference node is marked so that chains of names bound to
	// references terminate.
	if g.visited[ref] {
		return nil
	}
	g.visited[ref] = true
	g.active[ref] = true
	defer delete(g.active, ref)
	if _, ok := target.(*ir.RecursiveRef); ok && g.active[target] {
		return &ir.WellFormednessError{Path: p, Reason: "definition " + ref.Name + " resolves only to references"}
	}
	return g.visit(target, p)
}

func (g *gatherer) keep(s ir.Schema) (bool, error) {
	if g.opts.keys != nil && !ir.HasAnyMeta(s, g.opts.keys) {
		return false, nil
	}
	if g.opts.pred == nil {
		return true, nil
	}
	return g.opts.pred(s)
}
