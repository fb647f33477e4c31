package schemair

import (
	"maps"

	"github.com/signadot/schemair/ir"
	"github.com/signadot/schemair/schema"
)

// Strip returns a copy of root with the metadata keys removed from every
// node. With no keys all metadata is removed. See StripAll.
func Strip(root ir.Schema, defs *schema.Registry, keys ...string) (ir.Schema, error) {
	res, _, err := StripAll(root, defs, keys...)
	return res, err
}

// StripAll is the cleaning pass: it gathers the nodes of root and defs
// carrying any of keys, then copies root and every definition of defs with
// those keys removed. The copies share structure exactly as the inputs do,
// one copy per distinct node, and the returned registry binds each name to
// the copy of its definition. Neither root nor defs is modified.
//
// The definitions embedded in root are bound on top of defs, as with
// Gather, and appear in the returned registry. References are stripped
// like any other node.
func StripAll(root ir.Schema, defs *schema.Registry, keys ...string) (ir.Schema, *schema.Registry, error) {
	defs, err := withEmbedded(root, defs, nil)
	if err != nil {
		return nil, nil, err
	}
	gathered, err := GatherSchemasForCleaning(root, defs, keys...)
	if err != nil {
		return nil, nil, err
	}
	st := &stripper{
		memo:  make(map[ir.Schema]ir.Schema),
		dirty: make(map[ir.Schema]bool, len(gathered)),
		keys:  keys,
	}
	for _, s := range gathered {
		st.dirty[s] = true
	}
	out := st.copy(root)
	reg := schema.NewRegistry()
	for _, d := range defs.Definitions() {
		if err := reg.Register(d.Name, st.copy(d.Schema)); err != nil {
			return nil, nil, err
		}
	}
	reg.Seal()
	return out, reg, nil
}

type stripper struct {
	memo  map[ir.Schema]ir.Schema
	dirty map[ir.Schema]bool
	keys  []string
}

func (st *stripper) meta(s ir.Schema) ir.Metadata {
	md := s.Meta()
	if len(md) == 0 {
		return nil
	}
	if !st.dirty[s] && !st.refMatches(s) {
		return maps.Clone(md)
	}
	if len(st.keys) == 0 {
		return nil
	}
	res := maps.Clone(md)
	for _, k := range st.keys {
		delete(res, k)
	}
	if len(res) == 0 {
		return nil
	}
	return res
}

// refMatches reports whether s is a reference carrying one of the keys.
// References are never gathered, so their metadata is matched here.
func (st *stripper) refMatches(s ir.Schema) bool {
	if _, ok := s.(*ir.RecursiveRef); !ok {
		return false
	}
	if len(st.keys) == 0 {
		return true
	}
	md := s.Meta()
	for _, k := range st.keys {
		if _, ok := md[k]; ok {
			return true
		}
	}
	return false
}

func (st *stripper) copy(s ir.Schema) ir.Schema {
	if s == nil {
		return nil
	}
	if c, ok := st.memo[s]; ok {
		return c
	}
	md := st.meta(s)
	switch x := s.(type) {
	case *ir.AnySchema:
		n := *x
		n.Metadata = md
		return st.put(s, &n)
	case *ir.BoolSchema:
		n := *x
		n.Metadata = md
		return st.put(s, &n)
	case *ir.NoneSchema:
		n := *x
		n.Metadata = md
		return st.put(s, &n)
	case *ir.LiteralSchema:
		n := *x
		n.Metadata = md
		return st.put(s, &n)
	case *ir.IntSchema:
		n := *x
		n.Metadata = md
		return st.put(s, &n)
	case *ir.FloatSchema:
		n := *x
		n.Metadata = md
		return st.put(s, &n)
	case *ir.StrSchema:
		n := *x
		n.Metadata = md
		return st.put(s, &n)
	case *ir.RecursiveRef:
		n := *x
		n.Metadata = md
		return st.put(s, &n)
	case *ir.ListSchema:
		n := *x
		n.Metadata = md
		st.put(s, &n)
		n.Items = st.copy(x.Items)
		return &n
	case *ir.SetSchema:
		n := *x
		n.Metadata = md
		st.put(s, &n)
		n.Items = st.copy(x.Items)
		return &n
	case *ir.DictSchema:
		n := *x
		n.Metadata = md
		st.put(s, &n)
		n.Keys = st.copy(x.Keys)
		n.Values = st.copy(x.Values)
		return &n
	case *ir.OptionalSchema:
		n := *x
		n.Metadata = md
		st.put(s, &n)
		n.Schema = st.copy(x.Schema)
		return &n
	case *ir.UnionSchema:
		n := *x
		n.Metadata = md
		st.put(s, &n)
		n.Choices = make([]ir.Schema, len(x.Choices))
		for i, c := range x.Choices {
			n.Choices[i] = st.copy(c)
		}
		return &n
	case *ir.ModelSchema:
		n := *x
		n.Metadata = md
		st.put(s, &n)
		n.Fields = make([]ir.Field, len(x.Fields))
		for i, f := range x.Fields {
			n.Fields[i] = ir.Field{Name: f.Name, Schema: st.copy(f.Schema)}
		}
		n.Extra = st.copy(x.Extra)
		return &n
	case *ir.ModelClassSchema:
		n := *x
		n.Metadata = md
		st.put(s, &n)
		n.Schema = st.copy(x.Schema)
		return &n
	case *ir.FunctionSchema:
		n := *x
		n.Metadata = md
		st.put(s, &n)
		n.Schema = st.copy(x.Schema)
		return &n
	case *ir.RecursiveContainer:
		n := *x
		n.Metadata = md
		st.put(s, &n)
		n.Schema = st.copy(x.Schema)
		return &n
	case *ir.DefinitionsSchema:
		n := *x
		n.Metadata = md
		st.put(s, &n)
		n.Schema = st.copy(x.Schema)
		n.Definitions = make([]ir.Definition, len(x.Definitions))
		for i, d := range x.Definitions {
			n.Definitions[i] = ir.Definition{Name: d.Name, Schema: st.copy(d.Schema)}
		}
		return &n
	}
	// unreachable for gathered graphs, which are checked
	return s
}

func (st *stripper) put(orig, c ir.Schema) ir.Schema {
	st.memo[orig] = c
	return c
}
