// Package encode renders schemas as records and writes them as YAML or
// JSON.
//
// A record is the loosely typed form of a schema: an ordered mapping with a
// "type" field holding the kind tag, the kind's fields, and an optional
// "metadata" mapping. Package gomap decodes the same form.
package encode

import (
	"fmt"
	"io"
	"maps"
	"reflect"
	"runtime"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/signadot/schemair/ir"
)

type encOpts struct {
	json      bool
	colors    *Colors
	shorthand bool
}

type EncodeOption func(*encOpts)

// EncodeJSON selects JSON output instead of YAML.
func EncodeJSON(v bool) EncodeOption { return func(o *encOpts) { o.json = v } }

// EncodeColors colors YAML output. It has no effect on JSON output.
func EncodeColors(c *Colors) EncodeOption { return func(o *encOpts) { o.colors = c } }

// EncodeShorthand controls whether unconstrained leaves without metadata
// are written as a bare type name. It defaults to true.
func EncodeShorthand(v bool) EncodeOption { return func(o *encOpts) { o.shorthand = v } }

func newOpts(opts []EncodeOption) *encOpts {
	o := &encOpts{shorthand: true}
	for _, f := range opts {
		f(o)
	}
	return o
}

// Encode writes s to w.
func Encode(s ir.Schema, w io.Writer, opts ...EncodeOption) error {
	o := newOpts(opts)
	return o.write(w, o.record(s))
}

// EncodeDocument writes a document holding root under "schema" and, if
// there are any, defs under "definitions".
func EncodeDocument(root ir.Schema, defs []ir.Definition, w io.Writer, opts ...EncodeOption) error {
	o := newOpts(opts)
	doc := yaml.MapSlice{{Key: "schema", Value: o.record(root)}}
	if len(defs) != 0 {
		doc = append(doc, yaml.MapItem{Key: "definitions", Value: o.definitions(defs)})
	}
	return o.write(w, doc)
}

// ToRecord returns the record form of s.
func ToRecord(s ir.Schema, opts ...EncodeOption) any {
	return newOpts(opts).record(s)
}

// Text renders s as uncolored YAML without shorthand, for messages and
// diffs.
func Text(s ir.Schema) string {
	o := &encOpts{}
	d, err := yaml.Marshal(o.record(s))
	if err != nil {
		return fmt.Sprintf("<%s: %v>", s.Kind(), err)
	}
	return string(d)
}

func (o *encOpts) write(w io.Writer, rec any) error {
	var yOpts []yaml.EncodeOption
	if o.json {
		yOpts = append(yOpts, yaml.JSON())
	}
	d, err := yaml.MarshalWithOptions(rec, yOpts...)
	if err != nil {
		return fmt.Errorf("could not encode schema: %w", err)
	}
	if o.colors != nil && !o.json {
		d = []byte(o.colors.Colorize(string(d)))
	}
	_, err = w.Write(d)
	return err
}

func (o *encOpts) record(s ir.Schema) any {
	if s == nil {
		return nil
	}
	if o.shorthand && s.Kind().HasShorthand() && ir.Equal(s, ir.MustLeaf(s.Kind().String())) {
		return s.Kind().String()
	}
	rec := yaml.MapSlice{{Key: "type", Value: s.Kind().String()}}
	add := func(k string, v any) {
		rec = append(rec, yaml.MapItem{Key: k, Value: v})
	}
	addBool := func(k string, v bool) {
		if v {
			add(k, true)
		}
	}
	addSchema := func(k string, c ir.Schema) {
		if c != nil {
			add(k, o.record(c))
		}
	}
	switch x := s.(type) {
	case *ir.AnySchema, *ir.NoneSchema:
	case *ir.BoolSchema:
		addBool("strict", x.Strict)
	case *ir.LiteralSchema:
		add("expected", x.Expected)
	case *ir.IntSchema:
		addPtr(add, "gt", x.Gt)
		addPtr(add, "ge", x.Ge)
		addPtr(add, "lt", x.Lt)
		addPtr(add, "le", x.Le)
		addPtr(add, "multiple_of", x.MultipleOf)
		addBool("strict", x.Strict)
	case *ir.FloatSchema:
		addPtr(add, "gt", x.Gt)
		addPtr(add, "ge", x.Ge)
		addPtr(add, "lt", x.Lt)
		addPtr(add, "le", x.Le)
		addPtr(add, "multiple_of", x.MultipleOf)
		addBool("allow_inf_nan", x.AllowInfNaN)
		addBool("strict", x.Strict)
	case *ir.StrSchema:
		if x.Pattern != "" {
			add("pattern", x.Pattern)
		}
		addPtr(add, "min_length", x.MinLength)
		addPtr(add, "max_length", x.MaxLength)
		addBool("to_lower", x.ToLower)
		addBool("to_upper", x.ToUpper)
		addBool("strip_whitespace", x.StripWhitespace)
		addBool("strict", x.Strict)
	case *ir.ListSchema:
		addSchema("items", x.Items)
		addPtr(add, "min_length", x.MinLength)
		addPtr(add, "max_length", x.MaxLength)
		addBool("strict", x.Strict)
	case *ir.SetSchema:
		addSchema("items", x.Items)
		addPtr(add, "min_length", x.MinLength)
		addPtr(add, "max_length", x.MaxLength)
		addBool("strict", x.Strict)
	case *ir.DictSchema:
		addSchema("keys", x.Keys)
		addSchema("values", x.Values)
		addPtr(add, "min_length", x.MinLength)
		addPtr(add, "max_length", x.MaxLength)
		addBool("strict", x.Strict)
	case *ir.OptionalSchema:
		addSchema("schema", x.Schema)
		addBool("strict", x.Strict)
	case *ir.UnionSchema:
		choices := make([]any, len(x.Choices))
		for i, c := range x.Choices {
			choices[i] = o.record(c)
		}
		add("choices", choices)
		if x.Default != nil {
			add("default", opaque(x.Default))
		}
		addBool("strict", x.Strict)
	case *ir.ModelSchema:
		if x.Name != "" {
			add("name", x.Name)
		}
		fields := make(yaml.MapSlice, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = yaml.MapItem{Key: f.Name, Value: o.record(f.Schema)}
		}
		add("fields", fields)
		addSchema("extra", x.Extra)
		if len(x.Config) != 0 {
			add("config", x.Config)
		}
	case *ir.ModelClassSchema:
		add("cls", opaque(x.Class))
		addSchema("schema", x.Schema)
	case *ir.FunctionSchema:
		add("mode", string(x.Mode))
		add("function", opaque(x.Function))
		addSchema("schema", x.Schema)
	case *ir.RecursiveRef:
		add("name", x.Name)
	case *ir.RecursiveContainer:
		add("name", x.Name)
		addSchema("schema", x.Schema)
	case *ir.DefinitionsSchema:
		addSchema("schema", x.Schema)
		add("definitions", o.definitions(x.Definitions))
	}
	if md := s.Meta(); len(md) != 0 {
		add("metadata", metadata(md))
	}
	return rec
}

func (o *encOpts) definitions(defs []ir.Definition) yaml.MapSlice {
	res := make(yaml.MapSlice, len(defs))
	for i, d := range defs {
		res[i] = yaml.MapItem{Key: d.Name, Value: o.record(d.Schema)}
	}
	return res
}

func addPtr[T any](add func(string, any), k string, v *T) {
	if v != nil {
		add(k, *v)
	}
}

func metadata(md ir.Metadata) yaml.MapSlice {
	keys := slices.Sorted(maps.Keys(md))
	res := make(yaml.MapSlice, len(keys))
	for i, k := range keys {
		res[i] = yaml.MapItem{Key: k, Value: opaque(md[k])}
	}
	return res
}

// opaque renders values only the validation engine interprets. Functions
// are written by name.
func opaque(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func {
		return v
	}
	if rv.IsNil() {
		return nil
	}
	if fn := runtime.FuncForPC(rv.Pointer()); fn != nil {
		return fn.Name()
	}
	return fmt.Sprintf("%T", v)
}
