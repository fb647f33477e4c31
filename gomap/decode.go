// Package gomap decodes loosely typed schema records, such as those read
// from YAML or JSON, into the schema IR.
//
// A record is a mapping with a "type" field naming the kind, the fields of
// that kind, and an optional "metadata" mapping. Wherever a schema is
// expected a bare type name such as "int" may be given instead; it is
// expanded here, once, into a fresh leaf node.
package gomap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"

	"github.com/signadot/schemair/debug"
	"github.com/signadot/schemair/ir"
)

type decOpts struct {
	strict bool
	log    *slog.Logger
}

type DecodeOption func(*decOpts)

// DecodeStrict controls whether fields unknown to a kind are errors. It
// defaults to true; otherwise unknown fields are logged and dropped.
func DecodeStrict(v bool) DecodeOption { return func(o *decOpts) { o.strict = v } }

func DecodeLogger(l *slog.Logger) DecodeOption { return func(o *decOpts) { o.log = l } }

// Load decodes a YAML or JSON schema record.
func Load(d []byte, opts ...DecodeOption) (ir.Schema, error) {
	v, err := unmarshal(d)
	if err != nil {
		return nil, err
	}
	return FromRecord(v, opts...)
}

// FromRecord decodes a record. Values that already are an ir.Schema are
// taken as they are, so records and constructed nodes may be mixed.
func FromRecord(v any, opts ...DecodeOption) (ir.Schema, error) {
	return newDecoder(opts).schema(v, nil)
}

func unmarshal(d []byte) (any, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("could not parse schema record: %w", err)
	}
	return v, nil
}

type decoder struct {
	*decOpts
	validate *validator.Validate
}

func newDecoder(opts []DecodeOption) *decoder {
	o := &decOpts{strict: true}
	for _, f := range opts {
		f(o)
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		return name
	})
	return &decoder{decOpts: o, validate: v}
}

func malformed(p ir.Path, format string, args ...any) error {
	return &ir.WellFormednessError{Path: p, Reason: fmt.Sprintf(format, args...)}
}

func (d *decoder) schema(v any, p ir.Path) (ir.Schema, error) {
	switch x := v.(type) {
	case nil:
		return nil, malformed(p, "missing schema")
	case ir.Schema:
		return x, nil
	case string:
		s, err := ir.Leaf(x)
		if err != nil {
			return nil, malformed(p, "invalid shorthand %q: %s", x, err.(*ir.WellFormednessError).Reason)
		}
		return s, nil
	}
	ents, ok, err := entries(v)
	if err != nil {
		return nil, malformed(p, "%v", err)
	}
	if !ok {
		return nil, malformed(p, "expected a type name or a record, got %T", v)
	}
	rec := make(map[string]any, len(ents))
	for _, e := range ents {
		rec[e.key] = e.val
	}
	tv, present := rec["type"]
	if !present {
		return nil, malformed(p.Field("type"), "missing type")
	}
	tag, ok := tv.(string)
	if !ok {
		return nil, malformed(p.Field("type"), "type must be a string, got %T", tv)
	}
	k, err := ir.ParseKind(tag)
	if err != nil {
		return nil, malformed(p.Field("type"), "%v", err)
	}
	if debug.Decode() {
		debug.Logf("decode %s at %s\n", k, p)
	}
	s, err := d.node(k, rec, p)
	if err != nil {
		return nil, err
	}
	if mv, present := rec["metadata"]; present && mv != nil {
		if err := d.metadata(s, mv, p.Field("metadata")); err != nil {
			return nil, err
		}
	}
	if err := ir.Check(s); err != nil {
		return nil, err.(*ir.WellFormednessError).Within(p)
	}
	return s, nil
}

func (d *decoder) metadata(s ir.Schema, v any, p ir.Path) error {
	ents, ok, err := entries(v)
	if err != nil {
		return malformed(p, "%v", err)
	}
	if !ok {
		return malformed(p, "metadata must be a mapping, got %T", v)
	}
	setter := s.(interface{ SetMeta(string, any) })
	for _, e := range ents {
		setter.SetMeta(e.key, plain(e.val))
	}
	return nil
}

// opts decodes the option fields of rec into dst. Keys in handled, "type"
// and "metadata" are skipped. A nil dst accepts no options.
func (d *decoder) opts(k ir.Kind, rec map[string]any, p ir.Path, dst any, handled ...string) error {
	in := make(map[string]any, len(rec))
	for key, v := range rec {
		if key == "type" || key == "metadata" || slices.Contains(handled, key) {
			continue
		}
		in[key] = v
	}
	if dst == nil {
		for _, key := range slices.Sorted(maps.Keys(in)) {
			if err := d.unknown(k, p, key); err != nil {
				return err
			}
		}
		return nil
	}
	var (
		md  mapstructure.Metadata
		bad *integralError
	)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:   dst,
		Metadata: &md,
		DecodeHook: func(from, to reflect.Type, data any) (any, error) {
			res, ie := integral(from, to, data)
			if ie == nil {
				return res, nil
			}
			if bad == nil {
				bad = ie
			}
			return nil, ie
		},
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(in); err != nil {
		if bad != nil {
			return malformed(p.Field(bad.key(in)), "%v", bad)
		}
		return malformed(p, "invalid %s options: %v", k, err)
	}
	slices.Sort(md.Unused)
	for _, key := range md.Unused {
		if err := d.unknown(k, p, key); err != nil {
			return err
		}
	}
	if err := d.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) != 0 {
			fe := verrs[0]
			return malformed(p.Field(fe.Field()), "value %v fails %s=%s", fe.Value(), fe.Tag(), fe.Param())
		}
		return malformed(p, "%v", err)
	}
	return nil
}

// integralError reports a number which an integer option cannot hold
// exactly.
type integralError struct {
	value any
}

func (e *integralError) Error() string {
	switch e.value.(type) {
	case uint64:
		return fmt.Sprintf("value %v out of range for an integer", e.value)
	}
	return fmt.Sprintf("value %v is not an integer", e.value)
}

// key returns the option holding the offending value.
func (e *integralError) key(in map[string]any) string {
	for _, k := range slices.Sorted(maps.Keys(in)) {
		if in[k] == e.value {
			return k
		}
	}
	return ""
}

// integral refuses conversions to integer fields that would truncate a
// fraction or wrap a large unsigned value.
func integral(_ reflect.Type, to reflect.Type, data any) (any, *integralError) {
	for to.Kind() == reflect.Pointer {
		to = to.Elem()
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
	default:
		return data, nil
	}
	switch x := data.(type) {
	case float64:
		if x != math.Trunc(x) || x < math.MinInt64 || x >= math.MaxInt64 {
			return nil, &integralError{value: data}
		}
	case float32:
		if float64(x) != math.Trunc(float64(x)) {
			return nil, &integralError{value: data}
		}
	case uint64:
		if x > math.MaxInt64 {
			return nil, &integralError{value: data}
		}
	}
	return data, nil
}

func (d *decoder) unknown(k ir.Kind, p ir.Path, key string) error {
	if d.strict {
		return malformed(p.Field(key), "unknown field for %s", k)
	}
	if d.log != nil {
		d.log.LogAttrs(context.Background(), slog.LevelDebug, "dropped unknown field",
			slog.String("kind", k.String()),
			slog.String("path", p.Field(key).String()))
	}
	return nil
}

// sub decodes the optional schema field key of rec.
func (d *decoder) sub(rec map[string]any, key string, p ir.Path) (ir.Schema, error) {
	v, present := rec[key]
	if !present || v == nil {
		return nil, nil
	}
	return d.schema(v, p.Field(key))
}

func (d *decoder) node(k ir.Kind, rec map[string]any, p ir.Path) (ir.Schema, error) {
	switch k {
	case ir.AnyKind:
		return &ir.AnySchema{}, d.opts(k, rec, p, nil)
	case ir.NoneKind:
		return &ir.NoneSchema{}, d.opts(k, rec, p, nil)
	case ir.BoolKind:
		var o strictOpts
		if err := d.opts(k, rec, p, &o); err != nil {
			return nil, err
		}
		return &ir.BoolSchema{Strict: o.Strict}, nil
	case ir.LiteralKind:
		if err := d.opts(k, rec, p, nil, "expected"); err != nil {
			return nil, err
		}
		var expected []any
		switch x := rec["expected"].(type) {
		case nil:
		case []any:
			expected = plain(x).([]any)
		default:
			expected = []any{plain(x)}
		}
		return &ir.LiteralSchema{Expected: expected}, nil
	case ir.IntKind:
		var o intOpts
		if err := d.opts(k, rec, p, &o); err != nil {
			return nil, err
		}
		return &ir.IntSchema{Gt: o.Gt, Ge: o.Ge, Lt: o.Lt, Le: o.Le, MultipleOf: o.MultipleOf, Strict: o.Strict}, nil
	case ir.FloatKind:
		var o floatOpts
		if err := d.opts(k, rec, p, &o); err != nil {
			return nil, err
		}
		return &ir.FloatSchema{
			Gt: o.Gt, Ge: o.Ge, Lt: o.Lt, Le: o.Le,
			MultipleOf:  o.MultipleOf,
			AllowInfNaN: o.AllowInfNaN,
			Strict:      o.Strict,
		}, nil
	case ir.StrKind:
		var o strOpts
		if err := d.opts(k, rec, p, &o); err != nil {
			return nil, err
		}
		return &ir.StrSchema{
			Pattern:         o.Pattern,
			MinLength:       o.MinLength,
			MaxLength:       o.MaxLength,
			ToLower:         o.ToLower,
			ToUpper:         o.ToUpper,
			StripWhitespace: o.StripWhitespace,
			Strict:          o.Strict,
		}, nil
	case ir.ListKind, ir.SetKind:
		var o sizeOpts
		if err := d.opts(k, rec, p, &o, "items"); err != nil {
			return nil, err
		}
		items, err := d.sub(rec, "items", p)
		if err != nil {
			return nil, err
		}
		if k == ir.SetKind {
			return &ir.SetSchema{Items: items, MinLength: o.MinLength, MaxLength: o.MaxLength, Strict: o.Strict}, nil
		}
		return &ir.ListSchema{Items: items, MinLength: o.MinLength, MaxLength: o.MaxLength, Strict: o.Strict}, nil
	case ir.DictKind:
		var o sizeOpts
		if err := d.opts(k, rec, p, &o, "keys", "values"); err != nil {
			return nil, err
		}
		keys, err := d.sub(rec, "keys", p)
		if err != nil {
			return nil, err
		}
		values, err := d.sub(rec, "values", p)
		if err != nil {
			return nil, err
		}
		return &ir.DictSchema{Keys: keys, Values: values, MinLength: o.MinLength, MaxLength: o.MaxLength, Strict: o.Strict}, nil
	case ir.OptionalKind:
		var o strictOpts
		if err := d.opts(k, rec, p, &o, "schema"); err != nil {
			return nil, err
		}
		inner, err := d.sub(rec, "schema", p)
		if err != nil {
			return nil, err
		}
		return &ir.OptionalSchema{Schema: inner, Strict: o.Strict}, nil
	case ir.UnionKind:
		var o strictOpts
		if err := d.opts(k, rec, p, &o, "choices", "default"); err != nil {
			return nil, err
		}
		choices, err := d.list(rec["choices"], p.Field("choices"))
		if err != nil {
			return nil, err
		}
		return &ir.UnionSchema{Choices: choices, Default: plain(rec["default"]), Strict: o.Strict}, nil
	case ir.ModelKind:
		var o nameOpts
		if err := d.opts(k, rec, p, &o, "fields", "extra", "config"); err != nil {
			return nil, err
		}
		fields, err := d.fields(rec["fields"], p.Field("fields"))
		if err != nil {
			return nil, err
		}
		extra, err := d.sub(rec, "extra", p)
		if err != nil {
			return nil, err
		}
		var config map[string]any
		if cv := rec["config"]; cv != nil {
			m, ok := plain(cv).(map[string]any)
			if !ok {
				return nil, malformed(p.Field("config"), "config must be a mapping, got %T", cv)
			}
			config = m
		}
		return &ir.ModelSchema{Name: o.Name, Fields: fields, Extra: extra, Config: config}, nil
	case ir.ModelClassKind:
		if err := d.opts(k, rec, p, nil, "cls", "schema"); err != nil {
			return nil, err
		}
		inner, err := d.sub(rec, "schema", p)
		if err != nil {
			return nil, err
		}
		return &ir.ModelClassSchema{Class: plain(rec["cls"]), Schema: inner}, nil
	case ir.FunctionKind:
		var o modeOpts
		if err := d.opts(k, rec, p, &o, "function", "schema"); err != nil {
			return nil, err
		}
		inner, err := d.sub(rec, "schema", p)
		if err != nil {
			return nil, err
		}
		return &ir.FunctionSchema{Mode: ir.FunctionMode(o.Mode), Function: plain(rec["function"]), Schema: inner}, nil
	case ir.RecursiveRefKind:
		var o nameOpts
		if err := d.opts(k, rec, p, &o); err != nil {
			return nil, err
		}
		return &ir.RecursiveRef{Name: o.Name}, nil
	case ir.RecursiveContainerKind:
		var o nameOpts
		if err := d.opts(k, rec, p, &o, "schema"); err != nil {
			return nil, err
		}
		inner, err := d.sub(rec, "schema", p)
		if err != nil {
			return nil, err
		}
		return &ir.RecursiveContainer{Name: o.Name, Schema: inner}, nil
	case ir.DefinitionsKind:
		if err := d.opts(k, rec, p, nil, "schema", "definitions"); err != nil {
			return nil, err
		}
		entry, err := d.sub(rec, "schema", p)
		if err != nil {
			return nil, err
		}
		defs, err := d.definitions(rec["definitions"], p.Field("definitions"))
		if err != nil {
			return nil, err
		}
		return &ir.DefinitionsSchema{Schema: entry, Definitions: defs}, nil
	}
	return nil, malformed(p.Field("type"), "unsupported kind %s", k)
}

func (d *decoder) list(v any, p ir.Path) ([]ir.Schema, error) {
	if v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, malformed(p, "expected a list, got %T", v)
	}
	res := make([]ir.Schema, len(items))
	for i, item := range items {
		s, err := d.schema(item, p.Index(i))
		if err != nil {
			return nil, err
		}
		res[i] = s
	}
	return res, nil
}

func (d *decoder) fields(v any, p ir.Path) ([]ir.Field, error) {
	if v == nil {
		return nil, nil
	}
	ents, ok, err := entries(v)
	if err != nil {
		return nil, malformed(p, "%v", err)
	}
	if !ok {
		return nil, malformed(p, "fields must be a mapping, got %T", v)
	}
	res := make([]ir.Field, len(ents))
	for i, e := range ents {
		s, err := d.schema(e.val, p.Field(e.key))
		if err != nil {
			return nil, err
		}
		res[i] = ir.Field{Name: e.key, Schema: s}
	}
	return res, nil
}

// definitions accepts either an ordered mapping of name to schema or a
// list of {name, schema} records.
func (d *decoder) definitions(v any, p ir.Path) ([]ir.Definition, error) {
	if v == nil {
		return nil, nil
	}
	if items, ok := v.([]any); ok {
		res := make([]ir.Definition, len(items))
		for i, item := range items {
			ents, ok, err := entries(item)
			if err != nil {
				return nil, malformed(p.Index(i), "%v", err)
			}
			if !ok {
				return nil, malformed(p.Index(i), "definition must be a record, got %T", item)
			}
			var name string
			var body any
			for _, e := range ents {
				switch e.key {
				case "name":
					s, ok := e.val.(string)
					if !ok {
						return nil, malformed(p.Index(i).Field("name"), "name must be a string, got %T", e.val)
					}
					name = s
				case "schema":
					body = e.val
				default:
					if err := d.unknown(ir.DefinitionsKind, p.Index(i), e.key); err != nil {
						return nil, err
					}
				}
			}
			if name == "" {
				return nil, malformed(p.Index(i).Field("name"), "definition has no name")
			}
			s, err := d.schema(body, p.Field(name))
			if err != nil {
				return nil, err
			}
			res[i] = ir.Definition{Name: name, Schema: s}
		}
		return res, nil
	}
	ents, ok, err := entries(v)
	if err != nil {
		return nil, malformed(p, "%v", err)
	}
	if !ok {
		return nil, malformed(p, "definitions must be a list or a mapping, got %T", v)
	}
	res := make([]ir.Definition, len(ents))
	for i, e := range ents {
		s, err := d.schema(e.val, p.Field(e.key))
		if err != nil {
			return nil, err
		}
		res[i] = ir.Definition{Name: e.key, Schema: s}
	}
	return res, nil
}
