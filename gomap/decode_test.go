package gomap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/signadot/schemair/encode"
	"github.com/signadot/schemair/ir"
)

func i64(v int64) *int64 { return &v }
func intp(v int) *int    { return &v }

func TestLoad(t *testing.T) {
	src := `
type: model
name: user
fields:
  id: int
  tags:
    type: list
    items: str
    max_length: 3
  parent:
    type: optional
    schema: {type: recursive-ref, name: user}
  age:
    type: int
    ge: 0
    lt: 200
    strict: true
metadata:
  hint: x
`
	got, err := Load([]byte(src))
	require.NoError(t, err)

	want := ir.WithMeta(ir.Model("user",
		ir.Field{Name: "id", Schema: &ir.IntSchema{}},
		ir.Field{Name: "tags", Schema: &ir.ListSchema{Items: &ir.StrSchema{}, MaxLength: intp(3)}},
		ir.Field{Name: "parent", Schema: ir.Optional(ir.Ref("user"))},
		ir.Field{Name: "age", Schema: &ir.IntSchema{Ge: i64(0), Lt: i64(200), Strict: true}},
	), "hint", "x")
	require.True(t, ir.Equal(want, got), "got:\n%s", encode.Text(got))
}

func TestLoadShorthandIsExpandedOnce(t *testing.T) {
	got, err := Load([]byte(`{type: dict, keys: str, values: str}`))
	require.NoError(t, err)
	d := got.(*ir.DictSchema)
	require.IsType(t, &ir.StrSchema{}, d.Keys)
	// every shorthand gets its own node
	require.NotSame(t, d.Keys, d.Values)

	leaf, err := Load([]byte(`float`))
	require.NoError(t, err)
	require.Equal(t, ir.FloatKind, leaf.Kind())
}

func TestLoadJSON(t *testing.T) {
	got, err := Load([]byte(`{"type": "union", "choices": ["int", {"type": "literal", "expected": ["a", 1]}], "default": "a"}`))
	require.NoError(t, err)
	u := got.(*ir.UnionSchema)
	require.Len(t, u.Choices, 2)
	require.Equal(t, "a", u.Default)
	lit := u.Choices[1].(*ir.LiteralSchema)
	require.Equal(t, []any{"a", int64(1)}, lit.Expected)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		path string
	}{
		{name: "unknown type", src: `{type: tuple}`, path: "$.type"},
		{name: "missing type", src: `{items: int}`, path: "$.type"},
		{name: "unknown field", src: `{type: list, item: int}`, path: "$.item"},
		{name: "shorthand without leaf form", src: `{type: list, items: literal}`, path: "$.items"},
		{name: "negative size", src: "type: model\nfields:\n  tags: {type: list, min_length: -1}", path: "$.fields.tags.min_length"},
		{name: "zero multiple", src: `{type: float, multiple_of: 0}`, path: "$.multiple_of"},
		{name: "inverted size", src: `{type: set, min_length: 3, max_length: 1}`, path: "$"},
		{name: "plain function with schema", src: `{type: function, mode: plain, function: f, schema: int}`, path: "$.schema"},
		{name: "bad mode", src: `{type: function, mode: around, function: f, schema: int}`, path: "$.mode"},
		{name: "union choice", src: `{type: union, choices: [int, {type: str, to_lower: true, to_upper: true}]}`, path: "$.choices[1].to_upper"},
		{name: "wrong option type", src: `{type: int, gt: abc}`, path: "$"},
		{name: "unnamed definition", src: `{type: definitions, schema: int, definitions: [{schema: str}]}`, path: "$.definitions[0].name"},
		{name: "duplicate definition", src: "type: definitions\nschema: int\ndefinitions:\n  - {name: a, schema: int}\n  - {name: a, schema: str}", path: "$.definitions.a"},
		{name: "metadata not a mapping", src: `{type: any, metadata: [1]}`, path: "$.metadata"},
		{name: "fractional size", src: `{type: list, min_length: 1.5}`, path: "$.min_length"},
		{name: "fractional str size", src: `{type: str, pattern: "^a", max_length: 2.9}`, path: "$.max_length"},
		{name: "bound out of range", src: `{type: int, gt: 18446744073709551615}`, path: "$.gt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.src))
			require.Error(t, err)
			var wfe *ir.WellFormednessError
			require.True(t, errors.As(err, &wfe), "got %v", err)
			require.Equal(t, tt.path, wfe.Path.String(), "error: %v", err)
		})
	}
}

func TestDecodeStrict(t *testing.T) {
	_, err := Load([]byte(`{type: str, pattern: "^a", flavor: x}`))
	require.ErrorIs(t, err, ir.ErrWellFormedness)

	got, err := Load([]byte(`{type: str, pattern: "^a", flavor: x}`), DecodeStrict(false))
	require.NoError(t, err)
	require.Equal(t, "^a", got.(*ir.StrSchema).Pattern)
}

func TestFromRecordMixed(t *testing.T) {
	item := &ir.BoolSchema{Strict: true}
	got, err := FromRecord(map[string]any{"type": "set", "items": item})
	require.NoError(t, err)
	require.Same(t, item, got.(*ir.SetSchema).Items)
}

func TestRoundTrip(t *testing.T) {
	schemas := []ir.Schema{
		ir.List(ir.Optional(&ir.FloatSchema{Gt: new(float64), AllowInfNaN: true})),
		ir.Definitions(ir.Ref("node"),
			ir.Definition{Name: "node", Schema: ir.Model("node",
				ir.Field{Name: "v", Schema: &ir.StrSchema{Pattern: "[a-z]+", MinLength: intp(1), StripWhitespace: true}},
				ir.Field{Name: "next", Schema: ir.Optional(ir.Ref("node"))},
			)},
		),
		&ir.RecursiveContainer{Name: "t", Schema: ir.Dict(&ir.StrSchema{}, ir.Union(ir.Ref("t"), &ir.NoneSchema{}))},
		&ir.FunctionSchema{Mode: ir.ModeWrap, Function: "trim", Schema: ir.WithMeta(&ir.AnySchema{}, "k", "v")},
		&ir.ModelClassSchema{Class: "User", Schema: &ir.ModelSchema{Extra: &ir.IntSchema{MultipleOf: i64(2)}, Config: map[string]any{"frozen": true}}},
	}
	for _, s := range schemas {
		t.Run(s.Kind().String(), func(t *testing.T) {
			got, err := FromRecord(encode.ToRecord(s))
			require.NoError(t, err)
			require.True(t, ir.Equal(s, got), "want:\n%s\ngot:\n%s", encode.Text(s), encode.Text(got))
		})
	}
}

func TestLoadIntegralFloat(t *testing.T) {
	got, err := Load([]byte(`{type: list, min_length: 2.0, max_length: 4}`))
	require.NoError(t, err)
	l := got.(*ir.ListSchema)
	require.Equal(t, 2, *l.MinLength)
	require.Equal(t, 4, *l.MaxLength)
}
