package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/schemair/ir"
)

func TestRegister(t *testing.T) {
	r := NewRegistry()
	a := ir.List(&ir.IntSchema{})
	if err := r.Register("a", a); err != nil {
		t.Fatal(err)
	}
	// identical binding, distinct instance
	if err := r.Register("a", ir.List(&ir.IntSchema{})); err != nil {
		t.Errorf("re-registering an equal schema: %v", err)
	}
	err := r.Register("a", ir.List(&ir.StrSchema{}))
	var dde *DuplicateDefinitionError
	if !errors.As(err, &dde) {
		t.Fatalf("Register() = %v, want *DuplicateDefinitionError", err)
	}
	if !errors.Is(err, ErrDuplicateDefinition) {
		t.Errorf("error does not wrap ErrDuplicateDefinition")
	}
	if dde.Name != "a" {
		t.Errorf("Name = %q", dde.Name)
	}
	if !strings.Contains(dde.Diff, "-") || !strings.Contains(dde.Diff, "+") {
		t.Errorf("Diff = %q, want removed and added lines", dde.Diff)
	}
	if err := r.Register("", a); !errors.Is(err, ir.ErrWellFormedness) {
		t.Errorf("Register(\"\") = %v, want well-formedness error", err)
	}
	if got, _ := r.Lookup("a"); got != ir.Schema(a) {
		t.Errorf("first binding was replaced")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegisterOpaqueFunctions(t *testing.T) {
	post := func(any) any { return nil }
	model := func() ir.Schema {
		return &ir.ModelSchema{Name: "m", Config: map[string]any{"post": []any{post}}}
	}
	r := NewRegistry()
	if err := r.Register("m", model()); err != nil {
		t.Fatal(err)
	}
	if err := r.Register("m", model()); err != nil {
		t.Errorf("re-registering a model with the same functions: %v", err)
	}
}

func TestResolve(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("b", &ir.BoolSchema{}); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Resolve("b"); err != nil {
		t.Errorf("Resolve(b): %v", err)
	}
	_, err := r.ResolveAt(ir.Path{}.Field("fields").Field("x"), "missing")
	var ure *UnknownReferenceError
	if !errors.As(err, &ure) {
		t.Fatalf("Resolve() = %v, want *UnknownReferenceError", err)
	}
	if ure.Name != "missing" || ure.Path.String() != "$.fields.x" {
		t.Errorf("got %+v", ure)
	}
	if !strings.Contains(err.Error(), `"missing"`) {
		t.Errorf("message %q does not name the reference", err)
	}
	var nilReg *Registry
	if _, err := nilReg.Resolve("x"); !errors.Is(err, ErrUnknownReference) {
		t.Errorf("nil registry Resolve() = %v", err)
	}
}

func TestSeal(t *testing.T) {
	r := NewRegistry()
	r.Seal()
	if err := r.Register("a", &ir.AnySchema{}); !errors.Is(err, ErrSealed) {
		t.Errorf("Register() after Seal = %v, want ErrSealed", err)
	}
	if !r.Sealed() {
		t.Errorf("Sealed() = false")
	}
}

func TestBuild(t *testing.T) {
	node := ir.Model("node",
		ir.Field{Name: "value", Schema: &ir.IntSchema{}},
		ir.Field{Name: "next", Schema: ir.Optional(ir.Ref("node"))},
		ir.Field{Name: "tag", Schema: &ir.RecursiveContainer{Name: "tag", Schema: ir.Union(&ir.StrSchema{}, ir.Ref("tag"))}},
	)
	root := ir.Definitions(ir.Ref("node"), ir.Definition{Name: "node", Schema: node})
	ext := []ir.Definition{{Name: "ext", Schema: ir.List(ir.Ref("node"))}}

	r, err := Build(root, ext)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"ext", "node", "tag"}, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if !r.Sealed() {
		t.Errorf("Build() returned an unsealed registry")
	}
	got, err := r.Resolve("node")
	if err != nil {
		t.Fatal(err)
	}
	if got != ir.Schema(node) {
		t.Errorf("node resolved to a different instance")
	}
	if missing := r.Missing(root); len(missing) != 0 {
		t.Errorf("Missing() = %v", missing)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		root    ir.Schema
		defs    []ir.Definition
		wantErr error
		path    string
	}{
		{
			name:    "malformed root",
			root:    ir.List(&ir.StrSchema{ToLower: true, ToUpper: true}),
			wantErr: ir.ErrWellFormedness,
			path:    "$.items.to_upper",
		},
		{
			name:    "malformed definition",
			root:    ir.Ref("a"),
			defs:    []ir.Definition{{Name: "a", Schema: ir.Optional(nil)}},
			wantErr: ir.ErrWellFormedness,
			path:    "$.definitions.a.schema",
		},
		{
			name: "conflicting containers",
			root: ir.Union(
				&ir.RecursiveContainer{Name: "x", Schema: &ir.IntSchema{}},
				&ir.RecursiveContainer{Name: "x", Schema: &ir.StrSchema{}},
			),
			wantErr: ErrDuplicateDefinition,
			path:    "$.choices[1]",
		},
		{
			name: "embedded conflicts with external",
			root: ir.Definitions(ir.Ref("a"), ir.Definition{Name: "a", Schema: &ir.IntSchema{}}),
			defs: []ir.Definition{{Name: "a", Schema: &ir.FloatSchema{}}},
			wantErr: ErrDuplicateDefinition,
			path:    "$.definitions.a",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.root, tt.defs)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Build() = %v, want %v", err, tt.wantErr)
			}
			var got ir.Path
			var wfe *ir.WellFormednessError
			var dde *DuplicateDefinitionError
			switch {
			case errors.As(err, &wfe):
				got = wfe.Path
			case errors.As(err, &dde):
				got = dde.Path
			}
			if got.String() != tt.path {
				t.Errorf("path = %s, want %s", got, tt.path)
			}
		})
	}
}

func TestBuildSharedContainer(t *testing.T) {
	shared := &ir.RecursiveContainer{Name: "s", Schema: ir.List(ir.Ref("s"))}
	root := ir.Dict(shared, shared)
	r, err := Build(root, nil)
	if err != nil {
		t.Fatalf("shared container registered twice: %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestExtend(t *testing.T) {
	base, err := Build(nil, []ir.Definition{{Name: "b", Schema: &ir.IntSchema{}}})
	if err != nil {
		t.Fatal(err)
	}
	root := ir.Definitions(ir.Ref("a"), ir.Definition{Name: "a", Schema: ir.List(ir.Ref("b"))})
	ext, err := base.Extend(root)
	if err != nil {
		t.Fatal(err)
	}
	if !ext.Sealed() {
		t.Errorf("extended registry is not sealed")
	}
	if diff := cmp.Diff([]string{"b", "a"}, ext.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if _, ok := base.Lookup("a"); ok {
		t.Errorf("base registry was modified")
	}

	clash := ir.Definitions(&ir.AnySchema{}, ir.Definition{Name: "b", Schema: &ir.StrSchema{}})
	if _, err := base.Extend(clash); !errors.Is(err, ErrDuplicateDefinition) {
		t.Errorf("Extend() = %v, want duplicate definition", err)
	}
}

func TestMissing(t *testing.T) {
	root := ir.Model("m",
		ir.Field{Name: "a", Schema: ir.Ref("a")},
		ir.Field{Name: "b", Schema: ir.List(ir.Ref("b"))},
	)
	r, err := Build(root, []ir.Definition{{Name: "a", Schema: ir.Optional(ir.Ref("c"))}})
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, m := range r.Missing(root) {
		got = append(got, m.Name+"@"+m.Path.String())
	}
	want := []string{"b@$.fields.b.items", "c@$.definitions.a.schema"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Missing() mismatch (-want +got):\n%s", diff)
	}
}

func TestDefinitionsFromMap(t *testing.T) {
	defs := DefinitionsFromMap(map[string]ir.Schema{"b": &ir.AnySchema{}, "a": &ir.NoneSchema{}})
	if len(defs) != 2 || defs[0].Name != "a" || defs[1].Name != "b" {
		t.Errorf("DefinitionsFromMap() = %v", defs)
	}
}
