package schemair

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/schemair/ir"
	"github.com/signadot/schemair/schema"
)

func TestStripAll(t *testing.T) {
	shared := ir.WithMeta(ir.WithMeta(&ir.IntSchema{}, "tmp", 1), "keep", 2)
	node := ir.WithMeta(ir.Model("node",
		ir.Field{Name: "v", Schema: shared},
		ir.Field{Name: "next", Schema: ir.Optional(ir.Ref("node"))},
	), "tmp", "x")
	root := ir.Definitions(ir.Dict(shared, ir.Ref("node")), ir.Definition{Name: "node", Schema: node})

	out, reg, err := StripAll(root, nil, "tmp")
	if err != nil {
		t.Fatal(err)
	}
	if !reg.Sealed() {
		t.Errorf("returned registry is not sealed")
	}
	res, err := GatherSchemasForCleaning(out, reg, "tmp")
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 0 {
		t.Errorf("stripped graph still carries tmp on %v", kinds(res))
	}

	defs := out.(*ir.DefinitionsSchema)
	dict := defs.Schema.(*ir.DictSchema)
	copied := defs.Definitions[0].Schema.(*ir.ModelSchema)
	if dict.Keys != copied.Fields[0].Schema {
		t.Errorf("sharing of the int node was lost")
	}
	if dict.Keys == ir.Schema(shared) {
		t.Errorf("input node reused in the copy")
	}
	if diff := cmp.Diff([]string{"keep"}, ir.MetaKeys(dict.Keys)); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}
	if got, _ := reg.Lookup("node"); got != ir.Schema(copied) {
		t.Errorf("registry does not bind node to its copy")
	}
	// inputs are untouched
	if diff := cmp.Diff([]string{"keep", "tmp"}, ir.MetaKeys(shared)); diff != "" {
		t.Errorf("input metadata changed (-want +got):\n%s", diff)
	}
	if _, ok := node.Meta()["tmp"]; !ok {
		t.Errorf("input model lost its metadata")
	}
}

func TestStripAllMetadata(t *testing.T) {
	root := ir.List(ir.WithMeta(&ir.StrSchema{Pattern: "^a"}, "x", 1))
	out, err := Strip(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	got := out.(*ir.ListSchema).Items.(*ir.StrSchema)
	if got.Meta() != nil {
		t.Errorf("metadata = %v, want none", got.Meta())
	}
	if got.Pattern != "^a" {
		t.Errorf("Pattern = %q", got.Pattern)
	}
	want := ir.List(&ir.StrSchema{Pattern: "^a"})
	if !ir.Equal(out, want) {
		t.Errorf("stripped copy differs from expected schema")
	}
}

func TestStripUnknownReference(t *testing.T) {
	_, err := Strip(ir.Ref("gone"), schema.NewRegistry(), "k")
	if !errors.Is(err, schema.ErrUnknownReference) {
		t.Errorf("got %v, want unknown reference", err)
	}
}

func TestStripReferenceMetadata(t *testing.T) {
	ref := ir.WithMeta(ir.WithMeta(ir.Ref("A"), "tmp", 1), "keep", 2)
	root := ir.Definitions(ir.List(ref), ir.Definition{Name: "A", Schema: &ir.IntSchema{}})

	out, err := Strip(root, nil, "tmp")
	if err != nil {
		t.Fatal(err)
	}
	got := out.(*ir.DefinitionsSchema).Schema.(*ir.ListSchema).Items
	if diff := cmp.Diff([]string{"keep"}, ir.MetaKeys(got)); diff != "" {
		t.Errorf("reference metadata mismatch (-want +got):\n%s", diff)
	}

	out, err = Strip(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	got = out.(*ir.DefinitionsSchema).Schema.(*ir.ListSchema).Items
	if got.Meta() != nil {
		t.Errorf("metadata = %v, want none", got.Meta())
	}
	if _, ok := ref.Meta()["tmp"]; !ok {
		t.Errorf("input reference lost its metadata")
	}
}
