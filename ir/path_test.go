package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPathString(t *testing.T) {
	tests := []struct {
		path Path
		want string
	}{
		{nil, "$"},
		{Path{}.Field("fields").Field("x"), "$.fields.x"},
		{Path{}.Field("choices").Index(2).Field("items"), "$.choices[2].items"},
		{Path{}.Field("definitions").Field("a.b"), "$.definitions.'a.b'"},
		{Path{}.Field("fields").Field("it's"), "$.fields.'it\\'s'"},
		{Path{}.Field(""), "$.''"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.path.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			back, err := ParsePath(tt.want)
			if err != nil {
				t.Fatalf("ParsePath(%q): %v", tt.want, err)
			}
			if diff := cmp.Diff(tt.path, back); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, p := range []string{"", "fields", "$.", "$[x]", "$[1", "$.'open", "$x"} {
		if _, err := ParsePath(p); err == nil {
			t.Errorf("ParsePath(%q) succeeded", p)
		}
	}
}

func TestPathFieldDoesNotAlias(t *testing.T) {
	base := make(Path, 0, 8).Field("a")
	x := base.Field("x")
	y := base.Field("y")
	if x.String() != "$.a.x" || y.String() != "$.a.y" {
		t.Errorf("got %s and %s", x, y)
	}
}

func TestAt(t *testing.T) {
	leaf := &StrSchema{}
	root := Definitions(
		Ref("node"),
		Definition{Name: "node", Schema: Model("node",
			Field{Name: "value", Schema: Union(&IntSchema{}, List(leaf))},
		)},
	)
	p, err := ParsePath("$.definitions.node.fields.value.choices[1].items")
	if err != nil {
		t.Fatal(err)
	}
	got, err := At(root, p)
	if err != nil {
		t.Fatal(err)
	}
	if got != Schema(leaf) {
		t.Errorf("At() returned %T, want the shared leaf", got)
	}
	if _, err := At(root, Path{}.Field("definitions").Field("missing")); err == nil {
		t.Errorf("At() on missing definition succeeded")
	}
}
