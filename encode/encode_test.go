package encode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/signadot/schemair/ir"
)

func TestToRecordShorthand(t *testing.T) {
	rec := ToRecord(ir.List(&ir.IntSchema{}))
	ms, ok := rec.(yaml.MapSlice)
	if !ok {
		t.Fatalf("record is %T, want yaml.MapSlice", rec)
	}
	want := yaml.MapSlice{{Key: "type", Value: "list"}, {Key: "items", Value: "int"}}
	if len(ms) != len(want) {
		t.Fatalf("record = %v, want %v", ms, want)
	}
	for i := range want {
		if ms[i] != want[i] {
			t.Errorf("item %d = %v, want %v", i, ms[i], want[i])
		}
	}

	long := ToRecord(&ir.IntSchema{}, EncodeShorthand(false))
	if _, ok := long.(yaml.MapSlice); !ok {
		t.Errorf("EncodeShorthand(false) gave %T", long)
	}
	withMeta := ToRecord(ir.WithMeta(&ir.IntSchema{}, "k", "v"))
	if _, ok := withMeta.(yaml.MapSlice); !ok {
		t.Errorf("leaf with metadata gave %T", withMeta)
	}
}

func TestEncode(t *testing.T) {
	ge := int64(0)
	s := ir.Definitions(
		ir.Ref("node"),
		ir.Definition{Name: "node", Schema: ir.WithMeta(ir.Model("node",
			ir.Field{Name: "value", Schema: &ir.IntSchema{Ge: &ge}},
			ir.Field{Name: "next", Schema: ir.Optional(ir.Ref("node"))},
		), "title", "Node")},
	)
	buf := bytes.NewBuffer(nil)
	if err := Encode(s, buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"type: definitions",
		"type: recursive-ref",
		"name: node",
		"ge: 0",
		"title: Node",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "value:") > strings.Index(out, "next:") {
		t.Errorf("fields out of declaration order:\n%s", out)
	}

	buf.Reset()
	if err := Encode(s, buf, EncodeJSON(true)); err != nil {
		t.Fatal(err)
	}
	if js := buf.String(); !strings.HasPrefix(js, "{") || !strings.Contains(js, `"definitions"`) {
		t.Errorf("JSON output unexpected:\n%s", buf.String())
	}
}

func TestEncodeFunctionName(t *testing.T) {
	s := &ir.FunctionSchema{Mode: ir.ModePlain, Function: strings.ToUpper}
	if got := Text(s); !strings.Contains(got, "strings.ToUpper") {
		t.Errorf("Text() = %q, want function name", got)
	}
}

func TestColorize(t *testing.T) {
	saved := color.NoColor
	defer func() { color.NoColor = saved }()

	src := "type: int\nge: 1\n"
	color.NoColor = true
	if got := NewColors().Colorize(src); got != src {
		t.Errorf("Colorize with NoColor changed output: %q", got)
	}
	color.NoColor = false
	got := NewColors().Colorize(src)
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("Colorize() added no escapes: %q", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Errorf("Colorize() dropped trailing newline: %q", got)
	}
}
