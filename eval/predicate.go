// Package eval compiles expressions selecting schema nodes.
//
// A predicate is an expr-lang expression evaluated against one node at a
// time, for example
//
//	kind == "model" && "deprecated" in keys
//	Has("hint") || name startsWith "Internal"
//
// The expression sees the fields of Env and any function added with
// Register.
package eval

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/schemair/ir"
)

// Env is what a predicate sees of a node.
type Env struct {
	Kind     string         `expr:"kind"`
	Name     string         `expr:"name"`
	Metadata map[string]any `expr:"metadata"`
	// Keys holds the metadata keys in sorted order.
	Keys []string `expr:"keys"`
	// Children is the number of direct sub-schemas.
	Children int `expr:"children"`
}

// Has reports whether the node carries metadata key.
func (e Env) Has(key string) bool {
	_, ok := e.Metadata[key]
	return ok
}

func NewEnv(s ir.Schema) Env {
	return Env{
		Kind:     s.Kind().String(),
		Name:     ir.Name(s),
		Metadata: s.Meta(),
		Keys:     ir.MetaKeys(s),
		Children: len(ir.Children(s)),
	}
}

// Predicate is a compiled expression. It is safe for concurrent use.
type Predicate struct {
	src  string
	prog *vm.Program
}

func Compile(src string) (*Predicate, error) {
	opts := append([]expr.Option{expr.Env(Env{}), expr.AsBool()}, exprOpts()...)
	prog, err := expr.Compile(src, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not compile predicate %q: %w", src, err)
	}
	return &Predicate{src: src, prog: prog}, nil
}

func (p *Predicate) String() string { return p.src }

// Match evaluates p on s.
func (p *Predicate) Match(s ir.Schema) (bool, error) {
	out, err := expr.Run(p.prog, NewEnv(s))
	if err != nil {
		return false, fmt.Errorf("predicate %q on %s: %w", p.src, s.Kind(), err)
	}
	return out.(bool), nil
}
