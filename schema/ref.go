package schema

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/signadot/schemair/ir"
)

// RefSite is a reference found in a schema graph.
type RefSite struct {
	Name string
	Path ir.Path
}

// Refs returns the references written in root, in traversal order, with
// their paths. References are not followed, so each site is reported once
// per distinct node regardless of cycles through names.
func Refs(root ir.Schema) []RefSite {
	var res []RefSite
	seen := map[ir.Schema]bool{}
	var visit func(s ir.Schema, p ir.Path)
	visit = func(s ir.Schema, p ir.Path) {
		if seen[s] {
			return
		}
		seen[s] = true
		if ref, ok := s.(*ir.RecursiveRef); ok {
			res = append(res, RefSite{Name: ref.Name, Path: p})
			return
		}
		for _, c := range ir.Children(s) {
			visit(c.Schema, p.Join(c.Path))
		}
	}
	if root != nil {
		visit(root, nil)
	}
	return res
}

// Missing returns the references in root and in every registered
// definition that have no binding in r. It lets callers report all unbound
// names at once instead of failing on the first during traversal.
func (r *Registry) Missing(root ir.Schema) []RefSite {
	var res []RefSite
	check := func(prefix ir.Path, s ir.Schema) {
		for _, site := range Refs(s) {
			if _, ok := r.Lookup(site.Name); !ok {
				res = append(res, RefSite{Name: site.Name, Path: prefix.Join(site.Path)})
			}
		}
	}
	check(nil, root)
	for _, d := range r.Definitions() {
		check(ir.Path{}.Field("definitions").Field(d.Name), d.Schema)
	}
	return res
}

func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("definition name is empty")
	}
	if strings.IndexFunc(name, unicode.IsControl) != -1 {
		return fmt.Errorf("definition name %q contains control characters", name)
	}
	return nil
}
