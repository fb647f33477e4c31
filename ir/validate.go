package ir

type walkState uint8

const (
	walkVisiting walkState = iota + 1
	walkDone
)

// Validate checks root and every sub-schema reachable through Schema-typed
// fields. References are not followed, so Validate terminates on any graph
// whose cycles run through names. A node that contains itself directly is
// reported, as is any node failing Check. Shared sub-schemas are checked
// once.
func Validate(root Schema) error {
	states := map[Schema]walkState{}
	var visit func(s Schema, p Path) error
	visit = func(s Schema, p Path) error {
		if err := Check(s); err != nil {
			return err.(*WellFormednessError).Within(p)
		}
		switch states[s] {
		case walkVisiting:
			return malformed(p, "%s schema embeds itself", s.Kind())
		case walkDone:
			return nil
		}
		states[s] = walkVisiting
		for _, c := range Children(s) {
			if err := visit(c.Schema, p.Join(c.Path)); err != nil {
				return err
			}
		}
		states[s] = walkDone
		return nil
	}
	return visit(root, nil)
}
