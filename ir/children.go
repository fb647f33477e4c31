package ir

// Child is a sub-schema together with its path relative to the parent.
type Child struct {
	Path   Path
	Schema Schema
}

// Children returns the non-nil sub-schemas of s in declared order:
// dict keys before values, union choices and model fields in list order,
// a model's extra schema after its fields, and a definitions node's entry
// schema before its definitions. A RecursiveRef has no children; its
// target is only reachable through a registry.
func Children(s Schema) []Child {
	var res []Child
	add := func(p Path, c Schema) {
		if c != nil {
			res = append(res, Child{Path: p, Schema: c})
		}
	}
	switch x := s.(type) {
	case *AnySchema, *BoolSchema, *NoneSchema, *LiteralSchema,
		*IntSchema, *FloatSchema, *StrSchema, *RecursiveRef:
	case *ListSchema:
		add(Path{{Field: "items"}}, x.Items)
	case *SetSchema:
		add(Path{{Field: "items"}}, x.Items)
	case *DictSchema:
		add(Path{{Field: "keys"}}, x.Keys)
		add(Path{{Field: "values"}}, x.Values)
	case *OptionalSchema:
		add(Path{{Field: "schema"}}, x.Schema)
	case *UnionSchema:
		for i, c := range x.Choices {
			add(Path{{Field: "choices"}, {Index: i, IsIndex: true}}, c)
		}
	case *ModelSchema:
		for _, f := range x.Fields {
			add(Path{{Field: "fields"}, {Field: f.Name}}, f.Schema)
		}
		add(Path{{Field: "extra"}}, x.Extra)
	case *ModelClassSchema:
		add(Path{{Field: "schema"}}, x.Schema)
	case *FunctionSchema:
		add(Path{{Field: "schema"}}, x.Schema)
	case *RecursiveContainer:
		add(Path{{Field: "schema"}}, x.Schema)
	case *DefinitionsSchema:
		add(Path{{Field: "schema"}}, x.Schema)
		for _, d := range x.Definitions {
			add(Path{{Field: "definitions"}, {Field: d.Name}}, d.Schema)
		}
	}
	return res
}
