package ir

import (
	"maps"
	"slices"
)

// MetaKeys returns the metadata keys of s in sorted order.
func MetaKeys(s Schema) []string {
	return slices.Sorted(maps.Keys(s.Meta()))
}

// HasAnyMeta reports whether s carries at least one of keys.
func HasAnyMeta(s Schema, keys map[string]struct{}) bool {
	md := s.Meta()
	if len(md) < len(keys) {
		for k := range md {
			if _, ok := keys[k]; ok {
				return true
			}
		}
		return false
	}
	for k := range keys {
		if _, ok := md[k]; ok {
			return true
		}
	}
	return false
}

// Name returns the name a node is known by, if any: the referenced or bound
// name for references and recursive containers, the model name for models.
func Name(s Schema) string {
	switch x := s.(type) {
	case *RecursiveRef:
		return x.Name
	case *RecursiveContainer:
		return x.Name
	case *ModelSchema:
		return x.Name
	case *ModelClassSchema:
		if m, ok := x.Schema.(*ModelSchema); ok {
			return m.Name
		}
	}
	return ""
}
