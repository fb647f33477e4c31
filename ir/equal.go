package ir

import (
	"reflect"
)

// Equal reports whether a and b are structurally equal: same kinds, same
// constraint fields, same metadata and pairwise equal sub-schemas.
// References compare by name and are never resolved, so Equal terminates
// on any graph whose cycles run through names.
//
// Opaque values (functions, classes, literal values, defaults, config)
// compare with reflect.DeepEqual, except that functions compare by code
// pointer.
func Equal(a, b Schema) bool {
	return equal(a, b, map[[2]Schema]bool{})
}

func equal(a, b Schema, seen map[[2]Schema]bool) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() {
		return false
	}
	key := [2]Schema{a, b}
	if seen[key] {
		return true
	}
	seen[key] = true
	if !sameOpaque(map[string]any(a.Meta()), map[string]any(b.Meta())) {
		return false
	}
	switch x := a.(type) {
	case *AnySchema, *NoneSchema:
		return true
	case *BoolSchema:
		return x.Strict == b.(*BoolSchema).Strict
	case *LiteralSchema:
		return sameOpaque(x.Expected, b.(*LiteralSchema).Expected)
	case *IntSchema:
		y := b.(*IntSchema)
		return eqPtr(x.Gt, y.Gt) && eqPtr(x.Ge, y.Ge) && eqPtr(x.Lt, y.Lt) && eqPtr(x.Le, y.Le) &&
			eqPtr(x.MultipleOf, y.MultipleOf) && x.Strict == y.Strict
	case *FloatSchema:
		y := b.(*FloatSchema)
		return eqPtr(x.Gt, y.Gt) && eqPtr(x.Ge, y.Ge) && eqPtr(x.Lt, y.Lt) && eqPtr(x.Le, y.Le) &&
			eqPtr(x.MultipleOf, y.MultipleOf) && x.AllowInfNaN == y.AllowInfNaN && x.Strict == y.Strict
	case *StrSchema:
		y := b.(*StrSchema)
		return x.Pattern == y.Pattern && eqPtr(x.MinLength, y.MinLength) && eqPtr(x.MaxLength, y.MaxLength) &&
			x.ToLower == y.ToLower && x.ToUpper == y.ToUpper && x.StripWhitespace == y.StripWhitespace &&
			x.Strict == y.Strict
	case *ListSchema:
		y := b.(*ListSchema)
		return eqPtr(x.MinLength, y.MinLength) && eqPtr(x.MaxLength, y.MaxLength) && x.Strict == y.Strict &&
			equal(x.Items, y.Items, seen)
	case *SetSchema:
		y := b.(*SetSchema)
		return eqPtr(x.MinLength, y.MinLength) && eqPtr(x.MaxLength, y.MaxLength) && x.Strict == y.Strict &&
			equal(x.Items, y.Items, seen)
	case *DictSchema:
		y := b.(*DictSchema)
		return eqPtr(x.MinLength, y.MinLength) && eqPtr(x.MaxLength, y.MaxLength) && x.Strict == y.Strict &&
			equal(x.Keys, y.Keys, seen) && equal(x.Values, y.Values, seen)
	case *OptionalSchema:
		y := b.(*OptionalSchema)
		return x.Strict == y.Strict && equal(x.Schema, y.Schema, seen)
	case *UnionSchema:
		y := b.(*UnionSchema)
		if len(x.Choices) != len(y.Choices) || x.Strict != y.Strict || !sameOpaque(x.Default, y.Default) {
			return false
		}
		for i := range x.Choices {
			if !equal(x.Choices[i], y.Choices[i], seen) {
				return false
			}
		}
		return true
	case *ModelSchema:
		y := b.(*ModelSchema)
		if x.Name != y.Name || len(x.Fields) != len(y.Fields) || !sameOpaque(x.Config, y.Config) {
			return false
		}
		for i := range x.Fields {
			if x.Fields[i].Name != y.Fields[i].Name || !equal(x.Fields[i].Schema, y.Fields[i].Schema, seen) {
				return false
			}
		}
		return equal(x.Extra, y.Extra, seen)
	case *ModelClassSchema:
		y := b.(*ModelClassSchema)
		return sameOpaque(x.Class, y.Class) && equal(x.Schema, y.Schema, seen)
	case *FunctionSchema:
		y := b.(*FunctionSchema)
		return x.Mode == y.Mode && sameOpaque(x.Function, y.Function) && equal(x.Schema, y.Schema, seen)
	case *RecursiveRef:
		return x.Name == b.(*RecursiveRef).Name
	case *RecursiveContainer:
		y := b.(*RecursiveContainer)
		return x.Name == y.Name && equal(x.Schema, y.Schema, seen)
	case *DefinitionsSchema:
		y := b.(*DefinitionsSchema)
		if len(x.Definitions) != len(y.Definitions) || !equal(x.Schema, y.Schema, seen) {
			return false
		}
		for i := range x.Definitions {
			if x.Definitions[i].Name != y.Definitions[i].Name ||
				!equal(x.Definitions[i].Schema, y.Definitions[i].Schema, seen) {
				return false
			}
		}
		return true
	}
	return false
}

func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sameOpaque(a, b any) bool {
	return sameValue(reflect.ValueOf(a), reflect.ValueOf(b))
}

// sameValue is reflect.DeepEqual except that functions, at any depth in
// maps, slices and interfaces, are equal when they share code.
func sameValue(a, b reflect.Value) bool {
	if isEmpty(a) && isEmpty(b) {
		return true
	}
	if !a.IsValid() || !b.IsValid() || a.Type() != b.Type() {
		return false
	}
	switch a.Kind() {
	case reflect.Func:
		return a.Pointer() == b.Pointer()
	case reflect.Interface:
		return sameValue(a.Elem(), b.Elem())
	case reflect.Map:
		if a.Len() != b.Len() {
			return false
		}
		iter := a.MapRange()
		for iter.Next() {
			bv := b.MapIndex(iter.Key())
			if !bv.IsValid() || !sameValue(iter.Value(), bv) {
				return false
			}
		}
		return true
	case reflect.Slice, reflect.Array:
		if a.Len() != b.Len() {
			return false
		}
		for i := range a.Len() {
			if !sameValue(a.Index(i), b.Index(i)) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a.Interface(), b.Interface())
}

// isEmpty treats nil and empty maps or slices alike so that a node built
// with an empty Metadata map equals one built without.
func isEmpty(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Map, reflect.Slice:
		return v.Len() == 0
	}
	return false
}
