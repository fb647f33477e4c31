package ir

import (
	"math"
	"reflect"
	"regexp"
)

// Check verifies the kind-specific rules of s alone, without descending
// into sub-schemas. Paths in the returned error are relative to s.
func Check(s Schema) error {
	if isNil(s) {
		return malformed(nil, "missing schema")
	}
	var p Path
	switch x := s.(type) {
	case *AnySchema, *BoolSchema, *NoneSchema:
		return nil
	case *LiteralSchema:
		if len(x.Expected) == 0 {
			return malformed(p.Field("expected"), "literal requires at least one expected value")
		}
		return nil
	case *IntSchema:
		if err := checkRange(p, x.Gt, x.Ge, x.Lt, x.Le, x.MultipleOf); err != nil {
			return err
		}
		if x.Gt != nil && x.Lt != nil && *x.Gt < *x.Lt && *x.Lt-1 == *x.Gt {
			return malformed(p, "no integer lies strictly between gt=%d and lt=%d", *x.Gt, *x.Lt)
		}
		return nil
	case *FloatSchema:
		for _, b := range []struct {
			name string
			v    *float64
		}{{"gt", x.Gt}, {"ge", x.Ge}, {"lt", x.Lt}, {"le", x.Le}} {
			if b.v != nil && math.IsNaN(*b.v) {
				return malformed(p.Field(b.name), "bound is NaN")
			}
		}
		return checkRange(p, x.Gt, x.Ge, x.Lt, x.Le, x.MultipleOf)
	case *StrSchema:
		if x.Pattern != "" {
			if _, err := regexp.Compile(x.Pattern); err != nil {
				return malformed(p.Field("pattern"), "%v", err)
			}
		}
		if x.ToLower && x.ToUpper {
			return malformed(p.Field("to_upper"), "to_lower and to_upper are exclusive")
		}
		return checkSize(p, x.MinLength, x.MaxLength)
	case *ListSchema:
		return checkSize(p, x.MinLength, x.MaxLength)
	case *SetSchema:
		return checkSize(p, x.MinLength, x.MaxLength)
	case *DictSchema:
		return checkSize(p, x.MinLength, x.MaxLength)
	case *OptionalSchema:
		if isNil(x.Schema) {
			return malformed(p.Field("schema"), "optional requires an inner schema")
		}
		return nil
	case *UnionSchema:
		if len(x.Choices) == 0 {
			return malformed(p.Field("choices"), "union requires at least one choice")
		}
		for i, c := range x.Choices {
			if isNil(c) {
				return malformed(p.Field("choices").Index(i), "missing schema")
			}
		}
		return nil
	case *ModelSchema:
		seen := make(map[string]bool, len(x.Fields))
		for i, f := range x.Fields {
			if f.Name == "" {
				return malformed(p.Field("fields").Index(i), "field has no name")
			}
			if seen[f.Name] {
				return malformed(p.Field("fields").Field(f.Name), "duplicate field name %q", f.Name)
			}
			seen[f.Name] = true
			if isNil(f.Schema) {
				return malformed(p.Field("fields").Field(f.Name), "missing schema")
			}
		}
		return nil
	case *ModelClassSchema:
		if x.Class == nil {
			return malformed(p.Field("cls"), "model-class requires a class")
		}
		if isNil(x.Schema) {
			return malformed(p.Field("schema"), "model-class requires a model schema")
		}
		if x.Schema.Kind() != ModelKind {
			return malformed(p.Field("schema"), "model-class wraps a %s, want model", x.Schema.Kind())
		}
		return nil
	case *FunctionSchema:
		if !x.Mode.Valid() {
			return malformed(p.Field("mode"), "unknown function mode %q", x.Mode)
		}
		if x.Function == nil {
			return malformed(p.Field("function"), "missing function")
		}
		hasInner := !isNil(x.Schema)
		if x.Mode == ModePlain && hasInner {
			return malformed(p.Field("schema"), "plain function must not carry a schema")
		}
		if x.Mode != ModePlain && !hasInner {
			return malformed(p.Field("schema"), "%s function requires a schema", x.Mode)
		}
		return nil
	case *RecursiveRef:
		if x.Name == "" {
			return malformed(p.Field("name"), "reference has no name")
		}
		return nil
	case *RecursiveContainer:
		if x.Name == "" {
			return malformed(p.Field("name"), "recursive-container has no name")
		}
		if isNil(x.Schema) {
			return malformed(p.Field("schema"), "missing schema")
		}
		return nil
	case *DefinitionsSchema:
		if isNil(x.Schema) {
			return malformed(p.Field("schema"), "definitions requires an entry schema")
		}
		seen := make(map[string]bool, len(x.Definitions))
		for i, d := range x.Definitions {
			if d.Name == "" {
				return malformed(p.Field("definitions").Index(i), "definition has no name")
			}
			if seen[d.Name] {
				return malformed(p.Field("definitions").Field(d.Name), "duplicate definition %q", d.Name)
			}
			seen[d.Name] = true
			if isNil(d.Schema) {
				return malformed(p.Field("definitions").Field(d.Name), "missing schema")
			}
		}
		return nil
	default:
		return malformed(p, "unknown schema kind %T", s)
	}
}

func checkSize(p Path, minLen, maxLen *int) error {
	if minLen != nil && *minLen < 0 {
		return malformed(p.Field("min_length"), "negative size %d", *minLen)
	}
	if maxLen != nil && *maxLen < 0 {
		return malformed(p.Field("max_length"), "negative size %d", *maxLen)
	}
	if minLen != nil && maxLen != nil && *minLen > *maxLen {
		return malformed(p, "min_length %d exceeds max_length %d", *minLen, *maxLen)
	}
	return nil
}

// checkRange flags bounds that are ambiguous (two bounds on one side) or
// that admit no value. It does not pick one of two conflicting bounds.
func checkRange[T int64 | float64](p Path, gt, ge, lt, le, multipleOf *T) error {
	if gt != nil && ge != nil {
		return malformed(p.Field("ge"), "gt and ge both bound the lower side")
	}
	if lt != nil && le != nil {
		return malformed(p.Field("le"), "lt and le both bound the upper side")
	}
	if multipleOf != nil && !(*multipleOf > 0) {
		return malformed(p.Field("multiple_of"), "must be positive, got %v", *multipleOf)
	}
	lo, loExcl := ge, false
	if gt != nil {
		lo, loExcl = gt, true
	}
	hi, hiExcl := le, false
	if lt != nil {
		hi, hiExcl = lt, true
	}
	if lo == nil || hi == nil {
		return nil
	}
	if *lo > *hi || (*lo == *hi && (loExcl || hiExcl)) {
		return malformed(p, "bounds %v..%v describe an empty range", *lo, *hi)
	}
	return nil
}

func isNil(s Schema) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
