package ir

import "fmt"

type Kind int

const (
	InvalidKind Kind = iota
	AnyKind
	BoolKind
	NoneKind
	LiteralKind
	IntKind
	FloatKind
	StrKind
	ListKind
	SetKind
	DictKind
	OptionalKind
	UnionKind
	ModelKind
	ModelClassKind
	FunctionKind
	RecursiveRefKind
	RecursiveContainerKind
	DefinitionsKind
)

var kindTags = map[Kind]string{
	AnyKind:                "any",
	BoolKind:               "bool",
	NoneKind:               "none",
	LiteralKind:            "literal",
	IntKind:                "int",
	FloatKind:              "float",
	StrKind:                "str",
	ListKind:               "list",
	SetKind:                "set",
	DictKind:               "dict",
	OptionalKind:           "optional",
	UnionKind:              "union",
	ModelKind:              "model",
	ModelClassKind:         "model-class",
	FunctionKind:           "function",
	RecursiveRefKind:       "recursive-ref",
	RecursiveContainerKind: "recursive-container",
	DefinitionsKind:        "definitions",
}

var tagKinds = func() map[string]Kind {
	res := make(map[string]Kind, len(kindTags))
	for k, s := range kindTags {
		res[s] = k
	}
	return res
}()

// String returns the kind tag as it appears in the "type" field of a
// schema record.
func (k Kind) String() string {
	s, ok := kindTags[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindTags[k]; !ok {
		return nil, fmt.Errorf("unknown kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, err := ParseKind(string(d))
	if err != nil {
		return err
	}
	*k = kk
	return nil
}

// ParseKind maps a kind tag to its Kind.
func ParseKind(tag string) (Kind, error) {
	k, ok := tagKinds[tag]
	if !ok {
		return InvalidKind, fmt.Errorf("unrecognized kind %q", tag)
	}
	return k, nil
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	res := make([]Kind, 0, len(kindTags))
	for k := AnyKind; k <= DefinitionsKind; k++ {
		res = append(res, k)
	}
	return res
}

// IsLeaf reports whether schemas of this kind have no Schema-typed fields.
func (k Kind) IsLeaf() bool {
	switch k {
	case AnyKind, BoolKind, NoneKind, LiteralKind, IntKind, FloatKind, StrKind:
		return true
	default:
		return false
	}
}

// HasShorthand reports whether a bare type-name string may stand in for a
// schema of this kind.
func (k Kind) HasShorthand() bool {
	switch k {
	case AnyKind, BoolKind, NoneKind, IntKind, FloatKind, StrKind:
		return true
	default:
		return false
	}
}
