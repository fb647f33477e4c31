package ir

// Schema is one node of the schema IR. The set of implementations is closed:
// every kind in Kinds has exactly one pointer type implementing Schema.
//
// Schemas are built once by a caller and then only read. Node identity is
// pointer identity; two structurally equal nodes are still distinct nodes.
type Schema interface {
	Kind() Kind
	Meta() Metadata
	schema()
}

// Metadata carries transient annotations attached to a node, for example
// hints consumed by a later cleaning pass.
type Metadata map[string]any

// Common holds the fields shared by every node kind.
type Common struct {
	Metadata Metadata
}

func (c *Common) Meta() Metadata { return c.Metadata }

// SetMeta sets a metadata key. It is meant for use while a schema graph is
// being constructed.
func (c *Common) SetMeta(key string, v any) {
	if c.Metadata == nil {
		c.Metadata = Metadata{}
	}
	c.Metadata[key] = v
}

func (*Common) schema() {}

type AnySchema struct {
	Common
}

type BoolSchema struct {
	Common
	Strict bool
}

type NoneSchema struct {
	Common
}

// LiteralSchema accepts exactly one of Expected.
type LiteralSchema struct {
	Common
	Expected []any
}

type IntSchema struct {
	Common
	Gt, Ge, Lt, Le *int64
	MultipleOf     *int64
	Strict         bool
}

type FloatSchema struct {
	Common
	Gt, Ge, Lt, Le *float64
	MultipleOf     *float64
	AllowInfNaN    bool
	Strict         bool
}

type StrSchema struct {
	Common
	Pattern         string
	MinLength       *int
	MaxLength       *int
	ToLower         bool
	ToUpper         bool
	StripWhitespace bool
	Strict          bool
}

type ListSchema struct {
	Common
	Items     Schema
	MinLength *int
	MaxLength *int
	Strict    bool
}

type SetSchema struct {
	Common
	Items     Schema
	MinLength *int
	MaxLength *int
	Strict    bool
}

type DictSchema struct {
	Common
	Keys      Schema
	Values    Schema
	MinLength *int
	MaxLength *int
	Strict    bool
}

type OptionalSchema struct {
	Common
	Schema Schema
	Strict bool
}

// UnionSchema tries Choices in order. Default, when non-nil, is handed to
// the validation engine untouched.
type UnionSchema struct {
	Common
	Choices []Schema
	Default any
	Strict  bool
}

// Field is one named entry of a model, in declaration order.
type Field struct {
	Name   string
	Schema Schema
}

type ModelSchema struct {
	Common
	Name   string
	Fields []Field
	// Extra validates fields not named in Fields.
	Extra  Schema
	Config map[string]any
}

// ModelClassSchema pairs a model with a class identity that only the
// validation engine interprets.
type ModelClassSchema struct {
	Common
	Class  any
	Schema Schema
}

type FunctionMode string

const (
	ModeBefore FunctionMode = "before"
	ModeAfter  FunctionMode = "after"
	ModePlain  FunctionMode = "plain"
	ModeWrap   FunctionMode = "wrap"
)

func (m FunctionMode) Valid() bool {
	switch m {
	case ModeBefore, ModeAfter, ModePlain, ModeWrap:
		return true
	}
	return false
}

// FunctionSchema wraps an external transform. Plain functions replace
// validation entirely and carry no Schema; the other modes wrap Schema.
type FunctionSchema struct {
	Common
	Mode     FunctionMode
	Function any
	Schema   Schema
}

// RecursiveRef stands for the schema bound to Name in a definition
// registry. It never holds its target.
type RecursiveRef struct {
	Common
	Name string
}

// RecursiveContainer binds Name to Schema where it appears, acting as an
// inline definition.
type RecursiveContainer struct {
	Common
	Name   string
	Schema Schema
}

// Definition is a named schema of a DefinitionsSchema.
type Definition struct {
	Name   string
	Schema Schema
}

// DefinitionsSchema carries named definitions alongside the entry Schema
// which is the logical root.
type DefinitionsSchema struct {
	Common
	Schema      Schema
	Definitions []Definition
}

func (*AnySchema) Kind() Kind          { return AnyKind }
func (*BoolSchema) Kind() Kind         { return BoolKind }
func (*NoneSchema) Kind() Kind         { return NoneKind }
func (*LiteralSchema) Kind() Kind      { return LiteralKind }
func (*IntSchema) Kind() Kind          { return IntKind }
func (*FloatSchema) Kind() Kind        { return FloatKind }
func (*StrSchema) Kind() Kind          { return StrKind }
func (*ListSchema) Kind() Kind         { return ListKind }
func (*SetSchema) Kind() Kind          { return SetKind }
func (*DictSchema) Kind() Kind         { return DictKind }
func (*OptionalSchema) Kind() Kind     { return OptionalKind }
func (*UnionSchema) Kind() Kind        { return UnionKind }
func (*ModelSchema) Kind() Kind        { return ModelKind }
func (*ModelClassSchema) Kind() Kind   { return ModelClassKind }
func (*FunctionSchema) Kind() Kind     { return FunctionKind }
func (*RecursiveRef) Kind() Kind       { return RecursiveRefKind }
func (*RecursiveContainer) Kind() Kind { return RecursiveContainerKind }
func (*DefinitionsSchema) Kind() Kind  { return DefinitionsKind }

// Leaf expands a bare type name into a fresh leaf node. It is the
// programmatic counterpart of the shorthand accepted in schema records.
func Leaf(name string) (Schema, error) {
	k, err := ParseKind(name)
	if err != nil {
		return nil, &WellFormednessError{Reason: err.Error()}
	}
	if !k.HasShorthand() {
		return nil, &WellFormednessError{Reason: "kind " + name + " has no shorthand form"}
	}
	switch k {
	case AnyKind:
		return &AnySchema{}, nil
	case BoolKind:
		return &BoolSchema{}, nil
	case NoneKind:
		return &NoneSchema{}, nil
	case IntKind:
		return &IntSchema{}, nil
	case FloatKind:
		return &FloatSchema{}, nil
	case StrKind:
		return &StrSchema{}, nil
	}
	panic("shorthand kind")
}

// MustLeaf is like Leaf but panics on an unknown name.
func MustLeaf(name string) Schema {
	s, err := Leaf(name)
	if err != nil {
		panic(err)
	}
	return s
}

func Ref(name string) *RecursiveRef {
	return &RecursiveRef{Name: name}
}

func List(items Schema) *ListSchema {
	return &ListSchema{Items: items}
}

func Dict(keys, values Schema) *DictSchema {
	return &DictSchema{Keys: keys, Values: values}
}

func Optional(s Schema) *OptionalSchema {
	return &OptionalSchema{Schema: s}
}

func Union(choices ...Schema) *UnionSchema {
	return &UnionSchema{Choices: choices}
}

func Model(name string, fields ...Field) *ModelSchema {
	return &ModelSchema{Name: name, Fields: fields}
}

func Definitions(entry Schema, defs ...Definition) *DefinitionsSchema {
	return &DefinitionsSchema{Schema: entry, Definitions: defs}
}

// WithMeta sets key on s and returns s, for use in composite literals.
func WithMeta[S Schema](s S, key string, v any) S {
	if c, ok := any(s).(interface{ SetMeta(string, any) }); ok {
		c.SetMeta(key, v)
	}
	return s
}
