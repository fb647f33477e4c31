package gomap

import (
	"github.com/signadot/schemair/ir"
	"github.com/signadot/schemair/schema"
)

// Document is a root schema together with the definitions supplied
// alongside it.
//
// In record form a document is either a bare schema record or a mapping
// with a "schema" field and an optional "definitions" field, the latter in
// either of the forms accepted by definitions nodes. Paths in errors are
// rooted at the schema, with definitions under $.definitions.
type Document struct {
	Schema      ir.Schema
	Definitions []ir.Definition
}

func LoadDocument(d []byte, opts ...DecodeOption) (*Document, error) {
	v, err := unmarshal(d)
	if err != nil {
		return nil, err
	}
	return DocumentFromRecord(v, opts...)
}

func DocumentFromRecord(v any, opts ...DecodeOption) (*Document, error) {
	dec := newDecoder(opts)
	ents, ok, err := entries(v)
	if err != nil {
		return nil, malformed(nil, "%v", err)
	}
	if !ok || !isDocument(ents) {
		s, err := dec.schema(v, nil)
		if err != nil {
			return nil, err
		}
		return &Document{Schema: s}, nil
	}
	doc := &Document{}
	for _, e := range ents {
		switch e.key {
		case "schema":
			doc.Schema, err = dec.schema(e.val, nil)
		case "definitions":
			doc.Definitions, err = dec.definitions(e.val, ir.Path{}.Field("definitions"))
		default:
			err = dec.unknown(ir.DefinitionsKind, nil, e.key)
		}
		if err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func isDocument(ents []entry) bool {
	var hasSchema bool
	for _, e := range ents {
		switch e.key {
		case "type":
			return false
		case "schema":
			hasSchema = true
		}
	}
	return hasSchema
}

// Registry builds the sealed registry of the document: its definitions
// followed by those embedded in the schema.
func (doc *Document) Registry(opts ...schema.RegistryOption) (*schema.Registry, error) {
	return schema.Build(doc.Schema, doc.Definitions, opts...)
}
