// Package mergeop computes and applies patches between schemas in record
// form, as JSON merge patches (RFC 7386) or JSON patches (RFC 6902).
package mergeop

import (
	"bytes"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/signadot/schemair/debug"
	"github.com/signadot/schemair/encode"
	"github.com/signadot/schemair/gomap"
	"github.com/signadot/schemair/ir"
)

// MarshalJSON returns the record form of s as JSON, without shorthand so
// that every node is an object.
func MarshalJSON(s ir.Schema) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(s, buf, encode.EncodeJSON(true), encode.EncodeShorthand(false)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalDocumentJSON is like MarshalJSON for a root with definitions.
func MarshalDocumentJSON(root ir.Schema, defs []ir.Definition) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.EncodeDocument(root, defs, buf, encode.EncodeJSON(true), encode.EncodeShorthand(false)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MergePatch returns the JSON merge patch turning before into after.
func MergePatch(before, after ir.Schema) ([]byte, error) {
	b, err := MarshalJSON(before)
	if err != nil {
		return nil, err
	}
	a, err := MarshalJSON(after)
	if err != nil {
		return nil, err
	}
	return createMergePatch(b, a)
}

// DocumentMergePatch is like MergePatch for documents.
func DocumentMergePatch(before, after *gomap.Document) ([]byte, error) {
	b, err := MarshalDocumentJSON(before.Schema, before.Definitions)
	if err != nil {
		return nil, err
	}
	a, err := MarshalDocumentJSON(after.Schema, after.Definitions)
	if err != nil {
		return nil, err
	}
	return createMergePatch(b, a)
}

func createMergePatch(b, a []byte) ([]byte, error) {
	patch, err := jsonpatch.CreateMergePatch(b, a)
	if err != nil {
		return nil, fmt.Errorf("could not create merge patch: %w", err)
	}
	if debug.Decode() {
		debug.Logf("merge patch %s\n", patch)
	}
	return patch, nil
}

// ApplyMergePatch applies a JSON merge patch to s and decodes the result.
func ApplyMergePatch(s ir.Schema, patch []byte, opts ...gomap.DecodeOption) (ir.Schema, error) {
	d, err := MarshalJSON(s)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(d, patch)
	if err != nil {
		return nil, fmt.Errorf("could not apply merge patch: %w", err)
	}
	return gomap.Load(out, opts...)
}

// ApplyPatch applies JSON patch operations to s and decodes the result.
func ApplyPatch(s ir.Schema, ops []byte, opts ...gomap.DecodeOption) (ir.Schema, error) {
	patch, err := jsonpatch.DecodePatch(ops)
	if err != nil {
		return nil, fmt.Errorf("could not decode json patch: %w", err)
	}
	d, err := MarshalJSON(s)
	if err != nil {
		return nil, err
	}
	out, err := patch.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("could not apply json patch: %w", err)
	}
	return gomap.Load(out, opts...)
}
