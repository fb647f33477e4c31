package schema

import (
	"errors"
	"fmt"

	"github.com/signadot/schemair/ir"
)

var (
	ErrDuplicateDefinition = errors.New("duplicate definition")
	ErrUnknownReference    = errors.New("unknown reference")
	ErrSealed              = errors.New("registry is sealed")
)

// DuplicateDefinitionError reports a name bound to two structurally
// different schemas. Diff is a line diff from the existing binding to the
// rejected one.
type DuplicateDefinitionError struct {
	Name string
	Path ir.Path
	Diff string
}

func (e *DuplicateDefinitionError) Error() string {
	msg := fmt.Sprintf("%s %q at %s", ErrDuplicateDefinition, e.Name, e.Path)
	if e.Diff == "" {
		return msg
	}
	return msg + ":\n" + e.Diff
}

func (e *DuplicateDefinitionError) Unwrap() error {
	return ErrDuplicateDefinition
}

// UnknownReferenceError reports a reference whose name has no binding at
// the time it is resolved. Path locates the reference.
type UnknownReferenceError struct {
	Name string
	Path ir.Path
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("%s %q at %s", ErrUnknownReference, e.Name, e.Path)
}

func (e *UnknownReferenceError) Unwrap() error {
	return ErrUnknownReference
}
