package ir

import (
	"errors"
	"fmt"
)

var ErrWellFormedness = errors.New("malformed schema")

// WellFormednessError reports a node that violates the structural rules of
// its kind. Path locates the offending field from the root that was being
// validated or traversed.
type WellFormednessError struct {
	Path   Path
	Reason string
}

func (e *WellFormednessError) Error() string {
	return fmt.Sprintf("%s at %s: %s", ErrWellFormedness, e.Path, e.Reason)
}

func (e *WellFormednessError) Unwrap() error {
	return ErrWellFormedness
}

// Within returns a copy of e with prefix prepended to its path.
func (e *WellFormednessError) Within(prefix Path) *WellFormednessError {
	return &WellFormednessError{Path: prefix.Join(e.Path), Reason: e.Reason}
}

func malformed(p Path, format string, args ...any) *WellFormednessError {
	return &WellFormednessError{Path: p, Reason: fmt.Sprintf(format, args...)}
}
