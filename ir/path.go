package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// PathElem is one step of a Path: a field name or, when IsIndex is set,
// a position in a list-valued field.
type PathElem struct {
	Field   string
	Index   int
	IsIndex bool
}

// Path locates a node by the field names and indices leading to it from a
// root. The zero Path is the root itself and renders as "$".
type Path []PathElem

func (p Path) String() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, e := range p {
		if e.IsIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(e.Index))
			b.WriteByte(']')
			continue
		}
		b.WriteByte('.')
		b.WriteString(pathString(e.Field))
	}
	return b.String()
}

// Field returns a new path extending p by field f. p is not modified.
func (p Path) Field(f string) Path {
	return append(p[:len(p):len(p)], PathElem{Field: f})
}

// Index returns a new path extending p by index i. p is not modified.
func (p Path) Index(i int) Path {
	return append(p[:len(p):len(p)], PathElem{Index: i, IsIndex: true})
}

// Join returns a new path with q appended to p.
func (p Path) Join(q Path) Path {
	res := make(Path, 0, len(p)+len(q))
	res = append(res, p...)
	return append(res, q...)
}

func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

func ParsePath(p string) (Path, error) {
	if len(p) == 0 || p[0] != '$' {
		return nil, fmt.Errorf("path %q should start with '$'", p)
	}
	var res Path
	frag := p[1:]
	for len(frag) != 0 {
		switch frag[0] {
		case '.':
			field, rest, err := parseField(frag[1:])
			if err != nil {
				return nil, fmt.Errorf("path %q: %w", p, err)
			}
			res = append(res, PathElem{Field: field})
			frag = rest
		case '[':
			i := strings.IndexByte(frag[1:], ']')
			if i == -1 {
				return nil, fmt.Errorf("path %q: expected '[' <index> ']'", p)
			}
			index, err := strconv.ParseUint(frag[1:i+1], 10, 31)
			if err != nil {
				return nil, fmt.Errorf("path %q: %w", p, err)
			}
			res = append(res, PathElem{Index: int(index), IsIndex: true})
			frag = frag[i+2:]
		default:
			return nil, fmt.Errorf("path %q: expected '.' or '['", p)
		}
	}
	return res, nil
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] != '\'' {
		i := strings.IndexAny(frag, ".[")
		if i == -1 {
			return frag, "", nil
		}
		if i == 0 {
			return "", "", fmt.Errorf("empty field")
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch {
		case c == '\\' && !escaped:
			escaped = true
		case c == '\'' && !escaped:
			return string(res), frag[i+1:], nil
		default:
			escaped = false
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("end of string scanning for \"'\"")
}

func pathString(f string) string {
	if f != "" && strings.IndexAny(f, "'.*$[]\\") == -1 {
		return f
	}
	r := strings.NewReplacer("\\", "\\\\", "'", "\\'")
	return "'" + r.Replace(f) + "'"
}

// At returns the node reached from root by following p through
// Schema-typed fields. References are not resolved.
func At(root Schema, p Path) (Schema, error) {
	cur := root
	for len(p) != 0 {
		if cur == nil {
			return nil, fmt.Errorf("no schema at %s", p)
		}
		found := false
		for _, c := range Children(cur) {
			if len(c.Path) > len(p) || !c.Path.Equal(p[:len(c.Path)]) {
				continue
			}
			cur = c.Schema
			p = p[len(c.Path):]
			found = true
			break
		}
		if !found {
			return nil, fmt.Errorf("%s has no sub-schema at %s", cur.Kind(), p)
		}
	}
	if cur == nil {
		return nil, fmt.Errorf("no schema at path")
	}
	return cur, nil
}
