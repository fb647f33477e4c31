package eval

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/expr-lang/expr"
)

var (
	mu sync.RWMutex
	d  = map[string]*Func{}
)

var ErrFuncExists = errors.New("function exists")

// Func is a function made available to every predicate compiled after it
// is registered. Types are the signatures checked at compile time, as
// given to expr.Function.
type Func struct {
	Name  string
	Fn    func(params ...any) (any, error)
	Types []any
}

func Register(f *Func) error {
	mu.Lock()
	defer mu.Unlock()
	if _, present := d[f.Name]; present {
		return fmt.Errorf("%s: %w", f.Name, ErrFuncExists)
	}
	d[f.Name] = f
	return nil
}

func init() {
	Register(&Func{
		Name: "getenv",
		Fn: func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
		Types: []any{new(func(string) string)},
	})
}

func Lookup(name string) *Func {
	mu.RLock()
	defer mu.RUnlock()
	return d[name]
}

// Funcs returns the registered functions ordered by name.
func Funcs() []*Func {
	mu.RLock()
	defer mu.RUnlock()
	res := make([]*Func, 0, len(d))
	for _, name := range slices.Sorted(maps.Keys(d)) {
		res = append(res, d[name])
	}
	return res
}

func exprOpts() []expr.Option {
	funcs := Funcs()
	res := make([]expr.Option, 0, len(funcs))
	for _, f := range funcs {
		res = append(res, expr.Function(f.Name, f.Fn, f.Types...))
	}
	return res
}
