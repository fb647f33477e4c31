package gomap

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/goccy/go-yaml"
)

// entry is one key of a record, in document order when the record kept
// its order.
type entry struct {
	key string
	val any
}

// entries returns the keys of a mapping value. Ordered mappings keep their
// order; Go maps are sorted by key.
func entries(v any) ([]entry, bool, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		res := make([]entry, len(x))
		for i, item := range x {
			k, ok := item.Key.(string)
			if !ok {
				return nil, true, fmt.Errorf("mapping key %v is not a string", item.Key)
			}
			res[i] = entry{key: k, val: item.Value}
		}
		return res, true, nil
	case map[string]any:
		res := make([]entry, 0, len(x))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			res = append(res, entry{key: k, val: x[k]})
		}
		return res, true, nil
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			ks, ok := k.(string)
			if !ok {
				return nil, true, fmt.Errorf("mapping key %v is not a string", k)
			}
			m[ks] = v
		}
		return entries(m)
	}
	return nil, false, nil
}

// plain converts decoded YAML into plain Go values: ordered mappings
// become map[string]any and integers become int64 where they fit.
func plain(v any) any {
	switch x := v.(type) {
	case yaml.MapSlice:
		res := make(map[string]any, len(x))
		for _, item := range x {
			res[fmt.Sprint(item.Key)] = plain(item.Value)
		}
		return res
	case map[string]any:
		res := make(map[string]any, len(x))
		for k, v := range x {
			res[k] = plain(v)
		}
		return res
	case []any:
		res := make([]any, len(x))
		for i, v := range x {
			res[i] = plain(v)
		}
		return res
	case uint64:
		if x <= math.MaxInt64 {
			return int64(x)
		}
	case int:
		return int64(x)
	}
	return v
}
