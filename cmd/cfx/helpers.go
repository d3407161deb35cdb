package main

import (
	"sort"

	"github.com/confix-format/go-confix/store"
)

func callOptions(cfg *MainConfig, scheme string) []store.CallOption {
	res := []store.CallOption{}
	if scheme != "" {
		res = append(res, store.Scheme(scheme))
	}
	return res
}

// project decodes every top-level record into a plain map. Records that
// fail to decode (typically envelopes with no password on hand) fall
// back to their stored transport text; a display or query context
// tolerates opaque values.
func project(s *store.Store) map[string]any {
	res := map[string]any{}
	for _, r := range s.Records() {
		if r.IsRaw() {
			continue
		}
		if _, seen := res[r.Name]; seen {
			// first match wins, same as Get
			continue
		}
		v, err := s.Get(r.Name)
		if err != nil {
			res[r.Name] = r.Value
			continue
		}
		res[r.Name] = v
	}
	return res
}

// importMap sets every entry of m into the store, re-typing values by
// inference. Keys are applied in sorted order for determinism.
func importMap(s *store.Store, m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := s.Set(k, normalize(m[k])); err != nil {
			return err
		}
	}
	return nil
}

// normalize maps decoder output (yaml/json) onto the codec's input
// types: map[any]any keys become strings, json numbers stay float64.
func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := map[string]any{}
		for k, e := range x {
			out[k] = normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalize(e)
		}
		return out
	default:
		return v
	}
}
