// Package starlark loads custom lint rules written in Starlark.
// Rule files live in the project's rules directory; each file calls
// register_rule(...) at load time, and the registered checks then run
// against every visited property alongside the built-in rules.
package starlark

import (
	"fmt"

	"github.com/apistyle/apilint/pkg/lint"
	"github.com/apistyle/apilint/pkg/schema"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// PropertyToStarlark converts a visited property into the struct value
// handed to custom checks. Exposed fields: name, path, type, format,
// and schema (the full node as a dict, keys in declaration order).
func PropertyToStarlark(prop *lint.Property) (starlark.Value, error) {
	schemaDict, err := ObjectToStarlark(prop.Schema)
	if err != nil {
		return nil, fmt.Errorf("schema node at %s: %w", prop.Path, err)
	}

	return starlarkstruct.FromStringDict(starlark.String("property"), starlark.StringDict{
		"name":   starlark.String(prop.Name),
		"path":   starlark.String(prop.Path),
		"type":   starlark.String(prop.Schema.Type()),
		"format": starlark.String(prop.Schema.Format()),
		"schema": schemaDict,
	}), nil
}

// ObjectToStarlark converts a schema mapping to a Starlark dict. Key
// order follows declaration order, which Starlark dicts preserve.
func ObjectToStarlark(o *schema.Object) (starlark.Value, error) {
	if o == nil {
		return starlark.NewDict(0), nil
	}

	d := starlark.NewDict(o.Len())
	for _, key := range o.Keys() {
		raw, _ := o.Get(key)
		sv, err := GoToStarlark(raw)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		if err := d.SetKey(starlark.String(key), sv); err != nil {
			return nil, fmt.Errorf("set key %q: %w", key, err)
		}
	}
	return d, nil
}

// GoToStarlark converts a decoded schema value to its Starlark
// counterpart. Scalars map directly; mappings and sequences convert
// recursively.
func GoToStarlark(v any) (starlark.Value, error) {
	switch gv := v.(type) {
	case nil:
		return starlark.None, nil
	case string:
		return starlark.String(gv), nil
	case int:
		return starlark.MakeInt(gv), nil
	case int64:
		return starlark.MakeInt64(gv), nil
	case float64:
		return starlark.Float(gv), nil
	case bool:
		return starlark.Bool(gv), nil
	case *schema.Object:
		return ObjectToStarlark(gv)
	case []schema.Value:
		return sequenceToStarlark(len(gv), func(i int) any { return gv[i] })
	case []string:
		return sequenceToStarlark(len(gv), func(i int) any { return gv[i] })
	case []any:
		return sequenceToStarlark(len(gv), func(i int) any { return gv[i] })
	case map[string]any:
		d := starlark.NewDict(len(gv))
		for k, el := range gv {
			sv, err := GoToStarlark(el)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			if err := d.SetKey(starlark.String(k), sv); err != nil {
				return nil, fmt.Errorf("set key %q: %w", k, err)
			}
		}
		return d, nil
	default:
		return nil, fmt.Errorf("no Starlark equivalent for %T", v)
	}
}

// sequenceToStarlark builds a Starlark list from an indexed sequence.
func sequenceToStarlark(n int, at func(int) any) (starlark.Value, error) {
	elems := make([]starlark.Value, n)
	for i := 0; i < n; i++ {
		sv, err := GoToStarlark(at(i))
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		elems[i] = sv
	}
	return starlark.NewList(elems), nil
}

// ToGo converts a Starlark value produced by a check back to plain Go.
// Scalars, lists, tuples, and string-keyed dicts are handled; any
// other value decays to its string form.
func ToGo(v starlark.Value) (any, error) {
	switch sv := v.(type) {
	case starlark.NoneType:
		return nil, nil
	case starlark.String:
		return string(sv), nil
	case starlark.Int:
		if i64, ok := sv.Int64(); ok {
			return i64, nil
		}
		// Integers beyond int64 decay to their decimal string
		return sv.String(), nil
	case starlark.Float:
		return float64(sv), nil
	case starlark.Bool:
		return bool(sv), nil
	case *starlark.List:
		return indexedToGo(sv.Len(), sv.Index)
	case starlark.Tuple:
		return indexedToGo(sv.Len(), sv.Index)
	case *starlark.Dict:
		out := make(map[string]any, sv.Len())
		for _, pair := range sv.Items() {
			key, ok := pair[0].(starlark.String)
			if !ok {
				return nil, fmt.Errorf("non-string dict key %T", pair[0])
			}
			gv, err := ToGo(pair[1])
			if err != nil {
				return nil, fmt.Errorf("value for %q: %w", key, err)
			}
			out[string(key)] = gv
		}
		return out, nil
	default:
		return sv.String(), nil
	}
}

// indexedToGo converts an indexable Starlark sequence to a Go slice.
func indexedToGo(n int, index func(int) starlark.Value) ([]any, error) {
	out := make([]any, n)
	for i := 0; i < n; i++ {
		gv, err := ToGo(index(i))
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = gv
	}
	return out, nil
}
