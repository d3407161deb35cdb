package gomap

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/confix-format/go-confix/crypt"
	"github.com/confix-format/go-confix/encode"
	"github.com/confix-format/go-confix/ir"
	"github.com/confix-format/go-confix/token"
)

// ToRecord converts a Go value to a record named name. Slices expand to
// index-named children, maps to Key/Value child pairs, credentials to
// two comma-joined envelope blobs. WithScheme wraps the result in an
// encryption envelope whose payload is the serialized record.
func ToRecord(name string, v any, opts ...Option) (*ir.Record, error) {
	o := getOpts(opts)
	name = strings.TrimPrefix(name, "$")
	if err := token.ValidName(name); err != nil {
		return nil, err
	}
	if c, ok := credentialValue(v); ok {
		return credentialRecord(name, c, o)
	}
	if o.scheme == "" {
		return toRecord(name, v, o)
	}
	inner := *o
	inner.scheme = ""
	rec, err := toRecord(name, v, &inner)
	if err != nil {
		return nil, err
	}
	p, err := crypt.ForScheme(o.scheme, o.password)
	if err != nil {
		return nil, err
	}
	ct, err := p.Protect(encode.Join([]*ir.Record{rec}))
	if err != nil {
		return nil, err
	}
	return ir.Scalar(name, p.Scheme(), ct), nil
}

func toRecord(name string, v any, o *mapOpts) (*ir.Record, error) {
	if v != nil && o.tag == "" {
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			return expandArray(name, rv, o)
		case reflect.Map:
			return expandMap(name, rv, o)
		}
	}
	text, tag, err := toText(v, o)
	if err != nil {
		return nil, &MarshalError{Name: name, Message: "encoding scalar", Err: err}
	}
	return ir.Scalar(name, tag, text), nil
}

// expandArray names children by zero-based position. A failed element is
// isolated: it becomes a blank child with a warning so index alignment
// survives.
func expandArray(name string, rv reflect.Value, o *mapOpts) (*ir.Record, error) {
	co := o.child()
	children := make([]*ir.Record, 0, rv.Len())
	elemTag := ""
	uniform := true
	for i := 0; i < rv.Len(); i++ {
		elemName := strconv.Itoa(i)
		child, err := toRecord(elemName, elemValue(rv.Index(i)), co)
		if err != nil {
			o.warn(&MarshalError{Name: name + "." + elemName, Message: "element dropped to blank", Err: err})
			child = ir.Scalar(elemName, ir.StringTag, "")
		}
		children = append(children, child)
		switch {
		case elemTag == "":
			elemTag = child.Tag
		case !strings.EqualFold(elemTag, child.Tag):
			uniform = false
		}
	}
	if elemTag == "" || !uniform {
		elemTag = ir.StringTag
	}
	return ir.Composite(name, elemTag+ir.ArraySuffix, children...), nil
}

// expandMap emits one Key/Value record pair per entry, in sorted key
// order so serialization is deterministic.
func expandMap(name string, rv reflect.Value, o *mapOpts) (*ir.Record, error) {
	co := o.child()
	type entry struct {
		key string
		val any
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key()
		ks, err := mapKeyString(k)
		if err != nil {
			return nil, &MarshalError{Name: name, Message: "map key", Err: err}
		}
		entries = append(entries, entry{key: ks, val: elemValue(iter.Value())})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	children := make([]*ir.Record, 0, 2*len(entries))
	for _, e := range entries {
		val, err := toRecord("Value", e.val, co)
		if err != nil {
			// isolate: the entry is omitted, the map still encodes
			o.warn(&MarshalError{Name: name + "." + e.key, Message: "entry omitted", Err: err})
			continue
		}
		children = append(children,
			ir.Scalar("Key", ir.StringTag, e.key),
			val)
	}
	return ir.Composite(name, ir.HashTableTag, children...), nil
}

func mapKeyString(k reflect.Value) (string, error) {
	switch k.Kind() {
	case reflect.String:
		return k.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	default:
		return "", fmt.Errorf("unsupported map key type %s", k.Type())
	}
}

func elemValue(rv reflect.Value) any {
	if !rv.IsValid() {
		return nil
	}
	if rv.Kind() == reflect.Interface && rv.IsNil() {
		return nil
	}
	return rv.Interface()
}
