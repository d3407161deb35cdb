package gomap

import (
	"sort"
	"strconv"
	"strings"

	"github.com/confix-format/go-confix/crypt"
	"github.com/confix-format/go-confix/ir"
	"github.com/confix-format/go-confix/parse"
)

// FromRecord converts a record back to a Go value, dispatching on the
// record's tag kind. Envelope records decrypt, re-parse their payload
// with the text codec and decode the recovered sub-tree recursively.
func FromRecord(r *ir.Record, opts ...Option) (any, error) {
	o := getOpts(opts)
	return fromRecord(r, o)
}

func fromRecord(r *ir.Record, o *mapOpts) (any, error) {
	switch ir.KindOf(r.Tag) {
	case ir.KindRaw:
		return nil, &UnmarshalError{Name: r.Name, Message: "raw file-format record has no value"}
	case ir.KindEnvelope:
		return fromEnvelope(r, o)
	case ir.KindCredential:
		return fromCredential(r, o)
	case ir.KindArray:
		return collapseArray(r, o)
	case ir.KindMap:
		return collapseMap(r, o)
	default:
		v, err := FromText(r.Tag, r.Value)
		if err != nil {
			return nil, &UnmarshalError{Name: r.Name, Message: "decoding scalar", Err: err}
		}
		return v, nil
	}
}

func fromEnvelope(r *ir.Record, o *mapOpts) (any, error) {
	p, err := crypt.ForScheme(r.Tag, o.password)
	if err != nil {
		return nil, err
	}
	pt, err := p.Unprotect(r.Value)
	if err != nil {
		return nil, err
	}
	recs, err := parse.Split(pt, parse.WithWarn(o.warn))
	if err != nil {
		return nil, err
	}
	inner := firstRecord(recs)
	if inner == nil {
		return nil, &UnmarshalError{Name: r.Name, Message: "envelope payload holds no record"}
	}
	co := *o
	co.scheme = ""
	return fromRecord(inner, &co)
}

// collapseArray rebuilds the ordered sequence: children sort numerically
// by name, so storage order never changes element order. A failed child
// is isolated as a nil placeholder to preserve index alignment.
func collapseArray(r *ir.Record, o *mapOpts) (any, error) {
	type slot struct {
		idx int
		rec *ir.Record
	}
	slots := []slot{}
	for _, c := range r.Children {
		if c.IsRaw() {
			continue
		}
		idx, err := strconv.Atoi(c.Name)
		if err != nil {
			o.warn(&UnmarshalError{Name: r.Name, Message: "non-index child " + c.Name + " skipped", Err: err})
			continue
		}
		slots = append(slots, slot{idx: idx, rec: c})
	}
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].idx < slots[j].idx })
	vals := make([]any, 0, len(slots))
	failed := false
	for _, s := range slots {
		v, err := fromRecord(s.rec, o)
		if err != nil {
			o.warn(&UnmarshalError{Name: r.Name + "." + s.rec.Name, Message: "element left null", Err: err})
			v = nil
			failed = true
		}
		vals = append(vals, v)
	}
	if failed {
		return vals, nil
	}
	return typedSlice(ir.ElemTag(r.Tag), vals), nil
}

// typedSlice narrows []any to a concrete slice for the common scalar
// element tags when every element conforms.
func typedSlice(elemTag string, vals []any) any {
	switch {
	case strings.EqualFold(elemTag, ir.StringTag):
		out := make([]string, len(vals))
		for i, v := range vals {
			s, ok := v.(string)
			if !ok {
				return vals
			}
			out[i] = s
		}
		return out
	case strings.EqualFold(elemTag, ir.IntTag):
		out := make([]int, len(vals))
		for i, v := range vals {
			n, ok := v.(int)
			if !ok {
				return vals
			}
			out[i] = n
		}
		return out
	case strings.EqualFold(elemTag, ir.LongTag):
		out := make([]int64, len(vals))
		for i, v := range vals {
			n, ok := v.(int64)
			if !ok {
				return vals
			}
			out[i] = n
		}
		return out
	case strings.EqualFold(elemTag, ir.BoolTag):
		out := make([]bool, len(vals))
		for i, v := range vals {
			b, ok := v.(bool)
			if !ok {
				return vals
			}
			out[i] = b
		}
		return out
	case strings.EqualFold(elemTag, ir.DoubleTag):
		out := make([]float64, len(vals))
		for i, v := range vals {
			f, ok := v.(float64)
			if !ok {
				return vals
			}
			out[i] = f
		}
		return out
	default:
		return vals
	}
}

// collapseMap requires the two-record Key/Value pairing; a malformed
// pair is dropped with a warning, never fatal.
func collapseMap(r *ir.Record, o *mapOpts) (any, error) {
	children := []*ir.Record{}
	for _, c := range r.Children {
		if !c.IsRaw() {
			children = append(children, c)
		}
	}
	res := map[string]any{}
	for i := 0; i < len(children); {
		if i+1 >= len(children) ||
			!strings.EqualFold(children[i].Name, "Key") ||
			!strings.EqualFold(children[i+1].Name, "Value") {
			o.warn(&UnmarshalError{Name: r.Name, Message: "malformed Key/Value pair at child " + children[i].Name + " dropped"})
			i++
			continue
		}
		key := children[i].Value
		v, err := fromRecord(children[i+1], o)
		if err != nil {
			// isolate: this entry is omitted, the map still returns
			o.warn(&UnmarshalError{Name: r.Name + "." + key, Message: "entry omitted", Err: err})
			i += 2
			continue
		}
		res[key] = v
		i += 2
	}
	return res, nil
}

func firstRecord(recs []*ir.Record) *ir.Record {
	for _, r := range recs {
		if !r.IsRaw() {
			return r
		}
	}
	return nil
}
