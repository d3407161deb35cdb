package ir

import (
	"strings"
)

// Record is a named, typed node in a configuration tree. A Record is
// either a scalar (Value holds the canonical text), a composite (Children
// holds an ordered sequence of child records), an encryption envelope
// (Value holds Base64 ciphertext), or a raw record preserving a
// non-semantic file line verbatim (Value holds the line, Tag is RawTag).
//
// Records are pure data; codecs live in the parse, encode and gomap
// packages.
type Record struct {
	Name     string
	Tag      string
	Value    string
	Children []*Record
}

func (r *Record) WithTag(tag string) *Record {
	r.Tag = tag
	return r
}

func (r *Record) Clone() *Record {
	res := &Record{}
	return r.CloneTo(res)
}

func (r *Record) CloneTo(dst *Record) *Record {
	dst.Name = r.Name
	dst.Tag = r.Tag
	dst.Value = r.Value
	if r.Children == nil {
		dst.Children = nil
		return dst
	}
	dst.Children = make([]*Record, len(r.Children))
	for i, c := range r.Children {
		dst.Children[i] = c.Clone()
	}
	return dst
}

// Raw constructs a record preserving one file line (comment or blank)
// byte-for-byte.
func Raw(line string) *Record {
	return &Record{Tag: RawTag, Value: line}
}

func Scalar(name, tag, value string) *Record {
	return &Record{Name: name, Tag: tag, Value: value}
}

func Composite(name, tag string, children ...*Record) *Record {
	if children == nil {
		children = []*Record{}
	}
	return &Record{Name: name, Tag: tag, Children: children}
}

// IsRaw reports whether r only preserves file formatting and takes no
// part in name lookups or counts.
func (r *Record) IsRaw() bool {
	return KindOf(r.Tag) == KindRaw
}

// Find returns the first record in recs whose name equals name under
// case-insensitive comparison, skipping raw records. Duplicate names may
// occur in storage; first match wins.
func Find(recs []*Record, name string) *Record {
	i := FindIndex(recs, name)
	if i < 0 {
		return nil
	}
	return recs[i]
}

func FindIndex(recs []*Record, name string) int {
	for i, r := range recs {
		if r.IsRaw() {
			continue
		}
		if strings.EqualFold(r.Name, name) {
			return i
		}
	}
	return -1
}

// Names returns the names of all non-raw records in order, duplicates
// included.
func Names(recs []*Record) []string {
	res := []string{}
	for _, r := range recs {
		if r.IsRaw() {
			continue
		}
		res = append(res, r.Name)
	}
	return res
}

// Count returns the number of non-raw records.
func Count(recs []*Record) int {
	n := 0
	for _, r := range recs {
		if !r.IsRaw() {
			n++
		}
	}
	return n
}
