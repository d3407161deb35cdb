// Package encode serializes record trees to confix text.
package encode

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/confix-format/go-confix/ir"
)

type EncState struct {
	colors *Colors
}

// Encode writes records to w, one line per record except raw records
// (emitted verbatim) and multi-line payloads (header plus N raw lines).
// Composite records are serialized by joining their children and nesting
// the result as the record's payload.
func Encode(recs []*ir.Record, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	for _, r := range recs {
		if err := encodeRecord(r, w, es); err != nil {
			return err
		}
	}
	return nil
}

// Join returns the confix text for records. It is the exact inverse of
// parse.Split for well-formed trees.
func Join(recs []*ir.Record) string {
	buf := bytes.NewBuffer(nil)
	// the only write target is a buffer; no error path
	Encode(recs, buf)
	return buf.String()
}

func encodeRecord(r *ir.Record, w io.Writer, es *EncState) error {
	if r.IsRaw() {
		return writeLine(w, es.color(ir.KindRaw, ValueColor, r.Value))
	}
	value := r.Value
	if ir.IsComposite(r.Tag) {
		value = strings.TrimSuffix(Join(r.Children), "\n")
		if value == "" {
			// declared-but-empty composite
			return writeLine(w, es.header(r, 0))
		}
	}
	if i := strings.Count(value, "\n"); i > 0 {
		if err := writeLine(w, es.header(r, i+1)); err != nil {
			return err
		}
		return writeLine(w, es.color(ir.KindOf(r.Tag), ValueColor, value))
	}
	return writeLine(w, es.scalar(r, value))
}

func (es *EncState) header(r *ir.Record, count int) string {
	kind := ir.KindOf(r.Tag)
	tag := r.Tag
	if tag == "" {
		tag = ir.StringTag
	}
	if count > 1 {
		tag = fmt.Sprintf("%s:%d", tag, count)
	}
	return es.color(kind, FieldColor, r.Name) +
		es.color(kind, SepColor, "[") +
		es.color(kind, TagColor, tag) +
		es.color(kind, SepColor, "]")
}

func (es *EncState) scalar(r *ir.Record, value string) string {
	kind := ir.KindOf(r.Tag)
	if r.Tag == "" || strings.EqualFold(r.Tag, ir.StringTag) {
		return es.color(kind, FieldColor, r.Name) +
			es.color(kind, SepColor, "=") +
			es.color(kind, ValueColor, value)
	}
	return es.header(r, 0) +
		es.color(kind, SepColor, "=") +
		es.color(kind, ValueColor, value)
}

func writeLine(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
