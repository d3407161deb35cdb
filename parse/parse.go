// Package parse provides confix parsing support.
package parse

import (
	"strings"

	"github.com/confix-format/go-confix/ir"
	"github.com/confix-format/go-confix/token"
)

// Split parses confix text into an ordered record sequence. Comment and
// blank lines become raw records preserving the line verbatim. Malformed
// lines are dropped with a warning and parsing continues; Split only
// fails on the zero conditions the options can introduce, so the error
// is reserved for future use and currently always nil.
func Split(text string, opts ...ParseOption) ([]*ir.Record, error) {
	pOpts := &parseOpts{warn: defaultWarn}
	for _, f := range opts {
		f(pOpts)
	}
	lines := splitLines(text)
	recs := flatPass(lines, pOpts)
	resolveComposites(recs, pOpts)
	return recs, nil
}

// splitLines splits on '\n' and drops a trailing '\r' from each line so
// CRLF input parses like LF input. A final empty element from a trailing
// newline is not a line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, ln := range lines {
		lines[i] = strings.TrimSuffix(ln, "\r")
	}
	return lines
}

func flatPass(lines []string, opts *parseOpts) []*ir.Record {
	recs := []*ir.Record{}
	for i := 0; i < len(lines); i++ {
		ln, err := token.ScanLine(lines[i], i+1)
		if err != nil {
			// Per-line anomalies are isolated: warn, drop the line,
			// resume at the next physical line so a bad count header
			// cannot desync the rest of the file.
			opts.warn(err)
			continue
		}
		switch ln.Kind {
		case token.LBlank, token.LComment:
			recs = append(recs, ir.Raw(ln.Raw))
		case token.LScalar:
			appendRecord(recs, &recs, ir.Scalar(ln.Name, ln.Tag, ln.Value))
		case token.LHeader:
			rec := ir.Scalar(ln.Name, ln.Tag, "")
			if ln.Count > 0 {
				end := i + 1 + ln.Count
				if end > len(lines) {
					opts.warn(&token.ScanErr{Err: errTruncated(ln), Num: ln.Num})
					end = len(lines)
				}
				rec.Value = strings.Join(lines[i+1:end], "\n")
				i = end - 1
			}
			appendRecord(recs, &recs, rec)
		}
	}
	return recs
}

// appendRecord places rec into the output, honoring the legacy flat
// encoding's dot-notation: a name of the form parent.child attaches the
// record as a child of the most recently declared composite record named
// parent. Otherwise the dotted string is an ordinary record name.
func appendRecord(scan []*ir.Record, out *[]*ir.Record, rec *ir.Record) {
	if i := strings.IndexByte(rec.Name, '.'); i > 0 {
		parent, child := rec.Name[:i], rec.Name[i+1:]
		if child != "" {
			for j := len(scan) - 1; j >= 0; j-- {
				p := scan[j]
				if p.IsRaw() || !ir.IsComposite(p.Tag) {
					continue
				}
				if strings.EqualFold(p.Name, parent) {
					rec.Name = child
					p.Children = append(p.Children, rec)
					return
				}
			}
		}
	}
	*out = append(*out, rec)
}

// resolveComposites is the second pass: every record tagged HashTable or
// with an array tag has its accumulated text payload recursively split
// into children. A blank payload is a declared-but-empty composite.
// Children attached during the flat pass (dot-notation) are resolved
// too; they may carry unresolved payloads of their own.
func resolveComposites(recs []*ir.Record, opts *parseOpts) {
	for _, r := range recs {
		if !ir.IsComposite(r.Tag) {
			continue
		}
		if r.Children == nil {
			r.Children = []*ir.Record{}
		}
		if strings.TrimSpace(r.Value) != "" {
			r.Children = append(r.Children, flatPass(splitLines(r.Value), opts)...)
		}
		r.Value = ""
		resolveComposites(r.Children, opts)
	}
}
