// Package store is the stateful façade over one confix file: it owns
// the loaded record tree and mediates between the text codec, the value
// codec and a caller-supplied Binder.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/confix-format/go-confix/debug"
	"github.com/confix-format/go-confix/encode"
	"github.com/confix-format/go-confix/gomap"
	"github.com/confix-format/go-confix/ir"
	"github.com/confix-format/go-confix/parse"
	"github.com/confix-format/go-confix/token"
)

// Store holds the tree parsed from one file at Open time. The tree is
// exclusively owned by this instance: mutations are read-modify-write
// against the loaded tree, not against the file, so two stores open on
// the same path race and the last writer wins. Reads need no
// exclusivity.
type Store struct {
	path     string
	recs     []*ir.Record
	deferred bool
	dirty    bool
	password string
	binder   Binder
	warn     func(error)
}

// Open loads path and parses it into the in-memory tree. The file must
// exist unless WithCreate is given, in which case an empty file is
// created.
func Open(path string, opts ...Option) (*Store, error) {
	o := getOpts(opts)
	s := &Store{
		path:     path,
		deferred: o.deferred,
		password: o.password,
		binder:   o.binder,
		warn:     o.warn,
	}
	d, err := os.ReadFile(path)
	switch {
	case err == nil:
	case os.IsNotExist(err) && o.create:
		if err := s.persist(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	s.recs, err = parse.Split(string(d), parse.WithWarn(s.warn))
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Path() string {
	return s.path
}

// Count returns the number of non-raw records at the top level.
func (s *Store) Count() int {
	return ir.Count(s.recs)
}

// Names returns all non-raw top-level record names in storage order,
// duplicates included.
func (s *Store) Names() []string {
	return ir.Names(s.recs)
}

// Records exposes the loaded tree. Callers must not mutate it; use Set
// and Remove.
func (s *Store) Records() []*ir.Record {
	return s.recs
}

// Get resolves the first matching record by name and decodes it to a Go
// value. An illegal name is rejected before the lookup. Envelope records
// need the password from Password or Open's WithPassword.
func (s *Store) Get(name string, opts ...CallOption) (any, error) {
	co := s.callOpts(opts)
	name = strings.TrimPrefix(name, "$")
	if err := token.ValidName(name); err != nil {
		return nil, err
	}
	rec := ir.Find(s.recs, name)
	if rec == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	v, err := gomap.FromRecord(rec, co.mapOptions(s)...)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return v, nil
}

// Set encodes v under name and merges it into the tree: a no-op when
// the encoding is byte-identical to the existing record, a replacement
// in place otherwise (warning on a type-tag change), an append when the
// name is new. The file is rewritten immediately unless the store is in
// deferred-write mode. Reports whether the tree changed.
func (s *Store) Set(name string, v any, opts ...CallOption) (bool, error) {
	co := s.callOpts(opts)
	rec, err := gomap.ToRecord(name, v, co.mapOptions(s)...)
	if err != nil {
		return false, err
	}
	if idx := ir.FindIndex(s.recs, rec.Name); idx >= 0 {
		old := s.recs[idx]
		if recordText(old) == recordText(rec) {
			return false, nil
		}
		if !strings.EqualFold(tagOrString(old.Tag), tagOrString(rec.Tag)) {
			s.warn(fmt.Errorf("%s: type tag changing from %s to %s", rec.Name, tagOrString(old.Tag), tagOrString(rec.Tag)))
		}
		s.recs[idx] = rec
	} else {
		s.recs = append(s.recs, rec)
	}
	return true, s.flushIfImmediate()
}

// Remove splices out every non-raw record matching any of the names and
// rewrites the file if anything was removed. An illegal name is rejected
// before anything is touched.
func (s *Store) Remove(names ...string) (bool, error) {
	for _, n := range names {
		if err := token.ValidName(strings.TrimPrefix(n, "$")); err != nil {
			return false, err
		}
	}
	kept := s.recs[:0:0]
	removed := false
	for _, r := range s.recs {
		if !r.IsRaw() && matchesAny(r.Name, names) {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		return false, nil
	}
	s.recs = kept
	return true, s.flushIfImmediate()
}

// Flush writes the tree to disk regardless of deferred-write mode; the
// mode itself is unchanged.
func (s *Store) Flush() error {
	return s.persist()
}

// Deferred reports whether mutations are being held in memory until
// Flush.
func (s *Store) Deferred() bool {
	return s.deferred
}

func (s *Store) flushIfImmediate() error {
	if s.deferred {
		s.dirty = true
		return nil
	}
	return s.persist()
}

// persist is the single write path: the whole tree is serialized and
// the file's contents are atomically replaced via a temp file rename,
// so a failure leaves the prior contents untouched.
func (s *Store) persist() error {
	text := encode.Join(s.recs)
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".confix-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	s.dirty = false
	if debug.Store() {
		debug.Logf("store: wrote %d bytes to %s\n", len(text), s.path)
	}
	return nil
}

func recordText(r *ir.Record) string {
	return encode.Join([]*ir.Record{r})
}

func tagOrString(tag string) string {
	if tag == "" {
		return ir.StringTag
	}
	return tag
}

func matchesAny(name string, names []string) bool {
	for _, n := range names {
		if strings.EqualFold(name, strings.TrimPrefix(n, "$")) {
			return true
		}
	}
	return false
}
