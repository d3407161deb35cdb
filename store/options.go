package store

import (
	"github.com/confix-format/go-confix/debug"
	"github.com/confix-format/go-confix/gomap"
)

type storeOpts struct {
	deferred bool
	create   bool
	password string
	binder   Binder
	warn     func(error)
}

type Option func(*storeOpts)

// WithDeferred puts the store in deferred-write mode: mutations update
// the in-memory tree only and persistence waits for Flush.
func WithDeferred() Option {
	return func(o *storeOpts) { o.deferred = true }
}

// WithCreate creates an empty file when the path does not exist instead
// of failing Open.
func WithCreate() Option {
	return func(o *storeOpts) { o.create = true }
}

// WithPassword sets the default password for envelope records; a
// per-call Password overrides it.
func WithPassword(password string) Option {
	return func(o *storeOpts) { o.password = password }
}

func WithBinder(b Binder) Option {
	return func(o *storeOpts) { o.binder = b }
}

func WithWarn(f func(error)) Option {
	return func(o *storeOpts) {
		if f != nil {
			o.warn = f
		}
	}
}

func getOpts(opts []Option) *storeOpts {
	o := &storeOpts{warn: defaultWarn}
	for _, f := range opts {
		f(o)
	}
	return o
}

func defaultWarn(err error) {
	if debug.Store() {
		debug.Logf("store: %v\n", err)
	}
}

type callOpts struct {
	scheme   string
	password string
}

type CallOption func(*callOpts)

// Scheme requests envelope encryption of the value being set, under the
// given scheme tag.
func Scheme(tag string) CallOption {
	return func(o *callOpts) { o.scheme = tag }
}

// Password supplies the password for this one call.
func Password(password string) CallOption {
	return func(o *callOpts) { o.password = password }
}

func (s *Store) callOpts(opts []CallOption) *callOpts {
	co := &callOpts{password: s.password}
	for _, f := range opts {
		f(co)
	}
	return co
}

func (co *callOpts) mapOptions(s *Store) []gomap.Option {
	res := []gomap.Option{gomap.WithWarn(s.warn)}
	if co.scheme != "" {
		res = append(res, gomap.WithScheme(co.scheme))
	}
	if co.password != "" {
		res = append(res, gomap.WithPassword(co.password))
	}
	return res
}
