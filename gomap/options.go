package gomap

import (
	"github.com/confix-format/go-confix/debug"
)

type mapOpts struct {
	tag      string
	scheme   string
	password string
	warn     func(error)
}

type Option func(*mapOpts)

// WithTag forces the scalar type tag instead of inferring it from the
// value's runtime type.
func WithTag(tag string) Option {
	return func(o *mapOpts) { o.tag = tag }
}

// WithScheme wraps the encoded value in an encryption envelope of the
// given scheme tag.
func WithScheme(scheme string) Option {
	return func(o *mapOpts) { o.scheme = scheme }
}

func WithPassword(password string) Option {
	return func(o *mapOpts) { o.password = password }
}

// WithWarn installs the callback for recovered per-element anomalies
// (nil values, dropped map pairs, failed array slots).
func WithWarn(f func(error)) Option {
	return func(o *mapOpts) {
		if f != nil {
			o.warn = f
		}
	}
}

func getOpts(opts []Option) *mapOpts {
	o := &mapOpts{warn: defaultWarn}
	for _, f := range opts {
		f(o)
	}
	return o
}

// scalarOpts strips the options that must not propagate into children:
// a tag hint applies to one scalar, a scheme to one envelope.
func (o *mapOpts) child() *mapOpts {
	c := *o
	c.tag = ""
	c.scheme = ""
	return &c
}

func defaultWarn(err error) {
	if debug.Store() {
		debug.Logf("gomap: %v\n", err)
	}
}
