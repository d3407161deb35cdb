package parse

import (
	"github.com/confix-format/go-confix/debug"
)

type parseOpts struct {
	warn func(error)
}

type ParseOption func(*parseOpts)

// WithWarn installs a callback for per-line parse anomalies (malformed
// lines, bad multi-line counts, truncated payloads). The default logs to
// stderr when CFX_DEBUG_PARSE is set.
func WithWarn(f func(error)) ParseOption {
	return func(o *parseOpts) {
		if f != nil {
			o.warn = f
		}
	}
}

func defaultWarn(err error) {
	if debug.Parse() {
		debug.Logf("parse: %v\n", err)
	}
}
