// Package gomap converts between Go values and confix record trees.
//
// ToRecord/FromRecord handle the full tree: scalars through the closed
// type-tag table, arrays and maps recursively, credentials and
// encryption envelopes through the crypt package. ToText/FromText are
// the scalar layer underneath.
//
// The tag table is closed: an unknown tag is a *TypeError, never a
// silent string fallback. A nil value, by contrast, is never an error on
// encode; it renders as the blank marker with a warning, because a
// config record must always be representable.
package gomap
