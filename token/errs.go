package token

import "errors"

var (
	ErrMalformed = errors.New("malformed line")
	ErrBadCount  = errors.New("bad line count")
)
