package ir

import "errors"

var (
	ErrBadName = errors.New("invalid record name")
)
