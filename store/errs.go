package store

import "errors"

var (
	ErrIO       = errors.New("io error")
	ErrNotFound = errors.New("not found")
	ErrNoBinder = errors.New("store has no binder")
)
