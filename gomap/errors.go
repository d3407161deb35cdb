package gomap

import "fmt"

// MarshalError represents an error while converting a Go value to a
// record.
type MarshalError struct {
	Name    string
	Message string
	Err     error
}

func (e *MarshalError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("marshal error at %s: %s", e.Name, e.Message)
	}
	return fmt.Sprintf("marshal error: %s", e.Message)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}

// UnmarshalError represents an error while converting a record back to a
// Go value.
type UnmarshalError struct {
	Name    string
	Message string
	Err     error
}

func (e *UnmarshalError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unmarshal error at %s: %s", e.Name, e.Message)
	}
	return fmt.Sprintf("unmarshal error: %s", e.Message)
}

func (e *UnmarshalError) Unwrap() error {
	return e.Err
}

// TypeError reports a tag outside the closed type table, or a value that
// cannot be represented under its tag.
type TypeError struct {
	Tag     string
	Message string
	Err     error
}

func (e *TypeError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("type error: unresolvable tag %q", e.Tag)
	}
	return fmt.Sprintf("type error for tag %q: %s", e.Tag, e.Message)
}

func (e *TypeError) Unwrap() error {
	return e.Err
}
