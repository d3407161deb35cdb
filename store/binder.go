package store

import "fmt"

// A Binder is the external binding service: it places resolved values
// into a caller-determined scope and reads them back for writing. The
// store never reaches into ambient state itself.
type Binder interface {
	Bind(name string, value any) error
	Lookup(name string) (any, bool)
}

// MapBinder is the trivial Binder over a plain map.
type MapBinder map[string]any

func (m MapBinder) Bind(name string, value any) error {
	m[name] = value
	return nil
}

func (m MapBinder) Lookup(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// Read decodes the named records (all non-raw records when names is
// empty) and binds each value through the store's Binder. The first
// decode or bind failure aborts and is returned.
func (s *Store) Read(names []string, opts ...CallOption) error {
	if s.binder == nil {
		return ErrNoBinder
	}
	if len(names) == 0 {
		names = s.Names()
	}
	for _, name := range names {
		v, err := s.Get(name, opts...)
		if err != nil {
			return err
		}
		if err := s.binder.Bind(name, v); err != nil {
			return fmt.Errorf("binding %s: %w", name, err)
		}
	}
	return nil
}

// Write reads the named bindings back from the Binder and sets each into
// the store. A name with no current binding is an error.
func (s *Store) Write(names []string, opts ...CallOption) error {
	if s.binder == nil {
		return ErrNoBinder
	}
	for _, name := range names {
		v, ok := s.binder.Lookup(name)
		if !ok {
			return fmt.Errorf("%w: no binding for %s", ErrNotFound, name)
		}
		if _, err := s.Set(name, v, opts...); err != nil {
			return err
		}
	}
	return nil
}
