package store

import (
	"fmt"
	"os"

	"github.com/confix-format/go-confix/encode"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// PendingDiff renders the textual difference between the file's current
// contents and what Flush would write. In deferred-write mode this is
// the set of unpersisted changes; otherwise it also surfaces changes
// another writer made to the file since Open.
func (s *Store) PendingDiff() (string, error) {
	d, err := os.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}
	have := string(d)
	want := encode.Join(s.recs)
	if have == want {
		return "", nil
	}
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(have, want, true)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs), nil
}

// Dirty reports whether deferred mutations are waiting for Flush.
func (s *Store) Dirty() bool {
	return s.dirty
}
