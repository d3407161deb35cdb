package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/confix-format/go-confix/gomap"
	"github.com/confix-format/go-confix/ir"

	"github.com/google/go-cmp/cmp"
)

func tempStore(t *testing.T, contents string, opts ...Option) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.cfg")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return s, path
}

func fileText(t *testing.T, path string) string {
	t.Helper()
	d, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(d)
}

func TestOpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.cfg")
	if _, err := Open(path); !errors.Is(err, ErrIO) {
		t.Fatalf("want ErrIO, got %v", err)
	}
	s, err := Open(path, WithCreate())
	if err != nil {
		t.Fatal(err)
	}
	if s.Count() != 0 {
		t.Errorf("Count = %d", s.Count())
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file should exist after WithCreate: %v", err)
	}
}

func TestSetGetTyped(t *testing.T) {
	s, _ := tempStore(t, "")
	changed, err := s.Set("count", 42)
	if err != nil || !changed {
		t.Fatalf("Set: %v %v", changed, err)
	}
	v, err := s.Get("count")
	if err != nil {
		t.Fatal(err)
	}
	if v != 42 {
		t.Fatalf("Get = %v (%T), want int 42", v, v)
	}
	// reload from disk: the int survives the text round trip
	s2, err := Open(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	v, err = s2.Get("count")
	if err != nil || v != 42 {
		t.Fatalf("reloaded Get = %v, %v", v, err)
	}
}

func TestGetNotFound(t *testing.T) {
	s, _ := tempStore(t, "a=1\n")
	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestSetNoOpLeavesFileUntouched(t *testing.T) {
	s, path := tempStore(t, "# header\n\ncount[Int]=42\n")
	before := fileText(t, path)
	changed, err := s.Set("count", 42)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("identical value should be a no-op")
	}
	if after := fileText(t, path); after != before {
		t.Errorf("file changed:\n%q\n%q", before, after)
	}
}

func TestCommentsSurviveRewrite(t *testing.T) {
	in := "# note\n\nx=1\n"
	s, path := tempStore(t, in)
	if _, err := s.Set("y", "2"); err != nil {
		t.Fatal(err)
	}
	want := "# note\n\nx=1\ny=2\n"
	if got := fileText(t, path); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSetReplacesInPlace(t *testing.T) {
	s, path := tempStore(t, "a=1\nb=2\nc=3\n")
	if _, err := s.Set("b", "20"); err != nil {
		t.Fatal(err)
	}
	if got := fileText(t, path); got != "a=1\nb=20\nc=3\n" {
		t.Errorf("got %q", got)
	}
}

func TestSetTypeChangeWarns(t *testing.T) {
	var warns []error
	s, _ := tempStore(t, "v=text\n", WithWarn(func(e error) { warns = append(warns, e) }))
	if _, err := s.Set("v", 5); err != nil {
		t.Fatal(err)
	}
	if len(warns) != 1 {
		t.Errorf("want type-change warning, got %v", warns)
	}
}

func TestMultiLineIntegrity(t *testing.T) {
	s, _ := tempStore(t, "")
	text := "first line\n\nthird line\nlast"
	if _, err := s.Set("blob", text); err != nil {
		t.Fatal(err)
	}
	s2, err := Open(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	v, err := s2.Get("blob")
	if err != nil {
		t.Fatal(err)
	}
	if v != text {
		t.Errorf("got %q, want %q", v, text)
	}
}

func TestArrayScenario(t *testing.T) {
	s, _ := tempStore(t, "")
	if _, err := s.Set("tags", []string{"a", "b,c"}); err != nil {
		t.Fatal(err)
	}
	s2, err := Open(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	v, err := s2.Get("tags")
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]string{"a", "b,c"}, v); d != "" {
		t.Errorf("mismatch (-want +got):\n%s", d)
	}
}

func TestDeferredMode(t *testing.T) {
	s, path := tempStore(t, "a=1\n", WithDeferred())
	if _, err := s.Set("b", "2"); err != nil {
		t.Fatal(err)
	}
	if got := fileText(t, path); got != "a=1\n" {
		t.Errorf("deferred Set must not write, file = %q", got)
	}
	if !s.Dirty() {
		t.Error("store should be dirty")
	}
	d, err := s.PendingDiff()
	if err != nil {
		t.Fatal(err)
	}
	if d == "" {
		t.Error("pending diff should be non-empty")
	}
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := fileText(t, path); got != "a=1\nb=2\n" {
		t.Errorf("after flush file = %q", got)
	}
	if s.Dirty() {
		t.Error("flush should clear dirty")
	}
	if !s.Deferred() {
		t.Error("flush must not clear deferred mode")
	}
}

func TestRemove(t *testing.T) {
	s, path := tempStore(t, "# keep\na=1\nb=2\na=3\n")
	removed, err := s.Remove("a")
	if err != nil || !removed {
		t.Fatalf("Remove: %v %v", removed, err)
	}
	if got := fileText(t, path); got != "# keep\nb=2\n" {
		t.Errorf("got %q", got)
	}
	removed, err = s.Remove("nosuch")
	if err != nil || removed {
		t.Fatalf("removing a missing name: %v %v", removed, err)
	}
}

func TestCountAndNames(t *testing.T) {
	s, _ := tempStore(t, "# c\n\na=1\nb[Int]=2\na=3\n")
	if s.Count() != 3 {
		t.Errorf("Count = %d", s.Count())
	}
	if d := cmp.Diff([]string{"a", "b", "a"}, s.Names()); d != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", d)
	}
}

func TestEnvelopeStoreRoundTrip(t *testing.T) {
	s, path := tempStore(t, "")
	if _, err := s.Set("secret", "hunter2", Scheme("AES256"), Password("pw")); err != nil {
		t.Fatal(err)
	}
	s2, err := Open(path, WithPassword("pw"))
	if err != nil {
		t.Fatal(err)
	}
	v, err := s2.Get("secret")
	if err != nil {
		t.Fatal(err)
	}
	if v != "hunter2" {
		t.Errorf("got %v", v)
	}
}

func TestEnvelopeGetWithoutPassword(t *testing.T) {
	s, path := tempStore(t, "")
	if _, err := s.Set("secret", "v", Scheme("AES256"), Password("pw")); err != nil {
		t.Fatal(err)
	}
	before := fileText(t, path)
	s2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s2.Get("secret"); err == nil {
		t.Fatal("missing password should fail")
	}
	// the failure must not mutate tree or file
	if got := fileText(t, path); got != before {
		t.Error("file changed on a failed Get")
	}
	if s2.Count() != 1 {
		t.Error("tree changed on a failed Get")
	}
}

func TestReadWriteBinder(t *testing.T) {
	b := MapBinder{}
	s, _ := tempStore(t, "host=localhost\nport[Int]=8080\n", WithBinder(b))
	if err := s.Read(nil); err != nil {
		t.Fatal(err)
	}
	if b["host"] != "localhost" || b["port"] != 8080 {
		t.Fatalf("bindings = %v", b)
	}
	b["port"] = 9090
	if err := s.Write([]string{"port"}); err != nil {
		t.Fatal(err)
	}
	v, err := s.Get("port")
	if err != nil || v != 9090 {
		t.Fatalf("got %v, %v", v, err)
	}
	if err := s.Write([]string{"unbound"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestNoBinder(t *testing.T) {
	s, _ := tempStore(t, "a=1\n")
	if err := s.Read(nil); !errors.Is(err, ErrNoBinder) {
		t.Fatalf("got %v", err)
	}
}

func TestIllegalNameRejectedBeforeLookup(t *testing.T) {
	s, path := tempStore(t, "a=1\n")
	if _, err := s.Get("not a name!"); !errors.Is(err, ir.ErrBadName) {
		t.Fatalf("Get: want ErrBadName, got %v", err)
	}
	removed, err := s.Remove("also bad!", "a")
	if !errors.Is(err, ir.ErrBadName) {
		t.Fatalf("Remove: want ErrBadName, got %v", err)
	}
	if removed {
		t.Error("nothing should be removed on a bad name")
	}
	if got := fileText(t, path); got != "a=1\n" {
		t.Errorf("file changed: %q", got)
	}
}

func TestDuplicateFirstMatchWins(t *testing.T) {
	s, _ := tempStore(t, "a=first\na=second\n")
	v, err := s.Get("a")
	if err != nil || v != "first" {
		t.Fatalf("got %v, %v", v, err)
	}
}

func TestSetAppendsNilValueAsBlank(t *testing.T) {
	var warns []error
	s, path := tempStore(t, "", WithWarn(func(e error) { warns = append(warns, e) }))
	if _, err := s.Set("empty", nil); err != nil {
		t.Fatal(err)
	}
	if got := fileText(t, path); got != "empty=\n" {
		t.Errorf("got %q", got)
	}
	if len(warns) != 1 {
		t.Errorf("want blank-marker warning, got %v", warns)
	}
}

func TestCredentialStoreRoundTrip(t *testing.T) {
	s, path := tempStore(t, "")
	cred := gomap.Credential{Username: "alice", Secret: "s3cret"}
	if _, err := s.Set("login", cred, Scheme("AES256"), Password("pw")); err != nil {
		t.Fatal(err)
	}
	s2, err := Open(path, WithPassword("pw"))
	if err != nil {
		t.Fatal(err)
	}
	v, err := s2.Get("login")
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(cred, v); d != "" {
		t.Errorf("mismatch (-want +got):\n%s", d)
	}
}
