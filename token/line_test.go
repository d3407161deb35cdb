package token

import (
	"errors"
	"testing"
)

func TestScanLineOK(t *testing.T) {
	cases := []struct {
		in   string
		want Line
	}{
		{
			in:   "name=value",
			want: Line{Kind: LScalar, Name: "name", Value: "value"},
		},
		{
			in:   "$name=value",
			want: Line{Kind: LScalar, Name: "name", Value: "value"},
		},
		{
			in:   "count[Int]=42",
			want: Line{Kind: LScalar, Name: "count", Tag: "Int", Value: "42"},
		},
		{
			in:   "empty=",
			want: Line{Kind: LScalar, Name: "empty", Value: ""},
		},
		{
			in:   "tags[String[]]=0=a",
			want: Line{Kind: LScalar, Name: "tags", Tag: "String[]", Value: "0=a"},
		},
		{
			in:   "v=x]=y",
			want: Line{Kind: LScalar, Name: "v", Value: "x]=y"},
		},
		{
			in:   "v[String]=x]=y",
			want: Line{Kind: LScalar, Name: "v", Tag: "String", Value: "x]=y"},
		},
		{
			in:   "text[String:3]",
			want: Line{Kind: LHeader, Name: "text", Tag: "String", Count: 3},
		},
		{
			in:   "arr[Int[]:2]",
			want: Line{Kind: LHeader, Name: "arr", Tag: "Int[]", Count: 2},
		},
		{
			in:   "empty[HashTable]",
			want: Line{Kind: LHeader, Name: "empty", Tag: "HashTable"},
		},
		{
			in:   "# a comment",
			want: Line{Kind: LComment},
		},
		{
			in:   "",
			want: Line{Kind: LBlank},
		},
		{
			in:   "   ",
			want: Line{Kind: LBlank},
		},
		{
			in:   "a.b-c_d=1",
			want: Line{Kind: LScalar, Name: "a.b-c_d", Value: "1"},
		},
	}
	for _, c := range cases {
		got, err := ScanLine(c.in, 1)
		if err != nil {
			t.Errorf("ScanLine(%q): %v", c.in, err)
			continue
		}
		if got.Kind != c.want.Kind || got.Name != c.want.Name ||
			got.Tag != c.want.Tag || got.Count != c.want.Count ||
			got.Value != c.want.Value {
			t.Errorf("ScanLine(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestScanLineErrors(t *testing.T) {
	cases := []struct {
		in  string
		err error
	}{
		{"no delimiter here", ErrMalformed},
		{"x[String", ErrMalformed},
		{"x[String:abc]", ErrBadCount},
		{"x[String:0]", ErrBadCount},
		{"x[String:-2]", ErrBadCount},
		{"x[String:2]=inline", ErrMalformed},
		{"=value", nil}, // bad name, any error will do
		{".bad=1", nil},
		{"ba d=1", nil},
	}
	for _, c := range cases {
		_, err := ScanLine(c.in, 7)
		if err == nil {
			t.Errorf("ScanLine(%q): expected error", c.in)
			continue
		}
		if c.err != nil && !errors.Is(err, c.err) {
			t.Errorf("ScanLine(%q) = %v, want %v", c.in, err, c.err)
		}
		var se *ScanErr
		if !errors.As(err, &se) || se.Num != 7 {
			t.Errorf("ScanLine(%q): error should carry line number, got %v", c.in, err)
		}
	}
}

func TestValidName(t *testing.T) {
	ok := []string{"a", "A1", "_x", "a.b", "a-b", "0count", "name.with.dots"}
	for _, n := range ok {
		if err := ValidName(n); err != nil {
			t.Errorf("ValidName(%q): %v", n, err)
		}
	}
	bad := []string{"", ".a", "-a", "a b", "a=b", "a[b"}
	for _, n := range bad {
		if err := ValidName(n); err == nil {
			t.Errorf("ValidName(%q): expected error", n)
		}
	}
}
