package encode

import (
	"testing"

	"github.com/confix-format/go-confix/ir"
	"github.com/confix-format/go-confix/parse"

	"github.com/google/go-cmp/cmp"
)

func TestJoinForms(t *testing.T) {
	cases := []struct {
		name string
		recs []*ir.Record
		want string
	}{
		{
			name: "implicit string",
			recs: []*ir.Record{ir.Scalar("a", "", "1")},
			want: "a=1\n",
		},
		{
			name: "explicit string tag omitted",
			recs: []*ir.Record{ir.Scalar("a", "String", "1")},
			want: "a=1\n",
		},
		{
			name: "typed scalar",
			recs: []*ir.Record{ir.Scalar("count", "Int", "42")},
			want: "count[Int]=42\n",
		},
		{
			name: "raw lines verbatim",
			recs: []*ir.Record{ir.Raw("# note"), ir.Raw(""), ir.Scalar("x", "", "1")},
			want: "# note\n\nx=1\n",
		},
		{
			name: "multi-line payload",
			recs: []*ir.Record{ir.Scalar("text", "String", "a\nb\nc")},
			want: "text[String:3]\na\nb\nc\n",
		},
		{
			name: "multi-line default tag becomes explicit",
			recs: []*ir.Record{ir.Scalar("text", "", "a\nb")},
			want: "text[String:2]\na\nb\n",
		},
		{
			name: "array",
			recs: []*ir.Record{ir.Composite("tags", "String[]",
				ir.Scalar("0", "", "a"),
				ir.Scalar("1", "", "b,c"))},
			want: "tags[String[]:2]\n0=a\n1=b,c\n",
		},
		{
			name: "single element array inlines",
			recs: []*ir.Record{ir.Composite("tags", "String[]",
				ir.Scalar("0", "", "a"))},
			want: "tags[String[]]=0=a\n",
		},
		{
			name: "empty composite",
			recs: []*ir.Record{ir.Composite("empty", "HashTable")},
			want: "empty[HashTable]\n",
		},
	}
	for _, c := range cases {
		if got := Join(c.recs); got != c.want {
			t.Errorf("%s: Join = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestJoinSplitRoundTrip(t *testing.T) {
	texts := []string{
		"a=1\n",
		"# comment\n\nx=1\n",
		"count[Int]=42\nok[Bool]=True\n",
		"text[String:3]\none\n\nthree\nafter=1\n",
		"tags[String[]:2]\n0=a\n1=b,c\n",
		"table[HashTable:2]\nKey=k\nValue=v\n",
		"empty[HashTable]\n",
		"nested[HashTable:4]\nKey=list\nValue[Int[]:2]\n0=1\n1=2\n",
	}
	for _, text := range texts {
		recs, err := parse.Split(text)
		if err != nil {
			t.Fatalf("Split(%q): %v", text, err)
		}
		if got := Join(recs); got != text {
			t.Errorf("round trip of %q produced %q", text, got)
		}
	}
}

func TestSplitJoinTreeRoundTrip(t *testing.T) {
	recs := []*ir.Record{
		ir.Raw("# header"),
		ir.Scalar("s", "", "plain"),
		ir.Scalar("n", "Int", "7"),
		ir.Composite("m", "HashTable",
			ir.Scalar("Key", "", "a"),
			ir.Scalar("Value", "Int", "1")),
	}
	back, err := parse.Split(Join(recs))
	if err != nil {
		t.Fatal(err)
	}
	// Split never leaves nil children on composites
	want := make([]*ir.Record, len(recs))
	for i, r := range recs {
		want[i] = r.Clone()
	}
	if d := cmp.Diff(want, back); d != "" {
		t.Errorf("tree round trip mismatch (-want +got):\n%s", d)
	}
}

func TestEncodeColorsCover(t *testing.T) {
	colors := NewColors()
	for _, k := range []ir.Kind{ir.KindScalar, ir.KindRaw, ir.KindEnvelope} {
		if s := colors.Color(k, TagColor, "x"); s == "" {
			t.Errorf("no output for %s", k)
		}
	}
}
