package crypt

import (
	"errors"
	"strings"
	"testing"

	"github.com/confix-format/go-confix/ir"
)

func TestAES256RoundTrip(t *testing.T) {
	p, err := ForScheme("AES256", "pw")
	if err != nil {
		t.Fatal(err)
	}
	cases := []string{
		"",
		"hello",
		"name=value\nother[Int]=2\n",
		"unicode: héllo wörld ✓",
		strings.Repeat("x", 4096),
	}
	for _, pt := range cases {
		ct, err := p.Protect(pt)
		if err != nil {
			t.Fatalf("Protect(%q): %v", pt, err)
		}
		back, err := p.Unprotect(ct)
		if err != nil {
			t.Fatalf("Unprotect: %v", err)
		}
		if back != pt {
			t.Errorf("round trip of %q produced %q", pt, back)
		}
	}
}

func TestAES256Deterministic(t *testing.T) {
	p, _ := ForScheme("AES256", "pw")
	a, err := p.Protect("same input")
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.Protect("same input")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("fixed key-derived IV means identical ciphertext for identical input")
	}
}

func TestAES256WrongPassword(t *testing.T) {
	p1, _ := ForScheme("AES256", "right")
	p2, _ := ForScheme("AES256", "wrong")
	ct, err := p1.Protect("payload")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p2.Unprotect(ct); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("want ErrDecrypt, got %v", err)
	}
}

func TestAES256CorruptTransport(t *testing.T) {
	p, _ := ForScheme("AES256", "pw")
	for _, ct := range []string{"not base64 !!!", "QUJD", ""} {
		if _, err := p.Unprotect(ct); !errors.Is(err, ErrDecrypt) {
			t.Errorf("Unprotect(%q): want ErrDecrypt, got %v", ct, err)
		}
	}
}

func TestAES256NeedsPassword(t *testing.T) {
	if _, err := ForScheme("AES256", ""); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("want error, got %v", err)
	}
}

func TestUnknownScheme(t *testing.T) {
	if _, err := ForScheme("ROT13", "pw"); err == nil {
		t.Fatal("unknown scheme must fail")
	}
}

func TestSchemeTagsCaseInsensitive(t *testing.T) {
	p, err := ForScheme("aes256", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if p.Scheme() != ir.AES256Tag {
		t.Errorf("canonical scheme = %q", p.Scheme())
	}
}

func TestUserBoundRoundTrip(t *testing.T) {
	p, err := ForScheme("DPAPI", "")
	if err != nil {
		t.Skipf("no user identity available: %v", err)
	}
	ct, err := p.Protect("bound to me")
	if err != nil {
		t.Fatal(err)
	}
	back, err := p.Unprotect(ct)
	if err != nil {
		t.Fatal(err)
	}
	if back != "bound to me" {
		t.Errorf("got %q", back)
	}
	// password is ignored, not an error
	if _, err := ForScheme("DPAPI", "ignored"); err != nil {
		t.Errorf("DPAPI with password: %v", err)
	}
}

func TestPKCS7(t *testing.T) {
	for n := 0; n < 40; n++ {
		b := pkcs7Pad(make([]byte, n), 16)
		if len(b)%16 != 0 {
			t.Fatalf("pad(%d) len %d", n, len(b))
		}
		out, err := pkcs7Unpad(b, 16)
		if err != nil || len(out) != n {
			t.Fatalf("unpad(%d): %d, %v", n, len(out), err)
		}
	}
	bad := [][]byte{
		nil,
		make([]byte, 15),
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 0},
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 17},
	}
	for _, b := range bad {
		if _, err := pkcs7Unpad(b, 16); err == nil {
			t.Errorf("unpad(%v) should fail", b)
		}
	}
}
