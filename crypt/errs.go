package crypt

import (
	"errors"
	"fmt"
)

var (
	ErrEncrypt = errors.New("encryption error")
	ErrDecrypt = errors.New("decryption error")
)

// ForScheme serves both directions, so its failures satisfy both
// sentinels.
func errNoPassword(scheme string) error {
	return fmt.Errorf("%w: %w: scheme %s requires a password", ErrEncrypt, ErrDecrypt, scheme)
}

func errUnknownScheme(scheme string) error {
	return fmt.Errorf("%w: %w: unknown scheme %q", ErrEncrypt, ErrDecrypt, scheme)
}
