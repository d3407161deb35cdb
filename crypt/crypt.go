// Package crypt implements the two envelope encryption schemes of the
// confix format.
//
// The AES256 scheme is wire-compatible with existing config files and
// deliberately preserves two weaknesses of the original format: the IV
// is a fixed slice of the SHA-256 password digest, so identical
// (password, plaintext) pairs always produce identical ciphertext, and
// there is no authentication tag. Do not reuse this construction outside
// of confix file compatibility.
package crypt

import (
	"strings"

	"github.com/confix-format/go-confix/ir"
)

// A Protector encrypts and decrypts serialized record sub-trees. Both
// directions work on text: plaintext is confix text produced by
// encode.Join, ciphertext is Base64 transport text. Protectors are pure;
// they never touch the tree they came from.
type Protector interface {
	Protect(plaintext string) (string, error)
	Unprotect(ciphertext string) (string, error)
	Scheme() string
}

// ForScheme returns the protector for an envelope tag. The AES256 scheme
// requires a non-empty password; the user-bound scheme ignores it.
func ForScheme(scheme, password string) (Protector, error) {
	switch {
	case strings.EqualFold(scheme, ir.AES256Tag):
		if password == "" {
			return nil, errNoPassword(scheme)
		}
		return newAES256(password), nil
	case strings.EqualFold(scheme, ir.UserBoundTag):
		return newUserBound()
	default:
		return nil, errUnknownScheme(scheme)
	}
}
