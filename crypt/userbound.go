package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os"
	"os/user"
	"strings"

	"github.com/confix-format/go-confix/ir"

	"golang.org/x/crypto/pbkdf2"
)

const (
	userBoundSalt = "confix.userbound.v1"
	userBoundIter = 4096
)

// userBound is the portable stand-in for the DPAPI scheme: the key is
// derived from the executing user and machine identity, with no
// caller-supplied secret, so ciphertext only decrypts under the same
// identity on the same machine. Transport is AES-GCM with a random nonce
// prepended, Base64 encoded.
type userBound struct {
	key []byte
}

func newUserBound() (*userBound, error) {
	id, err := identitySecret()
	if err != nil {
		return nil, fmt.Errorf("%w: resolving user identity: %w", ErrEncrypt, err)
	}
	key := pbkdf2.Key([]byte(id), []byte(userBoundSalt), userBoundIter, 32, sha256.New)
	return &userBound{key: key}, nil
}

func (u *userBound) Scheme() string {
	return ir.UserBoundTag
}

func identitySecret() (string, error) {
	parts := []string{}
	if d, err := os.ReadFile("/etc/machine-id"); err == nil {
		parts = append(parts, strings.TrimSpace(string(d)))
	} else if host, err := os.Hostname(); err == nil {
		parts = append(parts, host)
	}
	cur, err := user.Current()
	if err != nil {
		return "", err
	}
	parts = append(parts, cur.Uid, cur.Username)
	return strings.Join(parts, "\x00"), nil
}

func (u *userBound) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(u.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (u *userBound) Protect(plaintext string) (string, error) {
	aead, err := u.gcm()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncrypt, err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncrypt, err)
	}
	ct := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ct), nil
}

func (u *userBound) Unprotect(ciphertext string) (string, error) {
	ct, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: corrupt transport encoding: %w", ErrDecrypt, err)
	}
	aead, err := u.gcm()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecrypt, err)
	}
	if len(ct) < aead.NonceSize() {
		return "", fmt.Errorf("%w: ciphertext shorter than nonce", ErrDecrypt)
	}
	pt, err := aead.Open(nil, ct[:aead.NonceSize()], ct[aead.NonceSize():], nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecrypt, err)
	}
	return string(pt), nil
}
