package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/confix-format/go-confix/ir"

	"golang.org/x/text/encoding/unicode"
)

// aes256 derives a 256-bit key as SHA-256(password) and a 16-byte IV as
// bytes 8..23 of that key. Plaintext is UTF-16LE encoded before CBC
// encryption with PKCS#7 padding; ciphertext travels as standard Base64.
type aes256 struct {
	key []byte
	iv  []byte
}

func newAES256(password string) *aes256 {
	sum := sha256.Sum256([]byte(password))
	return &aes256{key: sum[:], iv: sum[8:24]}
}

func (a *aes256) Scheme() string {
	return ir.AES256Tag
}

func (a *aes256) Protect(plaintext string) (string, error) {
	utf16le := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	pt, err := utf16le.NewEncoder().Bytes([]byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("%w: utf-16 encode: %w", ErrEncrypt, err)
	}
	block, err := aes.NewCipher(a.key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncrypt, err)
	}
	pt = pkcs7Pad(pt, aes.BlockSize)
	ct := make([]byte, len(pt))
	cipher.NewCBCEncrypter(block, a.iv).CryptBlocks(ct, pt)
	return base64.StdEncoding.EncodeToString(ct), nil
}

func (a *aes256) Unprotect(ciphertext string) (string, error) {
	ct, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: corrupt transport encoding: %w", ErrDecrypt, err)
	}
	if len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: ciphertext length %d not a block multiple", ErrDecrypt, len(ct))
	}
	block, err := aes.NewCipher(a.key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecrypt, err)
	}
	pt := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, a.iv).CryptBlocks(pt, ct)
	pt, err = pkcs7Unpad(pt, aes.BlockSize)
	if err != nil {
		// a wrong password surfaces here as a padding mismatch
		return "", fmt.Errorf("%w: %w", ErrDecrypt, err)
	}
	utf16le := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	out, err := utf16le.NewDecoder().Bytes(pt)
	if err != nil {
		return "", fmt.Errorf("%w: utf-16 decode: %w", ErrDecrypt, err)
	}
	return string(out), nil
}
