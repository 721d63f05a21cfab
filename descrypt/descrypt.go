// Package descrypt implements the classic DES-based crypt(3) password
// hash: a two-character salt followed by an eleven-character checksum
// over the first eight bytes of the password.
//
// Like bigcrypt, it is cryptographically weak and exists solely for
// compatibility with existing credential stores.
package descrypt

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/codahale/bigcrypt/internal/des"
	"github.com/codahale/bigcrypt/internal/hash64"
)

// Size is the length of a des-crypt hash string.
const Size = 13

var (
	// ErrInvalidSalt is returned when the salt is not two characters
	// from the hash64 alphabet.
	ErrInvalidSalt = errors.New("descrypt: invalid salt")

	// ErrMalformedHash is returned by Verify when the hash is not a
	// des-crypt hash string.
	ErrMalformedHash = errors.New("descrypt: malformed hash")
)

// Crypt hashes the first eight bytes of password under the two-character
// salt. Bytes past the eighth are ignored, as crypt(3) ignores them.
func Crypt(password []byte, salt string) (string, error) {
	s, err := hash64.DecodeInt12(salt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSalt, err)
	}
	if len(password) > 8 {
		password = password[:8]
	}
	buf := make([]byte, 0, Size)
	buf = hash64.AppendInt12(buf, s)
	buf = hash64.AppendInt64(buf, des.Encrypt(des.BlockKey(password), s))
	return string(buf), nil
}

// Verify reports whether password matches hash. The comparison covers
// the whole regenerated string without a data-dependent early exit.
func Verify(password []byte, hash string) (bool, error) {
	if len(hash) != Size {
		return false, fmt.Errorf("%w: length %d", ErrMalformedHash, len(hash))
	}
	computed, err := Crypt(password, hash[:2])
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1, nil
}
