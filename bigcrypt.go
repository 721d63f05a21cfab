// Package bigcrypt implements the BigCrypt password hash used by HP-UX,
// Digital Unix, and OSF/1: the classic DES-based crypt(3) extended to
// passwords longer than eight bytes by chaining one checksum block per
// eight bytes of input.
//
// A hash is ASCII: a two-character salt followed by one eleven-character
// checksum per block, so a hash over n blocks is 2+11n characters long.
// The first thirteen characters are by construction a valid des-crypt
// hash of the password's first eight bytes, which keeps single-block
// hashes interchangeable with [github.com/codahale/bigcrypt/descrypt].
//
// BigCrypt is cryptographically weak. It exists here solely to verify
// and migrate existing credential stores; never use it for new
// passwords.
package bigcrypt

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/codahale/bigcrypt/internal/des"
	"github.com/codahale/bigcrypt/internal/hash64"
)

// MaxSalt is the largest valid salt value.
const MaxSalt = 1<<12 - 1

const (
	blockSize     = 8
	saltChars     = 2
	checksumChars = 11
)

var (
	// ErrInvalidInput is returned when a caller-supplied salt is out of
	// range.
	ErrInvalidInput = errors.New("bigcrypt: invalid input")

	// ErrMalformedHash is returned when a hash string does not have the
	// 2+11n structure or contains characters outside the hash64
	// alphabet.
	ErrMalformedHash = errors.New("bigcrypt: malformed hash")
)

// Hash computes the BigCrypt hash of password. A salt in [0, MaxSalt] is
// used as given; a negative salt selects a random one.
//
// The password is raw bytes, of any length including zero. Text encoding
// is the caller's concern, as is any truncation a particular legacy
// system applies before hashing (HP-UX caps passwords at 128 bytes, for
// example); nothing is truncated here.
func Hash(password []byte, salt int) (string, error) {
	if salt < 0 {
		s, err := GenerateSalt()
		if err != nil {
			return "", err
		}
		salt = s
	} else if salt > MaxSalt {
		return "", fmt.Errorf("%w: salt %d", ErrInvalidInput, salt)
	}
	return Format(salt, generate(password, uint32(salt)))
}

// Verify reports whether password matches hash. A hash that fails to
// parse returns ErrMalformedHash, distinguishing a corrupt record from a
// wrong password. The comparison covers the whole regenerated string
// without a data-dependent early exit.
func Verify(password []byte, hash string) (bool, error) {
	salt, _, err := Parse(hash)
	if err != nil {
		return false, err
	}
	computed, err := Format(salt, generate(password, uint32(salt)))
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1, nil
}

// GenerateSalt draws a uniform random salt in [0, MaxSalt] from
// crypto/rand.
func GenerateSalt() (int, error) {
	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return int(binary.LittleEndian.Uint16(b[:])) & MaxSalt, nil
}

// Format assembles a hash string from a salt and at least one checksum.
func Format(salt int, checksums []uint64) (string, error) {
	if salt < 0 || salt > MaxSalt {
		return "", fmt.Errorf("%w: salt %d", ErrInvalidInput, salt)
	}
	if len(checksums) == 0 {
		return "", fmt.Errorf("%w: no checksums", ErrInvalidInput)
	}
	buf := make([]byte, 0, saltChars+checksumChars*len(checksums))
	buf = hash64.AppendInt12(buf, uint32(salt))
	for _, sum := range checksums {
		buf = hash64.AppendInt64(buf, sum)
	}
	return string(buf), nil
}

// Parse splits a hash string into its salt and ordered eleven-character
// checksum segments. It returns ErrMalformedHash if the length is not
// 2+11n for some n >= 1, or if any character falls outside the hash64
// alphabet.
func Parse(hash string) (salt int, checksums []string, err error) {
	if len(hash) < saltChars+checksumChars ||
		(len(hash)-saltChars)%checksumChars != 0 {
		return 0, nil, fmt.Errorf("%w: length %d", ErrMalformedHash, len(hash))
	}
	s, err := hash64.DecodeInt12(hash[:saltChars])
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	checksums = make([]string, 0, (len(hash)-saltChars)/checksumChars)
	for i := saltChars; i < len(hash); i += checksumChars {
		seg := hash[i : i+checksumChars]
		if _, err := hash64.DecodeInt64(seg); err != nil {
			return 0, nil, fmt.Errorf("%w: %v", ErrMalformedHash, err)
		}
		checksums = append(checksums, seg)
	}
	return int(s), checksums, nil
}

// generate runs the block chain: the password is NUL-padded to a
// multiple of eight bytes (one block minimum, even when empty) and each
// block is run through the salted cipher. The first block uses the
// caller's salt; every later block reads its salt back off the first two
// characters of the previous checksum's encoding. The detour through the
// encoding is deliberate: deriving the salt arithmetically from the raw
// checksum produces hashes no legacy system accepts.
func generate(password []byte, salt uint32) []uint64 {
	n := (len(password) + blockSize - 1) / blockSize
	if n == 0 {
		n = 1
	}
	checksums := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		block := password[i*blockSize:]
		if len(block) > blockSize {
			block = block[:blockSize]
		}
		sum := des.Encrypt(des.BlockKey(block), salt)
		checksums = append(checksums, sum)
		salt = chainSalt(sum)
	}
	return checksums
}

// chainSalt derives the next block's salt from a checksum via its
// encoded form.
func chainSalt(sum uint64) uint32 {
	enc := hash64.AppendInt64(make([]byte, 0, checksumChars), sum)
	salt, err := hash64.DecodeInt12(string(enc[:saltChars]))
	if err != nil {
		// enc is encoder output and always decodes.
		panic(err)
	}
	return salt
}
