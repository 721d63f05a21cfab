// Package hash64 implements the 6-bit character encoding shared by the
// crypt(3) family of password hashes. Values are packed six bits per
// character: salts as two little-endian characters, checksums as eleven
// big-endian characters with two zero padding bits in the final one.
package hash64

import (
	"errors"
	"fmt"
	"strings"
)

// Alphabet is the 64-character set in ascending 6-bit value order. The
// ordering is part of the wire format; changing it breaks every stored
// hash.
const Alphabet = "./0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// ErrDecode is returned when input cannot be decoded.
var ErrDecode = errors.New("hash64: invalid input")

func decode6(c byte) (uint32, error) {
	i := strings.IndexByte(Alphabet, c)
	if i < 0 {
		return 0, fmt.Errorf("%w: character %q", ErrDecode, c)
	}
	return uint32(i), nil
}

// AppendInt12 appends the two-character little-endian encoding of the
// low 12 bits of v to dst and returns the resulting slice.
func AppendInt12(dst []byte, v uint32) []byte {
	return append(dst, Alphabet[v&0x3f], Alphabet[(v>>6)&0x3f])
}

// DecodeInt12 decodes a two-character little-endian 12-bit value.
func DecodeInt12(s string) (uint32, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: length %d", ErrDecode, len(s))
	}
	lo, err := decode6(s[0])
	if err != nil {
		return 0, err
	}
	hi, err := decode6(s[1])
	if err != nil {
		return 0, err
	}
	return hi<<6 | lo, nil
}

// AppendInt64 appends the eleven-character big-endian encoding of v to
// dst and returns the resulting slice. The final character carries only
// the low four bits of v; its low two bits are the zero padding that
// widens the value to 66 bits.
func AppendInt64(dst []byte, v uint64) []byte {
	for shift := 58; shift >= 4; shift -= 6 {
		dst = append(dst, Alphabet[(v>>shift)&0x3f])
	}
	return append(dst, Alphabet[(v&0xf)<<2])
}

// DecodeInt64 decodes an eleven-character big-endian 64-bit value,
// discarding the two padding bits of the final character.
func DecodeInt64(s string) (uint64, error) {
	if len(s) != 11 {
		return 0, fmt.Errorf("%w: length %d", ErrDecode, len(s))
	}
	var v uint64
	for i := 0; i < 10; i++ {
		d, err := decode6(s[i])
		if err != nil {
			return 0, err
		}
		v = v<<6 | uint64(d)
	}
	d, err := decode6(s[10])
	if err != nil {
		return 0, err
	}
	return v<<4 | uint64(d>>2), nil
}
