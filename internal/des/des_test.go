package des_test

import (
	"testing"

	"github.com/codahale/bigcrypt/internal/des"
	"github.com/codahale/bigcrypt/internal/hash64"
)

// Expected checksums are the hash64-decoded tails of crypt(3) outputs
// for the given key and salt.
func TestEncryptVectors(t *testing.T) {
	tests := []struct {
		key, salt, checksum string
	}{
		{"test", "PQ", "l1.p7BcJRuM"},
		{"much lon", "xx", "tHrOGVa3182"},
	}
	for _, tt := range tests {
		salt, err := hash64.DecodeInt12(tt.salt)
		if err != nil {
			t.Fatal(err)
		}
		want, err := hash64.DecodeInt64(tt.checksum)
		if err != nil {
			t.Fatal(err)
		}
		if got := des.Encrypt(des.BlockKey([]byte(tt.key)), salt); got != want {
			t.Errorf("Encrypt(BlockKey(%q), %d) = %#x, want = %#x",
				tt.key, salt, got, want)
		}
	}
}

func TestEncryptSaltSensitivity(t *testing.T) {
	key := des.BlockKey([]byte("posthorn"))
	base := des.Encrypt(key, 0)
	for _, salt := range []uint32{1, 0x800, 0xfff} {
		if got := des.Encrypt(key, salt); got == base {
			t.Errorf("Encrypt(key, %#x) = Encrypt(key, 0) = %#x", salt, got)
		}
	}
}

func TestEncryptDeterministic(t *testing.T) {
	key := des.BlockKey([]byte("posthorn"))
	a := des.Encrypt(key, 0x5a5)
	b := des.Encrypt(key, 0x5a5)
	if a != b {
		t.Errorf("Encrypt not deterministic: %#x != %#x", a, b)
	}
}

func TestBlockKey(t *testing.T) {
	// Short input is NUL-padded and the high bit of every byte is
	// dropped.
	if got, want := des.BlockKey(nil), uint64(0); got != want {
		t.Errorf("BlockKey(nil) = %#x, want = %#x", got, want)
	}
	if got, want := des.BlockKey([]byte{0x80}), des.BlockKey([]byte{0}); got != want {
		t.Errorf("BlockKey(0x80) = %#x, want = %#x", got, want)
	}
	if got, want := des.BlockKey([]byte{'A'}), uint64('A')<<49; got != want {
		t.Errorf("BlockKey(\"A\") = %#x, want = %#x", got, want)
	}
	if got, want := des.BlockKey([]byte("AAAAAAAAB")), des.BlockKey([]byte("AAAAAAAA")); got != want {
		t.Errorf("BlockKey ignores bytes past the eighth: %#x != %#x", got, want)
	}
}

func BenchmarkEncrypt(b *testing.B) {
	key := des.BlockKey([]byte("password"))
	b.ReportAllocs()
	for _i := 0; _i < b.N; _i++ {
		des.Encrypt(key, 0x5a5)
	}
}
