package hash64_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/codahale/bigcrypt/internal/hash64"
)

func TestAlphabet(t *testing.T) {
	if got, want := len(hash64.Alphabet), 64; got != want {
		t.Fatalf("len(Alphabet) = %d, want = %d", got, want)
	}
	for i, c := range []byte(hash64.Alphabet) {
		if strings.IndexByte(hash64.Alphabet, c) != i {
			t.Errorf("duplicate character %q", c)
		}
	}
}

func TestInt12RoundTrip(t *testing.T) {
	for v := uint32(0); v < 1<<12; v++ {
		enc := hash64.AppendInt12(nil, v)
		if got, want := len(enc), 2; got != want {
			t.Fatalf("len(AppendInt12(nil, %d)) = %d, want = %d", v, got, want)
		}
		dec, err := hash64.DecodeInt12(string(enc))
		if err != nil {
			t.Fatalf("DecodeInt12(%q) = %v", enc, err)
		}
		if dec != v {
			t.Fatalf("DecodeInt12(%q) = %d, want = %d", enc, dec, v)
		}
	}
}

func TestDecodeInt12LittleEndian(t *testing.T) {
	// 'S' has value 30, '/' has value 1; the first character is the low
	// six bits.
	got, err := hash64.DecodeInt12("S/")
	if err != nil {
		t.Fatal(err)
	}
	if want := uint32(30 | 1<<6); got != want {
		t.Errorf("DecodeInt12(%q) = %d, want = %d", "S/", got, want)
	}
}

func TestDecodeInt12Errors(t *testing.T) {
	for _, s := range []string{"", "A", "ABC", "!!", "A!", "!A"} {
		if _, err := hash64.DecodeInt12(s); !errors.Is(err, hash64.ErrDecode) {
			t.Errorf("DecodeInt12(%q) = %v, want ErrDecode", s, err)
		}
	}
}

func TestInt64RoundTrip(t *testing.T) {
	for _, v := range []uint64{
		0,
		1,
		0xf,
		1 << 63,
		^uint64(0),
		0x0123456789abcdef,
		0xdeadbeefcafef00d,
	} {
		enc := hash64.AppendInt64(nil, v)
		if got, want := len(enc), 11; got != want {
			t.Fatalf("len(AppendInt64(nil, %#x)) = %d, want = %d", v, got, want)
		}
		dec, err := hash64.DecodeInt64(string(enc))
		if err != nil {
			t.Fatalf("DecodeInt64(%q) = %v", enc, err)
		}
		if dec != v {
			t.Fatalf("DecodeInt64(%q) = %#x, want = %#x", enc, dec, v)
		}
	}
}

func TestAppendInt64Known(t *testing.T) {
	tests := []struct {
		v    uint64
		want string
	}{
		{0, "..........."},
		{^uint64(0), "zzzzzzzzzzw"},
		{1, "..........2"},
	}
	for _, tt := range tests {
		if got := string(hash64.AppendInt64(nil, tt.v)); got != tt.want {
			t.Errorf("AppendInt64(nil, %#x) = %q, want = %q", tt.v, got, tt.want)
		}
	}
}

func TestDecodeInt64Errors(t *testing.T) {
	for _, s := range []string{"", "..........", "............", "!.........."} {
		if _, err := hash64.DecodeInt64(s); !errors.Is(err, hash64.ErrDecode) {
			t.Errorf("DecodeInt64(%q) = %v, want ErrDecode", s, err)
		}
	}
}
