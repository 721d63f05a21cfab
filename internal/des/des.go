// Package des implements the modified DES primitive underlying the
// crypt(3) password hash family: 25 applications of the cipher to an
// all-zero block under a single 56-bit key, with pairs of expansion-box
// output bits swapped according to a 12-bit salt. The salt perturbation
// makes precomputed standard-DES tables useless against the hash while
// reusing the rest of the cipher unchanged.
//
// There is no decryption operation; the transform is used strictly
// one-way.
//
// The permutations are precomputed into per-byte OR-mask tables rather
// than walked bit by bit, following David Burren's [FreeSec] library.
//
// [FreeSec]: https://cgit.freebsd.org/src/tree/secure/lib/libcrypt/crypt-des.c
package des

import "sync"

// Rounds is the number of times the cipher is applied to the block.
const Rounds = 25

var (
	tablesOnce sync.Once

	mSbox              [4][4096]byte
	pSbox              [4][256]uint32
	fpMaskL, fpMaskR   [8][256]uint32
	keyMaskL, keyMaskR [8][128]uint32
	cmpMaskL, cmpMaskR [8][128]uint32
)

func initTables() {
	// Invert the S-boxes, reordering the input bits, then merge adjacent
	// pairs into four 12-bit-input lookups.
	var uSbox [8][64]byte
	for i := 0; i < 8; i++ {
		for j := 0; j < 64; j++ {
			b := (j & 0x20) | ((j & 1) << 4) | ((j >> 1) & 0xf)
			uSbox[i][j] = sbox[i][b]
		}
	}
	for b := 0; b < 4; b++ {
		for i := 0; i < 64; i++ {
			for j := 0; j < 64; j++ {
				mSbox[b][(i<<6)|j] = uSbox[2*b][i]<<4 | uSbox[2*b+1][j]
			}
		}
	}

	// The final permutation is the inverse of ip.
	var finalPerm [64]byte
	for i := 0; i < 64; i++ {
		finalPerm[i] = ip[i] - 1
	}

	// Invert the key and compression permutations. 255 marks positions
	// with no source bit (the parity bits and dropped key bits).
	var invKeyPerm [64]byte
	for i := range invKeyPerm {
		invKeyPerm[i] = 255
	}
	for i := 0; i < 56; i++ {
		invKeyPerm[keyPerm[i]-1] = byte(i)
	}
	var invCmpPerm [56]byte
	for i := range invCmpPerm {
		invCmpPerm[i] = 255
	}
	for i := 0; i < 48; i++ {
		invCmpPerm[compPerm[i]-1] = byte(i)
	}

	// Build the OR-mask tables: one mask per input byte (or 7-bit key
	// group) value, covering the left and right output words.
	for k := 0; k < 8; k++ {
		for i := 0; i < 256; i++ {
			for j := 0; j < 8; j++ {
				if i&(0x80>>j) == 0 {
					continue
				}
				if obit := finalPerm[8*k+j]; obit < 32 {
					fpMaskL[k][i] |= 1 << (31 - obit)
				} else {
					fpMaskR[k][i] |= 1 << (63 - obit)
				}
			}
		}
		for i := 0; i < 128; i++ {
			for j := 0; j < 7; j++ {
				if i&(0x40>>j) == 0 {
					continue
				}
				if obit := invKeyPerm[8*k+j]; obit != 255 {
					if obit < 28 {
						keyMaskL[k][i] |= 1 << (27 - obit)
					} else {
						keyMaskR[k][i] |= 1 << (55 - obit)
					}
				}
				if obit := invCmpPerm[7*k+j]; obit != 255 {
					if obit < 24 {
						cmpMaskL[k][i] |= 1 << (23 - obit)
					} else {
						cmpMaskR[k][i] |= 1 << (47 - obit)
					}
				}
			}
		}
	}

	// Invert the P-box and fold it into per-byte masks applied to the
	// S-box output.
	var invPbox [32]byte
	for i := 0; i < 32; i++ {
		invPbox[pbox[i]-1] = byte(i)
	}
	for b := 0; b < 4; b++ {
		for i := 0; i < 256; i++ {
			for j := 0; j < 8; j++ {
				if i&(0x80>>j) != 0 {
					pSbox[b][i] |= 1 << (31 - invPbox[8*b+j])
				}
			}
		}
	}
}

// BlockKey packs the low seven bits of each of the first eight bytes of
// block into a 56-bit key, most significant byte first, padding short
// input with NUL bytes. The high bit of every byte is discarded, as the
// original 7-bit design requires.
func BlockKey(block []byte) uint64 {
	var key uint64
	for i := 0; i < 8; i++ {
		var b byte
		if i < len(block) {
			b = block[i]
		}
		key = key<<7 | uint64(b&0x7f)
	}
	return key
}

// schedule holds the 16 48-bit round keys, split into 24-bit halves
// stored in the low bits of each word.
type schedule struct {
	l, r [16]uint32
}

func (s *schedule) expand(key uint64) {
	// Key permutation, split into two 28-bit halves.
	var k0, k1 uint32
	for k := 0; k < 8; k++ {
		g := uint32(key>>(49-7*k)) & 0x7f
		k0 |= keyMaskL[k][g]
		k1 |= keyMaskR[k][g]
	}

	// Rotate the halves and apply the compression permutation for each
	// round. The rotations never leak into the sampled 7-bit windows, so
	// the halves are left unmasked.
	shifts := uint(0)
	for round := 0; round < 16; round++ {
		shifts += uint(keyShifts[round])

		t0 := (k0 << shifts) | (k0 >> (28 - shifts))
		t1 := (k1 << shifts) | (k1 >> (28 - shifts))

		s.l[round] = cmpMaskL[0][(t0>>21)&0x7f] |
			cmpMaskL[1][(t0>>14)&0x7f] |
			cmpMaskL[2][(t0>>7)&0x7f] |
			cmpMaskL[3][t0&0x7f] |
			cmpMaskL[4][(t1>>21)&0x7f] |
			cmpMaskL[5][(t1>>14)&0x7f] |
			cmpMaskL[6][(t1>>7)&0x7f] |
			cmpMaskL[7][t1&0x7f]

		s.r[round] = cmpMaskR[0][(t0>>21)&0x7f] |
			cmpMaskR[1][(t0>>14)&0x7f] |
			cmpMaskR[2][(t0>>7)&0x7f] |
			cmpMaskR[3][t0&0x7f] |
			cmpMaskR[4][(t1>>21)&0x7f] |
			cmpMaskR[5][(t1>>14)&0x7f] |
			cmpMaskR[6][(t1>>7)&0x7f] |
			cmpMaskR[7][t1&0x7f]
	}
}

// spreadSalt maps salt bit i onto E-box swap bit 23-i, so that a set
// salt bit i exchanges expansion output bit i with bit i+24.
func spreadSalt(salt uint32) uint32 {
	var saltbits uint32
	for i := 0; i < 24; i++ {
		if salt&(1<<i) != 0 {
			saltbits |= 0x800000 >> i
		}
	}
	return saltbits
}

// Encrypt runs the salted cipher over the all-zero block and returns the
// 64-bit result. key carries the 56-bit DES key in its low bits, packed
// as BlockKey packs it; salt is the 12-bit expansion perturbation.
// Inputs are total: range checking belongs to the caller.
func Encrypt(key uint64, salt uint32) uint64 {
	tablesOnce.Do(initTables)

	var ks schedule
	ks.expand(key)
	saltbits := spreadSalt(salt)

	// The initial permutation is skipped: the zero block permutes to
	// itself.
	var l, r, f uint32
	for iter := 0; iter < Rounds; iter++ {
		for round := 0; round < 16; round++ {
			// Expand R to 48 bits in two 24-bit halves (the E-box).
			r48l := ((r & 0x00000001) << 23) |
				((r & 0xf8000000) >> 9) |
				((r & 0x1f800000) >> 11) |
				((r & 0x01f80000) >> 13) |
				((r & 0x001f8000) >> 15)

			r48r := ((r & 0x0001f800) << 7) |
				((r & 0x00001f80) << 5) |
				((r & 0x000001f8) << 3) |
				((r & 0x0000001f) << 1) |
				((r & 0x80000000) >> 31)

			// Swap the salt-selected bit pairs between the halves, then
			// XOR with the round key.
			f = (r48l ^ r48r) & saltbits
			r48l ^= f ^ ks.l[round]
			r48r ^= f ^ ks.r[round]

			// S-box lookups shrink the halves back to 32 bits with the
			// P-box permutation folded in.
			f = pSbox[0][mSbox[0][r48l>>12]] |
				pSbox[1][mSbox[1][r48l&0xfff]] |
				pSbox[2][mSbox[2][r48r>>12]] |
				pSbox[3][mSbox[3][r48r&0xfff]]

			f ^= l
			l = r
			r = f
		}

		// Swap the halves between applications.
		r = l
		l = f
	}

	// Final permutation.
	lOut := fpMaskL[0][l>>24] |
		fpMaskL[1][(l>>16)&0xff] |
		fpMaskL[2][(l>>8)&0xff] |
		fpMaskL[3][l&0xff] |
		fpMaskL[4][r>>24] |
		fpMaskL[5][(r>>16)&0xff] |
		fpMaskL[6][(r>>8)&0xff] |
		fpMaskL[7][r&0xff]
	rOut := fpMaskR[0][l>>24] |
		fpMaskR[1][(l>>16)&0xff] |
		fpMaskR[2][(l>>8)&0xff] |
		fpMaskR[3][l&0xff] |
		fpMaskR[4][r>>24] |
		fpMaskR[5][(r>>16)&0xff] |
		fpMaskR[6][(r>>8)&0xff] |
		fpMaskR[7][r&0xff]

	return uint64(lOut)<<32 | uint64(rOut)
}
