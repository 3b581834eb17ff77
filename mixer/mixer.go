// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package mixer

// golden32 is Knuth's golden-ratio constant, used as the initial
// state for the a and b words so that an all-zero key still produces
// a well-mixed result.
const golden32 = 0x9e3779b9

// State is the running (a, b, c) triple Mix works on. Callers use the
// return values of Mix directly; State is only the working state of
// the mixing rounds.
type State struct {
	A, B, C uint32
}

// Mix hashes data to a 96-bit (A, B, C) triple, seeded by seed. It is
// deterministic and avalanches: flipping any single input bit flips
// roughly half of the output bits. This must match the classic
// Jenkins three-word "lookupa" mix bit-for-bit, because the C code
// phash.c emits calls an identical primitive at lookup time, and the
// tables this generator builds are only valid if both agree.
func Mix(data []byte, seed uint32) (a, b, c uint32) {
	s := State{A: golden32, B: golden32, C: seed}
	length := len(data)
	for len(data) >= 12 {
		s.A += le32(data[0:4])
		s.B += le32(data[4:8])
		s.C += le32(data[8:12])
		s.mix()
		data = data[12:]
	}
	s.C += uint32(length)
	switch len(data) {
	case 11:
		s.C += uint32(data[10]) << 24
		fallthrough
	case 10:
		s.C += uint32(data[9]) << 16
		fallthrough
	case 9:
		s.C += uint32(data[8]) << 8
		fallthrough
	case 8:
		s.B += uint32(data[7]) << 24
		fallthrough
	case 7:
		s.B += uint32(data[6]) << 16
		fallthrough
	case 6:
		s.B += uint32(data[5]) << 8
		fallthrough
	case 5:
		s.B += uint32(data[4])
		fallthrough
	case 4:
		s.A += uint32(data[3]) << 24
		fallthrough
	case 3:
		s.A += uint32(data[2]) << 16
		fallthrough
	case 2:
		s.A += uint32(data[1]) << 8
		fallthrough
	case 1:
		s.A += uint32(data[0])
	}
	s.mix()
	return s.A, s.B, s.C
}

// le32 reads up to 4 bytes of b as a little-endian uint32, zero-padding
// if b is shorter than 4 bytes.
func le32(b []byte) uint32 {
	var v uint32
	for i := 0; i < 4 && i < len(b); i++ {
		v |= uint32(b[i]) << (8 * i)
	}
	return v
}

// mix performs the avalanche mixing rounds in place.
func (s *State) mix() {
	a, b, c := s.A, s.B, s.C
	a -= b
	a -= c
	a ^= c >> 13
	b -= c
	b -= a
	b ^= a << 8
	c -= a
	c -= b
	c ^= b >> 13
	a -= b
	a -= c
	a ^= c >> 12
	b -= c
	b -= a
	b ^= a << 16
	c -= a
	c -= b
	c ^= b >> 5
	a -= b
	a -= c
	a ^= c >> 3
	b -= c
	b -= a
	b ^= a << 10
	c -= a
	c -= b
	c ^= b >> 15
	s.A, s.B, s.C = a, b, c
}

// Uint32Bytes returns the little-endian byte representation of v,
// suitable as the "data" argument to Mix when hashing a 32-bit
// integer key (HEX, DECIMAL, and the derived INLINE word).
func Uint32Bytes(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

// InlineHash computes the one-word hash that INLINE-mode callers are
// contracted to reproduce in their own code, exactly as documented by
// the generator's usage text:
//
//	hash = PHASHSALT;
//	for (i=0; i<keylength; ++i) {
//	  hash = (hash ^ key[i]) + ((hash<<26)+(hash>>6));
//	}
//
// This is a different, cheaper hash than Mix: it produces only one
// word, and it is the one piece of the generator's internals that
// downstream code is expected to inline by hand, which is why it must
// stay this simple.
func InlineHash(data []byte, salt uint32) uint32 {
	hash := salt
	for _, b := range data {
		hash = (hash ^ uint32(b)) + (hash << 26) + (hash >> 6)
	}
	return hash
}
