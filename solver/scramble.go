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

package solver

import (
	"encoding/binary"

	"github.com/dchest/siphash"
	"github.com/jenkins-tools/perfecthash/ints"
)

// UseScramble is the blen threshold at which the scramble table grows
// from 256 entries to Smax entries (see Solve) and tab[] stops using
// the one-byte ub1 width (codegen's tabType). scramble[] is always
// emitted as its own table; it is never folded into tab[].
const UseScramble = 4096

// scrambleKey0/scrambleKey1 seed the deterministic fill of the
// scramble table (spec.md §9, open question (b)). The values are
// arbitrary but fixed: changing them changes every scramble[]
// literal this generator will ever emit, so they are pinned here
// rather than derived from anything run-specific.
const (
	scrambleKey0 = 0xfeedfacecafebeef
	scrambleKey1 = 0x0123456789abcdef
)

// BuildScramble returns a deterministic table of max(n, 256)
// pseudo-random 32-bit words, keyed by siphash so the same n always
// produces the same table across builds and machines. Solve passes
// 256 (one entry per byte), or Smax (a power of two) once blen
// reaches UseScramble (spec.md §4.5.1).
func BuildScramble(n uint32) []uint32 {
	n = ints.Max(n, 256)
	table := make([]uint32, n)
	var buf [8]byte
	for i := range table {
		binary.LittleEndian.PutUint64(buf[:], uint64(i))
		h := siphash.Hash(scrambleKey0, scrambleKey1, buf[:])
		table[i] = uint32(h)
	}
	return table
}
