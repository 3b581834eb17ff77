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

package sizing

// Sizes holds the table dimensions a single build attempt works with.
type Sizes struct {
	Alen  uint32 // a in [0, Alen), power of two
	Blen  uint32 // b in [0, Blen), power of two
	Smax  uint32 // the working scramble/val_b domain, power of two
	Range uint32 // PHASHRANGE: nkeys (minimal) or Smax (perfect)
}

// Choose picks alen, blen, and smax for nkeys keys, following spec.md
// §3: alen and smax both resolve to the smallest power of two at or
// above nkeys; blen is chosen independently, roughly nkeys/4 rounded
// up to a power of two (SPEC_FULL.md open question (a): the original
// hand-tuned table was not recovered from original_source/, so this
// is a documented, literal implementation of the spec's own
// description rather than a guess at the missing table).
func Choose(nkeys int, minimal bool) Sizes {
	if nkeys <= 0 {
		return Sizes{Alen: 1, Blen: 0, Smax: 0, Range: 0}
	}
	smax := NextPow2(uint32(nkeys))
	alen := smax
	blen := NextPow2(uint32((nkeys + 3) / 4))
	if blen == 0 {
		blen = 1
	}
	rng := smax
	if minimal {
		rng = uint32(nkeys)
	}
	return Sizes{Alen: alen, Blen: blen, Smax: smax, Range: rng}
}

// NextPow2 returns the smallest power of two that is >= n, treating
// NextPow2(0) as 1.
func NextPow2(n uint32) uint32 {
	if n <= 1 {
		return 1
	}
	p := uint32(1)
	for p < n {
		p <<= 1
	}
	return p
}

// GrowBlen doubles blen, the corrective action spec.md §7(3)
// recommends on chooser exhaustion ("suggestion to increase blen").
func GrowBlen(blen uint32) uint32 {
	if blen == 0 {
		return 1
	}
	return blen * 2
}
