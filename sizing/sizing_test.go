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

import "testing"

func TestNextPow2(t *testing.T) {
	cases := map[uint32]uint32{0: 1, 1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 255: 256, 256: 256, 257: 512}
	for in, want := range cases {
		if got := NextPow2(in); got != want {
			t.Errorf("NextPow2(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestChooseZero(t *testing.T) {
	s := Choose(0, true)
	if s.Range != 0 || s.Blen != 0 {
		t.Fatalf("got %+v", s)
	}
}

func TestChooseMinimalRangeIsExactNKeys(t *testing.T) {
	s := Choose(3, true)
	if s.Range != 3 {
		t.Fatalf("minimal range = %d, want 3", s.Range)
	}
	if s.Smax != 4 {
		t.Fatalf("smax = %d, want 4", s.Smax)
	}
}

func TestChoosePerfectRangeIsPowerOfTwo(t *testing.T) {
	s := Choose(1000, false)
	if s.Range != 1024 {
		t.Fatalf("perfect range = %d, want 1024", s.Range)
	}
}

func TestChoosePowerOfTwoInput(t *testing.T) {
	s := Choose(256, false)
	if s.Smax != 256 || s.Range != 256 {
		t.Fatalf("got %+v", s)
	}
}

func TestGrowBlen(t *testing.T) {
	if GrowBlen(0) != 1 {
		t.Fatal("GrowBlen(0) should bootstrap to 1")
	}
	if GrowBlen(4) != 8 {
		t.Fatal("GrowBlen should double")
	}
}
