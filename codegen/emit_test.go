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

package codegen

import (
	"strings"
	"testing"

	"github.com/jenkins-tools/perfecthash/chooser"
	"github.com/jenkins-tools/perfecthash/graph"
	"github.com/jenkins-tools/perfecthash/hashkey"
	"github.com/jenkins-tools/perfecthash/sizing"
	"github.com/jenkins-tools/perfecthash/solver"
)

func sampleBuild(t *testing.T, valA []uint32) Build {
	t.Helper()
	items := []chooser.Projected{
		{A: 0, B: 0, C: 1},
		{A: 1, B: 1, C: 2},
	}
	sizes := sizing.Sizes{Alen: 2, Blen: 2, Smax: 2, Range: 2}
	g := graph.Build(items, sizes)
	g.Buckets[0].ValB = 0
	g.Buckets[1].ValB = 1
	return Build{
		Mode:     hashkey.Normal,
		Sizes:    sizes,
		Salt:     7,
		OpenCode: []string{"  ub4 rsl, ha, hb, hc;\n", "  mix((ub1 *)key, len, PHASHSALT, &ha, &hb, &hc);\n"},
		Graph:    &g,
		Solve:    solver.Result{Scramble: []uint32{0x1, 0x2}, ValA: valA},
		NKeys:    2,
	}
}

func TestHeaderContainsConstants(t *testing.T) {
	b := sampleBuild(t, nil)
	h := string(b.Header())
	for _, want := range []string{"PHASHLEN", "PHASHNKEYS", "PHASHRANGE", "PHASHSALT", "ub4 phash("} {
		if !strings.Contains(h, want) {
			t.Fatalf("header missing %q:\n%s", want, h)
		}
	}
}

func TestHeaderWithTagEmbedsComment(t *testing.T) {
	b := sampleBuild(t, nil)
	h := string(b.HeaderWithTag("abc-123"))
	if !strings.HasPrefix(h, "// build abc-123\n") {
		t.Fatalf("expected build tag comment, got:\n%s", h)
	}
}

func TestSourceUsesHashCWithoutValA(t *testing.T) {
	b := sampleBuild(t, nil)
	src := string(b.Source())
	if !strings.Contains(src, "scramble[tab[hb]] ^ hc") {
		t.Fatalf("expected hash_c based formula, got:\n%s", src)
	}
	if strings.Contains(src, "vala[") {
		t.Fatalf("did not expect vala[] reference without a color table:\n%s", src)
	}
}

func TestSourceUsesValAWhenPresent(t *testing.T) {
	b := sampleBuild(t, []uint32{9, 10})
	src := string(b.Source())
	if !strings.Contains(src, "scramble[tab[hb]] ^ vala[ha]") {
		t.Fatalf("expected vala-based formula, got:\n%s", src)
	}
	if !strings.Contains(src, "ub4 vala[2]") {
		t.Fatalf("expected vala[] table, got:\n%s", src)
	}
}

func TestTabTypeWidths(t *testing.T) {
	cases := []struct {
		sizes sizing.Sizes
		want  string
	}{
		{sizing.Sizes{Smax: 16, Blen: 4}, "ub1"},
		{sizing.Sizes{Smax: 1000, Blen: 4}, "ub2"},
		{sizing.Sizes{Smax: 1 << 20, Blen: 4}, "ub4"},
		{sizing.Sizes{Smax: 16, Blen: solver.UseScramble}, "ub2"},
	}
	for _, c := range cases {
		if got := tabType(c.sizes).name; got != c.want {
			t.Errorf("tabType(%+v) = %s, want %s", c.sizes, got, c.want)
		}
	}
}
