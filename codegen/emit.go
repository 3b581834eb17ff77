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
	"fmt"
	"strings"

	"github.com/jenkins-tools/perfecthash/graph"
	"github.com/jenkins-tools/perfecthash/hashkey"
	"github.com/jenkins-tools/perfecthash/sizing"
	"github.com/jenkins-tools/perfecthash/solver"
)

// goldenSalt is the PHASHSALT multiplier spec.md §4.6 fixes:
// PHASHSALT = salt * golden32.
const goldenSalt = 0x9e3779b9

// ctype is the C integer width chosen for tab[] per spec.md §4.5.4.
type ctype struct {
	name        string
	valuesPerLn int
	fmtValue    func(uint32) string
}

var (
	ctypeU1 = ctype{name: "ub1", valuesPerLn: 16, fmtValue: func(v uint32) string { return fmt.Sprintf("0x%02x", v) }}
	ctypeU2 = ctype{name: "ub2", valuesPerLn: 8, fmtValue: func(v uint32) string { return fmt.Sprintf("0x%04x", v) }}
	ctypeU4 = ctype{name: "ub4", valuesPerLn: 4, fmtValue: func(v uint32) string { return fmt.Sprintf("0x%08x", v) }}
)

// tabType picks tab[]'s width: ub1 when smax fits in a byte and blen
// hasn't grown past UseScramble, ub2 up to 65536, ub4 beyond that
// (spec.md §4.5.4).
func tabType(sizes sizing.Sizes) ctype {
	switch {
	case sizes.Smax <= 256 && sizes.Blen < solver.UseScramble:
		return ctypeU1
	case sizes.Smax <= 65536:
		return ctypeU2
	default:
		return ctypeU4
	}
}

// Build is everything package codegen needs to render phash.h and
// phash.c for one accepted build: the chosen mode and sizes, the
// salt and opening phash() lines the chooser produced, the solved
// graph, and the solver's output (scramble table plus, for the slow
// strategy, the per-a-vertex color table).
type Build struct {
	Mode     hashkey.Mode
	Sizes    sizing.Sizes
	Salt     uint32
	OpenCode []string
	Graph    *graph.Graph
	Solve    solver.Result
	NKeys    int
}

// Header renders phash.h.
func (b Build) Header() []byte {
	return b.HeaderWithTag("")
}

// HeaderWithTag renders phash.h with an optional "// build <tag>"
// comment identifying the specific generator run that produced it
// (spec.md's emitted files carry no such marker; this is a
// supplemental, purely informational addition — see SPEC_FULL.md's
// domain stack section on github.com/google/uuid).
func (b Build) HeaderWithTag(tag string) []byte {
	var s strings.Builder
	guard := "PHASH_H"
	if tag != "" {
		fmt.Fprintf(&s, "// build %s\n", tag)
	}
	fmt.Fprintf(&s, "#ifndef %s\n#define %s\n\n", guard, guard)
	fmt.Fprintf(&s, "typedef unsigned char ub1;\n")
	fmt.Fprintf(&s, "typedef unsigned short ub2;\n")
	fmt.Fprintf(&s, "typedef unsigned int ub4;\n\n")
	fmt.Fprintf(&s, "#define PHASHLEN 0x%x /* length of hash mapping table */\n", b.Sizes.Blen)
	fmt.Fprintf(&s, "#define PHASHNKEYS %d /* number of keys */\n", b.NKeys)
	fmt.Fprintf(&s, "#define PHASHRANGE 0x%x /* range of values returned by phash() */\n", b.Sizes.Range)
	fmt.Fprintf(&s, "#define PHASHSALT 0x%x /* internal, for use by phash() only */\n", uint32(b.Salt*goldenSalt))
	fmt.Fprintf(&s, "\nextern %s tab[PHASHLEN];\n", tabType(b.Sizes).name)
	// scramble[] is always its own table: tab[] holds the per-bucket
	// val_b index, never a pre-scrambled output word, so the two
	// concerns never collapse into one table regardless of blen
	// (a deliberate simplification of the original's table-folding,
	// documented in DESIGN.md).
	fmt.Fprintf(&s, "extern ub4 scramble[%d];\n", len(b.Solve.Scramble))
	if b.Solve.ValA != nil {
		fmt.Fprintf(&s, "extern ub4 vala[0x%x];\n", b.Sizes.Alen)
	}
	fmt.Fprintf(&s, "\nub4 phash(%s);\n", phashParams(b.Mode))
	fmt.Fprintf(&s, "\n#endif /* %s */\n", guard)
	return []byte(s.String())
}

// needsScrambleArray reports whether scramble[] must be emitted as
// its own table rather than folded directly into tab[]'s own values
// (spec.md §4.5.1, §4.5.4). This generator always keeps scramble[]
// separate from tab[]: tab[] holds the per-bucket val_b index, never
// a pre-scrambled output word, so the two concerns don't collapse
// into one table regardless of blen (documented in DESIGN.md as a
// deliberate simplification of the original's table-folding).
func (b Build) needsScrambleArray() bool {
	return true
}

func phashParams(mode hashkey.Mode) string {
	switch mode {
	case hashkey.Normal:
		return "const ub1 *key, ub4 len"
	case hashkey.AB, hashkey.ABDecimal:
		return "ub4 a, ub4 b"
	default:
		return "ub4 val"
	}
}

// Source renders phash.c.
func (b Build) Source() []byte {
	var s strings.Builder
	fmt.Fprintf(&s, "#include \"phash.h\"\n\n")

	fmt.Fprintf(&s, "ub4 scramble[%d] = {\n", len(b.Solve.Scramble))
	writeTable(&s, b.Solve.Scramble, ctypeU4)
	fmt.Fprintf(&s, "};\n\n")

	tab := make([]uint32, b.Sizes.Blen)
	for i := range tab {
		tab[i] = b.Graph.Buckets[i].ValB
	}
	tt := tabType(b.Sizes)
	fmt.Fprintf(&s, "%s tab[%d] = {\n", tt.name, len(tab))
	writeTable(&s, tab, tt)
	fmt.Fprintf(&s, "};\n\n")

	if b.Solve.ValA != nil {
		fmt.Fprintf(&s, "ub4 vala[%d] = {\n", len(b.Solve.ValA))
		writeTable(&s, b.Solve.ValA, ctypeU4)
		fmt.Fprintf(&s, "};\n\n")
	}

	fmt.Fprintf(&s, "ub4 phash(%s)\n{\n", phashParams(b.Mode))
	for _, line := range b.OpenCode {
		s.WriteString(line)
	}
	if b.Solve.ValA != nil {
		fmt.Fprintf(&s, "  rsl = (scramble[tab[hb]] ^ vala[ha]) %% PHASHRANGE;\n")
	} else {
		fmt.Fprintf(&s, "  rsl = (scramble[tab[hb]] ^ hc) %% PHASHRANGE;\n")
	}
	fmt.Fprintf(&s, "  return rsl;\n}\n")
	return []byte(s.String())
}

func writeTable(s *strings.Builder, values []uint32, ct ctype) {
	for i, v := range values {
		if i%ct.valuesPerLn == 0 {
			if i != 0 {
				s.WriteString("\n")
			}
			s.WriteString(" ")
		}
		fmt.Fprintf(s, " %s,", ct.fmtValue(v))
	}
	s.WriteString("\n")
}
