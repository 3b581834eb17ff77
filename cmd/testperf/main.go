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

// Command testperf is a debugging companion to perfect: it reads the
// same key formats from standard input and, instead of compiling and
// invoking the emitted C, reports the (hash_a, hash_b, hash_c) triple
// and final output slot the generator's own internal projection
// would compute for each key. It mirrors testperf.c's round-trip
// check against a compiled phash() without ever shelling out to a C
// compiler (non-goal: this repo never invokes one).
package main

import (
	"fmt"
	"os"

	"github.com/jenkins-tools/perfecthash/generate"
	"github.com/jenkins-tools/perfecthash/hashkey"
)

func usage() {
	fmt.Println("usage is the same as perfect (which see)")
}

func modeFlag(argv []string) (hashkey.Mode, bool) {
	if len(argv) == 0 {
		return hashkey.Normal, true
	}
	if len(argv) != 1 || len(argv[0]) < 2 || argv[0][0] != '-' {
		return hashkey.Normal, false
	}
	switch argv[0][1] {
	case 'n', 'N':
		return hashkey.Normal, true
	case 'i', 'I':
		return hashkey.Inline, true
	case 'h', 'H':
		return hashkey.Hex, true
	case 'd', 'D':
		return hashkey.Decimal, true
	case 'a', 'A':
		return hashkey.AB, true
	case 'b', 'B':
		return hashkey.ABDecimal, true
	default:
		return hashkey.Normal, false
	}
}

func main() {
	mode, ok := modeFlag(os.Args[1:])
	if !ok {
		usage()
		os.Exit(0)
	}

	res, err := generate.Run(os.Stdin, generate.Options{Mode: mode, Minimal: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	fmt.Printf("Read in %d keys\n", res.Build.NKeys)

	g := res.Build.Graph
	scramble := res.Build.Solve.Scramble
	vala := res.Build.Solve.ValA
	rng := res.Build.Sizes.Range
	for _, item := range g.Items {
		valB := g.Buckets[item.B].ValB
		var slot uint32
		if rng > 0 {
			if vala != nil {
				slot = (scramble[valB] ^ vala[item.A]) % rng
			} else {
				slot = (scramble[valB] ^ item.C) % rng
			}
		}
		fmt.Printf("%8d  a=%d b=%d c=%d  %s\n", slot, item.A, item.B, item.C, item.Key)
	}
}
