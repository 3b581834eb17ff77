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

package main

import (
	"fmt"

	"github.com/jenkins-tools/perfecthash/hashkey"
	"github.com/jenkins-tools/perfecthash/solver"
)

// cliArgs is the result of parsing os.Args[1:]. It mirrors the
// original C main()'s three independent flag classes packed into one
// bundled "-NMF"-style argument, plus a handful of supplemental
// long-form flags (spec.md §9's CLI is silent on these; they are
// additive, so they can't collide with the bundled single-letter
// grammar).
type cliArgs struct {
	mode     hashkey.Mode
	minimal  bool
	strategy solver.Strategy
	verbose  bool
	outDir   string
	report   string
	trace    string
}

// defaultArgs matches the original's hard-coded defaults: NORMAL
// mode, minimal range, and (despite the usage text reading as if fast
// were the default) the slow solver strategy — main.c's form.speed
// is initialized to SLOW_HS before any flag is parsed.
func defaultArgs() cliArgs {
	return cliArgs{
		mode:     hashkey.Normal,
		minimal:  true,
		strategy: solver.Slow,
	}
}

// bundledFlagChars are the single letters that may appear packed into
// one leading "-..." argument (spec.md §6).
func isBundledFlagChar(c byte) bool {
	switch c {
	case 'n', 'N', 'i', 'I', 'h', 'H', 'd', 'D', 'a', 'A', 'b', 'B',
		'm', 'M', 'p', 'P', 'f', 'F', 's', 'S', 'v':
		return true
	}
	return false
}

// usageError is returned for anything main.c's usage_error() would
// have printed the help text for. Per spec.md §6 this exits
// successfully (code 0), not as a failure — it is not a Go `error`
// that cmd/perfect treats as fatal.
type usageError struct{}

func (usageError) Error() string { return "usage" }

// parseArgs walks argv (os.Args[1:]). Single-letter flags may be
// bundled into one argument or split across several; each class
// (mode, range, speed) may be given at most once. This generator's
// own supplemental -o/-report/-trace flags may appear before or after
// them.
func parseArgs(argv []string) (cliArgs, error) {
	args := defaultArgs()
	modeGiven, minimalGiven, speedGiven := false, false, false

	for i := 0; i < len(argv); i++ {
		a := argv[i]
		switch a {
		case "-o":
			if i+1 >= len(argv) {
				return args, usageError{}
			}
			i++
			args.outDir = argv[i]
			continue
		case "-report":
			if i+1 >= len(argv) {
				return args, usageError{}
			}
			i++
			args.report = argv[i]
			continue
		case "-trace":
			if i+1 >= len(argv) {
				return args, usageError{}
			}
			i++
			args.trace = argv[i]
			continue
		}

		if len(a) < 2 || a[0] != '-' {
			return args, usageError{}
		}
		for j := 1; j < len(a); j++ {
			c := a[j]
			if !isBundledFlagChar(c) {
				return args, usageError{}
			}
			switch c {
			case 'v':
				args.verbose = true
			case 'n', 'N', 'i', 'I', 'h', 'H', 'd', 'D', 'a', 'A', 'b', 'B':
				if modeGiven {
					return args, usageError{}
				}
				args.mode = modeOf(c)
				modeGiven = true
			case 'm', 'M', 'p', 'P':
				if minimalGiven {
					return args, usageError{}
				}
				args.minimal = c == 'm' || c == 'M'
				minimalGiven = true
			case 'f', 'F', 's', 'S':
				if speedGiven {
					return args, usageError{}
				}
				if c == 'f' || c == 'F' {
					args.strategy = solver.Fast
				} else {
					args.strategy = solver.Slow
				}
				speedGiven = true
			}
		}
	}
	return args, nil
}

func modeOf(c byte) hashkey.Mode {
	switch c {
	case 'n', 'N':
		return hashkey.Normal
	case 'i', 'I':
		return hashkey.Inline
	case 'h', 'H':
		return hashkey.Hex
	case 'd', 'D':
		return hashkey.Decimal
	case 'a', 'A':
		return hashkey.AB
	case 'b', 'B':
		return hashkey.ABDecimal
	default:
		return hashkey.Normal
	}
}

// usageText is main.c's usage_error() text, carried over verbatim
// (SPEC_FULL.md: "main.c's usage_error() text is the source of truth
// for the CLI help string").
const usageText = `Usage: perfect [-{NnIiHhDdAaBb}{MmPp}{FfSs}] < key.txt
The input is a list of keys, one key per line.
Only one of NnIiHhDdAa and one of MmPp may be specified.
  N,n: normal mode, key is any string string (default).
  I,i: initial hash for ASCII char strings.
The initial hash must be
  hash = PHASHSALT;
  for (i=0; i<keylength; ++i) {
    hash = (hash ^ key[i]) + ((hash<<26)+(hash>>6));
  }
Note that this can be inlined in any user loop that walks
through the key anyways, eliminating the loop overhead.
  H,h: Keys are 4-byte integers in hex in this format:
ffffffff
This is good for optimizing switch statement compilation.
  D,d: Same as H,h, except in decimal not hexidecimal
  A,a: An (A,B) pair is supplied in hex in this format:
aaa bbb
  B,b: Same as A,a, except in decimal not hexidecimal
This mode does nothing but find the values of tab[].
*A* must be less than the total number of keys.
  M,m: Minimal perfect hash.  Hash will be in 0..nkeys-1 (default)
  P,p: Perfect hash.  Hash will be in 0..n-1, where n >= nkeys
and n is a power of 2.  Will probably use a smaller tab[].
  F,f: Fast mode.  Generate the perfect hash fast.
  S,s: Slow mode.  Spend time finding a good perfect hash.

Supplemental flags (not part of the original tool):
  -v              verbose progress and fingerprint output
  -o DIR          write phash.h/phash.c into DIR instead of "."
  -report PATH    write a YAML build report to PATH
  -trace PATH     write a compressed solver attempt trace to PATH
`

func printUsage() {
	fmt.Print(usageText)
}
