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

package chooser

import (
	"fmt"

	"github.com/jenkins-tools/perfecthash/hashkey"
	"github.com/jenkins-tools/perfecthash/mixer"
	"github.com/jenkins-tools/perfecthash/sizing"
)

// retryHex bounds salt retries for the low-entropy integer modes;
// retryString bounds them for string modes, which have far more
// candidate (a, b) projections to try (spec.md §4.3).
const (
	retryHex    = 2
	retryString = 20
)

// Projected is one key's bucket coordinates under a particular salt.
type Projected struct {
	Key  hashkey.Key
	A, B uint32 // hash_a in [0, alen), hash_b in [0, blen)
	C    uint32 // hash_c, the extra word the solver may consult
}

// Result is a successful chooser run: the accepted salt, every key's
// projection under that salt, and the opening lines of the generated
// phash() body.
type Result struct {
	Salt  uint32
	Items []Projected
	Code  []string
}

// DuplicateABError reports two AB/ABDecimal-mode keys supplying the
// identical (a, b) pair. Unlike a hashed-mode collision, this can
// never be fixed by retrying with a new salt (the pair was dictated
// by the input, not derived), so it is always fatal.
type DuplicateABError struct {
	First, Second hashkey.Key
}

func (e *DuplicateABError) Error() string {
	return fmt.Sprintf("duplicate (a,b) pair: %q and %q", e.First, e.Second)
}

// ExhaustedError reports that no salt in the retry budget produced a
// collision-free (a, b) projection.
type ExhaustedError struct {
	Tried int
	Blen  uint32
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("no salt accepted after %d attempts (blen=%d); consider a larger blen", e.Tried, e.Blen)
}

// RetryBudget returns the number of salts Choose will try for mode
// before giving up (spec.md §4.3). Explicit-pair modes never retry:
// a collision there is a user error, not a search failure.
func RetryBudget(mode hashkey.Mode) int {
	switch {
	case mode.HasExplicitAB():
		return 1
	case mode == hashkey.Hex || mode == hashkey.Decimal:
		return retryHex
	default:
		return retryString
	}
}

// Choose searches salts starting at startSalt for one that projects
// every key in keys onto a distinct (hash_a, hash_b) pair, within
// mode's retry budget.
func Choose(keys []hashkey.Key, mode hashkey.Mode, sizes sizing.Sizes, startSalt uint32) (Result, error) {
	budget := RetryBudget(mode)
	var lastErr error
	for attempt := 0; attempt < budget; attempt++ {
		salt := startSalt + uint32(attempt)
		items, err := project(keys, mode, sizes, salt)
		if err != nil {
			if dup, ok := err.(*DuplicateABError); ok {
				return Result{}, dup
			}
			lastErr = err
			continue
		}
		return Result{Salt: salt, Items: items, Code: buildCode(mode, sizes)}, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("empty key set")
	}
	return Result{}, &ExhaustedError{Tried: budget, Blen: sizes.Blen}
}

// project computes every key's (a, b, c) triple under salt and
// verifies no two keys share an (a, b) pair.
func project(keys []hashkey.Key, mode hashkey.Mode, sizes sizing.Sizes, salt uint32) ([]Projected, error) {
	items := make([]Projected, len(keys))
	seen := make(map[[2]uint32]hashkey.Key, len(keys))
	amask := sizes.Alen - 1
	bmask := sizes.Blen - 1
	for i, k := range keys {
		a, b, c := projectOne(k, mode, salt)
		a &= amask
		if sizes.Blen > 0 {
			b &= bmask
		} else {
			b = 0
		}
		items[i] = Projected{Key: k, A: a, B: b, C: c}
		pair := [2]uint32{a, b}
		if prior, dup := seen[pair]; dup {
			if mode.HasExplicitAB() {
				return nil, &DuplicateABError{First: prior, Second: k}
			}
			return nil, fmt.Errorf("duplicate (a,b)=(%d,%d) for salt %d", a, b, salt)
		}
		seen[pair] = k
	}
	return items, nil
}

// projectOne computes the raw (unmasked) (a, b, c) triple for a
// single key, dispatching on mode per spec.md §4.3's table.
func projectOne(k hashkey.Key, mode hashkey.Mode, salt uint32) (a, b, c uint32) {
	// The emitted phash() seeds mix() with PHASHSALT, which package
	// codegen defines as salt * 0x9e3779b9; the projection uses the
	// same seed so the generator and the emitted code agree.
	seed := salt * 0x9e3779b9
	switch mode {
	case hashkey.Normal:
		return mixer.Mix(k.Text, seed)
	case hashkey.Inline:
		// The caller is contracted to reproduce InlineHash externally;
		// the generator projects (a,b,c) by mixing that word's bytes
		// (SPEC_FULL.md open question decision 4).
		w := mixer.InlineHash(k.Text, seed)
		return mixer.Mix(mixer.Uint32Bytes(w), seed)
	case hashkey.Hex, hashkey.Decimal:
		return mixer.Mix(mixer.Uint32Bytes(k.Int), seed)
	case hashkey.AB, hashkey.ABDecimal:
		return k.A, k.B, 0
	default:
		return 0, 0, 0
	}
}

// buildCode returns the opening lines of the emitted phash() body:
// the mode-specific computation of the local a/b/c words that
// package codegen will later combine with tab[] and scramble[].
func buildCode(mode hashkey.Mode, sizes sizing.Sizes) []string {
	amask := sizes.Alen - 1
	bmask := uint32(0)
	if sizes.Blen > 0 {
		bmask = sizes.Blen - 1
	}
	switch mode {
	case hashkey.Normal:
		return []string{
			"  ub4 rsl, ha, hb, hc;\n",
			"  mix((ub1 *)key, len, PHASHSALT, &ha, &hb, &hc);\n",
			fmt.Sprintf("  ha &= 0x%x;\n", amask),
			fmt.Sprintf("  hb &= 0x%x;\n", bmask),
		}
	case hashkey.Hex, hashkey.Decimal, hashkey.Inline:
		return []string{
			"  ub4 rsl, ha, hb, hc;\n",
			"  ub1 buf[4];\n",
			"  buf[0]=(ub1)val; buf[1]=(ub1)(val>>8); buf[2]=(ub1)(val>>16); buf[3]=(ub1)(val>>24);\n",
			"  mix(buf, 4, PHASHSALT, &ha, &hb, &hc);\n",
			fmt.Sprintf("  ha &= 0x%x;\n", amask),
			fmt.Sprintf("  hb &= 0x%x;\n", bmask),
		}
	case hashkey.AB, hashkey.ABDecimal:
		return []string{
			"  ub4 rsl, ha, hb;\n",
			fmt.Sprintf("  ha = a & 0x%x;\n", amask),
			fmt.Sprintf("  hb = b & 0x%x;\n", bmask),
		}
	default:
		return nil
	}
}
