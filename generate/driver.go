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

package generate

import (
	"fmt"
	"io"

	"github.com/jenkins-tools/perfecthash/chooser"
	"github.com/jenkins-tools/perfecthash/codegen"
	"github.com/jenkins-tools/perfecthash/graph"
	"github.com/jenkins-tools/perfecthash/hashkey"
	"github.com/jenkins-tools/perfecthash/sizing"
	"github.com/jenkins-tools/perfecthash/solver"
)

// ParseError wraps a malformed input line (spec.md §7 error kind 1).
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string { return e.Cause.Error() }
func (e *ParseError) Unwrap() error { return e.Cause }

// DuplicateKeyError reports two identical raw inputs (spec.md §7
// error kind 2). Unlike a chooser collision on (a, b), this is
// detected before any salt is tried at all.
type DuplicateKeyError struct {
	First, Second int // 1-based input line numbers
	Key           string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q on lines %d and %d", e.Key, e.First, e.Second)
}

// ChooserExhaustedError reports that no salt, even after growing
// blen, produced a collision-free (a, b) projection (spec.md §7 error
// kind 3).
type ChooserExhaustedError struct {
	Cause error
}

func (e *ChooserExhaustedError) Error() string {
	return fmt.Sprintf("chooser exhausted: %s", e.Cause)
}
func (e *ChooserExhaustedError) Unwrap() error { return e.Cause }

// SolverExhaustedError reports that the bucket-coloring search never
// converged for any salt tried (spec.md §7 error kind 4).
type SolverExhaustedError struct {
	Cause error
}

func (e *SolverExhaustedError) Error() string {
	return fmt.Sprintf("solver exhausted: %s", e.Cause)
}
func (e *SolverExhaustedError) Unwrap() error { return e.Cause }

// Result is everything a caller (the CLI, or a test) needs after a
// successful run: the rendered build plus the statistics the verbose
// log line and the optional report describe.
type Result struct {
	Build       codegen.Build
	Fingerprint string
	SaltTries   int
	Strategy    solver.Strategy
}

// Run executes the full read/choose/solve pipeline over r.
func Run(r io.Reader, opts Options) (*Result, error) {
	keys, err := hashkey.Read(r, opts.Mode)
	if err != nil {
		return nil, &ParseError{Cause: err}
	}
	opts.logf("Read in %d keys", len(keys))
	if dup := findDuplicate(keys, opts.Mode); dup != nil {
		return nil, dup
	}

	strategy := opts.effectiveStrategy()
	sizes := sizing.Choose(len(keys), opts.Minimal)
	salt := opts.StartSalt
	totalTries := 0

	var lastErr error
	for growth := 0; growth <= maxBlenGrowths; growth++ {
		res, err := chooser.Choose(keys, opts.Mode, sizes, salt)
		if err != nil {
			opts.trace("choose", salt, strategy.String(), err)
			if dup, ok := err.(*chooser.DuplicateABError); ok {
				return nil, dup
			}
			totalTries += chooser.RetryBudget(opts.Mode)
			salt += uint32(chooser.RetryBudget(opts.Mode))
			lastErr = err
			sizes.Blen = sizing.GrowBlen(sizes.Blen)
			continue
		}
		opts.trace("choose", res.Salt, strategy.String(), nil)
		totalTries += int(res.Salt-salt) + 1
		salt = res.Salt + 1

		g := graph.Build(res.Items, sizes)
		solved, serr := solver.Solve(&g, strategy)
		opts.trace("solve", res.Salt, strategy.String(), serr)
		if serr != nil {
			if strategy == solver.Fast {
				// A forest-only strategy failing usually just means
				// the graph has a cycle; fall back to the augmenting
				// search before giving up on this salt's projection
				// and moving on to the next salt.
				solved, serr = solver.Solve(&g, solver.Slow)
				opts.trace("solve", res.Salt, solver.Slow.String(), serr)
			}
			if serr != nil {
				lastErr = serr
				salt++
				totalTries++
				continue
			}
			strategy = solver.Slow
		}

		fp, err := Fingerprint(keys, opts)
		if err != nil {
			return nil, err
		}
		opts.logf("alen=%d blen=%d smax=%d salt=%d tries=%d strategy=%v fingerprint=%s",
			sizes.Alen, sizes.Blen, sizes.Smax, res.Salt, totalTries, strategy, fp)
		build := codegen.Build{
			Mode:     opts.Mode,
			Sizes:    sizes,
			Salt:     res.Salt,
			OpenCode: res.Code,
			Graph:    &g,
			Solve:    solved,
			NKeys:    len(keys),
		}
		return &Result{Build: build, Fingerprint: fp, SaltTries: totalTries, Strategy: strategy}, nil
	}
	if _, ok := lastErr.(*chooser.ExhaustedError); ok {
		return nil, &ChooserExhaustedError{Cause: lastErr}
	}
	return nil, &SolverExhaustedError{Cause: lastErr}
}

// findDuplicate scans keys for two identical raw inputs under mode's
// notion of equality.
func findDuplicate(keys []hashkey.Key, mode hashkey.Mode) *DuplicateKeyError {
	seen := make(map[string]int, len(keys))
	for _, k := range keys {
		id := rawIdentity(k, mode)
		if first, ok := seen[id]; ok {
			return &DuplicateKeyError{First: first, Second: k.Line, Key: id}
		}
		seen[id] = k.Line
	}
	return nil
}

func rawIdentity(k hashkey.Key, mode hashkey.Mode) string {
	switch {
	case mode.IsString():
		return string(k.Text)
	case mode.HasExplicitAB():
		return fmt.Sprintf("%d %d", k.A, k.B)
	default:
		return fmt.Sprintf("%d", k.Int)
	}
}
