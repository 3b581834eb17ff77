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

import "github.com/jenkins-tools/perfecthash/graph"

// Strategy selects which algorithm Solve uses to place buckets.
type Strategy int

const (
	// Fast is the tree-only strategy: no a-vertex coloring, so it
	// only succeeds when the key graph has no cycles.
	Fast Strategy = iota
	// Slow is the augmenting-path strategy, tried whenever Fast
	// fails or the caller already knows the graph has cycles.
	Slow
)

func (s Strategy) String() string {
	if s == Slow {
		return "slow"
	}
	return "fast"
}

// Result is a successful solve: the scramble table every tab[] entry
// indexes into, and the per-a-vertex color table the emitted code
// must consult (nil when strategy is Fast, since the tree-only
// strategy never colors a-vertices and the runtime formula consults
// hash_c directly instead).
type Result struct {
	Scramble []uint32
	ValA     []uint32
}

// Solve assigns every bucket a val_b using the requested strategy,
// building the scramble table first. It does not retry salts; callers
// that want retries drive Solve again with a freshly projected graph
// (spec.md §4.7).
func Solve(g *graph.Graph, strategy Strategy) (Result, error) {
	n := uint32(256)
	if g.Sizes.Blen >= UseScramble {
		n = g.Sizes.Smax
	}
	scramble := BuildScramble(n)
	switch strategy {
	case Slow:
		vala, err := SolveSlow(g, scramble)
		if err != nil {
			return Result{}, err
		}
		return Result{Scramble: scramble, ValA: vala}, nil
	default:
		if err := SolveFast(g, scramble); err != nil {
			return Result{}, err
		}
		return Result{Scramble: scramble}, nil
	}
}
