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
	"testing"

	"github.com/jenkins-tools/perfecthash/chooser"
	"github.com/jenkins-tools/perfecthash/graph"
	"github.com/jenkins-tools/perfecthash/sizing"
)

func distinctSlots(t *testing.T, g *graph.Graph, res Result) {
	t.Helper()
	rng := g.Sizes.Range
	seen := make(map[uint32]bool)
	for bi := range g.Buckets {
		bucket := &g.Buckets[bi]
		for _, ki := range bucket.Keys {
			item := g.Items[ki]
			var y uint32
			if len(bucket.Keys) > 0 {
				if res.ValA != nil {
					y = (res.Scramble[bucket.ValB] ^ res.ValA[item.A]) % rng
				} else {
					y = (res.Scramble[bucket.ValB] ^ item.C) % rng
				}
			}
			if seen[y] {
				t.Fatalf("slot %d reused", y)
			}
			seen[y] = true
		}
	}
}

func TestSolveFastAcyclicGraph(t *testing.T) {
	items := []chooser.Projected{
		{A: 0, B: 0, C: 1},
		{A: 1, B: 1, C: 2},
		{A: 2, B: 2, C: 3},
		{A: 3, B: 3, C: 4},
	}
	sizes := sizing.Sizes{Alen: 8, Blen: 4, Smax: 4, Range: 4}
	g := graph.Build(items, sizes)
	res, err := Solve(&g, Fast)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	distinctSlots(t, &g, res)
}

func TestSolveSlowHandlesSharedBucket(t *testing.T) {
	items := []chooser.Projected{
		{A: 0, B: 0, C: 1},
		{A: 1, B: 0, C: 2},
		{A: 2, B: 1, C: 3},
	}
	sizes := sizing.Sizes{Alen: 8, Blen: 2, Smax: 3, Range: 3}
	g := graph.Build(items, sizes)
	res, err := Solve(&g, Slow)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	distinctSlots(t, &g, res)
}

func TestSolveSlowHandlesFourCycle(t *testing.T) {
	// A genuine 4-cycle: A0-B0-A1-B1-A0. The first bucket processed
	// colors both a-vertices fresh; the second bucket then finds both
	// of its a-vertices already colored and must force both slots at
	// once, which is the path that drives recolor's eviction search.
	items := []chooser.Projected{
		{A: 0, B: 0, C: 1},
		{A: 1, B: 0, C: 2},
		{A: 0, B: 1, C: 3},
		{A: 1, B: 1, C: 4},
	}
	sizes := sizing.Sizes{Alen: 8, Blen: 2, Smax: 2, Range: 4}
	g := graph.Build(items, sizes)
	res, err := Solve(&g, Slow)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	distinctSlots(t, &g, res)
}

func TestSolveEmptyGraph(t *testing.T) {
	sizes := sizing.Sizes{Alen: 1, Blen: 1, Smax: 0, Range: 0}
	g := graph.Build(nil, sizes)
	if _, err := Solve(&g, Fast); err != nil {
		t.Fatalf("Solve on empty graph should succeed, got %v", err)
	}
}
