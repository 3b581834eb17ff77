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

package graph

import (
	"testing"

	"github.com/jenkins-tools/perfecthash/chooser"
	"github.com/jenkins-tools/perfecthash/sizing"
)

func TestBuildAssignsKeysToBuckets(t *testing.T) {
	items := []chooser.Projected{
		{A: 0, B: 0},
		{A: 1, B: 0},
		{A: 2, B: 1},
	}
	sizes := sizing.Sizes{Alen: 4, Blen: 2, Smax: 4, Range: 3}
	g := Build(items, sizes)
	if len(g.Buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(g.Buckets))
	}
	if len(g.Buckets[0].Keys) != 2 {
		t.Fatalf("bucket 0 has %d keys, want 2", len(g.Buckets[0].Keys))
	}
	if len(g.Buckets[1].Keys) != 1 {
		t.Fatalf("bucket 1 has %d keys, want 1", len(g.Buckets[1].Keys))
	}
	if len(g.AEdges[0]) != 1 || len(g.AEdges[1]) != 1 || len(g.AEdges[2]) != 1 {
		t.Fatalf("unexpected a-edges: %v", g.AEdges)
	}
}

func TestOrderBySizeDescending(t *testing.T) {
	items := []chooser.Projected{
		{A: 0, B: 0}, {A: 1, B: 0}, {A: 2, B: 0},
		{A: 3, B: 1},
	}
	sizes := sizing.Sizes{Alen: 8, Blen: 2, Smax: 8, Range: 4}
	g := Build(items, sizes)
	order := g.OrderBySizeDescending()
	if order[0] != 0 {
		t.Fatalf("largest bucket should be first, got order %v", order)
	}
	if order[1] != 1 {
		t.Fatalf("got order %v", order)
	}
}
