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
	"github.com/jenkins-tools/perfecthash/chooser"
	"github.com/jenkins-tools/perfecthash/heap"
	"github.com/jenkins-tools/perfecthash/sizing"
)

// Bucket is one b-vertex: the "bstuff" of spec.md §3. Keys holds
// indices into Graph.Items. ValB is filled in by package solver.
type Bucket struct {
	B    uint32
	Keys []int
	ValB uint32
}

// Graph is the bipartite structure connecting every key's a-vertex to
// its b-vertex.
type Graph struct {
	Sizes sizing.Sizes
	Items []chooser.Projected
	// Buckets has exactly Sizes.Blen entries, indexed by b.
	Buckets []Bucket
	// AEdges[a] lists the indices (into Items) of every key whose
	// hash_a equals a. Only the slow solver walks this; the fast
	// solver only needs Buckets.
	AEdges [][]int
}

// Build assembles the graph from a chooser.Result's projected keys.
func Build(items []chooser.Projected, sizes sizing.Sizes) Graph {
	g := Graph{
		Sizes:   sizes,
		Items:   items,
		Buckets: make([]Bucket, sizes.Blen),
		AEdges:  make([][]int, sizes.Alen),
	}
	for b := range g.Buckets {
		g.Buckets[b].B = uint32(b)
	}
	for i, it := range items {
		g.Buckets[it.B].Keys = append(g.Buckets[it.B].Keys, i)
		g.AEdges[it.A] = append(g.AEdges[it.A], i)
	}
	return g
}

// OrderBySizeDescending returns bucket indices ordered from largest
// to smallest, the processing order both solver strategies use
// (spec.md §4.5.2, §4.5.3: "process buckets largest first"). Buckets
// of equal size keep their original (ascending b) relative order.
func (g *Graph) OrderBySizeDescending() []int {
	order := make([]int, len(g.Buckets))
	for i := range order {
		order[i] = i
	}
	less := func(x, y int) bool {
		lx, ly := len(g.Buckets[x].Keys), len(g.Buckets[y].Keys)
		if lx != ly {
			return lx > ly
		}
		return x < y
	}
	heap.OrderSlice(order, less)
	sorted := make([]int, 0, len(order))
	for len(order) > 0 {
		sorted = append(sorted, heap.PopSlice(&order, less))
	}
	return sorted
}
