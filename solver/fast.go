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
	"fmt"

	"github.com/jenkins-tools/perfecthash/graph"
	"github.com/jenkins-tools/perfecthash/ints"
)

// FastFailedError reports that no candidate val_b let a bucket's keys
// land on distinct, unclaimed output slots. This is almost always
// recoverable by retrying with a new salt (spec.md §4.5.2).
type FastFailedError struct {
	Bucket uint32
}

func (e *FastFailedError) Error() string {
	return fmt.Sprintf("fast solver: bucket %d has no workable val_b", e.Bucket)
}

// SolveFast runs the tree-only strategy: buckets are processed
// largest first, and each bucket's val_b is the first candidate that
// sends every one of its keys to a currently-unclaimed output slot,
// using only the key's own hash_c word (no a-vertex coloring).
func SolveFast(g *graph.Graph, scramble []uint32) error {
	rng := g.Sizes.Range
	if rng == 0 {
		return nil
	}
	used := make([]uint32, (rng+31)/32)
	order := g.OrderBySizeDescending()
	slots := make([]uint32, 0, 8)
	for _, bi := range order {
		bucket := &g.Buckets[bi]
		if len(bucket.Keys) == 0 {
			continue
		}
		assigned := false
		for valB := uint32(0); valB < uint32(len(scramble)); valB++ {
			slots = slots[:0]
			ok := true
			for _, ki := range bucket.Keys {
				y := (scramble[valB] ^ g.Items[ki].C) % rng
				if ints.TestBit(used, y) || contains(slots, y) {
					ok = false
					break
				}
				slots = append(slots, y)
			}
			if !ok {
				continue
			}
			for _, s := range slots {
				ints.SetBit(used, s)
			}
			bucket.ValB = valB
			assigned = true
			break
		}
		if !assigned {
			return &FastFailedError{Bucket: bucket.B}
		}
	}
	return nil
}

func contains(xs []uint32, v uint32) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
