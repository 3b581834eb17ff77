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
)

// SlowFailedError reports that the augmenting-path search could not
// converge within its recoloring budget (spec.md §4.5.3).
type SlowFailedError struct {
	Bucket uint32
}

func (e *SlowFailedError) Error() string {
	return fmt.Sprintf("slow solver: bucket %d did not converge within the recoloring budget", e.Bucket)
}

// DistinctnessError reports that two keys ended up sharing a final
// output slot despite every bucket placement reporting success. This
// is a solver defect, not a property of the input: it is only ever
// raised by the post-solve verification pass, never by solveBucket
// itself.
type DistinctnessError struct {
	Slot                uint32
	FirstKey, SecondKey int
}

func (e *DistinctnessError) Error() string {
	return fmt.Sprintf("slow solver: keys %d and %d both map to slot %d", e.FirstKey, e.SecondKey, e.Slot)
}

// maxRecolorBudget bounds the total number of a-vertex recolorings a
// single bucket placement may spend before giving up, the "bounded
// depth" spec.md §4.5.3 requires of the augmenting search.
const maxRecolorBudget = 64

// state is a snapshot of every mutable piece of the slow solver,
// cheap enough to copy wholesale for backtracking: bucket counts in
// this generator are small (this is a code-generation tool, not a
// hot path), so whole-state copy-and-restore is simpler to get right
// than fine-grained undo logs, and just as correct.
type state struct {
	vala    []int64
	valaSet []bool
	owner   []int32
	free    []uint32
}

func (s state) clone() state {
	return state{
		vala:    append([]int64(nil), s.vala...),
		valaSet: append([]bool(nil), s.valaSet...),
		owner:   append([]int32(nil), s.owner...),
		free:    append([]uint32(nil), s.free...),
	}
}

type slowSolver struct {
	g        *graph.Graph
	scramble []uint32
	rng      uint32
	state
}

// SolveSlow runs the augmenting-path strategy: buckets are processed
// largest first; each bucket tries every val_b, and when a candidate
// collides with a slot already owned by another key, the owning
// a-vertex is recolored (and everything it touches recomputed) before
// the candidate is abandoned. Unused output slots are tracked as a
// free list, not a [0, smax) bitmap, so minimal builds (Range ==
// nkeys) only ever hand out nkeys distinct slots.
//
// It returns the per-a-vertex color table the emitted phash() body
// must index at runtime (vala[hash_a]); a-vertices no key ever
// touched keep their zero value.
func SolveSlow(g *graph.Graph, scramble []uint32) ([]uint32, error) {
	rng := g.Sizes.Range
	if rng == 0 {
		return make([]uint32, g.Sizes.Alen), nil
	}
	owner := make([]int32, rng)
	for i := range owner {
		owner[i] = -1
	}
	free := make([]uint32, rng)
	for i := range free {
		free[i] = uint32(i)
	}
	slv := &slowSolver{
		g:        g,
		scramble: scramble,
		rng:      rng,
		state: state{
			vala:    make([]int64, g.Sizes.Alen),
			valaSet: make([]bool, g.Sizes.Alen),
			owner:   owner,
			free:    free,
		},
	}
	for _, bi := range g.OrderBySizeDescending() {
		bucket := &g.Buckets[bi]
		if len(bucket.Keys) == 0 {
			continue
		}
		if !slv.solveBucket(bucket) {
			return nil, &SlowFailedError{Bucket: bucket.B}
		}
	}
	vala := make([]uint32, g.Sizes.Alen)
	for a, set := range slv.valaSet {
		if set {
			vala[a] = uint32(slv.vala[a])
		}
	}
	if err := verifyDistinct(g, scramble, vala); err != nil {
		return nil, err
	}
	return vala, nil
}

// verifyDistinct re-derives every key's final slot from the completed
// vala table and checks none collide. tryValB's bookkeeping (pending
// slots passed to recolor as reserved, and the re-check of every
// forced slot before it is committed) already keeps slots distinct;
// this pass checks the finished table independently of that
// bookkeeping.
func verifyDistinct(g *graph.Graph, scramble []uint32, vala []uint32) error {
	rng := g.Sizes.Range
	if rng == 0 {
		return nil
	}
	seen := make(map[uint32]int, len(g.Items))
	for bi := range g.Buckets {
		bucket := &g.Buckets[bi]
		for _, ki := range bucket.Keys {
			item := g.Items[ki]
			y := (scramble[bucket.ValB] ^ vala[item.A]) % rng
			if prev, ok := seen[y]; ok {
				return &DistinctnessError{Slot: y, FirstKey: prev, SecondKey: ki}
			}
			seen[y] = ki
		}
	}
	return nil
}

func (slv *slowSolver) solveBucket(bucket *graph.Bucket) bool {
	for valB := uint32(0); valB < uint32(len(slv.scramble)); valB++ {
		snap := slv.state.clone()
		budget := maxRecolorBudget
		if slv.tryValB(bucket, valB, &budget) {
			bucket.ValB = valB
			return true
		}
		slv.state = snap
	}
	return false
}

// tryValB attempts to place every key of bucket under a fixed val_b,
// recoloring already-committed a-vertices (depth-bounded by budget)
// to vacate slots that are in the way.
func (slv *slowSolver) tryValB(bucket *graph.Bucket, valB uint32, budget *int) bool {
	type pending struct {
		ki int
		a  uint32
	}
	claimed := map[uint32]bool{}
	var forced []uint32
	var free []pending
	for _, ki := range bucket.Keys {
		a := slv.g.Items[ki].A
		if slv.valaSet[a] {
			y := (slv.scramble[valB] ^ uint32(slv.vala[a])) % slv.rng
			if claimed[y] {
				return false
			}
			claimed[y] = true
			forced = append(forced, y)
			continue
		}
		free = append(free, pending{ki, a})
	}
	// Vacate any forced slot currently owned by someone else. claimed
	// already holds every forced slot this bucket is about to reserve
	// for itself, so recolor must treat those as unavailable even
	// though they aren't written into owner[] until the "Reserve the
	// forced slots" loop below — otherwise recolor could hand the
	// evicted key the very slot this placement is about to claim, and
	// the reservation loop would silently overwrite that ownership
	// record with no trace of the collision.
	for _, y := range forced {
		if occ := slv.owner[y]; occ != -1 {
			occA := slv.g.Items[occ].A
			if !slv.recolor(occA, budget, claimed) {
				return false
			}
		}
	}
	// Reserve the forced slots. A recolor above may have changed the
	// color of one of this bucket's own a-vertices, which moves that
	// key off the slot computed for it earlier; such a candidate is
	// rejected here rather than committed onto a stale slot.
	fi := 0
	for _, ki := range bucket.Keys {
		a := slv.g.Items[ki].A
		if slv.valaSet[a] {
			y := forced[fi]
			fi++
			if (slv.scramble[valB]^uint32(slv.vala[a]))%slv.rng != y || slv.owner[y] != -1 {
				return false
			}
			slv.owner[y] = int32(ki)
			slv.removeFree(y)
		}
	}
	// Allocate fresh colors for every key whose a-vertex is unset.
	for _, p := range free {
		slot, ok := slv.popFree(claimed)
		if !ok {
			return false
		}
		claimed[slot] = true
		slv.vala[p.a] = int64(slot ^ slv.scramble[valB])
		slv.valaSet[p.a] = true
		slv.owner[slot] = int32(p.ki)
		slv.removeFree(slot)
	}
	return true
}

// recolor tries to give a-vertex a a different color so every key
// already committed through it (in buckets solved earlier) still
// lands on a free slot. It spends one unit of budget per attempt and
// fails once budget is exhausted, bounding the search depth. reserved
// holds slots the caller has already earmarked for its own in-flight
// placement but not yet written into owner[]; candidates that would
// land on one of those are rejected exactly as if owner[] already
// held them.
func (slv *slowSolver) recolor(a uint32, budget *int, reserved map[uint32]bool) bool {
	if *budget <= 0 {
		return false
	}
	*budget--

	type committed struct {
		ki    int
		valB  uint32
		slot  uint32
	}
	var keys []committed
	for _, ki := range slv.g.AEdges[a] {
		b := slv.g.Items[ki].B
		bucket := &slv.g.Buckets[b]
		if slv.owner[(slv.scramble[bucket.ValB]^uint32(slv.vala[a]))%slv.rng] != int32(ki) {
			continue // this key's bucket has not been solved yet
		}
		slot := (slv.scramble[bucket.ValB] ^ uint32(slv.vala[a])) % slv.rng
		keys = append(keys, committed{ki, bucket.ValB, slot})
	}
	if len(keys) == 0 {
		// a has no committed keys yet; any color works.
		slv.valaSet[a] = true
		slv.vala[a] = 0
		return true
	}

	snap := slv.state.clone()
	oldColor, hadColor := slv.vala[a], slv.valaSet[a]
	for _, c := range keys {
		slv.owner[c.slot] = -1
		slv.addFree(c.slot)
	}
	for candidate := uint32(0); candidate < uint32(len(slv.scramble)); candidate++ {
		if candidate == uint32(oldColor) && hadColor {
			continue
		}
		seen := map[uint32]bool{}
		newSlots := make([]uint32, 0, len(keys))
		ok := true
		for _, c := range keys {
			y := (slv.scramble[c.valB] ^ candidate) % slv.rng
			if seen[y] || slv.owner[y] != -1 || reserved[y] {
				ok = false
				break
			}
			seen[y] = true
			newSlots = append(newSlots, y)
		}
		if !ok {
			continue
		}
		slv.vala[a] = int64(candidate)
		slv.valaSet[a] = true
		for i, c := range keys {
			slv.owner[newSlots[i]] = int32(c.ki)
			slv.removeFree(newSlots[i])
		}
		return true
	}
	slv.state = snap
	return false
}

func (slv *slowSolver) popFree(exclude map[uint32]bool) (uint32, bool) {
	for i, s := range slv.free {
		if exclude[s] {
			continue
		}
		slv.free = append(slv.free[:i], slv.free[i+1:]...)
		return s, true
	}
	return 0, false
}

func (slv *slowSolver) removeFree(slot uint32) {
	for i, s := range slv.free {
		if s == slot {
			slv.free = append(slv.free[:i], slv.free[i+1:]...)
			return
		}
	}
}

func (slv *slowSolver) addFree(slot uint32) {
	slv.free = append(slv.free, slot)
}
