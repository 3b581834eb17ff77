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
	"testing"

	"github.com/jenkins-tools/perfecthash/hashkey"
	"github.com/jenkins-tools/perfecthash/sizing"
)

func keysOf(texts ...string) []hashkey.Key {
	out := make([]hashkey.Key, len(texts))
	for i, t := range texts {
		out[i] = hashkey.Key{Line: i + 1, Text: []byte(t)}
	}
	return out
}

func TestChooseAcceptsDistinctStrings(t *testing.T) {
	keys := keysOf("cat", "dog", "bat")
	sizes := sizing.Choose(len(keys), true)
	res, err := Choose(keys, hashkey.Normal, sizes, 0)
	if err != nil {
		t.Fatal(err)
	}
	seen := map[[2]uint32]bool{}
	for _, it := range res.Items {
		pair := [2]uint32{it.A, it.B}
		if seen[pair] {
			t.Fatalf("duplicate (a,b) pair survived Choose: %v", pair)
		}
		seen[pair] = true
	}
	if len(res.Code) == 0 {
		t.Fatal("expected non-empty generated code lines")
	}
}

func TestChooseABDuplicateIsFatal(t *testing.T) {
	keys := []hashkey.Key{
		{Line: 1, A: 1, B: 1},
		{Line: 2, A: 1, B: 1},
	}
	sizes := sizing.Choose(len(keys), true)
	_, err := Choose(keys, hashkey.AB, sizes, 0)
	if err == nil {
		t.Fatal("expected duplicate (a,b) error")
	}
	if _, ok := err.(*DuplicateABError); !ok {
		t.Fatalf("got %T, want *DuplicateABError", err)
	}
}

func TestChooseABDistinctSucceeds(t *testing.T) {
	keys := []hashkey.Key{
		{Line: 1, A: 0, B: 0},
		{Line: 2, A: 1, B: 1},
	}
	sizes := sizing.Choose(len(keys), true)
	res, err := Choose(keys, hashkey.AB, sizes, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(res.Items))
	}
}

func TestRetryBudgetByMode(t *testing.T) {
	if RetryBudget(hashkey.AB) != 1 {
		t.Error("AB should never retry")
	}
	if RetryBudget(hashkey.Hex) != retryHex {
		t.Error("Hex should use retryHex budget")
	}
	if RetryBudget(hashkey.Normal) != retryString {
		t.Error("Normal should use retryString budget")
	}
}
