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

// Package solver assigns each bucket a val_b such that
// scramble[val_b] XOR (the key's third hash word, or an assigned
// a-vertex color) lands every key on a distinct output slot in
// [0, PHASHRANGE) (spec.md §4.5). Fast is the tree-only strategy used
// whenever the hash graph is a forest; Slow is the augmenting-path
// strategy minimal-range builds generally need.
package solver
