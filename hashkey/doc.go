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

// Package hashkey parses the generator's standard-input key list into
// a mode-tagged sequence of keys, carrying whatever raw representation
// (text bytes, a parsed integer, or an explicit (a, b) pair) each
// input mode calls for. The (hash_a, hash_b, hash_c) projection lives
// in package chooser, since deriving it requires a trial salt.
package hashkey
