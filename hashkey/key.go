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

package hashkey

import "fmt"

// Key is one parsed input line. Exactly one of the representations
// below is populated, depending on the Mode the key was read with.
type Key struct {
	// Line is the 1-based input line this key came from, used in
	// diagnostics only.
	Line int

	// Text holds the raw key bytes for Normal and Inline modes.
	Text []byte

	// Int holds the parsed 32-bit word for Hex and Decimal modes.
	Int uint32

	// A and B hold the explicit pair for AB and ABDecimal modes.
	A, B uint32
}

// String renders the key approximately the way it appeared on input,
// for error messages.
func (k Key) String() string {
	switch {
	case k.Text != nil:
		return string(k.Text)
	case k.A != 0 || k.B != 0:
		return fmt.Sprintf("%x %x", k.A, k.B)
	default:
		return fmt.Sprintf("%x", k.Int)
	}
}
