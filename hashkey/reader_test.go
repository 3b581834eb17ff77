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

import (
	"strings"
	"testing"
)

func TestReadNormal(t *testing.T) {
	keys, err := Read(strings.NewReader("cat\ndog\nbat\n"), Normal)
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 3 {
		t.Fatalf("got %d keys, want 3", len(keys))
	}
	want := []string{"cat", "dog", "bat"}
	for i, w := range want {
		if string(keys[i].Text) != w {
			t.Errorf("key %d = %q, want %q", i, keys[i].Text, w)
		}
	}
}

func TestReadEmpty(t *testing.T) {
	keys, err := Read(strings.NewReader(""), Normal)
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 0 {
		t.Fatalf("got %d keys, want 0", len(keys))
	}
}

func TestReadNoTrailingNewline(t *testing.T) {
	keys, err := Read(strings.NewReader("cat\ndog"), Normal)
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || string(keys[1].Text) != "dog" {
		t.Fatalf("got %+v", keys)
	}
}

func TestReadHex(t *testing.T) {
	keys, err := Read(strings.NewReader("ffffffff\n00000001\n"), Hex)
	if err != nil {
		t.Fatal(err)
	}
	if keys[0].Int != 0xffffffff || keys[1].Int != 1 {
		t.Fatalf("got %+v", keys)
	}
}

func TestReadDecimal(t *testing.T) {
	keys, err := Read(strings.NewReader("0\n255\n"), Decimal)
	if err != nil {
		t.Fatal(err)
	}
	if keys[0].Int != 0 || keys[1].Int != 255 {
		t.Fatalf("got %+v", keys)
	}
}

func TestReadAB(t *testing.T) {
	keys, err := Read(strings.NewReader("1 2\nff ee\n"), AB)
	if err != nil {
		t.Fatal(err)
	}
	if keys[0].A != 1 || keys[0].B != 2 || keys[1].A != 0xff || keys[1].B != 0xee {
		t.Fatalf("got %+v", keys)
	}
}

func TestReadABDecimal(t *testing.T) {
	keys, err := Read(strings.NewReader("10 20\n"), ABDecimal)
	if err != nil {
		t.Fatal(err)
	}
	if keys[0].A != 10 || keys[0].B != 20 {
		t.Fatalf("got %+v", keys)
	}
}

func TestReadABMalformed(t *testing.T) {
	_, err := Read(strings.NewReader("1\n"), AB)
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestReadOverlongLine(t *testing.T) {
	_, err := Read(strings.NewReader(strings.Repeat("x", 40)+"\n"), Normal)
	if err == nil {
		t.Fatal("expected parse error for overlong line")
	}
	var pe *ParseError
	if !asParseError(err, &pe) {
		t.Fatalf("got %T, want *ParseError", err)
	}
}

func TestReadNulTruncates(t *testing.T) {
	keys, err := Read(strings.NewReader("ab\x00cd\n"), Normal)
	if err != nil {
		t.Fatal(err)
	}
	if string(keys[0].Text) != "ab" {
		t.Fatalf("got %q, want %q", keys[0].Text, "ab")
	}
}

func asParseError(err error, target **ParseError) bool {
	if pe, ok := err.(*ParseError); ok {
		*target = pe
		return true
	}
	return false
}
