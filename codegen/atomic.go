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

package codegen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// WriteFiles writes phash.h and phash.c into dir, overwriting any
// existing files there (spec.md §6: "Overwrite silently"). Each file
// is written to a temp sibling and renamed into place so a reader
// never observes a half-written phash.h or phash.c, and the header
// carries a "// build <uuid>" comment correlating it with this run.
// A concurrent perfect invocation against the same directory fails
// with an error while another run holds the advisory flock (see
// lockDir, linux-only).
func WriteFiles(dir string, b Build) (tag string, err error) {
	unlock, err := lockDir(dir)
	if err != nil {
		return "", err
	}
	defer unlock()

	tag = uuid.NewString()
	if err := writeAtomic(filepath.Join(dir, "phash.h"), b.HeaderWithTag(tag)); err != nil {
		return "", fmt.Errorf("writing phash.h: %w", err)
	}
	if err := writeAtomic(filepath.Join(dir, "phash.c"), b.Source()); err != nil {
		return "", fmt.Errorf("writing phash.c: %w", err)
	}
	return tag, nil
}

func writeAtomic(path string, content []byte) error {
	tmp := path + ".tmp." + uuid.NewString()
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
