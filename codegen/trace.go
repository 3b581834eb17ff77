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

	"github.com/klauspost/compress/zstd"
)

// Trace accumulates a line of text per chooser or solver attempt made
// during a build, for the optional -trace diagnostic
// (SPEC_FULL.md domain stack: github.com/klauspost/compress/zstd).
type Trace struct {
	lines []string
}

// NewTrace returns an empty trace.
func NewTrace() *Trace {
	return &Trace{}
}

// Attempt records one chooser or solver attempt.
func (t *Trace) Attempt(stage string, salt uint32, strategy string, err error) {
	status := "ok"
	if err != nil {
		status = err.Error()
	}
	t.lines = append(t.lines, fmt.Sprintf("%s salt=%d strategy=%s status=%s", stage, salt, strategy, status))
}

// WriteZst compresses the accumulated trace lines and writes them to
// path, one attempt per line.
func (t *Trace) WriteZst(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := zstd.NewWriter(f)
	if err != nil {
		return err
	}
	for _, line := range t.lines {
		if _, err := w.Write([]byte(line + "\n")); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}
