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

// Package codegen renders a solved graph into the two C source files
// a build of this generator produces: phash.h (constants and extern
// declarations) and phash.c (the scramble/tab literals and the
// phash() function body). It also owns the optional, supplemental
// diagnostics a run can produce alongside those two files: an atomic
// write-then-rename of both outputs, a YAML build report, and a
// compressed solver trace.
package codegen
