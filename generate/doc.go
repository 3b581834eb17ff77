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

// Package generate drives the full pipeline spec.md §4.7 describes:
// read keys, choose a salt, solve the bucket graph, and return the
// codegen.Build that renders phash.h and phash.c (cmd/perfect writes
// the files). It owns the retry loop between the chooser and solver
// stages and the distinguished error types each terminal failure
// mode returns.
package generate
