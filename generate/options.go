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

package generate

import (
	"fmt"

	"github.com/jenkins-tools/perfecthash/hashkey"
	"github.com/jenkins-tools/perfecthash/solver"
)

// maxBlenGrowths bounds how many times the driver will double blen
// and restart the chooser/solver search before giving up (spec.md
// §7(3)'s "suggestion to increase blen", made concrete as a bounded
// loop rather than an unbounded one).
const maxBlenGrowths = 8

// Options configures one generator run. AB and ABDecimal modes always
// run with the slow strategy regardless of Strategy: their hash_c is
// always zero (the (a, b) pair is supplied directly, not derived), so
// every key in a shared bucket projects to the identical offset under
// the fast strategy and only augmenting-path coloring can ever
// resolve it (see DESIGN.md).
type Options struct {
	Mode      hashkey.Mode
	Minimal   bool // -M vs -P: minimal range (nkeys) vs perfect range (smax)
	Strategy  solver.Strategy
	StartSalt uint32
	// Progress, if set, receives one line per pipeline milestone
	// ("Read in N keys", ...), matching main.c's stdout progress
	// lines (spec.md §4.6).
	Progress func(string)
	// TraceAttempt, if set, is called once per chooser.Choose call
	// (with the salt it accepted, or the first salt it tried) and once
	// per solver attempt, successful or not. Salts a single Choose call
	// rejects before accepting one are not reported individually.
	TraceAttempt func(stage string, salt uint32, strategy string, err error)
}

func (o Options) logf(format string, args ...interface{}) {
	if o.Progress != nil {
		o.Progress(fmt.Sprintf(format, args...))
	}
}

func (o Options) trace(stage string, salt uint32, strategy string, err error) {
	if o.TraceAttempt != nil {
		o.TraceAttempt(stage, salt, strategy, err)
	}
}

// effectiveStrategy returns the strategy the driver actually uses for
// a run, honoring the AB-mode override documented on Options.
func (o Options) effectiveStrategy() solver.Strategy {
	if o.Mode.HasExplicitAB() {
		return solver.Slow
	}
	return o.Strategy
}
