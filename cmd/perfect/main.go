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

// Command perfect reads a list of keys from standard input and emits
// phash.h and phash.c, a minimal or perfect hash function specialized
// to those keys, following Bob Jenkins' classic generator design.
package main

import (
	"fmt"
	"os"

	"github.com/jenkins-tools/perfecthash/codegen"
	"github.com/jenkins-tools/perfecthash/generate"
)

func exitf(f string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, f, args...)
	fmt.Fprintf(os.Stderr, f, args...)
	os.Exit(1)
}

func logf(f string, args ...interface{}) {
	if f[len(f)-1] != '\n' {
		f += "\n"
	}
	fmt.Fprintf(os.Stdout, f, args...)
}

func main() {
	args, err := parseArgs(os.Args[1:])
	if err != nil {
		printUsage()
		os.Exit(0)
	}

	opts := generate.Options{
		Mode:     args.mode,
		Minimal:  args.minimal,
		Strategy: args.strategy,
	}
	if args.verbose {
		opts.Progress = func(line string) { logf("%s", line) }
	} else {
		opts.Progress = func(line string) {
			if len(line) >= 7 && line[:7] == "Read in" {
				logf("%s", line)
			}
		}
	}
	var trace *codegen.Trace
	if args.trace != "" {
		trace = codegen.NewTrace()
		opts.TraceAttempt = trace.Attempt
	}

	res, err := generate.Run(os.Stdin, opts)
	if trace != nil {
		if werr := trace.WriteZst(args.trace); werr != nil {
			exitf("writing trace: %s\n", werr)
		}
	}
	if err != nil {
		exitf("%s\n", err)
	}

	dir := args.outDir
	if dir == "" {
		dir = "."
	}
	tag, err := codegen.WriteFiles(dir, res.Build)
	if err != nil {
		exitf("%s\n", err)
	}
	logf("Wrote phash.h")
	logf("Wrote phash.c")

	if args.report != "" {
		report := codegen.NewReport(args.mode, res.Build, res.SaltTries, res.Strategy.String(), tag, res.Fingerprint)
		if err := codegen.WriteReport(args.report, report); err != nil {
			exitf("writing report: %s\n", err)
		}
	}
	logf("Cleaned up")
}
