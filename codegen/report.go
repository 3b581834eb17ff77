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
	"os"

	"sigs.k8s.io/yaml"

	"github.com/jenkins-tools/perfecthash/hashkey"
)

// Report is the optional machine-readable summary of a build, written
// when -report is given (SPEC_FULL.md domain stack: sigs.k8s.io/yaml).
// It lets downstream build tooling react to the chosen parameters
// without parsing the emitted C.
type Report struct {
	Mode        string `json:"mode"`
	NKeys       int    `json:"nkeys"`
	Alen        uint32 `json:"alen"`
	Blen        uint32 `json:"blen"`
	Smax        uint32 `json:"smax"`
	Range       uint32 `json:"range"`
	Salt        uint32 `json:"salt"`
	SaltTries   int    `json:"salt_tries"`
	Strategy    string `json:"strategy"`
	BuildTag    string `json:"build_tag"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// NewReport summarizes a completed build for WriteReport.
func NewReport(mode hashkey.Mode, b Build, saltTries int, strategy, buildTag, fingerprint string) Report {
	return Report{
		Mode:        mode.String(),
		NKeys:       b.NKeys,
		Alen:        b.Sizes.Alen,
		Blen:        b.Sizes.Blen,
		Smax:        b.Sizes.Smax,
		Range:       b.Sizes.Range,
		Salt:        b.Salt,
		SaltTries:   saltTries,
		Strategy:    strategy,
		BuildTag:    buildTag,
		Fingerprint: fingerprint,
	}
}

// WriteReport marshals r to YAML and writes it to path.
func WriteReport(path string, r Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
