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
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/jenkins-tools/perfecthash/hashkey"
)

// Fingerprint hashes the ordered, mode-tagged key set plus the
// resolved options into a short hex digest, so two runs over what
// should be identical input can be confirmed identical without
// diffing the emitted C sources byte-by-byte (the verbose progress
// line prints this alongside the chosen alen/blen/smax/salt).
func Fingerprint(keys []hashkey.Key, opts Options) (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(opts.Mode))
	binary.LittleEndian.PutUint32(hdr[4:8], opts.StartSalt)
	h.Write(hdr[:])
	if opts.Minimal {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	for _, k := range keys {
		var lenBuf [4]byte
		switch {
		case opts.Mode.IsString():
			binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(k.Text)))
			h.Write(lenBuf[:])
			h.Write(k.Text)
		case opts.Mode.HasExplicitAB():
			binary.LittleEndian.PutUint32(lenBuf[:], k.A)
			h.Write(lenBuf[:])
			binary.LittleEndian.PutUint32(lenBuf[:], k.B)
			h.Write(lenBuf[:])
		default:
			binary.LittleEndian.PutUint32(lenBuf[:], k.Int)
			h.Write(lenBuf[:])
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
