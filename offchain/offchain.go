// Copyright 2026 Google LLC. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package offchain encodes the sampled subkeys the sender hands to the
// receiver outside of the ledger.
//
// The payload has one line per sampled pair, in commitment order:
//
//	<hex 32-byte subkey> <decimal index>
//
// Line 0 is the canary. Subkeys are written with a 0x prefix and accepted
// with or without one.
package offchain

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fairdex/fairdex"
	"github.com/fairdex/fairdex/errors"
	"k8s.io/klog/v2"
)

// Write encodes set to w, one pair per line.
func Write(w io.Writer, set fairdex.SampledSet) error {
	bw := bufio.NewWriter(w)
	for _, p := range set {
		if _, err := fmt.Fprintf(bw, "%s %d\n", p.Subkey.Hex(), p.Index); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read decodes a payload for a description of the given depth. The result
// has exactly 2^depth pairs in payload order with distinct indices inside
// the subkey universe. Any deviation is reported as DataLoss, so that a
// corrupt transfer is never confused with a cryptographic failure. Trailing
// blank lines are ignored.
func Read(r io.Reader, depth uint) (fairdex.SampledSet, error) {
	k, err := fairdex.SampleSize(depth)
	if err != nil {
		return nil, err
	}

	set := make(fairdex.SampledSet, 0, k)
	seen := make(map[uint64]int, k)
	blankAt := 0
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			if blankAt == 0 {
				blankAt = line
			}
			continue
		}
		if blankAt != 0 {
			return nil, errors.Errorf(errors.DataLoss, "line %d: record after blank line %d", line, blankAt)
		}
		if uint64(len(set)) == k {
			return nil, errors.Errorf(errors.DataLoss, "line %d: more than %d records", line, k)
		}
		p, err := parseRecord(text)
		if err != nil {
			return nil, errors.Errorf(errors.DataLoss, "line %d: %v", line, err)
		}
		if prev, ok := seen[p.Index]; ok {
			return nil, errors.Errorf(errors.DataLoss, "line %d: index %d already used on line %d", line, p.Index, prev)
		}
		seen[p.Index] = line
		set = append(set, p)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Errorf(errors.DataLoss, "reading offchain payload: %w", err)
	}
	if got := uint64(len(set)); got != k {
		return nil, errors.Errorf(errors.DataLoss, "got %d records, want %d for depth %d", got, k, depth)
	}
	return set, nil
}

func parseRecord(text string) (fairdex.Pair, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return fairdex.Pair{}, fmt.Errorf("got %d fields, want 2", len(fields))
	}
	w, err := fairdex.ParseWord(fields[0])
	if err != nil {
		return fairdex.Pair{}, fmt.Errorf("subkey: %v", err)
	}
	p := fairdex.Pair{Subkey: w}

	p.Index, err = strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return fairdex.Pair{}, fmt.Errorf("index %q: %v", fields[1], err)
	}
	if p.Index >= fairdex.UniverseSize {
		return fairdex.Pair{}, fmt.Errorf("index %d outside universe of size %d", p.Index, fairdex.UniverseSize)
	}
	return p, nil
}

// WriteFile writes set to the named file, replacing any previous content.
func WriteFile(path string, set fairdex.SampledSet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, set); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	klog.V(1).Infof("Wrote %d sampled subkeys to %s", len(set), path)
	return nil
}

// ReadFile reads a payload for the given depth from the named file.
func ReadFile(path string, depth uint) (fairdex.SampledSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	set, err := Read(f, depth)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	klog.V(1).Infof("Read %d sampled subkeys from %s", len(set), path)
	return set, nil
}
