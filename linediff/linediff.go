// Copyright 2024 The LineLog Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package linediff reduces two texts to a sequence of aligned,
// line-granular change blocks, the form a LineLog editor consumes to
// patch its program. It is a thin, line-oriented wrapper around
// sergi/go-diff's Myers-diff implementation: lines are first mapped to
// surrogate runes with DiffLinesToChars, diffed as if they were
// characters, then mapped back, which is the "map lines to surrogate
// characters" strategy line-oriented diff tools commonly use.
package linediff

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/linelogdev/linelog/internal/lineseg"
)

// Block is a single aligned change: the lines a[A1:A2] are replaced by
// the lines b[B1:B2], where a and b are the two texts passed to
// Compute, split into lines. A1 <= A2, B1 <= B2, and at least one of
// the two ranges is non-empty (Compute never emits identity blocks).
type Block struct {
	A1, A2 int
	B1, B2 int
}

// Compute returns the change blocks that turn a into b, in ascending,
// non-overlapping order of A1. Applying the blocks left to right to a's
// lines reproduces b's lines. The exact blocks produced for a given
// (a, b) pair are not specified beyond correctness: any line-granular
// diff that satisfies the alignment contract is acceptable, so tests
// that assert precise blocks should use inputs where the alignment is
// unambiguous.
func Compute(a, b string) []Block {
	dmp := diffmatchpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffMain(chars1, chars2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var blocks []Block
	aPos, bPos := 0, 0
	for i := 0; i < len(diffs); i++ {
		d := diffs[i]
		n := lineCount(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			aPos += n
			bPos += n
		case diffmatchpatch.DiffDelete:
			a1, b1 := aPos, bPos
			aPos += n
			insN := 0
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffInsert {
				insN = lineCount(diffs[i+1].Text)
				bPos += insN
				i++
			}
			blocks = append(blocks, Block{A1: a1, A2: aPos, B1: b1, B2: b1 + insN})
		case diffmatchpatch.DiffInsert:
			b1 := bPos
			bPos += n
			blocks = append(blocks, Block{A1: aPos, A2: aPos, B1: b1, B2: bPos})
		}
	}
	return blocks
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return len(lineseg.Split(s))
}
