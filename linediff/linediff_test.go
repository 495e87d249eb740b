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

package linediff

import (
	"strings"
	"testing"

	"github.com/linelogdev/linelog/internal/lineseg"
)

func apply(a string, blocks []Block, b string) string {
	aLines := lineseg.Split(a)
	bLines := lineseg.Split(b)
	var out []string
	pos := 0
	for _, blk := range blocks {
		out = append(out, aLines[pos:blk.A1]...)
		out = append(out, bLines[blk.B1:blk.B2]...)
		pos = blk.A2
	}
	out = append(out, aLines[pos:]...)
	return strings.Join(out, "")
}

func TestComputeRoundTrips(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{name: "BothEmpty", a: "", b: ""},
		{name: "InsertIntoEmpty", a: "", b: "c\nd\ne"},
		{name: "DeleteToEmpty", a: "c\nd\ne\n", b: ""},
		{name: "SingleLineReplace", a: "c\nd\ne", b: "c\nx\ne"},
		{name: "DeleteFrontLine", a: "c\nd\ne\n", b: "d\ne\nf\n"},
		{name: "Reorder", a: "c\nd\ne\n", b: "e\nd\nc\n"},
		{name: "AppendLine", a: "c\nd\ne\n", b: "c\nd\ne\nf\n"},
		{name: "NoTrailingNewline", a: "a\nb", b: "a\nb\nc"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			blocks := Compute(test.a, test.b)
			for i, blk := range blocks {
				if blk.A1 > blk.A2 || blk.B1 > blk.B2 {
					t.Fatalf("block %d has inverted range: %+v", i, blk)
				}
				if (blk.A2-blk.A1)+(blk.B2-blk.B1) == 0 {
					t.Fatalf("block %d is an identity block: %+v", i, blk)
				}
				if i > 0 && blk.A1 < blocks[i-1].A2 {
					t.Fatalf("block %d overlaps previous block: %+v after %+v", i, blk, blocks[i-1])
				}
			}
			if got := apply(test.a, blocks, test.b); got != test.b {
				t.Errorf("applying blocks to %q produced %q, want %q (blocks=%+v)", test.a, got, test.b, blocks)
			}
		})
	}
}

func TestComputeIdenticalTextsYieldsNoBlocks(t *testing.T) {
	text := "c\nd\ne\n"
	if blocks := Compute(text, text); len(blocks) != 0 {
		t.Errorf("Compute(text, text) = %+v, want no blocks", blocks)
	}
}
