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

package linelog

import (
	"fmt"
	"time"

	"github.com/linelogdev/linelog/internal/lineseg"
	"github.com/linelogdev/linelog/linediff"
)

// RecordText records text as a new revision, returning the revision
// number assigned. RecordText first checks out MaxRev; if text equals
// the content at MaxRev, it is a no-op and returns MaxRev unchanged.
//
// timestampMillis is the commit time in milliseconds since the Unix
// epoch; a value of 0 is treated as unspecified and replaced with the
// current wall-clock time, matching the source behavior this package
// implements. extra, if non-nil, is opaque metadata retrievable later
// with GetLineExtra.
func (l *LineLog) RecordText(text string, timestampMillis int64, extra map[string]any) int {
	l.CheckOut(l.maxRev)
	if text == l.content {
		return l.maxRev
	}

	bLines := lineseg.Split(text)
	blocks := linediff.Compute(l.content, text)
	if len(blocks) == 0 {
		panic("linelog: record text: content differs but diff produced no blocks")
	}

	ts := timestampMillis
	if ts == 0 {
		ts = time.Now().UnixMilli()
	}

	if blk, ok := trivialBlock(blocks, l.lines, l.maxRev); ok {
		l.applyTrivialUpdate(blk, bLines, ts, extra)
		return l.maxRev
	}

	rev := l.maxRev + 1
	l.tsMap[rev] = ts
	if extra != nil {
		l.extraMap[rev] = extra
	}
	for i := len(blocks) - 1; i >= 0; i-- {
		l.applyBlock(blocks[i], rev, bLines)
	}
	l.maxRev = rev
	l.lastCheckoutRev = rev
	l.content = text
	return rev
}

// trivialBlock reports whether blocks qualifies for the trivial-update
// fast path: a single block replacing exactly one line, where that line
// is the sole line owned by maxRev in the current snapshot.
func trivialBlock(blocks []linediff.Block, lines []LineInfo, maxRev int) (linediff.Block, bool) {
	if len(blocks) != 1 {
		return linediff.Block{}, false
	}
	blk := blocks[0]
	if blk.A2-blk.A1 != 1 || blk.B2-blk.B1 != 1 {
		return linediff.Block{}, false
	}
	if lines[blk.A1].Rev != maxRev {
		return linediff.Block{}, false
	}
	owners := 0
	for _, li := range lines {
		if li.Rev == maxRev {
			owners++
		}
	}
	if owners != 1 {
		return linediff.Block{}, false
	}
	return blk, true
}

// applyTrivialUpdate rewrites the single LINE instruction in place rather
// than growing the program: rapid successive edits to one line do not
// inflate it.
func (l *LineLog) applyTrivialUpdate(blk linediff.Block, bLines []string, ts int64, extra map[string]any) {
	li := l.lines[blk.A1]
	inst, ok := l.code[li.PC].(lineInst)
	if !ok {
		panic(fmt.Sprintf("linelog: trivial update fast path expects a LINE instruction at pc %d, found %T", li.PC, l.code[li.PC]))
	}
	newData := bLines[blk.B1]
	l.code[li.PC] = lineInst{rev: inst.rev, data: newData}
	l.tsMap[l.maxRev] = ts
	if extra != nil {
		l.extraMap[l.maxRev] = extra
	}
	l.lines[blk.A1] = LineInfo{Data: newData, Rev: inst.rev, PC: li.PC, Deleted: false}
	l.lastCheckoutRev = l.maxRev
	l.content = joinLines(l.lines)
}

func joinLines(lines []LineInfo) string {
	var total int
	for _, li := range lines {
		total += len(li.Data)
	}
	buf := make([]byte, 0, total)
	for _, li := range lines {
		buf = append(buf, li.Data...)
	}
	return string(buf)
}

// applyBlock is editChunk from the edit-encoding algorithm: it appends a
// new chunk of program to l.code for one diff block, redirects the old
// entry point at that chunk, and splices l.lines so that position
// [blk.A1, blk.A2) now holds the block's inserted lines.
//
// Blocks must be applied in descending order of A1 (editor.go's caller
// does this) so that program counters captured from an earlier
// (larger-A1) block's lines[] read remain valid: each call only mutates
// l.lines at indices >= its own A1.
func (l *LineLog) applyBlock(blk linediff.Block, rev int, bLines []string) {
	if blk.A1 > blk.A2 || blk.A2 > len(l.lines) {
		panic(fmt.Sprintf("linelog: edit chunk out of bounds: a1=%d a2=%d len(lines)=%d", blk.A1, blk.A2, len(l.lines)))
	}

	start := len(l.code)
	a1Pc := l.lines[blk.A1].PC

	if blk.B2 > blk.B1 {
		target := start + (blk.B2 - blk.B1) + 1
		l.code = append(l.code, jumpLessInst{rev: rev, target: target})
		for i := blk.B1; i < blk.B2; i++ {
			l.code = append(l.code, lineInst{rev: rev, data: bLines[i]})
		}
	}
	if blk.A1 < blk.A2 {
		a2Pc := l.lines[blk.A2-1].PC + 1
		l.code = append(l.code, jumpGEInst{rev: rev, target: a2Pc})
	}

	orig := l.code[a1Pc]
	// The line at A1 now lives at its relocated copy; a kept line (such
	// as the END sentinel on a pure insertion) must point there.
	l.lines[blk.A1].PC = len(l.code)
	l.code = append(l.code, orig)
	if isFallthrough(orig) {
		l.code = append(l.code, jumpInst{target: a1Pc + 1})
	}
	l.code[a1Pc] = jumpInst{target: start}

	newLines := make([]LineInfo, blk.B2-blk.B1)
	for i := range newLines {
		newLines[i] = LineInfo{Data: bLines[blk.B1+i], Rev: rev, PC: start + 1 + i, Deleted: false}
	}
	spliced := make([]LineInfo, 0, blk.A1+len(newLines)+(len(l.lines)-blk.A2))
	spliced = append(spliced, l.lines[:blk.A1]...)
	spliced = append(spliced, newLines...)
	spliced = append(spliced, l.lines[blk.A2:]...)
	l.lines = spliced
}
