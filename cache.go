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

import "strings"

// CheckOut makes rev (clamped to MaxRev) the currently cached view.
//
// With no start argument, CheckOut produces the snapshot at rev: the
// content exactly as it was recorded at that revision, with every line's
// Deleted flag false. Calling CheckOut(rev) again with the same rev and
// no start is a no-op.
//
// With a start argument, CheckOut produces a union view across
// [start, rev]: every line visible at any revision in that range,
// including lines later deleted, with Deleted true on lines absent from
// the rev snapshot. Only the first element of start is used; it exists
// as a variadic purely to make the argument optional.
func (l *LineLog) CheckOut(rev int, start ...int) {
	if rev > l.maxRev {
		rev = l.maxRev
	}
	if rev < 0 {
		rev = 0
	}
	hasStart := len(start) > 0
	if !hasStart && rev == l.lastCheckoutRev {
		return
	}
	l.lastCheckoutRev = rev

	snapshot := l.execute(rev, rev, nil)
	if !hasStart {
		l.setLines(snapshot)
		return
	}

	// A union view is not the snapshot of rev, so a later plain
	// CheckOut(rev) must not treat it as cached.
	l.lastCheckoutRev = -1
	startRev := start[0]
	present := make(map[int]bool, len(snapshot))
	for _, li := range snapshot {
		present[li.PC] = true
	}
	l.setLines(l.execute(startRev, rev, present))
}

func (l *LineLog) setLines(lines []LineInfo) {
	l.lines = lines
	var sb strings.Builder
	for _, li := range lines {
		sb.WriteString(li.Data)
	}
	l.content = sb.String()
}
