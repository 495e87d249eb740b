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

// GetLineTimestamp returns the timestamp, in milliseconds, of the
// revision that introduced the line currently at index i. It returns 0
// if i names the trailing sentinel line or is otherwise out of range.
func (l *LineLog) GetLineTimestamp(i int) int64 {
	if !l.validLineIndex(i) {
		return 0
	}
	return l.tsMap[l.lines[i].Rev]
}

// GetLineExtra returns the metadata attached to the revision that
// introduced the line currently at index i, or an empty map if i names
// the trailing sentinel line, is otherwise out of range, or no metadata
// was attached to that revision.
func (l *LineLog) GetLineExtra(i int) map[string]any {
	if !l.validLineIndex(i) {
		return map[string]any{}
	}
	extra := l.extraMap[l.lines[i].Rev]
	if extra == nil {
		return map[string]any{}
	}
	return extra
}

// validLineIndex reports whether i addresses a non-sentinel line of the
// current view. The sentinel is always the last entry in l.lines.
func (l *LineLog) validLineIndex(i int) bool {
	return i >= 0 && i < len(l.lines)-1
}
