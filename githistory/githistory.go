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

// Package githistory drives a linelog.LineLog from the commit history of
// a path in a Git repository. It shells out to a git binary on PATH
// rather than reading the object database directly, in the same spirit
// as the gg-scm git package's Git type: the Git project itself is the
// most battle-tested implementation of its own object formats.
package githistory

import "time"

// Revision is one historical version of a path, ready to be fed to
// LineLog.RecordText in order.
type Revision struct {
	// OID is the commit hash that introduced this version of the path.
	OID string
	// Content is the full text of the path as of OID.
	Content string
	// Timestamp is the commit time in milliseconds since the Unix epoch.
	Timestamp int64
	// Extra carries author, committer and summary metadata, attached to
	// the revision via LineLog's extra_map.
	Extra map[string]any
}

func millis(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}
