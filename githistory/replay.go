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

package githistory

import "github.com/linelogdev/linelog"

// Replay drives log.RecordText once per revision, in order, committing
// revs chronologically into log. It never retries a failed revision;
// RecordText itself cannot fail (it panics on a corrupt program, a
// condition Replay does not attempt to recover from).
func Replay(log *linelog.LineLog, revs []Revision) error {
	for _, rev := range revs {
		log.RecordText(rev.Content, rev.Timestamp, rev.Extra)
	}
	return nil
}
