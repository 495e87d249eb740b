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

import "fmt"

// execute walks the program from pc 0, emitting one LineInfo per LINE or
// END instruction reached, until it halts at END.
//
// When present is non-nil, it is a membership set over program counters
// (as built by CheckOut for a range view); Deleted on every emitted line
// is the negation of membership. When present is nil, Deleted is always
// false and startRev/endRev collapsing to the same value yields a plain
// snapshot.
//
// execute panics if the program takes more than 2*len(code) steps to
// reach END, or if it encounters an instruction of a type it does not
// recognize: both indicate a corrupt program, not a normal error a
// caller can recover from.
func (l *LineLog) execute(startRev, endRev int, present map[int]bool) []LineInfo {
	maxSteps := 2 * len(l.code)
	var out []LineInfo
	pc := 0
	for steps := 0; ; steps++ {
		if steps >= maxSteps {
			panic(fmt.Sprintf("linelog: interpreter exceeded %d steps executing a %d-instruction program (corrupt program)", maxSteps, len(l.code)))
		}
		if pc < 0 || pc >= len(l.code) {
			panic(fmt.Sprintf("linelog: program counter %d out of range [0, %d)", pc, len(l.code)))
		}
		switch inst := l.code[pc].(type) {
		case endInst:
			out = append(out, LineInfo{Data: "", Rev: 0, PC: pc, Deleted: isDeleted(present, pc)})
			return out
		case lineInst:
			out = append(out, LineInfo{Data: inst.data, Rev: inst.rev, PC: pc, Deleted: isDeleted(present, pc)})
			pc++
		case jumpInst:
			pc = inst.target
		case jumpGEInst:
			if startRev >= inst.rev {
				pc = inst.target
			} else {
				pc++
			}
		case jumpLessInst:
			if endRev < inst.rev {
				pc = inst.target
			} else {
				pc++
			}
		default:
			panic(fmt.Sprintf("linelog: invalid opcode %T at pc %d", inst, pc))
		}
	}
}

func isDeleted(present map[int]bool, pc int) bool {
	if present == nil {
		return false
	}
	return !present[pc]
}
