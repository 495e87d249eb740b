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

package lineseg

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "Empty", in: "", want: nil},
		{name: "SingleLineNoNewline", in: "hello", want: []string{"hello"}},
		{name: "SingleLineWithNewline", in: "hello\n", want: []string{"hello\n"}},
		{name: "MultipleLines", in: "a\nb\nc\n", want: []string{"a\n", "b\n", "c\n"}},
		{name: "TrailingPartialLine", in: "a\nb\nc", want: []string{"a\n", "b\n", "c"}},
		{name: "OnlyNewlines", in: "\n\n", want: []string{"\n", "\n"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Split(test.in)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Split(%q) (-want +got):\n%s", test.in, diff)
			}
			if joined := strings.Join(got, ""); joined != test.in {
				t.Errorf("Split(%q) lines do not concatenate back: got %q", test.in, joined)
			}
		})
	}
}
