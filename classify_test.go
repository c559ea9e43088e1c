// Copyright 2026 The wedgecal Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package wedgecal

import "testing"

func TestClassifyInvariant(t *testing.T) {
	cases := []struct {
		c    rune
		want bool
	}{
		{'!', true},
		{'"', true},
		{'#', false},
		{'$', false},
		{'%', true},
		{'?', true},
		{'@', false},
		{'A', true},
		{'Z', true},
		{'[', false},
		{'_', true},
		{'a', true},
		{'z', true},
		{'{', false},
		{' ', false},
		{'\n', false},
		{0, false},
	}
	for _, tc := range cases {
		if got := Classify(tc.c).Invariant(); got != tc.want {
			t.Errorf("Classify(%q).Invariant() = %v, want %v", tc.c, got, tc.want)
		}
		if got := IsInvariant(tc.c); got != tc.want {
			t.Errorf("IsInvariant(%q) = %v, want %v", tc.c, got, tc.want)
		}
	}
}

func TestClassifyControlASCIIExtended(t *testing.T) {
	if !Classify('\t').Control() {
		t.Error("tab should be a control character")
	}
	if Classify('A').Control() {
		t.Error("'A' should not be a control character")
	}
	if !Classify('A').ASCII() {
		t.Error("'A' should be ASCII")
	}
	if Classify('A').Extended() {
		t.Error("'A' should not be extended")
	}
	if !Classify(rune(0xE9)).Extended() {
		t.Error("0xE9 should be extended")
	}
	if Classify(rune(0xE9)).ASCII() {
		t.Error("0xE9 should not be ASCII")
	}
}

func TestInvariantCharsCount(t *testing.T) {
	// ISO 646 invariant set used by GS1/ASC MH 10.8.2: 82 characters.
	if len(InvariantChars) != 82 {
		t.Fatalf("len(InvariantChars) = %d, want 82", len(InvariantChars))
	}
	for i := 1; i < len(InvariantChars); i++ {
		if InvariantChars[i] <= InvariantChars[i-1] {
			t.Fatalf("InvariantChars not strictly ascending at index %d", i)
		}
	}
	for _, c := range InvariantChars {
		if !isInvariant(c) {
			t.Errorf("InvariantChars contains non-invariant rune %q", c)
		}
	}
}
