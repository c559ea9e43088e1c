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

func TestCharacterMapLookup(t *testing.T) {
	cm := CharacterMap{'A': "A", 'B': "b"}
	if v, ok := cm.Lookup('A'); !ok || v != "A" {
		t.Errorf("Lookup('A') = (%q, %v), want (\"A\", true)", v, ok)
	}
	if _, ok := cm.Lookup('Z'); ok {
		t.Error("Lookup('Z') should report not found")
	}
}

func TestCharacterMapCharsSorted(t *testing.T) {
	cm := CharacterMap{'c': "c", 'a': "a", 'b': "b"}
	chars := cm.Chars()
	want := []rune{'a', 'b', 'c'}
	for i, c := range want {
		if chars[i] != c {
			t.Fatalf("Chars() = %q, want %q", string(chars), string(want))
		}
	}
}

func TestDeadKeyMapLongestPrefixMatch(t *testing.T) {
	dm := DeadKeyMap{
		"^a":  'A',
		"^ab": 'B', // overlaps "^a"; the longer key should win
	}

	n, r, ok := dm.LongestPrefixMatch([]rune("^abc"))
	if !ok {
		t.Fatal("expected a match")
	}
	if n != 3 || r != 'B' {
		t.Errorf("LongestPrefixMatch = (%d, %q), want (3, 'B')", n, r)
	}
}

func TestDeadKeyMapNoMatch(t *testing.T) {
	dm := DeadKeyMap{"^a": 'A'}
	if _, _, ok := dm.LongestPrefixMatch([]rune("xyz")); ok {
		t.Fatal("expected no match")
	}
}

func TestLigatureMapLongestPrefixMatch(t *testing.T) {
	lm := LigatureMap{"ae": "A", "a": "X"}
	n, r, ok := lm.LongestPrefixMatch([]rune("aeb"))
	if !ok || n != 2 || r != "A" {
		t.Errorf("LongestPrefixMatch = (%d, %q, %v), want (2, \"A\", true)", n, r, ok)
	}
}
