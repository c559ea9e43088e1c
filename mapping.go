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

import "sort"

// CharacterMap is the partial function the baseline pass builds: for each
// invariant character actually seen during calibration, what the host
// reported for it. It is the simplest of the three mapping types — a
// single-rune-to-string lookup with no prefix ambiguity possible, since
// every key is distinct by construction.
type CharacterMap map[rune]string

// Lookup returns the reported text for c and whether the map holds an entry
// for c (false for a dropped or unresolved-ambiguous character).
func (m CharacterMap) Lookup(c rune) (string, bool) {
	s, ok := m[c]
	return s, ok
}

// Chars returns the map's keys in ascending code-point order, for
// deterministic iteration (report rendering, serialization, tests).
func (m CharacterMap) Chars() []rune {
	out := make([]rune, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DeadKeyMap holds every known dead-key combining sequence: a key that
// always begins with the NUL sentinel, followed by whatever the host
// reports alongside it, mapped to the invariant character the combination
// produces. Per spec.md §3's invariant, every key's first rune is NUL, and
// no key is a prefix of another key that maps to a different invariant
// character — LongestPrefixMatch depends on this to be unambiguous.
type DeadKeyMap map[string]rune

// LongestPrefixMatch scans s from its start and returns the longest key in
// m that is a prefix of s, the invariant character it maps to, and the
// number of runes consumed. ok is false if no key of m prefixes s at all.
func (m DeadKeyMap) LongestPrefixMatch(s []rune) (consumed int, result rune, ok bool) {
	best := -1
	var bestResult rune
	for key, r := range m {
		kr := []rune(key)
		if len(kr) > len(s) || len(kr) <= best {
			continue
		}
		if runesEqual(kr, s[:len(kr)]) {
			best = len(kr)
			bestResult = r
		}
	}
	if best < 0 {
		return 0, 0, false
	}
	return best, bestResult, true
}

// LigatureMap holds every known ligature: a single scanner keystroke (one
// invariant character probed) whose host report decodes to more than one
// character of output. Like DeadKeyMap, it is prefix-free by construction
// and supports longest-prefix matching during normalization.
type LigatureMap map[string]string

// LongestPrefixMatch scans s from its start and returns the longest key in
// m that is a prefix of s, the decoded replacement text, and the number of
// runes consumed.
func (m LigatureMap) LongestPrefixMatch(s []rune) (consumed int, result string, ok bool) {
	best := -1
	var bestResult string
	for key, r := range m {
		kr := []rune(key)
		if len(kr) > len(s) || len(kr) <= best {
			continue
		}
		if runesEqual(kr, s[:len(kr)]) {
			best = len(kr)
			bestResult = r
		}
	}
	if best < 0 {
		return 0, "", false
	}
	return best, bestResult, true
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Ambiguity records a case the inferer could not resolve on its own: two or
// more invariant characters whose reports were exactly identical, per
// spec.md §4.6. A reported sequence that is merely a prefix of another is
// not recorded as an Ambiguity. RecordCodec implementations render these
// directly.
type Ambiguity struct {
	// Candidates is every invariant character whose probe produced the
	// colliding Reported text.
	Candidates []rune
	// Reported is the literal host output shared by every candidate.
	Reported string
	// Resolved is the candidate the inferer picked because it matched a
	// configured RecognisedDataElement. Zero if no candidate matched, in
	// which case the ambiguity stays unresolved and no candidate enters the
	// CharacterMap.
	Resolved rune
	// ResolvedBy names how Resolved was chosen: "recognised-element", or ""
	// if unresolved.
	ResolvedBy string
}
