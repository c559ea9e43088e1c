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

import "strings"

// DefaultBoundary is the conventional boundary character: U+0020 SPACE.
const DefaultBoundary = ' '

// deadKeySentinel is the rune value treated as "NUL" throughout the
// package: the code point a host reports in place of a dead key that it
// re-emits rather than silently combining.
const deadKeySentinel = rune(0)

// BuildBaselineProbe constructs the baseline probe payload: the boundary
// character followed by each invariant character in turn, each one itself
// followed by the boundary (spec.md §3, §6). The result is always
// len(InvariantChars)*2 + 1 runes long.
func BuildBaselineProbe(boundary rune) string {
	var b strings.Builder
	b.WriteRune(boundary)
	for _, c := range InvariantChars {
		b.WriteRune(c)
		b.WriteRune(boundary)
	}
	return b.String()
}

// BuildDeadKeyProbe constructs a dead-key probe payload targeting the
// reported dead-key glyph d: d followed by each invariant character, with
// no boundary interleaving (spec.md §6's grammar: "target_dead_key_glyph +
// (invariant){82}").
func BuildDeadKeyProbe(d rune) string {
	var b strings.Builder
	b.WriteRune(d)
	for _, c := range InvariantChars {
		b.WriteRune(c)
	}
	return b.String()
}
