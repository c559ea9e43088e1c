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

// CharFlags is a bitmask describing which category (or categories) a rune
// belongs to. Unlike tcell's ModMask, these are not combined by a keyboard
// driver: Classify always returns exactly one meaningful combination for a
// given rune, but callers test membership with the accessor methods rather
// than comparing CharFlags for equality.
type CharFlags uint8

const (
	// FlagInvariant marks one of the 82 ISO 646 printable characters legal
	// in GS1 application identifiers and ASC MH 10.8.2 data identifiers.
	FlagInvariant CharFlags = 1 << iota
	// FlagControl marks a code point below U+0020.
	FlagControl
	// FlagASCII marks a code point below U+0080.
	FlagASCII
	// FlagExtended marks a code point at or above U+0080.
	FlagExtended
)

// Invariant reports whether the rune classified with these flags is one of
// the 82 invariant characters.
func (f CharFlags) Invariant() bool { return f&FlagInvariant != 0 }

// Control reports whether the rune is a control character (< U+0020).
func (f CharFlags) Control() bool { return f&FlagControl != 0 }

// ASCII reports whether the rune is within the 7-bit ASCII range.
func (f CharFlags) ASCII() bool { return f&FlagASCII != 0 }

// Extended reports whether the rune lies outside the 7-bit ASCII range.
func (f CharFlags) Extended() bool { return f&FlagExtended != 0 }

// Classify partitions a code point into invariant, ascii-other, control and
// extended categories, per spec.md's Character classifier (C1). It is a
// pure function: no state, no failure modes.
func Classify(c rune) CharFlags {
	var f CharFlags
	if isInvariant(c) {
		f |= FlagInvariant
	}
	if c < 0x20 {
		f |= FlagControl
	}
	if c < 0x80 {
		f |= FlagASCII
	} else {
		f |= FlagExtended
	}
	return f
}

// isInvariant implements spec.md §4.1 exactly: c is one of '!', '"',
// '%'-'?' (inclusive), 'A'-'Z', '_', 'a'-'z'.
func isInvariant(c rune) bool {
	switch {
	case c == '!' || c == '"':
		return true
	case c >= '%' && c <= '?':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c == '_':
		return true
	case c >= 'a' && c <= 'z':
		return true
	default:
		return false
	}
}

// IsInvariant is a convenience wrapper around Classify for callers that
// only care about invariant-set membership.
func IsInvariant(c rune) bool { return isInvariant(c) }

// InvariantChars is every character of the invariant set I, in ascending
// code-point order. This fixes the "known positional order" that spec.md
// §4.4 requires for the baseline probe: the order is deterministic and
// reproducible without needing a separately maintained table.
var InvariantChars []rune

func init() {
	for c := rune(0); c < 0x80; c++ {
		if isInvariant(c) {
			InvariantChars = append(InvariantChars, c)
		}
	}
}
