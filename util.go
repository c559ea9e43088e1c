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

// StripTrailingEOL removes a trailing CR/LF sequence from a reported
// string, per spec.md §4.8. isBaseline enables the "four spaces + control"
// heuristic, which only makes sense against the baseline probe's
// boundary-padded structure; dead-key probes never use it. strict disables
// that heuristic outright, for hosts where it produces false positives
// (spec.md §9's second Open Question; CalibrationConfig.StrictEOLHeuristic).
//
// It returns the string with the EOL removed and a label naming exactly
// what was detected ("", "CR", "LF", "CRLF", "LFCR"), order preserved.
func StripTrailingEOL(s string, isBaseline bool, strict bool) (string, string) {
	if s == "" {
		return s, ""
	}
	r := []rune(s)

	if n := len(r); n >= 2 {
		last, prev := r[n-1], r[n-2]
		switch {
		case prev == '\r' && last == '\n':
			return string(r[:n-2]), "CRLF"
		case prev == '\n' && last == '\r':
			return string(r[:n-2]), "LFCR"
		}
	}

	last := r[len(r)-1]
	switch last {
	case '\n':
		return string(r[:len(r)-1]), "LF"
	case '\r':
		return string(r[:len(r)-1]), "CR"
	}

	// The "four spaces + control" heuristic: some scanner/host pairings
	// surface a bare LF as a non-zero control character, recognisable only
	// because it is preceded by the four literal boundary spaces that close
	// a baseline probe's final cell.
	if isBaseline && !strict && last != 0 && last < 0x20 {
		if len(r) >= 5 && string(r[len(r)-5:len(r)-1]) == "    " {
			return string(r[:len(r)-1]), "LF"
		}
	}

	return s, ""
}

// UnusedExtendedASCII returns the smallest code point in 0x80..0xFF that
// does not appear anywhere in s, for use as a deterministic placeholder
// sentinel (spec.md §4.5's determinism rule and §4.8).
func UnusedExtendedASCII(s string) (rune, error) {
	present := make(map[rune]bool)
	for _, r := range s {
		if r >= 0x80 && r <= 0xFF {
			present[r] = true
		}
	}
	for c := rune(0x80); c <= 0xFF; c++ {
		if !present[c] {
			return c, nil
		}
	}
	return 0, ErrNoUnusedExtendedASCII
}

// ToControlPicture renders a control character as its Unicode control
// picture glyph (U+2400 block) for diagnostic display; all other
// characters pass through unchanged.
func ToControlPicture(c rune) rune {
	if c < 0x20 {
		return c + 0x2400
	}
	return c
}

// controlPictureString applies ToControlPicture across a whole string, so
// NUL-bearing evidence prints legibly.
func controlPictureString(s string) string {
	var b strings.Builder
	for _, r := range s {
		b.WriteRune(ToControlPicture(r))
	}
	return b.String()
}
