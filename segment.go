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

// Segment splits a probe payload into chunks no longer than maxChars, so
// that small-symbol scanners (which cannot carry a long barcode) can still
// carry the probe as a series of smaller barcodes. Per spec.md §4.2:
//
//   - maxChars <= 0 yields the payload verbatim, as a single segment.
//   - Otherwise each candidate segment is trimmed so it never ends with the
//     payload's own first rune (its "boundary" character in the baseline
//     probe, or the target dead-key glyph in a dead-key probe): trailing
//     occurrences of that rune are pushed into the next segment instead,
//     so a segment never splits a character away from its trailing
//     context.
//   - A remainder of at most maxChars becomes the final segment whole.
//   - When the untaken remainder is longer than that but shorter than
//     2*maxChars, the
//     working maximum is lowered to ⌈remaining/2⌉ so the final two
//     segments come out roughly equal rather than one full segment
//     followed by a short straggler.
//
// Because the trim only ever moves runes forward into the next segment
// (never drops them), simple concatenation of the returned segments always
// reconstructs payload exactly.
func Segment(payload string, maxChars int) []string {
	runes := []rune(payload)
	if maxChars <= 0 || len(runes) <= maxChars {
		return []string{payload}
	}

	boundary := runes[0]
	var segments []string
	idx := 0
	for idx < len(runes) {
		remaining := len(runes) - idx
		limit := maxChars
		switch {
		case remaining <= maxChars:
			limit = remaining // the rest fits: this is the final segment
		case remaining < 2*maxChars:
			limit = (remaining + 1) / 2 // ceil
		}

		end := idx + limit
		if end > len(runes) {
			end = len(runes)
		}

		// Trim trailing boundary runs so this segment doesn't end on the
		// boundary character, unless trimming would empty the segment or
		// we are already at the end of the whole payload.
		for end > idx+1 && end < len(runes) && runes[end-1] == boundary {
			end--
		}

		segments = append(segments, string(runes[idx:end]))
		idx = end
	}
	return segments
}
