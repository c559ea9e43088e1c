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

import "fmt"

// RecognisedSyntax names the data-identifier syntax a RecognisedDataElement
// belongs to (spec.md §6).
type RecognisedSyntax int

const (
	// SyntaxGS1 is a GS1 application identifier.
	SyntaxGS1 RecognisedSyntax = iota
	// SyntaxASCMH10_8_2 is an ASC MH 10.8.2 data identifier.
	SyntaxASCMH10_8_2
)

// RecognisedDataElement optionally constrains the inferer's ambiguity
// analysis: when two reported sequences decode to different expected
// characters but only one produces a legal identifier prefix for an
// element in this list, that one wins (spec.md §6).
type RecognisedDataElement struct {
	Syntax     RecognisedSyntax
	Identifier string
}

// CalibrationConfig configures a Session, following the same "plain struct
// with documented valid ranges plus an explicit Validate" shape as
// cs104.Config in the retrieved IEC 60870-5-104 example: defaults are
// applied by the constructor, and out-of-range values are rejected rather
// than silently clamped.
type CalibrationConfig struct {
	// Boundary is the cell-delimiter character used in the baseline probe.
	// Defaults to DefaultBoundary (U+0020). Must itself be an ASCII
	// character outside the invariant set, so it can be reliably told
	// apart from invariant-cell content.
	Boundary rune

	// MaxSegmentChars caps the length of each probe segment handed to C2's
	// Segment. <= 0 disables segmentation (a single barcode carries the
	// whole probe).
	MaxSegmentChars int

	// StrictEOLHeuristic disables the "four spaces + control" EOL
	// detection fallback documented in spec.md §4.8 and §9's second Open
	// Question, for hosts where that heuristic produces false positives.
	StrictEOLHeuristic bool

	// RecognisedElements optionally disambiguates ambiguous mappings
	// against known-legal GS1/ASC MH 10.8.2 identifier prefixes.
	RecognisedElements []RecognisedDataElement

	// AIMPrefix is the AIM symbology identifier prefix (e.g. "]C0") the
	// normalizer should special-case per spec.md §4.7, recovering a
	// leading ']' the host may have eaten. Empty disables AIM handling.
	AIMPrefix string
}

// DefaultCalibrationConfig returns a CalibrationConfig with every field set
// to its documented default.
func DefaultCalibrationConfig() CalibrationConfig {
	return CalibrationConfig{
		Boundary:           DefaultBoundary,
		MaxSegmentChars:    0,
		StrictEOLHeuristic: false,
	}
}

// Validate range-checks every field, applying defaults for anything left
// at its zero value.
func (c *CalibrationConfig) Validate() error {
	if c.Boundary == 0 {
		c.Boundary = DefaultBoundary
	}
	if c.Boundary < 0 || c.Boundary > 0x7F {
		return fmt.Errorf("wedgecal: boundary character %q must be a 7-bit ASCII rune", c.Boundary)
	}
	if isInvariant(c.Boundary) {
		return fmt.Errorf("wedgecal: boundary character %q must not itself be an invariant character", c.Boundary)
	}
	if c.MaxSegmentChars < 0 {
		return fmt.Errorf("wedgecal: MaxSegmentChars must be >= 0, got %d", c.MaxSegmentChars)
	}
	for i, e := range c.RecognisedElements {
		if e.Identifier == "" {
			return fmt.Errorf("wedgecal: RecognisedElements[%d] has an empty Identifier", i)
		}
	}
	return nil
}
