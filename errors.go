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

import (
	"errors"
	"fmt"
)

var (
	// ErrNoUnusedExtendedASCII indicates that every code point in the
	// 0x80..0xFF range already appears in the data under inspection, so no
	// sentinel substitute is available.
	ErrNoUnusedExtendedASCII = errors.New("wedgecal: no unused extended ASCII code point available")

	// ErrOutOfSequenceReport indicates a report was accepted for a token
	// that has already been superseded by a later one in the chain.
	ErrOutOfSequenceReport = errors.New("wedgecal: report does not match the currently awaited probe")

	// ErrCancelledByUser indicates the caller passed cancel=true to
	// Session.Accept, ending the session without a usable map.
	ErrCancelledByUser = errors.New("wedgecal: session cancelled by caller")

	// ErrSessionDone indicates NextProbe or Accept was called after the
	// session already reached a terminal state.
	ErrSessionDone = errors.New("wedgecal: session already terminal")

	// ErrAdviceItemListMismatch indicates that a freshly built advice list
	// held two items with the same (Type, Chars) signature (see
	// adviceListConsistent). This should never happen outside of a
	// programming error in the advice rules.
	ErrAdviceItemListMismatch = errors.New("wedgecal: advice item count does not match queue")

	// ErrSessionIncomplete indicates Result was called before the session
	// reached a terminal state.
	ErrSessionIncomplete = errors.New("wedgecal: session has not finished calibration yet")
)

// PartialDataError records that a probe segment reported fewer cells than
// expected (a short report). It is non-fatal: the evidence for the missing
// cells is simply absent, and the affected map entries stay partial.
type PartialDataError struct {
	Probe    string // probe payload the short report belongs to
	Expected int    // number of cells expected
	Got      int    // number of cells actually present
}

func (e *PartialDataError) Error() string {
	return fmt.Sprintf("wedgecal: partial data reported for probe %q: expected %d cells, got %d", e.Probe, e.Expected, e.Got)
}

// NoDataError records an entirely empty report for a probe.
type NoDataError struct {
	Probe string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("wedgecal: no data reported for probe %q", e.Probe)
}

// AmbiguousMappingError records that inference could not resolve a reported
// sequence to a single expected character.
type AmbiguousMappingError struct {
	Ambiguity Ambiguity
}

func (e *AmbiguousMappingError) Error() string {
	return fmt.Sprintf("wedgecal: ambiguous mapping for reported %q: candidates %q",
		e.Ambiguity.Reported, string(e.Ambiguity.Candidates))
}

// UnexpectedTrailingDataError records that a baseline segment's trailing
// extra characters were not identical across all baseline segments, so they
// could not be confidently attributed to a configured suffix. See
// DESIGN.md's decision for spec.md's Open Question 1.
type UnexpectedTrailingDataError struct {
	Segment int
	Extra   string
}

func (e *UnexpectedTrailingDataError) Error() string {
	return fmt.Sprintf("wedgecal: unexpected trailing data on baseline segment %d: %q", e.Segment, e.Extra)
}

// InputError represents a failure reported by an external collaborator,
// such as a DataElementValidator rejecting a decoded payload. Non-fatal
// InputErrors accumulate in the current Token; fatal ones end the session.
type InputError struct {
	Code    string
	IsFatal bool
}

func (e *InputError) Error() string {
	return fmt.Sprintf("wedgecal: input error %s (fatal=%v)", e.Code, e.IsFatal)
}
