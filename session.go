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
	"strings"
	"time"
)

// sessionState names a Session's position in the calibration state machine
// of spec.md §4.4 (S0..S5), modeled directly on the state field tcell's own
// input parser (inputParser.scan in input.go) keeps while walking an escape
// sequence: a small closed set of named states, advanced strictly forward
// except for the dead-key loop which revisits stateDeadKeys once per queued
// glyph.
type sessionState int

const (
	// stateAwaitingBaseline is the session's genesis state: no probe has
	// been issued yet.
	stateAwaitingBaseline sessionState = iota
	// stateBaselineInProgress is S1: baseline probe segments are being
	// issued and accepted.
	stateBaselineInProgress
	// stateDeadKeys is S3: a dead-key probe is being issued and accepted
	// for the glyph at deadKeyCursor.
	stateDeadKeys
	// stateComplete is S5: calibration has finished; Result is available.
	stateComplete
)

// PerformanceBucket classifies how quickly a probe's reply arrived,
// distinguishing a human manually keying a probe from a scanner replaying
// it at hardware speed. internal/rawscan reconstructs the bucket from
// keystroke timestamps; the caller attaches it to the final report via
// Session.RecordTiming.
type PerformanceBucket int

const (
	// PerformanceUnknown means no timing information was supplied.
	PerformanceUnknown PerformanceBucket = iota
	// PerformanceMachineSpeed means the whole probe arrived faster than a
	// human could plausibly type it.
	PerformanceMachineSpeed
	// PerformanceHumanTyped means inter-keystroke gaps were consistent
	// with manual entry.
	PerformanceHumanTyped
	// PerformanceSlow means the probe took unusually long to complete,
	// e.g. because the operator had to look up individual keys.
	PerformanceSlow
)

// Timing records how long calibration took and how it was classified.
type Timing struct {
	TotalDuration time.Duration
	Bucket        PerformanceBucket
}

// ScanReport is the final artifact a completed Session produces: the three
// inferred mapping tables, every ambiguity (resolved or not), and the advice list,
// per spec.md §5.
type ScanReport struct {
	CharacterMap   CharacterMap
	DeadKeyMap     DeadKeyMap
	LigatureMap    LigatureMap
	Ambiguities    []Ambiguity
	DetectedSuffix string
	EOLStyle       string
	Advice         []AdviceItem
	Timing         Timing
	// Errors lists every condition raised while gathering this report's
	// evidence, including the one that ended the session if any, mirroring
	// the terminal Token's Errors (spec.md §7).
	Errors []error
	// Cancelled reports whether the session ended because a report carried
	// the cancel flag, rather than completing normally (spec.md §4.4).
	Cancelled bool
}

// Session drives one calibration run end to end: issue a probe, accept the
// host's report of it, repeat until every baseline character and every
// dead key discovered along the way has been probed. Session holds no
// exported mutable fields; all state transitions happen through NextProbe
// and Accept, mirroring the way tcell's Screen keeps its own input-parsing
// state private and exposes only PollEvent.
type Session struct {
	cfg   CalibrationConfig
	state sessionState
	token Token

	pendingSegments []string
	pendingExpected [][]rune // parallel to pendingSegments, baseline phase only
	segCursor       int

	baselineTails []string // non-empty trailing extras seen per baseline segment

	deadKeyQueue  []rune
	deadKeyCursor int
	deadKeyAccum  strings.Builder

	timing    Timing
	cancelled bool
}

// NewSession validates cfg (applying defaults) and returns a Session ready
// to issue the baseline probe.
func NewSession(cfg CalibrationConfig) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		cfg:   cfg,
		state: stateBaselineInProgress,
		token: genesisToken().withState(stateBaselineInProgress),
	}
	s.loadBaselineSegments()
	return s, nil
}

func (s *Session) loadBaselineSegments() {
	payload := BuildBaselineProbe(s.cfg.Boundary)
	s.pendingSegments = Segment(payload, s.cfg.MaxSegmentChars)
	s.pendingExpected = make([][]rune, len(s.pendingSegments))
	for i, seg := range s.pendingSegments {
		var expected []rune
		for _, r := range seg {
			if isInvariant(r) {
				expected = append(expected, r)
			}
		}
		s.pendingExpected[i] = expected
	}
	s.segCursor = 0
}

func (s *Session) loadDeadKeySegments(d rune) {
	payload := BuildDeadKeyProbe(d)
	s.pendingSegments = Segment(payload, s.cfg.MaxSegmentChars)
	s.pendingExpected = nil
	s.segCursor = 0
	s.deadKeyAccum.Reset()
}

// Done reports whether the session has reached its terminal state.
func (s *Session) Done() bool {
	return s.state == stateComplete
}

// NextProbe returns the probe payload the operator should present to the
// scanner next. It is side-effect free: calling it repeatedly without an
// intervening Accept returns the same payload.
func (s *Session) NextProbe() (string, error) {
	if s.Done() {
		return "", ErrSessionDone
	}
	if s.segCursor >= len(s.pendingSegments) {
		return "", ErrSessionDone
	}
	return s.pendingSegments[s.segCursor], nil
}

// Accept records the host's report of the probe most recently returned by
// NextProbe and advances the session's state, returning the updated Token.
// cancel implements spec.md §4.4's mandatory cancellation path: any report
// may carry it, moving the session straight to its terminal state with
// ErrCancelledByUser recorded rather than processing reported at all.
func (s *Session) Accept(reported string, cancel bool) (Token, error) {
	if s.Done() {
		return s.token, ErrSessionDone
	}
	if cancel {
		s.cancelled = true
		return s.terminateWithError(ErrCancelledByUser)
	}
	if s.segCursor >= len(s.pendingSegments) {
		return s.terminateWithError(ErrOutOfSequenceReport)
	}

	switch s.state {
	case stateBaselineInProgress:
		s.acceptBaselineSegment(reported)
		s.segCursor++
		if s.segCursor >= len(s.pendingSegments) {
			s.transitionAfterBaseline()
		}
	case stateDeadKeys:
		stripped, _ := StripTrailingEOL(reported, false, s.cfg.StrictEOLHeuristic)
		s.deadKeyAccum.WriteString(stripped)
		s.segCursor++
		if s.segCursor >= len(s.pendingSegments) {
			s.transitionAfterDeadKey()
		}
	default:
		return s.terminateWithError(ErrOutOfSequenceReport)
	}

	s.token = s.token.withState(s.state)
	s.token = s.token.withAdvice(s.computeAdvice())
	return s.token, nil
}

// terminateWithError records err in the token's Errors list, marks the
// session terminal, and returns the resulting Token alongside err. Per
// spec.md §7, "Only fatal InputError and OutOfSequenceReport terminate the
// session" — both ErrOutOfSequenceReport and a fatal InputError reach this
// path, as does explicit operator cancellation.
func (s *Session) terminateWithError(err error) (Token, error) {
	s.state = stateComplete
	s.token = s.token.withErrors(err).withState(s.state).withTerminal()
	s.token = s.token.withAdvice(s.computeAdvice())
	return s.token, err
}

// RecordInputError records a failure surfaced by an external collaborator
// (e.g. a DataElementValidator rejecting a decoded payload) against the
// session's current token. A fatal error ends the session immediately, per
// spec.md §7; a non-fatal one is recorded and calibration continues.
func (s *Session) RecordInputError(code string, fatal bool) (Token, error) {
	if s.Done() {
		return s.token, ErrSessionDone
	}
	err := &InputError{Code: code, IsFatal: fatal}
	if fatal {
		return s.terminateWithError(err)
	}
	s.token = s.token.withErrors(err)
	return s.token, nil
}

func (s *Session) acceptBaselineSegment(reported string) {
	probe := s.pendingSegments[s.segCursor]
	expected := s.pendingExpected[s.segCursor]
	stripped, eol := StripTrailingEOL(reported, true, s.cfg.StrictEOLHeuristic)
	if eol != "" && s.token.EOLStyle == "" {
		s.token.EOLStyle = eol
	}
	cells, tail, got := cellsAndTail(stripped, s.cfg.Boundary, len(expected))
	switch {
	case stripped == "":
		s.token = s.token.withErrors(&NoDataError{Probe: probe})
	case got < len(expected):
		s.token = s.token.withErrors(&PartialDataError{Probe: probe, Expected: len(expected), Got: got})
	}
	entries := make([]EvidenceEntry, 0, len(expected))
	for i, c := range expected {
		entries = append(entries, EvidenceEntry{Expected: c, Reported: cells[i]})
	}
	s.token = s.token.withEvidence(entries...)
	if tail != "" {
		s.baselineTails = append(s.baselineTails, tail)
	}
}

// cellsAndTail splits a baseline segment's (EOL-stripped) reported text
// into the expectedCount cells its probe chunk asked for, plus any leftover
// text beyond the last expected cell. Cells are delimited by boundary; per
// spec.md §4.4 every baseline segment begins with one or more boundary
// runes (left over from the previous segment's trim, or the payload's own
// leading boundary for the first segment), so the leading empty fields
// produced by splitting on boundary are discarded before cells are taken.
// got is the number of cells actually present before any short-report
// padding, for PartialDataError reporting.
func cellsAndTail(reported string, boundary rune, expectedCount int) (cells []string, tail string, got int) {
	parts := strings.Split(reported, string(boundary))
	i := 0
	for i < len(parts) && parts[i] == "" {
		i++
	}
	rest := parts[i:]
	got = len(rest)
	if expectedCount == 0 {
		return nil, strings.Join(rest, string(boundary)), got
	}
	if len(rest) >= expectedCount {
		cells = rest[:expectedCount]
		tail = strings.Join(rest[expectedCount:], string(boundary))
		return cells, tail, got
	}
	cells = append([]string{}, rest...)
	for len(cells) < expectedCount {
		cells = append(cells, "")
	}
	return cells, "", got
}

// transitionAfterBaseline reconciles the per-segment trailing extras into a
// single DetectedSuffix (or flags them as unreconcilable), discovers which
// dead keys the baseline run surfaced, and either queues the first one or
// marks the session complete.
func (s *Session) transitionAfterBaseline() {
	suffix, mismatch := reconcileTails(s.baselineTails)
	s.token.DetectedSuffix = suffix
	if mismatch {
		for i, tail := range s.baselineTails {
			if tail != "" && tail != suffix {
				s.token = s.token.withErrors(&UnexpectedTrailingDataError{Segment: i, Extra: tail})
			}
		}
	}

	_, _, ambiguities, _, _ := inferBaseline(s.token.Evidence, s.cfg.RecognisedElements)
	for _, amb := range ambiguities {
		if amb.Resolved == 0 {
			s.token = s.token.withErrors(&AmbiguousMappingError{Ambiguity: amb})
		}
	}

	s.deadKeyQueue = discoverDeadKeyGlyphs(s.token.Evidence)
	if len(s.deadKeyQueue) == 0 {
		s.state = stateComplete
		s.token = s.token.withTerminal()
		return
	}
	s.state = stateDeadKeys
	s.deadKeyCursor = 0
	s.loadDeadKeySegments(s.deadKeyQueue[0])
}

// transitionAfterDeadKey records the raw accumulated report for the dead
// key just probed and either advances to the next queued dead key or marks
// the session complete.
func (s *Session) transitionAfterDeadKey() {
	d := s.deadKeyQueue[s.deadKeyCursor]
	s.token = s.token.withEvidence(EvidenceEntry{
		Expected: 0,
		Reported: s.deadKeyAccum.String(),
		DeadKey:  d,
	})
	s.deadKeyCursor++
	if s.deadKeyCursor >= len(s.deadKeyQueue) {
		s.state = stateComplete
		s.token = s.token.withTerminal()
		return
	}
	s.loadDeadKeySegments(s.deadKeyQueue[s.deadKeyCursor])
}

// reconcileTails implements spec.md's Open Question 1 resolution: if every
// non-empty per-segment tail is identical, that text is a genuine fixed
// suffix; otherwise the trailing data could not be confidently attributed
// to anything, and mismatch is reported instead.
func reconcileTails(tails []string) (suffix string, mismatch bool) {
	for _, t := range tails {
		if t == "" {
			continue
		}
		if suffix == "" {
			suffix = t
			continue
		}
		if suffix != t {
			return "", true
		}
	}
	return suffix, false
}

// discoverDeadKeyGlyphs scans baseline evidence for cells the host reported
// as a bare NUL sentinel and returns the distinct expected invariant
// characters behind them, in first-seen order. A baseline cell that is
// exactly NUL means the key for that invariant character is itself a dead
// key: the host has nothing to combine it with yet (the probe's boundary
// character follows, not another letter), so it re-emits the placeholder
// instead of a combined glyph. The expected character, not whatever the
// host reported, is what a follow-up probe needs: BuildDeadKeyProbe must
// send the exact invariant character that physically drove this keystroke.
func discoverDeadKeyGlyphs(evidence []EvidenceEntry) []rune {
	seen := make(map[rune]bool)
	var out []rune
	for _, e := range evidence {
		if e.DeadKey != 0 || e.Expected == 0 {
			continue // already a dead-key-phase entry, not baseline
		}
		if e.Reported == string(deadKeySentinel) && !seen[e.Expected] {
			seen[e.Expected] = true
			out = append(out, e.Expected)
		}
	}
	return out
}

// computeAdvice recomputes the session's advice list from whatever
// evidence has been gathered so far, using a best-effort partial inference
// pass. The authoritative, final advice list is the one attached to the
// terminal Token returned by Accept's last call and mirrored in Result.
func (s *Session) computeAdvice() []AdviceItem {
	cm, lm, ambiguities, _, _ := inferBaseline(s.token.Evidence, s.cfg.RecognisedElements)
	dm, dkMismatch := inferDeadKeys(s.token.Evidence, s.deadKeyQueue)
	_, tailMismatch := reconcileTails(s.baselineTails)
	items := buildAdvice(cm, dm, lm, ambiguities, s.token.DetectedSuffix, tailMismatch, dkMismatch, s.cfg, s.timing)
	if !adviceListConsistent(items) {
		s.token = s.token.withErrors(ErrAdviceItemListMismatch)
	}
	return items
}

// RecordTiming attaches timing metadata (typically reconstructed by
// internal/rawscan from raw keystroke timestamps) to the session, to be
// included in the eventual ScanReport.
func (s *Session) RecordTiming(t Timing) {
	s.timing = t
}

// Result returns the final ScanReport once the session has reached its
// terminal state, recomputing advice so that timing recorded after the
// last Accept call (the common case: the CLI calls RecordTiming once the
// whole exchange has finished) is reflected in AdviceSlowScannerPerformance.
func (s *Session) Result() (*ScanReport, error) {
	if !s.Done() {
		return nil, ErrSessionIncomplete
	}
	cm, lm, ambiguities, _, _ := inferBaseline(s.token.Evidence, s.cfg.RecognisedElements)
	dm, dkMismatch := inferDeadKeys(s.token.Evidence, s.deadKeyQueue)
	_, tailMismatch := reconcileTails(s.baselineTails)
	advice := buildAdvice(cm, dm, lm, ambiguities, s.token.DetectedSuffix, tailMismatch, dkMismatch, s.cfg, s.timing)
	reportErrors := s.token.Errors
	if !adviceListConsistent(advice) {
		reportErrors = append(append([]error{}, reportErrors...), ErrAdviceItemListMismatch)
	}
	return &ScanReport{
		CharacterMap:   cm,
		DeadKeyMap:     dm,
		LigatureMap:    lm,
		Ambiguities:    ambiguities,
		DetectedSuffix: s.token.DetectedSuffix,
		EOLStyle:       s.token.EOLStyle,
		Advice:         advice,
		Timing:         s.timing,
		Errors:         reportErrors,
		Cancelled:      s.cancelled,
	}, nil
}
