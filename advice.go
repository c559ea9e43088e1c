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

// Severity orders AdviceItem urgency, highest first when sorted.
type Severity int

const (
	// SeverityInfo notes a benign, expected finding (e.g. a clean run).
	SeverityInfo Severity = iota
	// SeverityWarning flags something that may cause data loss for some
	// payloads but not others.
	SeverityWarning
	// SeverityError flags a finding that will corrupt any payload using
	// the affected character.
	SeverityError
)

// AdviceType enumerates the distinct rule findings C6 can raise. Numeric
// values are stable across releases since RecordCodec implementations may
// persist them.
type AdviceType int

const (
	// AdviceReadsInvariantCharactersReliably reports that calibration found
	// nothing to flag: every invariant character round-trips cleanly.
	AdviceReadsInvariantCharactersReliably AdviceType = 100
	// AdviceLigatureDetected reports a single keystroke producing multiple
	// output characters.
	AdviceLigatureDetected AdviceType = 210
	// AdviceDeadKeyDetected reports a dead key intercepting an invariant
	// character.
	AdviceDeadKeyDetected AdviceType = 220
	// AdviceSuffixDetected reports a fixed suffix observed after the last
	// cell of every baseline segment report.
	AdviceSuffixDetected AdviceType = 230
	// AdviceMayNotReadAim reports that a character used in the configured
	// AIM symbology prefix was dropped, left ambiguous, or mapped to
	// anything other than itself (case inversion included).
	AdviceMayNotReadAim AdviceType = 240
	// AdviceMayNotReadAnsiMh1082 reports that a digit — the backbone of an
	// ASC MH 10.8.2 data identifier — was dropped, left ambiguous, or
	// mapped to anything other than itself.
	AdviceMayNotReadAnsiMh1082 AdviceType = 250
	// AdviceSlowScannerPerformance reports that the probe reply arrived at
	// a pace consistent with manual, hesitant keying rather than a wedge
	// replaying a barcode.
	AdviceSlowScannerPerformance AdviceType = 255
	// AdviceAmbiguousMapping reports two or more invariant characters that
	// produced the same reported text, resolved to a single winner.
	AdviceAmbiguousMapping AdviceType = 260
	// AdviceLayoutsDoNotMatch reports that a majority of invariant
	// characters are neither correctly mapped nor explained by a
	// consistent case inversion: the host's keyboard layout doesn't match
	// what the scanner assumes at all.
	AdviceLayoutsDoNotMatch AdviceType = 300
	// AdviceUnrecognisedExtendedASCII reports that a dead-key probe reply
	// did not carry exactly one reported character per invariant character
	// once its leading rune was dropped (inferDeadKeys' mismatch result).
	AdviceUnrecognisedExtendedASCII AdviceType = 310
	// AdviceCannotReadBarcodesReliably reports an ambiguity inference could
	// not resolve to a single candidate: two or more invariant characters
	// are indistinguishable in this host's reports.
	AdviceCannotReadBarcodesReliably AdviceType = 320
	// AdviceCaseIsSwitched reports that the host's case policy inverts
	// letters relative to what was sent (a Caps-Lock-family condition).
	AdviceCaseIsSwitched AdviceType = 330
	// AdviceCharacterDropped reports an invariant character the host
	// never reported at all.
	AdviceCharacterDropped AdviceType = 340
	// AdviceUnexpectedTrailingData reports inconsistent per-segment
	// trailing data that could not be reconciled into a single suffix.
	AdviceUnexpectedTrailingData AdviceType = 350
)

// AdviceItem is one diagnostic finding surfaced to the operator, per
// spec.md §5.
type AdviceItem struct {
	Type     AdviceType
	Severity Severity
	Message  string
	// Chars lists the invariant character(s) the finding concerns, if
	// any, in the order relevant to the finding.
	Chars []rune
}

// subsumes reports whether a (already present) makes b redundant: a
// broader finding on the same character(s), or on the host's overall
// reliability, supersedes a narrower one so the operator doesn't see two
// items about the same root cause. Mirrors the kind of suppression table
// the retrieved ASDU cause-of-transmission handling keeps for related
// condition codes, generalized to this package's own advice types.
func subsumes(a, b AdviceItem) bool {
	if a.Type == b.Type {
		return false
	}
	switch {
	case a.Type == AdviceCharacterDropped && b.Type == AdviceAmbiguousMapping:
		return sharesChar(a.Chars, b.Chars)
	case a.Type == AdviceDeadKeyDetected && b.Type == AdviceLigatureDetected:
		return sharesChar(a.Chars, b.Chars)
	case a.Type == AdviceCannotReadBarcodesReliably && isLayoutMismatchItem(b.Type):
		return true
	case a.Type == AdviceLayoutsDoNotMatch && (b.Type == AdviceMayNotReadAim || b.Type == AdviceMayNotReadAnsiMh1082):
		return true
	default:
		return false
	}
}

// isLayoutMismatchItem names the "layout-mismatch items" spec.md §4.6's
// subsumption table says AdviceCannotReadBarcodesReliably suppresses
// outright.
func isLayoutMismatchItem(t AdviceType) bool {
	switch t {
	case AdviceLayoutsDoNotMatch, AdviceMayNotReadAim, AdviceMayNotReadAnsiMh1082:
		return true
	default:
		return false
	}
}

func sharesChar(a, b []rune) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// buildAdvice runs every rule against the accumulated evidence/mappings and
// returns a deduplicated, subsumption-filtered, deterministically sorted
// advice list, per spec.md §5's "Advice is recomputed, never accumulated."
func buildAdvice(cm CharacterMap, dm DeadKeyMap, lm LigatureMap, ambiguities []Ambiguity, suffix string, unexpectedTrailing bool, noSentinelAvailable bool, cfg CalibrationConfig, timing Timing) []AdviceItem {
	var items []AdviceItem

	for _, c := range InvariantChars {
		if _, ok := cm.Lookup(c); !ok {
			items = append(items, AdviceItem{
				Type:     AdviceCharacterDropped,
				Severity: SeverityError,
				Message:  fmt.Sprintf("character %q was never reported by the host", c),
				Chars:    []rune{c},
			})
		}
	}

	deadKeyTargets := make(map[rune]bool)
	for key, target := range dm {
		if len([]rune(key)) == 0 || deadKeyTargets[target] {
			continue
		}
		deadKeyTargets[target] = true
		items = append(items, AdviceItem{
			Type:     AdviceDeadKeyDetected,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("dead key sequence %q intercepts character %q", key, target),
			Chars:    []rune{target},
		})
	}

	for key, decoded := range lm {
		if len([]rune(key)) <= 1 {
			continue
		}
		items = append(items, AdviceItem{
			Type:     AdviceLigatureDetected,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("keystroke %q produces ligature output %q", decoded, key),
			Chars:    []rune(decoded),
		})
	}

	ambiguousChars := make(map[rune]bool)
	for _, amb := range ambiguities {
		for _, c := range amb.Candidates {
			ambiguousChars[c] = true
		}
		if amb.Resolved == 0 {
			items = append(items, AdviceItem{
				Type:     AdviceCannotReadBarcodesReliably,
				Severity: SeverityError,
				Message:  fmt.Sprintf("characters %q all report as %q and could not be told apart", amb.Candidates, amb.Reported),
				Chars:    amb.Candidates,
			})
			continue
		}
		items = append(items, AdviceItem{
			Type:     AdviceAmbiguousMapping,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("characters %q all report as %q", amb.Candidates, amb.Reported),
			Chars:    amb.Candidates,
		})
	}

	caseInverted := detectCaseInversion(cm)
	if caseInverted {
		items = append(items, AdviceItem{
			Type:     AdviceCaseIsSwitched,
			Severity: SeverityError,
			Message:  "reported letters are consistently case-inverted relative to what was sent",
		})
	}

	if detectLayoutMismatch(cm, caseInverted) {
		items = append(items, AdviceItem{
			Type:     AdviceLayoutsDoNotMatch,
			Severity: SeverityError,
			Message:  "a majority of invariant characters do not map correctly and are not explained by case inversion",
		})
	}

	if detectMayNotReadAim(cm, ambiguousChars, cfg.AIMPrefix) {
		items = append(items, AdviceItem{
			Type:     AdviceMayNotReadAim,
			Severity: SeverityWarning,
			Message:  "a character used in the configured AIM symbology prefix is dropped, ambiguous, or not mapped to itself",
		})
	}

	if detectMayNotReadAnsiMh1082(cm, ambiguousChars) {
		items = append(items, AdviceItem{
			Type:     AdviceMayNotReadAnsiMh1082,
			Severity: SeverityWarning,
			Message:  "a digit is dropped, ambiguous, or not mapped to itself, risking ASC MH 10.8.2 data identifier misreads",
		})
	}

	if timing.Bucket == PerformanceSlow {
		items = append(items, AdviceItem{
			Type:     AdviceSlowScannerPerformance,
			Severity: SeverityWarning,
			Message:  "the probe reply arrived with unusually large inter-character gaps, consistent with a slow or hesitant scanner",
		})
	}

	if suffix != "" {
		items = append(items, AdviceItem{
			Type:     AdviceSuffixDetected,
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("every baseline segment report carries a fixed suffix %q", suffix),
		})
	}

	if unexpectedTrailing {
		items = append(items, AdviceItem{
			Type:     AdviceUnexpectedTrailingData,
			Severity: SeverityWarning,
			Message:  "trailing data after reported cells was inconsistent across segments and could not be reconciled into a single suffix",
		})
	}

	if noSentinelAvailable {
		items = append(items, AdviceItem{
			Type:     AdviceUnrecognisedExtendedASCII,
			Severity: SeverityWarning,
			Message:  "a dead-key probe reply did not contain exactly one character per invariant character",
		})
	}

	items = filterSubsumed(items)

	hasMediumOrAbove := false
	for _, it := range items {
		if it.Severity >= SeverityWarning {
			hasMediumOrAbove = true
			break
		}
	}
	if !hasMediumOrAbove {
		items = append(items, AdviceItem{
			Type:     AdviceReadsInvariantCharactersReliably,
			Severity: SeverityInfo,
			Message:  "calibration completed with no findings at Medium severity or above",
		})
	}

	sortAdvice(items)
	return items
}

// detectCaseInversion implements spec.md §4.5's case policy: a majority of
// single-rune letter mappings whose reported case differs from what was
// sent, but whose upper-cased forms agree, indicates a Caps-Lock-family
// host rather than a genuine per-character mismatch.
func detectCaseInversion(cm CharacterMap) bool {
	total, inverted := 0, 0
	for _, c := range InvariantChars {
		if !isASCIILetter(c) {
			continue
		}
		reported, ok := cm.Lookup(c)
		if !ok {
			continue
		}
		r := []rune(reported)
		if len(r) != 1 {
			continue
		}
		total++
		if r[0] != c && toASCIIUpper(r[0]) == toASCIIUpper(c) {
			inverted++
		}
	}
	return total > 0 && inverted*2 > total
}

// detectLayoutMismatch reports whether a majority of invariant characters
// are neither correctly mapped nor explained by caseInverted, per the
// AdviceLayoutsDoNotMatch finding.
func detectLayoutMismatch(cm CharacterMap, caseInverted bool) bool {
	if len(InvariantChars) == 0 {
		return false
	}
	bad := 0
	for _, c := range InvariantChars {
		reported, ok := cm.Lookup(c)
		if !ok {
			bad++
			continue
		}
		r := []rune(reported)
		if len(r) == 1 && r[0] == c {
			continue
		}
		if caseInverted && len(r) == 1 && toASCIIUpper(r[0]) == toASCIIUpper(c) {
			continue
		}
		bad++
	}
	return bad*2 > len(InvariantChars)
}

// detectMayNotReadAim reports whether any invariant character used in
// cfg's configured AIM symbology prefix was dropped, left ambiguous, or
// mapped to something other than itself.
func detectMayNotReadAim(cm CharacterMap, ambiguousChars map[rune]bool, aimPrefix string) bool {
	for _, c := range aimPrefix {
		if !isInvariant(c) {
			continue
		}
		if ambiguousChars[c] {
			return true
		}
		reported, ok := cm.Lookup(c)
		if !ok {
			return true
		}
		r := []rune(reported)
		if len(r) != 1 || r[0] != c {
			return true
		}
	}
	return false
}

// detectMayNotReadAnsiMh1082 reports whether any ASCII digit — the
// backbone of an ASC MH 10.8.2 data identifier — was dropped, left
// ambiguous, or mapped to something other than itself.
func detectMayNotReadAnsiMh1082(cm CharacterMap, ambiguousChars map[rune]bool) bool {
	for c := rune('0'); c <= '9'; c++ {
		if ambiguousChars[c] {
			return true
		}
		reported, ok := cm.Lookup(c)
		if !ok {
			return true
		}
		r := []rune(reported)
		if len(r) != 1 || r[0] != c {
			return true
		}
	}
	return false
}

func isASCIILetter(c rune) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func toASCIIUpper(c rune) rune {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// adviceListConsistent reports whether items contains no two entries with
// the same (Type, Chars) signature. buildAdvice's rules each own a distinct
// AdviceType/Chars combination by construction; a collision here means the
// rule engine itself has a bug, not that the host misbehaved, so Session
// surfaces it as ErrAdviceItemListMismatch rather than silently deduplicating.
func adviceListConsistent(items []AdviceItem) bool {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		key := fmt.Sprintf("%d:%q", it.Type, string(it.Chars))
		if seen[key] {
			return false
		}
		seen[key] = true
	}
	return true
}

// filterSubsumed drops any item b for which some surviving item a subsumes
// b, per the subsumes table above.
func filterSubsumed(items []AdviceItem) []AdviceItem {
	kept := make([]bool, len(items))
	for i := range items {
		kept[i] = true
	}
	for i, a := range items {
		if !kept[i] {
			continue
		}
		for j, b := range items {
			if i == j || !kept[j] {
				continue
			}
			if subsumes(a, b) {
				kept[j] = false
			}
		}
	}
	out := make([]AdviceItem, 0, len(items))
	for i, item := range items {
		if kept[i] {
			out = append(out, item)
		}
	}
	return out
}
