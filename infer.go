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

// inferBaseline turns the baseline-phase evidence (entries with DeadKey ==
// 0) into a CharacterMap and LigatureMap, and surfaces any reported text
// that two or more invariant characters share as an Ambiguity, preferring a
// candidate named by one of recognised's RecognisedDataElement entries when
// one applies. It also returns, for callers that need it, how many evidence
// entries were dropped (reported as empty) and the count consumed, though
// most callers only need the first three results.
func inferBaseline(evidence []EvidenceEntry, recognised []RecognisedDataElement) (cm CharacterMap, lm LigatureMap, ambiguities []Ambiguity, dropped int, consumed int) {
	cm = CharacterMap{}
	lm = LigatureMap{}

	reportedToChars := map[string][]rune{}
	for _, e := range evidence {
		if e.DeadKey != 0 || e.Expected == 0 {
			continue
		}
		consumed++
		if e.Reported == "" {
			dropped++
			continue
		}
		if containsRune(e.Reported, deadKeySentinel) {
			// Handled by the dead-key phase; not a character mapping.
			continue
		}
		reportedToChars[e.Reported] = append(reportedToChars[e.Reported], e.Expected)
	}

	var collidingReports []string
	for reported, chars := range reportedToChars {
		if len(chars) == 1 {
			cm[chars[0]] = reported
			if len([]rune(reported)) > 1 {
				lm[reported] = string(chars[0])
			}
			continue
		}
		collidingReports = append(collidingReports, reported)
	}
	sort.Strings(collidingReports)
	for _, reported := range collidingReports {
		chars := reportedToChars[reported]
		sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })
		ambiguities = append(ambiguities, resolveAmbiguity(reported, chars, recognised))
	}
	sort.Slice(ambiguities, func(i, j int) bool { return ambiguities[i].Reported < ambiguities[j].Reported })

	for _, amb := range ambiguities {
		if amb.Resolved != 0 {
			cm[amb.Resolved] = amb.Reported
		}
	}

	return cm, lm, ambiguities, dropped, consumed
}

// resolveAmbiguity picks a winner for a colliding reported value, following
// spec.md §6: a candidate that lines up with a configured
// RecognisedDataElement wins. Without such a match the Ambiguity is left
// unresolved (Resolved == 0), so none of the candidates enters the
// CharacterMap.
func resolveAmbiguity(reported string, candidates []rune, recognised []RecognisedDataElement) Ambiguity {
	for _, elem := range recognised {
		idRunes := []rune(elem.Identifier)
		if len(idRunes) == 0 {
			continue
		}
		for _, c := range candidates {
			if c == idRunes[0] {
				return Ambiguity{
					Candidates: candidates,
					Reported:   reported,
					Resolved:   c,
					ResolvedBy: "recognised-element",
				}
			}
		}
	}
	return Ambiguity{
		Candidates: candidates,
		Reported:   reported,
	}
}

// inferDeadKeys turns each probed dead key's raw accumulated report into
// DeadKeyMap entries, one per invariant character, keyed by the NUL
// sentinel followed by whatever the host actually reported alongside it.
// R_d, the raw report for dead key d, begins with either NUL (d was
// re-emitted plainly, the good case) or d's own glyph (the host completed
// it with a default accent); either way that leading rune records the dead
// key's own keystroke, not a combination, and is dropped before the
// remainder is zipped positionally against the invariant set. The common
// case — exactly one rune reported per invariant position after that
// leading rune is dropped — is handled directly; any other length is
// zipped up to however many runes are available, and mismatch is set so
// the caller can raise AdviceUnrecognisedExtendedASCII-adjacent
// diagnostics.
func inferDeadKeys(evidence []EvidenceEntry, probedGlyphs []rune) (dm DeadKeyMap, mismatch bool) {
	dm = DeadKeyMap{}
	raw := map[rune]string{}
	for _, e := range evidence {
		if e.DeadKey != 0 {
			raw[e.DeadKey] = e.Reported
		}
	}
	for _, d := range probedGlyphs {
		text, ok := raw[d]
		if !ok {
			continue
		}
		runes := []rune(text)
		if len(runes) > 0 && (runes[0] == deadKeySentinel || runes[0] == d) {
			runes = runes[1:]
		}
		n := len(InvariantChars)
		if len(runes) != n {
			mismatch = true
		}
		limit := len(runes)
		if limit > n {
			limit = n
		}
		for i := 0; i < limit; i++ {
			key := string(deadKeySentinel) + string(runes[i])
			dm[key] = InvariantChars[i]
		}
	}
	return dm, mismatch
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}
