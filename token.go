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
	"hash/fnv"
	"sort"
)

// EvidenceEntry records one reported-cell observation gathered while
// walking a probe segment: which invariant character the scanner was asked
// to type, and exactly what the host reported back for it (spec.md §3).
type EvidenceEntry struct {
	// Expected is the invariant character the probe asked the scanner to
	// produce.
	Expected rune
	// Reported is the text the host surfaced for it, after the reply's
	// trailing EOL was stripped. Baseline entries are the reply split on
	// the boundary character; dead-key entries hold the whole stripped
	// reply of every segment, concatenated.
	Reported string
	// DeadKey is the dead-key glyph this entry was collected under, or 0
	// for baseline-probe evidence.
	DeadKey rune
}

// Token is the immutable accumulator threaded through a Session: each
// accepted probe segment produces a new Token built from the previous one
// plus the newly observed evidence. Following the copy-on-write pattern the
// retrieved iec60870-5-104 ASDU handling and tcell's EventKey construction
// both use for their own accumulator types, every With* method returns a
// new value rather than mutating its receiver, so a caller holding an older
// Token is never surprised by a later Session step.
type Token struct {
	// State is the session state at the moment this Token was produced.
	State sessionState
	// Evidence is every EvidenceEntry gathered so far, across every probe
	// accepted to date, in acceptance order.
	Evidence []EvidenceEntry
	// DetectedSuffix is the fixed text (if any) the baseline pass found
	// after the last expected cell of every baseline segment report, the
	// same in each segment, e.g. a consistent field
	// terminator (spec.md §4.4's Open Question resolution).
	DetectedSuffix string
	// EOLStyle names the line-ending convention StripTrailingEOL detected
	// ("", "CR", "LF", "CRLF", "LFCR").
	EOLStyle string
	// Terminal reports whether the session that produced this Token has
	// finished (successfully or by cancellation/error).
	Terminal bool
	// Advice is the diagnostic output of the C6 rule engine, recomputed
	// whenever evidence changes; it is derived state and is therefore
	// excluded from Equal and Hash.
	Advice []AdviceItem
	// Errors accumulates every condition raised while processing reports
	// for this token's session, including the one that ended it if any, in
	// the order raised, per spec.md
	// §7: "all errors are recorded in the current token's errors list and
	// surfaced in the terminal token."
	Errors []error
}

// genesisToken returns the zero-evidence starting Token for a new session.
func genesisToken() Token {
	return Token{State: stateAwaitingBaseline}
}

// withEvidence returns a copy of t with entries appended to its Evidence
// slice. The receiver's own backing array is never written to.
func (t Token) withEvidence(entries ...EvidenceEntry) Token {
	next := t
	combined := make([]EvidenceEntry, 0, len(t.Evidence)+len(entries))
	combined = append(combined, t.Evidence...)
	combined = append(combined, entries...)
	next.Evidence = combined
	return next
}

// withState returns a copy of t advanced to the given session state.
func (t Token) withState(s sessionState) Token {
	next := t
	next.State = s
	return next
}

// withTerminal returns a copy of t marked as the session's final Token.
func (t Token) withTerminal() Token {
	next := t
	next.Terminal = true
	return next
}

// withAdvice returns a copy of t carrying a freshly computed advice list.
func (t Token) withAdvice(advice []AdviceItem) Token {
	next := t
	next.Advice = advice
	return next
}

// withErrors returns a copy of t with errs appended to its Errors slice.
// The receiver's own backing array is never written to.
func (t Token) withErrors(errs ...error) Token {
	if len(errs) == 0 {
		return t
	}
	next := t
	combined := make([]error, 0, len(t.Errors)+len(errs))
	combined = append(combined, t.Errors...)
	combined = append(combined, errs...)
	next.Errors = combined
	return next
}

// Equal reports whether t and o are structurally identical, per spec.md §3:
// "Equality is structural over all fields except derived advice [and
// serialization error]." Advice is intentionally excluded; Errors is
// compared by each error's message, since error values themselves are not
// comparable with ==.
func (t Token) Equal(o Token) bool {
	if t.State != o.State || t.DetectedSuffix != o.DetectedSuffix ||
		t.EOLStyle != o.EOLStyle || t.Terminal != o.Terminal {
		return false
	}
	if len(t.Evidence) != len(o.Evidence) {
		return false
	}
	for i := range t.Evidence {
		if t.Evidence[i] != o.Evidence[i] {
			return false
		}
	}
	if len(t.Errors) != len(o.Errors) {
		return false
	}
	for i := range t.Errors {
		if t.Errors[i].Error() != o.Errors[i].Error() {
			return false
		}
	}
	return true
}

// Hash computes a deterministic FNV-1a digest over every field Equal
// compares, grounded on the retrieved part5 package's use of hash/fnv for
// structural caller-identity hashing (caller.go). Two Tokens for which
// Equal returns true always hash identically; Advice never contributes to
// the digest.
func (t Token) Hash() uint64 {
	h := fnv.New64a()
	writeUint64(h, uint64(t.State))
	writeString(h, t.DetectedSuffix)
	writeString(h, t.EOLStyle)
	if t.Terminal {
		writeUint64(h, 1)
	} else {
		writeUint64(h, 0)
	}
	writeUint64(h, uint64(len(t.Evidence)))
	for _, e := range t.Evidence {
		writeUint64(h, uint64(e.Expected))
		writeString(h, e.Reported)
		writeUint64(h, uint64(e.DeadKey))
	}
	writeUint64(h, uint64(len(t.Errors)))
	for _, e := range t.Errors {
		writeString(h, e.Error())
	}
	return h.Sum64()
}

func writeString(h interface{ Write([]byte) (int, error) }, s string) {
	_, _ = h.Write([]byte(s))
	_, _ = h.Write([]byte{0})
}

func writeUint64(h interface{ Write([]byte) (int, error) }, v uint64) {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	_, _ = h.Write(buf[:])
}

// sortAdvice orders a slice of AdviceItem by severity descending, then by
// Type ascending, matching the deterministic ordering spec.md §5 requires
// of Session.Result.
func sortAdvice(items []AdviceItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Severity != items[j].Severity {
			return items[i].Severity > items[j].Severity
		}
		return items[i].Type < items[j].Type
	})
}
