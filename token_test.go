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

import "testing"

func TestTokenWithEvidenceIsImmutable(t *testing.T) {
	t0 := genesisToken()
	t1 := t0.withEvidence(EvidenceEntry{Expected: 'A', Reported: "A"})

	if len(t0.Evidence) != 0 {
		t.Fatalf("original token mutated: len(t0.Evidence) = %d, want 0", len(t0.Evidence))
	}
	if len(t1.Evidence) != 1 {
		t.Fatalf("len(t1.Evidence) = %d, want 1", len(t1.Evidence))
	}

	t2 := t1.withEvidence(EvidenceEntry{Expected: 'B', Reported: "B"})
	if len(t1.Evidence) != 1 {
		t.Fatalf("t1 mutated after deriving t2: len(t1.Evidence) = %d, want 1", len(t1.Evidence))
	}
	if len(t2.Evidence) != 2 {
		t.Fatalf("len(t2.Evidence) = %d, want 2", len(t2.Evidence))
	}
}

func TestTokenEqualIgnoresAdvice(t *testing.T) {
	a := genesisToken().withEvidence(EvidenceEntry{Expected: 'A', Reported: "A"})
	b := a.withAdvice([]AdviceItem{{Type: AdviceReadsInvariantCharactersReliably, Message: "x"}})

	if !a.Equal(b) {
		t.Fatal("tokens differing only by Advice should be Equal")
	}
	if a.Hash() != b.Hash() {
		t.Fatal("tokens differing only by Advice should Hash identically")
	}
}

func TestTokenWithErrorsIsImmutable(t *testing.T) {
	t0 := genesisToken()
	t1 := t0.withErrors(ErrCancelledByUser)

	if len(t0.Errors) != 0 {
		t.Fatalf("original token mutated: len(t0.Errors) = %d, want 0", len(t0.Errors))
	}
	if len(t1.Errors) != 1 || t1.Errors[0] != ErrCancelledByUser {
		t.Fatalf("t1.Errors = %v, want [ErrCancelledByUser]", t1.Errors)
	}

	t2 := t1.withErrors(ErrOutOfSequenceReport)
	if len(t1.Errors) != 1 {
		t.Fatalf("t1 mutated after deriving t2: len(t1.Errors) = %d, want 1", len(t1.Errors))
	}
	if len(t2.Errors) != 2 {
		t.Fatalf("len(t2.Errors) = %d, want 2", len(t2.Errors))
	}
}

func TestTokenWithErrorsNoopOnEmpty(t *testing.T) {
	t0 := genesisToken().withErrors(ErrCancelledByUser)
	t1 := t0.withErrors()
	if len(t1.Errors) != 1 {
		t.Fatalf("withErrors() with no arguments should be a no-op, got %v", t1.Errors)
	}
}

func TestTokenEqualDetectsErrorsDifference(t *testing.T) {
	a := genesisToken().withErrors(ErrCancelledByUser)
	b := genesisToken().withErrors(ErrOutOfSequenceReport)
	if a.Equal(b) {
		t.Fatal("tokens with different Errors should not be Equal")
	}
	if a.Hash() == b.Hash() {
		t.Fatal("tokens with different Errors should (almost certainly) hash differently")
	}

	c := genesisToken().withErrors(ErrCancelledByUser)
	if !a.Equal(c) {
		t.Fatal("tokens with the same Errors messages should be Equal")
	}
	if a.Hash() != c.Hash() {
		t.Fatal("tokens with the same Errors messages should Hash identically")
	}
}

func TestTokenEqualDetectsEvidenceDifference(t *testing.T) {
	a := genesisToken().withEvidence(EvidenceEntry{Expected: 'A', Reported: "A"})
	b := genesisToken().withEvidence(EvidenceEntry{Expected: 'A', Reported: "B"})
	if a.Equal(b) {
		t.Fatal("tokens with different Evidence should not be Equal")
	}
	if a.Hash() == b.Hash() {
		t.Fatal("tokens with different Evidence should (almost certainly) hash differently")
	}
}

func TestTokenWithTerminal(t *testing.T) {
	t0 := genesisToken()
	t1 := t0.withTerminal()
	if t0.Terminal {
		t.Fatal("original token should not be marked Terminal")
	}
	if !t1.Terminal {
		t.Fatal("derived token should be marked Terminal")
	}
}
