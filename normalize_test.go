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

func TestNormalizeIdentity(t *testing.T) {
	report := &ScanReport{
		CharacterMap: CharacterMap{'A': "A", 'B': "B"},
		DeadKeyMap:   DeadKeyMap{},
		LigatureMap:  LigatureMap{},
	}
	got, err := Normalize(report, "AB", DefaultCalibrationConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "AB" {
		t.Errorf("Normalize = %q, want \"AB\"", got)
	}
}

func TestNormalizeRewritesLigature(t *testing.T) {
	report := &ScanReport{
		CharacterMap: CharacterMap{'A': "ae"},
		DeadKeyMap:   DeadKeyMap{},
		LigatureMap:  LigatureMap{"ae": "A"},
	}
	got, err := Normalize(report, "aeB", DefaultCalibrationConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "AB" {
		t.Errorf("Normalize = %q, want \"AB\"", got)
	}
}

func TestNormalizeRewritesDeadKeySequence(t *testing.T) {
	key := string(deadKeySentinel) + "a"
	report := &ScanReport{
		CharacterMap: CharacterMap{},
		DeadKeyMap:   DeadKeyMap{key: 'A'},
		LigatureMap:  LigatureMap{},
	}
	got, err := Normalize(report, key+"Z", DefaultCalibrationConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "AZ" {
		t.Errorf("Normalize = %q, want \"AZ\"", got)
	}
}

func TestNormalizeNilReport(t *testing.T) {
	if _, err := Normalize(nil, "x", DefaultCalibrationConfig()); err == nil {
		t.Fatal("expected an error for a nil report")
	}
}

func TestRecoverAIMPrefix(t *testing.T) {
	got := recoverAIMPrefix("C0hello", "]C0")
	if got != "]C0hello" {
		t.Errorf("recoverAIMPrefix = %q, want \"]C0hello\"", got)
	}
	got = recoverAIMPrefix("]C0hello", "]C0")
	if got != "]C0hello" {
		t.Errorf("recoverAIMPrefix should be a no-op when the prefix is already present, got %q", got)
	}
}
