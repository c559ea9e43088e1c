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

func TestStripTrailingEOL(t *testing.T) {
	cases := []struct {
		in         string
		isBaseline bool
		strict     bool
		wantStr    string
		wantLabel  string
	}{
		{"abc\r\n", false, false, "abc", "CRLF"},
		{"abc\n\r", false, false, "abc", "LFCR"},
		{"abc\n", false, false, "abc", "LF"},
		{"abc\r", false, false, "abc", "CR"},
		{"abc", false, false, "abc", ""},
		{"", false, false, "", ""},
		{"abc    \x01", true, false, "abc    ", "LF"},
		{"abc    \x01", false, false, "abc    \x01", ""},
		{"abc    \x01", true, true, "abc    \x01", ""},
	}
	for _, tc := range cases {
		gotStr, gotLabel := StripTrailingEOL(tc.in, tc.isBaseline, tc.strict)
		if gotStr != tc.wantStr || gotLabel != tc.wantLabel {
			t.Errorf("StripTrailingEOL(%q, %v, %v) = (%q, %q), want (%q, %q)",
				tc.in, tc.isBaseline, tc.strict, gotStr, gotLabel, tc.wantStr, tc.wantLabel)
		}
	}
}

func TestUnusedExtendedASCII(t *testing.T) {
	c, err := UnusedExtendedASCII("hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != 0x80 {
		t.Errorf("UnusedExtendedASCII(\"hello\") = %v, want 0x80", c)
	}

	var all []rune
	for c := rune(0x80); c <= 0xFF; c++ {
		all = append(all, c)
	}
	_, err = UnusedExtendedASCII(string(all))
	if err != ErrNoUnusedExtendedASCII {
		t.Errorf("expected ErrNoUnusedExtendedASCII, got %v", err)
	}
}

func TestToControlPicture(t *testing.T) {
	if got := ToControlPicture(0); got != 0x2400 {
		t.Errorf("ToControlPicture(0) = %U, want U+2400", got)
	}
	if got := ToControlPicture('A'); got != 'A' {
		t.Errorf("ToControlPicture('A') = %q, want 'A'", got)
	}
}
