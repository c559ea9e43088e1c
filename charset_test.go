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
	"testing"

	"golang.org/x/text/encoding"
)

func TestDecodeReportUTF8Passthrough(t *testing.T) {
	got, err := DecodeReport([]byte("hello"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello" {
		t.Errorf("DecodeReport = %q, want \"hello\"", got)
	}
}

func TestDecodeReportASCIISubstitutesHighBytes(t *testing.T) {
	got, err := DecodeReport([]byte{'a', 0xE9, 'b'}, "US-ASCII")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := string([]byte{'a', encoding.ASCIISub, 'b'})
	if got != want {
		t.Errorf("DecodeReport = %q, want %q", got, want)
	}
}

func TestRegisterAndGetCharset(t *testing.T) {
	if GetCharset("NOT-REGISTERED") != nil {
		t.Error("expected nil for an unregistered charset")
	}
}
