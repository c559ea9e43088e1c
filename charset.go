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

// Charset decoding: a keyboard-wedge scanner types through whatever
// terminal or input box the host application owns, and that surface is not
// always UTF-8. A legacy POSIX terminal reports $LANG's codeset (often
// something like ISO8859-15 or KOI8-R); decoding scanner bytes in the
// wrong charset looks identical to a genuine keyboard-layout problem, so
// calibration needs a way to get this right before Session ever sees a
// byte.

package wedgecal

import (
	"sync"
	"unicode/utf8"

	"golang.org/x/text/encoding"
)

var charsets map[string]encoding.Encoding
var charsetLk sync.Mutex

// RegisterCharset makes a named golang.org/x/text/encoding.Encoding
// available to DecodeReport. Most of the common ones already exist as
// stock variables under golang.org/x/text/encoding/charmap; for example
// ISO8859-15 can be registered with:
//
//	RegisterCharset("ISO8859-15", charmap.ISO8859_15)
func RegisterCharset(name string, enc encoding.Encoding) {
	charsetLk.Lock()
	defer charsetLk.Unlock()
	if charsets == nil {
		charsets = make(map[string]encoding.Encoding)
	}
	charsets[name] = enc
}

// GetCharset looks up a previously registered charset by name. It returns
// nil for "UTF-8" and "US-ASCII", which DecodeReport handles natively
// without consulting this table.
func GetCharset(name string) encoding.Encoding {
	charsetLk.Lock()
	defer charsetLk.Unlock()
	return charsets[name]
}

// DecodeReport converts raw bytes captured from the host terminal into the
// string Session.Accept expects, using the named charset. An empty name
// (or "UTF-8") passes data through as UTF-8 unchanged.
func DecodeReport(data []byte, charset string) (string, error) {
	if charset == "" || charset == "UTF-8" {
		return string(data), nil
	}
	if charset == "US-ASCII" {
		return asciiDecode(data), nil
	}
	enc := GetCharset(charset)
	if enc == nil {
		return string(data), nil
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// asciiDecode passes 7-bit bytes through unchanged and substitutes
// anything else with the ASCII substitution character, mirroring the
// behavior golang.org/x/text/encoding documents for its own ASCII-like
// encodings.
func asciiDecode(data []byte) string {
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); {
		c := data[i]
		if c < utf8.RuneSelf {
			out = append(out, c)
			i++
			continue
		}
		r, sz := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && sz <= 1 {
			sz = 1
		}
		out = append(out, encoding.ASCIISub)
		i += sz
	}
	return string(out)
}
