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

// Package charsetref registers the common non-UTF-8 terminal charsets with
// wedgecal.RegisterCharset, so DecodeReport can handle a scanner plugged
// into a legacy POSIX host whose $LANG codeset isn't Unicode.
package charsetref

import (
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"

	"github.com/ossbarcode/wedgecal"
)

// Register adds every charset this package knows about to wedgecal's
// global charset table, along with the common spelling aliases a $LANG or
// $LC_CTYPE value might use.
func Register() {
	wedgecal.RegisterCharset("ISO8859-1", charmap.ISO8859_1)
	wedgecal.RegisterCharset("ISO8859-2", charmap.ISO8859_2)
	wedgecal.RegisterCharset("ISO8859-3", charmap.ISO8859_3)
	wedgecal.RegisterCharset("ISO8859-4", charmap.ISO8859_4)
	wedgecal.RegisterCharset("ISO8859-5", charmap.ISO8859_5)
	wedgecal.RegisterCharset("ISO8859-6", charmap.ISO8859_6)
	wedgecal.RegisterCharset("ISO8859-7", charmap.ISO8859_7)
	wedgecal.RegisterCharset("ISO8859-8", charmap.ISO8859_8)
	wedgecal.RegisterCharset("ISO8859-13", charmap.ISO8859_13)
	wedgecal.RegisterCharset("ISO8859-14", charmap.ISO8859_14)
	wedgecal.RegisterCharset("ISO8859-15", charmap.ISO8859_15)
	wedgecal.RegisterCharset("ISO8859-16", charmap.ISO8859_16)
	wedgecal.RegisterCharset("KOI8-R", charmap.KOI8R)
	wedgecal.RegisterCharset("KOI8-U", charmap.KOI8U)

	wedgecal.RegisterCharset("EUC-JP", japanese.EUCJP)
	wedgecal.RegisterCharset("Shift_JIS", japanese.ShiftJIS)
	wedgecal.RegisterCharset("ISO2022JP", japanese.ISO2022JP)

	wedgecal.RegisterCharset("EUC-KR", korean.EUCKR)

	wedgecal.RegisterCharset("GB18030", simplifiedchinese.GB18030)
	wedgecal.RegisterCharset("GB2312", simplifiedchinese.HZGB2312)
	wedgecal.RegisterCharset("GBK", simplifiedchinese.GBK)

	wedgecal.RegisterCharset("Big5", traditionalchinese.Big5)

	aliases := map[string]string{
		"8859-1":      "ISO8859-1",
		"ISO-8859-1":  "ISO8859-1",
		"8859-2":      "ISO8859-2",
		"ISO-8859-2":  "ISO8859-2",
		"8859-13":     "ISO8859-13",
		"ISO-8859-13": "ISO8859-13",
		"8859-14":     "ISO8859-14",
		"ISO-8859-14": "ISO8859-14",
		"8859-15":     "ISO8859-15",
		"ISO-8859-15": "ISO8859-15",
		"8859-16":     "ISO8859-16",
		"ISO-8859-16": "ISO8859-16",
		"SJIS":        "Shift_JIS",
		"eucJP":       "EUC-JP",
		"2022-JP":     "ISO2022JP",
		"ISO-2022-JP": "ISO2022JP",
		"eucKR":       "EUC-KR",
	}
	for alias, canonical := range aliases {
		if enc := wedgecal.GetCharset(canonical); enc != nil {
			wedgecal.RegisterCharset(alias, enc)
		}
	}
}
