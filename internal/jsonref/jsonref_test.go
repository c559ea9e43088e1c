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

package jsonref

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/ossbarcode/wedgecal"
)

func TestCodecRoundTrip(t *testing.T) {
	report := &wedgecal.ScanReport{
		CharacterMap:   wedgecal.CharacterMap{'A': "A", 'B': "!"},
		DeadKeyMap:     wedgecal.DeadKeyMap{"\x00a": 'A'},
		LigatureMap:    wedgecal.LigatureMap{"ae": "A"},
		DetectedSuffix: "\r",
		EOLStyle:       "LF",
		Advice: []wedgecal.AdviceItem{
			{Type: wedgecal.AdviceReadsInvariantCharactersReliably, Severity: wedgecal.SeverityInfo, Message: "ok"},
		},
		Errors:    []error{wedgecal.ErrCancelledByUser},
		Cancelled: true,
	}

	var codec Codec
	data, err := codec.Encode(report)
	require.NoError(t, err)

	require.True(t, gjson.GetBytes(data, "character_map.A").Exists())
	require.Equal(t, "!", gjson.GetBytes(data, "character_map.B").String())
	require.Equal(t, "LF", gjson.GetBytes(data, "eol_style").String())
	require.Equal(t, "ok", gjson.GetBytes(data, "advice.0.message").String())

	decoded, err := codec.Decode(data)
	require.NoError(t, err)
	require.Equal(t, report.DetectedSuffix, decoded.DetectedSuffix)
	require.Equal(t, report.EOLStyle, decoded.EOLStyle)
	require.Equal(t, report.CharacterMap, decoded.CharacterMap)
	require.Equal(t, report.DeadKeyMap, decoded.DeadKeyMap)
	require.Equal(t, report.LigatureMap, decoded.LigatureMap)
	require.True(t, decoded.Cancelled)
	require.Len(t, decoded.Errors, 1)
	require.Equal(t, wedgecal.ErrCancelledByUser.Error(), decoded.Errors[0].Error())
}

func TestCodecDecodeMalformedKey(t *testing.T) {
	var codec Codec
	_, err := codec.Decode([]byte(`{"character_map":{"AB":"x"}}`))
	require.Error(t, err)
}
