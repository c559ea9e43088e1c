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

// Package jsonref is the package's reference wedgecal.RecordCodec: a plain
// encoding/json rendering of a ScanReport, stable enough to diff between
// calibration runs or archive as calibration history.
package jsonref

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ossbarcode/wedgecal"
)

// Codec implements wedgecal.RecordCodec using encoding/json.
type Codec struct{}

// wireAmbiguity and wireReport give the on-disk JSON shape stable field
// names independent of the in-memory ScanReport's rune-keyed maps, which
// encoding/json cannot marshal directly as object keys without conversion.
type wireAmbiguity struct {
	Candidates string `json:"candidates"`
	Reported   string `json:"reported"`
	Resolved   string `json:"resolved,omitempty"`
	ResolvedBy string `json:"resolved_by,omitempty"`
}

type wireAdvice struct {
	Type     int    `json:"type"`
	Severity int    `json:"severity"`
	Message  string `json:"message"`
	Chars    string `json:"chars,omitempty"`
}

type wireReport struct {
	CharacterMap   map[string]string `json:"character_map"`
	DeadKeyMap     map[string]string `json:"dead_key_map"`
	LigatureMap    map[string]string `json:"ligature_map"`
	Ambiguities    []wireAmbiguity   `json:"ambiguities,omitempty"`
	DetectedSuffix string            `json:"detected_suffix,omitempty"`
	EOLStyle       string            `json:"eol_style,omitempty"`
	Advice         []wireAdvice      `json:"advice"`
	TimingNanos    int64             `json:"timing_nanos"`
	TimingBucket   int               `json:"timing_bucket"`
	Errors         []string          `json:"errors,omitempty"`
	Cancelled      bool              `json:"cancelled,omitempty"`
}

// Encode renders report as indented JSON.
func (Codec) Encode(report *wedgecal.ScanReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("jsonref: nil report")
	}
	w := wireReport{
		CharacterMap:   map[string]string{},
		DeadKeyMap:     map[string]string{},
		LigatureMap:    map[string]string(report.LigatureMap),
		DetectedSuffix: report.DetectedSuffix,
		EOLStyle:       report.EOLStyle,
		TimingNanos:    int64(report.Timing.TotalDuration),
		TimingBucket:   int(report.Timing.Bucket),
		Cancelled:      report.Cancelled,
	}
	for k, r := range report.DeadKeyMap {
		w.DeadKeyMap[k] = string(r)
	}
	for _, e := range report.Errors {
		w.Errors = append(w.Errors, e.Error())
	}
	for c, s := range report.CharacterMap {
		w.CharacterMap[string(c)] = s
	}
	for _, a := range report.Ambiguities {
		w.Ambiguities = append(w.Ambiguities, wireAmbiguity{
			Candidates: string(a.Candidates),
			Reported:   a.Reported,
			Resolved:   string(a.Resolved),
			ResolvedBy: a.ResolvedBy,
		})
	}
	for _, item := range report.Advice {
		w.Advice = append(w.Advice, wireAdvice{
			Type:     int(item.Type),
			Severity: int(item.Severity),
			Message:  item.Message,
			Chars:    string(item.Chars),
		})
	}
	sort.Slice(w.Advice, func(i, j int) bool {
		if w.Advice[i].Severity != w.Advice[j].Severity {
			return w.Advice[i].Severity > w.Advice[j].Severity
		}
		return w.Advice[i].Type < w.Advice[j].Type
	})
	return json.MarshalIndent(w, "", "  ")
}

// Decode parses data back into a ScanReport.
func (Codec) Decode(data []byte) (*wedgecal.ScanReport, error) {
	var w wireReport
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("jsonref: decode: %w", err)
	}
	report := &wedgecal.ScanReport{
		CharacterMap:   wedgecal.CharacterMap{},
		DeadKeyMap:     wedgecal.DeadKeyMap{},
		LigatureMap:    wedgecal.LigatureMap(w.LigatureMap),
		DetectedSuffix: w.DetectedSuffix,
		EOLStyle:       w.EOLStyle,
		Timing: wedgecal.Timing{
			TotalDuration: time.Duration(w.TimingNanos),
			Bucket:        wedgecal.PerformanceBucket(w.TimingBucket),
		},
		Cancelled: w.Cancelled,
	}
	for _, msg := range w.Errors {
		report.Errors = append(report.Errors, errors.New(msg))
	}
	for c, s := range w.CharacterMap {
		cr := []rune(c)
		if len(cr) != 1 {
			return nil, fmt.Errorf("jsonref: malformed character_map key %q", c)
		}
		report.CharacterMap[cr[0]] = s
	}
	for k, v := range w.DeadKeyMap {
		vr := []rune(v)
		if len(vr) != 1 {
			return nil, fmt.Errorf("jsonref: malformed dead_key_map value %q", v)
		}
		report.DeadKeyMap[k] = vr[0]
	}
	for _, a := range w.Ambiguities {
		resolved := rune(0)
		if rr := []rune(a.Resolved); len(rr) == 1 {
			resolved = rr[0]
		}
		report.Ambiguities = append(report.Ambiguities, wedgecal.Ambiguity{
			Candidates: []rune(a.Candidates),
			Reported:   a.Reported,
			Resolved:   resolved,
			ResolvedBy: a.ResolvedBy,
		})
	}
	for _, item := range w.Advice {
		report.Advice = append(report.Advice, wedgecal.AdviceItem{
			Type:     wedgecal.AdviceType(item.Type),
			Severity: wedgecal.Severity(item.Severity),
			Message:  item.Message,
			Chars:    []rune(item.Chars),
		})
	}
	return report, nil
}
