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

// Package localeref is the package's reference wedgecal.MessageCatalog: a
// small, compiled-in English catalog good enough to drive the CLI without
// pulling in a translation framework.
package localeref

import "strings"

// Catalog implements wedgecal.MessageCatalog with a fixed English message
// table. Unknown keys pass through unchanged so a missing translation is
// visible rather than silently swallowed.
type Catalog struct {
	messages map[string]string
}

// English returns the built-in English Catalog.
func English() *Catalog {
	return &Catalog{messages: map[string]string{
		"scan.next-probe":      "Scan this barcode now: {payload}",
		"scan.awaiting-report": "Waiting for the host to report what the scanner sent...",
		"scan.cancelled":       "Calibration cancelled by operator ({signal}).",
		"result.clean":         "Calibration finished with no findings.",
		"result.header":        "Calibration report for {device}",
		"advice.character-dropped":   "Character {char} was never reported by the host.",
		"advice.ambiguous-mapping":   "Characters {chars} all report as the same text.",
		"advice.dead-key-detected":   "A dead key intercepts character {char}.",
		"advice.ligature-detected":   "Keystroke {key} produces extra output characters.",
		"advice.suffix-detected":     "Every baseline segment report carries a fixed suffix.",
	}}
}

// Message looks up key and substitutes {name} placeholders from args.
func (c *Catalog) Message(key string, args map[string]string) string {
	msg, ok := c.messages[key]
	if !ok {
		return key
	}
	for name, value := range args {
		msg = strings.ReplaceAll(msg, "{"+name+"}", value)
	}
	return msg
}
