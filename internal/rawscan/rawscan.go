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

// Package rawscan captures a keyboard-wedge scanner's keystrokes straight
// off a terminal file descriptor, bypassing the line discipline so that a
// scanner-typed Enter (or any other control character) never gets
// intercepted or translated before this package sees it. It is the
// package's only component that reads a terminal directly; everything in
// the parent package is synchronous and channel-free.
package rawscan

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/ossbarcode/wedgecal"
)

// Reader captures one probe's worth of scanner input from an *os.File
// placed in raw mode, recording per-byte arrival timestamps so the caller
// can classify the reply's PerformanceBucket.
type Reader struct {
	f        *os.File
	oldState *term.State
	// Charset names the host terminal's codeset, as wedgecal.DecodeReport
	// expects it (e.g. "ISO8859-15"). Empty means UTF-8.
	Charset string
}

// Open puts f into raw terminal mode and returns a Reader over it. Restore
// must be called once the caller is done reading from it.
func Open(f *os.File) (*Reader, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("rawscan: fd %d is not a terminal", fd)
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("rawscan: enter raw mode: %w", err)
	}
	return &Reader{f: f, oldState: old}, nil
}

// Restore returns the terminal to its prior mode.
func (r *Reader) Restore() error {
	if r.oldState == nil {
		return nil
	}
	return term.Restore(int(r.f.Fd()), r.oldState)
}

// sample pairs one captured byte with the moment it arrived.
type sample struct {
	b  byte
	at time.Time
}

// ReadLine reads bytes until a bare LF or CR (or ctx cancellation),
// decodes them using r.Charset, and returns the result verbatim (EOL
// included, since the core package's own StripTrailingEOL is responsible
// for removing it) along with reconstructed Timing.
func (r *Reader) ReadLine(ctx context.Context) (string, wedgecal.Timing, error) {
	br := bufio.NewReader(r.f)
	var samples []sample
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return r.decode(samples), timingFromSamples(samples, start), ctx.Err()
		default:
		}
		b, err := br.ReadByte()
		if err != nil {
			return r.decode(samples), timingFromSamples(samples, start), err
		}
		now := time.Now()
		samples = append(samples, sample{b: b, at: now})
		if b == '\n' || b == '\r' {
			return r.decode(samples), timingFromSamples(samples, start), nil
		}
	}
}

func (r *Reader) decode(samples []sample) string {
	raw := make([]byte, len(samples))
	for i, s := range samples {
		raw[i] = s.b
	}
	text, err := wedgecal.DecodeReport(raw, r.Charset)
	if err != nil {
		return string(raw)
	}
	return text
}

// timingFromSamples classifies inter-keystroke gaps: a scanner driving a
// keyboard-wedge interface emits a whole payload over a handful of
// milliseconds, while a human keying the same text manually leaves gaps
// an order of magnitude larger.
func timingFromSamples(samples []sample, start time.Time) wedgecal.Timing {
	if len(samples) == 0 {
		return wedgecal.Timing{Bucket: wedgecal.PerformanceUnknown}
	}
	total := samples[len(samples)-1].at.Sub(start)

	const machineGap = 5 * time.Millisecond
	const slowGap = 500 * time.Millisecond
	machineSpeed := true
	slow := false
	prev := start
	for _, s := range samples {
		gap := s.at.Sub(prev)
		if gap > machineGap {
			machineSpeed = false
		}
		if gap > slowGap {
			slow = true
		}
		prev = s.at
	}

	bucket := wedgecal.PerformanceHumanTyped
	switch {
	case machineSpeed:
		bucket = wedgecal.PerformanceMachineSpeed
	case slow:
		bucket = wedgecal.PerformanceSlow
	}
	return wedgecal.Timing{TotalDuration: total, Bucket: bucket}
}
