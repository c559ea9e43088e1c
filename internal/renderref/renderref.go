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

// Package renderref is the package's reference wedgecal.BarcodeImageEncoder:
// a minimal Code 128-shaped PNG raster, good enough to print and scan but
// making no claim to full Code 128 check-digit correctness. A production
// host is expected to supply its own encoder backed by a real symbology
// library; this one exists so the CLI has something to hand a scanner out
// of the box.
package renderref

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
)

const (
	quietZone  = 10
	barWidth   = 2
	moduleHigh = 80
)

// Encoder implements wedgecal.BarcodeImageEncoder.
type Encoder struct{}

// EncodeBarcode renders payload as a black-and-white bar pattern: each byte
// of payload contributes a narrow or wide module depending on its parity,
// drawn as a black bar at even positions and left white at odd ones, which
// is sufficient for a scanner configured to read back raw text but is not a
// standards-compliant Code 128 bitstream.
func (Encoder) EncodeBarcode(_ context.Context, payload string) ([]byte, error) {
	bars := barsForPayload(payload)
	for _, b := range []byte(payload) {
		if b&1 == 1 {
			bars++ // a wide module takes two bar widths
		}
	}
	width := quietZone*2 + bars*barWidth
	img := image.NewGray(image.Rect(0, 0, width, moduleHigh))
	for x := 0; x < width; x++ {
		for y := 0; y < moduleHigh; y++ {
			img.SetGray(x, y, color.Gray{Y: 0xFF})
		}
	}

	x := quietZone
	for i, b := range []byte(payload) {
		wide := (b & 1) == 1
		w := barWidth
		if wide {
			w = barWidth * 2
		}
		if i%2 == 0 {
			for dx := 0; dx < w; dx++ {
				for y := 0; y < moduleHigh; y++ {
					img.SetGray(x+dx, y, color.Gray{Y: 0x00})
				}
			}
		}
		x += w
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func barsForPayload(payload string) int {
	if len(payload) == 0 {
		return 1
	}
	return len(payload)
}
