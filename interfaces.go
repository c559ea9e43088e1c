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

import "context"

// BarcodeImageEncoder renders a probe payload as a scannable barcode image,
// e.g. Code 128 per spec.md §6. Implementations are supplied by the host
// application; this package never draws pixels itself, the same division
// of labor tcell keeps between its own Screen interface (input/output
// plumbing) and a caller-supplied rendering layer.
type BarcodeImageEncoder interface {
	// EncodeBarcode renders payload and returns an encoded image (e.g.
	// PNG) ready to print or display.
	EncodeBarcode(ctx context.Context, payload string) ([]byte, error)
}

// MessageCatalog resolves a message key (and optional named arguments) to
// operator-facing text, so the CLI and any embedding host can be
// localised without touching this package.
type MessageCatalog interface {
	// Message returns the localised text for key, formatted with args.
	Message(key string, args map[string]string) string
}

// DataElementValidator checks a decoded data element against whatever
// syntax rules the host cares about (GS1 application identifiers, ASC MH
// 10.8.2 data identifiers, or a private scheme). Nothing in this package
// calls it; Ambiguity resolution uses the configured RecognisedDataElement
// list, and a host reports a failed validation via Session.RecordInputError.
type DataElementValidator interface {
	// Validate reports whether identifier is a legal element under
	// syntax, and if not, a reason an operator can read.
	Validate(syntax RecognisedSyntax, identifier string) (bool, string)
}

// RecordCodec serializes and deserializes a ScanReport for storage or
// transport, e.g. as JSON or as rows in a calibration history table.
// internal/jsonref supplies the package's own reference implementation.
type RecordCodec interface {
	Encode(report *ScanReport) ([]byte, error)
	Decode(data []byte) (*ScanReport, error)
}
