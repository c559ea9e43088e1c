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

// Package wedgecal calibrates application software to the joint behavior of
// a keyboard-wedge barcode scanner and the operating-system keyboard layout
// installed on the host.
//
// A scanner emits key events as if a keyboard were typing. When the
// scanner's configured layout differs from the host's, the characters
// delivered to an application are not the characters encoded in the
// barcode. Session drives a sequence of probe barcodes, classifies what the
// host reports for each, and infers a CharacterMap, DeadKeyMap and
// LigatureMap that together undo the mismatch. Normalize then applies those
// maps to recover the original payload from live scanner input.
//
// The package renders no images, drives no hardware and supplies no
// translated strings: it depends on small interfaces (BarcodeImageEncoder,
// MessageCatalog, DataElementValidator, RecordCodec) for those concerns,
// leaving the caller to supply concrete implementations.
package wedgecal
