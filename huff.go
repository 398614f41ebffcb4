// Copyright (c) 2024 Recep Aslantas
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0

// Package huff implements a reusable canonical-Huffman decoding core,
// shared as a primitive by higher-level codecs such as DEFLATE, JPEG, and
// HPACK. It builds a decode-ready table from a table of per-symbol
// codeword bit-lengths, and decodes individual symbols from a bit-level
// input buffer in either LSB-first (DEFLATE) or MSB-first (JPEG) order.
//
// The package owns no input buffers and performs no I/O; callers own the
// length array, the optional symbol and extras arrays, the input byte
// buffer, and the resulting Table or TableExt. Decoding never allocates,
// never logs, and never panics on malformed input or exhausted bits —
// failure is always signalled through a return value.
package huff

// Compile-time knobs. Raising MaxCodeLength expands sentinels, offsets,
// and the number of slow-path iterations linearly; it is fixed here to
// cover both DEFLATE (15) and JPEG (16).
const (
	MaxCodeLength = 16 // maximum codeword length in bits
	FastBits      = 8  // width of the direct-indexed fast table
	FastSize      = 1 << FastBits
	MaxSymbols    = 288 // DEFLATE literal/length alphabet, the largest in scope
	WordBits      = 64  // width of the bit-reader working register
)

// SymbolNone is the out-of-alphabet sentinel returned by a failed decode,
// always paired with a used-bits count of 0.
const SymbolNone = 0xFFFF

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "huff: " + string(e) }
