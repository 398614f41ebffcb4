// Copyright (c) 2024 Recep Aslantas
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0

package huff

// fastEntry is one slot of a Table's direct-indexed fast lookup. When len
// is non-zero, the entry fully decodes any bitstream whose relevant
// FastBits window equals the slot's index: sym is the symbol, len its
// codeword length. When len is zero the slot is a miss; in tables built by
// BuildLSB, rev then holds the full 8-bit reversal of the slot's index,
// precomputed so the slow path never has to compute it itself. BuildMSB
// and BuildLSBFastOnly leave rev at zero.
type fastEntry struct {
	sym uint16
	len uint8
	rev uint8
}

// Table is a decode-ready canonical-Huffman table built by BuildLSB or
// BuildMSB. It is a plain value: once built, it is immutable and safe to
// share across goroutines for concurrent decoding.
type Table struct {
	fast      [FastSize]fastEntry
	sentinels [MaxCodeLength + 1]uint32
	offsets   [MaxCodeLength + 1]int32
	syms      []uint16
}

// NumSymbols reports the number of symbols with a non-zero length that
// were folded into the table.
func (t *Table) NumSymbols() int { return len(t.syms) }

// fastEntryExt extends fastEntry with the "extra bits" descriptor needed
// to decode a DEFLATE-style length/distance code in one call: on a fast
// hit the decoder returns base + ((bits >> len) & mask), consuming total
// bits in one step.
type fastEntryExt struct {
	sym   uint16
	len   uint8
	rev   uint8
	base  uint32
	mask  uint32
	total uint8
}

// Extra describes the extra-bits parameterization of one symbol's value:
// value = Base + (the next Bits bits, read as an unsigned integer).
type Extra struct {
	Base uint32
	Bits uint8
}

// TableExt is a Table whose fast/slow paths additionally fold in an
// Extra lookup, so that decoding a symbol and its trailing extra-bits
// value happens in a single call. Extras is indexed by symbol-Offset;
// symbols below Offset (e.g. DEFLATE literals, which carry no extra bits)
// decode with total == len and no contribution from Extras.
type TableExt struct {
	fast      [FastSize]fastEntryExt
	sentinels [MaxCodeLength + 1]uint32
	offsets   [MaxCodeLength + 1]int32
	syms      []uint16
	extras    []Extra
	offset    int
}

// NumSymbols reports the number of symbols with a non-zero length that
// were folded into the table.
func (t *TableExt) NumSymbols() int { return len(t.syms) }
