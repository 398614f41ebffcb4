// Copyright (c) 2024 Recep Aslantas
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0

package huff

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/klauspost/compress/flate"

	"github.com/recp/huff/internal/testutil"
)

// This file cross-validates the decode core against real raw-DEFLATE
// streams produced by a real third-party encoder (klauspost/compress's
// flate.Writer in HuffmanOnly mode, which emits Huffman-coded literals
// with no LZ77 matching). It implements just enough of RFC 1951's block
// framing — fixed and dynamic Huffman tables, the code-length alphabet's
// repeat codes, and literal/length/distance decoding — to drive BuildLSB,
// BuildLSBExtOffset and DecodeLSB/DecodeLSBExtWithSym end to end.

// deflateLenExtras is RFC 1951 §3.2.5's length-code table: symbol 257+i
// has base length deflateLenExtras[i].Base and deflateLenExtras[i].Bits
// extra bits. Symbols 286 and 287 participate in the fixed code's
// construction but never occur in a conforming stream; their entries are
// placeholders so the table covers every coded symbol.
var deflateLenExtras = [31]Extra{
	{3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0}, {8, 0}, {9, 0}, {10, 0},
	{11, 1}, {13, 1}, {15, 1}, {17, 1},
	{19, 2}, {23, 2}, {27, 2}, {31, 2},
	{35, 3}, {43, 3}, {51, 3}, {59, 3},
	{67, 4}, {83, 4}, {99, 4}, {115, 4},
	{131, 5}, {163, 5}, {195, 5}, {227, 5},
	{258, 0},
	{0, 0}, {0, 0},
}

// deflateDistExtras is RFC 1951 §3.2.5's distance-code table, padded with
// placeholders for the two reserved symbols 30 and 31 that the fixed code
// assigns lengths to.
var deflateDistExtras = [32]Extra{
	{1, 0}, {2, 0}, {3, 0}, {4, 0},
	{5, 1}, {7, 1},
	{9, 2}, {13, 2},
	{17, 3}, {25, 3},
	{33, 4}, {49, 4},
	{65, 5}, {97, 5},
	{129, 6}, {193, 6},
	{257, 7}, {385, 7},
	{513, 8}, {769, 8},
	{1025, 9}, {1537, 9},
	{2049, 10}, {3073, 10},
	{4097, 11}, {6145, 11},
	{8193, 12}, {12289, 12},
	{16385, 13}, {24577, 13},
	{0, 0}, {0, 0},
}

// deflateClenOrder is RFC 1951 §3.2.7's order in which code-length-alphabet
// lengths are transmitted.
var deflateClenOrder = [19]byte{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

func fixedLitLengths() []byte {
	lengths := make([]byte, 288)
	for i := 0; i < 144; i++ {
		lengths[i] = 8
	}
	for i := 144; i < 256; i++ {
		lengths[i] = 9
	}
	for i := 256; i < 280; i++ {
		lengths[i] = 7
	}
	for i := 280; i < 288; i++ {
		lengths[i] = 8
	}
	return lengths
}

func fixedDistLengths() []byte {
	lengths := make([]byte, 32)
	for i := range lengths {
		lengths[i] = 5
	}
	return lengths
}

// readBitsN reads exactly n bits (n <= 32) from cur as an unsigned
// integer, rewinding the cursor past whatever Read over-fetched.
func readBitsN(cur *BitCursor, end int, n uint8) uint32 {
	word, nbits := Read(cur, end)
	cur.Advance(int(n) - int(nbits))
	if n == 0 {
		return 0
	}
	return uint32(word & (1<<n - 1))
}

func decodeDeflateSymbol(cur *BitCursor, end int, table *TableExt) (sym uint16, value uint32, err error) {
	word, nbits := Read(cur, end)
	sym, value, used := table.DecodeLSBExtWithSym(word, nbits)
	if sym == SymbolNone {
		return 0, 0, Error("exhausted bits decoding a symbol")
	}
	cur.Advance(int(used) - int(nbits))
	return sym, value, nil
}

func readDynamicTables(cur *BitCursor, end int) (litTable, distTable *TableExt, err error) {
	hlit := int(readBitsN(cur, end, 5)) + 257
	hdist := int(readBitsN(cur, end, 5)) + 1
	hclen := int(readBitsN(cur, end, 4)) + 4

	var clenLengths [19]byte
	for i := 0; i < hclen; i++ {
		clenLengths[deflateClenOrder[i]] = byte(readBitsN(cur, end, 3))
	}
	clenTable, err := BuildLSB(clenLengths[:], nil)
	if err != nil {
		return nil, nil, err
	}

	total := hlit + hdist
	lengths := make([]byte, 0, total)
	for len(lengths) < total {
		word, nbits := Read(cur, end)
		sym, used := clenTable.DecodeLSB(word, nbits)
		if sym == SymbolNone {
			return nil, nil, Error("exhausted bits decoding a code-length symbol")
		}
		cur.Advance(int(used) - int(nbits))

		switch {
		case sym <= 15:
			lengths = append(lengths, byte(sym))
		case sym == 16:
			if len(lengths) == 0 {
				return nil, nil, Error("repeat-previous code-length with no previous entry")
			}
			n := int(readBitsN(cur, end, 2)) + 3
			prev := lengths[len(lengths)-1]
			for i := 0; i < n; i++ {
				lengths = append(lengths, prev)
			}
		case sym == 17:
			n := int(readBitsN(cur, end, 3)) + 3
			for i := 0; i < n; i++ {
				lengths = append(lengths, 0)
			}
		case sym == 18:
			n := int(readBitsN(cur, end, 7)) + 11
			for i := 0; i < n; i++ {
				lengths = append(lengths, 0)
			}
		default:
			return nil, nil, Error("invalid code-length symbol")
		}
	}
	if len(lengths) != total {
		return nil, nil, Error("code-length stream overran its declared size")
	}

	litTable, err = BuildLSBExtOffset(lengths[:hlit], nil, deflateLenExtras[:], 257)
	if err != nil {
		return nil, nil, err
	}
	distTable, err = BuildLSBExt(lengths[hlit:], nil, deflateDistExtras[:])
	if err != nil {
		return nil, nil, err
	}
	return litTable, distTable, nil
}

// decodeRawDeflate decodes a headerless DEFLATE stream (no zlib/gzip
// wrapper) written with stored, fixed or dynamic Huffman blocks. A
// HuffmanOnly writer mostly emits Huffman blocks but may still store a
// block it would otherwise expand.
func decodeRawDeflate(data []byte) ([]byte, error) {
	cur := &BitCursor{Buf: data}
	end := len(data)
	var out []byte

	for {
		final := readBitsN(cur, end, 1)
		btype := readBitsN(cur, end, 2)

		var litTable, distTable *TableExt
		switch btype {
		case 0:
			if cur.BitInByte != 0 {
				cur.Advance(8 - int(cur.BitInByte))
			}
			length := int(readBitsN(cur, end, 16))
			nlength := int(readBitsN(cur, end, 16))
			if length != ^nlength&0xFFFF {
				return nil, Error("stored block length check failed")
			}
			if cur.BytePtr+length > end {
				return nil, Error("stored block overruns the stream")
			}
			out = append(out, data[cur.BytePtr:cur.BytePtr+length]...)
			cur.Advance(length * 8)
			if final == 1 {
				return out, nil
			}
			continue
		case 1:
			var err error
			litTable, err = BuildLSBExtOffset(fixedLitLengths(), nil, deflateLenExtras[:], 257)
			if err != nil {
				return nil, err
			}
			distTable, err = BuildLSBExt(fixedDistLengths(), nil, deflateDistExtras[:])
			if err != nil {
				return nil, err
			}
		case 2:
			var err error
			litTable, distTable, err = readDynamicTables(cur, end)
			if err != nil {
				return nil, err
			}
		default:
			return nil, Error("reserved block type")
		}

		for {
			sym, length, err := decodeDeflateSymbol(cur, end, litTable)
			if err != nil {
				return nil, err
			}
			switch {
			case sym < 256:
				out = append(out, byte(sym))
			case sym == 256:
				goto blockDone
			default:
				distSym, distance, err := decodeDeflateSymbol(cur, end, distTable)
				if err != nil {
					return nil, err
				}
				_ = distSym
				start := len(out) - int(distance)
				if start < 0 || distance == 0 {
					return nil, Error("invalid back-reference distance")
				}
				for i := 0; i < int(length); i++ {
					out = append(out, out[start+i])
				}
			}
		}
	blockDone:
		if final == 1 {
			return out, nil
		}
	}
}

func TestIntegrationDeflateRoundTrip(t *testing.T) {
	inputs := [][]byte{
		[]byte("hello, world"),
		[]byte(strings.Repeat("abcdefgh", 37) + "!"),
		bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7}, 50),
		[]byte("the quick brown fox jumps over the lazy dog, repeatedly, " +
			"the quick brown fox jumps over the lazy dog"),
		testutil.ResizeData(testutil.MustDecodeHex("0123456789abcdeffedcba98"), 4096),
	}

	for _, in := range inputs {
		var buf bytes.Buffer
		w, err := flate.NewWriter(&buf, flate.HuffmanOnly)
		if err != nil {
			t.Fatalf("flate.NewWriter: %v", err)
		}
		if _, err := w.Write(in); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}

		got, err := decodeRawDeflate(buf.Bytes())
		if err != nil {
			t.Fatalf("decodeRawDeflate (input len %d): %v", len(in), err)
		}
		if diff := cmp.Diff(in, got, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("round-trip mismatch for input len %d:\n%s", len(in), diff)
		}
	}
}
