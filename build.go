// Copyright (c) 2024 Recep Aslantas
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0

package huff

// buildCore computes the histogram, per-length starting code, per-length
// starting symbol index, sentinels and offsets shared by every builder in
// this file. code and symIdx are returned as running counters: callers
// mutate them in place while walking the input a second time to place
// symbols into Table.syms and to materialize the fast table, exactly as
// the canonical-Huffman reference does (one counter per length, advanced
// once per symbol of that length, in ascending input-index order).
func buildCore(lengths []byte) (count, code, symIdx, sentinels [MaxCodeLength + 1]uint32, offsets [MaxCodeLength + 1]int32, numSyms int, err error) {
	for _, l := range lengths {
		if l > MaxCodeLength {
			err = ErrInvalidLength
			return
		}
		if l == 0 {
			continue
		}
		count[l]++
		numSyms++
	}

	var prevCode, prevSymIdx uint32
	for l := 1; l <= MaxCodeLength; l++ {
		code[l] = (prevCode + count[l-1]) << 1
		symIdx[l] = prevSymIdx + count[l-1]
		sentinels[l] = code[l] + count[l]
		offsets[l] = int32(symIdx[l]) - int32(code[l])
		prevCode = code[l]
		prevSymIdx = symIdx[l]
	}
	return
}

// kraftTotal returns Σ count[l]*2^(MaxCodeLength-l), the Kraft sum scaled
// by 2^MaxCodeLength. It equals 1<<MaxCodeLength exactly for a complete
// code, is smaller for an incomplete one, and larger for an
// over-subscribed one.
func kraftTotal(count [MaxCodeLength + 1]uint32) uint64 {
	var total uint64
	for l := 1; l <= MaxCodeLength; l++ {
		total += uint64(count[l]) << uint(MaxCodeLength-l)
	}
	return total
}

func checkKraft(count [MaxCodeLength + 1]uint32) error {
	total := kraftTotal(count)
	full := uint64(1) << MaxCodeLength
	switch {
	case total > full:
		return ErrOverSubscribed
	case total < full:
		return ErrIncomplete
	}
	return nil
}

func symbolOf(i int, alphabet []uint16) uint16 {
	if alphabet != nil {
		return alphabet[i]
	}
	return uint16(i)
}

// BuildLSB builds a Table for decoding LSB-first bitstreams (as in
// DEFLATE) from a table of per-symbol codeword bit-lengths. If alphabet is
// non-nil, alphabet[i] is the external symbol id for dense index i;
// otherwise the identity mapping is used. An over-subscribed or
// incomplete length table is accepted permissively; use BuildLSBStrict to
// reject either.
func BuildLSB(lengths []byte, alphabet []uint16) (*Table, error) {
	return buildLSB(lengths, alphabet, false)
}

// BuildLSBStrict is BuildLSB, but rejects over-subscribed (ErrOverSubscribed)
// and incomplete (ErrIncomplete) length tables.
func BuildLSBStrict(lengths []byte, alphabet []uint16) (*Table, error) {
	return buildLSB(lengths, alphabet, true)
}

func buildLSB(lengths []byte, alphabet []uint16, strict bool) (*Table, error) {
	if len(lengths) > MaxSymbols {
		return nil, ErrTooManySymbols
	}
	count, code, symIdx, sentinels, offsets, numSyms, err := buildCore(lengths)
	if err != nil {
		return nil, err
	}
	if strict {
		if err := checkKraft(count); err != nil {
			return nil, err
		}
	}

	t := &Table{sentinels: sentinels, offsets: offsets, syms: make([]uint16, numSyms)}
	for i, l := range lengths {
		if l == 0 {
			continue
		}
		sym := symbolOf(i, alphabet)
		t.syms[symIdx[l]] = sym
		symIdx[l]++

		if l <= FastBits {
			c := byte(code[l])
			code[l]++
			code8 := Reverse8(c, uint(l))
			padLen := FastBits - int(l)
			for pad := 0; pad < 1<<padLen; pad++ {
				idx := code8 | byte(pad<<l)
				t.fast[idx] = fastEntry{sym: sym, len: l}
			}
		}
	}
	for i := range t.fast {
		if t.fast[i].len == 0 {
			t.fast[i].rev = Reverse8Full(byte(i))
		}
	}
	return t, nil
}

// BuildMSB builds a Table for decoding MSB-first bitstreams (as in JPEG)
// from a table of per-symbol codeword bit-lengths. See BuildLSB for the
// meaning of alphabet.
func BuildMSB(lengths []byte, alphabet []uint16) (*Table, error) {
	return buildMSB(lengths, alphabet, false)
}

// BuildMSBStrict is BuildMSB, but rejects over-subscribed and incomplete
// length tables.
func BuildMSBStrict(lengths []byte, alphabet []uint16) (*Table, error) {
	return buildMSB(lengths, alphabet, true)
}

func buildMSB(lengths []byte, alphabet []uint16, strict bool) (*Table, error) {
	if len(lengths) > MaxSymbols {
		return nil, ErrTooManySymbols
	}
	count, code, symIdx, sentinels, offsets, numSyms, err := buildCore(lengths)
	if err != nil {
		return nil, err
	}
	if strict {
		if err := checkKraft(count); err != nil {
			return nil, err
		}
	}

	t := &Table{sentinels: sentinels, offsets: offsets, syms: make([]uint16, numSyms)}
	for i, l := range lengths {
		if l == 0 {
			continue
		}
		sym := symbolOf(i, alphabet)
		t.syms[symIdx[l]] = sym
		symIdx[l]++

		if l <= FastBits {
			c := byte(code[l])
			code[l]++
			padLen := FastBits - int(l)
			idxBase := c << uint(padLen)
			for pad := 0; pad < 1<<padLen; pad++ {
				t.fast[idxBase+byte(pad)] = fastEntry{sym: sym, len: l}
			}
		}
	}
	return t, nil
}

// BuildLSBExt builds a TableExt for decoding LSB-first bitstreams whose
// symbols carry "extra bits" immediately following the codeword (DEFLATE
// length/distance codes, Brotli offsets). extras is indexed by symbol id
// directly (offset 0); use BuildLSBExtOffset when the extras range is
// shifted, as DEFLATE's length alphabet shifts it by 257.
func BuildLSBExt(lengths []byte, alphabet []uint16, extras []Extra) (*TableExt, error) {
	return BuildLSBExtOffset(lengths, alphabet, extras, 0)
}

// BuildLSBExtOffset is BuildLSBExt with an explicit extras offset: a
// symbol sym carries extra bits extras[sym-offset] only when sym >=
// offset; symbols below offset decode with no extra bits and a value of
// 0 (total_len == len). extras
// must cover every coded symbol at or above offset, including symbols
// that a conforming stream never emits but the code still assigns a
// length to.
func BuildLSBExtOffset(lengths []byte, alphabet []uint16, extras []Extra, offset int) (*TableExt, error) {
	if len(lengths) > MaxSymbols {
		return nil, ErrTooManySymbols
	}
	_, code, symIdx, sentinels, offsets, numSyms, err := buildCore(lengths)
	if err != nil {
		return nil, err
	}

	t := &TableExt{
		sentinels: sentinels,
		offsets:   offsets,
		syms:      make([]uint16, numSyms),
		extras:    extras,
		offset:    offset,
	}
	for i, l := range lengths {
		if l == 0 {
			continue
		}
		sym := symbolOf(i, alphabet)
		t.syms[symIdx[l]] = sym
		symIdx[l]++

		if l <= FastBits {
			c := byte(code[l])
			code[l]++
			code8 := Reverse8(c, uint(l))
			padLen := FastBits - int(l)

			var base, mask uint32
			total := l
			if int(sym) >= offset {
				ext := extras[int(sym)-offset]
				base = ext.Base
				mask = uint32(1)<<ext.Bits - 1
				total = l + ext.Bits
			}
			for pad := 0; pad < 1<<padLen; pad++ {
				idx := code8 | byte(pad<<l)
				t.fast[idx] = fastEntryExt{sym: sym, len: l, base: base, mask: mask, total: total}
			}
		}
	}
	for i := range t.fast {
		if t.fast[i].len == 0 {
			t.fast[i].rev = Reverse8Full(byte(i))
		}
	}
	return t, nil
}

// BuildLSBFastOnly builds a fast-table-only Table for callers that only
// care about codes of length <= FastBits, such as a quick probe or a
// benchmark table: lengths longer than FastBits are simply absent from
// the table, and decode against such a table correctly reports failure
// for them (the slow path's sentinels are left at their zero value, so
// every length-9-and-up comparison fails immediately) rather than
// consulting an unbuilt symbol array.
func BuildLSBFastOnly(lengths []byte, alphabet []uint16) *Table {
	t := &Table{}
	var count [FastBits + 1]uint32
	for _, l := range lengths {
		if l > 0 && l <= FastBits {
			count[l]++
		}
	}
	var code [FastBits + 1]uint32
	var prev uint32
	for l := 1; l <= FastBits; l++ {
		code[l] = (prev + count[l-1]) << 1
		prev = code[l]
	}
	for i, l := range lengths {
		if l == 0 || l > FastBits {
			continue
		}
		sym := symbolOf(i, alphabet)
		c := byte(code[l])
		code[l]++
		code8 := Reverse8(c, uint(l))
		padLen := FastBits - int(l)
		for pad := 0; pad < 1<<padLen; pad++ {
			idx := code8 | byte(pad<<l)
			t.fast[idx] = fastEntry{sym: sym, len: l}
		}
	}
	return t
}
