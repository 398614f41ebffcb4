// Copyright (c) 2024 Recep Aslantas
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0

package huff

// DecodeLSB decodes one symbol from an LSB-first bitstream. bits holds at
// least bitLength valid low-order bits (bits beyond bitLength are
// ignored); used reports how many of those bits the codeword consumed.
// On failure — no codeword matches within bitLength bits — it returns
// (SymbolNone, 0).
func (t *Table) DecodeLSB(bits uint64, bitLength uint8) (sym uint16, used uint8) {
	fe := t.fast[byte(bits)]
	if fe.len != 0 {
		if fe.len > bitLength {
			return SymbolNone, 0
		}
		return fe.sym, fe.len
	}

	code := uint16(fe.rev)
	rest := bits >> FastBits
	for l := FastBits + 1; l <= MaxCodeLength; l++ {
		code = code<<1 | uint16(rest&1)
		rest >>= 1
		if uint32(code) < t.sentinels[l] {
			if uint8(l) > bitLength {
				return SymbolNone, 0
			}
			return t.syms[uint32(t.offsets[l])+uint32(code)], uint8(l)
		}
	}
	return SymbolNone, 0
}

// DecodeMSB decodes one symbol from an MSB-first bitstream, where bits is
// top-aligned in a WordBits-wide register (the first unconsumed bit is
// bit WordBits-1). See DecodeLSB for the meaning of bitLength and used.
func (t *Table) DecodeMSB(bits uint64, bitLength uint8) (sym uint16, used uint8) {
	idx := byte(bits >> (WordBits - FastBits))
	fe := t.fast[idx]
	if fe.len != 0 {
		if fe.len > bitLength {
			return SymbolNone, 0
		}
		return fe.sym, fe.len
	}

	code := uint16(idx)
	for l := FastBits + 1; l <= MaxCodeLength; l++ {
		bit := uint16(bits>>(WordBits-uint(l))) & 1
		code = code<<1 | bit
		if uint32(code) < t.sentinels[l] {
			if uint8(l) > bitLength {
				return SymbolNone, 0
			}
			return t.syms[uint32(t.offsets[l])+uint32(code)], uint8(l)
		}
	}
	return SymbolNone, 0
}

// DecodeLSBExt decodes one symbol's extra-bits value from an LSB-first
// bitstream, folding the codeword and its trailing extra bits into a
// single call. See DecodeLSBExtWithSym to also recover the symbol id.
func (t *TableExt) DecodeLSBExt(bits uint64, bitLength uint8) (value uint32, used uint8) {
	_, value, used = t.decode(bits, bitLength)
	return value, used
}

// DecodeLSBExtWithSym is DecodeLSBExt, additionally returning the decoded
// symbol id.
func (t *TableExt) DecodeLSBExtWithSym(bits uint64, bitLength uint8) (sym uint16, value uint32, used uint8) {
	return t.decode(bits, bitLength)
}

func (t *TableExt) decode(bits uint64, bitLength uint8) (sym uint16, value uint32, used uint8) {
	fe := t.fast[byte(bits)]
	if fe.len != 0 {
		if fe.total > bitLength {
			return SymbolNone, 0, 0
		}
		return fe.sym, fe.base + fe.mask&uint32(bits>>fe.len), fe.total
	}

	code := uint16(fe.rev)
	rest := bits >> FastBits
	for l := FastBits + 1; l <= MaxCodeLength; l++ {
		code = code<<1 | uint16(rest&1)
		rest >>= 1
		if uint32(code) < t.sentinels[l] {
			s := t.syms[uint32(t.offsets[l])+uint32(code)]
			if int(s) >= t.offset {
				ext := t.extras[int(s)-t.offset]
				total := uint8(l) + ext.Bits
				if total > bitLength {
					return SymbolNone, 0, 0
				}
				mask := uint32(1)<<ext.Bits - 1
				return s, ext.Base + mask&uint32(bits>>uint(l)), total
			}
			if uint8(l) > bitLength {
				return SymbolNone, 0, 0
			}
			return s, 0, uint8(l)
		}
	}
	return SymbolNone, 0, 0
}
