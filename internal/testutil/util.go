// Copyright (c) 2024 Recep Aslantas
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0

package testutil

import "encoding/hex"

// ResizeData resizes input to length n. If n <= len(input), input is
// truncated. If n > len(input), input is replicated to fill the missing
// bytes, XORing each successive repetition by an incrementing mask so the
// result isn't just the same short pattern repeated verbatim.
func ResizeData(input []byte, n int) []byte {
	if len(input) >= n {
		return input[:n]
	}
	if len(input) == 0 {
		panic("testutil: unable to replicate an empty input")
	}

	var mask byte
	output := make([]byte, n)
	for i := range output {
		idx := i % len(input)
		output[i] = input[idx] ^ mask
		if idx == len(input)-1 {
			mask++
		}
	}
	return output
}

// MustDecodeHex must decode a hexadecimal string or else panics.
func MustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// MustDecodeBitGen must decode a BitGen formatted string or else panics.
func MustDecodeBitGen(s string) []byte {
	b, err := DecodeBitGen(s)
	if err != nil {
		panic(err)
	}
	return b
}
