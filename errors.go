// Copyright (c) 2024 Recep Aslantas
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0

package huff

// Build-time structural errors returned by the table builders. Decode-time
// failures are never reported this way — they are signalled through the
// (SymbolNone, 0) return pair, per the package's no-panic decode contract.
var (
	// ErrInvalidLength is returned when a length exceeds MaxCodeLength.
	ErrInvalidLength = Error("invalid code length")

	// ErrTooManySymbols is returned when n exceeds MaxSymbols.
	ErrTooManySymbols = Error("too many symbols")

	// ErrOverSubscribed is returned by the Strict builders when the Kraft
	// sum of the supplied lengths exceeds 1.
	ErrOverSubscribed = Error("over-subscribed code lengths")

	// ErrIncomplete is returned by the Strict builders when the Kraft sum
	// of the supplied lengths is strictly less than 1.
	ErrIncomplete = Error("incomplete code lengths")
)
