// Copyright (C) 2024 Blazelog Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package bytesearch provides the single-byte and substring search
// primitives that line iteration and field location are built on.
//
// FindByte and FindSubstr are the only primitives the rest of the
// scanner relies on; both are thin wrappers over the standard
// library's bytes package, whose IndexByte/Index routines are
// implemented in hand-written SIMD assembly on amd64 and arm64
// (internal/bytealg), kept behind a single call site so a faster
// implementation could be swapped in later without touching callers.
package bytesearch

import "bytes"

// FindByte returns the offset of the first occurrence of needle in
// haystack at or after 0, or false if it is not present.
func FindByte(haystack []byte, needle byte) (int, bool) {
	i := bytes.IndexByte(haystack, needle)
	if i < 0 {
		return 0, false
	}
	return i, true
}

// FindByteFrom returns the offset (relative to the start of haystack)
// of the first occurrence of needle at or after from, or false.
func FindByteFrom(haystack []byte, from int, needle byte) (int, bool) {
	if from >= len(haystack) {
		return 0, false
	}
	i, ok := FindByte(haystack[from:], needle)
	if !ok {
		return 0, false
	}
	return from + i, true
}

// FindSubstr returns the offset of the first occurrence of needle in
// haystack, or false if it is not present.
func FindSubstr(haystack, needle []byte) (int, bool) {
	i := bytes.Index(haystack, needle)
	if i < 0 {
		return 0, false
	}
	return i, true
}

// FindSubstrFrom is FindSubstr starting the search at offset from.
func FindSubstrFrom(haystack []byte, from int, needle []byte) (int, bool) {
	if from >= len(haystack) {
		return 0, false
	}
	i, ok := FindSubstr(haystack[from:], needle)
	if !ok {
		return 0, false
	}
	return from + i, true
}

// ContainsFold reports whether needle occurs in haystack, ignoring
// ASCII case. Used for the case-insensitive variant of the text
// filter; it avoids allocating a lowercased copy of haystack by
// comparing needle against haystack byte-by-byte, ASCII-folded, at
// every candidate offset in turn.
func ContainsFold(haystack, needle []byte) bool {
	if len(needle) == 0 {
		return true
	}
	n := len(needle)
	for i := 0; i+n <= len(haystack); i++ {
		if equalFold(haystack[i:i+n], needle) {
			return true
		}
	}
	return false
}

func equalFold(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ac, bc := a[i], b[i]
		if 'A' <= ac && ac <= 'Z' {
			ac += 'a' - 'A'
		}
		if 'A' <= bc && bc <= 'Z' {
			bc += 'a' - 'A'
		}
		if ac != bc {
			return false
		}
	}
	return true
}
