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

// Package chunk splits a buffer into contiguous, newline-aligned
// ranges so that parallel workers can each process a contiguous
// range without ever splitting a line across two workers.
package chunk

import (
	"github.com/blazelog/logscan/internal/bytesearch"
	"github.com/blazelog/logscan/ints"
)

// DefaultTargetSize is the target chunk size used by the scanner
// (spec.md §4.7 step 2: "target 4 MiB").
const DefaultTargetSize = 4 * 1024 * 1024

// Bound is a half-open byte range [Start, End) within a buffer.
type Bound = ints.Interval

// Partition splits buf into newline-aligned chunks targeting roughly
// target bytes each (spec.md §4.1 partition_at_newlines). Starting at
// 0, it repeatedly advances by target bytes, then advances further to
// the next '\n' (inclusive), terminating with len(buf). Every chunk
// except possibly the last ends immediately after a '\n'. If buf
// contains no newline beyond the first chunk target, Partition
// degrades to returning a single chunk spanning the whole buffer.
func Partition(buf []byte, target int64) []Bound {
	n := len(buf)
	if n == 0 {
		return nil
	}
	if target <= 0 {
		target = DefaultTargetSize
	}

	var bounds []Bound
	start := 0
	for start < n {
		end := start + int(target)
		if end >= n {
			bounds = append(bounds, Bound{Start: start, End: n})
			break
		}
		if nl, ok := bytesearch.FindByte(buf[end:], '\n'); ok {
			end = end + nl + 1
		} else {
			end = n
		}
		bounds = append(bounds, Bound{Start: start, End: end})
		start = end
	}
	return bounds
}

// Lines iterates the newline-delimited lines of buf, calling fn with
// each line's bytes (not including the trailing '\n'). A final
// non-empty line with no trailing newline is still visited. Iteration
// stops early if fn returns false.
func Lines(buf []byte, fn func(line []byte) bool) {
	start := 0
	for start < len(buf) {
		nl, ok := bytesearch.FindByte(buf[start:], '\n')
		var line []byte
		var next int
		if ok {
			line = buf[start : start+nl]
			next = start + nl + 1
		} else {
			line = buf[start:]
			next = len(buf)
		}
		if !fn(line) {
			return
		}
		start = next
	}
}
