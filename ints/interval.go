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

package ints

// Interval is a half-open byte range [Start, End) within a file.
// internal/chunk aliases this as Bound: the chunk partitioner splits
// a file into a series of these to hand one to each scan worker.
type Interval struct {
	Start, End int
}

// Empty reports whether in covers no bytes.
func (in Interval) Empty() bool {
	return in.Start >= in.End
}

// Len returns the number of bytes in.
func (in Interval) Len() int {
	if in.End <= in.Start {
		return 0
	}
	return in.End - in.Start
}
