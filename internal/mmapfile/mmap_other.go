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

//go:build !linux

package mmapfile

import (
	"io"
	"os"
)

// mmap on non-Linux platforms falls back to reading the whole file
// into a plain heap buffer, keeping File's contract ("read-only bytes
// over the whole file, released by Close") satisfiable on every
// platform the standard library itself targets, at the cost of the OS
// page cache sharing the real mmap path gets for free.
func mmap(f *os.File, size int64) ([]byte, error) {
	buf := make([]byte, size)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func unmap(mem []byte) error {
	return nil
}
