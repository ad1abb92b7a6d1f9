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

// Package mmapfile memory-maps a file read-only and exposes its
// contents as a plain byte slice, so scanning code can treat a
// multi-gigabyte log file as an ordinary []byte without reading it
// into the Go heap up front.
package mmapfile

import (
	"os"

	"github.com/blazelog/logscan/internal/engerr"
)

// File is a read-only view over the contents of a file on disk.
type File struct {
	f    *os.File
	mem  []byte
	size int64
}

// Open maps path read-only for the lifetime of the returned File.
// Callers must call Close when done to release the mapping (or
// underlying buffer, on platforms without a native mmap) and the
// open file descriptor. A zero-length file yields a File whose
// Bytes() is empty; Open does not fail on empty input.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, engerr.Wrap(engerr.IoError, err, "open %s", path)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, engerr.Wrap(engerr.IoError, err, "stat %s", path)
	}
	size := info.Size()
	if size == 0 {
		return &File{f: f, mem: nil, size: 0}, nil
	}
	mem, err := mmap(f, size)
	if err != nil {
		f.Close()
		return nil, engerr.Wrap(engerr.IoError, err, "mmap %s", path)
	}
	return &File{f: f, mem: mem, size: size}, nil
}

// Bytes returns the mapped contents. The slice is valid until Close
// is called and must not be retained beyond that call.
func (mf *File) Bytes() []byte {
	return mf.mem
}

// Size returns the file size in bytes at the time it was opened.
func (mf *File) Size() int64 {
	return mf.size
}

// Close releases the mapping and closes the underlying file
// descriptor. It is safe to call once; calling it again is a no-op
// error from the underlying os.File.
func (mf *File) Close() error {
	var err error
	if mf.mem != nil {
		err = unmap(mf.mem)
		mf.mem = nil
	}
	if cerr := mf.f.Close(); err == nil {
		err = cerr
	}
	return err
}
