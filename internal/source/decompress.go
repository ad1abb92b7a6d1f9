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

package source

import (
	"io"
	"os"
	"strings"

	"github.com/blazelog/logscan/internal/engerr"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression names a transparent decompression applied while
// streaming a file through the dataframe fallback. Compressed files
// cannot be memory-mapped into a stable byte layout, so they never
// take the fast scanner path regardless of their log format.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
)

// DetectCompression infers compression from a file's extension.
func DetectCompression(path string) Compression {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return CompressionGzip
	case strings.HasSuffix(path, ".zst"):
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// Open opens path and wraps it in a decompressing reader according
// to its detected compression. The returned io.ReadCloser's Close
// releases both the decompressor and the underlying file.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, engerr.Wrap(engerr.IoError, err, "open %s", path)
	}
	switch DetectCompression(path) {
	case CompressionGzip:
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, engerr.Wrap(engerr.IoError, err, "open gzip stream %s", path)
		}
		return &readCloserPair{Reader: gz, inner: f}, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, engerr.Wrap(engerr.IoError, err, "open zstd stream %s", path)
		}
		return &zstdReadCloser{Decoder: zr, inner: f}, nil
	default:
		return f, nil
	}
}

type readCloserPair struct {
	io.Reader
	inner io.Closer
}

func (p *readCloserPair) Close() error {
	if c, ok := p.Reader.(io.Closer); ok {
		c.Close()
	}
	return p.inner.Close()
}

// zstdReadCloser adapts *zstd.Decoder (whose Close returns no error)
// to io.ReadCloser while also closing the underlying file.
type zstdReadCloser struct {
	*zstd.Decoder
	inner io.Closer
}

func (z *zstdReadCloser) Close() error {
	z.Decoder.Close()
	return z.inner.Close()
}
