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

// Package source resolves a tool-surface path parameter into
// concrete files, figures out which log format each one holds, and
// hands off to the right reader: the memory-mapped fast path for
// Apache/Nginx/Syslog, or the dataframe fallback's streaming readers
// for JSON/CSV/TSV and compressed input.
package source

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/blazelog/logscan/internal/engerr"
)

// Format is the declared or inferred shape of a log file.
type Format int

const (
	FormatAuto Format = iota
	FormatApache
	FormatNginx
	FormatSyslog
	FormatJSON
	FormatCSV
)

func (f Format) String() string {
	switch f {
	case FormatApache:
		return "apache"
	case FormatNginx:
		return "nginx"
	case FormatSyslog:
		return "syslog"
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	default:
		return "auto"
	}
}

// ParseFormat maps a tool-surface format string (case-insensitive) to
// a Format, defaulting to FormatAuto for an empty string.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "apache", "combined":
		return FormatApache, nil
	case "nginx":
		return FormatNginx, nil
	case "syslog":
		return FormatSyslog, nil
	case "json", "ndjson", "jsonl":
		return FormatJSON, nil
	case "csv", "tsv":
		return FormatCSV, nil
	default:
		return FormatAuto, engerr.New(engerr.UnknownFormat, "unrecognized format %q", s)
	}
}

var extensionFormats = map[string]Format{
	".json":   FormatJSON,
	".jsonl":  FormatJSON,
	".ndjson": FormatJSON,
	".csv":    FormatCSV,
	".tsv":    FormatCSV,
}

// byExtension reports the format implied by path's extension, if any
// (spec.md §4.8 format inference, extension override step).
func byExtension(path string) (Format, bool) {
	f, ok := extensionFormats[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// sniffContent infers a format from a file's first non-empty line
// (spec.md §4.8 format inference, content sniffing step).
func sniffContent(firstLine []byte) (Format, bool) {
	line := bytes.TrimSpace(firstLine)
	if len(line) == 0 {
		return FormatAuto, false
	}
	switch {
	case line[0] == '{':
		return FormatJSON, true
	case bytes.Contains(line, []byte(",")) && !bytes.Contains(line, []byte(" - - [")):
		return FormatCSV, true
	case bytes.Contains(line, []byte(" - - [")) || looksLikeApacheStatus(line):
		return FormatApache, true
	case line[0] == '<' || bytes.Contains(line, []byte("]: ")):
		return FormatSyslog, true
	default:
		return FormatAuto, false
	}
}

// looksLikeApacheStatus is a coarse shape check for lines that carry
// a combined-log status code but happen not to use the literal
// ` - - [` ident/authuser placeholder (e.g. a named authuser).
func looksLikeApacheStatus(line []byte) bool {
	open := bytes.IndexByte(line, '[')
	shut := bytes.IndexByte(line, ']')
	return open >= 0 && shut > open && bytes.Contains(line, []byte(`"`))
}

// Resolve determines the format to use for path. If declared is not
// FormatAuto it is used as-is (Nginx is handled identically to
// Apache downstream). Otherwise Resolve applies extension override,
// then content sniffing against firstLine; if neither yields an
// answer it returns UnknownFormat.
func Resolve(path string, declared Format, firstLine []byte) (Format, error) {
	if declared != FormatAuto {
		return declared, nil
	}
	if f, ok := byExtension(path); ok {
		return f, nil
	}
	if f, ok := sniffContent(firstLine); ok {
		return f, nil
	}
	return FormatAuto, engerr.New(engerr.UnknownFormat, "could not detect log format for %s", path)
}
