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

// Package logfmt locates and extracts the structural fields of a
// single log line without allocating or copying: every offset pair
// is a byte range into the caller-owned line slice. One locator
// shape exists per supported structured format (Apache/Nginx
// combined and RFC 3164 syslog); callers must copy out any bytes
// they intend to retain past the lifetime of the backing buffer.
package logfmt

import "github.com/blazelog/logscan/internal/bytesearch"

// ApacheOffsets locates the structural fields of one Apache/Nginx
// combined-format log line. A zero-length pair (Start == End) means
// the field is absent from the line.
type ApacheOffsets struct {
	IPEnd int

	TimestampStart, TimestampEnd int
	RequestStart, RequestEnd     int
	StatusStart                  int // always exactly 3 bytes
	SizeStart, SizeEnd           int
	RefererStart, RefererEnd     int
	UserAgentStart, UserAgentEnd int
}

const minApacheLineLen = 20

// LocateApache computes the field offsets of line, an Apache/Nginx
// combined-format access log line. It returns false if the line is
// too short, missing one of the required structural delimiters
// (everything up to and including the status code), or missing a
// size field of "-" or ASCII digits after the status; the trailing
// referer/user-agent fields are optional and recorded as zero-length
// when absent.
//
// LocateApache never mistakes bytes embedded in the request path for
// the status code: the status is found by walking forward from the
// closing quote of the request, not by searching for a 3-digit
// pattern anywhere in the line.
func LocateApache(line []byte) (ApacheOffsets, bool) {
	var off ApacheOffsets
	if len(line) < minApacheLineLen {
		return off, false
	}

	ipEnd, ok := bytesearch.FindByte(line, ' ')
	if !ok {
		return off, false
	}
	off.IPEnd = ipEnd

	tsOpen, ok := bytesearch.FindByteFrom(line, ipEnd, '[')
	if !ok {
		return off, false
	}
	tsClose, ok := bytesearch.FindByteFrom(line, tsOpen, ']')
	if !ok {
		return off, false
	}
	off.TimestampStart = tsOpen + 1
	off.TimestampEnd = tsClose

	reqOpen, ok := bytesearch.FindByteFrom(line, tsClose, '"')
	if !ok {
		return off, false
	}
	reqClose, ok := bytesearch.FindByteFrom(line, reqOpen+1, '"')
	if !ok {
		return off, false
	}
	off.RequestStart = reqOpen + 1
	off.RequestEnd = reqClose

	statusStart := reqClose + 2
	if statusStart+3 > len(line) {
		return off, false
	}
	for i := 0; i < 3; i++ {
		if !isDigit(line[statusStart+i]) {
			return off, false
		}
	}
	off.StatusStart = statusStart

	cursor := statusStart + 4
	sizeStart, sizeEnd, next, ok := scanSizeField(line, cursor)
	if !ok {
		return off, false
	}
	off.SizeStart, off.SizeEnd = sizeStart, sizeEnd
	cursor = next

	off.RefererStart, off.RefererEnd, cursor = scanQuotedField(line, cursor)
	off.UserAgentStart, off.UserAgentEnd, _ = scanQuotedField(line, cursor)

	return off, true
}

// scanSizeField consumes either "-" or a run of ASCII digits
// starting at cursor, returning the field's [start,end) and the
// offset immediately after it.
func scanSizeField(line []byte, cursor int) (start, end, next int, ok bool) {
	if cursor >= len(line) {
		return 0, 0, 0, false
	}
	if line[cursor] == '-' {
		return cursor, cursor, cursor + 1, true
	}
	i := cursor
	for i < len(line) && isDigit(line[i]) {
		i++
	}
	if i == cursor {
		return 0, 0, 0, false
	}
	return cursor, i, i, true
}

// scanQuotedField looks for the next "…" pair starting at or after
// cursor. If none is found (the trailing referer/user-agent fields
// are genuinely optional), it returns a zero-length pair and the
// original cursor unmoved.
func scanQuotedField(line []byte, cursor int) (start, end, next int) {
	if cursor >= len(line) {
		return cursor, cursor, cursor
	}
	open, ok := bytesearch.FindByteFrom(line, cursor, '"')
	if !ok {
		return cursor, cursor, cursor
	}
	close, ok := bytesearch.FindByteFrom(line, open+1, '"')
	if !ok {
		return cursor, cursor, cursor
	}
	return open + 1, close, close + 1
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
