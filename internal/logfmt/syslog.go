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

package logfmt

import "github.com/blazelog/logscan/internal/bytesearch"

// SyslogOffsets locates the structural fields of one RFC 3164 line.
type SyslogOffsets struct {
	HostnameStart, HostnameEnd int
	ProcessStart, ProcessEnd   int
	MessageStart               int
}

// LocateSyslog computes the field offsets of line, an RFC 3164
// ("BSD syslog") line: optional "<PRI>", then
// "Mon DD HH:MM:SS HOST PROCESS[PID]: MESSAGE". It returns false if
// any required delimiter is missing.
func LocateSyslog(line []byte) (SyslogOffsets, bool) {
	var off SyslogOffsets
	cursor := 0

	if len(line) > 0 && line[0] == '<' {
		close, ok := bytesearch.FindByte(line, '>')
		if !ok {
			return off, false
		}
		cursor = close + 1
	}

	// Timestamp is three whitespace-separated tokens: "Mon", "DD", "HH:MM:SS".
	for i := 0; i < 3; i++ {
		sp, ok := bytesearch.FindByteFrom(line, cursor, ' ')
		if !ok {
			return off, false
		}
		cursor = sp + 1
	}

	hostEnd, ok := bytesearch.FindByteFrom(line, cursor, ' ')
	if !ok {
		return off, false
	}
	off.HostnameStart, off.HostnameEnd = cursor, hostEnd
	cursor = hostEnd + 1

	procEnd, ok := findProcessEnd(line, cursor)
	if !ok {
		return off, false
	}
	off.ProcessStart, off.ProcessEnd = cursor, procEnd

	colon, ok := bytesearch.FindByteFrom(line, procEnd, ':')
	if !ok {
		return off, false
	}
	msgStart := colon + 1
	if msgStart < len(line) && line[msgStart] == ' ' {
		msgStart++
	}
	off.MessageStart = msgStart

	return off, true
}

// findProcessEnd returns the offset of whichever comes first: the
// '[' opening a PID, or the ':' separating the process tag from the
// message when no PID is present.
func findProcessEnd(line []byte, from int) (int, bool) {
	bracket, hasBracket := bytesearch.FindByteFrom(line, from, '[')
	colon, hasColon := bytesearch.FindByteFrom(line, from, ':')
	switch {
	case hasBracket && hasColon:
		if bracket < colon {
			return bracket, true
		}
		return colon, true
	case hasBracket:
		return bracket, true
	case hasColon:
		return colon, true
	default:
		return 0, false
	}
}
