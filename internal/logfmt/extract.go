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

// AbsentField is the sentinel returned by the Referer and UserAgent
// extractors when that quoted field is empty or structurally absent
// from the line.
var AbsentField = []byte("-")

// IP returns the borrowed IP/address bytes.
func IP(line []byte, off ApacheOffsets) []byte {
	return line[:off.IPEnd]
}

// Timestamp returns the borrowed raw timestamp bytes, e.g.
// "10/Oct/2024:13:55:36 +0000".
func Timestamp(line []byte, off ApacheOffsets) []byte {
	return line[off.TimestampStart:off.TimestampEnd]
}

// Request returns the borrowed raw request-line bytes, e.g.
// `GET /index.html HTTP/1.1`.
func Request(line []byte, off ApacheOffsets) []byte {
	return line[off.RequestStart:off.RequestEnd]
}

// Method returns the borrowed HTTP method, the first space-delimited
// token of the request line.
func Method(line []byte, off ApacheOffsets) []byte {
	req := Request(line, off)
	for i, b := range req {
		if b == ' ' {
			return req[:i]
		}
	}
	return req
}

// Path returns the borrowed request path, the second space-delimited
// token of the request line (empty if the request is malformed).
func Path(line []byte, off ApacheOffsets) []byte {
	req := Request(line, off)
	start := -1
	for i, b := range req {
		if b == ' ' {
			if start < 0 {
				start = i + 1
				continue
			}
			return req[start:i]
		}
	}
	if start < 0 || start > len(req) {
		return nil
	}
	return req[start:]
}

// Status parses the 3-digit status code. The locator guarantees the
// three bytes at StatusStart are ASCII digits.
func Status(line []byte, off ApacheOffsets) uint16 {
	b := line[off.StatusStart : off.StatusStart+3]
	return uint16(b[0]-'0')*100 + uint16(b[1]-'0')*10 + uint16(b[2]-'0')
}

// Size parses the response size field, folding ASCII digits into an
// int64 by multiply-and-add; "-" parses as 0.
func Size(line []byte, off ApacheOffsets) int64 {
	b := line[off.SizeStart:off.SizeEnd]
	if len(b) == 0 {
		return 0
	}
	var n int64
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int64(c-'0')
	}
	return n
}

// Referer returns the borrowed referer bytes, or AbsentField if the
// field was not present in the line.
func Referer(line []byte, off ApacheOffsets) []byte {
	if off.RefererStart == off.RefererEnd {
		return AbsentField
	}
	return line[off.RefererStart:off.RefererEnd]
}

// UserAgent returns the borrowed user-agent bytes, or AbsentField if
// the field was not present in the line.
func UserAgent(line []byte, off ApacheOffsets) []byte {
	if off.UserAgentStart == off.UserAgentEnd {
		return AbsentField
	}
	return line[off.UserAgentStart:off.UserAgentEnd]
}

// Hostname returns the borrowed syslog hostname bytes.
func Hostname(line []byte, off SyslogOffsets) []byte {
	return line[off.HostnameStart:off.HostnameEnd]
}

// Process returns the borrowed syslog process-tag bytes (without PID).
func Process(line []byte, off SyslogOffsets) []byte {
	return line[off.ProcessStart:off.ProcessEnd]
}

// Message returns the borrowed syslog message bytes.
func Message(line []byte, off SyslogOffsets) []byte {
	if off.MessageStart > len(line) {
		return nil
	}
	return line[off.MessageStart:]
}
