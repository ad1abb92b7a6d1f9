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

// Package logtime encodes timestamps into a single sortable int64
// (YYYYMMDDhhmmss) for filter comparison. The encoding is deliberately
// not a general-purpose calendar type — it exists only to make two
// timestamps within the same scan comparable without an allocation or
// a time.Time construction on the hot path.
package logtime

var months = [12][3]byte{
	{'J', 'a', 'n'}, {'F', 'e', 'b'}, {'M', 'a', 'r'}, {'A', 'p', 'r'},
	{'M', 'a', 'y'}, {'J', 'u', 'n'}, {'J', 'u', 'l'}, {'A', 'u', 'g'},
	{'S', 'e', 'p'}, {'O', 'c', 't'}, {'N', 'o', 'v'}, {'D', 'e', 'c'},
}

func monthNum(b []byte) (int, bool) {
	if len(b) != 3 {
		return 0, false
	}
	for i, m := range months {
		if m[0] == b[0] && m[1] == b[1] && m[2] == b[2] {
			return i + 1, true
		}
	}
	return 0, false
}

// Encode packs calendar fields into the sortable YYYYMMDDhhmmss form
// described in spec.md §4.5. Out-of-range inputs are not validated;
// callers are expected to have parsed them from fixed-width digit
// runs already known to be in range.
func Encode(year, month, day, hour, min, sec int) int64 {
	return int64(year)*1e10 + int64(month)*1e8 + int64(day)*1e6 +
		int64(hour)*1e4 + int64(min)*1e2 + int64(sec)
}

func digit2(b []byte) (int, bool) {
	if len(b) != 2 || !isDigit(b[0]) || !isDigit(b[1]) {
		return 0, false
	}
	return int(b[0]-'0')*10 + int(b[1]-'0'), true
}

func digit4(b []byte) (int, bool) {
	if len(b) != 4 {
		return 0, false
	}
	n := 0
	for _, c := range b {
		if !isDigit(c) {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// ParseApache parses the fixed-position Apache/Nginx access-log
// timestamp body (the bytes between the '[' and ']', e.g.
// "10/Oct/2024:13:55:36 +0000") into the sortable encoding. The
// trailing timezone offset is ignored — a documented limitation
// carried over from spec.md §4.5/§9: comparisons across logs mixing
// timezones may misorder.
func ParseApache(b []byte) (int64, bool) {
	if len(b) < 20 {
		return 0, false
	}
	day, ok := digit2(b[0:2])
	if !ok || b[2] != '/' {
		return 0, false
	}
	month, ok := monthNum(b[3:6])
	if !ok || b[6] != '/' {
		return 0, false
	}
	year, ok := digit4(b[7:11])
	if !ok || b[11] != ':' {
		return 0, false
	}
	hour, ok := digit2(b[12:14])
	if !ok || b[14] != ':' {
		return 0, false
	}
	min, ok := digit2(b[15:17])
	if !ok || b[17] != ':' {
		return 0, false
	}
	sec, ok := digit2(b[18:20])
	if !ok {
		return 0, false
	}
	return Encode(year, month, day, hour, min, sec), true
}

// ParseISO parses "YYYY-MM-DD" or "YYYY-MM-DDTHH:MM:SS" into the
// same sortable encoding.
func ParseISO(b []byte) (int64, bool) {
	if len(b) < 10 {
		return 0, false
	}
	year, ok := digit4(b[0:4])
	if !ok || b[4] != '-' {
		return 0, false
	}
	month, ok := digit2(b[5:7])
	if !ok || b[7] != '-' {
		return 0, false
	}
	day, ok := digit2(b[8:10])
	if !ok {
		return 0, false
	}
	if len(b) == 10 {
		return Encode(year, month, day, 0, 0, 0), true
	}
	if len(b) < 19 || (b[10] != 'T' && b[10] != ' ') {
		return 0, false
	}
	hour, ok := digit2(b[11:13])
	if !ok || b[13] != ':' {
		return 0, false
	}
	min, ok := digit2(b[14:16])
	if !ok || b[16] != ':' {
		return 0, false
	}
	sec, ok := digit2(b[17:19])
	if !ok {
		return 0, false
	}
	return Encode(year, month, day, hour, min, sec), true
}

// Parse tries ParseISO then ParseApache, the two textual forms
// TimeFilter bounds are accepted in (spec.md §3 TimeFilter).
func Parse(b []byte) (int64, bool) {
	if n, ok := ParseISO(b); ok {
		return n, true
	}
	return ParseApache(b)
}
