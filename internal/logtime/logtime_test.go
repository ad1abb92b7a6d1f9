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

package logtime

import "testing"

func TestParseApache(t *testing.T) {
	got, ok := ParseApache([]byte("10/Oct/2024:13:55:36 +0000"))
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	want := Encode(2024, 10, 10, 13, 55, 36)
	if got != want {
		t.Errorf("got %d, want %d", got, want)
	}
}

// TestOrdering is spec.md §8 testable property 5: for real timestamps
// t1 < t2 in the same locale, parse_timestamp(t1) < parse_timestamp(t2).
func TestOrdering(t *testing.T) {
	t1, ok := ParseApache([]byte("09/Oct/2024:23:59:59 +0000"))
	if !ok {
		t.Fatalf("parse t1 failed")
	}
	t2, ok := ParseApache([]byte("10/Oct/2024:13:55:36 +0000"))
	if !ok {
		t.Fatalf("parse t2 failed")
	}
	if !(t1 < t2) {
		t.Errorf("expected t1 < t2, got %d, %d", t1, t2)
	}
}

func TestParseISO(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"2024-10-10", Encode(2024, 10, 10, 0, 0, 0)},
		{"2024-10-10T13:55:36", Encode(2024, 10, 10, 13, 55, 36)},
	}
	for _, c := range cases {
		got, ok := ParseISO([]byte(c.in))
		if !ok {
			t.Fatalf("parse %q failed", c.in)
		}
		if got != c.want {
			t.Errorf("parse %q = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	if _, ok := ParseApache([]byte("not-a-timestamp-------")); ok {
		t.Fatalf("expected failure")
	}
	if _, ok := ParseISO([]byte("not-a-timestamp")); ok {
		t.Fatalf("expected failure")
	}
}
