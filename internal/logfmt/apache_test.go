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

import "testing"

func TestLocateApacheS1(t *testing.T) {
	line := []byte(`192.168.1.1 - - [10/Oct/2024:13:55:36 +0000] "GET /index.html HTTP/1.1" 200 2326`)
	off, ok := LocateApache(line)
	if !ok {
		t.Fatalf("expected line to locate")
	}
	if got := string(IP(line, off)); got != "192.168.1.1" {
		t.Errorf("IP = %q", got)
	}
	if got := Status(line, off); got != 200 {
		t.Errorf("Status = %d, want 200", got)
	}
	if got := Size(line, off); got != 2326 {
		t.Errorf("Size = %d, want 2326", got)
	}
	if got := string(Method(line, off)); got != "GET" {
		t.Errorf("Method = %q", got)
	}
	if got := string(Path(line, off)); got != "/index.html" {
		t.Errorf("Path = %q", got)
	}
	if got := string(Timestamp(line, off)); got != "10/Oct/2024:13:55:36 +0000" {
		t.Errorf("Timestamp = %q", got)
	}
}

// TestLocateApacheS2 verifies the field locator exactness property
// (spec.md §8 property 1 / scenario S2): a "404" embedded in the URL
// must never be mistaken for the structurally-located status code.
func TestLocateApacheS2(t *testing.T) {
	line := []byte(`10.0.0.1 - - [10/Oct/2024:00:00:00 +0000] "GET /error/404/page HTTP/1.1" 200 100`)
	off, ok := LocateApache(line)
	if !ok {
		t.Fatalf("expected line to locate")
	}
	if got := Status(line, off); got != 200 {
		t.Errorf("Status = %d, want 200 (not 404)", got)
	}
	if got := string(Path(line, off)); got != "/error/404/page" {
		t.Errorf("Path = %q", got)
	}
}

func TestLocateApacheMissingOptionalFields(t *testing.T) {
	line := []byte(`10.0.0.1 - - [10/Oct/2024:00:00:00 +0000] "GET / HTTP/1.1" 304 -`)
	off, ok := LocateApache(line)
	if !ok {
		t.Fatalf("expected line to locate")
	}
	if got := Size(line, off); got != 0 {
		t.Errorf("Size = %d, want 0 for '-'", got)
	}
	if got := Referer(line, off); string(got) != "-" {
		t.Errorf("Referer = %q, want sentinel", got)
	}
	if got := UserAgent(line, off); string(got) != "-" {
		t.Errorf("UserAgent = %q, want sentinel", got)
	}
}

func TestLocateApacheTooShort(t *testing.T) {
	if _, ok := LocateApache([]byte("short")); ok {
		t.Fatalf("expected short line to fail to locate")
	}
}

func TestLocateApacheMalformed(t *testing.T) {
	cases := []string{
		`192.168.1.1 - - no-bracket-timestamp "GET / HTTP/1.1" 200 10`,
		`192.168.1.1 - - [10/Oct/2024:00:00:00 +0000] no-quoted-request 200 10`,
		`192.168.1.1 - - [10/Oct/2024:00:00:00 +0000] "GET / HTTP/1.1" abc 10`,
	}
	for _, c := range cases {
		if _, ok := LocateApache([]byte(c)); ok {
			t.Errorf("expected malformed line to fail: %q", c)
		}
	}
}
