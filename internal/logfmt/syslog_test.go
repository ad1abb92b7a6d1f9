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

func TestLocateSyslogS4(t *testing.T) {
	line := []byte(`Dec 17 10:30:45 server01 sshd[12345]: Accepted password for user`)
	off, ok := LocateSyslog(line)
	if !ok {
		t.Fatalf("expected line to locate")
	}
	if got := string(Hostname(line, off)); got != "server01" {
		t.Errorf("Hostname = %q", got)
	}
	if got := string(Process(line, off)); got != "sshd" {
		t.Errorf("Process = %q", got)
	}
	if got := string(Message(line, off)); got != "Accepted password for user" {
		t.Errorf("Message = %q", got)
	}
}

func TestLocateSyslogWithPriority(t *testing.T) {
	line := []byte(`<34>Dec 17 10:30:45 server01 sshd: Accepted password for user`)
	off, ok := LocateSyslog(line)
	if !ok {
		t.Fatalf("expected line to locate")
	}
	if got := string(Process(line, off)); got != "sshd" {
		t.Errorf("Process = %q", got)
	}
}

func TestLocateSyslogMissingDelimiter(t *testing.T) {
	if _, ok := LocateSyslog([]byte("not a syslog line")); ok {
		t.Fatalf("expected missing delimiter to fail")
	}
}
