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

import "testing"

func TestResolveExtensionOverride(t *testing.T) {
	f, err := Resolve("access.jsonl", FormatAuto, []byte("192.168.1.1 - - [10/Oct/2024] ..."))
	if err != nil {
		t.Fatal(err)
	}
	if f != FormatJSON {
		t.Errorf("got %v, want FormatJSON", f)
	}
}

func TestResolveDeclaredFormatWins(t *testing.T) {
	f, err := Resolve("access.json", FormatApache, nil)
	if err != nil {
		t.Fatal(err)
	}
	if f != FormatApache {
		t.Errorf("got %v, want FormatApache (declared)", f)
	}
}

func TestResolveSniffsApache(t *testing.T) {
	line := []byte(`192.168.1.1 - - [10/Oct/2024:13:55:36 +0000] "GET /index.html HTTP/1.1" 200 2326`)
	f, err := Resolve("access.log", FormatAuto, line)
	if err != nil {
		t.Fatal(err)
	}
	if f != FormatApache {
		t.Errorf("got %v, want FormatApache", f)
	}
}

func TestResolveSniffsSyslog(t *testing.T) {
	line := []byte(`Dec 17 10:30:45 server01 sshd[12345]: Accepted password for user`)
	f, err := Resolve("messages", FormatAuto, line)
	if err != nil {
		t.Fatal(err)
	}
	if f != FormatSyslog {
		t.Errorf("got %v, want FormatSyslog", f)
	}
}

func TestResolveSniffsJSON(t *testing.T) {
	line := []byte(`{"level":"info","msg":"started"}`)
	f, err := Resolve("app.log", FormatAuto, line)
	if err != nil {
		t.Fatal(err)
	}
	if f != FormatJSON {
		t.Errorf("got %v, want FormatJSON", f)
	}
}

func TestResolveSniffsCSV(t *testing.T) {
	line := []byte(`status,size,path`)
	f, err := Resolve("report.log", FormatAuto, line)
	if err != nil {
		t.Fatal(err)
	}
	if f != FormatCSV {
		t.Errorf("got %v, want FormatCSV", f)
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := Resolve("report.log", FormatAuto, []byte("completely ambiguous text"))
	if err == nil {
		t.Fatal("expected UnknownFormat error")
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"":       FormatAuto,
		"apache": FormatApache,
		"NGINX":  FormatNginx,
		"syslog": FormatSyslog,
		"json":   FormatJSON,
		"csv":    FormatCSV,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %v, want %v", in, got, want)
		}
	}
}
