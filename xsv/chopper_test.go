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

package xsv

import (
	"strings"
	"testing"
)

func TestCsvChopperHeaderAndRows(t *testing.T) {
	r := strings.NewReader("status,size,path\n200,1024,/a\n404,0,/b\n")
	c := &CsvChopper{}
	header, err := c.GetNext(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(header) != 3 || header[0] != "status" {
		t.Fatalf("unexpected header: %v", header)
	}
	row, err := c.GetNext(r)
	if err != nil {
		t.Fatal(err)
	}
	if row[0] != "200" || row[2] != "/a" {
		t.Fatalf("unexpected row: %v", row)
	}
}

func TestCsvChopperQuotedField(t *testing.T) {
	r := strings.NewReader(`status,path,note` + "\n" + `200,/a,"has, a comma"` + "\n")
	c := &CsvChopper{}
	header, err := c.GetNext(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(header) != 3 || header[0] != "status" {
		t.Fatalf("unexpected header: %v", header)
	}
	row, err := c.GetNext(r)
	if err != nil {
		t.Fatal(err)
	}
	if row[2] != "has, a comma" {
		t.Fatalf("unexpected row: %v", row)
	}
}

func TestTsvChopperHeaderAndRows(t *testing.T) {
	r := strings.NewReader("status\tsize\n200\t1024\n404\t0\n")
	c := &TsvChopper{}
	header, err := c.GetNext(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(header) != 2 || header[0] != "status" {
		t.Fatalf("unexpected header: %v", header)
	}
	row, err := c.GetNext(r)
	if err != nil {
		t.Fatal(err)
	}
	if row[0] != "200" || row[1] != "1024" {
		t.Fatalf("unexpected row: %v", row)
	}
}

func TestTsvChopperEscapes(t *testing.T) {
	r := strings.NewReader("a\\tb\tc\n")
	c := &TsvChopper{}
	row, err := c.GetNext(r)
	if err != nil {
		t.Fatal(err)
	}
	if row[0] != "a\tb" || row[1] != "c" {
		t.Fatalf("unexpected row: %v", row)
	}
}
