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

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandGlobMatchesMultiple(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.log", "b.log", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := ExpandGlob(filepath.Join(dir, "*.log"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2: %v", len(got), got)
	}
}

func TestExpandGlobPlainExistingPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "single.log")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ExpandGlob(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != path {
		t.Fatalf("got %v, want [%s]", got, path)
	}
}

func TestExpandGlobNoMatchesIsError(t *testing.T) {
	dir := t.TempDir()
	_, err := ExpandGlob(filepath.Join(dir, "nonexistent-*.log"))
	if err == nil {
		t.Fatal("expected error for zero matches")
	}
}
