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

package agg

import "testing"

// TestGroupByCountS3 is spec.md scenario S3: ten lines with statuses
// [200,200,404,500,404,200,503,301,404,200] grouped by count yield
// [("200",4),("404",3),("301",1),("500",1),("503",1)] with ties
// broken lexicographically.
func TestGroupByCountS3(t *testing.T) {
	statuses := []string{"200", "200", "404", "500", "404", "200", "503", "301", "404", "200"}
	g := NewGroupMap()
	for _, s := range statuses {
		g.Add([]byte(s), 1)
	}

	entries := g.Sorted(MetricCount)
	want := []struct {
		key   string
		count uint64
	}{
		{"200", 4},
		{"404", 3},
		{"301", 1},
		{"500", 1},
		{"503", 1},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, w := range want {
		if entries[i].Key != w.key || entries[i].Result.Count != w.count {
			t.Errorf("entry %d = %+v, want key=%s count=%d", i, entries[i], w.key, w.count)
		}
	}
}

func TestGroupMapMergeAcrossChunks(t *testing.T) {
	chunk1 := NewGroupMap()
	chunk1.Add([]byte("a"), 10)
	chunk1.Add([]byte("b"), 5)

	chunk2 := NewGroupMap()
	chunk2.Add([]byte("a"), 20)
	chunk2.Add([]byte("c"), 1)

	merged := NewGroupMap()
	merged.MergeInto(chunk1)
	merged.MergeInto(chunk2)

	if merged.Len() != 3 {
		t.Fatalf("expected 3 distinct keys, got %d", merged.Len())
	}
	entries := merged.Sorted(MetricSum)
	if entries[0].Key != "a" || entries[0].Result.Sum != 30 || entries[0].Result.Count != 2 {
		t.Errorf("merged 'a' = %+v, want sum=30 count=2", entries[0])
	}
}
