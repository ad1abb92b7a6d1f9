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

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// GroupMap accumulates one Result per distinct group key. A worker
// builds one GroupMap per chunk using owned copies of the key bytes
// (the source line may be unmapped before the key is read again), and
// chunk GroupMaps are folded together with MergeInto.
type GroupMap struct {
	m map[string]Result
}

// NewGroupMap returns an empty GroupMap.
func NewGroupMap() *GroupMap {
	return &GroupMap{m: make(map[string]Result)}
}

// Add folds value into the accumulator for key, creating it at the
// identity if key has not been seen before. key is copied so the
// caller's backing array (e.g. a line slice over a memory map) may be
// reused or unmapped afterward.
func (g *GroupMap) Add(key []byte, value int64) {
	k := string(key)
	r, ok := g.m[k]
	if !ok {
		r = Identity()
	}
	g.m[k] = r.Add(value)
}

// AddResult folds a whole pre-computed Result for key into the
// accumulator, merging via the Result merge law rather than folding
// a single scalar. Useful for combining sorted group outputs (e.g.
// one per scanned file) back into a single GroupMap.
func (g *GroupMap) AddResult(key []byte, r Result) {
	k := string(key)
	if cur, ok := g.m[k]; ok {
		g.m[k] = Merge(cur, r)
	} else {
		g.m[k] = r
	}
}

// MergeInto folds every entry of other into g per the Result merge
// law. other is left unmodified.
func (g *GroupMap) MergeInto(other *GroupMap) {
	for k, v := range other.m {
		if cur, ok := g.m[k]; ok {
			g.m[k] = Merge(cur, v)
		} else {
			g.m[k] = v
		}
	}
}

// Entry is one row of a finalized, ordered GroupMap.
type Entry struct {
	Key    string
	Result Result
}

// Metric selects which Result field ranks a sorted group output.
type Metric int

const (
	MetricCount Metric = iota
	MetricSum
)

// Sorted returns every group entry ordered descending by the chosen
// metric, ties broken by ascending key byte order (spec scenario S3).
func (g *GroupMap) Sorted(metric Metric) []Entry {
	keys := maps.Keys(g.m)
	slices.Sort(keys)

	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry{Key: k, Result: g.m[k]})
	}

	primary := func(r Result) int64 {
		if metric == MetricSum {
			return r.Sum
		}
		return int64(r.Count)
	}
	slices.SortStableFunc(entries, func(a, b Entry) bool {
		return primary(a.Result) > primary(b.Result)
	})
	return entries
}

// Len reports the number of distinct group keys.
func (g *GroupMap) Len() int {
	return len(g.m)
}
