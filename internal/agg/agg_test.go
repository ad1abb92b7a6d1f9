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
	"math"
	"testing"
)

// TestMergeAssociativeCommutative is spec.md §8 testable property 3:
// folding a sequence of per-chunk aggregates in any grouping or order
// equals the single-chunk aggregate over the same values.
func TestMergeAssociativeCommutative(t *testing.T) {
	values := []int64{100, 200, 50, 150, 75}

	single := Identity()
	for _, v := range values {
		single = single.Add(v)
	}

	// Split into three chunks, merge left-to-right.
	a := Identity().Add(values[0]).Add(values[1])
	b := Identity().Add(values[2])
	c := Identity().Add(values[3]).Add(values[4])
	leftToRight := Merge(Merge(a, b), c)

	// Same chunks, different association and order.
	reordered := Merge(b, Merge(c, a))

	if leftToRight != single {
		t.Errorf("left-to-right merge = %+v, want %+v", leftToRight, single)
	}
	if reordered != single {
		t.Errorf("reordered merge = %+v, want %+v", reordered, single)
	}
}

func TestIdentityMerge(t *testing.T) {
	id := Identity()
	r := Identity().Add(42)
	if got := Merge(id, r); got != r {
		t.Errorf("Merge(identity, r) = %+v, want %+v", got, r)
	}
}

func TestEmptyMinMaxAvg(t *testing.T) {
	id := Identity()
	if id.Min != math.MaxInt64 {
		t.Errorf("empty Min = %d, want MaxInt64", id.Min)
	}
	if id.Max != math.MinInt64 {
		t.Errorf("empty Max = %d, want MinInt64", id.Max)
	}
	if id.Avg() != 0 {
		t.Errorf("empty Avg() = %v, want 0", id.Avg())
	}
}

func TestAvg(t *testing.T) {
	r := Identity().Add(10).Add(20).Add(30)
	if got := r.Avg(); got != 20 {
		t.Errorf("Avg() = %v, want 20", got)
	}
}
