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

package filter

import "testing"

// TestTimeFilterS6 mirrors scenario S6 from spec.md §8.
func TestTimeFilterS6(t *testing.T) {
	start, ok := ParseTimeBound("2024-10-10")
	if !ok {
		t.Fatal("parse start failed")
	}
	end, ok := ParseTimeBound("2024-10-11")
	if !ok {
		t.Fatal("parse end failed")
	}
	f := TimeFilter{Start: &start, End: &end}

	inRange, ok := ParseTimeBound("10/Oct/2024:13:55:36")
	if !ok {
		t.Fatal("parse in-range timestamp failed")
	}
	if !f.Matches(inRange) {
		t.Errorf("expected in-range timestamp to match")
	}

	outOfRange, ok := ParseTimeBound("09/Oct/2024:23:59:59")
	if !ok {
		t.Fatal("parse out-of-range timestamp failed")
	}
	if f.Matches(outOfRange) {
		t.Errorf("expected out-of-range timestamp to not match")
	}
}

func TestTimeFilterIsZero(t *testing.T) {
	if !(TimeFilter{}).IsZero() {
		t.Errorf("expected zero-value TimeFilter to be zero")
	}
	ts := int64(1)
	if (TimeFilter{Start: &ts}).IsZero() {
		t.Errorf("expected non-zero TimeFilter to not be zero")
	}
}
