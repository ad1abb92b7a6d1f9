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

import "github.com/blazelog/logscan/internal/logtime"

// TimeFilter is an inclusive [Start, End] bound over the sortable
// int64 timestamp encoding (spec.md §3). A nil bound is unset.
type TimeFilter struct {
	Start *int64
	End   *int64
}

// Matches is a pure, total function.
func (f TimeFilter) Matches(ts int64) bool {
	if f.Start != nil && ts < *f.Start {
		return false
	}
	if f.End != nil && ts > *f.End {
		return false
	}
	return true
}

// IsZero reports whether the filter has no bounds set, i.e. it is a
// no-op and need not be evaluated on the hot path.
func (f TimeFilter) IsZero() bool {
	return f.Start == nil && f.End == nil
}

// ParseTimeBound parses a single textual time bound (ISO or Apache
// form, spec.md §3) into the sortable encoding.
func ParseTimeBound(s string) (int64, bool) {
	return logtime.Parse([]byte(s))
}
