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

import "github.com/blazelog/logscan/internal/bytesearch"

// TextFilter is a substring predicate, case-sensitive unless
// CaseSensitive is false (spec.md §4.6).
type TextFilter struct {
	Pattern       []byte
	CaseSensitive bool
}

// NewTextFilter builds a TextFilter over pattern.
func NewTextFilter(pattern string, caseSensitive bool) TextFilter {
	return TextFilter{Pattern: []byte(pattern), CaseSensitive: caseSensitive}
}

// Matches reports whether the pattern occurs anywhere in line.
func (f TextFilter) Matches(line []byte) bool {
	if len(f.Pattern) == 0 {
		return true
	}
	if f.CaseSensitive {
		_, ok := bytesearch.FindSubstr(line, f.Pattern)
		return ok
	}
	return bytesearch.ContainsFold(line, f.Pattern)
}
