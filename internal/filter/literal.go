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

import "strings"

const regexMeta = `\.+*?()|[]{}^$`

// requiredLiterals extracts a cheap-to-check set of substrings that
// every match of pattern must contain, when pattern is simple enough
// for the extraction to be exact:
//
//   - a pattern with no regex metacharacters at all is itself the one
//     required literal (the whole predicate degenerates to a plain
//     substring search);
//   - a top-level alternation "foo|bar|baz" where every branch is
//     itself metacharacter-free requires that at least one of the
//     branches occur, so the branches become the literal set.
//
// Anything else returns ok == false: the regex engine is the only
// source of truth and no prefilter is applied. Only the handful of
// shapes worth special-casing on a predicate that is otherwise a
// sealed matches(line, offsets) -> bool contract are handled here.
func requiredLiterals(pattern string) (literals []string, ok bool) {
	if !strings.ContainsAny(pattern, regexMeta) {
		return []string{pattern}, true
	}
	if !strings.Contains(pattern, "|") {
		return nil, false
	}
	parts := strings.Split(pattern, "|")
	for _, p := range parts {
		if p == "" || strings.ContainsAny(p, regexMeta) {
			return nil, false
		}
	}
	return parts, true
}
