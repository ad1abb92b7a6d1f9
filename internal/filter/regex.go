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

import (
	"regexp"

	"github.com/coregx/ahocorasick"
)

// RegexFilter matches raw line bytes against a pattern compiled once
// and shared across chunks (spec.md §4.6). When the pattern's
// required literals can be determined cheaply (see requiredLiterals),
// an Aho-Corasick automaton prefilters lines before the regex engine
// is invoked at all: a line that cannot contain any required literal
// cannot match, so the (comparatively expensive) regexp.Regexp.Match
// call is skipped entirely.
type RegexFilter struct {
	re        *regexp.Regexp
	prefilter *ahocorasick.Automaton
}

// CompileRegex compiles pattern once; the resulting RegexFilter is
// safe for concurrent use by every chunk worker.
func CompileRegex(pattern string) (*RegexFilter, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	f := &RegexFilter{re: re}
	if lits, ok := requiredLiterals(pattern); ok && len(lits) > 0 {
		builder := ahocorasick.NewBuilder()
		for _, lit := range lits {
			builder.AddPattern([]byte(lit))
		}
		if auto, err := builder.Build(); err == nil {
			f.prefilter = auto
		}
	}
	return f, nil
}

// Matches reports whether the pattern matches anywhere in line.
func (f *RegexFilter) Matches(line []byte) bool {
	if f.prefilter != nil && !f.prefilter.IsMatch(line) {
		return false
	}
	return f.re.Match(line)
}
