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
	"sort"

	"github.com/blazelog/logscan/internal/engerr"
)

// ExpandGlob resolves a shell-style glob (path/filepath syntax: `*`,
// `?`, character classes) to the files it matches, in lexical order.
// A pattern with zero matches that is nonetheless a path to an
// existing file resolves to that single path; a pattern with zero
// matches otherwise is an IoError (spec.md §4.8 glob expansion).
func ExpandGlob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, engerr.Wrap(engerr.IoError, err, "invalid glob pattern %q", pattern)
	}
	if len(matches) > 0 {
		sort.Strings(matches)
		return matches, nil
	}
	if info, err := os.Stat(pattern); err == nil && !info.IsDir() {
		return []string{pattern}, nil
	}
	return nil, engerr.New(engerr.IoError, "no files matched %q", pattern)
}
