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

package planner

import (
	"bufio"

	"github.com/blazelog/logscan/internal/source"
)

// resolvedFile pairs an expanded path with its resolved format.
type resolvedFile struct {
	path   string
	format source.Format
}

// resolveFiles expands path as a glob (spec.md §4.8) and resolves
// each match's format, skipping (and logging via the returned
// skipped slice) files that cannot be read or whose format cannot be
// determined — multi-file scans continue over the remaining files
// per spec.md §7 propagation policy.
func resolveFiles(path string, declared source.Format) (files []resolvedFile, skipped []string, err error) {
	matches, err := source.ExpandGlob(path)
	if err != nil {
		return nil, nil, err
	}
	for _, m := range matches {
		line, rerr := firstNonEmptyLine(m)
		if rerr != nil {
			skipped = append(skipped, m)
			continue
		}
		f, ferr := source.Resolve(m, declared, line)
		if ferr != nil {
			skipped = append(skipped, m)
			continue
		}
		files = append(files, resolvedFile{path: m, format: f})
	}
	return files, skipped, nil
}

func firstNonEmptyLine(path string) ([]byte, error) {
	rc, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if len(sc.Bytes()) > 0 {
			return append([]byte(nil), sc.Bytes()...), nil
		}
	}
	return nil, sc.Err()
}
