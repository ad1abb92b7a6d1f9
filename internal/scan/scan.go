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

// Package scan runs a Plan against a memory-mapped log file: it
// partitions the file into newline-aligned chunks, scans each chunk
// in a worker-pool goroutine, and merges the per-chunk results with
// the commutative merge laws in package agg.
package scan

import (
	"runtime"
	"sync"

	"github.com/blazelog/logscan/internal/agg"
	"github.com/blazelog/logscan/internal/chunk"
	"github.com/blazelog/logscan/internal/engerr"
	"github.com/blazelog/logscan/internal/logfmt"
	"github.com/blazelog/logscan/internal/logtime"
	"github.com/blazelog/logscan/internal/mmapfile"
	"github.com/blazelog/logscan/ints"
)

// Result is the merged output of a scan.
type Result struct {
	// Lines holds matching raw lines in file order, truncated to
	// Plan.Limit if set. Only populated for ModeFilterLines and
	// ModeRegexSearch.
	Lines [][]byte
	// Groups holds the sorted group-by output. Only populated for
	// ModeGroupByCount and ModeAggregateField with a non-empty
	// GroupBy.
	Groups []agg.Entry
	// Aggregate holds the single ungrouped aggregate. Only populated
	// for ModeAggregateField with GroupBy == GroupNone.
	Aggregate agg.Result
	// LinesScanned is the total number of lines visited, including
	// ones skipped by a predicate or a malformed locate.
	LinesScanned uint64
	// LinesMatched is the number of lines that passed every predicate.
	LinesMatched uint64
}

type chunkResult struct {
	lines   [][]byte
	groups  *agg.GroupMap
	agg     agg.Result
	scanned uint64
	matched uint64
}

// File runs plan against the already-opened memory-mapped file mf.
func File(mf *mmapfile.File, plan *Plan) (*Result, error) {
	return bytes(mf.Bytes(), plan)
}

// Path opens path, memory-maps it, and runs plan. It always closes
// the mapping before returning.
func Path(path string, plan *Plan) (*Result, error) {
	mf, err := mmapfile.Open(path)
	if err != nil {
		return nil, err
	}
	defer mf.Close()
	return bytes(mf.Bytes(), plan)
}

func bytes(buf []byte, plan *Plan) (*Result, error) {
	bounds := chunk.Partition(buf, chunk.DefaultTargetSize)
	if len(bounds) == 0 {
		return &Result{}, nil
	}

	results := make([]chunkResult, len(bounds))

	workers := ints.Clamp(runtime.GOMAXPROCS(0), 1, len(bounds))

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var firstErr error
	var errMu sync.Mutex

	for i, b := range bounds {
		i, b := i, b
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			r, err := scanChunk(buf[b.Start:b.End], plan)
			if err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
				return
			}
			results[i] = r
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return merge(results, plan), nil
}

func scanChunk(buf []byte, plan *Plan) (chunkResult, error) {
	var cr chunkResult
	if plan.Mode == ModeGroupByCount || plan.Mode == ModeAggregateField {
		cr.agg = agg.Identity()
		if plan.GroupBy != GroupNone {
			cr.groups = agg.NewGroupMap()
		}
	}
	if plan.Mode == ModeRegexSearch && plan.Regex == nil {
		return cr, engerr.New(engerr.InvalidQuery, "regex search requires a compiled pattern")
	}

	chunk.Lines(buf, func(line []byte) bool {
		cr.scanned++
		ok := processLine(plan, line, &cr)
		if ok {
			cr.matched++
		}
		return true
	})
	return cr, nil
}

func processLine(plan *Plan, line []byte, cr *chunkResult) bool {
	switch plan.Format {
	case FormatApache:
		return processApacheLine(plan, line, cr)
	case FormatSyslog:
		return processSyslogLine(plan, line, cr)
	default:
		return false
	}
}

func processApacheLine(plan *Plan, line []byte, cr *chunkResult) bool {
	off, ok := logfmt.LocateApache(line)
	needsFields := plan.Status != nil || plan.Time != nil || plan.GroupBy != GroupNone || plan.Mode == ModeAggregateField
	if !ok && needsFields {
		return false
	}

	if ok {
		if plan.Status != nil && !plan.matchesStatus(logfmt.Status(line, off)) {
			return false
		}
		if plan.Time != nil && !plan.Time.IsZero() {
			ts, tok := logtime.ParseApache(logfmt.Timestamp(line, off))
			if !plan.matchesTime(ts, tok) {
				return false
			}
		}
	}
	if !plan.matchesText(line) {
		return false
	}

	switch plan.Mode {
	case ModeFilterLines, ModeRegexSearch:
		cr.lines = append(cr.lines, append([]byte(nil), line...))
	case ModeGroupByCount:
		if !ok {
			return false
		}
		key := apacheGroupKey(plan.GroupBy, line, off)
		if key == nil {
			return false
		}
		cr.groups.Add(key, 1)
	case ModeAggregateField:
		if !ok {
			return false
		}
		value := apacheNumericValue(plan.NumericField, line, off)
		if plan.GroupBy == GroupNone {
			cr.agg = cr.agg.Add(value)
		} else {
			key := apacheGroupKey(plan.GroupBy, line, off)
			if key == nil {
				return false
			}
			cr.groups.Add(key, value)
		}
	}
	return true
}

func processSyslogLine(plan *Plan, line []byte, cr *chunkResult) bool {
	off, ok := logfmt.LocateSyslog(line)
	needsFields := plan.GroupBy != GroupNone || plan.Mode == ModeAggregateField
	if !ok && needsFields {
		return false
	}
	if !plan.matchesText(line) {
		return false
	}

	switch plan.Mode {
	case ModeFilterLines, ModeRegexSearch:
		cr.lines = append(cr.lines, append([]byte(nil), line...))
	case ModeGroupByCount:
		if !ok {
			return false
		}
		key := syslogGroupKey(plan.GroupBy, line, off)
		if key == nil {
			return false
		}
		cr.groups.Add(key, 1)
	case ModeAggregateField:
		// Syslog carries no numeric field comparable to Apache's
		// response size; aggregate-by-field over syslog is not part
		// of the fast path (spec.md §4.8) and falls through to the
		// dataframe before reaching here.
		return false
	}
	return true
}

func apacheGroupKey(field GroupField, line []byte, off logfmt.ApacheOffsets) []byte {
	switch field {
	case GroupStatus:
		s := logfmt.Status(line, off)
		if s == 0 {
			return nil
		}
		return []byte{'0' + byte(s/100%10), '0' + byte(s/10%10), '0' + byte(s%10)}
	case GroupMethod:
		return logfmt.Method(line, off)
	case GroupPath:
		return logfmt.Path(line, off)
	case GroupIP:
		return logfmt.IP(line, off)
	case GroupReferer:
		return logfmt.Referer(line, off)
	case GroupUserAgent:
		return logfmt.UserAgent(line, off)
	default:
		return nil
	}
}

func apacheNumericValue(field NumericField, line []byte, off logfmt.ApacheOffsets) int64 {
	switch field {
	case NumericSize:
		return logfmt.Size(line, off)
	default:
		return 0
	}
}

func syslogGroupKey(field GroupField, line []byte, off logfmt.SyslogOffsets) []byte {
	switch field {
	case GroupHostname:
		return logfmt.Hostname(line, off)
	case GroupProcess:
		return logfmt.Process(line, off)
	default:
		return nil
	}
}

func merge(results []chunkResult, plan *Plan) *Result {
	out := &Result{}
	groups := agg.NewGroupMap()
	hasGroups := false
	aggregate := agg.Identity()

	for _, r := range results {
		out.LinesScanned += r.scanned
		out.LinesMatched += r.matched
		if len(r.lines) > 0 {
			out.Lines = append(out.Lines, r.lines...)
		}
		if r.groups != nil {
			hasGroups = true
			groups.MergeInto(r.groups)
		}
		if plan.Mode == ModeAggregateField && plan.GroupBy == GroupNone {
			aggregate = agg.Merge(aggregate, r.agg)
		}
	}

	if plan.Limit > 0 && len(out.Lines) > plan.Limit {
		out.Lines = out.Lines[:plan.Limit]
	}

	if hasGroups {
		entries := groups.Sorted(plan.Metric)
		if plan.Limit > 0 && len(entries) > plan.Limit {
			entries = entries[:plan.Limit]
		}
		out.Groups = entries
	}
	if plan.Mode == ModeAggregateField && plan.GroupBy == GroupNone {
		out.Aggregate = aggregate
	}

	return out
}
