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
	"sync"

	"github.com/blazelog/logscan/internal/agg"
	"github.com/blazelog/logscan/internal/scan"
)

// runFanOut runs plan against every file in parallel (spec.md §4.8
// "multi-file execution") and merges the per-file results by the
// same laws scan.bytes uses to merge per-chunk results.
func runFanOut(paths []string, plan *scan.Plan) (*scan.Result, []string, error) {
	results := make([]*scan.Result, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, p := range paths {
		i, p := i, p
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := scan.Path(p, plan)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = r
		}()
	}
	wg.Wait()

	var failed []string
	merged := &scan.Result{}
	groups := agg.NewGroupMap()
	hasGroups := false
	aggregate := agg.Identity()
	hasAggregate := false

	for i, r := range results {
		if errs[i] != nil || r == nil {
			failed = append(failed, paths[i])
			continue
		}
		merged.Lines = append(merged.Lines, r.Lines...)
		merged.LinesScanned += r.LinesScanned
		merged.LinesMatched += r.LinesMatched
		if len(r.Groups) > 0 {
			hasGroups = true
			for _, e := range r.Groups {
				groups.AddResult([]byte(e.Key), e.Result)
			}
		}
		if plan.Mode == scan.ModeAggregateField && plan.GroupBy == scan.GroupNone {
			hasAggregate = true
			aggregate = agg.Merge(aggregate, r.Aggregate)
		}
	}

	if plan.Limit > 0 && len(merged.Lines) > plan.Limit {
		merged.Lines = merged.Lines[:plan.Limit]
	}
	if hasGroups {
		entries := groups.Sorted(plan.Metric)
		if plan.Limit > 0 && len(entries) > plan.Limit {
			entries = entries[:plan.Limit]
		}
		merged.Groups = entries
	}
	if hasAggregate {
		merged.Aggregate = aggregate
	}

	return merged, failed, nil
}
