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
	"github.com/blazelog/logscan/internal/agg"
	"github.com/blazelog/logscan/internal/engerr"
	"github.com/blazelog/logscan/internal/filter"
	"github.com/blazelog/logscan/internal/scan"
	"github.com/blazelog/logscan/internal/source"
)

// scanFormat maps a resolved source.Format to the scanner's narrower
// Format (Nginx is handled identically to Apache, spec.md §3).
func scanFormat(f source.Format) (scan.Format, bool) {
	switch f {
	case source.FormatApache, source.FormatNginx:
		return scan.FormatApache, true
	case source.FormatSyslog:
		return scan.FormatSyslog, true
	default:
		return 0, false
	}
}

var apacheGroupFields = map[string]scan.GroupField{
	"status":     scan.GroupStatus,
	"method":     scan.GroupMethod,
	"path":       scan.GroupPath,
	"ip":         scan.GroupIP,
	"referer":    scan.GroupReferer,
	"user_agent": scan.GroupUserAgent,
}

var syslogGroupFields = map[string]scan.GroupField{
	"hostname": scan.GroupHostname,
	"process":  scan.GroupProcess,
}

func groupField(format scan.Format, name string) (scan.GroupField, bool) {
	if name == "" {
		return scan.GroupNone, true
	}
	if format == scan.FormatApache {
		f, ok := apacheGroupFields[name]
		return f, ok
	}
	f, ok := syslogGroupFields[name]
	return f, ok
}

func buildPredicates(p *scan.Plan, statusExpr, textPattern, timeStart, timeEnd string) error {
	if statusExpr != "" {
		sf, err := filter.ParseStatus(statusExpr)
		if err != nil {
			return err
		}
		p.Status = &sf
	}
	if textPattern != "" {
		tf := filter.NewTextFilter(textPattern, true)
		p.Text = &tf
	}
	if timeStart != "" || timeEnd != "" {
		tf := filter.TimeFilter{}
		if timeStart != "" {
			ts, ok := filter.ParseTimeBound(timeStart)
			if !ok {
				return errInvalidTimeBound(timeStart)
			}
			tf.Start = &ts
		}
		if timeEnd != "" {
			ts, ok := filter.ParseTimeBound(timeEnd)
			if !ok {
				return errInvalidTimeBound(timeEnd)
			}
			tf.End = &ts
		}
		p.Time = &tf
	}
	return nil
}

// analyzeFastPath builds the fast-path plan for analyze_logs. Per the
// dispatch table, analyze takes the fast path whenever there is no
// group_by.
func analyzeFastPath(req AnalyzeRequest, format source.Format) (*scan.Plan, bool, error) {
	sf, ok := scanFormat(format)
	if !ok || req.GroupBy != "" {
		return nil, false, nil
	}
	plan := &scan.Plan{Format: sf, Mode: scan.ModeFilterLines, Limit: normalizeLimit(req.Limit)}
	if err := buildPredicates(plan, req.FilterStatus, req.FilterText, req.FilterTimeStart, req.FilterTimeEnd); err != nil {
		return nil, false, err
	}
	return plan, true, nil
}

// aggregateFastPath builds the fast-path plan for aggregate_logs. The
// group field is resolved per operation rather than up front: count
// requires group_by to be a member of the format's group set (spec.md
// §4.8 "group_by ∈ Apache group set"), while sum/avg/min/max treat
// group_by as optional and only need it resolved when one was given,
// so an operation that doesn't need Apache-group support is never
// excluded from the fast path by a lookup it didn't ask for.
func aggregateFastPath(req AggregateRequest, format source.Format) (*scan.Plan, bool, error) {
	sf, ok := scanFormat(format)
	if !ok {
		return nil, false, nil
	}

	switch req.Operation {
	case "count":
		gf, ok := groupField(sf, req.GroupBy)
		if !ok || gf == scan.GroupNone {
			return nil, false, nil
		}
		plan := &scan.Plan{Format: sf, Mode: scan.ModeGroupByCount, GroupBy: gf, Metric: agg.MetricCount, Limit: normalizeLimit(req.Limit)}
		if err := buildPredicates(plan, "", req.FilterText, "", ""); err != nil {
			return nil, false, err
		}
		return plan, true, nil
	case "sum", "avg", "min", "max":
		if sf != scan.FormatApache || req.Column != "size" {
			return nil, false, nil
		}
		gf, ok := groupField(sf, req.GroupBy)
		if !ok {
			return nil, false, nil
		}
		metric := agg.MetricSum
		plan := &scan.Plan{
			Format:       sf,
			Mode:         scan.ModeAggregateField,
			GroupBy:      gf,
			NumericField: scan.NumericSize,
			Metric:       metric,
			Limit:        normalizeLimit(req.Limit),
		}
		if err := buildPredicates(plan, "", req.FilterText, "", ""); err != nil {
			return nil, false, err
		}
		return plan, true, nil
	default:
		// "unique" (unique_count) is not part of the Apache/Syslog
		// fast-path dispatch table and always falls through.
		return nil, false, nil
	}
}

// searchFastPath builds the fast-path plan for search_pattern: both
// Apache and Syslog support it unconditionally.
func searchFastPath(req SearchRequest, format source.Format) (*scan.Plan, bool, error) {
	sf, ok := scanFormat(format)
	if !ok {
		return nil, false, nil
	}
	pattern := req.Pattern
	if !req.CaseSensitive {
		pattern = "(?i)" + pattern
	}
	rf, err := filter.CompileRegex(pattern)
	if err != nil {
		return nil, false, err
	}
	plan := &scan.Plan{Format: sf, Mode: scan.ModeRegexSearch, Regex: rf, Limit: normalizeLimit(req.Limit)}
	return plan, true, nil
}

func errInvalidTimeBound(s string) error {
	return engerr.New(engerr.InvalidQuery, "invalid time bound %q", s)
}
