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
	"fmt"

	"github.com/blazelog/logscan/internal/agg"
	"github.com/blazelog/logscan/internal/dataframe"
	"github.com/blazelog/logscan/internal/engerr"
	"github.com/blazelog/logscan/internal/filter"
	"github.com/blazelog/logscan/internal/logtime"
	"github.com/blazelog/logscan/internal/memframe"
	"github.com/blazelog/logscan/internal/source"
)

// commonFormat reports the format shared by every file, if uniform.
// A mixed-format glob always routes through the dataframe fallback,
// since the fast-path scanner's Plan is format-specific; so does a
// glob that includes a compressed file, which cannot be memory-mapped.
func commonFormat(files []resolvedFile) (source.Format, bool) {
	if len(files) == 0 {
		return source.FormatAuto, false
	}
	f := files[0].format
	for _, rf := range files {
		if rf.format != f || source.DetectCompression(rf.path) != source.CompressionNone {
			return source.FormatAuto, false
		}
	}
	return f, true
}

func paths(files []resolvedFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.path
	}
	return out
}

// AnalyzeLogs implements analyze_logs: filter, optionally group and
// count, sort, and return rows.
func AnalyzeLogs(req AnalyzeRequest) (*Response, error) {
	files, skipped, err := resolveFiles(req.Path, req.Format)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, engerr.New(engerr.IoError, "no readable files for %s", req.Path)
	}

	if format, uniform := commonFormat(files); uniform {
		if plan, ok, err := analyzeFastPath(req, format); err != nil {
			return nil, err
		} else if ok {
			result, failed, err := runFanOut(paths(files), plan)
			if err != nil {
				return nil, err
			}
			rows := make([]map[string]interface{}, 0, len(result.Lines))
			for _, l := range result.Lines {
				rows = append(rows, map[string]interface{}{"line": string(l)})
			}
			summary := fmt.Sprintf("matched %d of %d scanned lines across %d file(s)",
				result.LinesMatched, result.LinesScanned, len(files))
			summary = appendSkipped(summary, skipped, failed)
			return newResponse(summary, rows, engineFastPath), nil
		}
	}

	return analyzeFallback(req, files, skipped)
}

func analyzeFallback(req AnalyzeRequest, files []resolvedFile, skipped []string) (*Response, error) {
	cols, rows, failed, err := loadAllTables(files)
	if err != nil {
		return nil, err
	}
	var f dataframe.Frame = memframe.New(cols, rows)

	if req.FilterStatus != "" {
		sf, err := filter.ParseStatus(req.FilterStatus)
		if err != nil {
			return nil, err
		}
		f = f.FilterStatus("status", sf)
	}
	if req.FilterText != "" {
		f = f.FilterText("message", req.FilterText, true)
	}
	if req.FilterTimeStart != "" || req.FilterTimeEnd != "" {
		var start, end int64
		if req.FilterTimeStart != "" {
			if ts, ok := filter.ParseTimeBound(req.FilterTimeStart); ok {
				start = ts
			}
		}
		if req.FilterTimeEnd != "" {
			if ts, ok := filter.ParseTimeBound(req.FilterTimeEnd); ok {
				end = ts
			}
		}
		f = f.FilterTimeRange("timestamp", start, end)
	}
	if req.GroupBy != "" {
		f = f.GroupBy(req.GroupBy, dataframe.GroupCount, req.GroupBy)
	}
	sortCol := req.SortBy
	if sortCol == "" && req.GroupBy != "" {
		sortCol = "count"
	}
	if sortCol != "" {
		f = f.Sort(sortCol, req.SortDesc)
	}
	f = f.Limit(normalizeLimit(req.Limit))

	res, err := f.Collect()
	if err != nil {
		return nil, err
	}
	out := toGenericRows(res)
	summary := fmt.Sprintf("dataframe fallback returned %d row(s) from %d file(s)", len(out), len(files))
	summary = appendSkipped(summary, skipped, failed)
	return newResponse(summary, out, engineFallback), nil
}

// GetLogSchema implements get_log_schema.
func GetLogSchema(req SchemaRequest) (*Response, error) {
	files, skipped, err := resolveFiles(req.Path, req.Format)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, engerr.New(engerr.IoError, "no readable files for %s", req.Path)
	}
	cols, rows, _, err := loadAllTables(files[:1])
	if err != nil {
		return nil, err
	}
	n := req.SampleRows
	if n <= 0 {
		n = 5
	}
	if n > len(rows) {
		n = len(rows)
	}
	schemaRows := make([]map[string]interface{}, 0, len(cols))
	for _, c := range cols {
		schemaRows = append(schemaRows, map[string]interface{}{"column": c.Name, "type": c.Type.String()})
	}
	sample := make([]map[string]interface{}, 0, n)
	for _, r := range rows[:n] {
		m := make(map[string]interface{}, len(r))
		for k, v := range r {
			m[k] = v
		}
		sample = append(sample, m)
	}
	summary := fmt.Sprintf("%d column(s), %d sample row(s) from %s", len(cols), n, files[0].path)
	summary = appendSkipped(summary, skipped, nil)
	resp := newResponse(summary, schemaRows, engineFallback)
	resp.Rows = append(resp.Rows, map[string]interface{}{"sample_rows": sample})
	return resp, nil
}

// AggregateLogs implements aggregate_logs. group_by is required.
func AggregateLogs(req AggregateRequest) (*Response, error) {
	if req.GroupBy == "" {
		return nil, engerr.New(engerr.InvalidQuery, "aggregate_logs requires group_by")
	}
	files, skipped, err := resolveFiles(req.Path, req.Format)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, engerr.New(engerr.IoError, "no readable files for %s", req.Path)
	}

	if format, uniform := commonFormat(files); uniform {
		if plan, ok, err := aggregateFastPath(req, format); err != nil {
			return nil, err
		} else if ok {
			result, failed, err := runFanOut(paths(files), plan)
			if err != nil {
				return nil, err
			}
			rows := groupEntriesToRows(req.Operation, result.Groups)
			summary := fmt.Sprintf("aggregated %s over %d group(s) across %d file(s)", req.Operation, len(rows), len(files))
			summary = appendSkipped(summary, skipped, failed)
			return newResponse(summary, rows, engineFastPath), nil
		}
	}

	cols, rows, failed, err := loadAllTables(files)
	if err != nil {
		return nil, err
	}
	var f dataframe.Frame = memframe.New(cols, rows)
	if req.FilterText != "" {
		f = f.FilterText("message", req.FilterText, true)
	}
	op, err := groupOpFromString(req.Operation)
	if err != nil {
		return nil, err
	}
	valueCol := req.Column
	if valueCol == "" {
		valueCol = req.GroupBy
	}
	f = f.GroupBy(req.GroupBy, op, valueCol).Sort(metricSortColumn(op), true).Limit(normalizeLimit(req.Limit))
	res, err := f.Collect()
	if err != nil {
		return nil, err
	}
	out := toGenericRows(res)
	summary := fmt.Sprintf("dataframe fallback aggregated %s into %d row(s) from %d file(s)", req.Operation, len(out), len(files))
	summary = appendSkipped(summary, skipped, failed)
	return newResponse(summary, out, engineFallback), nil
}

// SearchPattern implements search_pattern: a regex search.
func SearchPattern(req SearchRequest) (*Response, error) {
	files, skipped, err := resolveFiles(req.Path, req.Format)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, engerr.New(engerr.IoError, "no readable files for %s", req.Path)
	}

	if format, uniform := commonFormat(files); uniform {
		if plan, ok, err := searchFastPath(req, format); err != nil {
			return nil, err
		} else if ok {
			result, failed, err := runFanOut(paths(files), plan)
			if err != nil {
				return nil, err
			}
			rows := make([]map[string]interface{}, 0, len(result.Lines))
			for _, l := range result.Lines {
				rows = append(rows, map[string]interface{}{"line": string(l)})
			}
			summary := fmt.Sprintf("pattern matched %d line(s) across %d file(s)", len(rows), len(files))
			summary = appendSkipped(summary, skipped, failed)
			return newResponse(summary, rows, engineFastPath), nil
		}
	}

	cols, rows, failed, err := loadAllTables(files)
	if err != nil {
		return nil, err
	}
	col := req.Column
	if col == "" {
		col = "message"
	}
	f := memframe.New(cols, rows).FilterRegex(col, req.Pattern).Limit(normalizeLimit(req.Limit))
	res, err := f.Collect()
	if err != nil {
		return nil, err
	}
	out := toGenericRows(res)
	summary := fmt.Sprintf("dataframe fallback pattern search returned %d row(s) from %d file(s)", len(out), len(files))
	summary = appendSkipped(summary, skipped, failed)
	return newResponse(summary, out, engineFallback), nil
}

// TimeAnalysis implements time_analysis: group by truncated
// timestamp bucket. Always uses the dataframe fallback, since
// bucketed-time grouping is not part of the fast-path dispatch table.
func TimeAnalysis(req TimeAnalysisRequest) (*Response, error) {
	files, skipped, err := resolveFiles(req.Path, req.Format)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, engerr.New(engerr.IoError, "no readable files for %s", req.Path)
	}
	cols, rows, failed, err := loadAllTables(files)
	if err != nil {
		return nil, err
	}

	timeCol := req.TimeColumn
	if timeCol == "" {
		timeCol = "timestamp"
	}
	countCol := req.CountColumn
	bucketCol := "bucket"
	for i, r := range rows {
		rows[i] = bucketRow(r, timeCol, bucketCol, req.Bucket)
	}
	cols = append(cols, dataframe.Column{Name: bucketCol, Type: dataframe.TypeString})

	var f dataframe.Frame = memframe.New(cols, rows)
	if req.FilterText != "" {
		f = f.FilterText("message", req.FilterText, true)
	}
	valueCol := countCol
	if valueCol == "" {
		valueCol = bucketCol
	}
	op := dataframe.GroupCount
	if countCol != "" {
		op = dataframe.GroupSum
	}
	f = f.GroupBy(bucketCol, op, valueCol).Sort(bucketCol, false).Limit(normalizeLimit(req.Limit))
	res, err := f.Collect()
	if err != nil {
		return nil, err
	}
	out := toGenericRows(res)
	summary := fmt.Sprintf("bucketed by %s into %d row(s) from %d file(s)", req.Bucket, len(out), len(files))
	summary = appendSkipped(summary, skipped, failed)
	return newResponse(summary, out, engineFallback), nil
}

func metricSortColumn(op dataframe.GroupOp) string {
	switch op {
	case dataframe.GroupCount:
		return "count"
	case dataframe.GroupSum:
		return "sum"
	case dataframe.GroupAvg:
		return "avg"
	case dataframe.GroupMin:
		return "min"
	case dataframe.GroupMax:
		return "max"
	case dataframe.GroupUniqueCount:
		return "unique_count"
	default:
		return "count"
	}
}

func groupOpFromString(s string) (dataframe.GroupOp, error) {
	switch s {
	case "count":
		return dataframe.GroupCount, nil
	case "sum":
		return dataframe.GroupSum, nil
	case "avg":
		return dataframe.GroupAvg, nil
	case "min":
		return dataframe.GroupMin, nil
	case "max":
		return dataframe.GroupMax, nil
	case "unique":
		return dataframe.GroupUniqueCount, nil
	default:
		return 0, engerr.New(engerr.InvalidQuery, "unknown aggregate operation %q", s)
	}
}

func groupEntriesToRows(operation string, entries []agg.Entry) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		row := map[string]interface{}{"key": e.Key}
		switch operation {
		case "sum":
			row["sum"] = e.Result.Sum
		case "avg":
			row["avg"] = e.Result.Avg()
		case "min":
			row["min"] = e.Result.Min
		case "max":
			row["max"] = e.Result.Max
		default:
			row["count"] = e.Result.Count
		}
		out = append(out, row)
	}
	return out
}

func toGenericRows(res *dataframe.Result) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(res.Rows))
	for _, r := range res.Rows {
		m := make(map[string]interface{}, len(r))
		for k, v := range r {
			m[k] = v
		}
		out = append(out, m)
	}
	return out
}

func appendSkipped(summary string, groups ...[]string) string {
	var all []string
	for _, g := range groups {
		all = append(all, g...)
	}
	if len(all) == 0 {
		return summary
	}
	return fmt.Sprintf("%s (skipped %d unreadable file(s): %v)", summary, len(all), all)
}

func loadAllTables(files []resolvedFile) ([]dataframe.Column, []dataframe.Row, []string, error) {
	var cols []dataframe.Column
	var rows []dataframe.Row
	var failed []string
	for _, rf := range files {
		c, r, err := loadTable(rf)
		if err != nil {
			failed = append(failed, rf.path)
			continue
		}
		if cols == nil {
			cols = c
		}
		rows = append(rows, r...)
	}
	if cols == nil {
		return nil, nil, failed, engerr.New(engerr.IoError, "no files could be read")
	}
	return cols, rows, failed, nil
}

func bucketRow(r dataframe.Row, timeCol, bucketCol, bucket string) dataframe.Row {
	ts := r[timeCol]
	// Rewrite a parseable timestamp (e.g. Apache "10/Oct/2024:13:55:36
	// +0000") into ISO form so the fixed-width truncation below applies.
	if enc, ok := logtime.Parse([]byte(ts)); ok {
		ts = fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d",
			enc/1e10, enc/1e8%100, enc/1e6%100, enc/1e4%100, enc/100%100, enc%100)
	}
	var truncated string
	switch bucket {
	case "minute":
		truncated = truncateAt(ts, 16) // "...YYYY-MM-DDTHH:MM"
	case "hour":
		truncated = truncateAt(ts, 13)
	default: // "day"
		truncated = truncateAt(ts, 10)
	}
	out := make(dataframe.Row, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	out[bucketCol] = truncated
	return out
}

func truncateAt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
