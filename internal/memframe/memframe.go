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

// Package memframe is an in-process, in-memory implementation of the
// dataframe.Frame contract, backing queries that the fast-path
// scanner cannot serve: CSV/TSV/JSON sources, and any Apache/Syslog
// query whose shape falls outside the dispatch table in package
// planner.
package memframe

import (
	"regexp"
	"strconv"

	"golang.org/x/exp/slices"

	"github.com/blazelog/logscan/internal/bytesearch"
	"github.com/blazelog/logscan/internal/dataframe"
	"github.com/blazelog/logscan/internal/engerr"
	"github.com/blazelog/logscan/internal/filter"
	"github.com/blazelog/logscan/internal/logtime"
)

type stage func(cols []dataframe.Column, rows []dataframe.Row) ([]dataframe.Column, []dataframe.Row, error)

// Frame is the in-memory Frame implementation. The zero value is not
// usable; construct one with New.
type Frame struct {
	cols   []dataframe.Column
	rows   []dataframe.Row
	stages []stage
	err    error
}

// New builds a Frame over an already-materialized table, typically
// produced by one of package planner's CSV/TSV/NDJSON or log-line
// readers.
func New(cols []dataframe.Column, rows []dataframe.Row) *Frame {
	return &Frame{cols: cols, rows: rows}
}

func (f *Frame) chain(s stage) *Frame {
	if f.err != nil {
		return f
	}
	next := &Frame{cols: f.cols, rows: f.rows, err: f.err}
	next.stages = append(append([]stage{}, f.stages...), s)
	return next
}

func (f *Frame) FilterStatus(column string, sf filter.StatusFilter) dataframe.Frame {
	return f.chain(func(cols []dataframe.Column, rows []dataframe.Row) ([]dataframe.Column, []dataframe.Row, error) {
		out := rows[:0:0]
		for _, r := range rows {
			n, err := strconv.ParseUint(r[column], 10, 16)
			if err != nil {
				continue
			}
			if sf.Matches(uint16(n)) {
				out = append(out, r)
			}
		}
		return cols, out, nil
	})
}

func (f *Frame) FilterText(column, pattern string, caseSensitive bool) dataframe.Frame {
	return f.chain(func(cols []dataframe.Column, rows []dataframe.Row) ([]dataframe.Column, []dataframe.Row, error) {
		out := rows[:0:0]
		for _, r := range rows {
			v := r[column]
			var match bool
			if caseSensitive {
				_, match = bytesearch.FindSubstr([]byte(v), []byte(pattern))
			} else {
				match = bytesearch.ContainsFold([]byte(v), []byte(pattern))
			}
			if match {
				out = append(out, r)
			}
		}
		return cols, out, nil
	})
}

func (f *Frame) FilterRegex(column, pattern string) dataframe.Frame {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return &Frame{cols: f.cols, rows: f.rows, err: engerr.Wrap(engerr.ParseFailed, err, "compile regex %q", pattern)}
	}
	return f.chain(func(cols []dataframe.Column, rows []dataframe.Row) ([]dataframe.Column, []dataframe.Row, error) {
		out := rows[:0:0]
		for _, r := range rows {
			if re.MatchString(r[column]) {
				out = append(out, r)
			}
		}
		return cols, out, nil
	})
}

func (f *Frame) FilterTimeRange(column string, start, end int64) dataframe.Frame {
	return f.chain(func(cols []dataframe.Column, rows []dataframe.Row) ([]dataframe.Column, []dataframe.Row, error) {
		tf := filter.TimeFilter{Start: boundPtr(start), End: boundPtr(end)}
		out := rows[:0:0]
		for _, r := range rows {
			ts, ok := logtime.Parse([]byte(r[column]))
			if !ok {
				continue
			}
			if tf.Matches(ts) {
				out = append(out, r)
			}
		}
		return cols, out, nil
	})
}

func boundPtr(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return &v
}

type groupAcc struct {
	sum   float64
	count int
	min   float64
	max   float64
	seen  map[string]struct{}
}

func (f *Frame) GroupBy(column string, op dataframe.GroupOp, valueColumn string) dataframe.Frame {
	return f.chain(func(cols []dataframe.Column, rows []dataframe.Row) ([]dataframe.Column, []dataframe.Row, error) {
		order := make([]string, 0)
		groups := make(map[string]*groupAcc)
		for _, r := range rows {
			key := r[column]
			acc, ok := groups[key]
			if !ok {
				acc = &groupAcc{min: posInf, max: negInf, seen: map[string]struct{}{}}
				groups[key] = acc
				order = append(order, key)
			}
			if op == dataframe.GroupUniqueCount {
				acc.seen[r[valueColumn]] = struct{}{}
				continue
			}
			if op == dataframe.GroupCount {
				acc.count++
				continue
			}
			v, err := strconv.ParseFloat(r[valueColumn], 64)
			if err != nil {
				continue
			}
			acc.sum += v
			acc.count++
			if v < acc.min {
				acc.min = v
			}
			if v > acc.max {
				acc.max = v
			}
		}

		metricName := metricColumnName(op)
		outCols := []dataframe.Column{{Name: column, Type: dataframe.TypeString}, {Name: metricName, Type: dataframe.TypeFloat}}
		outRows := make([]dataframe.Row, 0, len(order))
		for _, key := range order {
			acc := groups[key]
			outRows = append(outRows, dataframe.Row{
				column:     key,
				metricName: formatMetric(op, acc),
			})
		}
		return outCols, outRows, nil
	})
}

const (
	posInf = 1e308 * 10
	negInf = -1e308 * 10
)

func metricColumnName(op dataframe.GroupOp) string {
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
		return "value"
	}
}

func formatMetric(op dataframe.GroupOp, acc *groupAcc) string {
	switch op {
	case dataframe.GroupCount:
		return strconv.Itoa(acc.count)
	case dataframe.GroupSum:
		return strconv.FormatFloat(acc.sum, 'f', -1, 64)
	case dataframe.GroupAvg:
		if acc.count == 0 {
			return "0"
		}
		return strconv.FormatFloat(acc.sum/float64(acc.count), 'f', -1, 64)
	case dataframe.GroupMin:
		return strconv.FormatFloat(acc.min, 'f', -1, 64)
	case dataframe.GroupMax:
		return strconv.FormatFloat(acc.max, 'f', -1, 64)
	case dataframe.GroupUniqueCount:
		return strconv.Itoa(len(acc.seen))
	default:
		return ""
	}
}

func (f *Frame) Sort(column string, desc bool) dataframe.Frame {
	return f.chain(func(cols []dataframe.Column, rows []dataframe.Row) ([]dataframe.Column, []dataframe.Row, error) {
		out := append([]dataframe.Row{}, rows...)
		slices.SortStableFunc(out, func(a, b dataframe.Row) bool {
			vi, vj := a[column], b[column]
			ni, erri := strconv.ParseFloat(vi, 64)
			nj, errj := strconv.ParseFloat(vj, 64)
			var less bool
			if erri == nil && errj == nil {
				less = ni < nj
			} else {
				less = vi < vj
			}
			if desc {
				var greater bool
				if erri == nil && errj == nil {
					greater = ni > nj
				} else {
					greater = vi > vj
				}
				return greater
			}
			return less
		})
		return cols, out, nil
	})
}

func (f *Frame) Select(columns ...string) dataframe.Frame {
	return f.chain(func(cols []dataframe.Column, rows []dataframe.Row) ([]dataframe.Column, []dataframe.Row, error) {
		outCols := make([]dataframe.Column, 0, len(columns))
		known := make(map[string]dataframe.Column, len(cols))
		for _, c := range cols {
			known[c.Name] = c
		}
		for _, name := range columns {
			if c, ok := known[name]; ok {
				outCols = append(outCols, c)
			} else {
				outCols = append(outCols, dataframe.Column{Name: name, Type: dataframe.TypeString})
			}
		}
		outRows := make([]dataframe.Row, len(rows))
		for i, r := range rows {
			nr := make(dataframe.Row, len(columns))
			for _, name := range columns {
				nr[name] = r[name]
			}
			outRows[i] = nr
		}
		return outCols, outRows, nil
	})
}

func (f *Frame) Limit(n int) dataframe.Frame {
	return f.chain(func(cols []dataframe.Column, rows []dataframe.Row) ([]dataframe.Column, []dataframe.Row, error) {
		if n >= 0 && n < len(rows) {
			rows = rows[:n]
		}
		return cols, rows, nil
	})
}

func (f *Frame) Collect() (*dataframe.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	cols, rows := f.cols, f.rows
	for _, s := range f.stages {
		var err error
		cols, rows, err = s(cols, rows)
		if err != nil {
			return nil, engerr.Wrap(engerr.EngineError, err, "dataframe stage failed")
		}
	}
	return &dataframe.Result{Columns: cols, Rows: rows}, nil
}
