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

// Package planner inspects a tool-surface request's declared/inferred
// format and filter/group shape and dispatches it either to the
// memory-mapped fast-path scanner (package scan) or the dataframe
// fallback (package memframe), per the dispatch table in spec §4.8.
package planner

import "github.com/blazelog/logscan/internal/source"

// DefaultLimit is applied when a request does not specify one.
const DefaultLimit = 50

// AnalyzeRequest backs the analyze_logs tool operation.
type AnalyzeRequest struct {
	Path            string
	Format          source.Format
	FilterStatus    string
	FilterText      string
	FilterTimeStart string
	FilterTimeEnd   string
	GroupBy         string
	SortBy          string
	SortDesc        bool
	Limit           int
}

// SchemaRequest backs the get_log_schema tool operation.
type SchemaRequest struct {
	Path       string
	Format     source.Format
	SampleRows int
}

// AggregateRequest backs the aggregate_logs tool operation.
// GroupBy is required by spec.
type AggregateRequest struct {
	Path       string
	Operation  string // count|sum|avg|min|max|unique
	Column     string
	GroupBy    string
	FilterText string
	Format     source.Format
	Limit      int
}

// SearchRequest backs the search_pattern tool operation.
type SearchRequest struct {
	Path          string
	Pattern       string
	Column        string
	CaseSensitive bool
	Format        source.Format
	Limit         int
}

// TimeAnalysisRequest backs the time_analysis tool operation.
type TimeAnalysisRequest struct {
	Path        string
	Bucket      string // minute|hour|day
	TimeColumn  string
	CountColumn string
	FilterText  string
	Format      source.Format
	Limit       int
}

func normalizeLimit(n int) int {
	if n <= 0 {
		return DefaultLimit
	}
	return n
}
