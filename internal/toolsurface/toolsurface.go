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

// Package toolsurface exposes the five log-analysis operations as a
// fixed tool registry: one JSON-in, JSON-out call per operation, with
// required/optional parameter validation ahead of dispatch. It is the
// seam an RPC transport (out of scope here) would sit behind.
package toolsurface

import (
	"encoding/json"
	"fmt"

	"github.com/blazelog/logscan/internal/engerr"
	"github.com/blazelog/logscan/internal/planner"
	"github.com/blazelog/logscan/internal/source"
)

// ToolSpec declares which keys an operation accepts.
type ToolSpec struct {
	Required []string
	Optional []string
}

var toolSpecs = map[string]ToolSpec{
	"analyze_logs": {
		Required: []string{"path"},
		Optional: []string{"format", "filter_status", "filter_text", "filter_time_start", "filter_time_end", "group_by", "sort_by", "sort_desc", "limit"},
	},
	"get_log_schema": {
		Required: []string{"path"},
		Optional: []string{"format", "sample_rows"},
	},
	"aggregate_logs": {
		Required: []string{"path", "operation", "group_by"},
		Optional: []string{"column", "filter_text", "format", "limit"},
	},
	"search_pattern": {
		Required: []string{"path", "pattern"},
		Optional: []string{"column", "case_sensitive", "format", "limit"},
	},
	"time_analysis": {
		Required: []string{"path", "bucket"},
		Optional: []string{"time_column", "count_column", "filter_text", "format", "limit"},
	},
}

// validateArgs enforces a ToolSpec before an operation runs: every
// required key must be present, and every present key must be known
// (fail-first rather than silently ignoring a typo'd parameter).
func validateArgs(operation string, args map[string]interface{}) error {
	spec, ok := toolSpecs[operation]
	if !ok {
		return engerr.New(engerr.InvalidQuery, "unknown tool operation %q", operation)
	}
	for _, r := range spec.Required {
		if _, present := args[r]; !present {
			return engerr.New(engerr.InvalidQuery, "%s: missing required parameter %q", operation, r)
		}
	}
	allowed := make(map[string]struct{}, len(spec.Required)+len(spec.Optional))
	for _, k := range spec.Required {
		allowed[k] = struct{}{}
	}
	for _, k := range spec.Optional {
		allowed[k] = struct{}{}
	}
	for k := range args {
		if _, ok := allowed[k]; !ok {
			return engerr.New(engerr.InvalidQuery, "%s: unknown parameter %q", operation, k)
		}
	}
	return nil
}

func str(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func boolean(args map[string]interface{}, key string) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return false
}

func integer(args map[string]interface{}, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func format(args map[string]interface{}) (source.Format, error) {
	return source.ParseFormat(str(args, "format"))
}

// Invoke dispatches a tool call by name, validating args against the
// operation's ToolSpec first. It returns a human-readable summary and
// the result rows as a JSON payload, per spec.md §4.9's "a
// human-readable summary followed by a JSON payload" contract.
func Invoke(operation string, args map[string]interface{}) (summary string, payload json.RawMessage, err error) {
	if err := validateArgs(operation, args); err != nil {
		return "", nil, err
	}

	switch operation {
	case "analyze_logs":
		return analyzeLogs(args)
	case "get_log_schema":
		return getLogSchema(args)
	case "aggregate_logs":
		return aggregateLogs(args)
	case "search_pattern":
		return searchPattern(args)
	case "time_analysis":
		return timeAnalysis(args)
	default:
		return "", nil, engerr.New(engerr.InvalidQuery, "unknown tool operation %q", operation)
	}
}

func marshalResponse(resp *planner.Response) (string, json.RawMessage, error) {
	payload, err := json.Marshal(resp.Rows)
	if err != nil {
		return "", nil, engerr.Wrap(engerr.EngineError, err, "marshal tool response")
	}
	summary := fmt.Sprintf("[%s] %s (request %s)", resp.UsedPath, resp.Summary, resp.RequestID)
	return summary, payload, nil
}

func analyzeLogs(args map[string]interface{}) (string, json.RawMessage, error) {
	f, err := format(args)
	if err != nil {
		return "", nil, err
	}
	resp, err := planner.AnalyzeLogs(planner.AnalyzeRequest{
		Path:            str(args, "path"),
		Format:          f,
		FilterStatus:    str(args, "filter_status"),
		FilterText:      str(args, "filter_text"),
		FilterTimeStart: str(args, "filter_time_start"),
		FilterTimeEnd:   str(args, "filter_time_end"),
		GroupBy:         str(args, "group_by"),
		SortBy:          str(args, "sort_by"),
		SortDesc:        boolean(args, "sort_desc"),
		Limit:           integer(args, "limit"),
	})
	if err != nil {
		return "", nil, err
	}
	return marshalResponse(resp)
}

func getLogSchema(args map[string]interface{}) (string, json.RawMessage, error) {
	f, err := format(args)
	if err != nil {
		return "", nil, err
	}
	resp, err := planner.GetLogSchema(planner.SchemaRequest{
		Path:       str(args, "path"),
		Format:     f,
		SampleRows: integer(args, "sample_rows"),
	})
	if err != nil {
		return "", nil, err
	}
	return marshalResponse(resp)
}

func aggregateLogs(args map[string]interface{}) (string, json.RawMessage, error) {
	f, err := format(args)
	if err != nil {
		return "", nil, err
	}
	resp, err := planner.AggregateLogs(planner.AggregateRequest{
		Path:       str(args, "path"),
		Operation:  str(args, "operation"),
		Column:     str(args, "column"),
		GroupBy:    str(args, "group_by"),
		FilterText: str(args, "filter_text"),
		Format:     f,
		Limit:      integer(args, "limit"),
	})
	if err != nil {
		return "", nil, err
	}
	return marshalResponse(resp)
}

func searchPattern(args map[string]interface{}) (string, json.RawMessage, error) {
	f, err := format(args)
	if err != nil {
		return "", nil, err
	}
	resp, err := planner.SearchPattern(planner.SearchRequest{
		Path:          str(args, "path"),
		Pattern:       str(args, "pattern"),
		Column:        str(args, "column"),
		CaseSensitive: boolean(args, "case_sensitive"),
		Format:        f,
		Limit:         integer(args, "limit"),
	})
	if err != nil {
		return "", nil, err
	}
	return marshalResponse(resp)
}

func timeAnalysis(args map[string]interface{}) (string, json.RawMessage, error) {
	f, err := format(args)
	if err != nil {
		return "", nil, err
	}
	resp, err := planner.TimeAnalysis(planner.TimeAnalysisRequest{
		Path:        str(args, "path"),
		Bucket:      str(args, "bucket"),
		TimeColumn:  str(args, "time_column"),
		CountColumn: str(args, "count_column"),
		FilterText:  str(args, "filter_text"),
		Format:      f,
		Limit:       integer(args, "limit"),
	})
	if err != nil {
		return "", nil, err
	}
	return marshalResponse(resp)
}
