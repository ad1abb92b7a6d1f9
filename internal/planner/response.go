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
	"github.com/google/uuid"
)

// Response is the result envelope every tool operation returns: a
// human-readable summary followed by a JSON-serializable row payload
// (spec.md §4.9, §6). RequestID lets a caller correlate a response
// with the request that produced it across a log of many concurrent
// invocations.
type Response struct {
	RequestID string                   `json:"request_id"`
	Summary   string                   `json:"summary"`
	Rows      []map[string]interface{} `json:"rows"`
	UsedPath  string                   `json:"used_engine"`
}

func newResponse(summary string, rows []map[string]interface{}, usedPath string) *Response {
	return &Response{
		RequestID: uuid.NewString(),
		Summary:   summary,
		Rows:      rows,
		UsedPath:  usedPath,
	}
}

const (
	engineFastPath = "scanner"
	engineFallback = "dataframe"
)
