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

package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"log"

	"github.com/blazelog/logscan/internal/toolsurface"
)

// request is one line of the stdio protocol: a tool name plus its
// JSON arguments, matching the shape an RPC transport would decode
// off the wire (transport itself out of scope, spec.md §6).
type request struct {
	Tool      string                 `json:"tool"`
	Arguments map[string]interface{} `json:"arguments"`
}

type response struct {
	Summary string          `json:"summary"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// serveStdio reads one JSON request per line until EOF, dispatching
// each through toolsurface.Invoke and writing one JSON response per
// line. A malformed line or failed operation yields an error response
// rather than terminating the loop. Before dispatch, cfg fills in a
// request's missing limit (for every tool that accepts one) and, for
// a grouped analyze_logs request, its missing sort_by.
func serveStdio(r io.Reader, w io.Writer, logger *log.Logger, cfg config) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	enc := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			logger.Printf("malformed request: %s", err)
			enc.Encode(response{Error: err.Error()})
			continue
		}
		applyDefaults(req.Tool, req.Arguments, cfg)

		summary, payload, err := toolsurface.Invoke(req.Tool, req.Arguments)
		if err != nil {
			enc.Encode(response{Error: err.Error()})
			continue
		}
		enc.Encode(response{Summary: summary, Payload: payload})
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyDefaults(tool string, args map[string]interface{}, cfg config) {
	if _, ok := args["limit"]; !ok && cfg.DefaultLimit > 0 && tool != "get_log_schema" {
		args["limit"] = float64(cfg.DefaultLimit)
	}
	if tool == "analyze_logs" && cfg.DefaultSortBy != "" {
		if _, ok := args["sort_by"]; !ok {
			if _, hasGroupBy := args["group_by"]; hasGroupBy {
				args["sort_by"] = cfg.DefaultSortBy
			}
		}
	}
}
