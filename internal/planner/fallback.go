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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/blazelog/logscan/internal/dataframe"
	"github.com/blazelog/logscan/internal/engerr"
	"github.com/blazelog/logscan/internal/logfmt"
	"github.com/blazelog/logscan/internal/source"
	"github.com/blazelog/logscan/xsv"
)

// loadTable materializes a resolvedFile into columns and rows for the
// dataframe fallback. Decompression (package source) is applied
// transparently; a compressed file never takes the fast scanner path
// regardless of format, since it cannot be memory-mapped.
func loadTable(rf resolvedFile) ([]dataframe.Column, []dataframe.Row, error) {
	rc, err := source.Open(rf.path)
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()

	switch rf.format {
	case source.FormatJSON:
		return loadJSON(rc)
	case source.FormatCSV:
		return loadCSV(rc)
	case source.FormatApache, source.FormatNginx:
		return loadApacheRows(rc)
	case source.FormatSyslog:
		return loadSyslogRows(rc)
	default:
		return nil, nil, engerr.New(engerr.UnknownFormat, "no dataframe reader for format %v", rf.format)
	}
}

func loadJSON(r io.Reader) ([]dataframe.Column, []dataframe.Row, error) {
	dec := json.NewDecoder(r)
	var rows []dataframe.Row
	colSet := map[string]bool{}
	var colOrder []string
	for {
		var obj map[string]interface{}
		if err := dec.Decode(&obj); err != nil {
			if err == io.EOF {
				break
			}
			return nil, nil, engerr.Wrap(engerr.ParseFailed, err, "decode NDJSON record")
		}
		row := make(dataframe.Row, len(obj))
		for k, v := range obj {
			if !colSet[k] {
				colSet[k] = true
				colOrder = append(colOrder, k)
			}
			row[k] = fmt.Sprint(v)
		}
		rows = append(rows, row)
	}
	cols := make([]dataframe.Column, 0, len(colOrder))
	for _, name := range colOrder {
		cols = append(cols, dataframe.Column{Name: name, Type: dataframe.TypeString})
	}
	return cols, rows, nil
}

func loadCSV(r io.Reader) ([]dataframe.Column, []dataframe.Row, error) {
	br := bufio.NewReader(r)
	headerLine, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, nil, engerr.Wrap(engerr.ParseFailed, err, "read header")
	}
	headerLine = strings.TrimRight(headerLine, "\r\n")

	var sep xsv.Delim
	if strings.Contains(headerLine, "\t") {
		sep = xsv.TabDelim
	} else {
		sep = xsv.CommaDelim
	}

	full := io.MultiReader(strings.NewReader(headerLine+"\n"), br)

	var header []string
	var rows []dataframe.Row
	if sep == xsv.TabDelim {
		c := &xsv.TsvChopper{}
		h, err := c.GetNext(full)
		if err != nil {
			return nil, nil, engerr.Wrap(engerr.ParseFailed, err, "read TSV header")
		}
		header = append([]string(nil), h...)
		for {
			fields, err := c.GetNext(full)
			if err != nil {
				break
			}
			rows = append(rows, rowFromFields(header, fields))
		}
	} else {
		c := &xsv.CsvChopper{}
		h, err := c.GetNext(full)
		if err != nil {
			return nil, nil, engerr.Wrap(engerr.ParseFailed, err, "read CSV header")
		}
		header = append([]string(nil), h...)
		for {
			fields, err := c.GetNext(full)
			if err != nil {
				break
			}
			rows = append(rows, rowFromFields(header, fields))
		}
	}

	cols := make([]dataframe.Column, len(header))
	for i, name := range header {
		cols[i] = dataframe.Column{Name: name, Type: dataframe.TypeString}
	}
	return cols, rows, nil
}

func rowFromFields(header, fields []string) dataframe.Row {
	row := make(dataframe.Row, len(header))
	for i, name := range header {
		if i < len(fields) {
			row[name] = fields[i]
		}
	}
	return row
}

var apacheColumns = []dataframe.Column{
	{Name: "ip", Type: dataframe.TypeString},
	{Name: "timestamp", Type: dataframe.TypeTimestamp},
	{Name: "method", Type: dataframe.TypeString},
	{Name: "path", Type: dataframe.TypeString},
	{Name: "status", Type: dataframe.TypeInt},
	{Name: "size", Type: dataframe.TypeInt},
	{Name: "referer", Type: dataframe.TypeString},
	{Name: "user_agent", Type: dataframe.TypeString},
}

func loadApacheRows(r io.Reader) ([]dataframe.Column, []dataframe.Row, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var rows []dataframe.Row
	for sc.Scan() {
		line := append([]byte(nil), sc.Bytes()...)
		off, ok := logfmt.LocateApache(line)
		if !ok {
			continue
		}
		status := logfmt.Status(line, off)
		rows = append(rows, dataframe.Row{
			"ip":         string(logfmt.IP(line, off)),
			"timestamp":  string(logfmt.Timestamp(line, off)),
			"method":     string(logfmt.Method(line, off)),
			"path":       string(logfmt.Path(line, off)),
			"status":     fmt.Sprint(status),
			"size":       fmt.Sprint(logfmt.Size(line, off)),
			"referer":    string(logfmt.Referer(line, off)),
			"user_agent": string(logfmt.UserAgent(line, off)),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, nil, engerr.Wrap(engerr.IoError, err, "scan apache lines")
	}
	return append([]dataframe.Column(nil), apacheColumns...), rows, nil
}

var syslogColumns = []dataframe.Column{
	{Name: "hostname", Type: dataframe.TypeString},
	{Name: "process", Type: dataframe.TypeString},
	{Name: "message", Type: dataframe.TypeString},
}

func loadSyslogRows(r io.Reader) ([]dataframe.Column, []dataframe.Row, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var rows []dataframe.Row
	for sc.Scan() {
		line := append([]byte(nil), sc.Bytes()...)
		off, ok := logfmt.LocateSyslog(line)
		if !ok {
			continue
		}
		rows = append(rows, dataframe.Row{
			"hostname": string(logfmt.Hostname(line, off)),
			"process":  string(logfmt.Process(line, off)),
			"message":  string(logfmt.Message(line, off)),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, nil, engerr.Wrap(engerr.IoError, err, "scan syslog lines")
	}
	return append([]dataframe.Column(nil), syslogColumns...), rows, nil
}
