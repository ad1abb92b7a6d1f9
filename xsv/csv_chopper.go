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

package xsv

import (
	"encoding/csv"
	"io"
)

// CsvChopper reads RFC 4180 CSV, one record per GetNext call, for the
// dataframe fallback's CSV reader (loadCSV in internal/planner). The
// fallback always treats the first record as the column header
// itself, so unlike a general-purpose chopper this one has no
// record-skipping or separator knob: comma-separated input routes
// here, tab-separated input routes to TsvChopper instead.
type CsvChopper struct {
	r  io.Reader
	cr *csv.Reader
}

// GetNext fetches one CSV record and returns the individual columns.
// Due to quoting a CSV record may span multiple lines of text.
func (c *CsvChopper) GetNext(r io.Reader) ([]string, error) {
	c.init(r)
	return c.cr.Read()
}

func (c *CsvChopper) init(r io.Reader) {
	if c.r != r {
		c.r = r
		c.cr = csv.NewReader(c.r)
		c.cr.FieldsPerRecord = -1
		c.cr.ReuseRecord = true
		c.cr.LazyQuotes = true
	}
}
