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

package scan

import (
	"github.com/blazelog/logscan/internal/agg"
	"github.com/blazelog/logscan/internal/filter"
)

// Format selects which field locator a scan uses to interpret lines.
type Format int

const (
	FormatApache Format = iota
	FormatSyslog
)

// Mode selects what a scan produces.
type Mode int

const (
	// ModeFilterLines returns matching raw lines, in file order.
	ModeFilterLines Mode = iota
	// ModeGroupByCount groups by a field and counts occurrences.
	ModeGroupByCount
	// ModeAggregateField groups by a field (optionally "" for a
	// single ungrouped bucket) and aggregates a numeric field.
	ModeAggregateField
	// ModeRegexSearch returns matching raw lines using the regex
	// predicate as the sole filter.
	ModeRegexSearch
)

// GroupField names which extracted field a group-by operates over.
type GroupField int

const (
	GroupNone GroupField = iota
	GroupStatus
	GroupMethod
	GroupPath
	GroupIP
	GroupReferer
	GroupUserAgent
	GroupHostname
	GroupProcess
)

// NumericField names which extracted field an aggregate operates over.
type NumericField int

const (
	NumericSize NumericField = iota
)

// Plan declares which predicates to apply, which field to group or
// aggregate on, and the shape of the output, for a single scan call
// (spec.md §4.7).
type Plan struct {
	Format Format
	Mode   Mode

	Status *filter.StatusFilter
	Time   *filter.TimeFilter
	Text   *filter.TextFilter
	Regex  *filter.RegexFilter

	GroupBy      GroupField
	NumericField NumericField
	Metric       agg.Metric

	// Limit bounds the returned line list or group list. Zero means
	// unbounded.
	Limit int
}

// matchesStatus, matchesTime and matchesText apply the plan's
// predicates to a line's extracted fields; callers invoke them in
// increasing cost order and stop at the first failure (spec.md §4.7
// step 3). A nil predicate always matches. matchesTime's ok reports
// whether the timestamp could be parsed at all; it is consulted only
// when the plan has a non-empty time filter.
func (p *Plan) matchesStatus(status uint16) bool {
	if p.Status == nil {
		return true
	}
	return p.Status.Matches(status)
}

func (p *Plan) matchesTime(ts int64, ok bool) bool {
	if p.Time == nil {
		return true
	}
	if p.Time.IsZero() {
		return true
	}
	if !ok {
		return false
	}
	return p.Time.Matches(ts)
}

func (p *Plan) matchesText(line []byte) bool {
	if p.Text != nil && !p.Text.Matches(line) {
		return false
	}
	if p.Regex != nil && !p.Regex.Matches(line) {
		return false
	}
	return true
}
