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
	"os"
	"path/filepath"
	"testing"

	"github.com/blazelog/logscan/internal/source"
)

func writeTempLog(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func apacheFixture(statuses []int) string {
	var out string
	for _, s := range statuses {
		out += "192.168.1.1 - - [10/Oct/2024:13:55:36 +0000] \"GET /index.html HTTP/1.1\" " +
			itoaStatus(s) + " 100 \"-\" \"-\"\n"
	}
	return out
}

func itoaStatus(n int) string {
	return string([]byte{'0' + byte(n/100%10), '0' + byte(n/10%10), '0' + byte(n%10)})
}

// TestAnalyzeLogsCountStatusS3 is spec.md scenario S3 through the
// tool surface: count_status(>=400) = 5.
func TestAnalyzeLogsCountStatusS3(t *testing.T) {
	path := writeTempLog(t, "access.log", apacheFixture([]int{200, 200, 404, 500, 404, 200, 503, 301, 404, 200}))
	resp, err := AnalyzeLogs(AnalyzeRequest{
		Path:         path,
		Format:       source.FormatApache,
		FilterStatus: ">=400",
		Limit:        50,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(resp.Rows))
	}
	if resp.UsedPath != engineFastPath {
		t.Errorf("used engine = %s, want fast path", resp.UsedPath)
	}
}

func TestAggregateLogsGroupByStatusCount(t *testing.T) {
	path := writeTempLog(t, "access.log", apacheFixture([]int{200, 200, 404, 500, 404, 200, 503, 301, 404, 200}))
	resp, err := AggregateLogs(AggregateRequest{
		Path:      path,
		Operation: "count",
		GroupBy:   "status",
		Format:    source.FormatApache,
		Limit:     50,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Rows) != 5 {
		t.Fatalf("got %d groups, want 5", len(resp.Rows))
	}
	if resp.Rows[0]["key"] != "200" {
		t.Errorf("top group = %v, want 200", resp.Rows[0]["key"])
	}
}

func TestAggregateLogsRequiresGroupBy(t *testing.T) {
	_, err := AggregateLogs(AggregateRequest{Path: "x", Operation: "count"})
	if err == nil {
		t.Fatal("expected error for missing group_by")
	}
}

func TestAggregateLogsSumSizeS5(t *testing.T) {
	var content string
	for _, size := range []int{100, 200, 50, 150} {
		content += "10.0.0.1 - - [10/Oct/2024:13:55:36 +0000] \"GET /x HTTP/1.1\" 200 " + itoaInt(size) + " \"-\" \"-\"\n"
	}
	path := writeTempLog(t, "access.log", content)
	resp, err := AggregateLogs(AggregateRequest{
		Path:      path,
		Operation: "sum",
		Column:    "size",
		GroupBy:   "status",
		Format:    source.FormatApache,
		Limit:     50,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Rows) != 1 {
		t.Fatalf("got %d rows, want 1 (single status group)", len(resp.Rows))
	}
	if resp.Rows[0]["sum"] != int64(500) {
		t.Errorf("sum = %v, want 500", resp.Rows[0]["sum"])
	}
}

func itoaInt(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func TestSearchPatternRegex(t *testing.T) {
	content := "192.168.1.1 - - [10/Oct/2024:13:55:36 +0000] \"GET /api/v2/users HTTP/1.1\" 200 100 \"-\" \"-\"\n" +
		"192.168.1.1 - - [10/Oct/2024:13:55:37 +0000] \"GET /home HTTP/1.1\" 200 100 \"-\" \"-\"\n"
	path := writeTempLog(t, "access.log", content)
	resp, err := SearchPattern(SearchRequest{
		Path:          path,
		Pattern:       `/api/v[0-9]+/users`,
		CaseSensitive: true,
		Format:        source.FormatApache,
		Limit:         50,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(resp.Rows))
	}
}

func TestGetLogSchemaCSV(t *testing.T) {
	path := writeTempLog(t, "report.csv", "status,size,path\n200,100,/a\n404,0,/b\n")
	resp, err := GetLogSchema(SchemaRequest{Path: path, Format: source.FormatCSV, SampleRows: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Rows) != 4 {
		t.Fatalf("expected 3 column rows + sample row, got %d", len(resp.Rows))
	}
}

func TestTimeAnalysisBucketsByDay(t *testing.T) {
	content := "192.168.1.1 - - [10/Oct/2024:13:55:36 +0000] \"GET /a HTTP/1.1\" 200 100 \"-\" \"-\"\n" +
		"192.168.1.1 - - [10/Oct/2024:14:10:00 +0000] \"GET /b HTTP/1.1\" 200 100 \"-\" \"-\"\n" +
		"192.168.1.1 - - [11/Oct/2024:09:00:00 +0000] \"GET /c HTTP/1.1\" 200 100 \"-\" \"-\"\n"
	path := writeTempLog(t, "access.log", content)
	resp, err := TimeAnalysis(TimeAnalysisRequest{
		Path:   path,
		Bucket: "day",
		Format: source.FormatApache,
		Limit:  50,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Rows) != 2 {
		t.Fatalf("got %d buckets, want 2", len(resp.Rows))
	}
}
