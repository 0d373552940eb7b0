package geprice

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/geprice/date"
)

// ym is a helper for tests to create a YearMonth from const.
func ym(year int, month int) date.YearMonth {
	return date.YearMonth{Year: year, Month: time.Month(month)}
}

// rec is a helper for tests to create a Record from an ISO date.
func rec(on string, daily, average, volume int64) Record {
	return Record{Date: date.MustParse(on), Daily: daily, Average: average, Volume: volume}
}

// writeTestFile creates name under dir with content, and the folders leading to it.
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	filename := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return filename
}

// readTestFile returns the content of filename.
func readTestFile(t *testing.T, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("ReadFile(%q) error = %v", filename, err)
	}
	return string(data)
}
