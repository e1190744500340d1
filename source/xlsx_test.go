package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, dir string) string {
	t.Helper()

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"1", "Alice", "01.01.1990"},
		{"2", "Bob", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("failed to build cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("failed to set sheet row: %v", err)
		}
	}

	path := filepath.Join(dir, "people.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close workbook: %v", err)
	}
	return path
}

func TestResolveXLSX(t *testing.T) {
	path := writeWorkbook(t, t.TempDir())

	src, err := Resolve(path, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	content, err := os.ReadFile(src.Path)
	if err != nil {
		t.Fatalf("failed to read exported file: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 exported lines, got %d: %q", len(lines), content)
	}
	if lines[0] != "1\tAlice\t01.01.1990" {
		t.Errorf("first line = %q, want tab-separated row", lines[0])
	}
	if src.Size != int64(len(content)) {
		t.Errorf("Size = %d, want %d", src.Size, len(content))
	}

	src.Cleanup()
	if _, err := os.Stat(src.Path); !os.IsNotExist(err) {
		t.Error("temporary export still exists after cleanup")
	}
}
