package source

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// exportXLSX writes the first sheet of a workbook to a temporary
// tab-separated text file so spreadsheets flow through the same
// line-oriented pipeline as plain text exports. The row iterator keeps
// memory use flat for large sheets.
func exportXLSX(path string) (*Source, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in %s", path)
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows iterator for sheet %s: %w", sheets[0], err)
	}
	defer rows.Close()

	tmp, err := os.CreateTemp("", "txt2pg-*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	name := tmp.Name()

	fail := func(err error) (*Source, error) {
		tmp.Close()
		os.Remove(name)
		return nil, err
	}

	w := bufio.NewWriter(tmp)
	for rows.Next() {
		cols, err := rows.Columns()
		if err != nil {
			return fail(fmt.Errorf("failed to read row: %w", err))
		}
		if _, err := w.WriteString(strings.Join(cols, "\t")); err != nil {
			return fail(fmt.Errorf("failed to write temp file: %w", err))
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail(fmt.Errorf("failed to write temp file: %w", err))
		}
	}
	if err := w.Flush(); err != nil {
		return fail(fmt.Errorf("failed to write temp file: %w", err))
	}

	info, err := tmp.Stat()
	if err != nil {
		return fail(fmt.Errorf("failed to stat temp file: %w", err))
	}
	size := info.Size()

	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	return &Source{
		Path:    name,
		Size:    size,
		Cleanup: func() { os.Remove(name) },
	}, nil
}
