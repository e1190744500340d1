package convert

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// DefaultNull is the marker PostgreSQL's COPY recognizes as SQL NULL.
const DefaultNull = `\N`

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// TransformConfig stores the externally confirmed configuration for a
// transform run.
type TransformConfig struct {
	Columns    []string                // output header and target field count
	Null       string                  // defaults to DefaultNull
	TotalBytes int64                   // source size, for progress reporting
	OnProgress func(read, total int64) // advisory telemetry, may be nil
}

// Transformer streams delimited lines into CSV records ready for bulk
// load. It owns the compiled separator pattern for the whole run and
// processes one line at a time, so memory use is constant regardless of
// source size.
type Transformer struct {
	pattern *SeparatorPattern
	columns []string
	dateIdx map[int]bool
	null    string
	cfg     TransformConfig
}

// NewTransformer validates the configuration and builds a Transformer.
// An empty column list is a configuration error.
func NewTransformer(pattern *SeparatorPattern, cfg TransformConfig) (*Transformer, error) {
	if pattern == nil {
		return nil, fmt.Errorf("separator pattern is required")
	}
	if len(cfg.Columns) == 0 {
		return nil, fmt.Errorf("no columns specified")
	}
	if cfg.Null == "" {
		cfg.Null = DefaultNull
	}

	return &Transformer{
		pattern: pattern,
		columns: cfg.Columns,
		dateIdx: DateColumnIndexes(cfg.Columns),
		null:    cfg.Null,
		cfg:     cfg,
	}, nil
}

// DateColumnIndexes returns the positions whose name designates a date
// column ("birthday" or "date", case-insensitive).
func DateColumnIndexes(columns []string) map[int]bool {
	idx := make(map[int]bool)
	for i, name := range columns {
		switch strings.ToLower(name) {
		case "birthday", "date":
			idx[i] = true
		}
	}
	return idx
}

// Run consumes the source line by line and writes one CSV record per
// line, in input order, preceded by a UTF-8 byte-order mark and a header
// record. Per-field data problems are normalized to null and never abort
// the run; only I/O errors surface.
func (t *Transformer) Run(r io.Reader, w io.Writer) error {
	cr := &countingReader{r: r}
	scanner := bufio.NewScanner(cr)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write byte-order mark: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(t.columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for scanner.Scan() {
		if err := cw.Write(t.TransformLine(scanner.Text())); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
		if t.cfg.OnProgress != nil {
			t.cfg.OnProgress(cr.n, t.cfg.TotalBytes)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// TransformLine applies the per-record pipeline: split on the separator
// pattern, pad or truncate to the column count, null out empty fields,
// normalize date columns. The returned record always has exactly as many
// fields as there are columns.
func (t *Transformer) TransformLine(line string) []string {
	fields := t.pattern.Split(strings.TrimRight(line, "\r"))

	record := make([]string, len(t.columns))
	copy(record, fields)

	for i, f := range record {
		f = strings.TrimSpace(f)
		if f == "" {
			f = t.null
		}
		if t.dateIdx[i] {
			f = NormalizeDate(f, t.null)
		}
		record[i] = f
	}
	return record
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
