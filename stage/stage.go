package stage

import (
	"bufio"
	"bytes"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

// LoadCSV bulk-loads a generated CSV file into a SQLite staging database
// so the output can be smoke-tested before it goes anywhere near
// PostgreSQL. Values equal to nullSentinel become SQL NULL. Inserts are
// committed in batches of batchSize rows. Returns the number of data
// rows inserted.
func LoadCSV(csvPath, dbPath, table, nullSentinel string, batchSize int) (int64, error) {
	if table == "" {
		table = "staging"
	}
	if batchSize <= 0 {
		batchSize = 1000
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(skipBOM(f))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}
	columns := SanitizeColumns(header)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// Limit to 1 connection to avoid locking issues and improve tx.Stmt performance
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA page_size = 65536; PRAGMA cache_size = -2000;"); err != nil {
		return 0, fmt.Errorf("failed to set PRAGMAs: %w", err)
	}

	var create strings.Builder
	create.WriteString("CREATE TABLE ")
	create.WriteString(table)
	create.WriteString(" (")
	for i, name := range columns {
		if i > 0 {
			create.WriteString(", ")
		}
		create.WriteString(name)
		create.WriteString(" TEXT")
	}
	create.WriteByte(')')
	if _, err := db.Exec(create.String()); err != nil {
		return 0, fmt.Errorf("failed to create table %s: %w", table, err)
	}

	insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ","),
		strings.Repeat("?,", len(columns)-1)+"?",
	)
	mainStmt, err := db.Prepare(insertSQL)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer mainStmt.Close()

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	stmt := tx.Stmt(mainStmt)

	var rowCount int64
	values := make([]interface{}, len(columns))

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			stmt.Close()
			tx.Rollback()
			return rowCount, fmt.Errorf("failed to read CSV record: %w", err)
		}

		for i := range values {
			if i < len(record) && record[i] != nullSentinel {
				values[i] = record[i]
			} else {
				values[i] = nil
			}
		}

		if _, err := stmt.Exec(values...); err != nil {
			stmt.Close()
			tx.Rollback()
			return rowCount, fmt.Errorf("failed to insert row: %w", err)
		}

		rowCount++
		if rowCount%int64(batchSize) == 0 {
			stmt.Close()
			if err := tx.Commit(); err != nil {
				return rowCount, fmt.Errorf("failed to commit transaction: %w", err)
			}
			tx, err = db.Begin()
			if err != nil {
				return rowCount, fmt.Errorf("failed to begin transaction: %w", err)
			}
			stmt = tx.Stmt(mainStmt)
		}
	}

	stmt.Close()
	if err := tx.Commit(); err != nil {
		return rowCount, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return rowCount, nil
}

// skipBOM strips a leading UTF-8 byte-order mark if present.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	peek, _ := br.Peek(3)
	if bytes.Equal(peek, []byte{0xEF, 0xBB, 0xBF}) {
		br.Discard(3)
	}
	return br
}
