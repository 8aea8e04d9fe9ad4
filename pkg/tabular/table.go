package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	pkgerrors "github.com/denizaltun/quickpos-backend/pkg/errors"
)

// Table is a single header-row CSV file. Every read loads the whole
// file and every mutation rewrites the whole file; table sizes are
// assumed small. A per-table mutex keeps this process single-writer;
// concurrent writers from other processes still race last-write-wins.
type Table struct {
	path   string
	header []string

	mu sync.Mutex
}

// New binds a table to a file path with the given column header.
func New(path string, header []string) (*Table, error) {
	if path == "" {
		return nil, fmt.Errorf("table path required")
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("table header required")
	}
	return &Table{path: path, header: append([]string(nil), header...)}, nil
}

func (t *Table) Path() string {
	return t.path
}

func (t *Table) Header() []string {
	return append([]string(nil), t.header...)
}

// Ensure creates the backing file with its header row when absent.
func (t *Table) Ensure() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := os.Stat(t.path); err == nil {
		return nil
	}
	return t.writeLocked(nil)
}

// ReadAll returns the data rows. A missing, unreadable, or corrupt
// file reads as an empty table; reads never fail.
func (t *Table) ReadAll() [][]string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.readLocked()
}

// Append adds one row after the existing rows.
func (t *Table) Append(row []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows := t.readLocked()
	return t.writeLocked(append(rows, row))
}

// Update runs fn over the current rows and rewrites the table with its
// result, all under the table lock. When fn errors nothing is written.
func (t *Table) Update(fn func(rows [][]string) ([][]string, error)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows, err := fn(t.readLocked())
	if err != nil {
		return err
	}
	return t.writeLocked(rows)
}

func (t *Table) readLocked() [][]string {
	f, err := os.Open(t.path)
	if err != nil {
		return nil
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil || len(records) <= 1 {
		return nil
	}

	rows := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(t.header) {
			continue
		}
		rows = append(rows, record)
	}
	return rows
}

func (t *Table) writeLocked(rows [][]string) error {
	dir := filepath.Dir(t.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create table directory")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(t.path)+".*")
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create table file")
	}
	tmpName := tmp.Name()

	writer := csv.NewWriter(tmp)
	writeErr := writer.Write(t.header)
	if writeErr == nil {
		writeErr = writer.WriteAll(rows)
	}
	writer.Flush()
	if writeErr == nil {
		writeErr = writer.Error()
	}

	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(tmpName)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, writeErr, "write table file")
	}

	if err := os.Rename(tmpName, t.path); err != nil {
		os.Remove(tmpName)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace table file")
	}
	return nil
}
