package tabular

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestTable(t *testing.T) *Table {
	t.Helper()
	table, err := New(filepath.Join(t.TempDir(), "products.csv"), []string{"barcode", "name", "price", "stock"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return table
}

func TestNewValidation(t *testing.T) {
	if _, err := New("", []string{"a"}); err == nil {
		t.Fatal("expected error for blank path")
	}
	if _, err := New("x.csv", nil); err == nil {
		t.Fatal("expected error for empty header")
	}
}

func TestReadAllMissingFileIsEmpty(t *testing.T) {
	table := newTestTable(t)
	if rows := table.ReadAll(); len(rows) != 0 {
		t.Fatalf("expected empty table, got %d rows", len(rows))
	}
}

func TestEnsureWritesHeaderOnce(t *testing.T) {
	table := newTestTable(t)
	if err := table.Ensure(); err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	raw, err := os.ReadFile(table.Path())
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(raw) != "barcode,name,price,stock\n" {
		t.Fatalf("unexpected bootstrap content %q", raw)
	}

	if err := table.Append([]string{"123", "Tea", "10.00", "5"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := table.Ensure(); err != nil {
		t.Fatalf("second Ensure: %v", err)
	}
	if rows := table.ReadAll(); len(rows) != 1 {
		t.Fatalf("Ensure must not truncate existing data, got %d rows", len(rows))
	}
}

func TestAppendAndReadRoundTrip(t *testing.T) {
	table := newTestTable(t)

	if err := table.Append([]string{"123", "Tea", "10.00", "5"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := table.Append([]string{"456", "Coffee, Ground", "42.50", "3"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	rows := table.ReadAll()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1][1] != "Coffee, Ground" {
		t.Fatalf("quoting lost on round trip: %q", rows[1][1])
	}
}

func TestUpdateRewritesWholeTable(t *testing.T) {
	table := newTestTable(t)
	if err := table.Append([]string{"123", "Tea", "10.00", "5"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	err := table.Update(func(rows [][]string) ([][]string, error) {
		rows[0][3] = "3"
		return rows, nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	rows := table.ReadAll()
	if rows[0][3] != "3" {
		t.Fatalf("expected rewritten stock, got %q", rows[0][3])
	}
}

func TestUpdateErrorLeavesTableUntouched(t *testing.T) {
	table := newTestTable(t)
	if err := table.Append([]string{"123", "Tea", "10.00", "5"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	fail := os.ErrPermission
	err := table.Update(func(rows [][]string) ([][]string, error) {
		return nil, fail
	})
	if err != fail {
		t.Fatalf("expected fn error to pass through, got %v", err)
	}

	if rows := table.ReadAll(); len(rows) != 1 {
		t.Fatalf("table must be unchanged after failed update, got %d rows", len(rows))
	}
}

func TestCorruptFileReadsAsEmpty(t *testing.T) {
	table := newTestTable(t)
	if err := os.WriteFile(table.Path(), []byte("barcode,name\n\"unterminated"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	if rows := table.ReadAll(); len(rows) != 0 {
		t.Fatalf("corrupt table should read empty, got %d rows", len(rows))
	}
}

func TestShortRowsAreSkipped(t *testing.T) {
	table := newTestTable(t)
	content := "barcode,name,price,stock\n123,Tea,10.00,5\n456,Coffee\n"
	if err := os.WriteFile(table.Path(), []byte(content), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	rows := table.ReadAll()
	if len(rows) != 1 {
		t.Fatalf("expected short row to be skipped, got %d rows", len(rows))
	}
	if rows[0][0] != "123" {
		t.Fatalf("unexpected surviving row: %v", rows[0])
	}
}
