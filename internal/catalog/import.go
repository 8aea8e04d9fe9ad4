package catalog

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	pkgerrors "github.com/denizaltun/quickpos-backend/pkg/errors"
)

// ErrMalformedImport reports an import file that does not carry all
// four required columns.
var ErrMalformedImport = pkgerrors.New(pkgerrors.CodeValidation, "import file missing required columns")

// ImportRow is one raw row of an externally supplied product file.
// Values stay unparsed so invalid rows can be rejected individually.
type ImportRow struct {
	Barcode string
	Name    string
	Price   string
	Stock   string
}

// ParseImportCSV reads a header-row CSV product file. Column order is
// free; all of barcode, name, price, and stock must be present.
func ParseImportCSV(r io.Reader) ([]ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable import file")
	}
	return rowsFromRecords(records)
}

// ParseImportXLSX reads the first sheet of a spreadsheet product file
// with the same required columns as the CSV form.
func ParseImportXLSX(r io.Reader) ([]ImportRow, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable import file")
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrMalformedImport
	}
	records, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable import sheet")
	}
	return rowsFromRecords(records)
}

func rowsFromRecords(records [][]string) ([]ImportRow, error) {
	if len(records) == 0 {
		return nil, ErrMalformedImport
	}

	columns, err := requiredColumns(records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]ImportRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, ImportRow{
			Barcode: cell(record, columns["barcode"]),
			Name:    cell(record, columns["name"]),
			Price:   cell(record, columns["price"]),
			Stock:   cell(record, columns["stock"]),
		})
	}
	return rows, nil
}

func requiredColumns(header []string) (map[string]int, error) {
	columns := map[string]int{}
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range Header {
		if _, ok := columns[required]; !ok {
			return nil, ErrMalformedImport
		}
	}
	return columns, nil
}

func cell(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}
	return record[index]
}
