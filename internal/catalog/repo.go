package catalog

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/denizaltun/quickpos-backend/pkg/errors"
	"github.com/denizaltun/quickpos-backend/pkg/metrics"
	"github.com/denizaltun/quickpos-backend/pkg/tabular"
)

var (
	// ErrNotFound reports a barcode with no catalog row.
	ErrNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	// ErrDuplicateBarcode reports an insert against an existing barcode.
	ErrDuplicateBarcode = pkgerrors.New(pkgerrors.CodeConflict, "barcode already exists")
	// ErrStockConflict reports a strict-mode decrement that would drive
	// stock negative.
	ErrStockConflict = pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock for decrement")
)

// UpdateFields names the columns a partial update may replace.
type UpdateFields struct {
	Name  *string
	Price *decimal.Decimal
	Stock *int
}

// CSVRepository persists the catalog in a header-row CSV table.
type CSVRepository struct {
	table *tabular.Table
	till  *metrics.TillMetrics

	// allowNegativeStock keeps DecrementStock permissive: unknown
	// barcodes are skipped and stock may go negative.
	allowNegativeStock bool
}

// NewCSVRepository binds a repository to the products table.
func NewCSVRepository(table *tabular.Table, till *metrics.TillMetrics, allowNegativeStock bool) (*CSVRepository, error) {
	if table == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "products table required")
	}
	if err := table.Ensure(); err != nil {
		return nil, err
	}
	return &CSVRepository{
		table:              table,
		till:               till,
		allowNegativeStock: allowNegativeStock,
	}, nil
}

// List returns every product in storage order. An unreadable table
// reads as empty.
func (r *CSVRepository) List(ctx context.Context) []Product {
	rows := r.table.ReadAll()
	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		if product, ok := productFromRow(row); ok {
			products = append(products, product)
		}
	}
	return products
}

// FindByBarcode matches the barcode exactly.
func (r *CSVRepository) FindByBarcode(ctx context.Context, barcode string) (*Product, error) {
	for _, product := range r.List(ctx) {
		if product.Barcode == barcode {
			p := product
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

// Search matches a case-insensitive substring against barcode or name.
func (r *CSVRepository) Search(ctx context.Context, text string) []Product {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return r.List(ctx)
	}

	var matches []Product
	for _, product := range r.List(ctx) {
		if strings.Contains(strings.ToLower(product.Barcode), needle) ||
			strings.Contains(strings.ToLower(product.Name), needle) {
			matches = append(matches, product)
		}
	}
	return matches
}

// Insert appends a product, rejecting duplicate barcodes.
func (r *CSVRepository) Insert(ctx context.Context, product Product) error {
	err := r.table.Update(func(rows [][]string) ([][]string, error) {
		for _, row := range rows {
			if len(row) > 0 && row[0] == product.Barcode {
				return nil, ErrDuplicateBarcode
			}
		}
		return append(rows, product.row()), nil
	})
	if err == nil {
		r.till.IncCatalogMutation("insert")
	}
	return err
}

// Update replaces the named fields on the matching row.
func (r *CSVRepository) Update(ctx context.Context, barcode string, fields UpdateFields) error {
	err := r.table.Update(func(rows [][]string) ([][]string, error) {
		for i, row := range rows {
			if len(row) == 0 || row[0] != barcode {
				continue
			}
			if fields.Name != nil {
				row[1] = *fields.Name
			}
			if fields.Price != nil {
				row[2] = fields.Price.StringFixed(2)
			}
			if fields.Stock != nil {
				row[3] = strconv.Itoa(*fields.Stock)
			}
			rows[i] = row
			return rows, nil
		}
		return nil, ErrNotFound
	})
	if err == nil {
		r.till.IncCatalogMutation("update")
	}
	return err
}

// Delete removes the matching row.
func (r *CSVRepository) Delete(ctx context.Context, barcode string) error {
	err := r.table.Update(func(rows [][]string) ([][]string, error) {
		for i, row := range rows {
			if len(row) > 0 && row[0] == barcode {
				return append(rows[:i], rows[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
	if err == nil {
		r.till.IncCatalogMutation("delete")
	}
	return err
}

// DecrementStock subtracts quantity from the matching row's stock. In
// permissive mode an unknown barcode is a silent no-op and stock may go
// negative; strict mode surfaces both cases.
func (r *CSVRepository) DecrementStock(ctx context.Context, barcode string, quantity int) error {
	err := r.table.Update(func(rows [][]string) ([][]string, error) {
		for i, row := range rows {
			if len(row) == 0 || row[0] != barcode {
				continue
			}
			stock, err := strconv.Atoi(row[3])
			if err != nil {
				stock = 0
			}
			next := stock - quantity
			if next < 0 && !r.allowNegativeStock {
				return nil, ErrStockConflict
			}
			rows[i][3] = strconv.Itoa(next)
			return rows, nil
		}
		if r.allowNegativeStock {
			return rows, nil
		}
		return nil, ErrNotFound
	})
	if err == nil {
		r.till.IncCatalogMutation("decrement_stock")
	}
	return err
}
