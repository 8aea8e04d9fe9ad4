package sales

import (
	"context"
	"time"

	pkgerrors "github.com/denizaltun/quickpos-backend/pkg/errors"
	"github.com/denizaltun/quickpos-backend/pkg/tabular"
)

// Repository manages the append-only sales ledger. No update or delete
// operation exists.
type Repository interface {
	Append(ctx context.Context, record SaleRecord) error
	List(ctx context.Context, filter ListFilter) []SaleRecord
}

// ListFilter restricts List to an inclusive [Start, End] range on the
// calendar date component of each sale.
type ListFilter struct {
	Start *time.Time
	End   *time.Time
}

// CSVRepository persists the ledger in a header-row CSV table.
type CSVRepository struct {
	table *tabular.Table
}

// NewCSVRepository binds a ledger repository to the sales table.
func NewCSVRepository(table *tabular.Table) (*CSVRepository, error) {
	if table == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "sales table required")
	}
	if err := table.Ensure(); err != nil {
		return nil, err
	}
	return &CSVRepository{table: table}, nil
}

// Append adds one sale. Content is never validated here; the total is
// trusted from sale completion.
func (r *CSVRepository) Append(ctx context.Context, record SaleRecord) error {
	return r.table.Append(record.row())
}

// List returns sales in storage order, optionally date-filtered. An
// unreadable table reads as empty.
func (r *CSVRepository) List(ctx context.Context, filter ListFilter) []SaleRecord {
	rows := r.table.ReadAll()
	records := make([]SaleRecord, 0, len(rows))
	for _, row := range rows {
		record, ok := recordFromRow(row)
		if !ok {
			continue
		}
		if !filter.matches(record.Date) {
			continue
		}
		records = append(records, record)
	}
	return records
}

func (f ListFilter) matches(at time.Time) bool {
	day := at.Truncate(24 * time.Hour)
	if f.Start != nil && day.Before(f.Start.Truncate(24*time.Hour)) {
		return false
	}
	if f.End != nil && day.After(f.End.Truncate(24*time.Hour)) {
		return false
	}
	return true
}
