package sales

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Header is the column order of the sales table.
var Header = []string{"date", "products", "total"}

// DateLayout is the on-file timestamp format of a sale.
const DateLayout = "2006-01-02 15:04:05"

// tokenSeparator joins the per-line summaries in the products column.
const tokenSeparator = "; "

// SaleRecord is one completed sale. Products holds human-readable
// "name(quantity)" tokens snapshotted at completion time; they do not
// reference catalog rows.
type SaleRecord struct {
	Date     time.Time
	Products []string
	Total    decimal.Decimal
}

func (r SaleRecord) row() []string {
	return []string{
		r.Date.Format(DateLayout),
		strings.Join(r.Products, tokenSeparator),
		r.Total.StringFixed(2),
	}
}

func recordFromRow(row []string) (SaleRecord, bool) {
	if len(row) < len(Header) {
		return SaleRecord{}, false
	}
	date, err := time.Parse(DateLayout, row[0])
	if err != nil {
		return SaleRecord{}, false
	}
	total, err := decimal.NewFromString(row[2])
	if err != nil {
		return SaleRecord{}, false
	}

	var products []string
	for _, token := range strings.Split(row[1], ";") {
		if token = strings.TrimSpace(token); token != "" {
			products = append(products, token)
		}
	}

	return SaleRecord{
		Date:     date,
		Products: products,
		Total:    total,
	}, true
}
