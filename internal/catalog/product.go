package catalog

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Header is the column order of the products table.
var Header = []string{"barcode", "name", "price", "stock"}

// Product is one row of the products table, keyed by barcode.
type Product struct {
	Barcode string          `json:"barcode"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Stock   int             `json:"stock"`
}

func (p Product) row() []string {
	return []string{
		p.Barcode,
		p.Name,
		p.Price.StringFixed(2),
		strconv.Itoa(p.Stock),
	}
}

func productFromRow(row []string) (Product, bool) {
	if len(row) < len(Header) {
		return Product{}, false
	}
	price, err := decimal.NewFromString(row[2])
	if err != nil {
		return Product{}, false
	}
	stock, err := strconv.Atoi(row[3])
	if err != nil {
		return Product{}, false
	}
	return Product{
		Barcode: row[0],
		Name:    row[1],
		Price:   price,
		Stock:   stock,
	}, true
}
