package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/denizaltun/quickpos-backend/internal/catalog"
	pkgerrors "github.com/denizaltun/quickpos-backend/pkg/errors"
)

var (
	// ErrOutOfStock reports an add against a product with no stock.
	ErrOutOfStock = pkgerrors.New(pkgerrors.CodeStateConflict, "product is out of stock")
	// ErrInsufficientStock reports a quantity that exceeds the
	// remaining stock.
	ErrInsufficientStock = pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock")
)

// Line is one selected product: unit price is snapshotted at add time
// and not re-read from the catalog on later renders.
type Line struct {
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Cart is the single till session's transient selection. It lives in
// memory only, is owned explicitly by its session, and holds at most
// one line per barcode. The mutex makes concurrent surface handlers
// safe without changing single-user behavior.
type Cart struct {
	mu    sync.Mutex
	lines []Line
	total decimal.Decimal
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{total: decimal.Zero}
}

// Add puts quantity units of the product into the cart. A repeated
// barcode tops up the existing line when current stock allows it; a new
// line snapshots the product's price.
func (c *Cart) Add(product catalog.Product, quantity int) error {
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if product.Stock <= 0 {
		return ErrOutOfStock
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Barcode != product.Barcode {
			continue
		}
		if c.lines[i].Quantity+quantity > product.Stock {
			return ErrInsufficientStock
		}
		c.lines[i].Quantity += quantity
		c.recomputeTotal()
		return nil
	}

	c.lines = append(c.lines, Line{
		Barcode:   product.Barcode,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  quantity,
	})
	c.recomputeTotal()
	return nil
}

// Increment raises the line's quantity by one after re-reading current
// catalog stock. A barcode with no line is a no-op.
func (c *Cart) Increment(ctx context.Context, barcode string, repo catalog.Repository) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Barcode != barcode {
			continue
		}
		product, err := repo.FindByBarcode(ctx, barcode)
		if err != nil {
			return err
		}
		if c.lines[i].Quantity+1 > product.Stock {
			return ErrInsufficientStock
		}
		c.lines[i].Quantity++
		c.recomputeTotal()
		return nil
	}
	return nil
}

// Decrement lowers the line's quantity by one, removing the line at
// zero. A barcode with no line is a no-op.
func (c *Cart) Decrement(barcode string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Barcode != barcode {
			continue
		}
		c.lines[i].Quantity--
		if c.lines[i].Quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
		c.recomputeTotal()
		return
	}
}

// Lines returns a copy of the cart's lines in add order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Line(nil), c.lines...)
}

// Total returns the running total, recomputed on every mutation.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Clear drops every line and resets the total to zero.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.total = decimal.Zero
}

func (c *Cart) recomputeTotal() {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	c.total = total
}
