package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/denizaltun/quickpos-backend/internal/cart"
	"github.com/denizaltun/quickpos-backend/internal/catalog"
	"github.com/denizaltun/quickpos-backend/internal/sales"
	pkgerrors "github.com/denizaltun/quickpos-backend/pkg/errors"
	"github.com/denizaltun/quickpos-backend/pkg/logger"
	"github.com/denizaltun/quickpos-backend/pkg/metrics"
)

// ErrEmptyCart reports a completion attempt with no cart lines.
var ErrEmptyCart = pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")

// Service turns the cart into a ledger record and stock adjustments.
type Service interface {
	Complete(ctx context.Context) (*sales.SaleRecord, error)
}

// ServiceParams wires a checkout service.
type ServiceParams struct {
	Cart    *cart.Cart
	Catalog catalog.Repository
	Ledger  sales.Repository
	Logger  *logger.Logger
	Till    *metrics.TillMetrics
	Now     func() time.Time
}

type service struct {
	cart    *cart.Cart
	catalog catalog.Repository
	ledger  sales.Repository
	logg    *logger.Logger
	till    *metrics.TillMetrics
	now     func() time.Time

	// mu serializes completions: one writer at a time over the two
	// backing tables.
	mu sync.Mutex
}

// NewService builds a checkout service backed by the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if params.Cart == nil {
		return nil, fmt.Errorf("cart required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if params.Ledger == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		cart:    params.Cart,
		catalog: params.Catalog,
		ledger:  params.Ledger,
		logg:    params.Logger,
		till:    params.Till,
		now:     now,
	}, nil
}

// Complete appends a sale record, decrements stock per line, and clears
// the cart. The per-line decrements are independent writes: a failure
// partway leaves the ledger row and earlier decrements in place, and
// the cart uncleared, surfacing the inconsistency to the caller.
func (s *service) Complete(ctx context.Context) (*sales.SaleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	record := sales.SaleRecord{
		Date:     s.now(),
		Products: make([]string, 0, len(lines)),
		Total:    s.cart.Total(),
	}
	for _, line := range lines {
		record.Products = append(record.Products, fmt.Sprintf("%s(%d)", line.Name, line.Quantity))
	}

	if err := s.ledger.Append(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append sale record")
	}

	for _, line := range lines {
		if err := s.catalog.DecrementStock(ctx, line.Barcode, line.Quantity); err != nil {
			if s.logg != nil {
				lctx := s.logg.WithBarcode(ctx, line.Barcode)
				s.logg.Error(lctx, "sale completed partially: stock decrement failed", err)
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock after sale")
		}
	}

	s.cart.Clear()
	s.till.IncSaleCompleted(len(lines))

	if s.logg != nil {
		lctx := s.logg.WithFields(ctx, map[string]any{
			"lines": len(lines),
			"total": record.Total.StringFixed(2),
		})
		s.logg.Info(lctx, "sale completed")
	}
	return &record, nil
}
