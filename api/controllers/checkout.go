package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/denizaltun/quickpos-backend/api/responses"
	checkoutsvc "github.com/denizaltun/quickpos-backend/internal/checkout"
	"github.com/denizaltun/quickpos-backend/internal/sales"
	"github.com/denizaltun/quickpos-backend/pkg/logger"
)

type saleRecordResponse struct {
	Date     string          `json:"date"`
	Products []string        `json:"products"`
	Total    decimal.Decimal `json:"total"`
}

func saleRecordOf(record sales.SaleRecord) saleRecordResponse {
	return saleRecordResponse{
		Date:     record.Date.Format(sales.DateLayout),
		Products: record.Products,
		Total:    record.Total,
	}
}

// Checkout completes the sale for the current cart.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, err := svc.Complete(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, saleRecordOf(*record))
	}
}
