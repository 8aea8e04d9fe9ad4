package controllers

import (
	"net/http"

	"github.com/denizaltun/quickpos-backend/api/responses"
	"github.com/denizaltun/quickpos-backend/api/validators"
	"github.com/denizaltun/quickpos-backend/internal/reports"
	"github.com/denizaltun/quickpos-backend/internal/sales"
	"github.com/denizaltun/quickpos-backend/pkg/logger"
)

type salesReportResponse struct {
	Records []saleRecordResponse `json:"records"`
	Summary reports.Summary      `json:"summary"`
}

// SalesReport lists ledger records for an optional inclusive date range
// together with aggregate figures.
func SalesReport(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, err := validators.ParseQueryDate(r, "start")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		end, err := validators.ParseQueryDate(r, "end")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, summary := svc.SalesSummary(r.Context(), sales.ListFilter{Start: start, End: end})

		views := make([]saleRecordResponse, 0, len(records))
		for _, record := range records {
			views = append(views, saleRecordOf(record))
		}
		responses.WriteSuccess(w, salesReportResponse{Records: views, Summary: summary})
	}
}
