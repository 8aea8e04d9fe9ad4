package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/denizaltun/quickpos-backend/api/responses"
	"github.com/denizaltun/quickpos-backend/api/validators"
	"github.com/denizaltun/quickpos-backend/internal/cart"
	"github.com/denizaltun/quickpos-backend/internal/catalog"
	"github.com/denizaltun/quickpos-backend/pkg/logger"
)

type cartView struct {
	Lines []cart.Line     `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

func viewOf(till *cart.Cart) cartView {
	return cartView{Lines: till.Lines(), Total: till.Total()}
}

// CartFetch renders the current cart and running total.
func CartFetch(till *cart.Cart, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, viewOf(till))
	}
}

type addCartItemRequest struct {
	Barcode  string `json:"barcode" validate:"required"`
	Quantity int    `json:"quantity,omitempty" validate:"omitempty,min=1"`
}

// CartAdd looks the barcode up in the catalog and adds it to the cart.
// This is the barcode-scan path.
func CartAdd(till *cart.Cart, repo catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Quantity == 0 {
			payload.Quantity = 1
		}

		product, err := repo.FindByBarcode(r.Context(), payload.Barcode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := till.Add(*product, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(till))
	}
}

// CartIncrement raises one line by a unit, re-checking catalog stock.
func CartIncrement(till *cart.Cart, repo catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := till.Increment(r.Context(), chi.URLParam(r, "barcode"), repo); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(till))
	}
}

// CartDecrement lowers one line by a unit, dropping it at zero.
func CartDecrement(till *cart.Cart, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		till.Decrement(chi.URLParam(r, "barcode"))
		responses.WriteSuccess(w, viewOf(till))
	}
}

// CartClear empties the cart.
func CartClear(till *cart.Cart, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		till.Clear()
		responses.WriteSuccess(w, viewOf(till))
	}
}
