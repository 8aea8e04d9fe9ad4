package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/denizaltun/quickpos-backend/api/responses"
	"github.com/denizaltun/quickpos-backend/api/validators"
	catalogsvc "github.com/denizaltun/quickpos-backend/internal/catalog"
	pkgerrors "github.com/denizaltun/quickpos-backend/pkg/errors"
	"github.com/denizaltun/quickpos-backend/pkg/logger"
)

// CatalogList lists products, optionally filtered by the q parameter
// matched against barcode or name.
func CatalogList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products := svc.List(r.Context(), r.URL.Query().Get("q"))
		responses.WriteSuccess(w, products)
	}
}

// CatalogGet returns one product by barcode.
func CatalogGet(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := svc.Get(r.Context(), chi.URLParam(r, "barcode"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

type createProductRequest struct {
	Barcode string          `json:"barcode" validate:"required"`
	Name    string          `json:"name" validate:"required"`
	Price   decimal.Decimal `json:"price"`
	Stock   int             `json:"stock" validate:"min=0"`
}

// CatalogCreate inserts a new product.
func CatalogCreate(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), catalogsvc.CreateProductInput{
			Barcode: payload.Barcode,
			Name:    payload.Name,
			Price:   payload.Price,
			Stock:   payload.Stock,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

type updateProductRequest struct {
	Name  *string          `json:"name,omitempty"`
	Price *decimal.Decimal `json:"price,omitempty"`
	Stock *int             `json:"stock,omitempty" validate:"omitempty,min=0"`
}

// CatalogUpdate replaces the named fields of a product.
func CatalogUpdate(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), chi.URLParam(r, "barcode"), catalogsvc.UpdateProductInput{
			Name:  payload.Name,
			Price: payload.Price,
			Stock: payload.Stock,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// CatalogDelete removes a product.
func CatalogDelete(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "barcode")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// CatalogImport bulk-inserts products from an uploaded CSV or XLSX
// file. The whole file is rejected when a required column is missing;
// bad rows are rejected individually.
func CatalogImport(svc catalogsvc.Service, maxUploadMB int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := int64(maxUploadMB) << 20
		r.Body = http.MaxBytesReader(w, r.Body, limit)

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "import file is required"))
			return
		}
		defer file.Close()

		var rows []catalogsvc.ImportRow
		if strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
			rows, err = catalogsvc.ParseImportXLSX(file)
		} else {
			rows, err = catalogsvc.ParseImportCSV(file)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ImportBulk(r.Context(), rows)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
