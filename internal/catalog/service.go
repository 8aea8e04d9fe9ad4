package catalog

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/denizaltun/quickpos-backend/pkg/errors"
	"github.com/denizaltun/quickpos-backend/pkg/metrics"
)

// Service exposes catalog operations to the interactive surface.
type Service interface {
	List(ctx context.Context, query string) []Product
	Get(ctx context.Context, barcode string) (*Product, error)
	Create(ctx context.Context, input CreateProductInput) (*Product, error)
	Update(ctx context.Context, barcode string, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, barcode string) error
	ImportBulk(ctx context.Context, rows []ImportRow) (ImportResult, error)
}

type service struct {
	repo Repository
	till *metrics.TillMetrics
}

// NewService wires a catalog service with the provided repository.
func NewService(repo Repository, till *metrics.TillMetrics) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog repository required")
	}
	return &service{repo: repo, till: till}, nil
}

// CreateProductInput captures a new catalog row.
type CreateProductInput struct {
	Barcode string
	Name    string
	Price   decimal.Decimal
	Stock   int
}

// UpdateProductInput carries the fields a partial update replaces.
type UpdateProductInput struct {
	Name  *string
	Price *decimal.Decimal
	Stock *int
}

// ImportResult summarizes one bulk import pass.
type ImportResult struct {
	Succeeded int      `json:"succeeded"`
	Failed    []string `json:"failed"`
}

func (s *service) List(ctx context.Context, query string) []Product {
	if strings.TrimSpace(query) == "" {
		return s.repo.List(ctx)
	}
	return s.repo.Search(ctx, query)
}

func (s *service) Get(ctx context.Context, barcode string) (*Product, error) {
	if strings.TrimSpace(barcode) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "barcode is required")
	}
	return s.repo.FindByBarcode(ctx, barcode)
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*Product, error) {
	product, err := validateProduct(input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *service) Update(ctx context.Context, barcode string, input UpdateProductInput) (*Product, error) {
	if strings.TrimSpace(barcode) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "barcode is required")
	}
	if input.Name == nil && input.Price == nil && input.Stock == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be blank")
	}
	if input.Price != nil && input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}

	err := s.repo.Update(ctx, barcode, UpdateFields{
		Name:  input.Name,
		Price: input.Price,
		Stock: input.Stock,
	})
	if err != nil {
		return nil, err
	}
	return s.repo.FindByBarcode(ctx, barcode)
}

func (s *service) Delete(ctx context.Context, barcode string) error {
	if strings.TrimSpace(barcode) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "barcode is required")
	}
	return s.repo.Delete(ctx, barcode)
}

// ImportBulk applies insert semantics row by row. Duplicate or invalid
// rows are rejected individually; only a storage failure aborts the
// batch.
func (s *service) ImportBulk(ctx context.Context, rows []ImportRow) (ImportResult, error) {
	result := ImportResult{Failed: []string{}}
	for _, row := range rows {
		product, err := row.toInput()
		if err == nil {
			var validated Product
			validated, err = validateProduct(product)
			if err == nil {
				err = s.repo.Insert(ctx, validated)
			}
		}
		if err == nil {
			result.Succeeded++
			continue
		}
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeDependency {
			s.recordImport(result)
			return result, err
		}
		result.Failed = append(result.Failed, row.Barcode)
	}
	s.recordImport(result)
	return result, nil
}

func (s *service) recordImport(result ImportResult) {
	s.till.IncImportRows("succeeded", result.Succeeded)
	s.till.IncImportRows("failed", len(result.Failed))
}

func (r ImportRow) toInput() (CreateProductInput, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
	if err != nil {
		return CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}
	stock, err := strconv.Atoi(strings.TrimSpace(r.Stock))
	if err != nil {
		return CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid stock")
	}
	return CreateProductInput{
		Barcode: strings.TrimSpace(r.Barcode),
		Name:    strings.TrimSpace(r.Name),
		Price:   price,
		Stock:   stock,
	}, nil
}

func validateProduct(input CreateProductInput) (Product, error) {
	if strings.TrimSpace(input.Barcode) == "" {
		return Product{}, pkgerrors.New(pkgerrors.CodeValidation, "barcode is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return Product{}, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price.IsNegative() {
		return Product{}, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if input.Stock < 0 {
		return Product{}, pkgerrors.New(pkgerrors.CodeValidation, "stock must be non-negative")
	}
	return Product{
		Barcode: strings.TrimSpace(input.Barcode),
		Name:    strings.TrimSpace(input.Name),
		Price:   input.Price,
		Stock:   input.Stock,
	}, nil
}
