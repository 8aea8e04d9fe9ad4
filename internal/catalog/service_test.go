package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/denizaltun/quickpos-backend/pkg/errors"
	"github.com/denizaltun/quickpos-backend/pkg/tabular"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	table, err := tabular.New(filepath.Join(t.TempDir(), "products.csv"), Header)
	if err != nil {
		t.Fatalf("tabular.New: %v", err)
	}
	repo, err := NewCSVRepository(table, nil, true)
	if err != nil {
		t.Fatalf("NewCSVRepository: %v", err)
	}
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateProductInput
	}{
		{name: "blank barcode", input: CreateProductInput{Name: "Tea", Price: decimal.NewFromInt(1)}},
		{name: "blank name", input: CreateProductInput{Barcode: "123", Price: decimal.NewFromInt(1)}},
		{name: "negative price", input: CreateProductInput{Barcode: "123", Name: "Tea", Price: decimal.NewFromInt(-1)}},
		{name: "negative stock", input: CreateProductInput{Barcode: "123", Name: "Tea", Price: decimal.NewFromInt(1), Stock: -1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.input)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUpdateRequiresAtLeastOneField(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Update(context.Background(), "123", UpdateProductInput{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestImportBulkRejectsRowsIndividually(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateProductInput{Barcode: "999", Name: "Existing", Price: decimal.NewFromInt(5), Stock: 1}); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	rows := []ImportRow{
		{Barcode: "100", Name: "Water", Price: "2.00", Stock: "50"},
		{Barcode: "101", Name: "Juice", Price: "7.25", Stock: "12"},
		{Barcode: "102", Name: "Soda", Price: "6.00", Stock: "30"},
		{Barcode: "999", Name: "Dup", Price: "1.00", Stock: "1"},
	}

	result, err := svc.ImportBulk(ctx, rows)
	if err != nil {
		t.Fatalf("ImportBulk: %v", err)
	}
	if result.Succeeded != 3 {
		t.Fatalf("expected 3 succeeded, got %d", result.Succeeded)
	}
	if len(result.Failed) != 1 || result.Failed[0] != "999" {
		t.Fatalf("expected failed=[999], got %v", result.Failed)
	}

	if got := len(svc.List(ctx, "")); got != 4 {
		t.Fatalf("expected 4 catalog rows (1 existing + 3 imported), got %d", got)
	}
}

func TestImportBulkRejectsUnparseableValues(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.ImportBulk(context.Background(), []ImportRow{
		{Barcode: "100", Name: "Water", Price: "cheap", Stock: "50"},
		{Barcode: "101", Name: "Juice", Price: "7.25", Stock: "a dozen"},
	})
	if err != nil {
		t.Fatalf("ImportBulk: %v", err)
	}
	if result.Succeeded != 0 || len(result.Failed) != 2 {
		t.Fatalf("expected both rows rejected, got %+v", result)
	}
}

type failingRepo struct {
	Repository
	inserts int
}

func (f *failingRepo) Insert(ctx context.Context, product Product) error {
	f.inserts++
	if f.inserts > 1 {
		return pkgerrors.New(pkgerrors.CodeDependency, "catalog table unavailable")
	}
	return nil
}

func TestImportBulkAbortsOnStoreFailure(t *testing.T) {
	repo := &failingRepo{}
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	result, err := svc.ImportBulk(context.Background(), []ImportRow{
		{Barcode: "100", Name: "Water", Price: "2.00", Stock: "50"},
		{Barcode: "101", Name: "Juice", Price: "7.25", Stock: "12"},
		{Barcode: "102", Name: "Soda", Price: "6.00", Stock: "30"},
	})
	if err == nil {
		t.Fatal("expected store failure to abort the batch")
	}
	if result.Succeeded != 1 {
		t.Fatalf("expected 1 row before the failure, got %d", result.Succeeded)
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestGetUnknownBarcode(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
