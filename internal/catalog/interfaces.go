package catalog

import "context"

// Repository defines the persistence surface of the product catalog.
// Implementations rewrite the whole table per mutation; a swap to
// indexed storage must not change these semantics.
type Repository interface {
	List(ctx context.Context) []Product
	FindByBarcode(ctx context.Context, barcode string) (*Product, error)
	Search(ctx context.Context, text string) []Product
	Insert(ctx context.Context, product Product) error
	Update(ctx context.Context, barcode string, fields UpdateFields) error
	Delete(ctx context.Context, barcode string) error
	DecrementStock(ctx context.Context, barcode string, quantity int) error
}
