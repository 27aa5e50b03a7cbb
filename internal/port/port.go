package port

import (
	"context"

	"github.com/lfcamargo/beautystock/internal/domain"
	"github.com/shopspring/decimal"
)

// CatalogStore persists the whole catalog as one document.
type CatalogStore interface {
	// Load returns the persisted catalog. A missing document is not an
	// error: an empty one is created and returned.
	Load(ctx context.Context) (domain.Catalog, error)

	// Save overwrites the persisted document. Last save wins.
	Save(ctx context.Context, catalog domain.Catalog) error
}

// ProductLedger is the CRUD view over one (category, segment) bucket.
// Every operation loads the latest persisted catalog and saves the whole
// document back after a successful mutation.
type ProductLedger interface {
	Price(ctx context.Context, name string) (decimal.Decimal, error)
	SetPrice(ctx context.Context, name string, price decimal.Decimal) error
	IncreaseQuantity(ctx context.Context, name string, delta int) error
	DecreaseQuantity(ctx context.Context, name string, delta int) error
	AddProduct(ctx context.Context, name string, quantity int, price decimal.Decimal) error
	ZeroQuantityProducts(ctx context.Context) ([]string, error)
	ListNames(ctx context.Context) ([]string, error)
	ListDetails(ctx context.Context) ([]domain.ProductDetail, error)
}

// Checkout replays staged cart lines as stock decrements.
type Checkout interface {
	Commit(ctx context.Context, cart *domain.Cart) (domain.Receipt, error)
}
