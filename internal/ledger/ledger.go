package ledger

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/lfcamargo/beautystock/internal/domain"
	"github.com/lfcamargo/beautystock/internal/port"
	"github.com/shopspring/decimal"
)

type productLedger struct {
	store    port.CatalogStore
	category domain.Category
	segment  domain.Segment
}

// New returns the CRUD view over one (category, segment) bucket.
func New(store port.CatalogStore, category domain.Category, segment domain.Segment) (port.ProductLedger, error) {
	if store == nil {
		return nil, errors.New("store is nil")
	}
	if !category.Valid() {
		return nil, errors.Wrapf(domain.ErrUnknownCategory, "category[%s]", category)
	}
	if !domain.ValidPair(category, segment) {
		return nil, errors.Wrapf(domain.ErrInvalidSegment, "category[%s] segment[%s]", category, segment)
	}

	return &productLedger{
		store:    store,
		category: category,
		segment:  segment,
	}, nil
}

func (l *productLedger) Price(ctx context.Context, name string) (decimal.Decimal, error) {
	if name == "" {
		return decimal.Zero, errors.New("name is empty")
	}

	catalog, err := l.store.Load(ctx)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "store.Load")
	}

	product, err := l.get(catalog, name)
	if err != nil {
		return decimal.Zero, err
	}

	return product.Price, nil
}

func (l *productLedger) SetPrice(ctx context.Context, name string, price decimal.Decimal) error {
	if name == "" {
		return errors.New("name is empty")
	}
	if price.Sign() <= 0 {
		return errors.Wrapf(domain.ErrInvalidPrice, "price[%s]", price)
	}

	catalog, err := l.store.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "store.Load")
	}

	product, err := l.get(catalog, name)
	if err != nil {
		return err
	}

	product.Price = price
	catalog.Bucket(l.category, l.segment).Set(name, product)

	if err := l.store.Save(ctx, catalog); err != nil {
		return errors.Wrap(err, "store.Save")
	}
	return nil
}

func (l *productLedger) IncreaseQuantity(ctx context.Context, name string, delta int) error {
	if name == "" {
		return errors.New("name is empty")
	}
	if delta < 0 {
		return errors.Wrapf(domain.ErrInvalidQuantity, "delta[%d]", delta)
	}

	catalog, err := l.store.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "store.Load")
	}

	product, err := l.get(catalog, name)
	if err != nil {
		return err
	}

	product.Quantity += delta
	catalog.Bucket(l.category, l.segment).Set(name, product)

	if err := l.store.Save(ctx, catalog); err != nil {
		return errors.Wrap(err, "store.Save")
	}
	return nil
}

func (l *productLedger) DecreaseQuantity(ctx context.Context, name string, delta int) error {
	if name == "" {
		return errors.New("name is empty")
	}
	if delta < 0 {
		return errors.Wrapf(domain.ErrInvalidQuantity, "delta[%d]", delta)
	}

	catalog, err := l.store.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "store.Load")
	}

	product, err := l.get(catalog, name)
	if err != nil {
		return err
	}

	// Over-withdrawal sells the bucket out: clamp at zero, no error.
	if delta >= product.Quantity {
		product.Quantity = 0
	} else {
		product.Quantity -= delta
	}
	catalog.Bucket(l.category, l.segment).Set(name, product)

	if err := l.store.Save(ctx, catalog); err != nil {
		return errors.Wrap(err, "store.Save")
	}
	return nil
}

func (l *productLedger) AddProduct(ctx context.Context, name string, quantity int, price decimal.Decimal) error {
	if name == "" {
		return errors.New("name is empty")
	}
	if quantity < 0 {
		return errors.Wrapf(domain.ErrInvalidQuantity, "quantity[%d]", quantity)
	}
	if price.Sign() <= 0 {
		return errors.Wrapf(domain.ErrInvalidPrice, "price[%s]", price)
	}

	catalog, err := l.store.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "store.Load")
	}

	bucket := catalog.EnsureBucket(l.category, l.segment)
	if _, exists := bucket.Get(name); exists {
		return errors.Wrapf(domain.ErrExistingProduct, "product[%s]", name)
	}

	bucket.Set(name, domain.Product{Quantity: quantity, Price: price})

	if err := l.store.Save(ctx, catalog); err != nil {
		return errors.Wrap(err, "store.Save")
	}
	return nil
}

// ZeroQuantityProducts returns the names of every sold-out product in the
// bucket. An absent or empty bucket yields an empty list, not an error.
func (l *productLedger) ZeroQuantityProducts(ctx context.Context) ([]string, error) {
	catalog, err := l.store.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "store.Load")
	}

	var names []string
	for _, detail := range catalog.Bucket(l.category, l.segment).Details() {
		if detail.Product.Quantity == 0 {
			names = append(names, detail.Name)
		}
	}
	return names, nil
}

func (l *productLedger) ListNames(ctx context.Context) ([]string, error) {
	catalog, err := l.store.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "store.Load")
	}

	return catalog.Bucket(l.category, l.segment).Names(), nil
}

func (l *productLedger) ListDetails(ctx context.Context) ([]domain.ProductDetail, error) {
	catalog, err := l.store.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "store.Load")
	}

	return catalog.Bucket(l.category, l.segment).Details(), nil
}

// get resolves a product inside the freshly loaded catalog. A missing
// bucket and a missing name are the same condition to the caller.
func (l *productLedger) get(catalog domain.Catalog, name string) (domain.Product, error) {
	product, ok := catalog.Bucket(l.category, l.segment).Get(name)
	if !ok {
		return domain.Product{}, errors.Wrapf(domain.ErrProductNotFound,
			"category[%s] segment[%s] product[%s]", l.category, l.segment, name)
	}
	return product, nil
}
