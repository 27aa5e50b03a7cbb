package checkout

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/lfcamargo/beautystock/internal/domain"
	"github.com/lfcamargo/beautystock/internal/ledger"
	"github.com/lfcamargo/beautystock/internal/port"
)

type coordinator struct {
	store port.CatalogStore
}

// New returns the checkout coordinator committing carts against the catalog.
func New(store port.CatalogStore) (port.Checkout, error) {
	if store == nil {
		return nil, errors.New("store is nil")
	}

	return &coordinator{store: store}, nil
}

// Commit turns every staged cart line into a stock decrement on the
// line's origin bucket. It validates all lines before touching any
// stock: a line whose product vanished since staging, or whose
// requested quantity is negative, aborts the whole checkout with
// nothing applied. Over-withdrawal is not a validation failure, the
// decrement clamps at zero (sell-out semantics).
func (c *coordinator) Commit(ctx context.Context, cart *domain.Cart) (domain.Receipt, error) {
	if cart.Empty() {
		return domain.Receipt{}, errors.New("cart is empty")
	}

	for i, line := range cart.Lines {
		if line.Quantity < 0 {
			return domain.Receipt{}, errors.Wrapf(domain.ErrInvalidQuantity,
				"validate line[%d] quantity[%d]", i, line.Quantity)
		}
		led, err := c.resolve(line.Origin)
		if err != nil {
			return domain.Receipt{}, errors.Wrapf(err, "line[%d]", i)
		}
		if _, err := led.Price(ctx, line.Name); err != nil {
			return domain.Receipt{}, errors.Wrapf(err, "validate line[%d] product[%s]", i, line.Name)
		}
	}

	for i, line := range cart.Lines {
		led, err := c.resolve(line.Origin)
		if err != nil {
			return domain.Receipt{}, errors.Wrapf(err, "line[%d]", i)
		}
		if err := led.DecreaseQuantity(ctx, line.Name, line.Quantity); err != nil {
			return domain.Receipt{}, errors.Wrapf(err, "commit line[%d] product[%s]", i, line.Name)
		}
	}

	lines := make([]domain.CartLine, len(cart.Lines))
	copy(lines, cart.Lines)

	return domain.Receipt{
		ID:          uuid.New(),
		CommittedAt: time.Now(),
		Lines:       lines,
		Total:       cart.Total(),
	}, nil
}

func (c *coordinator) resolve(origin domain.BucketRef) (port.ProductLedger, error) {
	return ledger.New(c.store, origin.Category, origin.Segment)
}
