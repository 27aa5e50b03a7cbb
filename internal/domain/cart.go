package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BucketRef names the (category, segment) bucket a cart line came from,
// so checkout can route the stock decrement back to the right ledger.
type BucketRef struct {
	Category Category
	Segment  Segment
}

func (r BucketRef) Valid() bool {
	return ValidPair(r.Category, r.Segment)
}

// CartLine is one staged purchase: the product, the requested quantity
// and the unit price captured at stage time. The origin lives on the
// line itself, there is no side list to keep index-aligned.
type CartLine struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Origin    BucketRef
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart stages purchases for one session before checkout commits them.
// Lines keep insertion order; duplicate product names are independent lines.
type Cart struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Lines     []CartLine
}

func NewCart() *Cart {
	return &Cart{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
	}
}

// AddLine appends a staged purchase. The cart performs no validation of
// its own, the caller already resolved the product against the ledger.
func (c *Cart) AddLine(name string, quantity int, unitPrice decimal.Decimal, origin BucketRef) {
	c.Lines = append(c.Lines, CartLine{
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Origin:    origin,
	})
}

func (c *Cart) Empty() bool {
	return c == nil || len(c.Lines) == 0
}

// Total is the sum of every line's subtotal.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Receipt is the outcome of a committed checkout.
type Receipt struct {
	ID          uuid.UUID
	CommittedAt time.Time
	Lines       []CartLine
	Total       decimal.Decimal
}
