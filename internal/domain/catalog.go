package domain

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Category is the top-level product type of the catalog.
type Category string

const (
	CategoryHairCare  Category = "hair-care"
	CategoryFragrance Category = "fragrance"
	CategoryLipColor  Category = "lip-color"
)

// Categories returns every known category, in catalog order.
func Categories() []Category {
	return []Category{CategoryHairCare, CategoryFragrance, CategoryLipColor}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryHairCare, CategoryFragrance, CategoryLipColor:
		return true
	}
	return false
}

func (c Category) String() string { return string(c) }

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", errors.Wrapf(ErrUnknownCategory, "category[%s]", s)
	}
	return c, nil
}

// Segment is the demographic grouping applied within a category.
type Segment string

const (
	SegmentUnisex    Segment = "unisex"
	SegmentMasculine Segment = "masculine"
	SegmentFeminine  Segment = "feminine"
	SegmentChild     Segment = "child"
)

func (s Segment) Valid() bool {
	switch s {
	case SegmentUnisex, SegmentMasculine, SegmentFeminine, SegmentChild:
		return true
	}
	return false
}

func (s Segment) String() string { return string(s) }

func ParseSegment(s string) (Segment, error) {
	seg := Segment(s)
	if !seg.Valid() {
		return "", errors.Wrapf(ErrInvalidSegment, "segment[%s]", s)
	}
	return seg, nil
}

// SegmentsFor returns the segments a category is sold under.
// Lip color is a single fixed segment; the other categories carry three.
func SegmentsFor(c Category) []Segment {
	switch c {
	case CategoryHairCare:
		return []Segment{SegmentMasculine, SegmentFeminine, SegmentChild}
	case CategoryFragrance:
		return []Segment{SegmentUnisex, SegmentMasculine, SegmentFeminine}
	case CategoryLipColor:
		return []Segment{SegmentFeminine}
	default:
		return nil
	}
}

// ValidPair reports whether segment is sold under category.
func ValidPair(c Category, s Segment) bool {
	for _, seg := range SegmentsFor(c) {
		if seg == s {
			return true
		}
	}
	return false
}

// Product is one catalog entry: the stocked quantity and the unit price.
type Product struct {
	Quantity int             `json:"quantidade"`
	Price    decimal.Decimal `json:"preco"`
}

// MarshalJSON renders "preco" as a bare JSON number, the catalog file
// contract, without touching the decimal package's global encoding mode.
func (p Product) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"quantidade":`)
	buf.WriteString(strconv.Itoa(p.Quantity))
	buf.WriteString(`,"preco":`)
	buf.WriteString(p.Price.String())
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ProductDetail pairs a product with its name for ordered listings.
type ProductDetail struct {
	Name    string
	Product Product
}

// Bucket holds the products of one (category, segment) pair.
// Iteration order is insertion order, and the JSON codec preserves it,
// so listings always match the persisted document.
type Bucket struct {
	names    []string
	products map[string]Product
}

func NewBucket() *Bucket {
	return &Bucket{products: make(map[string]Product)}
}

func (b *Bucket) Len() int {
	if b == nil {
		return 0
	}
	return len(b.names)
}

func (b *Bucket) Get(name string) (Product, bool) {
	if b == nil {
		return Product{}, false
	}
	p, ok := b.products[name]
	return p, ok
}

// Set inserts or updates a product. A new name is appended at the end;
// updating keeps the original position.
func (b *Bucket) Set(name string, p Product) {
	if b.products == nil {
		b.products = make(map[string]Product)
	}
	if _, exists := b.products[name]; !exists {
		b.names = append(b.names, name)
	}
	b.products[name] = p
}

// Remove deletes a product, reporting whether it was present.
func (b *Bucket) Remove(name string) bool {
	if b == nil {
		return false
	}
	if _, ok := b.products[name]; !ok {
		return false
	}
	delete(b.products, name)
	for i, n := range b.names {
		if n == name {
			b.names = append(b.names[:i], b.names[i+1:]...)
			break
		}
	}
	return true
}

// Names returns the product names in insertion order.
func (b *Bucket) Names() []string {
	if b == nil {
		return nil
	}
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Details returns every product with its name, in the same order as Names.
func (b *Bucket) Details() []ProductDetail {
	if b == nil {
		return nil
	}
	out := make([]ProductDetail, 0, len(b.names))
	for _, name := range b.names {
		out = append(out, ProductDetail{Name: name, Product: b.products[name]})
	}
	return out
}

func (b *Bucket) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range b.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, errors.Wrapf(err, "marshal key[%s]", name)
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(b.products[name])
		if err != nil {
			return nil, errors.Wrapf(err, "marshal product[%s]", name)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (b *Bucket) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return errors.Wrap(err, "read open brace")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.Errorf("expected object, got %v", tok)
	}

	b.names = nil
	b.products = make(map[string]Product)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return errors.Wrap(err, "read key")
		}
		name, ok := keyTok.(string)
		if !ok {
			return errors.Errorf("expected string key, got %v", keyTok)
		}

		var p Product
		if err := dec.Decode(&p); err != nil {
			return errors.Wrapf(err, "decode product[%s]", name)
		}
		b.Set(name, p)
	}

	if _, err := dec.Token(); err != nil {
		return errors.Wrap(err, "read close brace")
	}
	return nil
}

// Catalog is the whole persisted document:
// category -> segment -> product name -> {quantity, price}.
type Catalog map[Category]map[Segment]*Bucket

// Bucket returns the bucket for the pair, or nil when absent.
func (c Catalog) Bucket(cat Category, seg Segment) *Bucket {
	return c[cat][seg]
}

// EnsureBucket returns the bucket for the pair, creating it when absent.
func (c Catalog) EnsureBucket(cat Category, seg Segment) *Bucket {
	segments, ok := c[cat]
	if !ok {
		segments = make(map[Segment]*Bucket)
		c[cat] = segments
	}
	b, ok := segments[seg]
	if !ok {
		b = NewBucket()
		segments[seg] = b
	}
	return b
}
