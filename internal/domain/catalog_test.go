package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/lfcamargo/beautystock/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentsFor(t *testing.T) {
	tests := []struct {
		category domain.Category
		want     []domain.Segment
	}{
		{domain.CategoryHairCare, []domain.Segment{domain.SegmentMasculine, domain.SegmentFeminine, domain.SegmentChild}},
		{domain.CategoryFragrance, []domain.Segment{domain.SegmentUnisex, domain.SegmentMasculine, domain.SegmentFeminine}},
		{domain.CategoryLipColor, []domain.Segment{domain.SegmentFeminine}},
	}

	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, domain.SegmentsFor(tt.category))
		})
	}

	// Every known category has at least one segment.
	for _, c := range domain.Categories() {
		assert.NotEmpty(t, domain.SegmentsFor(c), c)
	}

	assert.Nil(t, domain.SegmentsFor(domain.Category("soap")))
}

func TestValidPair(t *testing.T) {
	assert.True(t, domain.ValidPair(domain.CategoryHairCare, domain.SegmentChild))
	assert.True(t, domain.ValidPair(domain.CategoryFragrance, domain.SegmentUnisex))
	assert.True(t, domain.ValidPair(domain.CategoryLipColor, domain.SegmentFeminine))

	// Lip color is a single fixed segment.
	assert.False(t, domain.ValidPair(domain.CategoryLipColor, domain.SegmentMasculine))
	// Hair care is not sold as unisex.
	assert.False(t, domain.ValidPair(domain.CategoryHairCare, domain.SegmentUnisex))
}

func TestParseCategory(t *testing.T) {
	c, err := domain.ParseCategory("fragrance")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryFragrance, c)

	_, err = domain.ParseCategory("soap")
	require.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestParseSegment(t *testing.T) {
	s, err := domain.ParseSegment("child")
	require.NoError(t, err)
	assert.Equal(t, domain.SegmentChild, s)

	_, err = domain.ParseSegment("adult")
	require.ErrorIs(t, err, domain.ErrInvalidSegment)
}

func TestBucket_InsertionOrder(t *testing.T) {
	b := domain.NewBucket()
	b.Set("Zeta", domain.Product{Quantity: 1, Price: decimal.NewFromInt(1)})
	b.Set("Alpha", domain.Product{Quantity: 2, Price: decimal.NewFromInt(2)})
	b.Set("Mid", domain.Product{Quantity: 3, Price: decimal.NewFromInt(3)})

	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, b.Names())

	// Updating keeps the original position.
	b.Set("Alpha", domain.Product{Quantity: 9, Price: decimal.NewFromInt(9)})
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, b.Names())

	p, ok := b.Get("Alpha")
	require.True(t, ok)
	assert.Equal(t, 9, p.Quantity)

	details := b.Details()
	require.Len(t, details, 3)
	assert.Equal(t, "Zeta", details[0].Name)
	assert.Equal(t, "Alpha", details[1].Name)
}

func TestBucket_Remove(t *testing.T) {
	b := domain.NewBucket()
	b.Set("One", domain.Product{Quantity: 1, Price: decimal.NewFromInt(1)})
	b.Set("Two", domain.Product{Quantity: 2, Price: decimal.NewFromInt(2)})

	assert.True(t, b.Remove("One"))
	assert.False(t, b.Remove("One"))
	assert.Equal(t, []string{"Two"}, b.Names())

	_, ok := b.Get("One")
	assert.False(t, ok)
}

func TestBucket_NilSafe(t *testing.T) {
	var b *domain.Bucket

	assert.Zero(t, b.Len())
	assert.Nil(t, b.Names())
	assert.Nil(t, b.Details())
	assert.False(t, b.Remove("anything"))

	_, ok := b.Get("anything")
	assert.False(t, ok)
}

func TestBucket_JSONRoundTripKeepsOrder(t *testing.T) {
	b := domain.NewBucket()
	b.Set("Perfume Amadeirado", domain.Product{Quantity: 4, Price: decimal.NewFromFloat(59.9)})
	b.Set("Perfume Cítrico", domain.Product{Quantity: 0, Price: decimal.NewFromInt(45)})
	b.Set("Perfume Floral", domain.Product{Quantity: 12, Price: decimal.NewFromFloat(39.5)})

	data, err := json.Marshal(b)
	require.NoError(t, err)

	var decoded domain.Bucket
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, b.Names(), decoded.Names())

	for _, d := range b.Details() {
		got, ok := decoded.Get(d.Name)
		require.True(t, ok, d.Name)
		assert.Equal(t, d.Product.Quantity, got.Quantity)
		assert.True(t, d.Product.Price.Equal(got.Price), "price of %s", d.Name)
	}
}

func TestProduct_JSONFieldNames(t *testing.T) {
	p := domain.Product{Quantity: 3, Price: decimal.NewFromFloat(2.5)}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"quantidade":3,"preco":2.5}`, string(data))

	var decoded domain.Product
	require.NoError(t, json.Unmarshal([]byte(`{"quantidade":8,"preco":19.99}`), &decoded))
	assert.Equal(t, 8, decoded.Quantity)
	assert.True(t, decoded.Price.Equal(decimal.NewFromFloat(19.99)))
}

func TestProduct_PriceEncodingIsLocal(t *testing.T) {
	// The bare-number rendering belongs to Product alone: a decimal
	// marshaled on its own keeps the package default (quoted).
	data, err := json.Marshal(decimal.NewFromFloat(2.5))
	require.NoError(t, err)
	assert.Equal(t, `"2.5"`, string(data))

	data, err = json.Marshal(domain.Product{Quantity: 1, Price: decimal.NewFromFloat(2.5)})
	require.NoError(t, err)
	assert.Equal(t, `{"quantidade":1,"preco":2.5}`, string(data))
}

func TestCatalog_EnsureBucket(t *testing.T) {
	catalog := domain.Catalog{}

	assert.Nil(t, catalog.Bucket(domain.CategoryHairCare, domain.SegmentChild))

	b := catalog.EnsureBucket(domain.CategoryHairCare, domain.SegmentChild)
	require.NotNil(t, b)
	assert.Same(t, b, catalog.EnsureBucket(domain.CategoryHairCare, domain.SegmentChild))
	assert.Same(t, b, catalog.Bucket(domain.CategoryHairCare, domain.SegmentChild))
}
