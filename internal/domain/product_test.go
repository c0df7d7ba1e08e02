package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductSlug(t *testing.T) {
	p := Product{Name: "Café Crème Mug"}
	assert.Equal(t, "cafe-creme-mug", p.Slug())
}

func TestVariantSelectable(t *testing.T) {
	assert.True(t, (&Variant{Active: true, Stock: 1}).Selectable())
	assert.False(t, (&Variant{Active: true, Stock: 0}).Selectable())
	assert.False(t, (&Variant{Active: false, Stock: 5}).Selectable())
}

func TestVariantUnitPrice(t *testing.T) {
	product := &Product{Price: 4999}

	base := &Variant{}
	assert.Equal(t, int64(4999), base.UnitPrice(product))

	override := int64(5499)
	priced := &Variant{Price: &override}
	assert.Equal(t, int64(5499), priced.UnitPrice(product))
}
