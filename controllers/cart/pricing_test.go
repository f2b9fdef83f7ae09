package cartControllers

import (
	"testing"

	"github.com/alka-bakery/bakery-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestPriceSelectionByWeight(t *testing.T) {
	product := &models.Product{ID: "choc-cookies", PricePer100g: floatPtr(80)}

	got, err := priceSelection(product, "gm", floatPtr(250), "")
	require.NoError(t, err)
	assert.Equal(t, 200.0, got.UnitPrice)
	require.NotNil(t, got.Grams)
	assert.Equal(t, 250.0, *got.Grams)
}

func TestPriceSelectionByWeightDefaultsTo100g(t *testing.T) {
	product := &models.Product{ID: "choc-cookies", PricePer100g: floatPtr(80)}

	got, err := priceSelection(product, "gm", nil, "")
	require.NoError(t, err)
	assert.Equal(t, 80.0, got.UnitPrice)
	require.NotNil(t, got.Grams)
	assert.Equal(t, 100.0, *got.Grams)
}

func TestPriceSelectionByPiece(t *testing.T) {
	product := &models.Product{ID: "croissant", PricePerPc: floatPtr(45)}

	got, err := priceSelection(product, "pc", nil, "")
	require.NoError(t, err)
	assert.Equal(t, 45.0, got.UnitPrice)
	assert.Nil(t, got.Grams)
	assert.Nil(t, got.VariantLabel)
}

func TestPriceSelectionVariant(t *testing.T) {
	product := &models.Product{
		ID: "kaju-katli",
		UnitOptions: []models.ProductUnitOption{
			{Label: "250g box", Grams: floatPtr(250), Price: 260},
			{Label: "500g box", Grams: floatPtr(500), Price: 500},
		},
	}

	got, err := priceSelection(product, "variant", nil, "500g box")
	require.NoError(t, err)
	assert.Equal(t, 500.0, got.UnitPrice)
	require.NotNil(t, got.VariantLabel)
	assert.Equal(t, "500g box", *got.VariantLabel)
	require.NotNil(t, got.Grams)
	assert.Equal(t, 500.0, *got.Grams)
}

func TestPriceSelectionVariantNotFound(t *testing.T) {
	product := &models.Product{
		ID:          "kaju-katli",
		UnitOptions: []models.ProductUnitOption{{Label: "250g box", Price: 260}},
	}

	_, err := priceSelection(product, "variant", nil, "1kg box")
	assert.ErrorIs(t, err, ErrVariantNotFound)
}

func TestPriceSelectionUnsupportedUnit(t *testing.T) {
	product := &models.Product{ID: "croissant", PricePerPc: floatPtr(45)}

	_, err := priceSelection(product, "dozen", nil, "")
	assert.Error(t, err)
}
