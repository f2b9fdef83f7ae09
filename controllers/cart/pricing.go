package cartControllers

import (
	"fmt"

	"github.com/alka-bakery/bakery-api/models"
)

const defaultGrams = 100

type pricedSelection struct {
	UnitPrice    float64
	Grams        *float64
	VariantLabel *string
}

// priceSelection resolves the unit price for a product selection and
// normalizes the grams/variant fields to persist on the line. Weight
// pricing is linear per 100 g. Pure; re-run whenever unit, grams or
// variant change on a line.
func priceSelection(product *models.Product, unit string, grams *float64, variantLabel string) (pricedSelection, error) {
	switch unit {
	case "gm":
		g := float64(defaultGrams)
		if grams != nil && *grams > 0 {
			g = *grams
		}
		per100 := 0.0
		if product.PricePer100g != nil {
			per100 = *product.PricePer100g
		}
		return pricedSelection{
			UnitPrice: (g / 100) * per100,
			Grams:     &g,
		}, nil

	case "pc":
		price := 0.0
		if product.PricePerPc != nil {
			price = *product.PricePerPc
		}
		return pricedSelection{UnitPrice: price}, nil

	case "variant":
		for _, opt := range product.UnitOptions {
			if opt.Label == variantLabel {
				label := opt.Label
				return pricedSelection{
					UnitPrice:    opt.Price,
					Grams:        opt.Grams,
					VariantLabel: &label,
				}, nil
			}
		}
		return pricedSelection{}, fmt.Errorf("%w: %q on product %s", ErrVariantNotFound, variantLabel, product.ID)

	default:
		return pricedSelection{}, fmt.Errorf("unsupported unit %q", unit)
	}
}
