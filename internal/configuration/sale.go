package configuration

import (
	"github.com/shopspring/decimal"

	"github.com/copperline/storefront-backend/pkg/db/models"
	"github.com/copperline/storefront-backend/pkg/enums"
	"github.com/copperline/storefront-backend/pkg/errors"
)

// ValidateSalePricing enforces the write-time invariant that a sale price
// undercuts the regular price. It applies at the product level and to
// every variant, regardless of whether a sale window is currently active.
func ValidateSalePricing(product *models.Product, currency enums.Currency) error {
	if product.SalePriceCents != nil && *product.SalePriceCents >= product.PriceCents {
		return errors.Newf(errors.CodeValidation,
			"sale price %s must be less than the regular price %s",
			FormatCents(currency, *product.SalePriceCents),
			FormatCents(currency, product.PriceCents))
	}
	for i := range product.Variants {
		variant := &product.Variants[i]
		if variant.SalePriceCents != nil && *variant.SalePriceCents >= variant.PriceCents {
			return errors.Newf(errors.CodeValidation,
				"variant %q sale price %s must be less than its regular price %s",
				variant.Key(),
				FormatCents(currency, *variant.SalePriceCents),
				FormatCents(currency, variant.PriceCents))
		}
	}
	return nil
}

// ValidateCatalogEntry enforces the structural write-time invariants on a
// product: component customization needs a base price and at least one
// component, and variant products need at least one variant with a unique
// option key.
func ValidateCatalogEntry(product *models.Product) error {
	if product.EnableComponentCustomization {
		if product.ComponentBasePriceCents == nil {
			return errors.New(errors.CodeValidation,
				"component customization requires a component base price")
		}
		if len(product.Components) == 0 {
			return errors.New(errors.CodeValidation,
				"component customization requires at least one component")
		}
	}

	if product.EnableVariants {
		if len(product.Variants) == 0 {
			return errors.New(errors.CodeValidation,
				"variant products require at least one variant")
		}
		seen := make(map[string]struct{}, len(product.Variants))
		for i := range product.Variants {
			key := product.Variants[i].Key()
			if key == "" {
				return errors.New(errors.CodeValidation,
					"every variant needs at least one option value")
			}
			if _, dup := seen[key]; dup {
				return errors.Newf(errors.CodeValidation,
					"duplicate variant option combination %q", key)
			}
			seen[key] = struct{}{}
		}
	}
	return nil
}

var currencySymbols = map[enums.Currency]string{
	enums.CurrencyUSD: "$",
	enums.CurrencyEUR: "€",
	enums.CurrencyGBP: "£",
}

// FormatCents renders minor units as a customer-facing amount, e.g.
// FormatCents(USD, 5000) -> "$50.00".
func FormatCents(currency enums.Currency, cents int) string {
	amount := decimal.NewFromInt(int64(cents)).Div(decimal.NewFromInt(100))
	symbol, ok := currencySymbols[currency]
	if !ok {
		return currency.String() + " " + amount.StringFixed(2)
	}
	return symbol + amount.StringFixed(2)
}
