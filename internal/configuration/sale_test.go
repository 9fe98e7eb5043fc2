package configuration

import (
	"strings"
	"testing"

	"github.com/copperline/storefront-backend/pkg/db/models"
	"github.com/copperline/storefront-backend/pkg/enums"
	"github.com/copperline/storefront-backend/pkg/types"
)

func TestValidateSalePricing(t *testing.T) {
	equal := &models.Product{PriceCents: 5000, SalePriceCents: intPtr(5000)}
	err := ValidateSalePricing(equal, enums.CurrencyUSD)
	if err == nil {
		t.Fatal("expected equal sale price to fail")
	}
	if !strings.Contains(err.Error(), "$50.00") {
		t.Fatalf("expected formatted amounts in message, got %q", err.Error())
	}

	below := &models.Product{PriceCents: 5000, SalePriceCents: intPtr(4999)}
	if err := ValidateSalePricing(below, enums.CurrencyUSD); err != nil {
		t.Fatalf("expected 4999 below 5000 to pass, got %v", err)
	}

	unset := &models.Product{PriceCents: 5000}
	if err := ValidateSalePricing(unset, enums.CurrencyUSD); err != nil {
		t.Fatalf("expected no sale price to pass, got %v", err)
	}
}

func TestValidateSalePricingCoversVariants(t *testing.T) {
	product := &models.Product{
		PriceCents: 5000,
		Variants: []models.ProductVariant{
			{
				Options:        types.VariantOptions{{OptionSlug: "size", Value: "1l"}},
				PriceCents:     6000,
				SalePriceCents: intPtr(6000),
			},
		},
	}
	if err := ValidateSalePricing(product, enums.CurrencyUSD); err == nil {
		t.Fatal("expected variant sale price violation")
	}
}

func TestValidateCatalogEntry(t *testing.T) {
	t.Run("customization needs base price", func(t *testing.T) {
		product := &models.Product{
			EnableComponentCustomization: true,
			Components:                   []models.ProductComponent{{Slug: "handle"}},
		}
		if err := ValidateCatalogEntry(product); err == nil {
			t.Fatal("expected missing base price to fail")
		}
	})

	t.Run("variants need unique keys", func(t *testing.T) {
		options := types.VariantOptions{{OptionSlug: "size", Value: "750ml"}}
		product := &models.Product{
			EnableVariants: true,
			Variants: []models.ProductVariant{
				{Options: options, PriceCents: 100},
				{Options: options, PriceCents: 200},
			},
		}
		if err := ValidateCatalogEntry(product); err == nil {
			t.Fatal("expected duplicate variant keys to fail")
		}
	})
}

func TestFormatCents(t *testing.T) {
	if got := FormatCents(enums.CurrencyUSD, 5000); got != "$50.00" {
		t.Fatalf("unexpected format %q", got)
	}
	if got := FormatCents(enums.CurrencyGBP, 199); got != "£1.99" {
		t.Fatalf("unexpected format %q", got)
	}
}
