package pricing

import (
	"testing"

	"github.com/google/uuid"

	"github.com/copperline/storefront-backend/pkg/db/models"
	dbtypes "github.com/copperline/storefront-backend/pkg/db/types"
	"github.com/copperline/storefront-backend/pkg/enums"
	"github.com/copperline/storefront-backend/pkg/errors"
)

func TestQuoteMultipliesQuantities(t *testing.T) {
	product, sel := customizableProduct()
	input := QuoteInput{
		Quantity:         3,
		Components:       sel.Components,
		AddOns:           []AddOnLine{{AddOnID: product.AddOns[0].ID, Quantity: 2}},
		Personalizations: sel.Personalizations,
	}

	quote, err := fixedEngine().Quote(product, enums.CurrencyUSD, input)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}

	if quote.UnitPriceCents != 10700 {
		t.Fatalf("expected unit price 10700, got %d", quote.UnitPriceCents)
	}
	if quote.AddOnsTotalCents != 600 {
		t.Fatalf("expected add-ons total 600, got %d", quote.AddOnsTotalCents)
	}
	if quote.TotalCents != 10700*3+600 {
		t.Fatalf("expected total %d, got %d", 10700*3+600, quote.TotalCents)
	}
	if len(quote.AddOns) != 1 || quote.AddOns[0].TotalCents != 600 {
		t.Fatalf("unexpected add-on breakdown: %+v", quote.AddOns)
	}
}

func TestQuoteVariantPinsBase(t *testing.T) {
	variantID := uuid.New()
	product := &models.Product{
		ID:             uuid.New(),
		PriceCents:     5000,
		EnableVariants: true,
		Variants: []models.ProductVariant{
			{ID: uuid.New(), PriceCents: 4500, IsActive: true, Stock: 3},
			{ID: variantID, PriceCents: 7200, SalePriceCents: intPtr(6600), IsActive: true, Stock: 1},
		},
	}

	quote, err := fixedEngine().Quote(product, enums.CurrencyUSD, QuoteInput{
		Quantity:  1,
		VariantID: &variantID,
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if quote.BasePriceCents != 6600 {
		t.Fatalf("expected variant sale price 6600, got %d", quote.BasePriceCents)
	}
}

func TestQuoteRejectsDanglingReferences(t *testing.T) {
	product, _ := customizableProduct()
	engine := fixedEngine()

	cases := map[string]QuoteInput{
		"component": {
			Quantity:   1,
			Components: []ComponentSelection{{ComponentID: uuid.New(), OptionSlug: "ghost"}},
		},
		"add-on": {
			Quantity: 1,
			AddOns:   []AddOnLine{{AddOnID: uuid.New(), Quantity: 1}},
		},
		"personalization": {
			Quantity:         1,
			Personalizations: []PersonalizationSelection{{OptionID: uuid.New(), Value: "x"}},
		},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := engine.Quote(product, enums.CurrencyUSD, input)
			if err == nil {
				t.Fatal("expected error for dangling reference")
			}
			coded := errors.As(err)
			if coded == nil || coded.Code() != errors.CodeNotFound {
				t.Fatalf("expected not-found error, got %v", err)
			}
		})
	}
}

func TestQuoteRejectsUnavailableVariant(t *testing.T) {
	variantID := uuid.New()
	product := &models.Product{
		PriceCents:     5000,
		EnableVariants: true,
		Variants: []models.ProductVariant{
			{ID: variantID, PriceCents: 5200, IsActive: true, Stock: 0},
		},
	}

	_, err := fixedEngine().Quote(product, enums.CurrencyUSD, QuoteInput{Quantity: 1, VariantID: &variantID})
	if err == nil {
		t.Fatal("expected error for out-of-stock variant")
	}
}

func TestQuoteOverrideDeltaKeepsBreakdownConsistent(t *testing.T) {
	componentID := uuid.New()
	product := &models.Product{
		EnableComponentCustomization: true,
		ComponentBasePriceCents:      intPtr(5000),
		PricingStrategy:              strategyPtr(enums.PricingStrategyOverride),
		Components: []models.ProductComponent{
			{
				ID:      componentID,
				Slug:    "tier",
				Options: []models.ComponentOption{{Slug: "deluxe", PriceModifierCents: 9000}},
			},
		},
	}

	quote, err := fixedEngine().Quote(product, enums.CurrencyUSD, QuoteInput{
		Quantity:   1,
		Components: []ComponentSelection{{ComponentID: componentID, OptionSlug: "deluxe"}},
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if quote.UnitPriceCents != 9000 {
		t.Fatalf("expected override price 9000, got %d", quote.UnitPriceCents)
	}
	if quote.BasePriceCents+quote.ModifiersCents != quote.UnitPriceCents {
		t.Fatalf("breakdown does not add up: %d + %d != %d",
			quote.BasePriceCents, quote.ModifiersCents, quote.UnitPriceCents)
	}
}

func TestQuoteRejectsZeroQuantity(t *testing.T) {
	product, _ := customizableProduct()
	if _, err := fixedEngine().Quote(product, enums.CurrencyUSD, QuoteInput{Quantity: 0}); err == nil {
		t.Fatal("expected error for zero quantity")
	}
}

func TestQuoteRejectsIncompatibleAddOn(t *testing.T) {
	other := uuid.New()
	addOnID := uuid.New()
	product := &models.Product{
		ID:         uuid.New(),
		PriceCents: 3000,
		AddOns: []models.AddOn{
			{ID: addOnID, Title: "Stand", PriceCents: 900, IsActive: true, CompatibleProductIDs: dbtypes.UUIDArray{other}},
		},
	}

	_, err := fixedEngine().Quote(product, enums.CurrencyUSD, QuoteInput{
		Quantity: 1,
		AddOns:   []AddOnLine{{AddOnID: addOnID, Quantity: 1}},
	})
	if err == nil {
		t.Fatal("expected error for incompatible add-on")
	}
}
