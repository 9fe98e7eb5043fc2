package product

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/copperline/storefront-backend/internal/pricing"
	"github.com/copperline/storefront-backend/pkg/db/models"
	"github.com/copperline/storefront-backend/pkg/enums"
	pkgerrors "github.com/copperline/storefront-backend/pkg/errors"
	"github.com/copperline/storefront-backend/pkg/types"
)

func stringPtr(s string) *string { return &s }
func intPtr(v int) *int          { return &v }
func boolPtr(b bool) *bool       { return &b }

func testService() *service {
	return &service{
		repo:     NewRepository(nil),
		engine:   pricing.NewEngine(),
		currency: enums.CurrencyUSD,
	}
}

func TestApplyUpdateToProductTrimsAndCopies(t *testing.T) {
	product := &models.Product{
		Slug:  "old-slug",
		Title: "old title",
	}

	input := UpdateProductInput{
		Slug:       stringPtr("  new-slug  "),
		Title:      stringPtr("  New Title "),
		PriceCents: intPtr(7500),
		Published:  boolPtr(true),
	}
	applyUpdateToProduct(product, input)

	if product.Slug != "new-slug" {
		t.Fatalf("expected trimmed slug, got %s", product.Slug)
	}
	if product.Title != "New Title" {
		t.Fatalf("expected trimmed title, got %s", product.Title)
	}
	if product.PriceCents != 7500 {
		t.Fatalf("expected price 7500, got %d", product.PriceCents)
	}
	if !product.Published {
		t.Fatal("expected published flag")
	}
}

func TestApplyUpdateClearSaleWindow(t *testing.T) {
	now := time.Now()
	product := &models.Product{
		PriceCents:     5000,
		SalePriceCents: intPtr(4000),
		SaleStartsAt:   &now,
		SaleEndsAt:     &now,
	}

	applyUpdateToProduct(product, UpdateProductInput{ClearSalePrice: true})

	if product.SalePriceCents != nil || product.SaleStartsAt != nil || product.SaleEndsAt != nil {
		t.Fatal("expected the whole sale window to be cleared")
	}
}

func TestBeforeChangeRejectsBadSalePrice(t *testing.T) {
	svc := testService()
	product := &models.Product{
		Title:          "Board",
		Slug:           "board",
		PriceCents:     5000,
		SalePriceCents: intPtr(5000),
	}

	err := svc.beforeChange(product)
	if err == nil {
		t.Fatal("expected sale price violation")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestBeforeChangeRecomputesStoredTotal(t *testing.T) {
	svc := testService()
	product := &models.Product{
		Title:      "Board",
		Slug:       "board",
		PriceCents: 5000,
	}

	if err := svc.beforeChange(product); err != nil {
		t.Fatalf("beforeChange: %v", err)
	}
	if product.CalculatedTotalPriceCents != 5000 {
		t.Fatalf("expected stored total 5000, got %d", product.CalculatedTotalPriceCents)
	}

	product.EnableVariants = true
	product.Variants = []models.ProductVariant{
		{
			Options:    types.VariantOptions{{OptionSlug: "size", Value: "small"}},
			PriceCents: 4200, IsActive: true, Stock: 1,
		},
	}
	if err := svc.beforeChange(product); err != nil {
		t.Fatalf("beforeChange: %v", err)
	}
	if product.CalculatedTotalPriceCents != 4200 {
		t.Fatalf("expected variant floor 4200, got %d", product.CalculatedTotalPriceCents)
	}
}

func TestBeforeChangeEnforcesCatalogInvariants(t *testing.T) {
	svc := testService()

	t.Run("customization without base price", func(t *testing.T) {
		product := &models.Product{
			Title: "Knife", Slug: "knife", PriceCents: 9000,
			EnableComponentCustomization: true,
			Components:                   []models.ProductComponent{{Slug: "handle"}},
		}
		if err := svc.beforeChange(product); err == nil {
			t.Fatal("expected invariant violation")
		}
	})

	t.Run("variants without rows", func(t *testing.T) {
		product := &models.Product{
			Title: "Knife", Slug: "knife", PriceCents: 9000,
			EnableVariants: true,
		}
		if err := svc.beforeChange(product); err == nil {
			t.Fatal("expected invariant violation")
		}
	})
}

func TestBuildAddOnValidates(t *testing.T) {
	if _, err := buildAddOn(AddOnInput{Title: " ", Category: enums.AddOnCategoryGiftWrap}); err == nil {
		t.Fatal("expected missing title to fail")
	}
	if _, err := buildAddOn(AddOnInput{Title: "Wrap", Category: "bogus"}); err == nil {
		t.Fatal("expected unknown category to fail")
	}
	if _, err := buildAddOn(AddOnInput{Title: "Wrap", Category: enums.AddOnCategoryGiftWrap, PriceCents: -1}); err == nil {
		t.Fatal("expected negative price to fail")
	}

	addOn, err := buildAddOn(AddOnInput{
		Title: " Gift wrap ", Category: enums.AddOnCategoryGiftWrap, PriceCents: 300,
		Stock: 10, IsActive: true, CompatibleProductIDs: []uuid.UUID{uuid.New()},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addOn.Title != "Gift wrap" {
		t.Fatalf("expected trimmed title, got %q", addOn.Title)
	}
	if len(addOn.CompatibleProductIDs) != 1 {
		t.Fatal("expected compatible product ids to be copied")
	}
}
