package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/copperline/storefront-backend/pkg/db/models"
	"github.com/copperline/storefront-backend/pkg/enums"
)

// Engine computes totals from a product and a selection. It is total: a
// dangling reference contributes zero and the engine never returns an
// error, so a stale configuration can still render a price.
type Engine struct {
	now func() time.Time
}

// NewEngine builds an engine using the wall clock.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineAt builds an engine with a fixed clock, for deterministic tests
// of sale windows.
func NewEngineAt(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Calculate returns the flat total for the selection in minor currency
// units. This is the field-hook calculator: add-ons are charged once each
// regardless of quantity; quantity handling lives in Quote.
func (e *Engine) Calculate(product *models.Product, sel Selection) int {
	if product == nil {
		return 0
	}

	base := e.BasePrice(product)
	total := base

	if product.EnableComponentCustomization && len(sel.Components) > 0 {
		total = applyComponentModifiers(product, sel, base, total)
	}

	for _, addOnID := range sel.AddOnIDs {
		for i := range product.AddOns {
			if product.AddOns[i].ID == addOnID {
				total += product.AddOns[i].PriceCents
				break
			}
		}
	}

	for _, entry := range sel.Personalizations {
		total += personalizationPrice(product, entry)
	}

	return total
}

// BasePrice resolves the starting price: the component-config base when
// customization is enabled, else the sale price inside an active window,
// else the regular price. When variants are enabled the minimum effective
// price across active variants overrides the result — list views show
// "starting at" pricing, so the floor is the product's headline price.
func (e *Engine) BasePrice(product *models.Product) int {
	base := product.PriceCents
	switch {
	case product.EnableComponentCustomization && product.ComponentBasePriceCents != nil:
		base = *product.ComponentBasePriceCents
	case product.SaleActive(e.now()):
		base = *product.SalePriceCents
	}

	if product.EnableVariants {
		if floor, ok := variantFloor(product.Variants); ok {
			base = floor
		}
	}
	return base
}

func variantFloor(variants []models.ProductVariant) (int, bool) {
	found := false
	floor := 0
	for i := range variants {
		if !variants[i].IsActive {
			continue
		}
		price := variants[i].EffectivePriceCents()
		if !found || price < floor {
			floor = price
			found = true
		}
	}
	return floor, found
}

func applyComponentModifiers(product *models.Product, sel Selection, base, total int) int {
	strategy := enums.PricingStrategyAdditive
	if product.PricingStrategy != nil {
		strategy = *product.PricingStrategy
	}

	type resolved struct {
		modifier     int
		displayOrder int
	}
	selections := make([]resolved, 0, len(sel.Components))
	for _, choice := range sel.Components {
		component := componentByID(product, choice.ComponentID)
		if component == nil {
			continue
		}
		option := component.OptionBySlug(choice.OptionSlug)
		if option == nil {
			continue
		}
		selections = append(selections, resolved{
			modifier:     option.PriceModifierCents,
			displayOrder: component.DisplayOrder,
		})
	}
	if len(selections) == 0 {
		return total
	}

	switch strategy {
	case enums.PricingStrategyOverride:
		// With multiple override selections the component with the highest
		// display order wins; submission order breaks remaining ties.
		winner := selections[0]
		for _, candidate := range selections[1:] {
			if candidate.displayOrder >= winner.displayOrder {
				winner = candidate
			}
		}
		return winner.modifier
	case enums.PricingStrategyPercentage:
		for _, selection := range selections {
			total += percentageOf(base, selection.modifier)
		}
		return total
	default:
		for _, selection := range selections {
			total += selection.modifier
		}
		return total
	}
}

// percentageOf computes base × percent / 100 rounded half up.
func percentageOf(base, percent int) int {
	product := decimal.NewFromInt(int64(base)).Mul(decimal.NewFromInt(int64(percent)))
	return int(product.DivRound(decimal.NewFromInt(100), 0).IntPart())
}

func personalizationPrice(product *models.Product, entry PersonalizationSelection) int {
	option := personalizationByID(product, entry.OptionID)
	if option == nil {
		return 0
	}
	if option.FieldType == enums.FieldTypeSelect && len(option.SelectValues) > 0 {
		if selected := option.SelectValueFor(entry.Value); selected != nil {
			return selected.AdditionalPriceCents
		}
		return 0
	}
	return option.AdditionalPriceCents
}

func componentByID(product *models.Product, id uuid.UUID) *models.ProductComponent {
	for i := range product.Components {
		if product.Components[i].ID == id {
			return &product.Components[i]
		}
	}
	return nil
}

func personalizationByID(product *models.Product, id uuid.UUID) *models.PersonalizationOption {
	for i := range product.PersonalizationOptions {
		if product.PersonalizationOptions[i].ID == id {
			return &product.PersonalizationOptions[i]
		}
	}
	return nil
}
