package pricing

import (
	"github.com/google/uuid"

	"github.com/copperline/storefront-backend/pkg/db/models"
	"github.com/copperline/storefront-backend/pkg/enums"
	"github.com/copperline/storefront-backend/pkg/errors"
)

// QuoteInput is the strict variant of Selection used by the price
// endpoint: quantities are explicit and every reference must resolve.
type QuoteInput struct {
	Quantity         int
	VariantID        *uuid.UUID
	Components       []ComponentSelection
	AddOns           []AddOnLine
	Personalizations []PersonalizationSelection
}

// Selection flattens the quote input into the shape the configuration
// validator consumes. Add-on quantities do not affect validity.
func (q QuoteInput) Selection() Selection {
	sel := Selection{
		VariantID:        q.VariantID,
		Components:       q.Components,
		Personalizations: q.Personalizations,
	}
	for _, line := range q.AddOns {
		sel.AddOnIDs = append(sel.AddOnIDs, line.AddOnID)
	}
	return sel
}

// AddOnLine is one add-on with its own quantity, independent of the
// product quantity.
type AddOnLine struct {
	AddOnID  uuid.UUID
	Quantity int
}

// Quote is the full price breakdown returned to the storefront.
type Quote struct {
	Currency              enums.Currency         `json:"currency"`
	BasePriceCents        int                    `json:"base_price_cents"`
	ModifiersCents        int                    `json:"component_modifiers_cents"`
	PersonalizationsCents int                    `json:"personalization_total_cents"`
	UnitPriceCents        int                    `json:"unit_price_cents"`
	Quantity              int                    `json:"quantity"`
	Components            []QuoteComponent       `json:"components"`
	AddOns                []QuoteAddOn           `json:"add_ons"`
	Personalizations      []QuotePersonalization `json:"personalizations"`
	AddOnsTotalCents      int                    `json:"add_ons_total_cents"`
	TotalCents            int                    `json:"total_price_cents"`
}

// QuoteComponent is one priced component choice within a quote.
type QuoteComponent struct {
	ComponentID   uuid.UUID `json:"component_id"`
	ComponentSlug string    `json:"component_slug"`
	OptionSlug    string    `json:"option_slug"`
	ModifierCents int       `json:"modifier_cents"`
}

// QuoteAddOn is one priced add-on line within a quote.
type QuoteAddOn struct {
	AddOnID        uuid.UUID `json:"add_on_id"`
	Title          string    `json:"title"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int       `json:"unit_price_cents"`
	TotalCents     int       `json:"total_cents"`
}

// QuotePersonalization is one priced personalization within a quote.
type QuotePersonalization struct {
	OptionID   uuid.UUID `json:"personalization_id"`
	Name       string    `json:"name"`
	Value      string    `json:"value"`
	PriceCents int       `json:"price_cents"`
}

// Quote prices a configuration for checkout display. Unlike Calculate it
// is strict: a dangling variant, component, option, add-on, or
// personalization reference fails the whole request, and add-on prices
// multiply by their line quantity.
func (e *Engine) Quote(product *models.Product, currency enums.Currency, input QuoteInput) (*Quote, error) {
	if product == nil {
		return nil, errors.New(errors.CodeNotFound, "product not found")
	}
	if input.Quantity < 1 {
		return nil, errors.New(errors.CodeValidation, "quantity must be at least 1")
	}

	base, err := e.quoteBase(product, input.VariantID)
	if err != nil {
		return nil, err
	}

	componentLines, modifiers, err := quoteModifiers(product, input.Components, base)
	if err != nil {
		return nil, err
	}

	personalizationLines, personalizations, err := quotePersonalizations(product, input.Personalizations)
	if err != nil {
		return nil, err
	}

	unit := base + modifiers + personalizations

	addOnLines, addOnsTotal, err := quoteAddOns(product, input.AddOns)
	if err != nil {
		return nil, err
	}

	return &Quote{
		Currency:              currency,
		BasePriceCents:        base,
		ModifiersCents:        modifiers,
		PersonalizationsCents: personalizations,
		UnitPriceCents:        unit,
		Quantity:              input.Quantity,
		Components:            componentLines,
		AddOns:                addOnLines,
		Personalizations:      personalizationLines,
		AddOnsTotalCents:      addOnsTotal,
		TotalCents:            unit*input.Quantity + addOnsTotal,
	}, nil
}

// quoteBase resolves the quoted base price. A selected variant pins the
// base to that variant's effective price; otherwise the product-level
// resolution applies.
func (e *Engine) quoteBase(product *models.Product, variantID *uuid.UUID) (int, error) {
	if variantID == nil {
		return e.BasePrice(product), nil
	}
	if !product.EnableVariants {
		return 0, errors.New(errors.CodeValidation, "product does not sell variants")
	}
	for i := range product.Variants {
		variant := &product.Variants[i]
		if variant.ID != *variantID {
			continue
		}
		if !variant.Purchasable() {
			return 0, errors.Newf(errors.CodeValidation, "variant %s is unavailable", variant.Key())
		}
		return variant.EffectivePriceCents(), nil
	}
	return 0, errors.Newf(errors.CodeNotFound, "variant %s not found", variantID)
}

func quoteModifiers(product *models.Product, choices []ComponentSelection, base int) ([]QuoteComponent, int, error) {
	if len(choices) == 0 {
		return nil, 0, nil
	}
	if !product.EnableComponentCustomization {
		return nil, 0, errors.New(errors.CodeValidation, "product does not support component customization")
	}

	strategy := enums.PricingStrategyAdditive
	if product.PricingStrategy != nil {
		strategy = *product.PricingStrategy
	}

	type resolved struct {
		line         QuoteComponent
		displayOrder int
	}
	selections := make([]resolved, 0, len(choices))
	for _, choice := range choices {
		component := componentByID(product, choice.ComponentID)
		if component == nil {
			return nil, 0, errors.Newf(errors.CodeNotFound, "component %s not found", choice.ComponentID)
		}
		option := component.OptionBySlug(choice.OptionSlug)
		if option == nil {
			return nil, 0, errors.Newf(errors.CodeNotFound, "option %q not found on component %q", choice.OptionSlug, component.Slug)
		}
		selections = append(selections, resolved{
			line: QuoteComponent{
				ComponentID:   component.ID,
				ComponentSlug: component.Slug,
				OptionSlug:    option.Slug,
				ModifierCents: option.PriceModifierCents,
			},
			displayOrder: component.DisplayOrder,
		})
	}

	lines := make([]QuoteComponent, 0, len(selections))
	switch strategy {
	case enums.PricingStrategyOverride:
		winner := selections[0]
		for _, candidate := range selections[1:] {
			if candidate.displayOrder >= winner.displayOrder {
				winner = candidate
			}
		}
		for _, selection := range selections {
			lines = append(lines, selection.line)
		}
		// Override replaces the base outright; express it as a delta so
		// base + modifiers still equals the unit price.
		return lines, winner.line.ModifierCents - base, nil
	case enums.PricingStrategyPercentage:
		total := 0
		for _, selection := range selections {
			selection.line.ModifierCents = percentageOf(base, selection.line.ModifierCents)
			lines = append(lines, selection.line)
			total += selection.line.ModifierCents
		}
		return lines, total, nil
	default:
		total := 0
		for _, selection := range selections {
			lines = append(lines, selection.line)
			total += selection.line.ModifierCents
		}
		return lines, total, nil
	}
}

func quotePersonalizations(product *models.Product, entries []PersonalizationSelection) ([]QuotePersonalization, int, error) {
	if len(entries) == 0 {
		return nil, 0, nil
	}
	lines := make([]QuotePersonalization, 0, len(entries))
	total := 0
	for _, entry := range entries {
		option := personalizationByID(product, entry.OptionID)
		if option == nil {
			return nil, 0, errors.Newf(errors.CodeNotFound, "personalization option %s not found", entry.OptionID)
		}
		price := option.AdditionalPriceCents
		if option.FieldType == enums.FieldTypeSelect && len(option.SelectValues) > 0 {
			selected := option.SelectValueFor(entry.Value)
			if selected == nil {
				return nil, 0, errors.Newf(errors.CodeValidation, "value %q is not offered for %q", entry.Value, option.Name)
			}
			price = selected.AdditionalPriceCents
		}
		lines = append(lines, QuotePersonalization{
			OptionID:   option.ID,
			Name:       option.Name,
			Value:      entry.Value,
			PriceCents: price,
		})
		total += price
	}
	return lines, total, nil
}

func quoteAddOns(product *models.Product, lines []AddOnLine) ([]QuoteAddOn, int, error) {
	if len(lines) == 0 {
		return nil, 0, nil
	}
	out := make([]QuoteAddOn, 0, len(lines))
	total := 0
	for _, line := range lines {
		quantity := line.Quantity
		if quantity < 1 {
			quantity = 1
		}
		addOn := addOnByID(product, line.AddOnID)
		if addOn == nil {
			return nil, 0, errors.Newf(errors.CodeNotFound, "add-on %s not found", line.AddOnID)
		}
		if !addOn.IsActive {
			return nil, 0, errors.Newf(errors.CodeValidation, "add-on %q is unavailable", addOn.Title)
		}
		if !addOn.CompatibleWith(product.ID) {
			return nil, 0, errors.Newf(errors.CodeValidation, "add-on %q is not offered with this product", addOn.Title)
		}
		lineTotal := addOn.PriceCents * quantity
		out = append(out, QuoteAddOn{
			AddOnID:        addOn.ID,
			Title:          addOn.Title,
			Quantity:       quantity,
			UnitPriceCents: addOn.PriceCents,
			TotalCents:     lineTotal,
		})
		total += lineTotal
	}
	return out, total, nil
}

func addOnByID(product *models.Product, id uuid.UUID) *models.AddOn {
	for i := range product.AddOns {
		if product.AddOns[i].ID == id {
			return &product.AddOns[i]
		}
	}
	return nil
}
