package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/copperline/storefront-backend/pkg/db/models"
	"github.com/copperline/storefront-backend/pkg/types"
)

// ProductDTO represents the catalog product payload returned to clients.
type ProductDTO struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`

	PriceCents     int        `json:"price_cents"`
	SalePriceCents *int       `json:"sale_price_cents,omitempty"`
	SaleStartsAt   *time.Time `json:"sale_starts_at,omitempty"`
	SaleEndsAt     *time.Time `json:"sale_ends_at,omitempty"`

	EnableVariants               bool    `json:"enable_variants"`
	EnableComponentCustomization bool    `json:"enable_component_customization"`
	AllowCustomPersonalization   bool    `json:"allow_custom_personalization"`
	Published                    bool    `json:"published"`
	ComponentBasePriceCents      *int    `json:"component_base_price_cents,omitempty"`
	PricingStrategy              *string `json:"pricing_strategy,omitempty"`
	CalculatedTotalPriceCents    int     `json:"calculated_total_price_cents"`

	Variants         []VariantDTO         `json:"variants,omitempty"`
	Components       []ComponentDTO       `json:"components,omitempty"`
	ValidationRules  []ValidationRuleDTO  `json:"validation_rules,omitempty"`
	Personalizations []PersonalizationDTO `json:"personalization_options,omitempty"`
	AddOns           []AddOnDTO           `json:"add_ons,omitempty"`

	StripeProductID *string    `json:"stripe_product_id,omitempty"`
	StripeSyncedAt  *time.Time `json:"stripe_synced_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VariantDTO exposes one sellable option combination.
type VariantDTO struct {
	ID             uuid.UUID            `json:"id"`
	Options        types.VariantOptions `json:"options"`
	Key            string               `json:"key"`
	PriceCents     int                  `json:"price_cents"`
	SalePriceCents *int                 `json:"sale_price_cents,omitempty"`
	Stock          int                  `json:"stock"`
	IsActive       bool                 `json:"is_active"`
	Purchasable    bool                 `json:"purchasable"`
}

// ComponentDTO exposes a customizable slot with its options.
type ComponentDTO struct {
	ID            uuid.UUID            `json:"id"`
	Title         string               `json:"title"`
	Slug          string               `json:"slug"`
	Required      bool                 `json:"required"`
	AllowMultiple bool                 `json:"allow_multiple"`
	DisplayOrder  int                  `json:"display_order"`
	Options       []ComponentOptionDTO `json:"options"`
}

// ComponentOptionDTO exposes one selectable value of a component.
type ComponentOptionDTO struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Slug               string    `json:"slug"`
	PriceModifierCents int       `json:"price_modifier_cents"`
	Stock              int       `json:"stock"`
	DisplayOrder       int       `json:"display_order"`
	IncompatibleWith   []string  `json:"incompatible_with,omitempty"`
	RequiredWith       []string  `json:"required_with,omitempty"`
}

// ValidationRuleDTO exposes a component validation rule.
type ValidationRuleDTO struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Kind         string      `json:"kind"`
	ComponentIDs []uuid.UUID `json:"component_ids"`
	Condition    *string     `json:"condition,omitempty"`
	ErrorMessage *string     `json:"error_message,omitempty"`
	DisplayOrder int         `json:"display_order"`
}

// PersonalizationDTO exposes a customer-fillable field.
type PersonalizationDTO struct {
	ID                   uuid.UUID          `json:"id"`
	Name                 string             `json:"name"`
	Label                string             `json:"label"`
	FieldType            string             `json:"field_type"`
	PersonalizationType  string             `json:"personalization_type"`
	Required             bool               `json:"required"`
	CharacterLimit       *int               `json:"character_limit,omitempty"`
	MinLength            *int               `json:"min_length,omitempty"`
	MaxLength            *int               `json:"max_length,omitempty"`
	Pattern              *string            `json:"pattern,omitempty"`
	AdditionalPriceCents int                `json:"additional_price_cents"`
	SelectValues         types.SelectValues `json:"select_values,omitempty"`
	StyleFields          types.StyleFields  `json:"style_fields,omitempty"`
	ParentOptionID       *uuid.UUID         `json:"parent_option_id,omitempty"`
	ParentValues         *string            `json:"parent_values,omitempty"`
	DisplayOrder         int                `json:"display_order"`
}

// AddOnDTO exposes a purchasable add-on.
type AddOnDTO struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	PriceCents int       `json:"price_cents"`
	Stock      int       `json:"stock"`
	IsActive   bool      `json:"is_active"`
}

// NewProductDTO maps a loaded product model onto the response payload.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:          product.ID,
		Slug:        product.Slug,
		Title:       product.Title,
		Description: product.Description,

		PriceCents:     product.PriceCents,
		SalePriceCents: product.SalePriceCents,
		SaleStartsAt:   product.SaleStartsAt,
		SaleEndsAt:     product.SaleEndsAt,

		EnableVariants:               product.EnableVariants,
		EnableComponentCustomization: product.EnableComponentCustomization,
		AllowCustomPersonalization:   product.AllowCustomPersonalization,
		Published:                    product.Published,
		ComponentBasePriceCents:      product.ComponentBasePriceCents,
		CalculatedTotalPriceCents:    product.CalculatedTotalPriceCents,

		StripeProductID: product.StripeProductID,
		StripeSyncedAt:  product.StripeSyncedAt,

		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
	if product.PricingStrategy != nil {
		strategy := product.PricingStrategy.String()
		dto.PricingStrategy = &strategy
	}

	for i := range product.Variants {
		dto.Variants = append(dto.Variants, newVariantDTO(&product.Variants[i]))
	}
	for i := range product.Components {
		dto.Components = append(dto.Components, newComponentDTO(&product.Components[i]))
	}
	for i := range product.ValidationRules {
		rule := &product.ValidationRules[i]
		dto.ValidationRules = append(dto.ValidationRules, ValidationRuleDTO{
			ID:           rule.ID,
			Name:         rule.Name,
			Kind:         rule.Kind.String(),
			ComponentIDs: []uuid.UUID(rule.ComponentIDs),
			Condition:    rule.Condition,
			ErrorMessage: rule.ErrorMessage,
			DisplayOrder: rule.DisplayOrder,
		})
	}
	for i := range product.PersonalizationOptions {
		dto.Personalizations = append(dto.Personalizations, newPersonalizationDTO(&product.PersonalizationOptions[i]))
	}
	for i := range product.AddOns {
		dto.AddOns = append(dto.AddOns, NewAddOnDTO(&product.AddOns[i]))
	}
	return dto
}

func newVariantDTO(variant *models.ProductVariant) VariantDTO {
	return VariantDTO{
		ID:             variant.ID,
		Options:        variant.Options,
		Key:            variant.Key(),
		PriceCents:     variant.PriceCents,
		SalePriceCents: variant.SalePriceCents,
		Stock:          variant.Stock,
		IsActive:       variant.IsActive,
		Purchasable:    variant.Purchasable(),
	}
}

func newComponentDTO(component *models.ProductComponent) ComponentDTO {
	dto := ComponentDTO{
		ID:            component.ID,
		Title:         component.Title,
		Slug:          component.Slug,
		Required:      component.Required,
		AllowMultiple: component.AllowMultiple,
		DisplayOrder:  component.DisplayOrder,
	}
	for i := range component.Options {
		option := &component.Options[i]
		dto.Options = append(dto.Options, ComponentOptionDTO{
			ID:                 option.ID,
			Title:              option.Title,
			Slug:               option.Slug,
			PriceModifierCents: option.PriceModifierCents,
			Stock:              option.Stock,
			DisplayOrder:       option.DisplayOrder,
			IncompatibleWith:   []string(option.IncompatibleWith),
			RequiredWith:       []string(option.RequiredWith),
		})
	}
	return dto
}

func newPersonalizationDTO(option *models.PersonalizationOption) PersonalizationDTO {
	return PersonalizationDTO{
		ID:                   option.ID,
		Name:                 option.Name,
		Label:                option.Label,
		FieldType:            option.FieldType.String(),
		PersonalizationType:  option.PersonalizationType.String(),
		Required:             option.Required,
		CharacterLimit:       option.CharacterLimit,
		MinLength:            option.MinLength,
		MaxLength:            option.MaxLength,
		Pattern:              option.Pattern,
		AdditionalPriceCents: option.AdditionalPriceCents,
		SelectValues:         option.SelectValues,
		StyleFields:          option.StyleFields,
		ParentOptionID:       option.ParentOptionID,
		ParentValues:         option.ParentValues,
		DisplayOrder:         option.DisplayOrder,
	}
}

// NewAddOnDTO maps an add-on model onto its payload.
func NewAddOnDTO(addOn *models.AddOn) AddOnDTO {
	return AddOnDTO{
		ID:         addOn.ID,
		Title:      addOn.Title,
		Category:   addOn.Category.String(),
		PriceCents: addOn.PriceCents,
		Stock:      addOn.Stock,
		IsActive:   addOn.IsActive,
	}
}
