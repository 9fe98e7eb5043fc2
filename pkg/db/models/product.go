package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/copperline/storefront-backend/pkg/enums"
)

// Product represents one sellable catalog entry. All money columns are
// integer minor-currency units.
type Product struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug        string    `gorm:"column:slug;not null;uniqueIndex"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description"`

	PriceCents     int        `gorm:"column:price_cents;not null"`
	SalePriceCents *int       `gorm:"column:sale_price_cents"`
	SaleStartsAt   *time.Time `gorm:"column:sale_starts_at"`
	SaleEndsAt     *time.Time `gorm:"column:sale_ends_at"`

	EnableVariants               bool `gorm:"column:enable_variants;not null;default:false"`
	EnableComponentCustomization bool `gorm:"column:enable_component_customization;not null;default:false"`
	AllowCustomPersonalization   bool `gorm:"column:allow_custom_personalization;not null;default:false"`
	Published                    bool `gorm:"column:published;not null;default:false"`

	// Component customization config; required when the flag above is set.
	ComponentBasePriceCents *int                   `gorm:"column:component_base_price_cents"`
	PricingStrategy         *enums.PricingStrategy `gorm:"column:pricing_strategy;type:pricing_strategy"`

	// Field-hook cache of the engine's flat calculation. Zero means not yet computed.
	CalculatedTotalPriceCents int `gorm:"column:calculated_total_price_cents;not null;default:0"`

	// External catalog linkage.
	StripeProductID *string    `gorm:"column:stripe_product_id"`
	StripePriceID   *string    `gorm:"column:stripe_price_id"`
	StripeSyncedAt  *time.Time `gorm:"column:stripe_synced_at"`
	SyncSuppressed  bool       `gorm:"column:sync_suppressed;not null;default:false"`

	Variants               []ProductVariant          `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Components             []ProductComponent        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	ValidationRules        []ComponentValidationRule `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	PersonalizationOptions []PersonalizationOption   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	AddOns                 []AddOn                   `gorm:"many2many:product_add_ons"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// SaleActive reports whether the product-level sale price applies at now.
func (p *Product) SaleActive(now time.Time) bool {
	if p.SalePriceCents == nil {
		return false
	}
	if p.SaleStartsAt != nil && now.Before(*p.SaleStartsAt) {
		return false
	}
	if p.SaleEndsAt != nil && now.After(*p.SaleEndsAt) {
		return false
	}
	return true
}
