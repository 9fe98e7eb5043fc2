package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/copperline/storefront-backend/pkg/types"
)

// ProductVariant is one concrete SKU of a product: a set of option/value
// pairs with its own price, stock, and remote price record.
type ProductVariant struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null"`

	Options        types.VariantOptions `gorm:"column:options;type:jsonb;not null"`
	PriceCents     int                  `gorm:"column:price_cents;not null"`
	SalePriceCents *int                 `gorm:"column:sale_price_cents"`
	Stock          int                  `gorm:"column:stock;not null;default:0"`
	IsActive       bool                 `gorm:"column:is_active;not null;default:true"`

	StripePriceID *string `gorm:"column:stripe_price_id"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Key returns the stable variant key derived from the option pairs.
func (v *ProductVariant) Key() string {
	return v.Options.Key()
}

// EffectivePriceCents is the sale price when set, else the regular price.
func (v *ProductVariant) EffectivePriceCents() int {
	if v.SalePriceCents != nil {
		return *v.SalePriceCents
	}
	return v.PriceCents
}

// Purchasable reports whether the variant can be added to a cart.
func (v *ProductVariant) Purchasable() bool {
	return v.IsActive && v.Stock > 0
}
