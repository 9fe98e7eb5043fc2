package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/copperline/storefront-backend/pkg/db/types"
	"github.com/copperline/storefront-backend/pkg/enums"
)

// AddOn is an independently priced optional extra. Its lifecycle is separate
// from any product; compatibility is a many-to-many association plus an
// optional explicit allow-list.
type AddOn struct {
	ID       uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title    string              `gorm:"column:title;not null"`
	Category enums.AddOnCategory `gorm:"column:category;type:add_on_category;not null"`

	PriceCents int  `gorm:"column:price_cents;not null"`
	Stock      int  `gorm:"column:stock;not null;default:0"`
	IsActive   bool `gorm:"column:is_active;not null;default:true"`

	// Empty list means compatible with every product it is associated to.
	CompatibleProductIDs dbtypes.UUIDArray `gorm:"column:compatible_product_ids;type:uuid[];not null;default:'{}'"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// CompatibleWith reports whether the add-on may attach to the product.
func (a *AddOn) CompatibleWith(productID uuid.UUID) bool {
	if len(a.CompatibleProductIDs) == 0 {
		return true
	}
	return a.CompatibleProductIDs.Contains(productID)
}
