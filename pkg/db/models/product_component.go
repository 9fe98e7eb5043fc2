package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ProductComponent is a named customizable slot of a product ("Handle
// Style") holding an ordered list of options.
type ProductComponent struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null"`

	Title         string `gorm:"column:title;not null"`
	Slug          string `gorm:"column:slug;not null"`
	Required      bool   `gorm:"column:required;not null;default:false"`
	AllowMultiple bool   `gorm:"column:allow_multiple;not null;default:false"`
	DisplayOrder  int    `gorm:"column:display_order;not null;default:0"`

	Options []ComponentOption `gorm:"foreignKey:ComponentID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// OptionBySlug returns the matching option, or nil.
func (c *ProductComponent) OptionBySlug(slug string) *ComponentOption {
	for i := range c.Options {
		if c.Options[i].Slug == slug {
			return &c.Options[i]
		}
	}
	return nil
}

// ComponentOption is one selectable value of a component, carrying a price
// modifier (signed; an absolute replacement under the override strategy)
// plus slug-level compatibility constraints.
type ComponentOption struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ComponentID uuid.UUID `gorm:"column:component_id;type:uuid;not null"`

	Title              string         `gorm:"column:title;not null"`
	Slug               string         `gorm:"column:slug;not null"`
	PriceModifierCents int            `gorm:"column:price_modifier_cents;not null;default:0"`
	Stock              int            `gorm:"column:stock;not null;default:0"`
	DisplayOrder       int            `gorm:"column:display_order;not null;default:0"`
	IncompatibleWith   pq.StringArray `gorm:"column:incompatible_with;type:text[];not null;default:'{}'"`
	RequiredWith       pq.StringArray `gorm:"column:required_with;type:text[];not null;default:'{}'"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
