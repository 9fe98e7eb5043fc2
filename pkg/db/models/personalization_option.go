package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/copperline/storefront-backend/pkg/enums"
	"github.com/copperline/storefront-backend/pkg/types"
)

// PersonalizationOption is a customer-fillable field attached to a product.
// Style-typed options reveal nested StyleFields once a value is chosen;
// conditional options are visible only when the parent option holds one of
// the declared parent values.
type PersonalizationOption struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null"`

	Name  string `gorm:"column:name;not null"`
	Label string `gorm:"column:label;not null"`

	FieldType           enums.FieldType           `gorm:"column:field_type;type:field_type;not null"`
	PersonalizationType enums.PersonalizationType `gorm:"column:personalization_type;type:personalization_type;not null;default:'simple'"`

	Required       bool    `gorm:"column:required;not null;default:false"`
	CharacterLimit *int    `gorm:"column:character_limit"`
	MinLength      *int    `gorm:"column:min_length"`
	MaxLength      *int    `gorm:"column:max_length"`
	Pattern        *string `gorm:"column:pattern"`

	AdditionalPriceCents int `gorm:"column:additional_price_cents;not null;default:0"`

	SelectValues types.SelectValues `gorm:"column:select_values;type:jsonb;not null;default:'[]'"`
	StyleFields  types.StyleFields  `gorm:"column:style_fields;type:jsonb;not null;default:'[]'"`

	ParentOptionID *uuid.UUID `gorm:"column:parent_option_id;type:uuid"`
	// Comma-separated parent values that make this option visible.
	ParentValues *string `gorm:"column:parent_values"`

	DisplayOrder int `gorm:"column:display_order;not null;default:0"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// SelectValueFor returns the declared select value matching the submission.
func (p *PersonalizationOption) SelectValueFor(value string) *types.SelectValue {
	for i := range p.SelectValues {
		if p.SelectValues[i].Value == value {
			return &p.SelectValues[i]
		}
	}
	return nil
}
