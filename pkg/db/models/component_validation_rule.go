package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/copperline/storefront-backend/pkg/db/types"
	"github.com/copperline/storefront-backend/pkg/enums"
)

// ComponentValidationRule ties a rule kind to a set of product components.
// Conditional rules carry a "componentSlug:optionSlug" trigger condition.
type ComponentValidationRule struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null"`

	Name         string            `gorm:"column:name;not null"`
	Kind         enums.RuleKind    `gorm:"column:kind;type:rule_kind;not null"`
	ComponentIDs dbtypes.UUIDArray `gorm:"column:component_ids;type:uuid[];not null;default:'{}'"`
	Condition    *string           `gorm:"column:condition"`
	ErrorMessage *string           `gorm:"column:error_message"`
	DisplayOrder int               `gorm:"column:display_order;not null;default:0"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
