package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductAddOn is the join row of the product/add-on association.
type ProductAddOn struct {
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	AddOnID   uuid.UUID `gorm:"column:add_on_id;type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
