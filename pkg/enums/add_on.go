package enums

import "fmt"

// AddOnCategory groups optional extras attachable to a purchase.
type AddOnCategory string

const (
	AddOnCategoryAccessory AddOnCategory = "accessory"
	AddOnCategoryGiftWrap  AddOnCategory = "gift_wrap"
	AddOnCategoryCare      AddOnCategory = "care"
	AddOnCategoryService   AddOnCategory = "service"
)

var validAddOnCategories = []AddOnCategory{
	AddOnCategoryAccessory,
	AddOnCategoryGiftWrap,
	AddOnCategoryCare,
	AddOnCategoryService,
}

// String implements fmt.Stringer.
func (c AddOnCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known AddOnCategory.
func (c AddOnCategory) IsValid() bool {
	for _, candidate := range validAddOnCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseAddOnCategory converts raw input into an AddOnCategory.
func ParseAddOnCategory(value string) (AddOnCategory, error) {
	for _, candidate := range validAddOnCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid add-on category %q", value)
}
