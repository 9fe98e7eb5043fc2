package enums

import "fmt"

// PricingStrategy governs how component price modifiers combine with the base price.
type PricingStrategy string

const (
	PricingStrategyAdditive   PricingStrategy = "additive"
	PricingStrategyOverride   PricingStrategy = "override"
	PricingStrategyPercentage PricingStrategy = "percentage"
)

var validPricingStrategies = []PricingStrategy{
	PricingStrategyAdditive,
	PricingStrategyOverride,
	PricingStrategyPercentage,
}

// String implements fmt.Stringer.
func (s PricingStrategy) String() string {
	return string(s)
}

// IsValid reports whether the value is a known PricingStrategy.
func (s PricingStrategy) IsValid() bool {
	for _, candidate := range validPricingStrategies {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParsePricingStrategy converts raw input into a PricingStrategy.
func ParsePricingStrategy(value string) (PricingStrategy, error) {
	for _, candidate := range validPricingStrategies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pricing strategy %q", value)
}
