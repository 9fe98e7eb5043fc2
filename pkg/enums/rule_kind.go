package enums

import "fmt"

// RuleKind identifies the component validation rule variants.
type RuleKind string

const (
	RuleKindRequireAll  RuleKind = "require_all"
	RuleKindRequireOne  RuleKind = "require_one"
	RuleKindExclusive   RuleKind = "exclusive"
	RuleKindConditional RuleKind = "conditional"
)

var validRuleKinds = []RuleKind{
	RuleKindRequireAll,
	RuleKindRequireOne,
	RuleKindExclusive,
	RuleKindConditional,
}

// String implements fmt.Stringer.
func (k RuleKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known RuleKind.
func (k RuleKind) IsValid() bool {
	for _, candidate := range validRuleKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseRuleKind converts raw input into a RuleKind.
func ParseRuleKind(value string) (RuleKind, error) {
	for _, candidate := range validRuleKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rule kind %q", value)
}
