package enums

import "fmt"

// FieldType identifies the input widget backing a personalization option.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeDate     FieldType = "date"
	FieldTypeColor    FieldType = "color"
)

var validFieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeTextarea,
	FieldTypeSelect,
	FieldTypeDate,
	FieldTypeColor,
}

// String implements fmt.Stringer.
func (f FieldType) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FieldType.
func (f FieldType) IsValid() bool {
	for _, candidate := range validFieldTypes {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFieldType converts raw input into a FieldType.
func ParseFieldType(value string) (FieldType, error) {
	for _, candidate := range validFieldTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid field type %q", value)
}

// PersonalizationType distinguishes plain fields, style groups, and
// fields whose visibility depends on a parent option's value.
type PersonalizationType string

const (
	PersonalizationTypeSimple      PersonalizationType = "simple"
	PersonalizationTypeStyle       PersonalizationType = "style"
	PersonalizationTypeConditional PersonalizationType = "conditional"
)

var validPersonalizationTypes = []PersonalizationType{
	PersonalizationTypeSimple,
	PersonalizationTypeStyle,
	PersonalizationTypeConditional,
}

// String implements fmt.Stringer.
func (p PersonalizationType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PersonalizationType.
func (p PersonalizationType) IsValid() bool {
	for _, candidate := range validPersonalizationTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePersonalizationType converts raw input into a PersonalizationType.
func ParsePersonalizationType(value string) (PersonalizationType, error) {
	for _, candidate := range validPersonalizationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid personalization type %q", value)
}
