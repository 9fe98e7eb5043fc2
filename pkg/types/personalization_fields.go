package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SelectValue is one choosable value of a select-typed personalization
// option, optionally carrying its own price.
type SelectValue struct {
	Value                string `json:"value"`
	Label                string `json:"label"`
	AdditionalPriceCents int    `json:"additional_price_cents"`
}

// SelectValues is stored as JSONB on the personalization option row.
type SelectValues []SelectValue

func (s SelectValues) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("SelectValues: marshal: %w", err)
	}
	return string(raw), nil
}

func (s *SelectValues) Scan(src any) error {
	if src == nil {
		*s = SelectValues{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("SelectValues: unsupported Scan type %T", src)
	}
}

// StyleField is a nested input revealed once a style value is chosen.
type StyleField struct {
	Name           string `json:"name"`
	Label          string `json:"label"`
	FieldType      string `json:"field_type"`
	Required       bool   `json:"required"`
	CharacterLimit *int   `json:"character_limit,omitempty"`
}

// StyleFields is stored as JSONB on the personalization option row.
type StyleFields []StyleField

func (s StyleFields) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("StyleFields: marshal: %w", err)
	}
	return string(raw), nil
}

func (s *StyleFields) Scan(src any) error {
	if src == nil {
		*s = StyleFields{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("StyleFields: unsupported Scan type %T", src)
	}
}
