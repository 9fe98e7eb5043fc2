package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// VariantOption is one (option axis, value) pair of a variant, e.g.
// {"size", "750ml"} or {"finish", "matte"}.
type VariantOption struct {
	OptionSlug string `json:"option_slug"`
	Value      string `json:"value"`
}

// VariantOptions is the ordered option set of a variant, stored as JSONB.
type VariantOptions []VariantOption

func (o VariantOptions) Value() (driver.Value, error) {
	if len(o) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("VariantOptions: marshal: %w", err)
	}
	return string(raw), nil
}

func (o *VariantOptions) Scan(src any) error {
	if src == nil {
		*o = VariantOptions{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	default:
		return fmt.Errorf("VariantOptions: unsupported Scan type %T", src)
	}
}

// Key derives the stable variant key: option pairs sorted by slug and
// joined as slug:value|slug:value. Remote catalog prices are tagged with
// this key so a variant can be matched across systems.
func (o VariantOptions) Key() string {
	if len(o) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(o))
	for _, opt := range o {
		pairs = append(pairs, opt.OptionSlug+":"+opt.Value)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "|")
}
