package pricing

import "github.com/google/uuid"

// Selection is the ephemeral, request-scoped configuration of a product:
// an optional variant, the chosen component options, add-ons, and
// personalization values. It is never persisted; only the derived total
// and an opaque snapshot travel with a cart line item.
type Selection struct {
	VariantID        *uuid.UUID
	Components       []ComponentSelection
	AddOnIDs         []uuid.UUID
	Personalizations []PersonalizationSelection
}

// ComponentSelection picks one option slug for a component.
type ComponentSelection struct {
	ComponentID uuid.UUID
	OptionSlug  string
}

// PersonalizationSelection carries a submitted personalization value plus
// any nested style-field values.
type PersonalizationSelection struct {
	OptionID  uuid.UUID
	Value     string
	SubValues map[string]string
}

// SelectedOptionSlugs returns the set of every selected option slug.
func (s Selection) SelectedOptionSlugs() map[string]struct{} {
	slugs := make(map[string]struct{}, len(s.Components))
	for _, sel := range s.Components {
		slugs[sel.OptionSlug] = struct{}{}
	}
	return slugs
}

// ComponentSelected reports whether any option was chosen for the component.
func (s Selection) ComponentSelected(componentID uuid.UUID) bool {
	for _, sel := range s.Components {
		if sel.ComponentID == componentID {
			return true
		}
	}
	return false
}

// OptionSlugFor returns the selected option slug for a component, if any.
func (s Selection) OptionSlugFor(componentID uuid.UUID) (string, bool) {
	for _, sel := range s.Components {
		if sel.ComponentID == componentID {
			return sel.OptionSlug, true
		}
	}
	return "", false
}
