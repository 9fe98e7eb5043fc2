package configuration

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/copperline/storefront-backend/internal/pricing"
	"github.com/copperline/storefront-backend/pkg/db/models"
	"github.com/copperline/storefront-backend/pkg/enums"
	"github.com/copperline/storefront-backend/pkg/errors"
)

// Rule is one parsed component validation rule. Evaluate returns the
// human-facing violation message, or "" when the selection satisfies the
// rule.
type Rule interface {
	Evaluate(product *models.Product, sel pricing.Selection) string
}

// RequireAllRule demands a selection for every listed component.
type RequireAllRule struct {
	ComponentIDs []uuid.UUID
	Message      string
}

// RequireOneRule demands a selection for at least one listed component.
type RequireOneRule struct {
	ComponentIDs []uuid.UUID
	Message      string
}

// ExclusiveRule allows a selection for at most one listed component.
type ExclusiveRule struct {
	ComponentIDs []uuid.UUID
	Message      string
}

// ConditionalRule demands a selection for every listed component, but only
// once the trigger option is chosen on the trigger component.
type ConditionalRule struct {
	TriggerComponentSlug string
	TriggerOptionSlug    string
	ComponentIDs         []uuid.UUID
	Message              string
}

// ParseRule turns a stored rule row into its typed variant. Unknown kinds
// and malformed conditional triggers are configuration defects, reported
// as errors rather than silently skipped.
func ParseRule(row *models.ComponentValidationRule) (Rule, error) {
	message := ""
	if row.ErrorMessage != nil {
		message = *row.ErrorMessage
	}

	switch row.Kind {
	case enums.RuleKindRequireAll:
		return &RequireAllRule{ComponentIDs: row.ComponentIDs, Message: message}, nil
	case enums.RuleKindRequireOne:
		return &RequireOneRule{ComponentIDs: row.ComponentIDs, Message: message}, nil
	case enums.RuleKindExclusive:
		return &ExclusiveRule{ComponentIDs: row.ComponentIDs, Message: message}, nil
	case enums.RuleKindConditional:
		if row.Condition == nil {
			return nil, errors.Newf(errors.CodeInternal, "conditional rule %q has no condition", row.Name)
		}
		componentSlug, optionSlug, ok := strings.Cut(*row.Condition, ":")
		if !ok || componentSlug == "" || optionSlug == "" {
			return nil, errors.Newf(errors.CodeInternal, "conditional rule %q has malformed condition %q", row.Name, *row.Condition)
		}
		return &ConditionalRule{
			TriggerComponentSlug: componentSlug,
			TriggerOptionSlug:    optionSlug,
			ComponentIDs:         row.ComponentIDs,
			Message:              message,
		}, nil
	default:
		return nil, errors.Newf(errors.CodeInternal, "unknown rule kind %q on rule %q", row.Kind, row.Name)
	}
}

func (r *RequireAllRule) Evaluate(product *models.Product, sel pricing.Selection) string {
	for _, componentID := range r.ComponentIDs {
		if !sel.ComponentSelected(componentID) {
			if r.Message != "" {
				return r.Message
			}
			return fmt.Sprintf("a selection is required for %q", componentTitle(product, componentID))
		}
	}
	return ""
}

func (r *RequireOneRule) Evaluate(product *models.Product, sel pricing.Selection) string {
	for _, componentID := range r.ComponentIDs {
		if sel.ComponentSelected(componentID) {
			return ""
		}
	}
	if r.Message != "" {
		return r.Message
	}
	return fmt.Sprintf("select at least one of: %s", componentTitles(product, r.ComponentIDs))
}

func (r *ExclusiveRule) Evaluate(product *models.Product, sel pricing.Selection) string {
	selected := 0
	for _, componentID := range r.ComponentIDs {
		if sel.ComponentSelected(componentID) {
			selected++
		}
	}
	if selected <= 1 {
		return ""
	}
	if r.Message != "" {
		return r.Message
	}
	return fmt.Sprintf("select only one of: %s", componentTitles(product, r.ComponentIDs))
}

func (r *ConditionalRule) Evaluate(product *models.Product, sel pricing.Selection) string {
	if !r.triggered(product, sel) {
		return ""
	}
	for _, componentID := range r.ComponentIDs {
		if !sel.ComponentSelected(componentID) {
			if r.Message != "" {
				return r.Message
			}
			return fmt.Sprintf("choosing %q requires a selection for %q",
				r.TriggerOptionSlug, componentTitle(product, componentID))
		}
	}
	return ""
}

func (r *ConditionalRule) triggered(product *models.Product, sel pricing.Selection) bool {
	for i := range product.Components {
		if product.Components[i].Slug != r.TriggerComponentSlug {
			continue
		}
		slug, ok := sel.OptionSlugFor(product.Components[i].ID)
		return ok && slug == r.TriggerOptionSlug
	}
	return false
}

func componentTitle(product *models.Product, componentID uuid.UUID) string {
	for i := range product.Components {
		if product.Components[i].ID == componentID {
			return product.Components[i].Title
		}
	}
	return componentID.String()
}

func componentTitles(product *models.Product, componentIDs []uuid.UUID) string {
	titles := make([]string, 0, len(componentIDs))
	for _, id := range componentIDs {
		titles = append(titles, fmt.Sprintf("%q", componentTitle(product, id)))
	}
	return strings.Join(titles, ", ")
}
