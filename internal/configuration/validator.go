package configuration

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/copperline/storefront-backend/internal/pricing"
	"github.com/copperline/storefront-backend/pkg/db/models"
	"github.com/copperline/storefront-backend/pkg/enums"
	"github.com/copperline/storefront-backend/pkg/errors"
	"github.com/copperline/storefront-backend/pkg/logger"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

const dateLayout = "2006-01-02"

// Validator checks a customer's configuration against a product's
// components, rules, and personalization options. Checks run in a fixed
// order and stop at the first violation so the storefront can surface one
// actionable message.
type Validator struct {
	log             *logger.Logger
	maxCustomFields int
}

// NewValidator builds a validator. maxCustomFields caps free-form
// personalizations on products that allow them.
func NewValidator(log *logger.Logger, maxCustomFields int) *Validator {
	if maxCustomFields <= 0 {
		maxCustomFields = 5
	}
	return &Validator{log: log, maxCustomFields: maxCustomFields}
}

// ValidateConfiguration verifies the selection in order: required
// components, declared rules, option-level compatibility, then
// personalization fields. The personalization block only runs when the
// payload carries personalization data, so component-only submissions
// never trip personalization requirements.
func (v *Validator) ValidateConfiguration(ctx context.Context, product *models.Product, sel pricing.Selection) error {
	if product.EnableComponentCustomization {
		if err := v.checkRequiredComponents(product, sel); err != nil {
			return err
		}
		if err := v.checkRules(ctx, product, sel); err != nil {
			return err
		}
		if err := v.checkOptionCompatibility(product, sel); err != nil {
			return err
		}
	}

	if len(sel.Personalizations) > 0 {
		if err := v.checkPersonalizations(ctx, product, sel.Personalizations); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) checkRequiredComponents(product *models.Product, sel pricing.Selection) error {
	for i := range product.Components {
		component := &product.Components[i]
		if component.Required && !sel.ComponentSelected(component.ID) {
			return errors.Newf(errors.CodeValidation, "a selection is required for %q", component.Title)
		}
	}
	for _, choice := range sel.Components {
		component := componentByID(product, choice.ComponentID)
		if component == nil {
			return errors.Newf(errors.CodeNotFound, "component %s not found", choice.ComponentID)
		}
		if component.OptionBySlug(choice.OptionSlug) == nil {
			return errors.Newf(errors.CodeNotFound, "option %q not found on component %q", choice.OptionSlug, component.Slug)
		}
	}
	return nil
}

func (v *Validator) checkRules(ctx context.Context, product *models.Product, sel pricing.Selection) error {
	rows := make([]models.ComponentValidationRule, len(product.ValidationRules))
	copy(rows, product.ValidationRules)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].DisplayOrder < rows[j].DisplayOrder
	})

	for i := range rows {
		rule, err := ParseRule(&rows[i])
		if err != nil {
			// A malformed stored rule is a catalog defect. Surface it so
			// the CMS operator fixes the rule rather than shipping a
			// product that silently skips validation.
			v.log.Error(ctx, "unparseable validation rule", err)
			return errors.Wrap(errors.CodeInternal, err, "product validation rules are misconfigured")
		}
		if msg := rule.Evaluate(product, sel); msg != "" {
			return errors.New(errors.CodeValidation, msg)
		}
	}
	return nil
}

func (v *Validator) checkOptionCompatibility(product *models.Product, sel pricing.Selection) error {
	selected := sel.SelectedOptionSlugs()
	for _, choice := range sel.Components {
		component := componentByID(product, choice.ComponentID)
		if component == nil {
			continue
		}
		option := component.OptionBySlug(choice.OptionSlug)
		if option == nil {
			continue
		}
		for _, incompatible := range option.IncompatibleWith {
			if _, ok := selected[incompatible]; ok {
				return errors.Newf(errors.CodeValidation,
					"%q cannot be combined with %q", option.Slug, incompatible)
			}
		}
		for _, required := range option.RequiredWith {
			if _, ok := selected[required]; !ok {
				return errors.Newf(errors.CodeValidation,
					"%q requires %q to also be selected", option.Slug, required)
			}
		}
	}
	return nil
}

func (v *Validator) checkPersonalizations(ctx context.Context, product *models.Product, entries []pricing.PersonalizationSelection) error {
	submitted := make(map[uuid.UUID]pricing.PersonalizationSelection, len(entries))
	custom := 0
	for _, entry := range entries {
		if personalizationByID(product, entry.OptionID) == nil {
			custom++
			continue
		}
		submitted[entry.OptionID] = entry
	}

	if custom > 0 {
		if !product.AllowCustomPersonalization {
			return errors.New(errors.CodeValidation, "this product does not accept custom personalizations")
		}
		if custom > v.maxCustomFields {
			return errors.Newf(errors.CodeValidation,
				"at most %d custom personalizations are allowed", v.maxCustomFields)
		}
	}

	for i := range product.PersonalizationOptions {
		option := &product.PersonalizationOptions[i]
		if !v.optionVisible(product, option, submitted) {
			continue
		}

		entry, present := submitted[option.ID]
		value := strings.TrimSpace(entry.Value)
		if option.Required && (!present || value == "") {
			return errors.Newf(errors.CodeValidation, "%s is required", option.Label)
		}
		if !present || value == "" {
			continue
		}

		if err := v.checkValue(ctx, option, value); err != nil {
			return err
		}
		if option.PersonalizationType == enums.PersonalizationTypeStyle {
			if err := v.checkStyleFields(option, entry.SubValues); err != nil {
				return err
			}
		}
	}
	return nil
}

// optionVisible reports whether a conditional option is revealed by its
// parent's submitted value. Non-conditional options are always visible.
func (v *Validator) optionVisible(product *models.Product, option *models.PersonalizationOption, submitted map[uuid.UUID]pricing.PersonalizationSelection) bool {
	if option.PersonalizationType != enums.PersonalizationTypeConditional || option.ParentOptionID == nil {
		return true
	}
	parent, ok := submitted[*option.ParentOptionID]
	if !ok {
		return false
	}
	if option.ParentValues == nil {
		return parent.Value != ""
	}
	for _, accepted := range strings.Split(*option.ParentValues, ",") {
		if strings.TrimSpace(accepted) == parent.Value {
			return true
		}
	}
	return false
}

func (v *Validator) checkValue(ctx context.Context, option *models.PersonalizationOption, value string) error {
	length := utf8.RuneCountInString(value)

	if option.CharacterLimit != nil && length > *option.CharacterLimit {
		return errors.Newf(errors.CodeValidation,
			"%s must be at most %d characters", option.Label, *option.CharacterLimit)
	}
	if option.MinLength != nil && length < *option.MinLength {
		return errors.Newf(errors.CodeValidation,
			"%s must be at least %d characters", option.Label, *option.MinLength)
	}
	if option.MaxLength != nil && length > *option.MaxLength {
		return errors.Newf(errors.CodeValidation,
			"%s must be at most %d characters", option.Label, *option.MaxLength)
	}

	if option.Pattern != nil && *option.Pattern != "" {
		re, err := regexp.Compile(*option.Pattern)
		if err != nil {
			// A broken stored pattern must not block checkout; skip the
			// check and leave a trail for the catalog operator.
			ctx = v.log.WithField(ctx, "pattern_error", err.Error())
			v.log.Warn(ctx, fmt.Sprintf("skipping malformed personalization pattern on %q", option.Name))
		} else if !re.MatchString(value) {
			return errors.Newf(errors.CodeValidation, "%s has an invalid format", option.Label)
		}
	}

	switch option.FieldType {
	case enums.FieldTypeSelect:
		if len(option.SelectValues) > 0 && option.SelectValueFor(value) == nil {
			return errors.Newf(errors.CodeValidation, "%q is not a valid choice for %s", value, option.Label)
		}
	case enums.FieldTypeDate:
		if _, err := time.Parse(dateLayout, value); err != nil {
			return errors.Newf(errors.CodeValidation, "%s must be a date in YYYY-MM-DD format", option.Label)
		}
	case enums.FieldTypeColor:
		if !hexColorPattern.MatchString(value) {
			return errors.Newf(errors.CodeValidation, "%s must be a hex color like #1a2b3c", option.Label)
		}
	}
	return nil
}

func (v *Validator) checkStyleFields(option *models.PersonalizationOption, subValues map[string]string) error {
	for _, field := range option.StyleFields {
		value := strings.TrimSpace(subValues[field.Name])
		if field.Required && value == "" {
			return errors.Newf(errors.CodeValidation, "%s requires %s", option.Label, field.Label)
		}
		if value == "" {
			continue
		}
		if field.CharacterLimit != nil && utf8.RuneCountInString(value) > *field.CharacterLimit {
			return errors.Newf(errors.CodeValidation,
				"%s must be at most %d characters", field.Label, *field.CharacterLimit)
		}
	}
	return nil
}

func componentByID(product *models.Product, id uuid.UUID) *models.ProductComponent {
	for i := range product.Components {
		if product.Components[i].ID == id {
			return &product.Components[i]
		}
	}
	return nil
}

func personalizationByID(product *models.Product, id uuid.UUID) *models.PersonalizationOption {
	for i := range product.PersonalizationOptions {
		if product.PersonalizationOptions[i].ID == id {
			return &product.PersonalizationOptions[i]
		}
	}
	return nil
}
