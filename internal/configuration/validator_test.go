package configuration

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/copperline/storefront-backend/internal/pricing"
	"github.com/copperline/storefront-backend/pkg/db/models"
	dbtypes "github.com/copperline/storefront-backend/pkg/db/types"
	"github.com/copperline/storefront-backend/pkg/enums"
	"github.com/copperline/storefront-backend/pkg/errors"
	"github.com/copperline/storefront-backend/pkg/logger"
	"github.com/copperline/storefront-backend/pkg/types"
)

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

func testValidator() *Validator {
	return NewValidator(logger.New(logger.Options{ServiceName: "test", Output: io.Discard}), 5)
}

func expectValidation(t *testing.T, err error, fragment string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected a validation error")
	}
	coded := errors.As(err)
	if coded == nil || coded.Code() != errors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if fragment != "" && !strings.Contains(err.Error(), fragment) {
		t.Fatalf("expected message containing %q, got %q", fragment, err.Error())
	}
}

func customizable(components ...models.ProductComponent) *models.Product {
	return &models.Product{
		ID:                           uuid.New(),
		EnableComponentCustomization: true,
		ComponentBasePriceCents:      intPtr(10000),
		Components:                   components,
	}
}

func TestRequiredComponentMustBeSelected(t *testing.T) {
	handleID := uuid.New()
	product := customizable(models.ProductComponent{
		ID: handleID, Title: "Handle Style", Slug: "handle", Required: true,
		Options: []models.ComponentOption{{Slug: "oak"}},
	})

	err := testValidator().ValidateConfiguration(context.Background(), product, pricing.Selection{})
	expectValidation(t, err, "Handle Style")

	ok := testValidator().ValidateConfiguration(context.Background(), product, pricing.Selection{
		Components: []pricing.ComponentSelection{{ComponentID: handleID, OptionSlug: "oak"}},
	})
	if ok != nil {
		t.Fatalf("expected valid selection, got %v", ok)
	}
}

func TestRequireOneRule(t *testing.T) {
	aID, bID := uuid.New(), uuid.New()
	product := customizable(
		models.ProductComponent{ID: aID, Title: "Blade", Slug: "blade", Options: []models.ComponentOption{{Slug: "steel"}}},
		models.ProductComponent{ID: bID, Title: "Sheath", Slug: "sheath", Options: []models.ComponentOption{{Slug: "leather"}}},
	)
	product.ValidationRules = []models.ComponentValidationRule{{
		Name: "pick-one", Kind: enums.RuleKindRequireOne,
		ComponentIDs: dbtypes.UUIDArray{aID, bID},
	}}

	err := testValidator().ValidateConfiguration(context.Background(), product, pricing.Selection{})
	expectValidation(t, err, "at least one")

	ok := testValidator().ValidateConfiguration(context.Background(), product, pricing.Selection{
		Components: []pricing.ComponentSelection{{ComponentID: bID, OptionSlug: "leather"}},
	})
	if ok != nil {
		t.Fatalf("expected valid selection, got %v", ok)
	}
}

func TestExclusiveRuleRejectsBoth(t *testing.T) {
	aID, bID := uuid.New(), uuid.New()
	product := customizable(
		models.ProductComponent{ID: aID, Title: "Engraving", Slug: "engraving", Options: []models.ComponentOption{{Slug: "initials"}}},
		models.ProductComponent{ID: bID, Title: "Embossing", Slug: "embossing", Options: []models.ComponentOption{{Slug: "logo"}}},
	)
	product.ValidationRules = []models.ComponentValidationRule{{
		Name: "one-finish", Kind: enums.RuleKindExclusive,
		ComponentIDs: dbtypes.UUIDArray{aID, bID},
		ErrorMessage: strPtr("Choose engraving or embossing, not both"),
	}}

	both := pricing.Selection{Components: []pricing.ComponentSelection{
		{ComponentID: aID, OptionSlug: "initials"},
		{ComponentID: bID, OptionSlug: "logo"},
	}}
	err := testValidator().ValidateConfiguration(context.Background(), product, both)
	expectValidation(t, err, "not both")

	one := pricing.Selection{Components: []pricing.ComponentSelection{
		{ComponentID: aID, OptionSlug: "initials"},
	}}
	if err := testValidator().ValidateConfiguration(context.Background(), product, one); err != nil {
		t.Fatalf("expected single selection to pass, got %v", err)
	}
}

func TestConditionalRuleFiresOnlyWhenTriggered(t *testing.T) {
	woodID, finishID := uuid.New(), uuid.New()
	product := customizable(
		models.ProductComponent{ID: woodID, Title: "Wood", Slug: "wood", Options: []models.ComponentOption{
			{Slug: "walnut"}, {Slug: "pine"},
		}},
		models.ProductComponent{ID: finishID, Title: "Finish", Slug: "finish", Options: []models.ComponentOption{{Slug: "oil"}}},
	)
	product.ValidationRules = []models.ComponentValidationRule{{
		Name: "walnut-needs-finish", Kind: enums.RuleKindConditional,
		Condition:    strPtr("wood:walnut"),
		ComponentIDs: dbtypes.UUIDArray{finishID},
	}}

	pine := pricing.Selection{Components: []pricing.ComponentSelection{
		{ComponentID: woodID, OptionSlug: "pine"},
	}}
	if err := testValidator().ValidateConfiguration(context.Background(), product, pine); err != nil {
		t.Fatalf("untriggered conditional should pass, got %v", err)
	}

	walnut := pricing.Selection{Components: []pricing.ComponentSelection{
		{ComponentID: woodID, OptionSlug: "walnut"},
	}}
	err := testValidator().ValidateConfiguration(context.Background(), product, walnut)
	expectValidation(t, err, "Finish")
}

func TestOptionIncompatibilityAndCoRequirement(t *testing.T) {
	aID, bID := uuid.New(), uuid.New()
	product := customizable(
		models.ProductComponent{ID: aID, Title: "Lid", Slug: "lid", Options: []models.ComponentOption{
			{Slug: "glass", IncompatibleWith: []string{"travel-sleeve"}},
			{Slug: "steel", RequiredWith: []string{"travel-sleeve"}},
		}},
		models.ProductComponent{ID: bID, Title: "Sleeve", Slug: "sleeve", Options: []models.ComponentOption{
			{Slug: "travel-sleeve"},
		}},
	)

	clash := pricing.Selection{Components: []pricing.ComponentSelection{
		{ComponentID: aID, OptionSlug: "glass"},
		{ComponentID: bID, OptionSlug: "travel-sleeve"},
	}}
	expectValidation(t, testValidator().ValidateConfiguration(context.Background(), product, clash), "cannot be combined")

	missing := pricing.Selection{Components: []pricing.ComponentSelection{
		{ComponentID: aID, OptionSlug: "steel"},
	}}
	expectValidation(t, testValidator().ValidateConfiguration(context.Background(), product, missing), "requires")
}

func personalized(options ...models.PersonalizationOption) *models.Product {
	return &models.Product{ID: uuid.New(), PersonalizationOptions: options}
}

func TestPersonalizationSkippedWithoutData(t *testing.T) {
	product := personalized(models.PersonalizationOption{
		ID: uuid.New(), Name: "monogram", Label: "Monogram",
		FieldType: enums.FieldTypeText, Required: true,
	})

	// No personalization payload at all: the block must not run.
	if err := testValidator().ValidateConfiguration(context.Background(), product, pricing.Selection{}); err != nil {
		t.Fatalf("expected pass without personalization data, got %v", err)
	}
}

func TestPersonalizationFieldChecks(t *testing.T) {
	textID := uuid.New()
	dateID := uuid.New()
	colorID := uuid.New()
	selectID := uuid.New()
	product := personalized(
		models.PersonalizationOption{
			ID: textID, Name: "monogram", Label: "Monogram",
			FieldType: enums.FieldTypeText, CharacterLimit: intPtr(3),
			Pattern: strPtr(`^[A-Z]+$`),
		},
		models.PersonalizationOption{
			ID: dateID, Name: "event_date", Label: "Event Date",
			FieldType: enums.FieldTypeDate,
		},
		models.PersonalizationOption{
			ID: colorID, Name: "thread_color", Label: "Thread Color",
			FieldType: enums.FieldTypeColor,
		},
		models.PersonalizationOption{
			ID: selectID, Name: "font", Label: "Font",
			FieldType: enums.FieldTypeSelect,
			SelectValues: types.SelectValues{
				{Value: "serif", Label: "Serif"},
			},
		},
	)

	cases := []struct {
		name     string
		entry    pricing.PersonalizationSelection
		fragment string
	}{
		{"over limit", pricing.PersonalizationSelection{OptionID: textID, Value: "ABCD"}, "at most 3"},
		{"pattern", pricing.PersonalizationSelection{OptionID: textID, Value: "ab"}, "invalid format"},
		{"bad date", pricing.PersonalizationSelection{OptionID: dateID, Value: "03/01/2026"}, "YYYY-MM-DD"},
		{"bad color", pricing.PersonalizationSelection{OptionID: colorID, Value: "#12345"}, "hex color"},
		{"bad select", pricing.PersonalizationSelection{OptionID: selectID, Value: "comic-sans"}, "not a valid choice"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := testValidator().ValidateConfiguration(context.Background(), product, pricing.Selection{
				Personalizations: []pricing.PersonalizationSelection{tc.entry},
			})
			expectValidation(t, err, tc.fragment)
		})
	}

	good := pricing.Selection{Personalizations: []pricing.PersonalizationSelection{
		{OptionID: textID, Value: "ABC"},
		{OptionID: dateID, Value: "2026-06-15"},
		{OptionID: colorID, Value: "#1a2b3c"},
		{OptionID: selectID, Value: "serif"},
	}}
	if err := testValidator().ValidateConfiguration(context.Background(), product, good); err != nil {
		t.Fatalf("expected valid personalizations, got %v", err)
	}
}

func TestMalformedPatternIsSkipped(t *testing.T) {
	optionID := uuid.New()
	product := personalized(models.PersonalizationOption{
		ID: optionID, Name: "note", Label: "Note",
		FieldType: enums.FieldTypeText, Pattern: strPtr(`([`),
	})

	err := testValidator().ValidateConfiguration(context.Background(), product, pricing.Selection{
		Personalizations: []pricing.PersonalizationSelection{{OptionID: optionID, Value: "anything"}},
	})
	if err != nil {
		t.Fatalf("malformed pattern must not fail the submission, got %v", err)
	}
}

func TestConditionalPersonalizationVisibility(t *testing.T) {
	parentID, childID := uuid.New(), uuid.New()
	product := personalized(
		models.PersonalizationOption{
			ID: parentID, Name: "gift", Label: "Gift",
			FieldType: enums.FieldTypeSelect,
			SelectValues: types.SelectValues{
				{Value: "yes", Label: "Yes"}, {Value: "no", Label: "No"},
			},
		},
		models.PersonalizationOption{
			ID: childID, Name: "gift_message", Label: "Gift Message",
			FieldType:           enums.FieldTypeText,
			PersonalizationType: enums.PersonalizationTypeConditional,
			Required:            true,
			ParentOptionID:      &parentID,
			ParentValues:        strPtr("yes"),
		},
	)

	hidden := pricing.Selection{Personalizations: []pricing.PersonalizationSelection{
		{OptionID: parentID, Value: "no"},
	}}
	if err := testValidator().ValidateConfiguration(context.Background(), product, hidden); err != nil {
		t.Fatalf("hidden conditional must not be required, got %v", err)
	}

	revealed := pricing.Selection{Personalizations: []pricing.PersonalizationSelection{
		{OptionID: parentID, Value: "yes"},
	}}
	expectValidation(t, testValidator().ValidateConfiguration(context.Background(), product, revealed), "Gift Message")
}

func TestCustomPersonalizationCap(t *testing.T) {
	product := personalized()
	product.AllowCustomPersonalization = true

	entries := make([]pricing.PersonalizationSelection, 6)
	for i := range entries {
		entries[i] = pricing.PersonalizationSelection{OptionID: uuid.New(), Value: "x"}
	}
	err := testValidator().ValidateConfiguration(context.Background(), product, pricing.Selection{
		Personalizations: entries,
	})
	expectValidation(t, err, "at most 5")

	if err := testValidator().ValidateConfiguration(context.Background(), product, pricing.Selection{
		Personalizations: entries[:5],
	}); err != nil {
		t.Fatalf("expected five custom entries to pass, got %v", err)
	}

	product.AllowCustomPersonalization = false
	err = testValidator().ValidateConfiguration(context.Background(), product, pricing.Selection{
		Personalizations: entries[:1],
	})
	expectValidation(t, err, "does not accept")
}
