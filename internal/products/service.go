package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/copperline/storefront-backend/internal/configuration"
	"github.com/copperline/storefront-backend/internal/pricing"
	"github.com/copperline/storefront-backend/pkg/db"
	"github.com/copperline/storefront-backend/pkg/db/models"
	dbtypes "github.com/copperline/storefront-backend/pkg/db/types"
	"github.com/copperline/storefront-backend/pkg/enums"
	pkgerrors "github.com/copperline/storefront-backend/pkg/errors"
	"github.com/copperline/storefront-backend/pkg/types"
)

// Service exposes catalog management operations. Every write revalidates
// the product, recomputes its stored total, and pushes the result to the
// payment processor best-effort.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListPublishedProducts(ctx context.Context) ([]ProductDTO, error)

	UpsertVariant(ctx context.Context, productID uuid.UUID, input VariantInput) (*ProductDTO, error)
	DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) (*ProductDTO, error)
	UpsertComponent(ctx context.Context, productID uuid.UUID, input ComponentInput) (*ProductDTO, error)
	DeleteComponent(ctx context.Context, productID, componentID uuid.UUID) (*ProductDTO, error)
	UpsertRule(ctx context.Context, productID uuid.UUID, input RuleInput) (*ProductDTO, error)
	DeleteRule(ctx context.Context, productID, ruleID uuid.UUID) (*ProductDTO, error)
	UpsertPersonalization(ctx context.Context, productID uuid.UUID, input PersonalizationInput) (*ProductDTO, error)
	DeletePersonalization(ctx context.Context, productID, optionID uuid.UUID) (*ProductDTO, error)
	AttachAddOn(ctx context.Context, productID, addOnID uuid.UUID) (*ProductDTO, error)
	DetachAddOn(ctx context.Context, productID, addOnID uuid.UUID) (*ProductDTO, error)

	CreateAddOn(ctx context.Context, input AddOnInput) (*AddOnDTO, error)
	UpdateAddOn(ctx context.Context, addOnID uuid.UUID, input AddOnInput) (*AddOnDTO, error)
	DeleteAddOn(ctx context.Context, addOnID uuid.UUID) error
	ListAddOns(ctx context.Context) ([]AddOnDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Slug        string
	Title       string
	Description string

	PriceCents     int
	SalePriceCents *int
	SaleStartsAt   *time.Time
	SaleEndsAt     *time.Time

	EnableVariants               bool
	EnableComponentCustomization bool
	AllowCustomPersonalization   bool
	Published                    bool
	SyncSuppressed               bool
	ComponentBasePriceCents      *int
	PricingStrategy              *enums.PricingStrategy
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Slug        *string
	Title       *string
	Description *string

	PriceCents     *int
	SalePriceCents *int
	ClearSalePrice bool
	SaleStartsAt   *time.Time
	SaleEndsAt     *time.Time

	EnableVariants               *bool
	EnableComponentCustomization *bool
	AllowCustomPersonalization   *bool
	Published                    *bool
	SyncSuppressed               *bool
	ComponentBasePriceCents      *int
	PricingStrategy              *enums.PricingStrategy
}

// VariantInput captures one option combination and its pricing.
type VariantInput struct {
	ID             *uuid.UUID
	Options        types.VariantOptions
	PriceCents     int
	SalePriceCents *int
	Stock          int
	IsActive       bool
}

// ComponentInput captures a component and its full option list.
type ComponentInput struct {
	ID            *uuid.UUID
	Title         string
	Slug          string
	Required      bool
	AllowMultiple bool
	DisplayOrder  int
	Options       []ComponentOptionInput
}

// ComponentOptionInput captures one option of a component.
type ComponentOptionInput struct {
	Title              string
	Slug               string
	PriceModifierCents int
	Stock              int
	DisplayOrder       int
	IncompatibleWith   []string
	RequiredWith       []string
}

// RuleInput captures a component validation rule.
type RuleInput struct {
	ID           *uuid.UUID
	Name         string
	Kind         enums.RuleKind
	ComponentIDs []uuid.UUID
	Condition    *string
	ErrorMessage *string
	DisplayOrder int
}

// PersonalizationInput captures a personalization option definition.
type PersonalizationInput struct {
	ID                   *uuid.UUID
	Name                 string
	Label                string
	FieldType            enums.FieldType
	PersonalizationType  enums.PersonalizationType
	Required             bool
	CharacterLimit       *int
	MinLength            *int
	MaxLength            *int
	Pattern              *string
	AdditionalPriceCents int
	SelectValues         types.SelectValues
	StyleFields          types.StyleFields
	ParentOptionID       *uuid.UUID
	ParentValues         *string
	DisplayOrder         int
}

// AddOnInput captures a purchasable add-on.
type AddOnInput struct {
	Title                string
	Category             enums.AddOnCategory
	PriceCents           int
	Stock                int
	IsActive             bool
	CompatibleProductIDs []uuid.UUID
}

// synchronizer is the push side of the processor sync; it swallows its
// own failures.
type synchronizer interface {
	SyncProduct(ctx context.Context, product *models.Product)
}

// service implements the catalog service.
type service struct {
	repo     *Repository
	dbClient *db.Client
	engine   *pricing.Engine
	syncer   synchronizer
	currency enums.Currency
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client, engine *pricing.Engine, syncer synchronizer, currency enums.Currency) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if engine == nil {
		return nil, fmt.Errorf("pricing engine required")
	}
	if !currency.IsValid() {
		return nil, fmt.Errorf("invalid currency %q", currency)
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		engine:   engine,
		syncer:   syncer,
		currency: currency,
	}, nil
}

// CreateProduct validates and inserts a product, then pushes it out.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	product := &models.Product{
		Slug:        strings.TrimSpace(input.Slug),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,

		PriceCents:     input.PriceCents,
		SalePriceCents: input.SalePriceCents,
		SaleStartsAt:   input.SaleStartsAt,
		SaleEndsAt:     input.SaleEndsAt,

		EnableVariants:               input.EnableVariants,
		EnableComponentCustomization: input.EnableComponentCustomization,
		AllowCustomPersonalization:   input.AllowCustomPersonalization,
		Published:                    input.Published,
		SyncSuppressed:               input.SyncSuppressed,
		ComponentBasePriceCents:      input.ComponentBasePriceCents,
		PricingStrategy:              input.PricingStrategy,
	}
	if product.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if product.Slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}

	// A freshly created product carries no variants or components yet, so
	// only the invariants over its own columns can fire here.
	if err := s.beforeChange(product); err != nil {
		return nil, err
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).CreateProduct(ctx, product)
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, fmt.Sprintf("slug %q already in use", product.Slug))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return s.reloadAndSync(ctx, product.ID)
}

// UpdateProduct applies a partial update, revalidates, and pushes.
func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	var detail *models.Product
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		loaded, err := txRepo.GetProductDetail(ctx, productID)
		if err != nil {
			return notFoundOrDependency(err, "product")
		}
		applyUpdateToProduct(loaded, input)
		if err := s.beforeChange(loaded); err != nil {
			return err
		}
		if err := txRepo.saveProductColumns(ctx, loaded); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}
		detail = loaded
		return nil
	}); err != nil {
		return nil, err
	}

	s.afterChange(ctx, detail)
	return NewProductDTO(detail), nil
}

// DeleteProduct removes the product; the remote product is left in place
// but deactivates on the processor side at the next webhook miss.
func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		return notFoundOrDependency(err, "product")
	}
	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	return nil
}

// GetProduct loads the full product payload.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	detail, err := s.repo.GetProductDetail(ctx, productID)
	if err != nil {
		return nil, notFoundOrDependency(err, "product")
	}
	return NewProductDTO(detail), nil
}

// ListPublishedProducts lists storefront-visible products.
func (s *service) ListPublishedProducts(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewProductDTO(&rows[i]))
	}
	return out, nil
}

// UpsertVariant creates or updates one variant of the product.
func (s *service) UpsertVariant(ctx context.Context, productID uuid.UUID, input VariantInput) (*ProductDTO, error) {
	variant := &models.ProductVariant{
		ProductID:      productID,
		Options:        input.Options,
		PriceCents:     input.PriceCents,
		SalePriceCents: input.SalePriceCents,
		Stock:          input.Stock,
		IsActive:       input.IsActive,
	}
	if input.ID != nil {
		variant.ID = *input.ID
	}
	if variant.Key() == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant needs at least one option value")
	}
	return s.mutateProduct(ctx, productID, func(txRepo *Repository) error {
		if _, err := txRepo.UpsertVariant(ctx, variant); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: upsert variant")
		}
		return nil
	})
}

// DeleteVariant removes one variant of the product.
func (s *service) DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) (*ProductDTO, error) {
	return s.mutateProduct(ctx, productID, func(txRepo *Repository) error {
		if err := txRepo.DeleteVariant(ctx, variantID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete variant")
		}
		return nil
	})
}

// UpsertComponent creates or replaces one component with its options.
func (s *service) UpsertComponent(ctx context.Context, productID uuid.UUID, input ComponentInput) (*ProductDTO, error) {
	component := &models.ProductComponent{
		ProductID:     productID,
		Title:         strings.TrimSpace(input.Title),
		Slug:          strings.TrimSpace(input.Slug),
		Required:      input.Required,
		AllowMultiple: input.AllowMultiple,
		DisplayOrder:  input.DisplayOrder,
	}
	if input.ID != nil {
		component.ID = *input.ID
	}
	if component.Slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "component slug is required")
	}
	for _, option := range input.Options {
		component.Options = append(component.Options, models.ComponentOption{
			Title:              strings.TrimSpace(option.Title),
			Slug:               strings.TrimSpace(option.Slug),
			PriceModifierCents: option.PriceModifierCents,
			Stock:              option.Stock,
			DisplayOrder:       option.DisplayOrder,
			IncompatibleWith:   pq.StringArray(option.IncompatibleWith),
			RequiredWith:       pq.StringArray(option.RequiredWith),
		})
	}
	return s.mutateProduct(ctx, productID, func(txRepo *Repository) error {
		if _, err := txRepo.UpsertComponent(ctx, component); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: upsert component")
		}
		return nil
	})
}

// DeleteComponent removes one component of the product.
func (s *service) DeleteComponent(ctx context.Context, productID, componentID uuid.UUID) (*ProductDTO, error) {
	return s.mutateProduct(ctx, productID, func(txRepo *Repository) error {
		if err := txRepo.DeleteComponent(ctx, componentID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete component")
		}
		return nil
	})
}

// UpsertRule creates or updates one validation rule.
func (s *service) UpsertRule(ctx context.Context, productID uuid.UUID, input RuleInput) (*ProductDTO, error) {
	if !input.Kind.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "unknown rule kind %q", input.Kind)
	}
	if input.Kind == enums.RuleKindConditional {
		if input.Condition == nil || !strings.Contains(*input.Condition, ":") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				"conditional rules need a componentSlug:optionSlug condition")
		}
	}
	rule := &models.ComponentValidationRule{
		ProductID:    productID,
		Name:         strings.TrimSpace(input.Name),
		Kind:         input.Kind,
		ComponentIDs: dbtypes.UUIDArray(input.ComponentIDs),
		Condition:    input.Condition,
		ErrorMessage: input.ErrorMessage,
		DisplayOrder: input.DisplayOrder,
	}
	if input.ID != nil {
		rule.ID = *input.ID
	}
	return s.mutateProduct(ctx, productID, func(txRepo *Repository) error {
		if _, err := txRepo.UpsertRule(ctx, rule); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: upsert rule")
		}
		return nil
	})
}

// DeleteRule removes one validation rule.
func (s *service) DeleteRule(ctx context.Context, productID, ruleID uuid.UUID) (*ProductDTO, error) {
	return s.mutateProduct(ctx, productID, func(txRepo *Repository) error {
		if err := txRepo.DeleteRule(ctx, ruleID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete rule")
		}
		return nil
	})
}

// UpsertPersonalization creates or updates one personalization option.
func (s *service) UpsertPersonalization(ctx context.Context, productID uuid.UUID, input PersonalizationInput) (*ProductDTO, error) {
	if !input.FieldType.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "unknown field type %q", input.FieldType)
	}
	if input.FieldType == enums.FieldTypeSelect && len(input.SelectValues) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "select fields need at least one value")
	}
	option := &models.PersonalizationOption{
		ProductID:            productID,
		Name:                 strings.TrimSpace(input.Name),
		Label:                strings.TrimSpace(input.Label),
		FieldType:            input.FieldType,
		PersonalizationType:  input.PersonalizationType,
		Required:             input.Required,
		CharacterLimit:       input.CharacterLimit,
		MinLength:            input.MinLength,
		MaxLength:            input.MaxLength,
		Pattern:              input.Pattern,
		AdditionalPriceCents: input.AdditionalPriceCents,
		SelectValues:         input.SelectValues,
		StyleFields:          input.StyleFields,
		ParentOptionID:       input.ParentOptionID,
		ParentValues:         input.ParentValues,
		DisplayOrder:         input.DisplayOrder,
	}
	if option.PersonalizationType == "" {
		option.PersonalizationType = enums.PersonalizationTypeSimple
	}
	if input.ID != nil {
		option.ID = *input.ID
	}
	return s.mutateProduct(ctx, productID, func(txRepo *Repository) error {
		if _, err := txRepo.UpsertPersonalization(ctx, option); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: upsert personalization")
		}
		return nil
	})
}

// DeletePersonalization removes one personalization option.
func (s *service) DeletePersonalization(ctx context.Context, productID, optionID uuid.UUID) (*ProductDTO, error) {
	return s.mutateProduct(ctx, productID, func(txRepo *Repository) error {
		if err := txRepo.DeletePersonalization(ctx, optionID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete personalization")
		}
		return nil
	})
}

// AttachAddOn links an add-on to the product.
func (s *service) AttachAddOn(ctx context.Context, productID, addOnID uuid.UUID) (*ProductDTO, error) {
	if _, err := s.repo.FindAddOn(ctx, addOnID); err != nil {
		return nil, notFoundOrDependency(err, "add-on")
	}
	return s.mutateProduct(ctx, productID, func(txRepo *Repository) error {
		if err := txRepo.AttachAddOn(ctx, productID, addOnID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: attach add-on")
		}
		return nil
	})
}

// DetachAddOn unlinks an add-on from the product.
func (s *service) DetachAddOn(ctx context.Context, productID, addOnID uuid.UUID) (*ProductDTO, error) {
	return s.mutateProduct(ctx, productID, func(txRepo *Repository) error {
		if err := txRepo.DetachAddOn(ctx, productID, addOnID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: detach add-on")
		}
		return nil
	})
}

// CreateAddOn inserts a standalone add-on.
func (s *service) CreateAddOn(ctx context.Context, input AddOnInput) (*AddOnDTO, error) {
	addOn, err := buildAddOn(input)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.CreateAddOn(ctx, addOn); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert add-on")
	}
	dto := NewAddOnDTO(addOn)
	return &dto, nil
}

// UpdateAddOn replaces an add-on's fields.
func (s *service) UpdateAddOn(ctx context.Context, addOnID uuid.UUID, input AddOnInput) (*AddOnDTO, error) {
	existing, err := s.repo.FindAddOn(ctx, addOnID)
	if err != nil {
		return nil, notFoundOrDependency(err, "add-on")
	}
	updated, err := buildAddOn(input)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if _, err := s.repo.UpdateAddOn(ctx, updated); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update add-on")
	}
	dto := NewAddOnDTO(updated)
	return &dto, nil
}

// DeleteAddOn removes an add-on and its product attachments.
func (s *service) DeleteAddOn(ctx context.Context, addOnID uuid.UUID) error {
	if _, err := s.repo.FindAddOn(ctx, addOnID); err != nil {
		return notFoundOrDependency(err, "add-on")
	}
	if err := s.repo.DeleteAddOn(ctx, addOnID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete add-on")
	}
	return nil
}

// ListAddOns lists every add-on.
func (s *service) ListAddOns(ctx context.Context) ([]AddOnDTO, error) {
	rows, err := s.repo.ListAddOns(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list add-ons")
	}
	out := make([]AddOnDTO, 0, len(rows))
	for i := range rows {
		out = append(out, NewAddOnDTO(&rows[i]))
	}
	return out, nil
}

// mutateProduct runs a child-row mutation, then revalidates and reprices
// the whole product inside the same transaction. The processor push runs
// after commit so a remote failure can never roll the write back.
func (s *service) mutateProduct(ctx context.Context, productID uuid.UUID, mutate func(txRepo *Repository) error) (*ProductDTO, error) {
	var detail *models.Product
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.FindByID(ctx, productID); err != nil {
			return notFoundOrDependency(err, "product")
		}
		if err := mutate(txRepo); err != nil {
			return err
		}
		loaded, err := txRepo.GetProductDetail(ctx, productID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload product")
		}
		if err := s.beforeChange(loaded); err != nil {
			return err
		}
		if err := txRepo.saveProductColumns(ctx, loaded); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}
		detail = loaded
		return nil
	}); err != nil {
		return nil, err
	}

	s.afterChange(ctx, detail)
	return NewProductDTO(detail), nil
}

func (s *service) reloadAndSync(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	detail, err := s.repo.GetProductDetail(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload product")
	}
	s.afterChange(ctx, detail)
	return NewProductDTO(detail), nil
}

// beforeChange enforces the write-time invariants and refreshes the
// stored headline total.
func (s *service) beforeChange(product *models.Product) error {
	if err := configuration.ValidateCatalogEntry(product); err != nil {
		return err
	}
	if err := configuration.ValidateSalePricing(product, s.currency); err != nil {
		return err
	}
	product.CalculatedTotalPriceCents = s.engine.Calculate(product, pricing.Selection{})
	return nil
}

func (s *service) afterChange(ctx context.Context, product *models.Product) {
	if s.syncer == nil || product == nil {
		return
	}
	s.syncer.SyncProduct(ctx, product)
}

func buildAddOn(input AddOnInput) (*models.AddOn, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "unknown add-on category %q", input.Category)
	}
	if input.PriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_cents cannot be negative")
	}
	return &models.AddOn{
		Title:                title,
		Category:             input.Category,
		PriceCents:           input.PriceCents,
		Stock:                input.Stock,
		IsActive:             input.IsActive,
		CompatibleProductIDs: dbtypes.UUIDArray(input.CompatibleProductIDs),
	}, nil
}

// applyUpdateToProduct copies set fields onto the loaded model.
func applyUpdateToProduct(product *models.Product, input UpdateProductInput) {
	if input.Slug != nil {
		product.Slug = strings.TrimSpace(*input.Slug)
	}
	if input.Title != nil {
		product.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.PriceCents != nil {
		product.PriceCents = *input.PriceCents
	}
	if input.ClearSalePrice {
		product.SalePriceCents = nil
		product.SaleStartsAt = nil
		product.SaleEndsAt = nil
	} else if input.SalePriceCents != nil {
		product.SalePriceCents = input.SalePriceCents
	}
	if input.SaleStartsAt != nil {
		product.SaleStartsAt = input.SaleStartsAt
	}
	if input.SaleEndsAt != nil {
		product.SaleEndsAt = input.SaleEndsAt
	}
	if input.EnableVariants != nil {
		product.EnableVariants = *input.EnableVariants
	}
	if input.EnableComponentCustomization != nil {
		product.EnableComponentCustomization = *input.EnableComponentCustomization
	}
	if input.AllowCustomPersonalization != nil {
		product.AllowCustomPersonalization = *input.AllowCustomPersonalization
	}
	if input.Published != nil {
		product.Published = *input.Published
	}
	if input.SyncSuppressed != nil {
		product.SyncSuppressed = *input.SyncSuppressed
	}
	if input.ComponentBasePriceCents != nil {
		product.ComponentBasePriceCents = input.ComponentBasePriceCents
	}
	if input.PricingStrategy != nil {
		product.PricingStrategy = input.PricingStrategy
	}
}

func notFoundOrDependency(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "%s not found", entity)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load "+entity)
}
