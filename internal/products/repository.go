package product

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/copperline/storefront-backend/pkg/db/models"
)

// ProductRepository defines CRUD operations for catalog products.
type ProductRepository interface {
	CreateProduct(context.Context, *models.Product) (*models.Product, error)
	UpdateProduct(context.Context, *models.Product) (*models.Product, error)
	DeleteProduct(context.Context, uuid.UUID) error
	FindByID(context.Context, uuid.UUID) (*models.Product, error)
	GetProductDetail(context.Context, uuid.UUID) (*models.Product, error)
	ListPublished(context.Context) ([]models.Product, error)
}

// AddOnRepository exposes add-on persistence.
type AddOnRepository interface {
	CreateAddOn(context.Context, *models.AddOn) (*models.AddOn, error)
	UpdateAddOn(context.Context, *models.AddOn) (*models.AddOn, error)
	DeleteAddOn(context.Context, uuid.UUID) error
	FindAddOn(context.Context, uuid.UUID) (*models.AddOn, error)
	ListAddOns(context.Context) ([]models.AddOn, error)
}

// Repository wires together all catalog persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct saves an existing product row.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product by ID; associations cascade.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductDetail fetches a product with every association the pricing
// and validation paths need.
func (r *Repository) GetProductDetail(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.detailQuery(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListPublished lists storefront-visible products with associations.
func (r *Repository) ListPublished(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.detailQuery(ctx).
		Where("published = ?", true).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

func (r *Repository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Variants").
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Components.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("ValidationRules", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("PersonalizationOptions", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("AddOns")
}

// UpsertVariant creates or saves a variant row.
func (r *Repository) UpsertVariant(ctx context.Context, variant *models.ProductVariant) (*models.ProductVariant, error) {
	if err := r.db.WithContext(ctx).Save(variant).Error; err != nil {
		return nil, err
	}
	return variant, nil
}

// DeleteVariant removes a variant by ID.
func (r *Repository) DeleteVariant(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ProductVariant{}).Error
}

// UpsertComponent saves a component with its options replaced wholesale.
func (r *Repository) UpsertComponent(ctx context.Context, component *models.ProductComponent) (*models.ProductComponent, error) {
	tx := r.db.WithContext(ctx)
	if component.ID != uuid.Nil {
		if err := tx.Where("component_id = ?", component.ID).Delete(&models.ComponentOption{}).Error; err != nil {
			return nil, err
		}
	}
	if err := tx.Save(component).Error; err != nil {
		return nil, err
	}
	return component, nil
}

// DeleteComponent removes a component by ID; its options cascade.
func (r *Repository) DeleteComponent(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ProductComponent{}).Error
}

// UpsertRule saves a validation rule row.
func (r *Repository) UpsertRule(ctx context.Context, rule *models.ComponentValidationRule) (*models.ComponentValidationRule, error) {
	if err := r.db.WithContext(ctx).Save(rule).Error; err != nil {
		return nil, err
	}
	return rule, nil
}

// DeleteRule removes a validation rule by ID.
func (r *Repository) DeleteRule(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ComponentValidationRule{}).Error
}

// UpsertPersonalization saves a personalization option row.
func (r *Repository) UpsertPersonalization(ctx context.Context, option *models.PersonalizationOption) (*models.PersonalizationOption, error) {
	if err := r.db.WithContext(ctx).Save(option).Error; err != nil {
		return nil, err
	}
	return option, nil
}

// DeletePersonalization removes a personalization option by ID.
func (r *Repository) DeletePersonalization(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.PersonalizationOption{}).Error
}

// CreateAddOn inserts a new add-on row.
func (r *Repository) CreateAddOn(ctx context.Context, addOn *models.AddOn) (*models.AddOn, error) {
	if err := r.db.WithContext(ctx).Create(addOn).Error; err != nil {
		return nil, err
	}
	return addOn, nil
}

// UpdateAddOn saves an existing add-on row.
func (r *Repository) UpdateAddOn(ctx context.Context, addOn *models.AddOn) (*models.AddOn, error) {
	if err := r.db.WithContext(ctx).Save(addOn).Error; err != nil {
		return nil, err
	}
	return addOn, nil
}

// DeleteAddOn removes an add-on by ID and its product attachments.
func (r *Repository) DeleteAddOn(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("add_on_id = ?", id).Delete(&models.ProductAddOn{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", id).Delete(&models.AddOn{}).Error
}

// FindAddOn loads an add-on by ID.
func (r *Repository) FindAddOn(ctx context.Context, id uuid.UUID) (*models.AddOn, error) {
	var addOn models.AddOn
	if err := r.db.WithContext(ctx).First(&addOn, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &addOn, nil
}

// ListAddOns lists every add-on.
func (r *Repository) ListAddOns(ctx context.Context) ([]models.AddOn, error) {
	var rows []models.AddOn
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// AttachAddOn links an add-on to a product; attaching twice is a no-op.
func (r *Repository) AttachAddOn(ctx context.Context, productID, addOnID uuid.UUID) error {
	row := &models.ProductAddOn{ProductID: productID, AddOnID: addOnID}
	err := r.db.WithContext(ctx).Create(row).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// DetachAddOn unlinks an add-on from a product.
func (r *Repository) DetachAddOn(ctx context.Context, productID, addOnID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("product_id = ? AND add_on_id = ?", productID, addOnID).
		Delete(&models.ProductAddOn{}).
		Error
}

// saveProductColumns persists the product's own columns without touching
// loaded associations.
func (r *Repository) saveProductColumns(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"slug":                           product.Slug,
			"title":                          product.Title,
			"description":                    product.Description,
			"price_cents":                    product.PriceCents,
			"sale_price_cents":               product.SalePriceCents,
			"sale_starts_at":                 product.SaleStartsAt,
			"sale_ends_at":                   product.SaleEndsAt,
			"enable_variants":                product.EnableVariants,
			"enable_component_customization": product.EnableComponentCustomization,
			"allow_custom_personalization":   product.AllowCustomPersonalization,
			"published":                      product.Published,
			"sync_suppressed":                product.SyncSuppressed,
			"component_base_price_cents":     product.ComponentBasePriceCents,
			"pricing_strategy":               product.PricingStrategy,
			"calculated_total_price_cents":   product.CalculatedTotalPriceCents,
		}).
		Error
}

// SaveSyncState persists only the processor-facing columns. It bypasses
// the service layer so a pull-side update can not re-trigger a push.
func (r *Repository) SaveSyncState(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"price_cents":       product.PriceCents,
			"sale_price_cents":  product.SalePriceCents,
			"stripe_product_id": product.StripeProductID,
			"stripe_price_id":   product.StripePriceID,
			"stripe_synced_at":  product.StripeSyncedAt,
		}).
		Error
}

// SaveVariantSyncState persists a variant's processor-facing columns.
func (r *Repository) SaveVariantSyncState(ctx context.Context, variant *models.ProductVariant) error {
	return r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("id = ?", variant.ID).
		Updates(map[string]any{
			"price_cents":      variant.PriceCents,
			"sale_price_cents": variant.SalePriceCents,
			"is_active":        variant.IsActive,
			"stripe_price_id":  variant.StripePriceID,
		}).
		Error
}

// FindByStripeProductID resolves a product from its stored remote id,
// returning nil (not an error) on a miss.
func (r *Repository) FindByStripeProductID(ctx context.Context, remoteID string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		First(&product, "stripe_product_id = ?", remoteID).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}
