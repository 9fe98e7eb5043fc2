package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/copperline/storefront-backend/api/responses"
	"github.com/copperline/storefront-backend/api/validators"
	productsvc "github.com/copperline/storefront-backend/internal/products"
	"github.com/copperline/storefront-backend/pkg/enums"
	pkgerrors "github.com/copperline/storefront-backend/pkg/errors"
	"github.com/copperline/storefront-backend/pkg/logger"
)

// CatalogCreateProduct handles product creation.
func CatalogCreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.CreateProduct(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// CatalogUpdateProduct applies a partial product update.
func CatalogUpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(ctx, productID, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// CatalogDeleteProduct removes a product and its associations.
func CatalogDeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeleteProduct(ctx, productID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// CatalogGetProduct returns one product with all associations.
func CatalogGetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.GetProduct(ctx, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// CatalogListProducts returns every published product.
func CatalogListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		products, err := svc.ListPublishedProducts(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

type createProductRequest struct {
	Slug        string `json:"slug" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`

	PriceCents     int        `json:"price_cents" validate:"min=0"`
	SalePriceCents *int       `json:"sale_price_cents,omitempty" validate:"omitempty,min=0"`
	SaleStartsAt   *time.Time `json:"sale_starts_at,omitempty"`
	SaleEndsAt     *time.Time `json:"sale_ends_at,omitempty"`

	EnableVariants               bool    `json:"enable_variants,omitempty"`
	EnableComponentCustomization bool    `json:"enable_component_customization,omitempty"`
	AllowCustomPersonalization   bool    `json:"allow_custom_personalization,omitempty"`
	Published                    bool    `json:"published,omitempty"`
	SyncSuppressed               bool    `json:"sync_suppressed,omitempty"`
	ComponentBasePriceCents      *int    `json:"component_base_price_cents,omitempty" validate:"omitempty,min=0"`
	PricingStrategy              *string `json:"pricing_strategy,omitempty"`
}

type updateProductRequest struct {
	Slug        *string `json:"slug,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`

	PriceCents     *int       `json:"price_cents,omitempty" validate:"omitempty,min=0"`
	SalePriceCents *int       `json:"sale_price_cents,omitempty" validate:"omitempty,min=0"`
	ClearSalePrice bool       `json:"clear_sale_price,omitempty"`
	SaleStartsAt   *time.Time `json:"sale_starts_at,omitempty"`
	SaleEndsAt     *time.Time `json:"sale_ends_at,omitempty"`

	EnableVariants               *bool   `json:"enable_variants,omitempty"`
	EnableComponentCustomization *bool   `json:"enable_component_customization,omitempty"`
	AllowCustomPersonalization   *bool   `json:"allow_custom_personalization,omitempty"`
	Published                    *bool   `json:"published,omitempty"`
	SyncSuppressed               *bool   `json:"sync_suppressed,omitempty"`
	ComponentBasePriceCents      *int    `json:"component_base_price_cents,omitempty" validate:"omitempty,min=0"`
	PricingStrategy              *string `json:"pricing_strategy,omitempty"`
}

func (r createProductRequest) toCreateInput() (productsvc.CreateProductInput, error) {
	strategy, err := parsePricingStrategy(r.PricingStrategy)
	if err != nil {
		return productsvc.CreateProductInput{}, err
	}

	return productsvc.CreateProductInput{
		Slug:        strings.TrimSpace(r.Slug),
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,

		PriceCents:     r.PriceCents,
		SalePriceCents: r.SalePriceCents,
		SaleStartsAt:   r.SaleStartsAt,
		SaleEndsAt:     r.SaleEndsAt,

		EnableVariants:               r.EnableVariants,
		EnableComponentCustomization: r.EnableComponentCustomization,
		AllowCustomPersonalization:   r.AllowCustomPersonalization,
		Published:                    r.Published,
		SyncSuppressed:               r.SyncSuppressed,
		ComponentBasePriceCents:      r.ComponentBasePriceCents,
		PricingStrategy:              strategy,
	}, nil
}

func (r updateProductRequest) toUpdateInput() (productsvc.UpdateProductInput, error) {
	strategy, err := parsePricingStrategy(r.PricingStrategy)
	if err != nil {
		return productsvc.UpdateProductInput{}, err
	}

	return productsvc.UpdateProductInput{
		Slug:        r.Slug,
		Title:       r.Title,
		Description: r.Description,

		PriceCents:     r.PriceCents,
		SalePriceCents: r.SalePriceCents,
		ClearSalePrice: r.ClearSalePrice,
		SaleStartsAt:   r.SaleStartsAt,
		SaleEndsAt:     r.SaleEndsAt,

		EnableVariants:               r.EnableVariants,
		EnableComponentCustomization: r.EnableComponentCustomization,
		AllowCustomPersonalization:   r.AllowCustomPersonalization,
		Published:                    r.Published,
		SyncSuppressed:               r.SyncSuppressed,
		ComponentBasePriceCents:      r.ComponentBasePriceCents,
		PricingStrategy:              strategy,
	}, nil
}

func parsePricingStrategy(raw *string) (*enums.PricingStrategy, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	parsed, err := enums.ParsePricingStrategy(strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid pricing strategy")
	}
	return &parsed, nil
}

func parseUUIDList(values []string, what string) ([]uuid.UUID, error) {
	result := make([]uuid.UUID, 0, len(values))
	for _, raw := range values {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		parsed, err := uuid.Parse(trimmed)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+what)
		}
		result = append(result, parsed)
	}
	return result, nil
}

func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return uuid.Nil, pkgerrors.Newf(pkgerrors.CodeValidation, "%s is required", name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}
