package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/copperline/storefront-backend/api/responses"
	"github.com/copperline/storefront-backend/api/validators"
	productsvc "github.com/copperline/storefront-backend/internal/products"
	pkgerrors "github.com/copperline/storefront-backend/pkg/errors"
	"github.com/copperline/storefront-backend/pkg/logger"
	"github.com/copperline/storefront-backend/pkg/types"
)

// CatalogUpsertVariant creates or replaces one variant of a product.
func CatalogUpsertVariant(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload variantRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.UpsertVariant(ctx, productID, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// CatalogDeleteVariant removes one variant of a product.
func CatalogDeleteVariant(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
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
		variantID, err := parseIDParam(r, "variantId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.DeleteVariant(ctx, productID, variantID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

type variantRequest struct {
	ID             *string              `json:"id,omitempty" validate:"omitempty,uuid"`
	Options        []variantOptionEntry `json:"options" validate:"required,min=1,dive"`
	PriceCents     int                  `json:"price_cents" validate:"min=0"`
	SalePriceCents *int                 `json:"sale_price_cents,omitempty" validate:"omitempty,min=0"`
	Stock          int                  `json:"stock" validate:"min=0"`
	IsActive       bool                 `json:"is_active"`
}

type variantOptionEntry struct {
	OptionSlug string `json:"option_slug" validate:"required"`
	Value      string `json:"value" validate:"required"`
}

func (r variantRequest) toInput() (productsvc.VariantInput, error) {
	id, err := parseOptionalUUID(r.ID, "variant id")
	if err != nil {
		return productsvc.VariantInput{}, err
	}

	options := make(types.VariantOptions, 0, len(r.Options))
	for _, opt := range r.Options {
		options = append(options, types.VariantOption{
			OptionSlug: strings.TrimSpace(opt.OptionSlug),
			Value:      strings.TrimSpace(opt.Value),
		})
	}

	return productsvc.VariantInput{
		ID:             id,
		Options:        options,
		PriceCents:     r.PriceCents,
		SalePriceCents: r.SalePriceCents,
		Stock:          r.Stock,
		IsActive:       r.IsActive,
	}, nil
}

func parseOptionalUUID(raw *string, what string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+what)
	}
	return &id, nil
}
