package controllers

import (
	"net/http"
	"strings"

	"github.com/copperline/storefront-backend/api/responses"
	"github.com/copperline/storefront-backend/api/validators"
	productsvc "github.com/copperline/storefront-backend/internal/products"
	"github.com/copperline/storefront-backend/pkg/enums"
	pkgerrors "github.com/copperline/storefront-backend/pkg/errors"
	"github.com/copperline/storefront-backend/pkg/logger"
)

// AddOnCreate registers a new purchasable add-on.
func AddOnCreate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload addOnRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		addOn, err := svc.CreateAddOn(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, addOn)
	}
}

// AddOnUpdate replaces an add-on definition.
func AddOnUpdate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		addOnID, err := parseIDParam(r, "addOnId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload addOnRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		addOn, err := svc.UpdateAddOn(ctx, addOnID, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, addOn)
	}
}

// AddOnDelete removes an add-on and its product attachments.
func AddOnDelete(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		addOnID, err := parseIDParam(r, "addOnId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeleteAddOn(ctx, addOnID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AddOnList returns every registered add-on.
func AddOnList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		addOns, err := svc.ListAddOns(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, addOns)
	}
}

// CatalogAttachAddOn links an add-on to a product.
func CatalogAttachAddOn(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
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
		addOnID, err := parseIDParam(r, "addOnId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.AttachAddOn(ctx, productID, addOnID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// CatalogDetachAddOn unlinks an add-on from a product.
func CatalogDetachAddOn(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
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
		addOnID, err := parseIDParam(r, "addOnId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.DetachAddOn(ctx, productID, addOnID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

type addOnRequest struct {
	Title                string   `json:"title" validate:"required"`
	Category             string   `json:"category" validate:"required"`
	PriceCents           int      `json:"price_cents" validate:"min=0"`
	Stock                int      `json:"stock" validate:"min=0"`
	IsActive             bool     `json:"is_active"`
	CompatibleProductIDs []string `json:"compatible_product_ids,omitempty" validate:"omitempty,dive,uuid"`
}

func (r addOnRequest) toInput() (productsvc.AddOnInput, error) {
	category, err := enums.ParseAddOnCategory(strings.TrimSpace(r.Category))
	if err != nil {
		return productsvc.AddOnInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid add-on category")
	}

	compatible, err := parseUUIDList(r.CompatibleProductIDs, "product id")
	if err != nil {
		return productsvc.AddOnInput{}, err
	}

	return productsvc.AddOnInput{
		Title:                strings.TrimSpace(r.Title),
		Category:             category,
		PriceCents:           r.PriceCents,
		Stock:                r.Stock,
		IsActive:             r.IsActive,
		CompatibleProductIDs: compatible,
	}, nil
}
