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
	"github.com/copperline/storefront-backend/pkg/types"
)

// CatalogUpsertPersonalization creates or replaces a personalization option.
func CatalogUpsertPersonalization(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload personalizationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.UpsertPersonalization(ctx, productID, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// CatalogDeletePersonalization removes a personalization option.
func CatalogDeletePersonalization(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
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
		optionID, err := parseIDParam(r, "personalizationId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.DeletePersonalization(ctx, productID, optionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

type personalizationRequest struct {
	ID                   *string              `json:"id,omitempty" validate:"omitempty,uuid"`
	Name                 string               `json:"name" validate:"required"`
	Label                string               `json:"label" validate:"required"`
	FieldType            string               `json:"field_type" validate:"required"`
	PersonalizationType  *string              `json:"personalization_type,omitempty"`
	Required             bool                 `json:"required"`
	CharacterLimit       *int                 `json:"character_limit,omitempty" validate:"omitempty,min=1"`
	MinLength            *int                 `json:"min_length,omitempty" validate:"omitempty,min=0"`
	MaxLength            *int                 `json:"max_length,omitempty" validate:"omitempty,min=1"`
	Pattern              *string              `json:"pattern,omitempty"`
	AdditionalPriceCents int                  `json:"additional_price_cents" validate:"min=0"`
	SelectValues         []types.SelectValue  `json:"select_values,omitempty"`
	StyleFields          []types.StyleField   `json:"style_fields,omitempty"`
	ParentOptionID       *string              `json:"parent_option_id,omitempty" validate:"omitempty,uuid"`
	ParentValues         *string              `json:"parent_values,omitempty"`
	DisplayOrder         int                  `json:"display_order"`
}

func (r personalizationRequest) toInput() (productsvc.PersonalizationInput, error) {
	id, err := parseOptionalUUID(r.ID, "personalization id")
	if err != nil {
		return productsvc.PersonalizationInput{}, err
	}

	fieldType, err := enums.ParseFieldType(strings.TrimSpace(r.FieldType))
	if err != nil {
		return productsvc.PersonalizationInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid field type")
	}

	var persType enums.PersonalizationType
	if r.PersonalizationType != nil && strings.TrimSpace(*r.PersonalizationType) != "" {
		persType, err = enums.ParsePersonalizationType(strings.TrimSpace(*r.PersonalizationType))
		if err != nil {
			return productsvc.PersonalizationInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid personalization type")
		}
	}

	parentID, err := parseOptionalUUID(r.ParentOptionID, "parent option id")
	if err != nil {
		return productsvc.PersonalizationInput{}, err
	}

	return productsvc.PersonalizationInput{
		ID:                   id,
		Name:                 strings.TrimSpace(r.Name),
		Label:                strings.TrimSpace(r.Label),
		FieldType:            fieldType,
		PersonalizationType:  persType,
		Required:             r.Required,
		CharacterLimit:       r.CharacterLimit,
		MinLength:            r.MinLength,
		MaxLength:            r.MaxLength,
		Pattern:              r.Pattern,
		AdditionalPriceCents: r.AdditionalPriceCents,
		SelectValues:         types.SelectValues(r.SelectValues),
		StyleFields:          types.StyleFields(r.StyleFields),
		ParentOptionID:       parentID,
		ParentValues:         r.ParentValues,
		DisplayOrder:         r.DisplayOrder,
	}, nil
}
