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

// CatalogUpsertComponent creates or replaces a component and its options.
func CatalogUpsertComponent(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload componentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.UpsertComponent(ctx, productID, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// CatalogDeleteComponent removes a component and its options.
func CatalogDeleteComponent(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
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
		componentID, err := parseIDParam(r, "componentId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.DeleteComponent(ctx, productID, componentID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// CatalogUpsertRule creates or replaces a component validation rule.
func CatalogUpsertRule(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload ruleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.UpsertRule(ctx, productID, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// CatalogDeleteRule removes a component validation rule.
func CatalogDeleteRule(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
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
		ruleID, err := parseIDParam(r, "ruleId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.DeleteRule(ctx, productID, ruleID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

type componentRequest struct {
	ID            *string                  `json:"id,omitempty" validate:"omitempty,uuid"`
	Title         string                   `json:"title" validate:"required"`
	Slug          string                   `json:"slug" validate:"required"`
	Required      bool                     `json:"required"`
	AllowMultiple bool                     `json:"allow_multiple"`
	DisplayOrder  int                      `json:"display_order"`
	Options       []componentOptionRequest `json:"options" validate:"required,min=1,dive"`
}

type componentOptionRequest struct {
	Title              string   `json:"title" validate:"required"`
	Slug               string   `json:"slug" validate:"required"`
	PriceModifierCents int      `json:"price_modifier_cents"`
	Stock              int      `json:"stock" validate:"min=0"`
	DisplayOrder       int      `json:"display_order"`
	IncompatibleWith   []string `json:"incompatible_with,omitempty"`
	RequiredWith       []string `json:"required_with,omitempty"`
}

type ruleRequest struct {
	ID           *string  `json:"id,omitempty" validate:"omitempty,uuid"`
	Name         string   `json:"name" validate:"required"`
	Kind         string   `json:"kind" validate:"required"`
	ComponentIDs []string `json:"component_ids" validate:"required,min=1,dive,uuid"`
	Condition    *string  `json:"condition,omitempty"`
	ErrorMessage *string  `json:"error_message,omitempty"`
	DisplayOrder int      `json:"display_order"`
}

func (r componentRequest) toInput() (productsvc.ComponentInput, error) {
	id, err := parseOptionalUUID(r.ID, "component id")
	if err != nil {
		return productsvc.ComponentInput{}, err
	}

	options := make([]productsvc.ComponentOptionInput, 0, len(r.Options))
	for _, opt := range r.Options {
		options = append(options, productsvc.ComponentOptionInput{
			Title:              strings.TrimSpace(opt.Title),
			Slug:               strings.TrimSpace(opt.Slug),
			PriceModifierCents: opt.PriceModifierCents,
			Stock:              opt.Stock,
			DisplayOrder:       opt.DisplayOrder,
			IncompatibleWith:   opt.IncompatibleWith,
			RequiredWith:       opt.RequiredWith,
		})
	}

	return productsvc.ComponentInput{
		ID:            id,
		Title:         strings.TrimSpace(r.Title),
		Slug:          strings.TrimSpace(r.Slug),
		Required:      r.Required,
		AllowMultiple: r.AllowMultiple,
		DisplayOrder:  r.DisplayOrder,
		Options:       options,
	}, nil
}

func (r ruleRequest) toInput() (productsvc.RuleInput, error) {
	id, err := parseOptionalUUID(r.ID, "rule id")
	if err != nil {
		return productsvc.RuleInput{}, err
	}

	kind, err := enums.ParseRuleKind(strings.TrimSpace(r.Kind))
	if err != nil {
		return productsvc.RuleInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid rule kind")
	}

	componentIDs, err := parseUUIDList(r.ComponentIDs, "component id")
	if err != nil {
		return productsvc.RuleInput{}, err
	}

	return productsvc.RuleInput{
		ID:           id,
		Name:         strings.TrimSpace(r.Name),
		Kind:         kind,
		ComponentIDs: componentIDs,
		Condition:    r.Condition,
		ErrorMessage: r.ErrorMessage,
		DisplayOrder: r.DisplayOrder,
	}, nil
}
