package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/copperline/storefront-backend/api/responses"
	"github.com/copperline/storefront-backend/api/validators"
	"github.com/copperline/storefront-backend/internal/configuration"
	"github.com/copperline/storefront-backend/internal/pricing"
	"github.com/copperline/storefront-backend/pkg/db/models"
	"github.com/copperline/storefront-backend/pkg/enums"
	pkgerrors "github.com/copperline/storefront-backend/pkg/errors"
	"github.com/copperline/storefront-backend/pkg/logger"
)

// ProductDetailFinder loads a product with every pricing association.
type ProductDetailFinder interface {
	GetProductDetail(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type quoteRequest struct {
	ProductID                string                        `json:"product_id" validate:"required,uuid"`
	Quantity                 *int                          `json:"quantity,omitempty" validate:"omitempty,min=1"`
	VariantID                *string                       `json:"variant_id,omitempty" validate:"omitempty,uuid"`
	SelectedComponents       []quoteComponentRequest       `json:"selected_components,omitempty" validate:"omitempty,dive"`
	SelectedAddOns           []quoteAddOnRequest           `json:"selected_add_ons,omitempty" validate:"omitempty,dive"`
	SelectedPersonalizations []quotePersonalizationRequest `json:"selected_personalizations,omitempty" validate:"omitempty,dive"`
}

type quoteComponentRequest struct {
	ComponentID string `json:"component_id" validate:"required,uuid"`
	OptionSlug  string `json:"option_slug" validate:"required"`
}

type quoteAddOnRequest struct {
	AddOnID  string `json:"add_on_id" validate:"required,uuid"`
	Quantity int    `json:"quantity,omitempty" validate:"omitempty,min=1"`
}

type quotePersonalizationRequest struct {
	PersonalizationID string            `json:"personalization_id" validate:"required,uuid"`
	Value             string            `json:"value"`
	SubValues         map[string]string `json:"sub_values,omitempty"`
}

type quoteResponse struct {
	Currency                  enums.Currency `json:"currency"`
	BasePriceCents            int            `json:"base_price_cents"`
	ComponentModifiersCents   int            `json:"component_modifiers_cents"`
	AddOnsTotalCents          int            `json:"add_ons_total_cents"`
	PersonalizationTotalCents int            `json:"personalization_total_cents"`
	Quantity                  int            `json:"quantity"`
	UnitPriceCents            int            `json:"unit_price_cents"`
	TotalPriceCents           int            `json:"total_price_cents"`
	Breakdown                 quoteBreakdown `json:"breakdown"`
}

type quoteBreakdown struct {
	Components       []pricing.QuoteComponent       `json:"components"`
	AddOns           []pricing.QuoteAddOn           `json:"add_ons"`
	Personalizations []pricing.QuotePersonalization `json:"personalizations"`
}

// CalculateProductPrice validates a submitted configuration and prices it.
func CalculateProductPrice(
	finder ProductDetailFinder,
	validator *configuration.Validator,
	engine *pricing.Engine,
	currency enums.Currency,
	logg *logger.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if finder == nil || validator == nil || engine == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		var payload quoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		productID, err := uuid.Parse(strings.TrimSpace(payload.ProductID))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		input, err := payload.toQuoteInput()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := finder.GetProductDetail(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
				return
			}
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product"))
			return
		}
		if product == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		if logg != nil {
			ctx = logg.WithProductID(ctx, product.ID.String())
		}

		if err := validator.ValidateConfiguration(ctx, product, input.Selection()); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		quote, err := engine.Quote(product, currency, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, newQuoteResponse(quote))
	}
}

func (q quoteRequest) toQuoteInput() (pricing.QuoteInput, error) {
	input := pricing.QuoteInput{Quantity: 1}
	if q.Quantity != nil {
		input.Quantity = *q.Quantity
	}

	if q.VariantID != nil && strings.TrimSpace(*q.VariantID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(*q.VariantID))
		if err != nil {
			return pricing.QuoteInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid variant id")
		}
		input.VariantID = &id
	}

	for _, comp := range q.SelectedComponents {
		id, err := uuid.Parse(strings.TrimSpace(comp.ComponentID))
		if err != nil {
			return pricing.QuoteInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid component id")
		}
		input.Components = append(input.Components, pricing.ComponentSelection{
			ComponentID: id,
			OptionSlug:  strings.TrimSpace(comp.OptionSlug),
		})
	}

	for _, addOn := range q.SelectedAddOns {
		id, err := uuid.Parse(strings.TrimSpace(addOn.AddOnID))
		if err != nil {
			return pricing.QuoteInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid add-on id")
		}
		input.AddOns = append(input.AddOns, pricing.AddOnLine{
			AddOnID:  id,
			Quantity: addOn.Quantity,
		})
	}

	for _, pers := range q.SelectedPersonalizations {
		id, err := uuid.Parse(strings.TrimSpace(pers.PersonalizationID))
		if err != nil {
			return pricing.QuoteInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid personalization id")
		}
		input.Personalizations = append(input.Personalizations, pricing.PersonalizationSelection{
			OptionID:  id,
			Value:     pers.Value,
			SubValues: pers.SubValues,
		})
	}

	return input, nil
}

func newQuoteResponse(quote *pricing.Quote) quoteResponse {
	resp := quoteResponse{
		Currency:                  quote.Currency,
		BasePriceCents:            quote.BasePriceCents,
		ComponentModifiersCents:   quote.ModifiersCents,
		AddOnsTotalCents:          quote.AddOnsTotalCents,
		PersonalizationTotalCents: quote.PersonalizationsCents,
		Quantity:                  quote.Quantity,
		UnitPriceCents:            quote.UnitPriceCents,
		TotalPriceCents:           quote.TotalCents,
		Breakdown: quoteBreakdown{
			Components:       quote.Components,
			AddOns:           quote.AddOns,
			Personalizations: quote.Personalizations,
		},
	}
	if resp.Breakdown.Components == nil {
		resp.Breakdown.Components = []pricing.QuoteComponent{}
	}
	if resp.Breakdown.AddOns == nil {
		resp.Breakdown.AddOns = []pricing.QuoteAddOn{}
	}
	if resp.Breakdown.Personalizations == nil {
		resp.Breakdown.Personalizations = []pricing.QuotePersonalization{}
	}
	return resp
}
