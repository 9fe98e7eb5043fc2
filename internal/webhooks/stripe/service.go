package stripewebhook

import (
	"context"
	"encoding/json"

	"github.com/stripe/stripe-go/v84"

	"github.com/copperline/storefront-backend/internal/catalogsync"
	pkgerrors "github.com/copperline/storefront-backend/pkg/errors"
)

type priceSync interface {
	HandlePriceUpdated(ctx context.Context, event catalogsync.PriceEvent) error
	HandlePriceDeleted(ctx context.Context, event catalogsync.PriceEvent) error
}

type ServiceParams struct {
	Syncer priceSync
}

// Service routes verified processor events into the pull side of the
// catalog synchronizer. Unhandled event types are acknowledged silently so
// the processor does not retry them.
type Service struct {
	syncer priceSync
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Syncer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog syncer required")
	}
	return &Service{syncer: params.Syncer}, nil
}

func (s *Service) HandleEvent(ctx context.Context, event *stripe.Event) error {
	if event == nil || event.Data == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "stripe event data required")
	}

	switch event.Type {
	case stripe.EventTypePriceUpdated, stripe.EventTypePriceCreated:
		price, err := decodePrice(event)
		if err != nil {
			return err
		}
		return s.syncer.HandlePriceUpdated(ctx, toPriceEvent(price))
	case stripe.EventTypePriceDeleted:
		price, err := decodePrice(event)
		if err != nil {
			return err
		}
		return s.syncer.HandlePriceDeleted(ctx, toPriceEvent(price))
	default:
		return nil
	}
}

func decodePrice(event *stripe.Event) (*stripe.Price, error) {
	var price stripe.Price
	if err := json.Unmarshal(event.Data.Raw, &price); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode price event")
	}
	if price.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price id missing from event")
	}
	return &price, nil
}

func toPriceEvent(price *stripe.Price) catalogsync.PriceEvent {
	event := catalogsync.PriceEvent{
		PriceID:         price.ID,
		UnitAmountCents: int(price.UnitAmount),
		Currency:        string(price.Currency),
		Active:          price.Active,
		VariantKey:      price.Metadata[catalogsync.MetaVariantKey],
	}
	if price.Product != nil {
		event.RemoteProductID = price.Product.ID
	}
	return event
}
