package catalogsync

import (
	"context"
	"strings"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/price"
	"github.com/stripe/stripe-go/v84/product"

	pkgstripe "github.com/copperline/storefront-backend/pkg/stripe"
)

type stripeCatalog struct {
	currency string
}

// NewStripeCatalog adapts the Stripe API to the CatalogAPI surface. The
// shared client must be initialized first; currency is the default used
// when a price params carries none.
func NewStripeCatalog(api *pkgstripe.Client, currency string) CatalogAPI {
	if api == nil {
		return nil
	}
	return &stripeCatalog{currency: strings.ToLower(currency)}
}

func (s *stripeCatalog) CreateProduct(ctx context.Context, params ProductParams) (*RemoteProduct, error) {
	remote, err := product.New(s.productParams(ctx, params))
	if err != nil {
		return nil, err
	}
	return fromStripeProduct(remote), nil
}

func (s *stripeCatalog) UpdateProduct(ctx context.Context, id string, params ProductParams) (*RemoteProduct, error) {
	remote, err := product.Update(id, s.productParams(ctx, params))
	if err != nil {
		return nil, err
	}
	return fromStripeProduct(remote), nil
}

func (s *stripeCatalog) ListPrices(ctx context.Context, productID string) ([]RemotePrice, error) {
	params := &stripe.PriceListParams{Product: stripe.String(productID)}
	params.Context = ctx
	var out []RemotePrice
	iter := price.List(params)
	for iter.Next() {
		out = append(out, *fromStripePrice(iter.Price()))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *stripeCatalog) CreatePrice(ctx context.Context, params PriceParams) (*RemotePrice, error) {
	currency := strings.ToLower(params.Currency)
	if currency == "" {
		currency = s.currency
	}
	stripeParams := &stripe.PriceParams{
		Product:    stripe.String(params.ProductID),
		UnitAmount: stripe.Int64(int64(params.UnitAmountCents)),
		Currency:   stripe.String(currency),
	}
	stripeParams.Context = ctx
	for key, value := range params.Metadata {
		stripeParams.AddMetadata(key, value)
	}
	remote, err := price.New(stripeParams)
	if err != nil {
		return nil, err
	}
	return fromStripePrice(remote), nil
}

func (s *stripeCatalog) SetPriceActive(ctx context.Context, id string, active bool) (*RemotePrice, error) {
	params := &stripe.PriceParams{Active: stripe.Bool(active)}
	params.Context = ctx
	remote, err := price.Update(id, params)
	if err != nil {
		return nil, err
	}
	return fromStripePrice(remote), nil
}

func (s *stripeCatalog) productParams(ctx context.Context, params ProductParams) *stripe.ProductParams {
	stripeParams := &stripe.ProductParams{
		Name:   stripe.String(params.Name),
		Active: stripe.Bool(params.Active),
	}
	if params.Description != "" {
		stripeParams.Description = stripe.String(params.Description)
	}
	stripeParams.Context = ctx
	for key, value := range params.Metadata {
		stripeParams.AddMetadata(key, value)
	}
	return stripeParams
}

func fromStripeProduct(remote *stripe.Product) *RemoteProduct {
	return &RemoteProduct{
		ID:          remote.ID,
		Name:        remote.Name,
		Description: remote.Description,
		Active:      remote.Active,
		Metadata:    remote.Metadata,
	}
}

func fromStripePrice(remote *stripe.Price) *RemotePrice {
	out := &RemotePrice{
		ID:              remote.ID,
		UnitAmountCents: int(remote.UnitAmount),
		Currency:        string(remote.Currency),
		Active:          remote.Active,
		Metadata:        remote.Metadata,
	}
	if remote.Product != nil {
		out.ProductID = remote.Product.ID
	}
	return out
}
