package catalogsync

import "context"

// Metadata keys stamped on remote objects so both sync directions can map
// them back to local rows.
const (
	MetaProductID  = "product_id"
	MetaVariantKey = "variant_key"
)

// RemoteProduct is the processor-side product representation.
type RemoteProduct struct {
	ID          string
	Name        string
	Description string
	Active      bool
	Metadata    map[string]string
}

// RemotePrice is the processor-side price representation. Remote prices
// are immutable in amount: changing a price means minting a new one and
// deactivating the old.
type RemotePrice struct {
	ID              string
	ProductID       string
	UnitAmountCents int
	Currency        string
	Active          bool
	Metadata        map[string]string
}

// ProductParams carries the fields pushed on product create/update.
type ProductParams struct {
	Name        string
	Description string
	Active      bool
	Metadata    map[string]string
}

// PriceParams carries the fields for minting a remote price.
type PriceParams struct {
	ProductID       string
	UnitAmountCents int
	Currency        string
	Metadata        map[string]string
}

// CatalogAPI is the processor surface the synchronizer reconciles against.
type CatalogAPI interface {
	CreateProduct(ctx context.Context, params ProductParams) (*RemoteProduct, error)
	UpdateProduct(ctx context.Context, id string, params ProductParams) (*RemoteProduct, error)
	ListPrices(ctx context.Context, productID string) ([]RemotePrice, error)
	CreatePrice(ctx context.Context, params PriceParams) (*RemotePrice, error)
	// SetPriceActive toggles a price's availability; amounts never change.
	SetPriceActive(ctx context.Context, id string, active bool) (*RemotePrice, error)
}
