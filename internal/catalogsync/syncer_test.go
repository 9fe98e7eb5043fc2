package catalogsync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/copperline/storefront-backend/pkg/config"
	"github.com/copperline/storefront-backend/pkg/db/models"
	"github.com/copperline/storefront-backend/pkg/logger"
	"github.com/copperline/storefront-backend/pkg/metrics"
	"github.com/copperline/storefront-backend/pkg/types"
)

func intPtr(v int) *int          { return &v }
func strPtr(s string) *string    { return &s }
func syncCfg() config.CatalogConfig {
	return config.CatalogConfig{Currency: "USD", SyncEnabled: true, SyncOnPublishedProductsOnly: true}
}

type fakeAPI struct {
	products map[string]*RemoteProduct
	prices   map[string]*RemotePrice
	seq      int
	failAll  bool

	createdPrices int
	deactivated   []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		products: make(map[string]*RemoteProduct),
		prices:   make(map[string]*RemotePrice),
	}
}

func (f *fakeAPI) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s_%03d", prefix, f.seq)
}

func (f *fakeAPI) CreateProduct(_ context.Context, params ProductParams) (*RemoteProduct, error) {
	if f.failAll {
		return nil, errors.New("remote unavailable")
	}
	remote := &RemoteProduct{
		ID: f.nextID("prod"), Name: params.Name, Description: params.Description,
		Active: params.Active, Metadata: params.Metadata,
	}
	f.products[remote.ID] = remote
	return remote, nil
}

func (f *fakeAPI) UpdateProduct(_ context.Context, id string, params ProductParams) (*RemoteProduct, error) {
	if f.failAll {
		return nil, errors.New("remote unavailable")
	}
	remote, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("no such product %s", id)
	}
	remote.Name = params.Name
	remote.Description = params.Description
	remote.Active = params.Active
	return remote, nil
}

func (f *fakeAPI) ListPrices(_ context.Context, productID string) ([]RemotePrice, error) {
	if f.failAll {
		return nil, errors.New("remote unavailable")
	}
	var out []RemotePrice
	for _, remote := range f.prices {
		if remote.ProductID == productID {
			out = append(out, *remote)
		}
	}
	return out, nil
}

func (f *fakeAPI) CreatePrice(_ context.Context, params PriceParams) (*RemotePrice, error) {
	if f.failAll {
		return nil, errors.New("remote unavailable")
	}
	remote := &RemotePrice{
		ID: f.nextID("price"), ProductID: params.ProductID,
		UnitAmountCents: params.UnitAmountCents, Currency: params.Currency,
		Active: true, Metadata: params.Metadata,
	}
	if remote.Metadata == nil {
		remote.Metadata = map[string]string{}
	}
	f.prices[remote.ID] = remote
	f.createdPrices++
	return remote, nil
}

func (f *fakeAPI) SetPriceActive(_ context.Context, id string, active bool) (*RemotePrice, error) {
	if f.failAll {
		return nil, errors.New("remote unavailable")
	}
	remote, ok := f.prices[id]
	if !ok {
		return nil, fmt.Errorf("no such price %s", id)
	}
	remote.Active = active
	if !active {
		f.deactivated = append(f.deactivated, id)
	}
	return remote, nil
}

type fakeStore struct {
	products   map[string]*models.Product
	saves      int
	variantSaves int
}

func newFakeStore(products ...*models.Product) *fakeStore {
	store := &fakeStore{products: make(map[string]*models.Product)}
	for _, product := range products {
		if product.StripeProductID != nil {
			store.products[*product.StripeProductID] = product
		}
	}
	return store
}

func (f *fakeStore) SaveSyncState(_ context.Context, product *models.Product) error {
	f.saves++
	if product.StripeProductID != nil {
		f.products[*product.StripeProductID] = product
	}
	return nil
}

func (f *fakeStore) SaveVariantSyncState(_ context.Context, _ *models.ProductVariant) error {
	f.variantSaves++
	return nil
}

func (f *fakeStore) FindByStripeProductID(_ context.Context, remoteID string) (*models.Product, error) {
	return f.products[remoteID], nil
}

func testSyncer(api CatalogAPI, store Store, cfg config.CatalogConfig) *Syncer {
	log := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	syncer := NewSyncer(api, store, log, metrics.NewCatalogSyncMetrics(nil), cfg)
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	syncer.now = func() time.Time { return at }
	return syncer
}

func simpleProduct() *models.Product {
	return &models.Product{
		ID:          uuid.New(),
		Title:       "Walnut Cutting Board",
		Description: "End-grain walnut board",
		PriceCents:  12500,
		Published:   true,
	}
}

func TestSyncProductMintsOncePerAmount(t *testing.T) {
	api := newFakeAPI()
	store := newFakeStore()
	syncer := testSyncer(api, store, syncCfg())
	product := simpleProduct()

	syncer.SyncProduct(context.Background(), product)

	if product.StripeProductID == nil {
		t.Fatal("expected remote product id to be stored")
	}
	if product.StripePriceID == nil {
		t.Fatal("expected remote price id to be stored")
	}
	if product.StripeSyncedAt == nil {
		t.Fatal("expected sync timestamp")
	}
	if api.createdPrices != 1 {
		t.Fatalf("expected exactly one minted price, got %d", api.createdPrices)
	}

	// A second run with unchanged state must be a no-op remotely.
	syncer.SyncProduct(context.Background(), product)
	if api.createdPrices != 1 {
		t.Fatalf("second run minted a price, total %d", api.createdPrices)
	}
	if len(api.deactivated) != 0 {
		t.Fatalf("second run deactivated prices: %v", api.deactivated)
	}
}

func TestSyncProductAmountChangeMintsAndDeactivates(t *testing.T) {
	api := newFakeAPI()
	store := newFakeStore()
	syncer := testSyncer(api, store, syncCfg())
	product := simpleProduct()

	syncer.SyncProduct(context.Background(), product)
	firstPrice := *product.StripePriceID

	product.PriceCents = 13900
	syncer.SyncProduct(context.Background(), product)

	if api.createdPrices != 2 {
		t.Fatalf("expected a new price after the amount change, got %d mints", api.createdPrices)
	}
	if *product.StripePriceID == firstPrice {
		t.Fatal("expected the stored price id to move to the new price")
	}
	if len(api.deactivated) != 1 || api.deactivated[0] != firstPrice {
		t.Fatalf("expected the old price to be deactivated, got %v", api.deactivated)
	}
}

func TestSyncProductPushesCalculatedTotal(t *testing.T) {
	api := newFakeAPI()
	store := newFakeStore()
	syncer := testSyncer(api, store, syncCfg())
	product := simpleProduct()
	product.CalculatedTotalPriceCents = 16400

	syncer.SyncProduct(context.Background(), product)

	if product.StripePriceID == nil {
		t.Fatal("expected remote price id to be stored")
	}
	minted := api.prices[*product.StripePriceID]
	if minted.UnitAmountCents != 16400 {
		t.Fatalf("expected the cached total to be pushed, got %d", minted.UnitAmountCents)
	}
}

func TestSyncProductSkips(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*models.Product)
		cfg     config.CatalogConfig
	}{
		{"suppressed", func(p *models.Product) { p.SyncSuppressed = true }, syncCfg()},
		{"unpublished", func(p *models.Product) { p.Published = false }, syncCfg()},
		{"disabled", func(p *models.Product) {}, config.CatalogConfig{Currency: "USD"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := newFakeAPI()
			store := newFakeStore()
			syncer := testSyncer(api, store, tc.cfg)
			product := simpleProduct()
			tc.mutate(product)

			syncer.SyncProduct(context.Background(), product)

			if len(api.products) != 0 || api.createdPrices != 0 {
				t.Fatal("expected no remote calls")
			}
			if product.StripeSyncedAt != nil {
				t.Fatal("skipped sync must not stamp the product")
			}
		})
	}
}

func TestSyncProductSwallowsRemoteFailures(t *testing.T) {
	api := newFakeAPI()
	api.failAll = true
	store := newFakeStore()
	syncer := testSyncer(api, store, syncCfg())
	product := simpleProduct()

	syncer.SyncProduct(context.Background(), product)

	if product.StripeSyncedAt != nil {
		t.Fatal("failed sync must not stamp the product")
	}
	if store.saves != 0 {
		t.Fatal("failed sync must not persist state")
	}
}

func variantProduct() *models.Product {
	return &models.Product{
		ID:             uuid.New(),
		Title:          "Copper Flask",
		Published:      true,
		EnableVariants: true,
		Variants: []models.ProductVariant{
			{
				ID:         uuid.New(),
				Options:    types.VariantOptions{{OptionSlug: "size", Value: "500ml"}},
				PriceCents: 4500, IsActive: true, Stock: 5,
			},
			{
				ID:         uuid.New(),
				Options:    types.VariantOptions{{OptionSlug: "size", Value: "750ml"}},
				PriceCents: 5900, IsActive: true, Stock: 2,
			},
		},
	}
}

func TestSyncVariantsMintsPerActiveVariant(t *testing.T) {
	api := newFakeAPI()
	store := newFakeStore()
	syncer := testSyncer(api, store, syncCfg())
	product := variantProduct()

	syncer.SyncProduct(context.Background(), product)

	if api.createdPrices != 2 {
		t.Fatalf("expected one price per active variant, got %d", api.createdPrices)
	}
	for i := range product.Variants {
		if product.Variants[i].StripePriceID == nil {
			t.Fatalf("variant %d missing remote price id", i)
		}
	}

	syncer.SyncProduct(context.Background(), product)
	if api.createdPrices != 2 {
		t.Fatalf("second run minted prices, total %d", api.createdPrices)
	}
}

func TestSyncVariantsDeactivatesStaleKeys(t *testing.T) {
	api := newFakeAPI()
	store := newFakeStore()
	syncer := testSyncer(api, store, syncCfg())
	product := variantProduct()

	syncer.SyncProduct(context.Background(), product)
	stalePriceID := *product.Variants[1].StripePriceID

	// Retire the 750ml variant locally.
	product.Variants[1].IsActive = false
	syncer.SyncProduct(context.Background(), product)

	found := false
	for _, id := range api.deactivated {
		if id == stalePriceID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected stale price %s to be deactivated, got %v", stalePriceID, api.deactivated)
	}
}

func TestHandlePriceUpdatedSimple(t *testing.T) {
	product := simpleProduct()
	product.StripeProductID = strPtr("prod_remote")
	store := newFakeStore(product)
	syncer := testSyncer(newFakeAPI(), store, syncCfg())

	err := syncer.HandlePriceUpdated(context.Background(), PriceEvent{
		PriceID:         "price_new",
		RemoteProductID: "prod_remote",
		UnitAmountCents: 14200,
		Active:          true,
	})
	if err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if product.PriceCents != 14200 {
		t.Fatalf("expected local price 14200, got %d", product.PriceCents)
	}
	if product.StripePriceID == nil || *product.StripePriceID != "price_new" {
		t.Fatal("expected the remote price id to be stored")
	}
	if product.StripeSyncedAt == nil {
		t.Fatal("expected pull to stamp the sync time")
	}
}

func TestHandlePriceUpdatedInactiveSimpleDoesNotClobber(t *testing.T) {
	product := simpleProduct()
	product.StripeProductID = strPtr("prod_remote")
	store := newFakeStore(product)
	syncer := testSyncer(newFakeAPI(), store, syncCfg())

	err := syncer.HandlePriceUpdated(context.Background(), PriceEvent{
		PriceID:         "price_old",
		RemoteProductID: "prod_remote",
		UnitAmountCents: 100,
		Active:          false,
	})
	if err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if product.PriceCents != 12500 {
		t.Fatalf("inactive price moved the local amount to %d", product.PriceCents)
	}
}

func TestHandlePriceUpdatedVariantByKey(t *testing.T) {
	product := variantProduct()
	product.StripeProductID = strPtr("prod_remote")
	store := newFakeStore(product)
	syncer := testSyncer(newFakeAPI(), store, syncCfg())

	err := syncer.HandlePriceUpdated(context.Background(), PriceEvent{
		PriceID:         "price_v",
		RemoteProductID: "prod_remote",
		UnitAmountCents: 6100,
		Active:          true,
		VariantKey:      "size:750ml",
	})
	if err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if product.Variants[1].PriceCents != 6100 {
		t.Fatalf("expected variant price 6100, got %d", product.Variants[1].PriceCents)
	}
	if store.variantSaves != 1 {
		t.Fatalf("expected one variant save, got %d", store.variantSaves)
	}
}

func TestHandlePriceUpdatedClearsStaleSalePrice(t *testing.T) {
	product := variantProduct()
	product.StripeProductID = strPtr("prod_remote")
	product.SalePriceCents = intPtr(9900)
	product.Variants[1].SalePriceCents = intPtr(5500)
	store := newFakeStore(product)
	syncer := testSyncer(newFakeAPI(), store, syncCfg())

	err := syncer.HandlePriceUpdated(context.Background(), PriceEvent{
		PriceID:         "price_v",
		RemoteProductID: "prod_remote",
		UnitAmountCents: 6100,
		Active:          true,
		VariantKey:      "size:750ml",
	})
	if err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if product.Variants[1].SalePriceCents != nil {
		t.Fatalf("expected the stale variant sale price to be cleared, got %d", *product.Variants[1].SalePriceCents)
	}
	if product.Variants[1].EffectivePriceCents() != 6100 {
		t.Fatalf("effective price = %d, want the remote amount 6100", product.Variants[1].EffectivePriceCents())
	}

	err = syncer.HandlePriceUpdated(context.Background(), PriceEvent{
		PriceID:         "price_new",
		RemoteProductID: "prod_remote",
		UnitAmountCents: 14200,
		Active:          true,
	})
	if err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if product.SalePriceCents != nil {
		t.Fatalf("expected the stale product sale price to be cleared, got %d", *product.SalePriceCents)
	}
}

func TestHandlePriceUpdatedKeepsMatchingSalePrice(t *testing.T) {
	product := simpleProduct()
	product.StripeProductID = strPtr("prod_remote")
	product.SalePriceCents = intPtr(9900)
	store := newFakeStore(product)
	syncer := testSyncer(newFakeAPI(), store, syncCfg())

	err := syncer.HandlePriceUpdated(context.Background(), PriceEvent{
		PriceID:         "price_sale",
		RemoteProductID: "prod_remote",
		UnitAmountCents: 9900,
		Active:          true,
	})
	if err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if product.SalePriceCents == nil || *product.SalePriceCents != 9900 {
		t.Fatal("a sale price matching the remote amount must survive the pull")
	}
}

func TestHandlePriceUpdatedUnknownProductIsNoOp(t *testing.T) {
	store := newFakeStore()
	syncer := testSyncer(newFakeAPI(), store, syncCfg())

	err := syncer.HandlePriceUpdated(context.Background(), PriceEvent{
		PriceID:         "price_x",
		RemoteProductID: "prod_unknown",
		UnitAmountCents: 100,
		Active:          true,
	})
	if err != nil {
		t.Fatalf("unknown product must be a no-op, got %v", err)
	}
	if store.saves != 0 {
		t.Fatal("no-op must not persist anything")
	}
}

func TestHandlePriceDeletedDeactivatesVariant(t *testing.T) {
	product := variantProduct()
	product.StripeProductID = strPtr("prod_remote")
	product.Variants[0].StripePriceID = strPtr("price_del")
	store := newFakeStore(product)
	syncer := testSyncer(newFakeAPI(), store, syncCfg())

	err := syncer.HandlePriceDeleted(context.Background(), PriceEvent{
		PriceID:         "price_del",
		RemoteProductID: "prod_remote",
		VariantKey:      "size:500ml",
	})
	if err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if product.Variants[0].IsActive {
		t.Fatal("expected the variant to be deactivated")
	}
	if product.Variants[0].StripePriceID != nil {
		t.Fatal("expected the stored price id to be cleared")
	}
}
