package catalogsync

import (
	"context"
	"fmt"
	"time"

	"github.com/copperline/storefront-backend/pkg/config"
	"github.com/copperline/storefront-backend/pkg/db/models"
	"github.com/copperline/storefront-backend/pkg/logger"
	"github.com/copperline/storefront-backend/pkg/metrics"
)

// Store is the narrow persistence surface the synchronizer needs. Its
// writes go straight to the repository, never back through the catalog
// service, so a pull-side update can not re-trigger a push.
type Store interface {
	SaveSyncState(ctx context.Context, product *models.Product) error
	SaveVariantSyncState(ctx context.Context, variant *models.ProductVariant) error
	FindByStripeProductID(ctx context.Context, remoteID string) (*models.Product, error)
}

// Syncer reconciles the local catalog with the payment processor in both
// directions.
type Syncer struct {
	api     CatalogAPI
	store   Store
	log     *logger.Logger
	metrics *metrics.CatalogSyncMetrics
	cfg     config.CatalogConfig
	now     func() time.Time
}

// NewSyncer wires the synchronizer. A nil metrics recorder is allowed.
func NewSyncer(api CatalogAPI, store Store, log *logger.Logger, m *metrics.CatalogSyncMetrics, cfg config.CatalogConfig) *Syncer {
	return &Syncer{
		api:     api,
		store:   store,
		log:     log,
		metrics: m,
		cfg:     cfg,
		now:     time.Now,
	}
}

// SyncProduct pushes one product's state to the processor. It never
// returns an error: the catalog write already committed, so remote
// failures are logged and recorded, and the next save retries naturally.
func (s *Syncer) SyncProduct(ctx context.Context, product *models.Product) {
	ctx = s.log.WithProductID(ctx, product.ID.String())

	if reason := s.skipReason(product); reason != "" {
		s.metrics.IncSkipped(reason)
		s.log.Info(ctx, fmt.Sprintf("catalog sync skipped (%s)", reason))
		return
	}

	started := s.now()
	err := s.push(ctx, product)
	s.metrics.ObserveDuration("push", s.now().Sub(started))
	if err != nil {
		s.metrics.IncFailure("push")
		s.log.Error(ctx, "catalog sync failed", err)
		return
	}
	s.metrics.IncSuccess("push")
}

func (s *Syncer) skipReason(product *models.Product) string {
	switch {
	case s.api == nil || !s.cfg.SyncEnabled:
		return "disabled"
	case product.SyncSuppressed:
		return "sync_suppressed"
	case !product.Published && s.cfg.SyncOnPublishedProductsOnly:
		return "unpublished"
	default:
		return ""
	}
}

func (s *Syncer) push(ctx context.Context, product *models.Product) error {
	remoteID, err := s.upsertRemoteProduct(ctx, product)
	if err != nil {
		return err
	}

	remotePrices, err := s.api.ListPrices(ctx, remoteID)
	if err != nil {
		return fmt.Errorf("listing remote prices: %w", err)
	}

	if product.EnableVariants {
		err = s.reconcileVariantPrices(ctx, product, remoteID, remotePrices)
	} else {
		err = s.reconcileSimplePrice(ctx, product, remoteID, remotePrices)
	}
	if err != nil {
		return err
	}

	syncedAt := s.now()
	product.StripeSyncedAt = &syncedAt
	if err := s.store.SaveSyncState(ctx, product); err != nil {
		return fmt.Errorf("persisting sync state: %w", err)
	}
	return nil
}

func (s *Syncer) upsertRemoteProduct(ctx context.Context, product *models.Product) (string, error) {
	params := ProductParams{
		Name:        product.Title,
		Description: product.Description,
		Active:      product.Published,
		Metadata:    map[string]string{MetaProductID: product.ID.String()},
	}

	if product.StripeProductID != nil && *product.StripeProductID != "" {
		remote, err := s.api.UpdateProduct(ctx, *product.StripeProductID, params)
		if err != nil {
			return "", fmt.Errorf("updating remote product: %w", err)
		}
		return remote.ID, nil
	}

	remote, err := s.api.CreateProduct(ctx, params)
	if err != nil {
		return "", fmt.Errorf("creating remote product: %w", err)
	}
	product.StripeProductID = &remote.ID
	return remote.ID, nil
}

// reconcileSimplePrice keeps exactly one active remote price whose amount
// matches the local headline price. Remote prices are immutable, so a
// changed amount mints a new price and deactivates the old one.
func (s *Syncer) reconcileSimplePrice(ctx context.Context, product *models.Product, remoteID string, remotePrices []RemotePrice) error {
	amount := s.headlinePriceCents(product)

	var keep *RemotePrice
	for i := range remotePrices {
		remote := &remotePrices[i]
		if remote.Active && remote.UnitAmountCents == amount && remote.Metadata[MetaVariantKey] == "" {
			keep = remote
			break
		}
	}

	if keep == nil {
		minted, err := s.api.CreatePrice(ctx, PriceParams{
			ProductID:       remoteID,
			UnitAmountCents: amount,
			Currency:        s.cfg.Currency,
			Metadata:        map[string]string{MetaProductID: product.ID.String()},
		})
		if err != nil {
			return fmt.Errorf("minting remote price: %w", err)
		}
		keep = minted
	}
	product.StripePriceID = &keep.ID

	for i := range remotePrices {
		remote := &remotePrices[i]
		if remote.ID == keep.ID || !remote.Active {
			continue
		}
		if _, err := s.api.SetPriceActive(ctx, remote.ID, false); err != nil {
			return fmt.Errorf("deactivating stale price %s: %w", remote.ID, err)
		}
	}
	return nil
}

// reconcileVariantPrices matches remote prices to local variants by the
// variant_key metadata, reactivating or minting per active variant, then
// deactivates every remote price left outside the active key set.
func (s *Syncer) reconcileVariantPrices(ctx context.Context, product *models.Product, remoteID string, remotePrices []RemotePrice) error {
	byKey := make(map[string]*RemotePrice, len(remotePrices))
	for i := range remotePrices {
		if key := remotePrices[i].Metadata[MetaVariantKey]; key != "" {
			byKey[key] = &remotePrices[i]
		}
	}

	activeKeys := make(map[string]struct{})
	for i := range product.Variants {
		variant := &product.Variants[i]
		if !variant.IsActive {
			continue
		}
		key := variant.Key()
		activeKeys[key] = struct{}{}

		amount := variant.EffectivePriceCents()
		remote := byKey[key]
		switch {
		case remote != nil && remote.UnitAmountCents == amount:
			if !remote.Active {
				if _, err := s.api.SetPriceActive(ctx, remote.ID, true); err != nil {
					return fmt.Errorf("reactivating price for %q: %w", key, err)
				}
			}
			variant.StripePriceID = &remote.ID
		default:
			minted, err := s.api.CreatePrice(ctx, PriceParams{
				ProductID:       remoteID,
				UnitAmountCents: amount,
				Currency:        s.cfg.Currency,
				Metadata: map[string]string{
					MetaProductID:  product.ID.String(),
					MetaVariantKey: key,
				},
			})
			if err != nil {
				return fmt.Errorf("minting price for %q: %w", key, err)
			}
			variant.StripePriceID = &minted.ID
		}
	}

	for i := range remotePrices {
		remote := &remotePrices[i]
		if !remote.Active {
			continue
		}
		key := remote.Metadata[MetaVariantKey]
		kept := false
		if key != "" {
			if _, active := activeKeys[key]; active {
				for j := range product.Variants {
					if product.Variants[j].StripePriceID != nil && *product.Variants[j].StripePriceID == remote.ID {
						kept = true
						break
					}
				}
			}
		}
		if kept {
			continue
		}
		if _, err := s.api.SetPriceActive(ctx, remote.ID, false); err != nil {
			return fmt.Errorf("deactivating stale price %s: %w", remote.ID, err)
		}
	}
	return nil
}

// headlinePriceCents is the amount pushed for a simple product: the
// stored calculated total when the engine has produced one, else the
// effective product price.
func (s *Syncer) headlinePriceCents(product *models.Product) int {
	if product.CalculatedTotalPriceCents > 0 {
		return product.CalculatedTotalPriceCents
	}
	if product.SaleActive(s.now()) {
		return *product.SalePriceCents
	}
	return product.PriceCents
}
