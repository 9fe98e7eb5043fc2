package catalogsync

import (
	"context"
	"fmt"

	"github.com/copperline/storefront-backend/pkg/db/models"
)

// PriceEvent is a normalized processor price notification feeding the
// pull path.
type PriceEvent struct {
	PriceID         string
	RemoteProductID string
	UnitAmountCents int
	Currency        string
	Active          bool
	VariantKey      string
}

// HandlePriceUpdated applies a processor-side price change locally. The
// write goes through the Store, not the catalog service, so it can not
// bounce back out as a push. An event for an unknown product or variant is
// logged and dropped: deleting locally first and receiving the trailing
// webhook is a normal race, not a failure.
func (s *Syncer) HandlePriceUpdated(ctx context.Context, event PriceEvent) error {
	started := s.now()
	err := s.pull(ctx, event, true)
	s.metrics.ObserveDuration("pull", s.now().Sub(started))
	if err != nil {
		s.metrics.IncFailure("pull")
		return err
	}
	s.metrics.IncSuccess("pull")
	return nil
}

// HandlePriceDeleted deactivates whatever the deleted price backed. A
// simple product keeps its last known amount; only the stored external id
// is dropped.
func (s *Syncer) HandlePriceDeleted(ctx context.Context, event PriceEvent) error {
	event.Active = false
	started := s.now()
	err := s.pull(ctx, event, false)
	s.metrics.ObserveDuration("pull", s.now().Sub(started))
	if err != nil {
		s.metrics.IncFailure("pull")
		return err
	}
	s.metrics.IncSuccess("pull")
	return nil
}

func (s *Syncer) pull(ctx context.Context, event PriceEvent, applyAmount bool) error {
	product, err := s.store.FindByStripeProductID(ctx, event.RemoteProductID)
	if err != nil {
		return fmt.Errorf("resolving remote product %s: %w", event.RemoteProductID, err)
	}
	if product == nil {
		s.log.Warn(ctx, fmt.Sprintf("price event for unknown remote product %s, skipping", event.RemoteProductID))
		return nil
	}
	ctx = s.log.WithProductID(ctx, product.ID.String())

	if event.VariantKey != "" {
		return s.pullVariant(ctx, product, event, applyAmount)
	}
	return s.pullSimple(ctx, product, event, applyAmount)
}

func (s *Syncer) pullVariant(ctx context.Context, product *models.Product, event PriceEvent, applyAmount bool) error {
	variant := findVariant(product, event)
	if variant == nil {
		s.log.Warn(ctx, fmt.Sprintf("price event for unknown variant key %q, skipping", event.VariantKey))
		return nil
	}

	if applyAmount {
		variant.PriceCents = event.UnitAmountCents
		variant.SalePriceCents = reconcileSalePrice(variant.SalePriceCents, event.UnitAmountCents)
		variant.StripePriceID = &event.PriceID
	} else {
		variant.StripePriceID = nil
	}
	variant.IsActive = event.Active
	if err := s.store.SaveVariantSyncState(ctx, variant); err != nil {
		return fmt.Errorf("persisting variant price: %w", err)
	}
	return s.stampSynced(ctx, product)
}

func (s *Syncer) pullSimple(ctx context.Context, product *models.Product, event PriceEvent, applyAmount bool) error {
	if !applyAmount {
		if product.StripePriceID != nil && *product.StripePriceID == event.PriceID {
			product.StripePriceID = nil
		}
		return s.stampSynced(ctx, product)
	}

	// Only an active remote price moves the local amount; deactivations of
	// superseded prices trail every mint and must not clobber it.
	if !event.Active {
		return s.stampSynced(ctx, product)
	}

	product.PriceCents = event.UnitAmountCents
	product.SalePriceCents = reconcileSalePrice(product.SalePriceCents, event.UnitAmountCents)
	product.StripePriceID = &event.PriceID
	return s.stampSynced(ctx, product)
}

// reconcileSalePrice drops a stored sale price that disagrees with the
// remote amount; leaving it would push a different effective amount
// straight back out on the next run.
func reconcileSalePrice(salePriceCents *int, remoteAmountCents int) *int {
	if salePriceCents != nil && *salePriceCents != remoteAmountCents {
		return nil
	}
	return salePriceCents
}

func (s *Syncer) stampSynced(ctx context.Context, product *models.Product) error {
	syncedAt := s.now()
	product.StripeSyncedAt = &syncedAt
	if err := s.store.SaveSyncState(ctx, product); err != nil {
		return fmt.Errorf("persisting sync state: %w", err)
	}
	return nil
}

// findVariant matches by option key first, falling back to the stored
// remote price id for variants whose options were edited since the price
// was minted.
func findVariant(product *models.Product, event PriceEvent) *models.ProductVariant {
	for i := range product.Variants {
		if product.Variants[i].Key() == event.VariantKey {
			return &product.Variants[i]
		}
	}
	for i := range product.Variants {
		variant := &product.Variants[i]
		if variant.StripePriceID != nil && *variant.StripePriceID == event.PriceID {
			return variant
		}
	}
	return nil
}
