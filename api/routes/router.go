package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/copperline/storefront-backend/api/controllers"
	webhookcontrollers "github.com/copperline/storefront-backend/api/controllers/webhooks"
	"github.com/copperline/storefront-backend/api/middleware"
	"github.com/copperline/storefront-backend/internal/configuration"
	"github.com/copperline/storefront-backend/internal/pricing"
	productsvc "github.com/copperline/storefront-backend/internal/products"
	stripewebhook "github.com/copperline/storefront-backend/internal/webhooks/stripe"
	"github.com/copperline/storefront-backend/pkg/config"
	"github.com/copperline/storefront-backend/pkg/db"
	"github.com/copperline/storefront-backend/pkg/enums"
	"github.com/copperline/storefront-backend/pkg/logger"
	"github.com/copperline/storefront-backend/pkg/redis"
	"github.com/copperline/storefront-backend/pkg/stripe"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	productFinder controllers.ProductDetailFinder,
	productService productsvc.Service,
	validator *configuration.Validator,
	engine *pricing.Engine,
	currency enums.Currency,
	stripeClient *stripe.Client,
	stripeWebhookService *stripewebhook.Service,
	stripeWebhookGuard *stripewebhook.IdempotencyGuard,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.With(middleware.QuoteRateLimit(cfg.QuoteLimit, redisClient, logg)).
		Post("/api/calculate-product-price", controllers.CalculateProductPrice(productFinder, validator, engine, currency, logg))

	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Post("/stripe", webhookcontrollers.StripeWebhook(stripeWebhookService, stripeClient, stripeWebhookGuard, logg))
	})

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.CatalogCreateProduct(productService, logg))
			r.Get("/", controllers.CatalogListProducts(productService, logg))

			r.Route("/{productId}", func(r chi.Router) {
				r.Get("/", controllers.CatalogGetProduct(productService, logg))
				r.Patch("/", controllers.CatalogUpdateProduct(productService, logg))
				r.Delete("/", controllers.CatalogDeleteProduct(productService, logg))

				r.Put("/variants", controllers.CatalogUpsertVariant(productService, logg))
				r.Delete("/variants/{variantId}", controllers.CatalogDeleteVariant(productService, logg))

				r.Put("/components", controllers.CatalogUpsertComponent(productService, logg))
				r.Delete("/components/{componentId}", controllers.CatalogDeleteComponent(productService, logg))

				r.Put("/rules", controllers.CatalogUpsertRule(productService, logg))
				r.Delete("/rules/{ruleId}", controllers.CatalogDeleteRule(productService, logg))

				r.Put("/personalizations", controllers.CatalogUpsertPersonalization(productService, logg))
				r.Delete("/personalizations/{personalizationId}", controllers.CatalogDeletePersonalization(productService, logg))

				r.Post("/add-ons/{addOnId}", controllers.CatalogAttachAddOn(productService, logg))
				r.Delete("/add-ons/{addOnId}", controllers.CatalogDetachAddOn(productService, logg))
			})
		})

		r.Route("/add-ons", func(r chi.Router) {
			r.Post("/", controllers.AddOnCreate(productService, logg))
			r.Get("/", controllers.AddOnList(productService, logg))
			r.Put("/{addOnId}", controllers.AddOnUpdate(productService, logg))
			r.Delete("/{addOnId}", controllers.AddOnDelete(productService, logg))
		})
	})

	return r
}
