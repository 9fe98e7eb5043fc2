package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/copperline/storefront-backend/internal/configuration"
	"github.com/copperline/storefront-backend/internal/pricing"
	productsvc "github.com/copperline/storefront-backend/internal/products"
	"github.com/copperline/storefront-backend/pkg/config"
	"github.com/copperline/storefront-backend/pkg/db/models"
	"github.com/copperline/storefront-backend/pkg/enums"
	"github.com/copperline/storefront-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubProductFinder struct {
	product *models.Product
}

func (s stubProductFinder) GetProductDetail(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	if s.product == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.product, nil
}

type stubProductService struct {
	createCalls int
}

func (s *stubProductService) CreateProduct(ctx context.Context, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
	s.createCalls++
	return &productsvc.ProductDTO{ID: uuid.New(), Slug: input.Slug, Title: input.Title}, nil
}

func (s *stubProductService) UpdateProduct(ctx context.Context, productID uuid.UUID, input productsvc.UpdateProductInput) (*productsvc.ProductDTO, error) {
	panic("unimplemented")
}

func (s *stubProductService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	panic("unimplemented")
}

func (s *stubProductService) GetProduct(ctx context.Context, productID uuid.UUID) (*productsvc.ProductDTO, error) {
	panic("unimplemented")
}

func (s *stubProductService) ListPublishedProducts(ctx context.Context) ([]productsvc.ProductDTO, error) {
	return []productsvc.ProductDTO{}, nil
}

func (s *stubProductService) UpsertVariant(ctx context.Context, productID uuid.UUID, input productsvc.VariantInput) (*productsvc.ProductDTO, error) {
	panic("unimplemented")
}

func (s *stubProductService) DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) (*productsvc.ProductDTO, error) {
	panic("unimplemented")
}

func (s *stubProductService) UpsertComponent(ctx context.Context, productID uuid.UUID, input productsvc.ComponentInput) (*productsvc.ProductDTO, error) {
	panic("unimplemented")
}

func (s *stubProductService) DeleteComponent(ctx context.Context, productID, componentID uuid.UUID) (*productsvc.ProductDTO, error) {
	panic("unimplemented")
}

func (s *stubProductService) UpsertRule(ctx context.Context, productID uuid.UUID, input productsvc.RuleInput) (*productsvc.ProductDTO, error) {
	panic("unimplemented")
}

func (s *stubProductService) DeleteRule(ctx context.Context, productID, ruleID uuid.UUID) (*productsvc.ProductDTO, error) {
	panic("unimplemented")
}

func (s *stubProductService) UpsertPersonalization(ctx context.Context, productID uuid.UUID, input productsvc.PersonalizationInput) (*productsvc.ProductDTO, error) {
	panic("unimplemented")
}

func (s *stubProductService) DeletePersonalization(ctx context.Context, productID, optionID uuid.UUID) (*productsvc.ProductDTO, error) {
	panic("unimplemented")
}

func (s *stubProductService) AttachAddOn(ctx context.Context, productID, addOnID uuid.UUID) (*productsvc.ProductDTO, error) {
	panic("unimplemented")
}

func (s *stubProductService) DetachAddOn(ctx context.Context, productID, addOnID uuid.UUID) (*productsvc.ProductDTO, error) {
	panic("unimplemented")
}

func (s *stubProductService) CreateAddOn(ctx context.Context, input productsvc.AddOnInput) (*productsvc.AddOnDTO, error) {
	panic("unimplemented")
}

func (s *stubProductService) UpdateAddOn(ctx context.Context, addOnID uuid.UUID, input productsvc.AddOnInput) (*productsvc.AddOnDTO, error) {
	panic("unimplemented")
}

func (s *stubProductService) DeleteAddOn(ctx context.Context, addOnID uuid.UUID) error {
	panic("unimplemented")
}

func (s *stubProductService) ListAddOns(ctx context.Context) ([]productsvc.AddOnDTO, error) {
	panic("unimplemented")
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080", LogLevel: "error"},
		Catalog: config.CatalogConfig{
			Currency:                  "usd",
			MaxCustomPersonalizations: 5,
		},
	}
}

func newTestRouter(cfg *config.Config, svc productsvc.Service) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("error"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		nil,
		stubProductFinder{},
		svc,
		configuration.NewValidator(logg, cfg.Catalog.MaxCustomPersonalizations),
		pricing.NewEngine(),
		enums.CurrencyUSD,
		nil,
		nil,
		nil,
		nil,
	)
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig(), &stubProductService{})
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for live probe got %d", resp.Code)
	}
	if env := resp.Header().Get("X-Copperline-Env"); env != "test" {
		t.Fatalf("expected env header, got %q", env)
	}
}

func TestQuoteRejectsBadJSON(t *testing.T) {
	router := newTestRouter(testConfig(), &stubProductService{})
	req := httptest.NewRequest(http.MethodPost, "/api/calculate-product-price", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body got %d", resp.Code)
	}
}

func TestQuoteUnknownProductReturns404(t *testing.T) {
	router := newTestRouter(testConfig(), &stubProductService{})
	body := `{"product_id":"` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/calculate-product-price", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product got %d (%s)", resp.Code, resp.Body.String())
	}
}

func TestCatalogCreateProductRoute(t *testing.T) {
	svc := &stubProductService{}
	router := newTestRouter(testConfig(), svc)
	body := `{"slug":"walnut-board","title":"Walnut Board","price_cents":10000}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", resp.Code, resp.Body.String())
	}
	if svc.createCalls != 1 {
		t.Fatalf("expected one create call, got %d", svc.createCalls)
	}
}

func TestCatalogListProductsRoute(t *testing.T) {
	router := newTestRouter(testConfig(), &stubProductService{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", resp.Code, resp.Body.String())
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	router := newTestRouter(testConfig(), &stubProductService{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
