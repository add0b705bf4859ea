package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"price-tracker/internal/catalog"
	"price-tracker/internal/prices"

	"github.com/prometheus/client_golang/prometheus"
)

type Repository interface {
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	ListURLs(ctx context.Context, productID string) ([]catalog.ProductURL, error)
	GetProduct(ctx context.Context, productID string) (catalog.Product, error)
	CreateProduct(ctx context.Context, name string) (catalog.Product, error)
	CreateURL(ctx context.Context, productID, url, xpath, cssSelectors string) (catalog.ProductURL, error)
	TouchProduct(ctx context.Context, productID string) (catalog.Product, error)
}

type PriceSeries interface {
	List(ctx context.Context, productURLID string) ([]prices.Observation, error)
	Add(ctx context.Context, obs prices.Observation) error
}

// Cascader deletes a url and everything that depends on it, reporting the
// number of price observations removed.
type Cascader interface {
	Delete(ctx context.Context, productID, productURLID string) (int, error)
}

type Service struct {
	repo        Repository
	prices      PriceSeries
	cascade     Cascader
	logger      *slog.Logger
	created     prometheus.Counter
	urlsCreated prometheus.Counter
	urlsDeleted prometheus.Counter
}

func New(repo Repository, series PriceSeries, cascade Cascader, logger *slog.Logger, created, urlsCreated, urlsDeleted prometheus.Counter) *Service {
	return &Service{
		repo:        repo,
		prices:      series,
		cascade:     cascade,
		logger:      logger,
		created:     created,
		urlsCreated: urlsCreated,
		urlsDeleted: urlsDeleted,
	}
}

func (s *Service) CreateProduct(ctx context.Context, name string) (catalog.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return catalog.Product{}, catalog.ErrInvalidName
	}

	product, err := s.repo.CreateProduct(ctx, name)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("repo create product: %w", err)
	}

	s.created.Inc()
	return product, nil
}

func (s *Service) GetProduct(ctx context.Context, productID string) (catalog.Product, error) {
	if productID == "" {
		return catalog.Product{}, catalog.Invalid("productId is required")
	}
	return s.repo.GetProduct(ctx, productID)
}

func (s *Service) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *Service) ListURLs(ctx context.Context, productID string) ([]catalog.ProductURL, error) {
	if productID == "" {
		return nil, catalog.Invalid("productId is required")
	}
	return s.repo.ListURLs(ctx, productID)
}

// CreateURL validates the target url but does not check the product
// exists; callers are expected to create the product first.
func (s *Service) CreateURL(ctx context.Context, productID, rawURL, xpath, cssSelectors string) (catalog.ProductURL, error) {
	if productID == "" {
		return catalog.ProductURL{}, catalog.Invalid("productId is required")
	}
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return catalog.ProductURL{}, catalog.ErrInvalidURL
	}

	created, err := s.repo.CreateURL(ctx, productID, parsed.String(), xpath, cssSelectors)
	if err != nil {
		return catalog.ProductURL{}, fmt.Errorf("repo create url: %w", err)
	}

	s.urlsCreated.Inc()
	return created, nil
}

func (s *Service) TouchProduct(ctx context.Context, productID string) (catalog.Product, error) {
	if productID == "" {
		return catalog.Product{}, catalog.Invalid("productId is required")
	}
	return s.repo.TouchProduct(ctx, productID)
}

// DeleteURL cascades through the price series and returns the number of
// observations removed. A *cascade.PartialError passes through untouched
// so the boundary can report what was left behind.
func (s *Service) DeleteURL(ctx context.Context, productID, productURLID string) (int, error) {
	if productID == "" || productURLID == "" {
		return 0, catalog.Invalid("productId and productUrlId are required")
	}

	removed, err := s.cascade.Delete(ctx, productID, productURLID)
	if err != nil {
		return removed, err
	}

	s.urlsDeleted.Inc()
	s.logger.Info("url deleted",
		"product_id", productID,
		"product_url_id", productURLID,
		"prices_removed", removed,
	)
	return removed, nil
}

func (s *Service) ListPrices(ctx context.Context, productURLID string) ([]prices.Observation, error) {
	if productURLID == "" {
		return nil, catalog.Invalid("productUrlId is required")
	}
	return s.prices.List(ctx, productURLID)
}

// AddPrice is the scrape worker's write path.
func (s *Service) AddPrice(ctx context.Context, obs prices.Observation) error {
	if obs.ProductURLID == "" {
		return catalog.Invalid("productUrlId is required")
	}
	if obs.Timestamp <= 0 {
		return catalog.Invalid("priceTimestamp must be a positive epoch second")
	}
	if obs.ExpiresAt <= obs.Timestamp {
		return catalog.Invalid("expirationTimestamp must be after priceTimestamp")
	}
	if obs.Price < 0 {
		return catalog.Invalid("price cannot be negative")
	}
	return s.prices.Add(ctx, obs)
}
