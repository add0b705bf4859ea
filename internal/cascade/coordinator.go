// Package cascade removes a url together with its dependent price
// observations. The steps are not transactional: once the catalog record
// is gone, any price rows that survive a failed delete linger as orphans
// until their TTL expires. Callers see that as a PartialError rather than
// a silent success.
package cascade

import (
	"context"
	"fmt"
	"log/slog"

	"price-tracker/internal/prices"
	"price-tracker/internal/storage"
)

type CatalogStore interface {
	DeleteURL(ctx context.Context, productID, productURLID string) error
}

type PriceStore interface {
	List(ctx context.Context, productURLID string) ([]prices.Observation, error)
	BatchDelete(ctx context.Context, observations []prices.Observation) ([]storage.Key, error)
}

// PartialError reports a cascade that removed the url record but left
// price observations behind. Undeleted holds the keys still in the store;
// it is nil when the dependent set could not even be listed.
type PartialError struct {
	ProductURLID string
	Undeleted    []storage.Key
	Err          error
}

func (e *PartialError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cascade delete of url %s incomplete: %v", e.ProductURLID, e.Err)
	}
	return fmt.Sprintf("cascade delete of url %s incomplete: %d price observations remain", e.ProductURLID, len(e.Undeleted))
}

func (e *PartialError) Unwrap() error { return e.Err }

type Coordinator struct {
	catalog CatalogStore
	prices  PriceStore
	logger  *slog.Logger
}

func New(catalog CatalogStore, prices PriceStore, logger *slog.Logger) *Coordinator {
	return &Coordinator{catalog: catalog, prices: prices, logger: logger}
}

// Delete runs the linear cascade: drop the url record, list its prices,
// batch-delete them. It returns the number of observations removed. There
// is no rollback; a failure before the url record is deleted is an
// ordinary error, a failure after it is a *PartialError.
func (c *Coordinator) Delete(ctx context.Context, productID, productURLID string) (int, error) {
	if err := c.catalog.DeleteURL(ctx, productID, productURLID); err != nil {
		return 0, fmt.Errorf("delete url record: %w", err)
	}

	observations, err := c.prices.List(ctx, productURLID)
	if err != nil {
		return 0, &PartialError{ProductURLID: productURLID, Err: err}
	}
	if len(observations) == 0 {
		return 0, nil
	}

	undeleted, err := c.prices.BatchDelete(ctx, observations)
	removed := len(observations) - len(undeleted)
	if err != nil {
		return removed, &PartialError{ProductURLID: productURLID, Undeleted: undeleted, Err: err}
	}
	if len(undeleted) > 0 {
		c.logger.Warn("cascade left unprocessed price keys",
			"product_url_id", productURLID,
			"undeleted", len(undeleted),
		)
		return removed, &PartialError{ProductURLID: productURLID, Undeleted: undeleted}
	}

	return removed, nil
}
