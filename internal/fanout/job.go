// Package fanout expands the catalog into one queue message per url on a
// fixed schedule.
package fanout

import (
	"context"
	"fmt"
	"log/slog"

	"price-tracker/internal/catalog"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

// fetchConcurrency bounds the per-product url fetches in flight at once.
const fetchConcurrency = 4

type Catalog interface {
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	ListURLs(ctx context.Context, productID string) ([]catalog.ProductURL, error)
}

type Sender interface {
	SendURLs(ctx context.Context, urls []catalog.ProductURL) (int, error)
}

type Job struct {
	catalog  Catalog
	sender   Sender
	logger   *slog.Logger
	runs     prometheus.Counter
	failures prometheus.Counter
	enqueued prometheus.Counter
}

func New(cat Catalog, sender Sender, logger *slog.Logger, runs, failures, enqueued prometheus.Counter) *Job {
	return &Job{
		catalog:  cat,
		sender:   sender,
		logger:   logger,
		runs:     runs,
		failures: failures,
		enqueued: enqueued,
	}
}

// Run performs one fan-out pass. Failures are logged and absorbed: the
// scheduler never sees an error, and a failed pass is recovered only by
// the next scheduled invocation.
func (j *Job) Run(ctx context.Context) {
	j.runs.Inc()

	sent, err := j.run(ctx)
	if err != nil {
		j.failures.Inc()
		j.logger.Error("fan-out run failed", "error", err)
		return
	}

	j.enqueued.Add(float64(sent))
	j.logger.Info("fan-out run complete", "urls_enqueued", sent)
}

func (j *Job) run(ctx context.Context) (int, error) {
	products, err := j.catalog.ListProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("list products: %w", err)
	}

	// Per-product fetches run concurrently, but every one must finish
	// before batching starts or urls would be dropped from the run.
	urlsByProduct := make([][]catalog.ProductURL, len(products))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, p := range products {
		i, p := i, p
		g.Go(func() error {
			urls, err := j.catalog.ListURLs(gctx, p.ProductID)
			if err != nil {
				return fmt.Errorf("list urls for product %s: %w", p.ProductID, err)
			}
			urlsByProduct[i] = urls
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var all []catalog.ProductURL
	for _, urls := range urlsByProduct {
		all = append(all, urls...)
	}
	if len(all) == 0 {
		return 0, nil
	}

	return j.sender.SendURLs(ctx, all)
}
