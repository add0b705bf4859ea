// Package prices stores the per-url price time series. The timeseries
// table keys observations by productUrlId (pk, string) and priceTimestamp
// (sk, number); reads come back newest first.
package prices

import (
	"context"
	"fmt"
	"strconv"

	"price-tracker/internal/storage"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type Store interface {
	Put(ctx context.Context, item storage.Item) error
	BatchDelete(ctx context.Context, keys []storage.Key) ([]storage.Key, error)
	QueryAll(ctx context.Context, partitionKey string, forward bool) ([]storage.Item, error)
}

type Repository struct {
	store Store
}

func New(store Store) *Repository {
	return &Repository{store: store}
}

type priceItem struct {
	PK                  string  `dynamodbav:"pk"`
	SK                  int64   `dynamodbav:"sk"`
	Price               float64 `dynamodbav:"price"`
	ExpirationTimestamp int64   `dynamodbav:"expirationTimestamp"`
}

// Key maps an observation to its pk/sk pair in the timeseries table.
func Key(obs Observation) storage.Key {
	return storage.Key{
		"pk": &types.AttributeValueMemberS{Value: obs.ProductURLID},
		"sk": &types.AttributeValueMemberN{Value: strconv.FormatInt(obs.Timestamp, 10)},
	}
}

// List returns every observation for the url in descending timestamp
// order, following continuation keys until exhausted.
func (r *Repository) List(ctx context.Context, productURLID string) ([]Observation, error) {
	items, err := r.store.QueryAll(ctx, productURLID, false)
	if err != nil {
		return nil, fmt.Errorf("list prices for url %s: %w", productURLID, err)
	}
	list := make([]Observation, 0, len(items))
	for _, item := range items {
		var row priceItem
		if err := attributevalue.UnmarshalMap(item, &row); err != nil {
			return nil, fmt.Errorf("unmarshal price item: %w", err)
		}
		list = append(list, Observation{
			ProductURLID: row.PK,
			Timestamp:    row.SK,
			Price:        row.Price,
			ExpiresAt:    row.ExpirationTimestamp,
		})
	}
	return list, nil
}

// Add writes a single observation. The external scraper supplies every
// field, including the expiry instant.
func (r *Repository) Add(ctx context.Context, obs Observation) error {
	item, err := attributevalue.MarshalMap(priceItem{
		PK:                  obs.ProductURLID,
		SK:                  obs.Timestamp,
		Price:               obs.Price,
		ExpirationTimestamp: obs.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("marshal price item: %w", err)
	}
	if err := r.store.Put(ctx, item); err != nil {
		return fmt.Errorf("add price for url %s: %w", obs.ProductURLID, err)
	}
	return nil
}

// BatchDelete removes the given observations, splitting into store-sized
// batches. Keys the store did not process come back to the caller; they
// are never silently dropped.
func (r *Repository) BatchDelete(ctx context.Context, observations []Observation) ([]storage.Key, error) {
	if len(observations) == 0 {
		return nil, nil
	}
	keys := make([]storage.Key, len(observations))
	for i, obs := range observations {
		keys[i] = Key(obs)
	}
	return r.store.BatchDelete(ctx, keys)
}
