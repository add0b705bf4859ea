// Package repository persists the catalog's two entity variants in a
// single DynamoDB table: products under the fixed "PRODUCT" partition,
// urls under their owning product's id.
package repository

import (
	"context"
	"fmt"
	"time"

	"price-tracker/internal/catalog"
	"price-tracker/internal/storage"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Store is the slice of the key-value adapter the repository needs.
type Store interface {
	Get(ctx context.Context, key storage.Key) (storage.Item, error)
	Put(ctx context.Context, item storage.Item) error
	Delete(ctx context.Context, key storage.Key) error
	QueryAll(ctx context.Context, partitionKey string, forward bool) ([]storage.Item, error)
}

type Catalog struct {
	store Store
}

func New(store Store) *Catalog {
	return &Catalog{store: store}
}

// Row shapes on the wire. Timestamps are epoch seconds; the partition key
// tags the variant (see catalog.KindOf).
type productItem struct {
	PK          string `dynamodbav:"pk"`
	SK          string `dynamodbav:"sk"`
	ProductName string `dynamodbav:"productName"`
	CreatedAt   int64  `dynamodbav:"createdAt"`
	UpdatedAt   int64  `dynamodbav:"updatedAt"`
}

type urlItem struct {
	PK           string `dynamodbav:"pk"`
	SK           string `dynamodbav:"sk"`
	ProductURL   string `dynamodbav:"productUrl"`
	XPath        string `dynamodbav:"xpath"`
	CSSSelectors string `dynamodbav:"cssSelectors"`
	CreatedAt    int64  `dynamodbav:"createdAt"`
	UpdatedAt    int64  `dynamodbav:"updatedAt"`
}

func productKey(productID string) storage.Key {
	return storage.Key{
		"pk": &types.AttributeValueMemberS{Value: catalog.ProductPartition},
		"sk": &types.AttributeValueMemberS{Value: productID},
	}
}

func urlKey(productID, productURLID string) storage.Key {
	return storage.Key{
		"pk": &types.AttributeValueMemberS{Value: productID},
		"sk": &types.AttributeValueMemberS{Value: productURLID},
	}
}

func encodeProduct(p catalog.Product) (storage.Item, error) {
	return attributevalue.MarshalMap(productItem{
		PK:          catalog.ProductPartition,
		SK:          p.ProductID,
		ProductName: p.Name,
		CreatedAt:   p.CreatedAt.Unix(),
		UpdatedAt:   p.UpdatedAt.Unix(),
	})
}

func encodeURL(u catalog.ProductURL) (storage.Item, error) {
	return attributevalue.MarshalMap(urlItem{
		PK:           u.ProductID,
		SK:           u.ProductURLID,
		ProductURL:   u.URL,
		XPath:        u.XPath,
		CSSSelectors: u.CSSSelectors,
		CreatedAt:    u.CreatedAt.Unix(),
		UpdatedAt:    u.UpdatedAt.Unix(),
	})
}

func decodeProduct(item storage.Item) (catalog.Product, error) {
	var row productItem
	if err := attributevalue.UnmarshalMap(item, &row); err != nil {
		return catalog.Product{}, fmt.Errorf("unmarshal product item: %w", err)
	}
	if catalog.KindOf(row.PK) != catalog.KindProduct {
		return catalog.Product{}, fmt.Errorf("item under partition %q is not a product", row.PK)
	}
	return catalog.Product{
		ProductID: row.SK,
		Name:      row.ProductName,
		CreatedAt: time.Unix(row.CreatedAt, 0).UTC(),
		UpdatedAt: time.Unix(row.UpdatedAt, 0).UTC(),
	}, nil
}

func decodeURL(item storage.Item) (catalog.ProductURL, error) {
	var row urlItem
	if err := attributevalue.UnmarshalMap(item, &row); err != nil {
		return catalog.ProductURL{}, fmt.Errorf("unmarshal url item: %w", err)
	}
	if catalog.KindOf(row.PK) != catalog.KindProductURL {
		return catalog.ProductURL{}, fmt.Errorf("item under partition %q is not a url", row.PK)
	}
	return catalog.ProductURL{
		ProductID:    row.PK,
		ProductURLID: row.SK,
		URL:          row.ProductURL,
		XPath:        row.XPath,
		CSSSelectors: row.CSSSelectors,
		CreatedAt:    time.Unix(row.CreatedAt, 0).UTC(),
		UpdatedAt:    time.Unix(row.UpdatedAt, 0).UTC(),
	}, nil
}

// ListProducts reads the whole product partition, following continuation
// keys until exhausted.
func (c *Catalog) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	items, err := c.store.QueryAll(ctx, catalog.ProductPartition, true)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	list := make([]catalog.Product, 0, len(items))
	for _, item := range items {
		p, err := decodeProduct(item)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, nil
}

// ListURLs reads every url under productID, same pagination pattern.
func (c *Catalog) ListURLs(ctx context.Context, productID string) ([]catalog.ProductURL, error) {
	items, err := c.store.QueryAll(ctx, productID, true)
	if err != nil {
		return nil, fmt.Errorf("list urls for product %s: %w", productID, err)
	}
	list := make([]catalog.ProductURL, 0, len(items))
	for _, item := range items {
		u, err := decodeURL(item)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, nil
}

func (c *Catalog) GetProduct(ctx context.Context, productID string) (catalog.Product, error) {
	item, err := c.store.Get(ctx, productKey(productID))
	if err != nil {
		return catalog.Product{}, fmt.Errorf("get product %s: %w", productID, err)
	}
	if item == nil {
		return catalog.Product{}, catalog.ErrProductNotFound
	}
	return decodeProduct(item)
}

func (c *Catalog) CreateProduct(ctx context.Context, name string) (catalog.Product, error) {
	p := catalog.NewProduct(name)
	item, err := encodeProduct(p)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("marshal product: %w", err)
	}
	if err := c.store.Put(ctx, item); err != nil {
		return catalog.Product{}, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (c *Catalog) CreateURL(ctx context.Context, productID, url, xpath, cssSelectors string) (catalog.ProductURL, error) {
	u := catalog.NewProductURL(productID, url, xpath, cssSelectors)
	item, err := encodeURL(u)
	if err != nil {
		return catalog.ProductURL{}, fmt.Errorf("marshal url: %w", err)
	}
	if err := c.store.Put(ctx, item); err != nil {
		return catalog.ProductURL{}, fmt.Errorf("create url: %w", err)
	}
	return u, nil
}

// TouchProduct rewrites the product with a bumped updatedAt.
func (c *Catalog) TouchProduct(ctx context.Context, productID string) (catalog.Product, error) {
	p, err := c.GetProduct(ctx, productID)
	if err != nil {
		return catalog.Product{}, err
	}
	p.Touch()
	item, err := encodeProduct(p)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("marshal product: %w", err)
	}
	if err := c.store.Put(ctx, item); err != nil {
		return catalog.Product{}, fmt.Errorf("touch product %s: %w", productID, err)
	}
	return p, nil
}

// DeleteURL removes the catalog record only. Dependent price observations
// are the cascade coordinator's problem, not this method's.
func (c *Catalog) DeleteURL(ctx context.Context, productID, productURLID string) error {
	if err := c.store.Delete(ctx, urlKey(productID, productURLID)); err != nil {
		return fmt.Errorf("delete url %s: %w", productURLID, err)
	}
	return nil
}
