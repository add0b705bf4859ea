package catalog

import (
	"time"

	"github.com/google/uuid"
)

// ProductPartition is the partition-key value shared by every product row
// in the catalog table. Url rows use their owning productId as partition
// key instead, so the partition key doubles as the entity discriminant.
const ProductPartition = "PRODUCT"

// Kind tags the two entity variants stored in the catalog table.
type Kind int

const (
	KindProduct Kind = iota + 1
	KindProductURL
)

// KindOf derives the entity kind from a row's partition-key value.
func KindOf(partitionKey string) Kind {
	if partitionKey == ProductPartition {
		return KindProduct
	}
	return KindProductURL
}

type Product struct {
	ProductID string    `json:"productId" example:"8a1f2c7e-9a34-4a71-bb6e-0f6f2f1a9c01"`
	Name      string    `json:"productName" example:"Widget"`
	CreatedAt time.Time `json:"createdAt" example:"2026-02-24T12:00:00Z"`
	UpdatedAt time.Time `json:"updatedAt" example:"2026-02-24T12:00:00Z"`
}

// NewProduct assigns a fresh productId and second-precision timestamps.
func NewProduct(name string) Product {
	now := time.Now().UTC().Truncate(time.Second)
	return Product{
		ProductID: uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch bumps updatedAt; createdAt is immutable.
func (p *Product) Touch() {
	p.UpdatedAt = time.Now().UTC().Truncate(time.Second)
}

type ProductURL struct {
	ProductID    string    `json:"productId"`
	ProductURLID string    `json:"productUrlId"`
	URL          string    `json:"productUrl" example:"https://example.com/widget"`
	XPath        string    `json:"xpath"`
	CSSSelectors string    `json:"cssSelectors"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewProductURL(productID, url, xpath, cssSelectors string) ProductURL {
	now := time.Now().UTC().Truncate(time.Second)
	return ProductURL{
		ProductID:    productID,
		ProductURLID: uuid.NewString(),
		URL:          url,
		XPath:        xpath,
		CSSSelectors: cssSelectors,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (u *ProductURL) Touch() {
	u.UpdatedAt = time.Now().UTC().Truncate(time.Second)
}
