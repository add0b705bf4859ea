package catalog

import (
	"testing"
	"time"
)

func TestKindOf(t *testing.T) {
	if KindOf(ProductPartition) != KindProduct {
		t.Fatalf("PRODUCT partition must tag the product variant")
	}
	if KindOf("8a1f2c7e-9a34-4a71-bb6e-0f6f2f1a9c01") != KindProductURL {
		t.Fatalf("any other partition tags the url variant")
	}
}

func TestNewProductAssignsUniqueIDs(t *testing.T) {
	a := NewProduct("Widget")
	b := NewProduct("Widget")
	if a.ProductID == b.ProductID {
		t.Fatalf("two products share id %q", a.ProductID)
	}
	if !a.CreatedAt.Equal(a.UpdatedAt) {
		t.Fatalf("want createdAt == updatedAt on create")
	}
	if a.CreatedAt.Nanosecond() != 0 {
		t.Fatalf("timestamps carry second precision, got %v", a.CreatedAt)
	}
}

func TestTouchKeepsCreatedAt(t *testing.T) {
	p := NewProduct("Widget")
	created := p.CreatedAt
	time.Sleep(10 * time.Millisecond)
	p.Touch()
	if !p.CreatedAt.Equal(created) {
		t.Fatalf("createdAt changed on touch")
	}
	if p.UpdatedAt.Before(p.CreatedAt) {
		t.Fatalf("updatedAt %v precedes createdAt %v", p.UpdatedAt, p.CreatedAt)
	}
}

func TestNewProductURLUniqueWithinProduct(t *testing.T) {
	a := NewProductURL("prod-1", "https://example.com/a", "", "")
	b := NewProductURL("prod-1", "https://example.com/b", "", "")
	if a.ProductURLID == b.ProductURLID {
		t.Fatalf("two urls under one product share id %q", a.ProductURLID)
	}
	if a.ProductID != "prod-1" {
		t.Fatalf("url must carry its owning product id, got %q", a.ProductID)
	}
}
