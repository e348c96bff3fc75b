package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a sellable item. Every product belongs to exactly one owner
// (the user that created it); all reads and writes are scoped by CreatedBy.
type Product struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SKU          string             `json:"sku" bson:"sku"`
	Name         string             `json:"name" bson:"name" binding:"required"`
	Description  string             `json:"description,omitempty" bson:"description,omitempty"`
	Category     string             `json:"category,omitempty" bson:"category,omitempty"`
	Quantity     int64              `json:"quantity" bson:"quantity"`
	ReorderLevel int64              `json:"reorder_level" bson:"reorder_level"`
	CostCents    int64              `json:"cost_cents" bson:"cost_cents"`
	PriceCents   int64              `json:"price_cents" bson:"price_cents"`
	Unit         string             `json:"unit,omitempty" bson:"unit,omitempty"`
	Image        string             `json:"image,omitempty" bson:"image,omitempty"`
	CreatedBy    string             `json:"created_by" bson:"created_by"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// LowStock reports whether the product has dropped under its reorder level
// but is not yet out of stock.
func (p *Product) LowStock() bool {
	return p.Quantity > 0 && p.Quantity < p.ReorderLevel
}

// ProductUpdate holds the updatable fields of a product. Nil means
// "leave unchanged"; Quantity is an absolute set, not a delta.
type ProductUpdate struct {
	SKU          *string `json:"sku,omitempty"`
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Category     *string `json:"category,omitempty"`
	Quantity     *int64  `json:"quantity,omitempty"`
	ReorderLevel *int64  `json:"reorder_level,omitempty"`
	CostCents    *int64  `json:"cost_cents,omitempty"`
	PriceCents   *int64  `json:"price_cents,omitempty"`
	Unit         *string `json:"unit,omitempty"`
	Image        *string `json:"image,omitempty"`
}
