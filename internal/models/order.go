package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is a frozen snapshot of a product at the moment the order was
// placed. Name and price are never recomputed, even if the product is later
// edited or deleted; ProductID may therefore dangle.
type OrderItem struct {
	ProductID  string `json:"product_id" bson:"product_id"`
	Name       string `json:"name" bson:"name"`
	Quantity   int64  `json:"quantity" bson:"quantity"`
	PriceCents int64  `json:"price_cents" bson:"price_cents"`

	// Image is a display field resolved from the live product at read
	// time. It is not part of the snapshot.
	Image string `json:"image,omitempty" bson:"-"`
}

// SubtotalCents is the line contribution to the order total.
func (it OrderItem) SubtotalCents() int64 {
	return it.PriceCents * it.Quantity
}

// Order is a placed customer order. TotalCents equals the sum of the line
// subtotals at creation time and is never recomputed afterwards.
//
// "Customer" here is just a free-text name/email pair captured on the order,
// not an account.
type Order struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OrderNumber   string             `json:"order_number" bson:"order_number"`
	CustomerName  string             `json:"customer_name" bson:"customer_name"`
	CustomerEmail string             `json:"customer_email" bson:"customer_email"`
	Items         []OrderItem        `json:"items" bson:"items"`
	TotalCents    int64              `json:"total_cents" bson:"total_cents"`
	Status        Status             `json:"status" bson:"status"`
	CreatedBy     string             `json:"created_by" bson:"created_by"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}
