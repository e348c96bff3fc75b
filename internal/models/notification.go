package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification kinds emitted by order placement.
const (
	NotificationLowStock   = "low_stock"
	NotificationOutOfStock = "out_of_stock"
	NotificationNewOrder   = "new_order"
)

// Notification is an in-app notification row. The core only writes these;
// the notification UI reads them and flips the read flag.
type Notification struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string             `json:"user_id" bson:"user_id"`
	Type      string             `json:"type" bson:"type"`
	Title     string             `json:"title" bson:"title"`
	Message   string             `json:"message" bson:"message"`
	Read      bool               `json:"read" bson:"read"`
	Metadata  map[string]any     `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// NotificationPreferences gates which notification kinds a user receives.
// Absent users (or absent subdocuments) get the all-enabled defaults.
type NotificationPreferences struct {
	LowStock   bool `json:"low_stock_notifications" bson:"low_stock_notifications"`
	OutOfStock bool `json:"out_of_stock_notifications" bson:"out_of_stock_notifications"`
	NewOrder   bool `json:"new_order_notifications" bson:"new_order_notifications"`
}

// DefaultNotificationPreferences returns the all-enabled defaults.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{LowStock: true, OutOfStock: true, NewOrder: true}
}
