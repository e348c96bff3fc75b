package orders

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"inventory-backend/internal/metrics"
	"inventory-backend/internal/models"
)

// ProductStore is the slice of the product repository the engine mutates.
// DecrementStock must be a single conditional atomic operation: decrement
// by qty only while the current quantity covers it, returning (nil, nil)
// when the condition did not hold.
type ProductStore interface {
	FindOwned(ctx context.Context, id, ownerID string) (*models.Product, error)
	DecrementStock(ctx context.Context, id, ownerID string, qty int64) (*models.Product, error)
	CompensateStock(ctx context.Context, id string, qty int64) error
}

type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id, ownerID string, status models.Status) (*models.Order, error)
}

// Gateway receives stock and order notifications. Implementations are
// fire-and-forget: they log their own failures and never return them.
type Gateway interface {
	NotifyLowStock(ctx context.Context, ownerID, productName string, remaining int64)
	NotifyOutOfStock(ctx context.Context, ownerID, productName string)
	NotifyNewOrder(ctx context.Context, ownerID, orderNumber string, totalCents int64)
}

type PreferenceStore interface {
	GetNotificationPreferences(ctx context.Context, userID string) (models.NotificationPreferences, error)
}

// CartItem is one requested line of a cart.
type CartItem struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
}

// PlaceOrderInput is the full placement request. OwnerID comes from the
// authenticated session, never from the request body.
type PlaceOrderInput struct {
	CustomerName  string
	CustomerEmail string
	Items         []CartItem
}

// Service implements order placement and status updates.
type Service struct {
	products ProductStore
	orders   OrderStore
	gateway  Gateway
	prefs    PreferenceStore
	metrics  *metrics.Registry
}

func NewService(products ProductStore, orders OrderStore, gateway Gateway, prefs PreferenceStore, m *metrics.Registry) *Service {
	return &Service{products: products, orders: orders, gateway: gateway, prefs: prefs, metrics: m}
}

// PlaceOrder validates the cart against live stock, decrements inventory
// per item, snapshots names and prices, and persists the order — all or
// nothing. Item order is the caller's order for both validation and
// decrement; on a mid-order failure, already-applied decrements are
// compensated in reverse order before the error is returned.
func (s *Service) PlaceOrder(ctx context.Context, ownerID string, in PlaceOrderInput) (*models.Order, error) {
	started := time.Now()

	if strings.TrimSpace(in.CustomerName) == "" {
		return nil, &ValidationError{Field: "customer_name", Message: "is required"}
	}
	if strings.TrimSpace(in.CustomerEmail) == "" {
		return nil, &ValidationError{Field: "customer_email", Message: "is required"}
	}
	if len(in.Items) == 0 {
		return nil, &ValidationError{Field: "items", Message: "cart is empty"}
	}

	// Validation pass, in cart order. Fail fast on the first violation.
	validated := make([]*models.Product, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return nil, &ValidationError{Field: "items", Message: fmt.Sprintf("quantity for product %s must be at least 1", item.ProductID)}
		}
		if _, err := primitive.ObjectIDFromHex(item.ProductID); err != nil {
			return nil, &ValidationError{Field: "items", Message: fmt.Sprintf("invalid product id %q", item.ProductID)}
		}
		product, err := s.products.FindOwned(ctx, item.ProductID, ownerID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, &NotFoundError{Resource: "product", ID: item.ProductID}
		}
		if product.Quantity < item.Quantity {
			s.metrics.InsufficientStock.Inc()
			return nil, &InsufficientStockError{
				ProductName: product.Name,
				Requested:   item.Quantity,
				Available:   product.Quantity,
			}
		}
		validated = append(validated, product)
	}

	// Commit pass: conditional atomic decrement per item, same order.
	// The validation above is advisory only; this is where stock is won.
	updated := make([]*models.Product, 0, len(in.Items))
	for i, item := range in.Items {
		after, err := s.products.DecrementStock(ctx, item.ProductID, ownerID, item.Quantity)
		if err != nil {
			s.rollback(ctx, in.Items[:i])
			return nil, err
		}
		if after == nil {
			// Lost the race between validation and decrement.
			s.rollback(ctx, in.Items[:i])
			s.metrics.OrderConflicts.Inc()
			return nil, s.conflictError(ctx, ownerID, item, validated[i])
		}
		updated = append(updated, after)
	}

	order := &models.Order{
		OrderNumber:   newOrderNumber(),
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		Status:        models.StatusPending,
		CreatedBy:     ownerID,
	}
	for i, item := range in.Items {
		line := models.OrderItem{
			ProductID:  item.ProductID,
			Name:       validated[i].Name,
			Quantity:   item.Quantity,
			PriceCents: validated[i].PriceCents,
			Image:      validated[i].Image,
		}
		order.Items = append(order.Items, line)
		order.TotalCents += line.SubtotalCents()
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		s.rollback(ctx, in.Items)
		return nil, err
	}

	s.emitNotifications(ctx, ownerID, order, updated)

	s.metrics.OrdersPlaced.Inc()
	s.metrics.PlaceDuration.Observe(time.Since(started).Seconds())
	return order, nil
}

// rollback compensates the decrements already applied for this order
// attempt, newest first. Compensation failures are logged; there is
// nothing further to do with them.
func (s *Service) rollback(ctx context.Context, applied []CartItem) {
	for i := len(applied) - 1; i >= 0; i-- {
		if err := s.products.CompensateStock(ctx, applied[i].ProductID, applied[i].Quantity); err != nil {
			log.Printf("compensate stock failed for product %s (+%d): %v",
				applied[i].ProductID, applied[i].Quantity, err)
		}
	}
}

// conflictError re-reads the product so the caller sees the quantity that
// actually remains. Falls back to zero if the re-read fails.
func (s *Service) conflictError(ctx context.Context, ownerID string, item CartItem, seen *models.Product) error {
	var available int64
	if current, err := s.products.FindOwned(ctx, item.ProductID, ownerID); err == nil && current != nil {
		available = current.Quantity
	}
	return &ConflictError{
		ProductName: seen.Name,
		Requested:   item.Quantity,
		Available:   available,
	}
}

// emitNotifications fires the post-placement notifications, gated by the
// owner's preferences. Best effort: never affects the placement result.
func (s *Service) emitNotifications(ctx context.Context, ownerID string, order *models.Order, updated []*models.Product) {
	prefs, err := s.prefs.GetNotificationPreferences(ctx, ownerID)
	if err != nil {
		log.Printf("notification preferences lookup failed for user %s: %v", ownerID, err)
		prefs = models.DefaultNotificationPreferences()
	}

	if prefs.NewOrder {
		s.gateway.NotifyNewOrder(ctx, ownerID, order.OrderNumber, order.TotalCents)
		s.metrics.NotificationsEmitted.Inc()
	}
	for _, p := range updated {
		switch {
		case p.Quantity == 0:
			if prefs.OutOfStock {
				s.gateway.NotifyOutOfStock(ctx, ownerID, p.Name)
				s.metrics.NotificationsEmitted.Inc()
			}
		case p.LowStock():
			if prefs.LowStock {
				s.gateway.NotifyLowStock(ctx, ownerID, p.Name, p.Quantity)
				s.metrics.NotificationsEmitted.Inc()
			}
		}
	}
}

// UpdateStatus sets an order to any recognized status. No transition graph
// is enforced: any status is reachable from any other, including out of
// delivered and cancelled, and setting the current status again succeeds.
func (s *Service) UpdateStatus(ctx context.Context, ownerID, orderID string, status models.Status) (*models.Order, error) {
	if !status.Valid() {
		return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("unrecognized status %q", status)}
	}
	if _, err := primitive.ObjectIDFromHex(orderID); err != nil {
		return nil, &ValidationError{Field: "id", Message: fmt.Sprintf("invalid order id %q", orderID)}
	}

	updated, err := s.orders.UpdateStatus(ctx, orderID, ownerID, status)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, &NotFoundError{Resource: "order", ID: orderID}
	}
	return updated, nil
}

// newOrderNumber builds the human-readable order number:
// ORD-<unix millis>-<random suffix>.
func newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}
