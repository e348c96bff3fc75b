package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"inventory-backend/internal/models"
	"inventory-backend/internal/repository"
)

// Gateway persists in-app notifications and mirrors them onto the event
// topic. Every method is best-effort: failures are logged and swallowed so
// they can never affect the caller's success path.
type Gateway struct {
	repo     *repository.NotificationRepository
	producer *Producer // nil disables event publishing
	service  string
}

func NewGateway(repo *repository.NotificationRepository, producer *Producer, service string) *Gateway {
	return &Gateway{repo: repo, producer: producer, service: service}
}

func (g *Gateway) NotifyLowStock(ctx context.Context, ownerID, productName string, remaining int64) {
	g.store(ctx, &models.Notification{
		UserID:  ownerID,
		Type:    models.NotificationLowStock,
		Title:   "Low stock",
		Message: fmt.Sprintf("%s is running low: %d left", productName, remaining),
		Metadata: map[string]any{
			"product_name": productName,
			"remaining":    remaining,
		},
	})
	g.publish(ownerID, EventLowStock, mustMarshal(StockEventPayload{
		UserID: ownerID, ProductName: productName, Remaining: remaining,
	}))
}

func (g *Gateway) NotifyOutOfStock(ctx context.Context, ownerID, productName string) {
	g.store(ctx, &models.Notification{
		UserID:  ownerID,
		Type:    models.NotificationOutOfStock,
		Title:   "Out of stock",
		Message: fmt.Sprintf("%s is out of stock", productName),
		Metadata: map[string]any{
			"product_name": productName,
		},
	})
	g.publish(ownerID, EventOutOfStock, mustMarshal(StockEventPayload{
		UserID: ownerID, ProductName: productName,
	}))
}

func (g *Gateway) NotifyNewOrder(ctx context.Context, ownerID, orderNumber string, totalCents int64) {
	g.store(ctx, &models.Notification{
		UserID:  ownerID,
		Type:    models.NotificationNewOrder,
		Title:   "New order",
		Message: fmt.Sprintf("Order %s placed", orderNumber),
		Metadata: map[string]any{
			"order_number": orderNumber,
			"total_cents":  totalCents,
		},
	})
	g.publish(ownerID, EventNewOrder, mustMarshal(NewOrderPayload{
		UserID: ownerID, OrderNumber: orderNumber, TotalCents: totalCents,
	}))
}

func (g *Gateway) store(ctx context.Context, n *models.Notification) {
	if err := g.repo.Insert(ctx, n); err != nil {
		log.Printf("store %s notification for user %s failed: %v", n.Type, n.UserID, err)
	}
}

func (g *Gateway) publish(ownerID, eventType string, payload []byte) {
	if g.producer == nil {
		return
	}
	ev := Envelope{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     g.service,
		Payload:      payload,
	}
	g.producer.Publish([]byte(ownerID), mustMarshal(ev),
		kafka.Header{Key: "x-event-type", Value: []byte(eventType)},
	)
}
