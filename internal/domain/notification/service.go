package notification

import (
	"context"

	"github.com/bistrohq/staff-backend-go/internal/pkg/sse"
)

type Service interface {
	// Create stores a notification. Inside a transaction the caller publishes
	// the result once the transaction has committed.
	Create(ctx context.Context, req CreateNotificationRequest) (Notification, error)
	// Publish pushes stored notifications to live streams. Delivery is best effort.
	Publish(ns ...Notification)
	// Send is Create followed by Publish.
	Send(ctx context.Context, req CreateNotificationRequest) (Notification, error)

	List(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, userID, id string) (Notification, error)
	MarkAllAsRead(ctx context.Context, userID string) (int, error)

	Subscribe(userID string) (<-chan sse.Event, func())
}
