package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bistrohq/staff-backend-go/internal/domain/notification"
	"github.com/bistrohq/staff-backend-go/internal/pkg/clock"
	"github.com/bistrohq/staff-backend-go/internal/pkg/sse"
)

// EventNotification is the SSE event name for a newly stored notification.
const EventNotification = "notification"

type NotificationServiceImpl struct {
	repo  notification.Repository
	hub   *sse.Hub
	clock clock.Clock
}

func NewNotificationService(repo notification.Repository, hub *sse.Hub, clk clock.Clock) notification.Service {
	return &NotificationServiceImpl{
		repo:  repo,
		hub:   hub,
		clock: clk,
	}
}

// Create implements notification.Service.
func (s *NotificationServiceImpl) Create(ctx context.Context, req notification.CreateNotificationRequest) (notification.Notification, error) {
	if err := req.Validate(); err != nil {
		return notification.Notification{}, err
	}

	n, err := s.repo.Create(ctx, notification.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
		Date:    s.clock.Now().UTC(),
	})
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}
	return n, nil
}

// Publish implements notification.Service.
func (s *NotificationServiceImpl) Publish(ns ...notification.Notification) {
	if s.hub == nil {
		return
	}
	for _, n := range ns {
		delivered := s.hub.Publish(sse.Event{UserID: n.UserID, Event: EventNotification, Data: n})
		slog.Debug("Notification published", "notification_id", n.ID, "user_id", n.UserID, "streams", delivered)
	}
}

// Send implements notification.Service.
func (s *NotificationServiceImpl) Send(ctx context.Context, req notification.CreateNotificationRequest) (notification.Notification, error) {
	n, err := s.Create(ctx, req)
	if err != nil {
		return notification.Notification{}, err
	}
	s.Publish(n)
	return n, nil
}

// List implements notification.Service.
func (s *NotificationServiceImpl) List(ctx context.Context, userID string, unreadOnly bool) ([]notification.Notification, error) {
	ns, err := s.repo.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	if ns == nil {
		ns = []notification.Notification{}
	}
	return ns, nil
}

// UnreadCount implements notification.Service.
func (s *NotificationServiceImpl) UnreadCount(ctx context.Context, userID string) (int, error) {
	n, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return n, nil
}

// MarkAsRead implements notification.Service. Another user's notification is
// reported as not found.
func (s *NotificationServiceImpl) MarkAsRead(ctx context.Context, userID, id string) (notification.Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notification.Notification{}, err
	}
	if n.UserID != userID {
		return notification.Notification{}, notification.ErrNotificationNotFound
	}
	if n.Read {
		return n, nil
	}
	if err := s.repo.MarkAsRead(ctx, id); err != nil {
		return notification.Notification{}, fmt.Errorf("failed to mark notification as read: %w", err)
	}
	n.Read = true
	return n, nil
}

// MarkAllAsRead implements notification.Service.
func (s *NotificationServiceImpl) MarkAllAsRead(ctx context.Context, userID string) (int, error) {
	n, err := s.repo.MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return n, nil
}

// Subscribe implements notification.Service.
func (s *NotificationServiceImpl) Subscribe(userID string) (<-chan sse.Event, func()) {
	return s.hub.Subscribe(userID)
}
