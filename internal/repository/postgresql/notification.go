package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bistrohq/staff-backend-go/internal/domain/notification"
	"github.com/bistrohq/staff-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type notificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

const notificationColumns = `id, user_id, title, message, type, date, read`

func scanNotification(row pgx.Row) (notification.Notification, error) {
	var n notification.Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Date, &n.Read)
	return n, err
}

// Create creates a new notification
func (r *notificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := getQuerier(ctx, r.db)
	if n.ID == "" {
		n.ID = newID()
	}

	query := `
		INSERT INTO notifications (id, user_id, title, message, type, date, read)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := q.Exec(ctx, query, n.ID, n.UserID, n.Title, n.Message, string(n.Type), n.Date, n.Read); err != nil {
		return notification.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}
	return n, nil
}

// GetByID retrieves a notification by ID
func (r *notificationRepository) GetByID(ctx context.Context, id string) (notification.Notification, error) {
	q := getQuerier(ctx, r.db)
	n, err := scanNotification(q.QueryRow(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notification.Notification{}, notification.ErrNotificationNotFound
		}
		return notification.Notification{}, fmt.Errorf("failed to get notification: %w", err)
	}
	return n, nil
}

// ListByUser retrieves the user's notifications, newest first
func (r *notificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]notification.Notification, error) {
	q := getQuerier(ctx, r.db)

	var w where
	w.add("user_id = $%d", userID)
	if unreadOnly {
		w.add("read = $%d", false)
	}

	rows, err := q.Query(ctx, `SELECT `+notificationColumns+` FROM notifications`+w.String()+` ORDER BY date DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var out []notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// CountUnread counts unread notifications for a user
func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	q := getQuerier(ctx, r.db)
	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = FALSE`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkAsRead marks a single notification as read
func (r *notificationRepository) MarkAsRead(ctx context.Context, id string) error {
	q := getQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return affectedOne(tag, notification.ErrNotificationNotFound)
}

// MarkAllAsRead marks all unread notifications of a user as read
func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string) (int, error) {
	q := getQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark all notifications as read: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
