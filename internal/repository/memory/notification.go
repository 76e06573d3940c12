package memory

import (
	"context"
	"slices"

	"github.com/bistrohq/staff-backend-go/internal/domain/notification"
)

type notificationRepository struct {
	store *Store
}

func NewNotificationRepository(store *Store) notification.Repository {
	return &notificationRepository{store: store}
}

func notificationID(n notification.Notification) string { return n.ID }

func (r *notificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	if n.ID == "" {
		n.ID = newID()
	}
	err := r.store.write(ctx, KeyNotifications, func(st *state) error {
		st.notifications = append(st.notifications, n)
		return nil
	})
	if err != nil {
		return notification.Notification{}, err
	}
	return n, nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id string) (notification.Notification, error) {
	var (
		found notification.Notification
		ok    bool
	)
	r.store.read(ctx, func(st *state) {
		if i := indexByID(st.notifications, id, notificationID); i >= 0 {
			found, ok = st.notifications[i], true
		}
	})
	if !ok {
		return notification.Notification{}, notification.ErrNotificationNotFound
	}
	return found, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]notification.Notification, error) {
	var out []notification.Notification
	r.store.read(ctx, func(st *state) {
		for _, n := range st.notifications {
			if n.UserID != userID || (unreadOnly && n.Read) {
				continue
			}
			out = append(out, n)
		}
	})
	slices.SortStableFunc(out, func(a, b notification.Notification) int {
		return b.Date.Compare(a.Date)
	})
	return out, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	count := 0
	r.store.read(ctx, func(st *state) {
		for _, n := range st.notifications {
			if n.UserID == userID && !n.Read {
				count++
			}
		}
	})
	return count, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id string) error {
	return r.store.write(ctx, KeyNotifications, func(st *state) error {
		i := indexByID(st.notifications, id, notificationID)
		if i < 0 {
			return notification.ErrNotificationNotFound
		}
		st.notifications[i].Read = true
		return nil
	})
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string) (int, error) {
	marked := 0
	err := r.store.write(ctx, KeyNotifications, func(st *state) error {
		for i := range st.notifications {
			if st.notifications[i].UserID == userID && !st.notifications[i].Read {
				st.notifications[i].Read = true
				marked++
			}
		}
		return nil
	})
	return marked, err
}
