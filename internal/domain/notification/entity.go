package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeShift    NotificationType = "shift"
	TypeOvertime NotificationType = "overtime"
	TypePayment  NotificationType = "payment"
	TypeMessage  NotificationType = "message"
	TypeGeneral  NotificationType = "general"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case TypeShift, TypeOvertime, TypePayment, TypeMessage, TypeGeneral:
		return true
	}
	return false
}

// Notification is append-only apart from the Read flag.
type Notification struct {
	ID      string           `json:"id"`
	UserID  string           `json:"userId"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Type    NotificationType `json:"type"`
	Date    time.Time        `json:"date"`
	Read    bool             `json:"read"`
}
