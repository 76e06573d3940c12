package notification

import (
	"github.com/bistrohq/staff-backend-go/internal/pkg/validator"
)

type CreateNotificationRequest struct {
	UserID  string           `json:"userId"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Type    NotificationType `json:"type"`
}

func (r *CreateNotificationRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.UserID) {
		errs.Add("userId", "userId is required")
	}
	if validator.IsEmpty(r.Title) {
		errs.Add("title", "title is required")
	}
	if r.Type == "" {
		r.Type = TypeGeneral
	}
	if !r.Type.IsValid() {
		errs.Add("type", ErrInvalidNotificationType.Error())
	}
	return errs.Err()
}

type UnreadCountResponse struct {
	UnreadCount int `json:"unreadCount"`
}

type StreamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}
