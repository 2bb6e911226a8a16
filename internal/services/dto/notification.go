package dto

import (
	"fairway_backend/internal/models"
	"fairway_backend/internal/repositories"
)

// NotificationView decorates a notification with its presentation metadata
// so clients do not hardcode the type -> icon mapping.
type NotificationView struct {
	models.Notification
	Presentation repositories.Presentation `json:"presentation"`
}

type NotificationListResponse struct {
	Notifications []NotificationView `json:"notifications"`
	Total         int64              `json:"total"`
	Page          int                `json:"page"`
	PageSize      int                `json:"page_size"`
}

type UnreadCountResponse struct {
	Count int64 `json:"unread_count"`
}
