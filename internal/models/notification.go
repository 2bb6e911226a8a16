package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID       string         `gorm:"not null;index" json:"user_id"`
	TournamentID string         `gorm:"not null;index" json:"tournament_id"`
	Type         string         `gorm:"not null" json:"type"` // see NotificationType* constants
	Title        string         `gorm:"not null" json:"title"`
	Message      string         `json:"message"`
	Data         datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"` // {"round_id": "...", "hole": 7}
	IsRead       bool           `gorm:"default:false" json:"is_read"`
	ReadAt       *time.Time     `json:"read_at,omitempty"`
}
