package models

import "gorm.io/datatypes"

const (
	PostKindPost        = "post"
	PostKindAchievement = "achievement"
)

// Post is a social-feed entry within a tournament. Achievement posts are
// created by the achievement publisher; players can also post directly.
type Post struct {
	BaseModel
	TournamentID string         `gorm:"not null;index" json:"tournament_id"`
	AuthorID     string         `gorm:"not null;index" json:"author_id"`
	AuthorName   string         `gorm:"not null" json:"author_name"`
	Kind         string         `gorm:"not null;default:'post'" json:"kind"` // "post" or "achievement"
	Body         string         `gorm:"not null" json:"body"`
	Data         datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"` // {"achievement": "eagle", "hole": 7}
	ImageURL     string         `json:"image_url"`
}
